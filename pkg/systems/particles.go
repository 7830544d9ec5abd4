package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 粒子外观
const (
	burstParticleCount = 8
	particleGravity    = 0.3
)

type particleKind int

const (
	particleSpark particleKind = iota // 黄色火花
	particleDust                      // 棕色尘土
)

type particle struct {
	x, y    float64
	dx, dy  float64
	life    float64 // 剩余寿命（毫秒）
	maxLife float64
	size    float64
	kind    particleKind
}

// ParticleSystem 锤击冲击粒子系统
//
// 每次点击（无论是否命中）在点击位置迸发一圈火花/尘土粒子，
// 粒子受重力影响并随寿命淡出。纯视觉效果，不参与游戏逻辑。
type ParticleSystem struct {
	particles []particle
	rng       *rand.Rand
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{rng: rng}
}

// SpawnBurst 在指定位置迸发一组冲击粒子
func (ps *ParticleSystem) SpawnBurst(x, y float64) {
	for i := 0; i < burstParticleCount; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := 1 + ps.rng.Float64()*2
		life := 80 + ps.rng.Float64()*40

		kind := particleSpark
		if ps.rng.Intn(2) == 0 {
			kind = particleDust
		}

		ps.particles = append(ps.particles, particle{
			x:       x,
			y:       y,
			dx:      math.Cos(angle) * speed,
			dy:      math.Sin(angle) * speed,
			life:    life,
			maxLife: 120,
			size:    3 + ps.rng.Float64()*3,
			kind:    kind,
		})
	}
}

// Update 推进粒子状态
// deltaTime 为秒；粒子寿命以毫秒计
func (ps *ParticleSystem) Update(deltaTime float64) {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.life -= deltaTime * 1000
		if p.life <= 0 {
			continue
		}
		p.x += p.dx
		p.y += p.dy
		p.dy += particleGravity
		alive = append(alive, p)
	}
	ps.particles = alive
}

// Draw 绘制所有存活粒子
func (ps *ParticleSystem) Draw(screen *ebiten.Image) {
	for _, p := range ps.particles {
		alpha := p.life / p.maxLife
		if alpha > 1 {
			alpha = 1
		}

		var c color.NRGBA
		switch p.kind {
		case particleSpark:
			c = color.NRGBA{R: 255, G: 255, B: 100, A: uint8(255 * alpha)}
		default:
			c = color.NRGBA{R: 139, G: 69, B: 19, A: uint8(255 * alpha)}
		}

		vector.DrawFilledCircle(screen, float32(p.x), float32(p.y), float32(p.size/2), c, true)
	}
}

// Count 返回当前存活粒子数（调试/测试用）
func (ps *ParticleSystem) Count() int {
	return len(ps.particles)
}

// Clear 清空所有粒子（游戏重开时调用）
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}
