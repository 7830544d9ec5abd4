package entities

import (
	"math"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/utils"
)

// ZombieState 僵尸状态机状态
//
// 状态序列是 Rising → Attacking? → Despawning → Dead 的子序列：
// 被击中的僵尸跳过 Attacking 直接进入 Despawning；
// Dead 是终态，之后不会再发生任何转移。
type ZombieState int

const (
	// ZombieRising 出土/活跃状态，可被点击
	ZombieRising ZombieState = iota
	// ZombieAttacking 攻击状态（存活超时未被击中），不可点击
	ZombieAttacking
	// ZombieDespawning 入土状态（被击中或攻击完成后）
	ZombieDespawning
	// ZombieDead 终态，下一帧从存活列表中移除
	ZombieDead
)

// String 返回状态名称（用于日志和调试）
func (s ZombieState) String() string {
	switch s {
	case ZombieRising:
		return "Rising"
	case ZombieAttacking:
		return "Attacking"
	case ZombieDespawning:
		return "Despawning"
	case ZombieDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Zombie 一只可被敲击的僵尸
//
// 生命周期：
//   - Rising:     出土动画（缓出），之后保持活跃直到被击中或存活超时
//   - Attacking:  超时未被击中时播放攻击动画，结束时扣玩家一条命（仅一次）
//   - Despawning: 入土动画（缓入），来自击中或攻击完成
//   - Dead:       终态，实体不可再变化
//
// 所有转移由 Mark 一次性守卫：重复调用 MarkHit/Update 不会
// 重复计分或重复扣血。时间参数为游戏时钟毫秒，与帧率无关。
type Zombie struct {
	Spawn    SpawnPoint // 占用的生成点（引用，不拥有）
	BornAt   int64      // 创建时刻
	Lifetime int64      // 可被击中的存活时长

	cfg *config.ZombieConfig

	hit         Mark // 被击中转移
	attack      Mark // 攻击开始转移
	despawn     Mark // 入土开始转移
	dead        bool
	damageDealt bool // 一次性守卫：攻击只扣一条命
}

// NewZombie 创建僵尸实体
func NewZombie(spawn SpawnPoint, bornAt, lifetime int64, cfg *config.ZombieConfig) *Zombie {
	return &Zombie{
		Spawn:    spawn,
		BornAt:   bornAt,
		Lifetime: lifetime,
		cfg:      cfg,
	}
}

// State 返回当前状态
func (z *Zombie) State() ZombieState {
	switch {
	case z.dead:
		return ZombieDead
	case z.despawn.Started:
		return ZombieDespawning
	case z.attack.Started:
		return ZombieAttacking
	default:
		return ZombieRising
	}
}

// Alive 返回实体是否仍在存活列表中（Dead 之前均为 true）
func (z *Zombie) Alive() bool {
	return !z.dead
}

// Hit 返回是否已被击中
func (z *Zombie) Hit() bool {
	return z.hit.Started
}

// Attacking 返回是否处于攻击状态
func (z *Zombie) Attacking() bool {
	return z.attack.Started && !z.hit.Started && !z.dead
}

// MarkHit 注册一次有效击中
//
// 只有处于 Rising 状态且未被击中时才生效，生效后立即进入
// Despawning。重复调用、攻击中或已死亡时返回 false（防重复计分）。
func (z *Zombie) MarkHit(now int64) bool {
	if z.hit.Started || z.dead || z.attack.Started {
		return false
	}
	z.hit.Set(now)
	z.despawn.Set(now)
	return true
}

// Update 按当前时刻推进状态机
//
// 返回本次调用是否完成了一次攻击（需要扣玩家一条命）。
// damageDealt 守卫保证整个生命周期内最多返回一次 true。
func (z *Zombie) Update(now int64) bool {
	attackOccurred := false

	// 存活超时且未被击中 → 开始攻击
	if !z.hit.Started && !z.attack.Started && !z.despawn.Started &&
		now-z.BornAt >= z.Lifetime {
		z.attack.Set(now)
	}

	// 攻击动画完成 → 扣一条命并开始入土
	if z.attack.Started && !z.hit.Started && !z.damageDealt &&
		z.attack.Elapsed(now) >= int64(z.cfg.AttackAnimMs) {
		attackOccurred = true
		z.damageDealt = true
		z.despawn.Set(now)
	}

	// 入土动画完成 → 死亡
	if z.despawn.Started && z.despawn.Elapsed(now) >= int64(z.cfg.DespawnAnimMs) {
		z.dead = true
	}

	return attackOccurred
}

// SpriteSize 返回精灵的显示尺寸
// 尺寸始终由配置推导，绘制和命中判定使用同一来源
func (z *Zombie) SpriteSize() (w, h float64) {
	return float64(z.cfg.SpriteBaseWidth) * z.cfg.SpriteScale,
		float64(z.cfg.SpriteBaseHeight) * z.cfg.SpriteScale
}

// VerticalOffset 返回当前垂直偏移
// 正值 = 僵尸在地下，0 = 完全出土，负值 = 攻击时的弹跳
func (z *Zombie) VerticalOffset(now int64) float64 {
	_, spriteH := z.SpriteSize()

	// 出土动画：上升（缓出）
	if t := now - z.BornAt; t < int64(z.cfg.SpawnAnimMs) {
		progress := float64(t) / float64(z.cfg.SpawnAnimMs)
		return spriteH * (1 - utils.EaseOutQuad(progress))
	}

	// 攻击弹跳
	if z.Attacking() {
		t := float64(z.attack.Elapsed(now)) / float64(z.cfg.AttackAnimMs)
		if t < 1.0 {
			return -5 * math.Sin(t*math.Pi*6)
		}
	}

	// 入土动画：下沉（缓入）
	if z.despawn.Started {
		t := float64(z.despawn.Elapsed(now)) / float64(z.cfg.DespawnAnimMs)
		if t < 1.0 {
			return spriteH * utils.EaseInQuad(t)
		}
		return spriteH
	}

	return 0
}

// HitBounds 返回当前命中矩形 (minX, minY, maxX, maxY)
// 以生成点为中心，加上当前垂直偏移
func (z *Zombie) HitBounds(now int64) (minX, minY, maxX, maxY float64) {
	w, h := z.SpriteSize()
	cy := z.Spawn.Y + z.VerticalOffset(now)
	return z.Spawn.X - w/2, cy - h/2, z.Spawn.X + w/2, cy + h/2
}

// ContainsPoint 命中判定
//
// 边界规则：四条边全部取闭区间（恰好落在边界上算命中）。
// 攻击中或已死亡的僵尸不可命中。
func (z *Zombie) ContainsPoint(x, y float64, now int64) bool {
	if z.Attacking() || z.dead {
		return false
	}
	minX, minY, maxX, maxY := z.HitBounds(now)
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

// AttackProgress 返回攻击动画进度 [0, 1]（选帧用）
func (z *Zombie) AttackProgress(now int64) float64 {
	if !z.attack.Started {
		return 0
	}
	return utils.Clamp01(float64(z.attack.Elapsed(now)) / float64(z.cfg.AttackAnimMs))
}

// DespawnProgress 返回入土动画进度 [0, 1]（选帧用）
func (z *Zombie) DespawnProgress(now int64) float64 {
	if !z.despawn.Started {
		return 0
	}
	return utils.Clamp01(float64(z.despawn.Elapsed(now)) / float64(z.cfg.DespawnAnimMs))
}

// RemainingFraction 返回剩余存活时间占比 [0, 1]（用于倒计时条）
func (z *Zombie) RemainingFraction(now int64) float64 {
	if z.Lifetime <= 0 {
		return 0
	}
	remaining := z.Lifetime - (now - z.BornAt)
	if remaining < 0 {
		remaining = 0
	}
	return float64(remaining) / float64(z.Lifetime)
}

// HitFlashStrength 返回被击中闪白的强度 [0, 1]，随时间衰减到 0
func (z *Zombie) HitFlashStrength(now int64) float64 {
	if !z.hit.Started {
		return 0
	}
	t := float64(z.hit.Elapsed(now)) / float64(z.cfg.HitFlashMs)
	if t >= 1 {
		return 0
	}
	return 1 - t
}
