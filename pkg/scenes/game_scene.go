package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/waz/pkg/entities"
	"github.com/decker502/waz/pkg/game"
	"github.com/decker502/waz/pkg/systems"
	"github.com/decker502/waz/pkg/utils"
)

// 视觉效果时长（毫秒）
const (
	lifeLossFlashMs = 400
	levelUpBannerMs = 1200
	fpsSampleWindow = 10
)

// GameScene 对局场景
//
// 持有单局的全部可变状态：实体存活列表、会话计数、时钟与生成器。
// 每帧顺序：输入 → 实体更新 → 清理死亡实体 → 生成 → 粒子。
// 所有游戏逻辑计时取自 GameClock 的同一帧读数，与帧率无关。
type GameScene struct {
	ctx *Context

	clock     *game.GameClock
	session   *game.Session
	spawner   *systems.Spawner
	particles *systems.ParticleSystem

	zombies []*entities.Zombie
	brains  []*entities.Brain

	// 视觉状态
	lifeLossFlashUntil int64 // 红色受击闪屏的结束时刻
	levelUpBannerUntil int64 // 升级横幅的结束时刻
	debugMode          bool
	showFPS            bool

	fpsSamples [fpsSampleWindow]float64
	fpsIndex   int
}

// NewGameScene 创建并初始化一局新游戏
func NewGameScene(ctx *Context) *GameScene {
	scene := &GameScene{
		ctx:       ctx,
		clock:     game.NewGameClock(),
		session:   game.NewSession(ctx.Config),
		spawner:   systems.NewSpawner(ctx.SpawnPoints(), ctx.Config, ctx.Rng),
		particles: systems.NewParticleSystem(ctx.Rng),
	}
	log.Printf("[GameScene] new game: lives=%d, level=%d", scene.session.Lives, scene.session.Level)
	return scene
}

// Update 推进一帧对局
func (g *GameScene) Update(deltaTime float64) {
	g.recordFPSSample(deltaTime)
	g.handleKeys()

	in := utils.GetInputState()

	if g.session.GameOver {
		// 游戏结束画面：点击重开
		if in.JustPressed {
			g.restart()
		}
		return
	}

	if g.clock.Paused() {
		return
	}

	now := g.clock.Now()

	if in.JustPressed {
		g.handleClickAt(float64(in.X), float64(in.Y), now)
	}

	// 实体更新：统计本帧完成的攻击数
	attacks := 0
	for _, z := range g.zombies {
		if z.Update(now) {
			attacks++
		}
	}
	for _, b := range g.brains {
		b.Update(now)
	}

	if attacks > 0 {
		g.session.LoseLives(attacks)
		g.lifeLossFlashUntil = now + lifeLossFlashMs
		log.Printf("[GameScene] %d attack(s), lives=%d", attacks, g.session.Lives)
		if g.session.GameOver {
			log.Printf("[GameScene] game over: hits=%d misses=%d level=%d",
				g.session.Hits, g.session.Misses, g.session.Level)
		}
	}

	g.pruneDead()

	// 生成新实体（生成器只提出实体，存活列表归场景所有）
	if z := g.spawner.MaybeSpawn(now, g.zombies, g.brains, g.session.Level); z != nil {
		g.zombies = append(g.zombies, z)
	}
	if b := g.spawner.MaybeSpawnBrain(now, g.zombies, g.brains); b != nil {
		g.brains = append(g.brains, b)
	}

	g.particles.Update(deltaTime)
}

// handleKeys 处理对局内快捷键
func (g *GameScene) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[GameScene] back to menu")
		g.ctx.Audio.PauseMusic()
		g.ctx.SceneManager.SwitchTo(NewStartScene(g.ctx))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && !g.session.GameOver {
		if g.clock.TogglePause() {
			g.ctx.Audio.PauseMusic()
			log.Printf("[GameScene] paused")
		} else {
			g.ctx.Audio.ResumeMusic()
			log.Printf("[GameScene] resumed")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.ctx.Settings.ToggleMuted()
		g.ctx.Audio.ApplyVolumes()
		if err := g.ctx.Settings.Save(); err != nil {
			log.Printf("[GameScene] Warning: failed to save settings: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.showFPS = !g.showFPS
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debugMode = !g.debugMode
		log.Printf("[GameScene] debug=%v", g.debugMode)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
}

// handleClickAt 处理一次点击
//
// 命中优先级：大脑优先于僵尸；同类实体后生成的在上层，
// 因此都从列表尾部向前检测，最多命中一个目标。
func (g *GameScene) handleClickAt(x, y float64, now int64) {
	g.particles.SpawnBurst(x, y)

	for i := len(g.brains) - 1; i >= 0; i-- {
		b := g.brains[i]
		if b.ContainsPoint(x, y) && b.MarkPickedUp(now) {
			gained := g.session.GainLife()
			g.ctx.Audio.PlayHit()
			g.ctx.EventLogger.LogClick(int(x), int(y), true,
				fmt.Sprintf("Brain at spawn (%.0f, %.0f)", b.Spawn.X, b.Spawn.Y))
			log.Printf("[GameScene] brain picked up, lives=%d (gained=%v)", g.session.Lives, gained)
			return
		}
	}

	for i := len(g.zombies) - 1; i >= 0; i-- {
		z := g.zombies[i]
		if z.ContainsPoint(x, y, now) && z.MarkHit(now) {
			leveledUp := g.session.RecordHit()
			g.ctx.EventLogger.LogClick(int(x), int(y), true,
				fmt.Sprintf("Zombie at spawn (%.0f, %.0f)", z.Spawn.X, z.Spawn.Y))
			if leveledUp {
				g.levelUpBannerUntil = now + levelUpBannerMs
				g.ctx.Audio.PlayLevelUp()
				g.ctx.EventLogger.LogLevelUp(g.session.Level)
			} else {
				g.ctx.Audio.PlayHit()
			}
			return
		}
	}

	g.session.RecordMiss()
	g.ctx.EventLogger.LogClick(int(x), int(y), false, "No target hit")
}

// pruneDead 从存活列表中移除死亡实体，释放其生成点
func (g *GameScene) pruneDead() {
	aliveZombies := g.zombies[:0]
	for _, z := range g.zombies {
		if z.Alive() {
			aliveZombies = append(aliveZombies, z)
		}
	}
	g.zombies = aliveZombies

	aliveBrains := g.brains[:0]
	for _, b := range g.brains {
		if b.Alive() {
			aliveBrains = append(aliveBrains, b)
		}
	}
	g.brains = aliveBrains
}

// restart 重开一局，复用场景对象
func (g *GameScene) restart() {
	log.Printf("[GameScene] restart")
	g.session.Reset()
	g.clock.Reset()
	g.spawner.Reset()
	g.particles.Clear()
	g.zombies = nil
	g.brains = nil
	g.lifeLossFlashUntil = 0
	g.levelUpBannerUntil = 0
	g.ctx.Audio.StartMusic()
}

// recordFPSSample 记录一帧耗时，用于平滑 FPS 显示
func (g *GameScene) recordFPSSample(deltaTime float64) {
	g.fpsSamples[g.fpsIndex] = deltaTime
	g.fpsIndex = (g.fpsIndex + 1) % fpsSampleWindow
}

// smoothedFPS 返回最近若干帧的平均 FPS
func (g *GameScene) smoothedFPS() float64 {
	total := 0.0
	count := 0
	for _, dt := range g.fpsSamples {
		if dt > 0 {
			total += dt
			count++
		}
	}
	if count == 0 || total == 0 {
		return 0
	}
	return float64(count) / total
}
