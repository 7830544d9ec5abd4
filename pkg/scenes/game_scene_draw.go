package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/entities"
	"github.com/decker502/waz/pkg/game"
)

// 常态帧轮播速度（每帧毫秒）
const idleFrameMs = 120

// Draw 绘制一帧对局
//
// 绘制顺序：背景 → 大脑 → 僵尸（含倒计时条）→ 粒子 →
// HUD → 全屏效果（受击闪屏、升级横幅、暂停/结束遮罩）→ 光标
func (g *GameScene) Draw(screen *ebiten.Image) {
	now := g.clock.Now()

	g.drawBackground(screen)

	for _, b := range g.brains {
		g.drawBrain(screen, b, now)
	}
	for _, z := range g.zombies {
		g.drawZombie(screen, z, now)
	}

	g.particles.Draw(screen)

	if g.debugMode {
		g.drawDebugOverlay(screen, now)
	}

	g.drawHUD(screen)
	g.drawEffects(screen, now)

	drawCursor(screen, g.ctx.Resources)
}

// drawBackground 绘制背景图；缺失时用纯色草地加程序化墓穴
func (g *GameScene) drawBackground(screen *ebiten.Image) {
	if bg := g.ctx.Resources.Background(); bg != nil {
		op := &ebiten.DrawImageOptions{}
		bounds := bg.Bounds()
		op.GeoM.Scale(
			float64(config.GameWindowWidth)/float64(bounds.Dx()),
			float64(config.GameWindowHeight)/float64(bounds.Dy()))
		screen.DrawImage(bg, op)
		return
	}

	screen.Fill(color.NRGBA{R: 50, G: 90, B: 45, A: 255})
	holeColor := color.NRGBA{R: 60, G: 42, B: 30, A: 255}
	for _, sp := range g.ctx.SpawnPoints() {
		vector.DrawFilledCircle(screen, float32(sp.X), float32(sp.Y), float32(sp.Radius), holeColor, true)
	}
}

// drawBrain 绘制大脑道具（带淡入淡出与拾取闪光）
func (g *GameScene) drawBrain(screen *ebiten.Image, b *entities.Brain, now int64) {
	alpha := b.Alpha(now)
	if alpha <= 0 {
		return
	}
	w, h := b.Size()

	if img := g.ctx.Resources.BrainImage(); img != nil {
		op := &ebiten.DrawImageOptions{}
		bounds := img.Bounds()
		op.GeoM.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
		op.GeoM.Translate(b.Spawn.X-w/2, b.Spawn.Y-h/2)
		op.ColorScale.ScaleAlpha(float32(alpha))
		screen.DrawImage(img, op)
	} else {
		c := color.NRGBA{R: 230, G: 150, B: 170, A: uint8(255 * alpha)}
		vector.DrawFilledCircle(screen, float32(b.Spawn.X), float32(b.Spawn.Y), float32(w/2), c, true)
	}

	// 拾取闪光：扩散的白色圆环
	if flash := b.PickupFlashStrength(now); flash > 0 {
		ringColor := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(200 * flash)}
		radius := float32(w/2) * float32(2-flash)
		vector.StrokeCircle(screen, float32(b.Spawn.X), float32(b.Spawn.Y), radius, 3, ringColor, true)
	}
}

// drawZombie 绘制一只僵尸（按状态选帧）及其倒计时条
func (g *GameScene) drawZombie(screen *ebiten.Image, z *entities.Zombie, now int64) {
	w, h := z.SpriteSize()
	cx := z.Spawn.X
	cy := z.Spawn.Y + z.VerticalOffset(now)

	if frames := g.ctx.Resources.ZombieFrames(); frames != nil {
		frame := g.zombieFrame(frames, z, now)
		if frame != nil {
			op := &ebiten.DrawImageOptions{}
			sx, sy := g.ctx.Resources.ZombieDrawScale(&g.ctx.Config.Zombie)
			op.GeoM.Scale(sx, sy)
			op.GeoM.Translate(cx-w/2, cy-h/2)
			if flash := z.HitFlashStrength(now); flash > 0 {
				// 抬高颜色分量模拟闪白（超出 1 的部分被钳制）
				s := float32(1 + 2*flash)
				op.ColorScale.Scale(s, s, s, 1)
			}
			screen.DrawImage(frame, op)
		}
	} else {
		g.drawZombieProcedural(screen, z, now, cx, cy, w, h)
	}

	// 存活倒计时条（攻击/入土阶段不再显示）
	if z.State() == entities.ZombieRising {
		g.drawLifetimeBar(screen, z, now, cx, cy-h/2-10, w)
	}
}

// zombieFrame 按状态与进度选择动画帧
func (g *GameScene) zombieFrame(frames *game.ZombieFrames, z *entities.Zombie, now int64) *ebiten.Image {
	switch z.State() {
	case entities.ZombieAttacking:
		return frameByProgress(frames.Attack, z.AttackProgress(now))
	case entities.ZombieDespawning, entities.ZombieDead:
		return frameByProgress(frames.Death, z.DespawnProgress(now))
	default:
		if len(frames.Normal) == 0 {
			return nil
		}
		idx := int((now-z.BornAt)/idleFrameMs) % len(frames.Normal)
		return frames.Normal[idx]
	}
}

// frameByProgress 按动画进度 [0, 1] 选帧
func frameByProgress(frames []*ebiten.Image, progress float64) *ebiten.Image {
	if len(frames) == 0 {
		return nil
	}
	idx := int(progress * float64(len(frames)))
	if idx >= len(frames) {
		idx = len(frames) - 1
	}
	return frames[idx]
}

// drawZombieProcedural 无精灵表时的程序化僵尸
func (g *GameScene) drawZombieProcedural(screen *ebiten.Image, z *entities.Zombie, now int64, cx, cy, w, h float64) {
	body := color.NRGBA{R: 110, G: 140, B: 90, A: 255}
	switch z.State() {
	case entities.ZombieAttacking:
		body = color.NRGBA{R: 170, G: 90, B: 70, A: 255}
	case entities.ZombieDespawning:
		body = color.NRGBA{R: 90, G: 110, B: 75, A: 255}
	}
	if flash := z.HitFlashStrength(now); flash > 0 {
		body = color.NRGBA{R: 255, G: 255, B: 255, A: uint8(155 + 100*flash)}
	}

	vector.DrawFilledRect(screen, float32(cx-w/2), float32(cy-h/2), float32(w), float32(h), body, true)
	// 眼睛
	eye := color.NRGBA{R: 220, G: 40, B: 40, A: 255}
	vector.DrawFilledCircle(screen, float32(cx-w/6), float32(cy-h/5), 5, eye, true)
	vector.DrawFilledCircle(screen, float32(cx+w/6), float32(cy-h/5), 5, eye, true)
}

// drawLifetimeBar 绘制存活倒计时条，随剩余时间由绿变红
func (g *GameScene) drawLifetimeBar(screen *ebiten.Image, z *entities.Zombie, now int64, cx, y, w float64) {
	frac := z.RemainingFraction(now)

	barW := w * 0.8
	vector.DrawFilledRect(screen, float32(cx-barW/2), float32(y), float32(barW), 5,
		color.NRGBA{R: 40, G: 40, B: 40, A: 200}, true)

	fill := color.NRGBA{R: uint8(255 * (1 - frac)), G: uint8(200 * frac), B: 40, A: 255}
	vector.DrawFilledRect(screen, float32(cx-barW/2), float32(y), float32(barW*frac), 5, fill, true)
}

// drawHUD 绘制顶部状态栏
func (g *GameScene) drawHUD(screen *ebiten.Image) {
	rm := g.ctx.Resources

	drawText(screen, rm, fmt.Sprintf("Lives: %d/%d", g.session.Lives, g.session.MaxLives()),
		15, 10, 20, color.White)
	drawText(screen, rm, fmt.Sprintf("Level: %d", g.session.Level), 160, 10, 20, color.White)
	drawText(screen, rm, fmt.Sprintf("Hits: %d  Misses: %d  Accuracy: %.0f%%",
		g.session.Hits, g.session.Misses, g.session.Accuracy()*100), 280, 10, 20, color.White)

	if next := g.session.KillsUntilNextLevel(); next > 0 {
		drawText(screen, rm, fmt.Sprintf("Next level in: %d", next), 620, 10, 20,
			color.NRGBA{R: 180, G: 220, B: 180, A: 255})
	}

	if g.showFPS {
		drawText(screen, rm, fmt.Sprintf("FPS: %.1f", g.smoothedFPS()),
			float64(config.GameWindowWidth)-110, 10, 18, color.NRGBA{R: 255, G: 255, B: 120, A: 255})
	}

	if g.ctx.Settings.GetSettings().Muted {
		drawText(screen, rm, "MUTED", float64(config.GameWindowWidth)-110, 32, 16,
			color.NRGBA{R: 220, G: 120, B: 120, A: 255})
	}
}

// drawEffects 绘制全屏效果与遮罩
func (g *GameScene) drawEffects(screen *ebiten.Image, now int64) {
	cx := float64(config.GameWindowWidth) / 2
	rm := g.ctx.Resources

	// 受击红色闪屏，随剩余时间淡出
	if remaining := g.lifeLossFlashUntil - now; remaining > 0 {
		alpha := uint8(90 * float64(remaining) / lifeLossFlashMs)
		vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight,
			color.NRGBA{R: 255, A: alpha}, false)
	}

	// 升级横幅
	if g.levelUpBannerUntil > now {
		drawTextCentered(screen, rm, fmt.Sprintf("LEVEL %d!", g.session.Level),
			cx, 70, 40, color.NRGBA{R: 255, G: 230, B: 100, A: 255})
	}

	if g.clock.Paused() && !g.session.GameOver {
		g.drawOverlayBackdrop(screen)
		drawTextCentered(screen, rm, "PAUSED", cx, 230, 48, color.White)
		drawTextCentered(screen, rm, "Press P to resume", cx, 300, 20, color.White)
	}

	if g.session.GameOver {
		g.drawOverlayBackdrop(screen)
		drawTextCentered(screen, rm, "GAME OVER", cx, 180, 52, color.NRGBA{R: 230, G: 80, B: 80, A: 255})
		drawTextCentered(screen, rm, fmt.Sprintf("Level %d   Zombies whacked: %d",
			g.session.Level, g.session.ZombiesKilled), cx, 260, 24, color.White)
		drawTextCentered(screen, rm, fmt.Sprintf("Accuracy: %.0f%%", g.session.Accuracy()*100),
			cx, 295, 24, color.White)
		drawTextCentered(screen, rm, "Click to play again, Esc for menu", cx, 360, 20,
			color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	}
}

// drawOverlayBackdrop 半透明黑色遮罩
func (g *GameScene) drawOverlayBackdrop(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight,
		color.NRGBA{A: 170}, false)
}

// drawDebugOverlay 绘制命中矩形、生成点与调度信息
func (g *GameScene) drawDebugOverlay(screen *ebiten.Image, now int64) {
	boxColor := color.NRGBA{R: 255, G: 80, B: 80, A: 255}
	for _, z := range g.zombies {
		minX, minY, maxX, maxY := z.HitBounds(now)
		vector.StrokeRect(screen, float32(minX), float32(minY),
			float32(maxX-minX), float32(maxY-minY), 1, boxColor, false)
	}

	pointColor := color.NRGBA{R: 120, G: 180, B: 255, A: 255}
	for _, sp := range g.ctx.SpawnPoints() {
		vector.StrokeCircle(screen, float32(sp.X), float32(sp.Y), float32(sp.Radius), 1, pointColor, true)
	}

	rm := g.ctx.Resources
	drawText(screen, rm, fmt.Sprintf("t=%dms  zombies=%d  brains=%d  next spawn in %dms",
		now, len(g.zombies), len(g.brains), g.spawner.NextSpawnAt()-now),
		15, float64(config.GameWindowHeight)-28, 16, color.NRGBA{R: 255, G: 255, B: 255, A: 220})
}
