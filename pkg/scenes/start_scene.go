package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/utils"
)

// 开始按钮位置（逻辑坐标）
const (
	startButtonWidth  = 240
	startButtonHeight = 64
	startButtonY      = 300
)

// StartScene 开始菜单场景
//
// 展示标题、开始按钮、音量滑块和操作说明。
// 音量调整实时生效，拖动结束时持久化设置。
type StartScene struct {
	ctx *Context

	bgmSlider   *slider
	sfxSlider   *slider
	wasDragging bool // 上一帧是否在拖动滑块（用于拖动结束时保存设置）

	hoverStart bool
}

// NewStartScene 创建开始菜单场景
func NewStartScene(ctx *Context) *StartScene {
	scene := &StartScene{ctx: ctx}

	settings := ctx.Settings.GetSettings()
	sliderX := float64(config.GameWindowWidth)/2 - 100
	scene.bgmSlider = newSlider(sliderX, 410, 200, "BGM", settings.MusicVolume, func(v float64) {
		ctx.Settings.SetMusicVolume(v)
		ctx.Audio.ApplyVolumes()
	})
	scene.sfxSlider = newSlider(sliderX, 450, 200, "SFX", settings.SoundVolume, func(v float64) {
		ctx.Settings.SetSoundVolume(v)
		ctx.Audio.ApplyVolumes()
	})

	return scene
}

// Update 处理开始菜单输入
func (s *StartScene) Update(deltaTime float64) {
	in := utils.GetInputState()

	// 音量滑块
	s.bgmSlider.handleInput(in)
	s.sfxSlider.handleInput(in)

	// 拖动结束时保存设置
	dragging := s.bgmSlider.dragging || s.sfxSlider.dragging
	if s.wasDragging && !dragging {
		if err := s.ctx.Settings.Save(); err != nil {
			log.Printf("[StartScene] Warning: failed to save settings: %v", err)
		}
	}
	s.wasDragging = dragging

	// 静音切换
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		muted := s.ctx.Settings.ToggleMuted()
		s.ctx.Audio.ApplyVolumes()
		if err := s.ctx.Settings.Save(); err != nil {
			log.Printf("[StartScene] Warning: failed to save settings: %v", err)
		}
		log.Printf("[StartScene] muted=%v", muted)
	}

	// 开始游戏：按钮点击或键盘
	bx, by := startButtonRect()
	s.hoverStart = float64(in.X) >= bx && float64(in.X) <= bx+startButtonWidth &&
		float64(in.Y) >= by && float64(in.Y) <= by+startButtonHeight

	startClicked := in.JustPressed && s.hoverStart && !dragging
	startKeyed := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	if startClicked || startKeyed {
		s.startGame()
	}
}

// startGame 切换到对局场景并启动背景音乐
func (s *StartScene) startGame() {
	log.Printf("[StartScene] starting game")
	s.ctx.Audio.StartMusic()
	s.ctx.SceneManager.SwitchTo(NewGameScene(s.ctx))
}

func startButtonRect() (x, y float64) {
	return float64(config.GameWindowWidth)/2 - startButtonWidth/2, startButtonY
}

// Draw 绘制开始菜单
func (s *StartScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 25, G: 30, B: 25, A: 255})

	rm := s.ctx.Resources
	cx := float64(config.GameWindowWidth) / 2

	drawTextCentered(screen, rm, "WHACK-A-ZOMBIE", cx, 110, 56, color.NRGBA{R: 180, G: 230, B: 140, A: 255})
	drawTextCentered(screen, rm, "Zombies are rising from their graves!", cx, 190, 20, color.White)
	drawTextCentered(screen, rm, "Whack them before they bite. Grab brains for extra lives.", cx, 220, 20, color.White)

	// 开始按钮
	bx, by := startButtonRect()
	buttonColor := color.NRGBA{R: 60, G: 120, B: 60, A: 255}
	if s.hoverStart {
		buttonColor = color.NRGBA{R: 80, G: 160, B: 80, A: 255}
	}
	vector.DrawFilledRect(screen, float32(bx), float32(by), startButtonWidth, startButtonHeight, buttonColor, true)
	drawTextCentered(screen, rm, "START", cx, by+18, 28, color.White)

	// 音量滑块
	drawText(screen, rm, "BGM", s.bgmSlider.x-60, s.bgmSlider.y-10, 18, color.White)
	s.bgmSlider.draw(screen)
	drawText(screen, rm, "SFX", s.sfxSlider.x-60, s.sfxSlider.y-10, 18, color.White)
	s.sfxSlider.draw(screen)

	if s.ctx.Settings.GetSettings().Muted {
		drawTextCentered(screen, rm, "MUTED (press M)", cx, 485, 16, color.NRGBA{R: 220, G: 120, B: 120, A: 255})
	}

	drawTextCentered(screen, rm, "Space/Enter: start   M: mute   P: pause   Esc: menu", cx, 515, 14,
		color.NRGBA{R: 160, G: 160, B: 160, A: 255})

	drawCursor(screen, rm)
}
