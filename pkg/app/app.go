// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：创建各管理器、
// 装配场景上下文并实现 ebiten.Game 接口。
package app

import (
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/game"
	"github.com/decker502/waz/pkg/scenes"
)

// 跨平台设置存储使用的应用名
const appName = "waz"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Mute 启动时静音（不改动持久化设置）
	Mute bool
	// Seed 随机种子；0 表示使用当前时间（每局不同）
	Seed int64
	// ConfigPath 调参配置文件路径，为空或加载失败时使用内置默认值
	ConfigPath string
	// LogPath 点击事件日志路径，为空则禁用
	LogPath string
	// AssetsDir 资源目录
	AssetsDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 所有外部资源（配置文件、图片、音频、设置存储）都是可选的：
// 任何一项缺失都只记录警告并降级，不会让启动失败。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 调参配置：文件缺失或非法时降级为内置默认值
	gameConfig := config.DefaultConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		if err != nil {
			log.Printf("[App] Warning: %v (using default config)", err)
		} else {
			gameConfig = loaded
			log.Printf("[App] config loaded from %s", cfg.ConfigPath)
		}
	}

	// 设置存储：打开失败进入仅内存的降级模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, err
	}
	if cfg.Mute && !settingsManager.GetSettings().Muted {
		settingsManager.ToggleMuted()
	}

	resourceManager := game.NewResourceManager(cfg.AssetsDir)
	audioManager := game.NewAudioManager(resourceManager, settingsManager)

	// 随机源：固定种子用于复现生成序列
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] rng seed=%d", seed)

	sceneManager := game.NewSceneManager()
	ctx := &scenes.Context{
		Config:       gameConfig,
		Layout:       config.DefaultLayout(),
		Resources:    resourceManager,
		Audio:        audioManager,
		Settings:     settingsManager,
		SceneManager: sceneManager,
		EventLogger:  game.NewEventLogger(cfg.LogPath),
		Rng:          rand.New(rand.NewSource(seed)),
	}
	sceneManager.SwitchTo(scenes.NewStartScene(ctx))

	// 锤子图存在时隐藏系统光标，由场景绘制锤子
	if resourceManager.Hammer() != nil {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
