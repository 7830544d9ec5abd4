package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/waz/pkg/app"
	"github.com/decker502/waz/pkg/config"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	mute       = flag.Bool("mute", false, "启动时静音")
	seed       = flag.Int64("seed", 0, "随机种子（0 = 每局随机）")
	configPath = flag.String("config", "data/config.yaml", "调参配置文件路径")
	logPath    = flag.String("log", "game_log.md", "点击事件日志路径（空 = 禁用）")
	assetsDir  = flag.String("assets", "assets", "资源目录")
)

func main() {
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Mute:       *mute,
		Seed:       *seed,
		ConfigPath: *configPath,
		LogPath:    *logPath,
		AssetsDir:  *assetsDir,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
