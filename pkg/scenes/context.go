// Package scenes 提供游戏的各个场景（开始菜单、对局）
package scenes

import (
	"math/rand"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/entities"
	"github.com/decker502/waz/pkg/game"
)

// Context 场景间共享的依赖集合
//
// 由应用层创建一次，传给所有场景。场景切换（开始菜单 → 对局 →
// 游戏结束重开）复用同一份 Context，保证设置和资源只加载一次。
type Context struct {
	Config       *config.Config
	Layout       *config.LayoutConfig
	Resources    *game.ResourceManager
	Audio        *game.AudioManager
	Settings     *game.SettingsManager
	SceneManager *game.SceneManager
	EventLogger  *game.EventLogger
	Rng          *rand.Rand
}

// SpawnPoints 根据布局配置构建生成点集合
func (ctx *Context) SpawnPoints() []entities.SpawnPoint {
	points := make([]entities.SpawnPoint, 0, len(ctx.Layout.Positions))
	for _, pos := range ctx.Layout.Positions {
		points = append(points, entities.SpawnPoint{
			X:      pos[0],
			Y:      pos[1],
			Radius: ctx.Layout.BaseRadius,
		})
	}
	return points
}
