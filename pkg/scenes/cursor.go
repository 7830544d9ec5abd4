package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/waz/pkg/game"
)

// drawCursor 在鼠标位置绘制锤子光标
// 锤子图缺失时什么都不画（保留系统光标）
func drawCursor(screen *ebiten.Image, rm *game.ResourceManager) {
	hammer := rm.Hammer()
	if hammer == nil {
		return
	}

	x, y := ebiten.CursorPosition()
	op := &ebiten.DrawImageOptions{}
	// 锤头对准点击位置
	op.GeoM.Translate(float64(x)-8, float64(y)-8)
	screen.DrawImage(hammer, op)
}
