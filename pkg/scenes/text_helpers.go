package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/waz/pkg/game"
)

// drawText 在指定位置绘制文字
// 字体缺失时降级为调试字体（固定尺寸，忽略 size 和颜色）
func drawText(screen *ebiten.Image, rm *game.ResourceManager, str string, x, y, size float64, clr color.Color) {
	face := rm.FontFace(size)
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawTextCentered 以 (cx, y) 为水平中心绘制文字
func drawTextCentered(screen *ebiten.Image, rm *game.ResourceManager, str string, cx, y, size float64, clr color.Color) {
	face := rm.FontFace(size)
	if face == nil {
		// 调试字体约 6 像素宽一个字符，粗略居中
		ebitenutil.DebugPrintAt(screen, str, int(cx)-len(str)*3, int(y))
		return
	}

	w, _ := text.Measure(str, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-w/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
