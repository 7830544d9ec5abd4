package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/waz/pkg/utils"
)

// 滑块外观
const (
	sliderTrackHeight  = 6
	sliderHandleRadius = 10
)

// slider 水平音量滑块
//
// 按下轨道任意位置跳到该值，按住拖动连续调整。
// 值域固定 [0, 1]，调整结果通过 onChange 回调传出。
type slider struct {
	x, y, width float64 // 轨道位置与长度
	label       string
	value       float64
	dragging    bool
	onChange    func(value float64)
}

func newSlider(x, y, width float64, label string, initial float64, onChange func(float64)) *slider {
	return &slider{
		x:        x,
		y:        y,
		width:    width,
		label:    label,
		value:    utils.Clamp01(initial),
		onChange: onChange,
	}
}

// valueAt 把水平坐标换算为滑块值
func (s *slider) valueAt(px float64) float64 {
	return utils.Clamp01((px - s.x) / s.width)
}

// hitTest 判断坐标是否落在可交互区域（轨道加手柄的外扩范围）
func (s *slider) hitTest(px, py float64) bool {
	return px >= s.x-sliderHandleRadius && px <= s.x+s.width+sliderHandleRadius &&
		py >= s.y-sliderHandleRadius && py <= s.y+sliderHandleRadius
}

// handleInput 处理一帧输入，返回值是否发生变化
func (s *slider) handleInput(in utils.InputState) bool {
	if in.JustPressed && s.hitTest(float64(in.X), float64(in.Y)) {
		s.dragging = true
	}
	if !in.Held {
		s.dragging = false
	}
	if !s.dragging {
		return false
	}

	newValue := s.valueAt(float64(in.X))
	if newValue == s.value {
		return false
	}
	s.value = newValue
	if s.onChange != nil {
		s.onChange(newValue)
	}
	return true
}

// draw 绘制滑块（轨道 + 填充段 + 手柄）
func (s *slider) draw(screen *ebiten.Image) {
	trackColor := color.NRGBA{R: 70, G: 70, B: 80, A: 255}
	fillColor := color.NRGBA{R: 120, G: 200, B: 120, A: 255}
	handleColor := color.NRGBA{R: 230, G: 230, B: 230, A: 255}

	vector.DrawFilledRect(screen, float32(s.x), float32(s.y-sliderTrackHeight/2),
		float32(s.width), sliderTrackHeight, trackColor, true)
	vector.DrawFilledRect(screen, float32(s.x), float32(s.y-sliderTrackHeight/2),
		float32(s.width*s.value), sliderTrackHeight, fillColor, true)

	handleX := s.x + s.width*s.value
	vector.DrawFilledCircle(screen, float32(handleX), float32(s.y), sliderHandleRadius, handleColor, true)
}
