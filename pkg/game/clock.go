// Package game 提供游戏的全局服务：时钟、会话状态、资源、音频、设置和事件日志
package game

import "time"

// GameClock 暂停感知的游戏时钟
//
// 所有游戏逻辑计时都来自本时钟的毫秒读数，每帧采样一次。
// 暂停通过从读数中扣除累计暂停时长实现：暂停期间 Now() 冻结，
// 恢复后实体看到的时间是连续的，不会出现时间跳变导致的瞬间超时。
type GameClock struct {
	nowFunc     func() time.Time // 可注入，便于测试
	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
}

// NewGameClock 创建并启动游戏时钟
func NewGameClock() *GameClock {
	return newGameClockWith(time.Now)
}

func newGameClockWith(nowFunc func() time.Time) *GameClock {
	return &GameClock{
		nowFunc: nowFunc,
		start:   nowFunc(),
	}
}

// Now 返回当前游戏时刻（毫秒），不包含累计暂停时长
// 暂停期间返回值冻结
func (c *GameClock) Now() int64 {
	ref := c.nowFunc()
	if c.paused {
		ref = c.pausedAt
	}
	return int64((ref.Sub(c.start) - c.pausedTotal) / time.Millisecond)
}

// Pause 暂停时钟（重复调用无效果）
func (c *GameClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.nowFunc()
}

// Resume 恢复时钟，将暂停时段计入累计暂停时长
func (c *GameClock) Resume() {
	if !c.paused {
		return
	}
	c.pausedTotal += c.nowFunc().Sub(c.pausedAt)
	c.paused = false
}

// TogglePause 切换暂停状态，返回切换后是否处于暂停
func (c *GameClock) TogglePause() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

// Paused 返回是否处于暂停状态
func (c *GameClock) Paused() bool {
	return c.paused
}

// Reset 重置时钟到零点（游戏重开时调用）
func (c *GameClock) Reset() {
	c.start = c.nowFunc()
	c.paused = false
	c.pausedTotal = 0
}
