package game

import (
	"log"

	"github.com/decker502/waz/pkg/config"
)

// Session 单局游戏的会话状态
//
// 保存命中/失误/生命/等级等聚合计数，由游戏场景独占持有，
// 每局创建一次，重开时 Reset。等级由累计击杀数推导：
// level = min(maxLevel, kills/killsPerLevel + 1)，升级奖励 +1 生命（封顶）。
type Session struct {
	cfg *config.Config

	Hits          int
	Misses        int
	Lives         int
	Level         int
	ZombiesKilled int
	GameOver      bool
}

// NewSession 创建新会话
func NewSession(cfg *config.Config) *Session {
	s := &Session{cfg: cfg}
	s.Reset()
	return s
}

// Reset 恢复到初始状态
func (s *Session) Reset() {
	s.Hits = 0
	s.Misses = 0
	s.Lives = s.cfg.Lives.Initial
	s.Level = 1
	s.ZombiesKilled = 0
	s.GameOver = false
}

// RecordHit 记录一次有效击中
// 返回是否触发了升级（升级时自动奖励 +1 生命，封顶）
func (s *Session) RecordHit() bool {
	s.Hits++
	s.ZombiesKilled++

	newLevel := s.ZombiesKilled/s.cfg.Level.KillsPerLevel + 1
	if newLevel > s.cfg.Level.MaxLevel {
		newLevel = s.cfg.Level.MaxLevel
	}
	if newLevel > s.Level {
		s.Level = newLevel
		if s.GainLife() {
			log.Printf("[Session] level up to %d, bonus life (%d/%d)", s.Level, s.Lives, s.cfg.Lives.Max)
		} else {
			log.Printf("[Session] level up to %d, already at max lives", s.Level)
		}
		return true
	}
	return false
}

// RecordMiss 记录一次落空点击
func (s *Session) RecordMiss() {
	s.Misses++
}

// GainLife 增加一条命，封顶于配置上限
// 返回是否真正增加了生命
func (s *Session) GainLife() bool {
	if s.Lives >= s.cfg.Lives.Max {
		return false
	}
	s.Lives++
	return true
}

// LoseLives 扣除 n 条命，归零时进入游戏结束状态
func (s *Session) LoseLives(n int) {
	s.Lives -= n
	if s.Lives <= 0 {
		s.Lives = 0
		s.GameOver = true
	}
}

// Accuracy 返回命中率 [0, 1]；尚无点击时返回 0
func (s *Session) Accuracy() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// KillsUntilNextLevel 返回距离下一级还需的击杀数；已满级返回 0
func (s *Session) KillsUntilNextLevel() int {
	if s.Level >= s.cfg.Level.MaxLevel {
		return 0
	}
	return s.Level*s.cfg.Level.KillsPerLevel - s.ZombiesKilled
}

// MaxLives 返回生命上限（HUD 显示用）
func (s *Session) MaxLives() int {
	return s.cfg.Lives.Max
}
