package game

import (
	"testing"

	"github.com/decker502/waz/pkg/config"
)

// TestSessionInitialState 初始状态
func TestSessionInitialState(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession(cfg)

	if s.Lives != cfg.Lives.Initial {
		t.Errorf("Lives = %d, expected %d", s.Lives, cfg.Lives.Initial)
	}
	if s.Level != 1 {
		t.Errorf("Level = %d, expected 1", s.Level)
	}
	if s.GameOver {
		t.Error("GameOver should be false initially")
	}
	if s.Accuracy() != 0 {
		t.Errorf("Accuracy with no clicks = %f, expected 0", s.Accuracy())
	}
}

// TestSessionLevelProgression 每 10 次击杀升一级，升级奖励 +1 生命
func TestSessionLevelProgression(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession(cfg)

	// 前 9 次击杀不升级
	for i := 0; i < 9; i++ {
		if s.RecordHit() {
			t.Fatalf("hit %d should not level up", i+1)
		}
	}
	if s.Level != 1 {
		t.Fatalf("Level = %d, expected 1 after 9 kills", s.Level)
	}

	// 第 10 次击杀升到 2 级并奖励一条命
	livesBefore := s.Lives
	if !s.RecordHit() {
		t.Fatal("10th hit should level up")
	}
	if s.Level != 2 {
		t.Errorf("Level = %d, expected 2", s.Level)
	}
	if s.Lives != livesBefore+1 {
		t.Errorf("Lives = %d, expected %d (level-up bonus)", s.Lives, livesBefore+1)
	}
}

// TestSessionLevelCap 等级封顶于 MaxLevel
func TestSessionLevelCap(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession(cfg)

	totalKills := cfg.Level.MaxLevel*cfg.Level.KillsPerLevel + 50
	for i := 0; i < totalKills; i++ {
		s.RecordHit()
	}
	if s.Level != cfg.Level.MaxLevel {
		t.Errorf("Level = %d, expected cap %d", s.Level, cfg.Level.MaxLevel)
	}
	if s.KillsUntilNextLevel() != 0 {
		t.Errorf("KillsUntilNextLevel at cap = %d, expected 0", s.KillsUntilNextLevel())
	}
}

// TestSessionLivesCap 生命封顶于配置上限
func TestSessionLivesCap(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession(cfg)

	for i := 0; i < cfg.Lives.Max+5; i++ {
		s.GainLife()
	}
	if s.Lives != cfg.Lives.Max {
		t.Errorf("Lives = %d, expected cap %d", s.Lives, cfg.Lives.Max)
	}
	if s.GainLife() {
		t.Error("GainLife at cap should return false")
	}
}

// TestSessionGameOver 生命归零进入游戏结束；不会出现负数生命
func TestSessionGameOver(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession(cfg)

	s.LoseLives(s.Lives - 1)
	if s.GameOver {
		t.Fatal("GameOver should not trigger with one life left")
	}

	s.LoseLives(3) // 同一帧多只僵尸攻击也只归零
	if !s.GameOver {
		t.Error("GameOver should trigger at zero lives")
	}
	if s.Lives != 0 {
		t.Errorf("Lives = %d, expected clamped to 0", s.Lives)
	}
}

// TestSessionAccuracy 命中率计算
func TestSessionAccuracy(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession(cfg)

	s.RecordHit()
	s.RecordHit()
	s.RecordHit()
	s.RecordMiss()

	if got := s.Accuracy(); got != 0.75 {
		t.Errorf("Accuracy = %f, expected 0.75", got)
	}
}

// TestSessionReset 重置清空全部计数
func TestSessionReset(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSession(cfg)

	for i := 0; i < 25; i++ {
		s.RecordHit()
	}
	s.RecordMiss()
	s.LoseLives(100)

	s.Reset()
	if s.Hits != 0 || s.Misses != 0 || s.ZombiesKilled != 0 {
		t.Error("Reset should clear counters")
	}
	if s.Level != 1 || s.Lives != cfg.Lives.Initial {
		t.Errorf("Reset state: level=%d lives=%d, expected 1/%d", s.Level, s.Lives, cfg.Lives.Initial)
	}
	if s.GameOver {
		t.Error("Reset should clear GameOver")
	}
}
