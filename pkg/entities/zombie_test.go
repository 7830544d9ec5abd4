package entities

import (
	"testing"

	"github.com/decker502/waz/pkg/config"
)

func testZombieConfig() *config.ZombieConfig {
	cfg := config.DefaultConfig()
	return &cfg.Zombie
}

func testSpawnPoint() SpawnPoint {
	return SpawnPoint{X: 480, Y: 270, Radius: 30}
}

// TestZombieTimeoutScenario 完整的超时攻击时间线
//
// born=1000, lifetime=800：
//   - t=1799 仍可被击中（已过 799 < 800）
//   - t=1800 转入攻击状态，此时点击必须被拒绝
//   - t=2100 攻击动画（300ms）完成，恰好扣一次命，转入入土状态
func TestZombieTimeoutScenario(t *testing.T) {
	cfg := testZombieConfig()
	z := NewZombie(testSpawnPoint(), 1000, 800, cfg)

	// t=1799: 仍然活跃可击中
	if z.Update(1799) {
		t.Error("Update(1799) reported attack, expected none")
	}
	if z.State() != ZombieRising {
		t.Errorf("state at t=1799 = %v, expected Rising", z.State())
	}
	if !z.ContainsPoint(480, 270, 1799) {
		t.Error("center click at t=1799 should hit")
	}

	// t=1800: elapsed=800 >= lifetime → 攻击开始
	if z.Update(1800) {
		t.Error("Update(1800) reported attack completion, expected only transition")
	}
	if z.State() != ZombieAttacking {
		t.Errorf("state at t=1800 = %v, expected Attacking", z.State())
	}

	// t=1850: 攻击中点击必须无效
	if z.MarkHit(1850) {
		t.Error("MarkHit(1850) during attack should be rejected")
	}
	if z.ContainsPoint(480, 270, 1850) {
		t.Error("ContainsPoint during attack should be false")
	}

	// t=2099: 攻击动画未完成
	if z.Update(2099) {
		t.Error("Update(2099) reported attack, animation not finished")
	}

	// t=2100: 攻击完成，恰好一次
	if !z.Update(2100) {
		t.Error("Update(2100) should report attack occurred")
	}
	if z.State() != ZombieDespawning {
		t.Errorf("state after attack = %v, expected Despawning", z.State())
	}

	// 后续 Update 不得再次报告攻击（防止重复扣血）
	for _, now := range []int64{2100, 2150, 2200, 3000} {
		if z.Update(now) {
			t.Errorf("Update(%d) reported attack again, damage must be dealt once", now)
		}
	}

	// 入土动画（250ms）完成后死亡
	if z.State() != ZombieDead {
		t.Errorf("state after despawn = %v, expected Dead", z.State())
	}
}

// TestMarkHitIdempotent 击中标记幂等：同一僵尸只计一次分
func TestMarkHitIdempotent(t *testing.T) {
	cfg := testZombieConfig()
	z := NewZombie(testSpawnPoint(), 0, 2000, cfg)

	if !z.MarkHit(500) {
		t.Fatal("first MarkHit should succeed")
	}
	if z.MarkHit(500) {
		t.Error("second MarkHit at same time should be rejected")
	}
	if z.MarkHit(600) {
		t.Error("MarkHit in later frame should be rejected")
	}
	if z.State() != ZombieDespawning {
		t.Errorf("state after hit = %v, expected Despawning", z.State())
	}
}

// TestHitSkipsAttack 被击中的僵尸跳过攻击阶段，永不扣血
func TestHitSkipsAttack(t *testing.T) {
	cfg := testZombieConfig()
	z := NewZombie(testSpawnPoint(), 0, 800, cfg)

	if !z.MarkHit(400) {
		t.Fatal("MarkHit before timeout should succeed")
	}

	// 即使时间远超 lifetime，也不应进入攻击或扣血
	for _, now := range []int64{800, 1000, 5000} {
		if z.Update(now) {
			t.Errorf("Update(%d) on hit zombie reported attack", now)
		}
	}
	if z.State() != ZombieDead {
		t.Errorf("final state = %v, expected Dead", z.State())
	}
}

// TestStateOrdering 状态序列必须是 [Rising, Attacking?, Despawning, Dead] 的子序列
// 且 Dead 之后不再出现其他状态
func TestStateOrdering(t *testing.T) {
	tests := []struct {
		name    string
		hitAt   int64 // 0 表示不点击
		allowed []ZombieState
	}{
		{
			name:    "超时路径",
			hitAt:   0,
			allowed: []ZombieState{ZombieRising, ZombieAttacking, ZombieDespawning, ZombieDead},
		},
		{
			name:    "击中路径",
			hitAt:   300,
			allowed: []ZombieState{ZombieRising, ZombieDespawning, ZombieDead},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testZombieConfig()
			z := NewZombie(testSpawnPoint(), 0, 800, cfg)

			var observed []ZombieState
			for now := int64(0); now <= 3000; now += 16 {
				if tt.hitAt != 0 && now >= tt.hitAt && z.State() == ZombieRising {
					z.MarkHit(now)
				}
				z.Update(now)
				s := z.State()
				if len(observed) == 0 || observed[len(observed)-1] != s {
					observed = append(observed, s)
				}
			}

			// observed 必须是 allowed 的子序列
			j := 0
			for _, s := range observed {
				for j < len(tt.allowed) && tt.allowed[j] != s {
					j++
				}
				if j >= len(tt.allowed) {
					t.Fatalf("observed states %v are not a subsequence of %v", observed, tt.allowed)
				}
			}

			if observed[len(observed)-1] != ZombieDead {
				t.Errorf("final observed state = %v, expected Dead", observed[len(observed)-1])
			}
		})
	}
}

// TestContainsPointBoundary 命中矩形边界规则：闭区间
// 恰好在边界上 → 命中；向外 1 像素 → 未命中
func TestContainsPointBoundary(t *testing.T) {
	cfg := testZombieConfig()
	sp := testSpawnPoint()
	// born=0, now=1000：出土动画早已结束，垂直偏移为 0
	z := NewZombie(sp, 0, 2000, cfg)
	now := int64(1000)

	w, h := z.SpriteSize()
	minX, minY, maxX, maxY := z.HitBounds(now)

	if maxX-minX != w || maxY-minY != h {
		t.Fatalf("hit bounds %fx%f, expected sprite size %fx%f", maxX-minX, maxY-minY, w, h)
	}

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"中心", sp.X, sp.Y, true},
		{"左上角（含边界）", minX, minY, true},
		{"右下角（含边界）", maxX, maxY, true},
		{"左边界外一像素", minX - 1, sp.Y, false},
		{"上边界外一像素", sp.X, minY - 1, false},
		{"右边界外一像素", maxX + 1, sp.Y, false},
		{"下边界外一像素", sp.X, maxY + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := z.ContainsPoint(tt.x, tt.y, now); got != tt.expected {
				t.Errorf("ContainsPoint(%f, %f) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

// TestContainsPointTracksVerticalOffset 命中区域跟随垂直偏移移动
func TestContainsPointTracksVerticalOffset(t *testing.T) {
	cfg := testZombieConfig()
	sp := testSpawnPoint()
	z := NewZombie(sp, 0, 2000, cfg)

	// t=0：僵尸完全在地下，命中中心下移了整个精灵高度
	offset := z.VerticalOffset(0)
	_, h := z.SpriteSize()
	if offset != h {
		t.Fatalf("VerticalOffset(0) = %f, expected sprite height %f", offset, h)
	}
	if z.ContainsPoint(sp.X, sp.Y-h/2-1, 0) {
		t.Error("point above buried zombie should not hit")
	}
	if !z.ContainsPoint(sp.X, sp.Y+offset, 0) {
		t.Error("point at buried center should hit")
	}
}

// TestVerticalOffsetEnvelope 垂直偏移的包络：出土单调下降，入土单调上升
func TestVerticalOffsetEnvelope(t *testing.T) {
	cfg := testZombieConfig()
	z := NewZombie(testSpawnPoint(), 0, 2000, cfg)
	_, h := z.SpriteSize()

	// 出土阶段单调下降
	prev := z.VerticalOffset(0)
	for now := int64(25); now <= int64(cfg.SpawnAnimMs); now += 25 {
		cur := z.VerticalOffset(now)
		if cur > prev {
			t.Errorf("rising offset increased at t=%d: %f > %f", now, cur, prev)
		}
		prev = cur
	}
	if got := z.VerticalOffset(int64(cfg.SpawnAnimMs)); got != 0 {
		t.Errorf("offset at end of spawn anim = %f, expected 0", got)
	}

	// 击中后入土阶段单调上升到精灵高度
	z.MarkHit(1000)
	prev = z.VerticalOffset(1000)
	for now := int64(1025); now <= 1000+int64(cfg.DespawnAnimMs); now += 25 {
		cur := z.VerticalOffset(now)
		if cur < prev {
			t.Errorf("despawn offset decreased at t=%d: %f < %f", now, cur, prev)
		}
		prev = cur
	}
	if got := z.VerticalOffset(1000 + int64(cfg.DespawnAnimMs)); got != h {
		t.Errorf("offset at end of despawn = %f, expected %f", got, h)
	}
}

// TestDeadIsTerminal 死亡后实体不可变
func TestDeadIsTerminal(t *testing.T) {
	cfg := testZombieConfig()
	z := NewZombie(testSpawnPoint(), 0, 100, cfg)

	// 驱动到死亡
	for now := int64(0); now <= 1000; now += 16 {
		z.Update(now)
	}
	if z.State() != ZombieDead {
		t.Fatalf("state = %v, expected Dead", z.State())
	}

	if z.MarkHit(2000) {
		t.Error("MarkHit on dead zombie should be rejected")
	}
	if z.Update(5000) {
		t.Error("Update on dead zombie should not report attack")
	}
	if z.State() != ZombieDead {
		t.Errorf("state after updates = %v, Dead must be terminal", z.State())
	}
	if z.ContainsPoint(480, 270, 5000) {
		t.Error("dead zombie should not be hittable")
	}
}

// TestRemainingFraction 倒计时占比
func TestRemainingFraction(t *testing.T) {
	cfg := testZombieConfig()
	z := NewZombie(testSpawnPoint(), 1000, 800, cfg)

	tests := []struct {
		now      int64
		expected float64
	}{
		{1000, 1.0},
		{1400, 0.5},
		{1800, 0.0},
		{2500, 0.0}, // 超时后不为负
	}
	for _, tt := range tests {
		if got := z.RemainingFraction(tt.now); got != tt.expected {
			t.Errorf("RemainingFraction(%d) = %f, expected %f", tt.now, got, tt.expected)
		}
	}
}

// TestHitFlashDecay 击中闪白随时间衰减到 0
func TestHitFlashDecay(t *testing.T) {
	cfg := testZombieConfig()
	z := NewZombie(testSpawnPoint(), 0, 2000, cfg)

	if z.HitFlashStrength(500) != 0 {
		t.Error("flash strength before hit should be 0")
	}

	z.MarkHit(500)
	if got := z.HitFlashStrength(500); got != 1 {
		t.Errorf("flash strength at hit = %f, expected 1", got)
	}
	mid := z.HitFlashStrength(500 + int64(cfg.HitFlashMs)/2)
	if mid <= 0 || mid >= 1 {
		t.Errorf("flash strength at midpoint = %f, expected in (0, 1)", mid)
	}
	if got := z.HitFlashStrength(500 + int64(cfg.HitFlashMs)); got != 0 {
		t.Errorf("flash strength after duration = %f, expected 0", got)
	}
}
