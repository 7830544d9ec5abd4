package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/entities"
)

func testSpawnPoints() []entities.SpawnPoint {
	return []entities.SpawnPoint{
		{X: 100, Y: 100, Radius: 30},
		{X: 200, Y: 100, Radius: 30},
		{X: 300, Y: 100, Radius: 30},
	}
}

func newTestSpawner(cfg *config.Config, points []entities.SpawnPoint, seed int64) *Spawner {
	return NewSpawner(points, cfg, rand.New(rand.NewSource(seed)))
}

// TestScheduleNextMonotonic 调度单调性：
// nextSpawnAt 必须严格大于 now，且至少超出配置的下限
func TestScheduleNextMonotonic(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSpawner(cfg, testSpawnPoints(), 1)

	now := int64(5000)
	floor := int64(cfg.Spawn.FloorMs)
	for i := 0; i < 1000; i++ {
		for level := 1; level <= cfg.Level.MaxLevel; level++ {
			s.ScheduleNext(now, level)
			if got := s.NextSpawnAt(); got < now+floor {
				t.Fatalf("ScheduleNext(now=%d, level=%d) = %d, expected >= %d",
					now, level, got, now+floor)
			}
			now = s.NextSpawnAt()
		}
	}
}

// TestScheduleNextFloorApplies 基础间隔加负抖动低于下限时，下限生效
func TestScheduleNextFloorApplies(t *testing.T) {
	cfg := config.DefaultConfig()
	// 构造极小的基础间隔，使 base + jitterMin 低于 floor
	cfg.Spawn.BaseIntervalMs = 100
	cfg.Spawn.MinIntervalMs = 100

	s := newTestSpawner(cfg, testSpawnPoints(), 2)
	for i := 0; i < 1000; i++ {
		s.ScheduleNext(0, 1)
		if got := s.NextSpawnAt(); got < int64(cfg.Spawn.FloorMs) {
			t.Fatalf("NextSpawnAt = %d, below floor %d", got, cfg.Spawn.FloorMs)
		}
	}
}

// TestMaybeSpawnSchedule 首次调用只建立调度；到时刻后才生成
func TestMaybeSpawnSchedule(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSpawner(cfg, testSpawnPoints(), 3)

	var zombies []*entities.Zombie
	var brains []*entities.Brain

	// 首次调用：仅调度，不生成
	if z := s.MaybeSpawn(1000, zombies, brains, 1); z != nil {
		t.Fatal("first MaybeSpawn should only schedule, not spawn")
	}
	next := s.NextSpawnAt()
	if next <= 1000 {
		t.Fatalf("initial schedule = %d, expected > 1000", next)
	}

	// 时刻未到：不生成
	if z := s.MaybeSpawn(next-1, zombies, brains, 1); z != nil {
		t.Fatal("MaybeSpawn before schedule should not spawn")
	}

	// 时刻已到：生成并重新调度
	z := s.MaybeSpawn(next, zombies, brains, 1)
	if z == nil {
		t.Fatal("MaybeSpawn at schedule should spawn")
	}
	if z.BornAt != next {
		t.Errorf("zombie BornAt = %d, expected %d", z.BornAt, next)
	}
	if z.Lifetime != cfg.ZombieLifetime(1) {
		t.Errorf("zombie lifetime = %d, expected %d", z.Lifetime, cfg.ZombieLifetime(1))
	}
	if s.NextSpawnAt() <= next {
		t.Error("spawn must always advance the schedule")
	}
}

// TestOccupancyExclusive 占用约束：
// 任意时刻没有两个存活实体引用同一生成点
func TestOccupancyExclusive(t *testing.T) {
	cfg := config.DefaultConfig()
	points := testSpawnPoints()
	s := newTestSpawner(cfg, points, 4)

	var zombies []*entities.Zombie
	var brains []*entities.Brain

	// 持续推进直到所有生成点被占满
	now := int64(0)
	for i := 0; i < 100 && len(zombies) < len(points); i++ {
		s.MaybeSpawn(now, zombies, brains, 1)
		now = s.NextSpawnAt()
		if z := s.MaybeSpawn(now, zombies, brains, 1); z != nil {
			zombies = append(zombies, z)
		}
		// 验证占用互斥
		seen := make(map[entities.SpawnPoint]bool)
		for _, z := range zombies {
			if z.Alive() {
				if seen[z.Spawn] {
					t.Fatalf("two live zombies share spawn point (%f, %f)", z.Spawn.X, z.Spawn.Y)
				}
				seen[z.Spawn] = true
			}
		}
	}

	if len(zombies) != len(points) {
		t.Fatalf("spawned %d zombies, expected to fill all %d points", len(zombies), len(points))
	}

	// 占满后：跳过生成但调度照常推进
	now = s.NextSpawnAt()
	before := now
	if z := s.MaybeSpawn(now, zombies, brains, 1); z != nil {
		t.Error("MaybeSpawn with all points occupied should skip")
	}
	if s.NextSpawnAt() <= before {
		t.Error("schedule must advance even when spawning is skipped")
	}
}

// TestOccupancyFreedByDeath 僵尸死亡后生成点重新可用
func TestOccupancyFreedByDeath(t *testing.T) {
	cfg := config.DefaultConfig()
	single := []entities.SpawnPoint{{X: 50, Y: 50, Radius: 30}}
	s := newTestSpawner(cfg, single, 5)

	var brains []*entities.Brain
	z := entities.NewZombie(single[0], 0, 100, &cfg.Zombie)
	zombies := []*entities.Zombie{z}

	if got := s.AvailablePoints(zombies, brains); len(got) != 0 {
		t.Fatalf("available = %d, expected 0 while zombie alive", len(got))
	}

	// 驱动僵尸到死亡（超时 → 攻击 → 入土 → 死亡）
	for now := int64(0); now <= 2000; now += 16 {
		z.Update(now)
	}
	if z.Alive() {
		t.Fatal("zombie should be dead")
	}

	if got := s.AvailablePoints(zombies, brains); len(got) != 1 {
		t.Errorf("available = %d, expected 1 after zombie death", len(got))
	}
}

// TestAvailablePointsExcludesBrains 大脑同样占用生成点
func TestAvailablePointsExcludesBrains(t *testing.T) {
	cfg := config.DefaultConfig()
	points := testSpawnPoints()
	s := newTestSpawner(cfg, points, 6)

	b := entities.NewBrain(points[1], 0, &cfg.Brain)
	available := s.AvailablePoints(nil, []*entities.Brain{b})

	if len(available) != len(points)-1 {
		t.Fatalf("available = %d, expected %d", len(available), len(points)-1)
	}
	for _, sp := range available {
		if sp == points[1] {
			t.Error("brain-occupied point must be excluded")
		}
	}
}

// TestMaybeSpawnBrainCadence 大脑生成按独立周期判定
func TestMaybeSpawnBrainCadence(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Brain.Probability = 1.0 // 消除概率影响
	s := newTestSpawner(cfg, testSpawnPoints(), 7)

	// 首次调用建立判定周期
	if b := s.MaybeSpawnBrain(0, nil, nil); b != nil {
		t.Fatal("first MaybeSpawnBrain should only schedule")
	}
	checkAt := int64(cfg.Brain.CheckIntervalMs)

	// 周期未到
	if b := s.MaybeSpawnBrain(checkAt-1, nil, nil); b != nil {
		t.Fatal("MaybeSpawnBrain before check time should not spawn")
	}

	// 周期已到且概率为 1 → 必然生成
	b := s.MaybeSpawnBrain(checkAt, nil, nil)
	if b == nil {
		t.Fatal("MaybeSpawnBrain at check time with p=1 should spawn")
	}
	if b.BornAt != checkAt {
		t.Errorf("brain BornAt = %d, expected %d", b.BornAt, checkAt)
	}
}

// TestMaybeSpawnBrainZeroProbability 概率为 0 时永不生成，但判定周期照常推进
func TestMaybeSpawnBrainZeroProbability(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Brain.Probability = 0
	s := newTestSpawner(cfg, testSpawnPoints(), 8)

	s.MaybeSpawnBrain(0, nil, nil)
	now := int64(cfg.Brain.CheckIntervalMs)
	for i := 0; i < 50; i++ {
		if b := s.MaybeSpawnBrain(now, nil, nil); b != nil {
			t.Fatal("MaybeSpawnBrain with p=0 should never spawn")
		}
		now += int64(cfg.Brain.CheckIntervalMs)
	}
}

// TestSpawnerReset 重置后回到未调度状态
func TestSpawnerReset(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSpawner(cfg, testSpawnPoints(), 9)

	s.MaybeSpawn(1000, nil, nil, 1)
	s.MaybeSpawnBrain(1000, nil, nil)
	if s.NextSpawnAt() == 0 {
		t.Fatal("expected schedule to be armed")
	}

	s.Reset()
	if s.NextSpawnAt() != 0 {
		t.Error("Reset should clear zombie schedule")
	}
	// 重置后首次调用重新建立调度
	if z := s.MaybeSpawn(2000, nil, nil, 1); z != nil {
		t.Error("first MaybeSpawn after reset should only schedule")
	}
	if s.NextSpawnAt() <= 2000 {
		t.Error("schedule after reset should be in the future")
	}
}

// TestHighLevelLifetimeFloor 高等级下僵尸存活时长不低于下限
func TestHighLevelLifetimeFloor(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSpawner(cfg, testSpawnPoints(), 10)

	s.MaybeSpawn(0, nil, nil, 99)
	z := s.MaybeSpawn(s.NextSpawnAt(), nil, nil, 99)
	if z == nil {
		t.Fatal("expected spawn")
	}
	if z.Lifetime != int64(cfg.Zombie.MinLifetimeMs) {
		t.Errorf("lifetime at high level = %d, expected floor %d", z.Lifetime, cfg.Zombie.MinLifetimeMs)
	}
}
