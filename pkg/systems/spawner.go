// Package systems 提供作用于实体集合的游戏系统
package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/entities"
)

// Spawner 决定新实体何时、在哪里出现
//
// 职责：
//   - 按等级调整的节奏（带抖动）调度僵尸生成时刻
//   - 从未被占用的生成点中均匀随机选点
//   - 按独立的周期概率生成大脑道具
//
// 设计约束：
//   - Spawner 只提出新实体（返回值），从不持有实体引用；
//     存活列表归游戏场景所有
//   - 无论本次是否真正生成，都会推进调度时刻，避免空转重试
//   - 随机源由外部注入，便于测试和 -seed 复现
type Spawner struct {
	spawnPoints      []entities.SpawnPoint
	cfg              *config.Config
	rng              *rand.Rand
	nextSpawnAt      int64 // 下一次僵尸生成时刻（0 = 尚未调度）
	nextBrainCheckAt int64 // 下一次大脑生成判定时刻（0 = 尚未调度）
}

// NewSpawner 创建生成器
func NewSpawner(spawnPoints []entities.SpawnPoint, cfg *config.Config, rng *rand.Rand) *Spawner {
	return &Spawner{
		spawnPoints: spawnPoints,
		cfg:         cfg,
		rng:         rng,
	}
}

// ScheduleNext 调度下一次生成时刻
//
// nextSpawnAt = now + max(floor, baseInterval(level) + jitter)
// jitter 在 [JitterMinMs, JitterMaxMs] 内均匀抽取，
// 保证结果严格大于 now 且至少超出 FloorMs。
func (s *Spawner) ScheduleNext(now int64, level int) {
	base := s.cfg.SpawnInterval(level)
	jitterRange := int64(s.cfg.Spawn.JitterMaxMs - s.cfg.Spawn.JitterMinMs + 1)
	jitter := int64(s.cfg.Spawn.JitterMinMs) + s.rng.Int63n(jitterRange)

	wait := base + jitter
	if floor := int64(s.cfg.Spawn.FloorMs); wait < floor {
		wait = floor
	}
	s.nextSpawnAt = now + wait
}

// NextSpawnAt 返回当前调度的生成时刻（0 = 尚未调度）
func (s *Spawner) NextSpawnAt() int64 {
	return s.nextSpawnAt
}

// AvailablePoints 返回当前未被占用的生成点
// 任何存活（未死亡）的僵尸或大脑都占用其生成点
func (s *Spawner) AvailablePoints(zombies []*entities.Zombie, brains []*entities.Brain) []entities.SpawnPoint {
	occupied := make(map[entities.SpawnPoint]bool, len(zombies)+len(brains))
	for _, z := range zombies {
		if z.Alive() {
			occupied[z.Spawn] = true
		}
	}
	for _, b := range brains {
		if b.Alive() {
			occupied[b.Spawn] = true
		}
	}

	available := make([]entities.SpawnPoint, 0, len(s.spawnPoints))
	for _, sp := range s.spawnPoints {
		if !occupied[sp] {
			available = append(available, sp)
		}
	}
	return available
}

// MaybeSpawn 生成时刻已到且有空闲生成点时，提出一只新僵尸
//
// 返回新僵尸（由调用方追加到存活列表），未生成时返回 nil。
// 没有空闲生成点时跳过本次生成，但调度照常推进。
func (s *Spawner) MaybeSpawn(now int64, zombies []*entities.Zombie, brains []*entities.Brain, level int) *entities.Zombie {
	// 首次调用只建立初始调度
	if s.nextSpawnAt == 0 {
		s.ScheduleNext(now, level)
		return nil
	}

	if now < s.nextSpawnAt {
		return nil
	}

	var spawned *entities.Zombie
	if available := s.AvailablePoints(zombies, brains); len(available) > 0 {
		sp := available[s.rng.Intn(len(available))]
		lifetime := s.cfg.ZombieLifetime(level)
		spawned = entities.NewZombie(sp, now, lifetime, &s.cfg.Zombie)
		log.Printf("[Spawner] zombie at (%.0f, %.0f), lifetime=%dms, level=%d", sp.X, sp.Y, lifetime, level)
	}

	// 无论是否生成都推进调度，防止空转
	s.ScheduleNext(now, level)
	return spawned
}

// MaybeSpawnBrain 按独立周期概率性地提出一个大脑道具
//
// 每 CheckIntervalMs 判定一次，以 Probability 的概率尝试生成。
// 与僵尸共享生成点占用约束。
func (s *Spawner) MaybeSpawnBrain(now int64, zombies []*entities.Zombie, brains []*entities.Brain) *entities.Brain {
	if s.nextBrainCheckAt == 0 {
		s.nextBrainCheckAt = now + int64(s.cfg.Brain.CheckIntervalMs)
		return nil
	}

	if now < s.nextBrainCheckAt {
		return nil
	}

	var spawned *entities.Brain
	if s.rng.Float64() < s.cfg.Brain.Probability {
		if available := s.AvailablePoints(zombies, brains); len(available) > 0 {
			sp := available[s.rng.Intn(len(available))]
			spawned = entities.NewBrain(sp, now, &s.cfg.Brain)
			log.Printf("[Spawner] brain at (%.0f, %.0f)", sp.X, sp.Y)
		}
	}

	s.nextBrainCheckAt = now + int64(s.cfg.Brain.CheckIntervalMs)
	return spawned
}

// Reset 重置调度状态（游戏重开时调用）
func (s *Spawner) Reset() {
	s.nextSpawnAt = 0
	s.nextBrainCheckAt = 0
}

// SetSpawnPoints 替换生成点集合
func (s *Spawner) SetSpawnPoints(points []entities.SpawnPoint) {
	s.spawnPoints = points
}
