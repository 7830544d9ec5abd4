package entities

import (
	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/utils"
)

// Brain 大脑道具，点击可获得 +1 生命
//
// 生命周期比僵尸简单，只有两种终局：
//   - PickedUp: 活跃期内被点击 → 加一条命（由调用方封顶）
//   - Expired:  存活超时未被点击 → 无效果消失
//
// 没有攻击阶段。淡入/淡出用透明度表现，时间语义与僵尸一致。
type Brain struct {
	Spawn    SpawnPoint
	BornAt   int64
	Lifetime int64

	cfg *config.BrainConfig

	picked  Mark
	despawn Mark
	dead    bool
}

// NewBrain 创建大脑道具
func NewBrain(spawn SpawnPoint, bornAt int64, cfg *config.BrainConfig) *Brain {
	return &Brain{
		Spawn:    spawn,
		BornAt:   bornAt,
		Lifetime: int64(cfg.LifetimeMs),
		cfg:      cfg,
	}
}

// Alive 返回实体是否仍在存活列表中
func (b *Brain) Alive() bool {
	return !b.dead
}

// PickedUp 返回是否已被拾取
func (b *Brain) PickedUp() bool {
	return b.picked.Started
}

// MarkPickedUp 注册一次拾取
// 幂等：重复点击或已消失时返回 false，不会重复加命
func (b *Brain) MarkPickedUp(now int64) bool {
	if b.picked.Started || b.dead {
		return false
	}
	b.picked.Set(now)
	b.despawn.Set(now)
	return true
}

// Update 按当前时刻推进状态
func (b *Brain) Update(now int64) {
	// 超时未拾取 → 开始淡出
	if !b.picked.Started && !b.dead && !b.despawn.Started &&
		now-b.BornAt >= b.Lifetime {
		b.despawn.Set(now)
	}

	// 淡出完成 → 死亡
	if b.despawn.Started && b.despawn.Elapsed(now) >= int64(b.cfg.DespawnAnimMs) {
		b.dead = true
	}
}

// Alpha 返回当前透明度 [0, 1]（淡入/淡出）
func (b *Brain) Alpha(now int64) float64 {
	// 淡入
	if t := now - b.BornAt; t < int64(b.cfg.SpawnAnimMs) {
		return utils.Clamp01(float64(t) / float64(b.cfg.SpawnAnimMs))
	}

	// 淡出
	if b.despawn.Started {
		t := float64(b.despawn.Elapsed(now)) / float64(b.cfg.DespawnAnimMs)
		return utils.Clamp01(1 - t)
	}

	return 1
}

// PickupFlashStrength 返回拾取闪光强度 [0, 1]
func (b *Brain) PickupFlashStrength(now int64) float64 {
	if !b.picked.Started {
		return 0
	}
	t := float64(b.picked.Elapsed(now)) / float64(b.cfg.PickupFlashMs)
	if t >= 1 {
		return 0
	}
	return 1 - t
}

// Size 返回道具的显示尺寸（以生成点半径为基准的正方形）
func (b *Brain) Size() (w, h float64) {
	d := b.Spawn.Radius * 1.6
	return d, d
}

// ContainsPoint 命中判定，边界规则与僵尸一致（闭区间）
// 已拾取或已消失的大脑不可命中
func (b *Brain) ContainsPoint(x, y float64) bool {
	if b.picked.Started || b.dead {
		return false
	}
	w, h := b.Size()
	minX, minY := b.Spawn.X-w/2, b.Spawn.Y-h/2
	maxX, maxY := b.Spawn.X+w/2, b.Spawn.Y+h/2
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}
