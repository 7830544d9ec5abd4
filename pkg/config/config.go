// Package config 提供游戏的全部调参配置
//
// 所有时间参数以毫秒为单位。配置可从 YAML 文件加载，
// 加载失败时降级为内置默认值（与原版参数一致），不会中断游戏启动。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 窗口常量（逻辑分辨率，实际窗口缩放由 Ebitengine 处理）
const (
	GameWindowWidth  = 960
	GameWindowHeight = 540
	GameWindowTitle  = "Whack-a-Zombie"
)

// Config 游戏调参配置根结构
type Config struct {
	Spawn  SpawnConfig  `yaml:"spawn"`  // 生成节奏
	Zombie ZombieConfig `yaml:"zombie"` // 僵尸实体参数
	Brain  BrainConfig  `yaml:"brain"`  // 大脑道具参数
	Level  LevelConfig  `yaml:"level"`  // 等级系统
	Lives  LivesConfig  `yaml:"lives"`  // 生命值
}

// SpawnConfig 僵尸生成节奏配置
type SpawnConfig struct {
	BaseIntervalMs int `yaml:"baseIntervalMs"` // 1级时的基础生成间隔
	MinIntervalMs  int `yaml:"minIntervalMs"`  // 间隔下限（难度上限）
	IntervalStepMs int `yaml:"intervalStepMs"` // 每升一级减少的间隔
	JitterMinMs    int `yaml:"jitterMinMs"`    // 抖动下界（可为负）
	JitterMaxMs    int `yaml:"jitterMaxMs"`    // 抖动上界
	FloorMs        int `yaml:"floorMs"`        // 调度结果的绝对下限
}

// ZombieConfig 僵尸实体参数
type ZombieConfig struct {
	MaxLifetimeMs  int `yaml:"maxLifetimeMs"`  // 1级时的存活时长
	MinLifetimeMs  int `yaml:"minLifetimeMs"`  // 存活时长下限
	LifetimeStepMs int `yaml:"lifetimeStepMs"` // 每升一级减少的存活时长
	SpawnAnimMs    int `yaml:"spawnAnimMs"`    // 出土动画时长
	AttackAnimMs   int `yaml:"attackAnimMs"`   // 攻击动画时长
	DespawnAnimMs  int `yaml:"despawnAnimMs"`  // 入土动画时长
	HitFlashMs     int `yaml:"hitFlashMs"`     // 被击中闪白时长

	SpriteBaseWidth  int     `yaml:"spriteBaseWidth"`  // 精灵基准宽度（像素）
	SpriteBaseHeight int     `yaml:"spriteBaseHeight"` // 精灵基准高度（像素）
	SpriteScale      float64 `yaml:"spriteScale"`      // 精灵缩放系数
}

// BrainConfig 大脑道具参数
// 点击大脑获得 +1 生命（不超过上限），超时则无效果消失
type BrainConfig struct {
	CheckIntervalMs int     `yaml:"checkIntervalMs"` // 生成判定周期
	Probability     float64 `yaml:"probability"`     // 每次判定的生成概率
	LifetimeMs      int     `yaml:"lifetimeMs"`      // 可拾取时长
	SpawnAnimMs     int     `yaml:"spawnAnimMs"`     // 淡入时长
	DespawnAnimMs   int     `yaml:"despawnAnimMs"`   // 淡出时长
	PickupFlashMs   int     `yaml:"pickupFlashMs"`   // 拾取闪光时长
}

// LevelConfig 等级系统配置
type LevelConfig struct {
	MaxLevel      int `yaml:"maxLevel"`      // 最高等级
	KillsPerLevel int `yaml:"killsPerLevel"` // 每级所需击杀数
}

// LivesConfig 生命值配置
type LivesConfig struct {
	Initial int `yaml:"initial"` // 初始生命
	Max     int `yaml:"max"`     // 生命上限
}

// DefaultConfig 返回内置默认配置
func DefaultConfig() *Config {
	return &Config{
		Spawn: SpawnConfig{
			BaseIntervalMs: 1000,
			MinIntervalMs:  500,
			IntervalStepMs: 50,
			JitterMinMs:    -150,
			JitterMaxMs:    220,
			FloorMs:        200,
		},
		Zombie: ZombieConfig{
			MaxLifetimeMs:    2000,
			MinLifetimeMs:    500,
			LifetimeStepMs:   100,
			SpawnAnimMs:      150,
			AttackAnimMs:     300,
			DespawnAnimMs:    250,
			HitFlashMs:       150,
			SpriteBaseWidth:  80,
			SpriteBaseHeight: 70,
			SpriteScale:      1.35,
		},
		Brain: BrainConfig{
			CheckIntervalMs: 4000,
			Probability:     0.25,
			LifetimeMs:      1000,
			SpawnAnimMs:     200,
			DespawnAnimMs:   300,
			PickupFlashMs:   150,
		},
		Level: LevelConfig{
			MaxLevel:      10,
			KillsPerLevel: 10,
		},
		Lives: LivesConfig{
			Initial: 3,
			Max:     10,
		},
	}
}

// Load 从 YAML 文件加载配置
//
// 以默认配置为基底，文件中出现的字段覆盖默认值。
// 文件不存在或解析失败返回错误，由调用方决定是否降级为默认配置。
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// validate 验证配置的有效性
func validate(cfg *Config) error {
	if cfg.Spawn.BaseIntervalMs <= 0 {
		return fmt.Errorf("spawn.baseIntervalMs must be positive, got %d", cfg.Spawn.BaseIntervalMs)
	}
	if cfg.Spawn.MinIntervalMs <= 0 || cfg.Spawn.MinIntervalMs > cfg.Spawn.BaseIntervalMs {
		return fmt.Errorf("spawn.minIntervalMs must be in (0, baseIntervalMs], got %d", cfg.Spawn.MinIntervalMs)
	}
	if cfg.Spawn.FloorMs <= 0 {
		return fmt.Errorf("spawn.floorMs must be positive, got %d", cfg.Spawn.FloorMs)
	}
	if cfg.Spawn.JitterMinMs > cfg.Spawn.JitterMaxMs {
		return fmt.Errorf("spawn.jitterMinMs (%d) must not exceed jitterMaxMs (%d)",
			cfg.Spawn.JitterMinMs, cfg.Spawn.JitterMaxMs)
	}
	if cfg.Zombie.MaxLifetimeMs <= 0 {
		return fmt.Errorf("zombie.maxLifetimeMs must be positive, got %d", cfg.Zombie.MaxLifetimeMs)
	}
	if cfg.Zombie.MinLifetimeMs <= 0 || cfg.Zombie.MinLifetimeMs > cfg.Zombie.MaxLifetimeMs {
		return fmt.Errorf("zombie.minLifetimeMs must be in (0, maxLifetimeMs], got %d", cfg.Zombie.MinLifetimeMs)
	}
	if cfg.Zombie.AttackAnimMs <= 0 || cfg.Zombie.DespawnAnimMs <= 0 || cfg.Zombie.SpawnAnimMs <= 0 {
		return fmt.Errorf("zombie animation durations must be positive")
	}
	if cfg.Zombie.SpriteScale <= 0 {
		return fmt.Errorf("zombie.spriteScale must be positive, got %f", cfg.Zombie.SpriteScale)
	}
	if cfg.Brain.Probability < 0 || cfg.Brain.Probability > 1 {
		return fmt.Errorf("brain.probability must be in [0, 1], got %f", cfg.Brain.Probability)
	}
	if cfg.Brain.CheckIntervalMs <= 0 {
		return fmt.Errorf("brain.checkIntervalMs must be positive, got %d", cfg.Brain.CheckIntervalMs)
	}
	if cfg.Level.MaxLevel < 1 {
		return fmt.Errorf("level.maxLevel must be at least 1, got %d", cfg.Level.MaxLevel)
	}
	if cfg.Level.KillsPerLevel < 1 {
		return fmt.Errorf("level.killsPerLevel must be at least 1, got %d", cfg.Level.KillsPerLevel)
	}
	if cfg.Lives.Initial < 1 || cfg.Lives.Max < cfg.Lives.Initial {
		return fmt.Errorf("lives: initial must be >=1 and max >= initial, got initial=%d max=%d",
			cfg.Lives.Initial, cfg.Lives.Max)
	}
	return nil
}

// ZombieLifetime 计算指定等级下僵尸的存活时长（毫秒）
// 随等级线性递减，不低于 MinLifetimeMs
func (c *Config) ZombieLifetime(level int) int64 {
	lifetime := c.Zombie.MaxLifetimeMs - (level-1)*c.Zombie.LifetimeStepMs
	if lifetime < c.Zombie.MinLifetimeMs {
		lifetime = c.Zombie.MinLifetimeMs
	}
	return int64(lifetime)
}

// SpawnInterval 计算指定等级下的基础生成间隔（毫秒）
// 随等级线性递减，不低于 MinIntervalMs
func (c *Config) SpawnInterval(level int) int64 {
	interval := c.Spawn.BaseIntervalMs - (level-1)*c.Spawn.IntervalStepMs
	if interval < c.Spawn.MinIntervalMs {
		interval = c.Spawn.MinIntervalMs
	}
	return int64(interval)
}
