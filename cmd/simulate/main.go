// 无头模拟器：不启动窗口，用合成时间驱动生成器和实体状态机，
// 模拟一名给定命中率的玩家并输出整局统计。
// 用于调参（生成节奏、存活时长、难度曲线）和回归验证。
//
// 用法：
//
//	go run ./cmd/simulate -seed 42 -duration 60 -hitrate 0.8
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/decker502/waz/pkg/config"
	"github.com/decker502/waz/pkg/entities"
	"github.com/decker502/waz/pkg/game"
	"github.com/decker502/waz/pkg/systems"
)

var (
	seed     = flag.Int64("seed", 1, "随机种子")
	duration = flag.Int("duration", 60, "模拟时长（秒）")
	hitrate  = flag.Float64("hitrate", 0.8, "模拟玩家对每只僵尸的命中概率")
	level    = flag.Int("level", 1, "起始等级")
	verbose  = flag.Bool("verbose", false, "显示详细日志")
)

// 模拟步长（毫秒），与 60FPS 的帧间隔同量级
const tickMs = 16

// plannedHit 模拟玩家对某只僵尸的预定击打时刻
type plannedHit struct {
	zombie *entities.Zombie
	at     int64
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg := config.DefaultConfig()
	layout := config.DefaultLayout()
	rng := rand.New(rand.NewSource(*seed))

	points := make([]entities.SpawnPoint, 0, len(layout.Positions))
	for _, pos := range layout.Positions {
		points = append(points, entities.SpawnPoint{X: pos[0], Y: pos[1], Radius: layout.BaseRadius})
	}

	spawner := systems.NewSpawner(points, cfg, rng)
	session := game.NewSession(cfg)
	if *level > 1 {
		session.Level = *level
	}

	var (
		zombies     []*entities.Zombie
		brains      []*entities.Brain
		pending     []plannedHit
		spawnCount  int
		brainCount  int
		attackCount int
		endedAt     int64
	)

	endMs := int64(*duration) * 1000
	for now := int64(0); now <= endMs; now += tickMs {
		endedAt = now

		// 模拟玩家：到达预定时刻就尝试击打
		remaining := pending[:0]
		for _, hit := range pending {
			if now < hit.at {
				remaining = append(remaining, hit)
				continue
			}
			if hit.zombie.MarkHit(now) {
				session.RecordHit()
			}
		}
		pending = remaining

		// 实体更新
		for _, z := range zombies {
			if z.Update(now) {
				attackCount++
				session.LoseLives(1)
			}
		}
		for _, b := range brains {
			b.Update(now)
		}
		if session.GameOver {
			break
		}

		// 清理死亡实体
		aliveZombies := zombies[:0]
		for _, z := range zombies {
			if z.Alive() {
				aliveZombies = append(aliveZombies, z)
			}
		}
		zombies = aliveZombies
		aliveBrains := brains[:0]
		for _, b := range brains {
			if b.Alive() {
				aliveBrains = append(aliveBrains, b)
			}
		}
		brains = aliveBrains

		// 生成
		if z := spawner.MaybeSpawn(now, zombies, brains, session.Level); z != nil {
			zombies = append(zombies, z)
			spawnCount++
			// 玩家以给定概率决定击打这只僵尸，反应时间落在存活窗口内
			if rng.Float64() < *hitrate {
				reaction := int64(cfg.Zombie.SpawnAnimMs) +
					int64(rng.Float64()*0.8*float64(z.Lifetime))
				pending = append(pending, plannedHit{zombie: z, at: z.BornAt + reaction})
			}
		}
		if b := spawner.MaybeSpawnBrain(now, zombies, brains); b != nil {
			brains = append(brains, b)
			brainCount++
			if rng.Float64() < *hitrate {
				if b.MarkPickedUp(now) {
					session.GainLife()
				}
			}
		}
	}

	fmt.Printf("=== Simulation Report ===\n")
	fmt.Printf("seed:            %d\n", *seed)
	fmt.Printf("hitrate:         %.2f\n", *hitrate)
	fmt.Printf("simulated time:  %.1fs", float64(endedAt)/1000)
	if session.GameOver {
		fmt.Printf("  (game over)")
	}
	fmt.Printf("\n")
	fmt.Printf("zombies spawned: %d\n", spawnCount)
	fmt.Printf("brains spawned:  %d\n", brainCount)
	fmt.Printf("hits:            %d\n", session.Hits)
	fmt.Printf("attacks taken:   %d\n", attackCount)
	fmt.Printf("final level:     %d\n", session.Level)
	fmt.Printf("final lives:     %d/%d\n", session.Lives, session.MaxLives())
}
