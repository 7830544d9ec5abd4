// Package entities 定义游戏实体：生成点、僵尸和大脑道具
//
// 实体只包含状态机与命中判定逻辑，不负责绘制。
// 所有时间参数均为游戏时钟毫秒值，由调用方每帧采样一次后传入。
package entities

// SpawnPoint 墓地生成点
//
// 不可变值类型：位置加半径。按值比较身份，
// 同一个生成点同一时刻最多承载一个存活实体（占用约束由 Spawner 保证）。
type SpawnPoint struct {
	X, Y   float64 // 中心位置（逻辑坐标）
	Radius float64 // 墓穴半径，用于绘制和程序化降级时的命中区域
}
