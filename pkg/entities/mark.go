package entities

// Mark 记录一次性的状态转移时刻
//
// 等价于 NotStarted | StartedAt(timestamp) 的标签变体：
// Started 为 false 时 At 无意义。Set 是幂等的，
// 重复调用不会改写首次记录的时间戳，这是防止重复计分/重复扣血的基础。
type Mark struct {
	Started bool
	At      int64 // 游戏时钟毫秒
}

// Set 记录转移时刻（仅首次调用生效）
func (m *Mark) Set(now int64) {
	if m.Started {
		return
	}
	m.Started = true
	m.At = now
}

// Elapsed 返回自转移以来经过的毫秒数
// 未转移时返回 0
func (m *Mark) Elapsed(now int64) int64 {
	if !m.Started {
		return 0
	}
	return now - m.At
}
