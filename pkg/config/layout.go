package config

// LayoutConfig 墓地布局配置
//
// 定义逻辑坐标系（960x540 基准）下所有墓地（生成点）的位置。
// 位置与背景图中的墓碑对齐，4 行 x 5 列共 20 个生成点。
type LayoutConfig struct {
	Columns    int          `yaml:"columns"`
	Rows       int          `yaml:"rows"`
	BaseRadius float64      `yaml:"baseRadius"` // 墓穴半径
	Positions  [][2]float64 `yaml:"positions"`
}

// DefaultLayout 返回默认的 4x5 墓地布局
func DefaultLayout() *LayoutConfig {
	return &LayoutConfig{
		Columns:    5,
		Rows:       4,
		BaseRadius: 30,
		Positions: [][2]float64{
			// 第 1 行（顶行）
			{165, 75}, {325, 75}, {475, 75}, {635, 75}, {790, 75},
			// 第 2 行
			{165, 190}, {325, 190}, {475, 190}, {635, 190}, {790, 190},
			// 第 3 行
			{165, 305}, {325, 305}, {475, 305}, {635, 305}, {790, 305},
			// 第 4 行（底行）
			{165, 415}, {325, 415}, {475, 415}, {635, 415}, {790, 415},
		},
	}
}
