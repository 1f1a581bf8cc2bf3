package contract

// ParamSpec: 变体声明的具名标量输入及其推荐范围（供工厂守卫与界面协作者使用）。
// 公式本身不依赖该范围。
type ParamSpec struct {
	// Key: 报告中的规范名（例如 pendiente）。
	Key string `json:"key"`
	// Aliases: 工厂额外接受的输入名（例如 slope）。
	Aliases []string `json:"aliases,omitempty"`
	Label   string   `json:"label,omitempty"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Step    float64  `json:"step"`
	Default float64  `json:"default"`
}

// Contains 判断 v 是否位于 [Min, Max]。
func (p ParamSpec) Contains(v float64) bool { return v >= p.Min && v <= p.Max }
