package contract

// Formula: 每个曲面变体必须提供的能力集合（高度函数 + 标量报告 + 闭式面积/体积）。
// 约束：
//  1. Height 为纯函数（确定、无副作用），不对平方根负数做截断，NaN 原样返回；
//  2. Area/Volume 为闭式结果，不做数值积分；无限时返回 Infinite；
//  3. Scalars 按声明顺序返回变体自有标量，不含三个公共键。
type Formula interface {
	Variant() Variant
	Height(x, y float64) float64
	Scalars() []Param
	Area() Measure
	Volume() Measure
}

// Surface: 调用方（渲染/展示/存储协作者）使用的曲面值。
// 构造后不可变；高度场惰性计算并缓存，重复调用不重新计算。
type Surface interface {
	Variant() Variant
	Domain() Domain
	Height(x, y float64) float64
	// Parameters: 定义域 + 变体标量 + 变体标签；同一输入恒得同一报告。
	Parameters() ParameterReport
	Area() Measure
	Volume() Measure
	// HeightField: 网格生成 + 逐点求值；返回的切片为缓存本体，调用方不得修改。
	HeightField() (HeightField, error)
}

// RecordOf 由曲面组装待存储的记录。
func RecordOf(s Surface) Record {
	return Record{Dimensiones: s.Parameters(), Area: s.Area(), Volume: s.Volume()}
}
