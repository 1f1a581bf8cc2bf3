package contract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Variant: 曲面族标签（即报告中的 tipo_superficie 取值）。
type Variant string

// 七个规范标签；工厂另外接受英文名与界面标签作为别名。
const (
	Plano                 Variant = "Plano"
	Paraboloide           Variant = "Paraboloide"
	Sinusoide             Variant = "Sinusoide"
	HiperboloideDeUnaHoja Variant = "HiperboloideDeUnaHoja"
	Esfera                Variant = "Esfera"
	Cilindro              Variant = "Cilindro"
	Cono                  Variant = "Cono"
)

// Range: 闭区间 [Lo, Hi]。
// 约束：Lo < Hi 且两端有限。JSON 形式为二元数组 [lo, hi]。
type Range struct {
	Lo float64
	Hi float64
}

// Valid 判断区间是否满足 Lo < Hi 且两端有限。
func (r Range) Valid() bool {
	if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || math.IsInf(r.Lo, 0) || math.IsInf(r.Hi, 0) {
		return false
	}
	return r.Lo < r.Hi
}

func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.Lo, r.Hi) }

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Lo, r.Hi})
}

func (r *Range) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: range needs 2 values, got %d", ErrInvalidDomain, len(pair))
	}
	r.Lo, r.Hi = pair[0], pair[1]
	return nil
}

// ParseRange 解析 "lo,hi" 文本形式（命令行与环境变量使用）。
// 仅做语法解析；Lo < Hi 由 Valid 判定。
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return Range{}, fmt.Errorf("%w: range %q, want lo,hi", ErrInvalidDomain, s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range low %q", ErrInvalidDomain, lo)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range high %q", ErrInvalidDomain, hi)
	}
	return Range{Lo: a, Hi: b}, nil
}

// Domain: 曲面定义域（x、y 两个区间）。
type Domain struct {
	X Range `json:"x"`
	Y Range `json:"y"`
}

// DefaultDomain 返回参考用法中的 [-5,5]×[-5,5]。
func DefaultDomain() Domain {
	return Domain{X: Range{Lo: -5, Hi: 5}, Y: Range{Lo: -5, Hi: 5}}
}

// Grid: R×R 规则网格；X 沿列变化，Y 沿行变化。
// 约束：X 与 Y 形状一致，仅由分辨率决定。
type Grid struct {
	X [][]float64
	Y [][]float64
}

// HeightField: 与 Grid 同形的 Z 值；非有限值按原样保留，不做清洗。
type HeightField struct {
	X [][]float64
	Y [][]float64
	Z [][]float64
}

// Dims 返回 (行, 列)。
func (h HeightField) Dims() (rows, cols int) {
	if len(h.Z) == 0 {
		return 0, 0
	}
	return len(h.Z), len(h.Z[0])
}

// Record: 一次计算配置的持久化三元组；追加后不可变。
type Record struct {
	Dimensiones ParameterReport
	Area        Measure
	Volume      Measure
}

// StoreID: 记录存储的资源标识（csv 实现为文件名）。
type StoreID string
