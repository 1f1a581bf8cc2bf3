package contract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Measure: 面积/体积的闭式结果；Infinite 为“无限”哨兵。
type Measure float64

// Infinite: 数学上无限的面积/体积。持久化往返必须保持为该值，而非有限近似。
var Infinite = Measure(math.Inf(1))

// InfLiteral: 无限哨兵的文本字面量。
const InfLiteral = "inf"

// IsInfinite 报告是否为无限哨兵。
func (m Measure) IsInfinite() bool { return math.IsInf(float64(m), 1) }

// String 输出最短可往返文本；无限输出 InfLiteral。
func (m Measure) String() string { return FormatMeasure(m) }

// FormatMeasure 将 Measure 编码为文本。
func FormatMeasure(m Measure) string {
	if m.IsInfinite() {
		return InfLiteral
	}
	return strconv.FormatFloat(float64(m), 'g', -1, 64)
}

// ParseMeasure 解析 FormatMeasure 的输出；
// 同时接受 inf/+inf/Inf/Infinity 等写法（大小写不敏感）。
func ParseMeasure(s string) (Measure, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(strings.TrimPrefix(t, "+")) {
	case "inf", "infinity":
		return Infinite, nil
	case "":
		return 0, fmt.Errorf("%w: empty measure", ErrInvalidInput)
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: measure %q", ErrInvalidInput, s)
	}
	return Measure(v), nil
}

func (m Measure) MarshalText() ([]byte, error) { return []byte(FormatMeasure(m)), nil }

func (m *Measure) UnmarshalText(b []byte) error {
	v, err := ParseMeasure(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
