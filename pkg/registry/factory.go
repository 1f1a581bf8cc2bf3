package registry

import (
	"fmt"

	"surfaces/pkg/contract"
	"surfaces/pkg/mesh"
	"surfaces/plugins/surface/analytic"
)

type createOptions struct {
	resolution int
	checkRange bool
}

// Option 调整 Create 行为。
type Option func(*createOptions)

// WithResolution 指定网格分辨率（<= 0 时使用默认 100）。
func WithResolution(n int) Option { return func(o *createOptions) { o.resolution = n } }

// WithoutRangeCheck 关闭推荐范围守卫；缺失与非有限值仍会拒绝。
func WithoutRangeCheck() Option { return func(o *createOptions) { o.checkRange = false } }

// Create: 变体标签 + 定义域 + 具名标量 → Surface。
// 失败时不返回任何部分构造的曲面：
//   - 未知标签 → contract.ErrUnknownVariant
//   - 区间 low >= high → contract.ErrInvalidDomain
//   - 缺失/非有限/越界/未知输入 → contract.ErrInvalidParameter
func Create(tag string, x, y contract.Range, inputs map[string]float64, opts ...Option) (contract.Surface, error) {
	o := createOptions{resolution: mesh.DefaultResolution, checkRange: true}
	for _, fn := range opts {
		fn(&o)
	}
	e, ok := Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", contract.ErrUnknownVariant, tag)
	}
	if !x.Valid() {
		return nil, fmt.Errorf("%w: x_range %v", contract.ErrInvalidDomain, x)
	}
	if !y.Valid() {
		return nil, fmt.Errorf("%w: y_range %v", contract.ErrInvalidDomain, y)
	}
	vals, err := resolve(e, inputs, o.checkRange)
	if err != nil {
		return nil, err
	}
	dom := contract.Domain{X: x, Y: y}
	f := e.New(dom, vals)
	if f == nil {
		return nil, fmt.Errorf("%w: %s constructor returned nil", contract.ErrUnknownVariant, e.Tag)
	}
	s, err := analytic.New(f, dom, o.resolution)
	if err != nil {
		return nil, err
	}
	return s, nil
}
