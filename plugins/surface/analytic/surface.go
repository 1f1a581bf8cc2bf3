// Package analytic 提供七个闭式曲面变体及其通用外壳（网格 + 高度场缓存）。
package analytic

import (
	"fmt"
	"sync"

	"surfaces/pkg/contract"
	"surfaces/pkg/mesh"
)

// Surface: contract.Surface 的唯一实现，包装一个 Formula。
// 构造后不可变；高度场首次请求时计算，此后复用缓存（无需失效）。
type Surface struct {
	f   contract.Formula
	dom contract.Domain
	res int

	once  sync.Once
	field contract.HeightField
	err   error
}

var _ contract.Surface = (*Surface)(nil)

// New 组装曲面；res <= 0 时使用 mesh.DefaultResolution。
func New(f contract.Formula, dom contract.Domain, res int) (*Surface, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil formula", contract.ErrInvalidInput)
	}
	if !dom.X.Valid() {
		return nil, fmt.Errorf("%w: x_range %v", contract.ErrInvalidDomain, dom.X)
	}
	if !dom.Y.Valid() {
		return nil, fmt.Errorf("%w: y_range %v", contract.ErrInvalidDomain, dom.Y)
	}
	if res <= 0 {
		res = mesh.DefaultResolution
	}
	return &Surface{f: f, dom: dom, res: res}, nil
}

func (s *Surface) Variant() contract.Variant { return s.f.Variant() }
func (s *Surface) Domain() contract.Domain { return s.dom }
func (s *Surface) Height(x, y float64) float64 { return s.f.Height(x, y) }
func (s *Surface) Area() contract.Measure { return s.f.Area() }
func (s *Surface) Volume() contract.Measure { return s.f.Volume() }
func (s *Surface) Resolution() int { return s.res }
func (s *Surface) Formula() contract.Formula { return s.f }

// Parameters 返回定义域 + 变体标量 + tipo_superficie。
func (s *Surface) Parameters() contract.ParameterReport {
	return contract.NewReport(s.f.Variant(), s.dom, s.f.Scalars())
}

// HeightField 生成网格并逐点求值；结果缓存于曲面内部。
func (s *Surface) HeightField() (contract.HeightField, error) {
	s.once.Do(func() {
		g, err := mesh.MakeGrid(s.dom.X, s.dom.Y, s.res)
		if err != nil {
			s.err = err
			return
		}
		s.field = contract.HeightField{X: g.X, Y: g.Y, Z: mesh.Eval(g, s.f.Height)}
	})
	return s.field, s.err
}
