package analytic

import (
	"math"

	"surfaces/pkg/contract"
)

// 以下公式即对外可观测行为：Cylinder 忽略 y、Cone 面积并非真实侧面积、
// 单叶双曲面高度式与标准定义不符，均按原样保留。
// 平方根下为负时返回 NaN，不截断。

// Plane: z = pendiente·x。
type Plane struct {
	Dom       contract.Domain
	Pendiente float64
}

func (p Plane) Variant() contract.Variant { return contract.Plano }

func (p Plane) Height(x, _ float64) float64 { return p.Pendiente * x }

func (p Plane) Scalars() []contract.Param {
	return []contract.Param{{Key: "pendiente", Value: p.Pendiente}}
}

// Volume 恒为 0（非近似）。
func (p Plane) Volume() contract.Measure { return 0 }

// Area: |X_hi−X_lo|·|Y_hi−Y_lo|（投影面积）。
func (p Plane) Area() contract.Measure {
	return contract.Measure(math.Abs(p.Dom.X.Hi-p.Dom.X.Lo) * math.Abs(p.Dom.Y.Hi-p.Dom.Y.Lo))
}

// Paraboloid: z = coef·(x²+y²)。
type Paraboloid struct {
	Dom  contract.Domain
	Coef float64
}

func (p Paraboloid) Variant() contract.Variant { return contract.Paraboloide }

func (p Paraboloid) Height(x, y float64) float64 { return p.Coef * (x*x + y*y) }

func (p Paraboloid) Scalars() []contract.Param {
	return []contract.Param{{Key: "coeficiente", Value: p.Coef}}
}

func (p Paraboloid) Area() contract.Measure {
	lo, hi := p.Dom.X.Lo, p.Dom.X.Hi
	return contract.Measure(math.Pi * (hi*hi - lo*lo))
}

func (p Paraboloid) Volume() contract.Measure {
	lo, hi := p.Dom.X.Lo, p.Dom.X.Hi
	return contract.Measure((2.0 / 3.0) * math.Pi * p.Coef * (hi*hi*hi - lo*lo*lo))
}

// Sinusoid: z = sin(frecuencia·√(x²+y²))；面积与体积均为无限。
type Sinusoid struct {
	Dom        contract.Domain
	Frecuencia float64
}

func (s Sinusoid) Variant() contract.Variant { return contract.Sinusoide }

func (s Sinusoid) Height(x, y float64) float64 {
	return math.Sin(s.Frecuencia * math.Sqrt(x*x+y*y))
}

func (s Sinusoid) Scalars() []contract.Param {
	return []contract.Param{{Key: "frecuencia", Value: s.Frecuencia}}
}

func (s Sinusoid) Area() contract.Measure   { return contract.Infinite }
func (s Sinusoid) Volume() contract.Measure { return contract.Infinite }

// Hyperboloid: 单叶双曲面，z = c·√(x²/a² − y²/b² − 1)。
type Hyperboloid struct {
	Dom     contract.Domain
	A, B, C float64
}

func (h Hyperboloid) Variant() contract.Variant { return contract.HiperboloideDeUnaHoja }

func (h Hyperboloid) Height(x, y float64) float64 {
	return math.Sqrt(x*x/(h.A*h.A)-y*y/(h.B*h.B)-1) * h.C
}

func (h Hyperboloid) Scalars() []contract.Param {
	return []contract.Param{{Key: "a", Value: h.A}, {Key: "b", Value: h.B}, {Key: "c", Value: h.C}}
}

func (h Hyperboloid) Area() contract.Measure {
	return contract.Measure(2 * math.Pi * h.C * h.A * h.B)
}

func (h Hyperboloid) Volume() contract.Measure {
	return contract.Measure((4.0 / 3.0) * math.Pi * h.A * h.B * h.C)
}

// Sphere: z = √(r² − x² − y²)，半径 r 圆盘外为 NaN。
type Sphere struct {
	Dom   contract.Domain
	Radio float64
}

func (s Sphere) Variant() contract.Variant { return contract.Esfera }

func (s Sphere) Height(x, y float64) float64 {
	return math.Sqrt(s.Radio*s.Radio - x*x - y*y)
}

func (s Sphere) Scalars() []contract.Param {
	return []contract.Param{{Key: "radio", Value: s.Radio}}
}

func (s Sphere) Area() contract.Measure {
	return contract.Measure(4 * math.Pi * s.Radio * s.Radio)
}

func (s Sphere) Volume() contract.Measure {
	return contract.Measure((4.0 / 3.0) * math.Pi * s.Radio * s.Radio * s.Radio)
}

// Cylinder: z = √(r² − x²)，不依赖 y；|x| > r 时为 NaN。
type Cylinder struct {
	Dom   contract.Domain
	Radio float64
}

func (c Cylinder) Variant() contract.Variant { return contract.Cilindro }

func (c Cylinder) Height(x, _ float64) float64 {
	return math.Sqrt(c.Radio*c.Radio - x*x)
}

func (c Cylinder) Scalars() []contract.Param {
	return []contract.Param{{Key: "radio", Value: c.Radio}}
}

func (c Cylinder) Area() contract.Measure {
	return contract.Measure(2 * math.Pi * c.Radio * (c.Dom.X.Hi - c.Dom.X.Lo))
}

func (c Cylinder) Volume() contract.Measure {
	return contract.Measure(math.Pi * c.Radio * c.Radio * (c.Dom.X.Hi - c.Dom.X.Lo))
}

// Cone: z = √(a²·(x²+y²))。
type Cone struct {
	Dom contract.Domain
	A   float64
}

func (c Cone) Variant() contract.Variant { return contract.Cono }

func (c Cone) Height(x, y float64) float64 {
	return math.Sqrt(c.A * c.A * (x*x + y*y))
}

func (c Cone) Scalars() []contract.Param {
	return []contract.Param{{Key: "a", Value: c.A}}
}

func (c Cone) Area() contract.Measure {
	return contract.Measure(math.Pi * c.A * math.Sqrt(c.Dom.X.Hi*c.Dom.X.Hi+c.Dom.Y.Hi*c.Dom.Y.Hi))
}

func (c Cone) Volume() contract.Measure {
	return contract.Measure((1.0 / 3.0) * math.Pi * c.A * c.A * (c.Dom.X.Hi - c.Dom.X.Lo))
}

var (
	_ contract.Formula = Plane{}
	_ contract.Formula = Paraboloid{}
	_ contract.Formula = Sinusoid{}
	_ contract.Formula = Hyperboloid{}
	_ contract.Formula = Sphere{}
	_ contract.Formula = Cylinder{}
	_ contract.Formula = Cone{}
)
