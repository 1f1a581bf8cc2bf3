package analytic

import (
	"errors"
	"math"
	"testing"

	"surfaces/pkg/contract"
)

const eps = 1e-12

func near(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func dom(xlo, xhi, ylo, yhi float64) contract.Domain {
	return contract.Domain{X: contract.Range{Lo: xlo, Hi: xhi}, Y: contract.Range{Lo: ylo, Hi: yhi}}
}

// TestPlaneVolumeZero 任意斜率与定义域下体积恒为 0。
func TestPlaneVolumeZero(t *testing.T) {
	for _, slope := range []float64{-10, -1.5, 0, 2, 10} {
		for _, d := range []contract.Domain{dom(-5, 5, -5, 5), dom(0, 1, 3, 9), dom(-100, -1, 2, 2.5)} {
			p := Plane{Dom: d, Pendiente: slope}
			if v := p.Volume(); v != 0 {
				t.Fatalf("slope=%v dom=%v volume=%v", slope, d, v)
			}
		}
	}
	p := Plane{Dom: dom(0, 1, 3, 9), Pendiente: 1}
	if a := p.Area(); a != 6 {
		t.Fatalf("area=%v", a)
	}
}

// TestSphereMeasures 面积 4πr²、体积 (4/3)πr³。
func TestSphereMeasures(t *testing.T) {
	for _, r := range []float64{0.5, 1, 5} {
		s := Sphere{Dom: dom(-5, 5, -5, 5), Radio: r}
		if a := float64(s.Area()); !near(a, 4*math.Pi*r*r) {
			t.Fatalf("r=%v area=%v", r, a)
		}
		if v := float64(s.Volume()); !near(v, 4.0/3.0*math.Pi*r*r*r) {
			t.Fatalf("r=%v volume=%v", r, v)
		}
	}
}

// TestCylinderIgnoresY 改变 y_range 不影响高度与面积/体积。
func TestCylinderIgnoresY(t *testing.T) {
	a := Cylinder{Dom: dom(-2, 3, -5, 5), Radio: 4}
	b := Cylinder{Dom: dom(-2, 3, 100, 200), Radio: 4}
	for _, x := range []float64{-2, -0.5, 0, 1, 3} {
		for _, y := range []float64{-7, 0, 150} {
			if a.Height(x, y) != b.Height(x, y) || a.Height(x, y) != a.Height(x, 0) {
				t.Fatalf("height(%v,%v) 依赖 y", x, y)
			}
		}
	}
	if a.Area() != b.Area() || a.Volume() != b.Volume() {
		t.Fatalf("面积/体积依赖 y_range")
	}
	if got, want := float64(a.Area()), 2*math.Pi*4*5; !near(got, want) {
		t.Fatalf("area=%v want %v", got, want)
	}
	if got, want := float64(a.Volume()), math.Pi*16*5; !near(got, want) {
		t.Fatalf("volume=%v want %v", got, want)
	}
}

func TestFormulaTable(t *testing.T) {
	d := dom(-5, 5, -5, 5)
	tests := []struct {
		name   string
		f      contract.Formula
		x, y   float64
		height float64
		area   float64
		volume float64
	}{
		{"plano", Plane{Dom: d, Pendiente: 2}, 1, 1, 2, 100, 0},
		{"paraboloide", Paraboloid{Dom: d, Coef: 1}, 0, 0, 0, 0, (2.0 / 3.0) * math.Pi * 250},
		{"paraboloide-asim", Paraboloid{Dom: dom(1, 2, 0, 1), Coef: 3}, 1, 2, 15, math.Pi * 3, (2.0 / 3.0) * math.Pi * 3 * 7},
		{"hiperboloide", Hyperboloid{Dom: d, A: 1, B: 2, C: 3}, 2, 0, 3 * math.Sqrt(3), 2 * math.Pi * 6, (4.0 / 3.0) * math.Pi * 6},
		{"esfera", Sphere{Dom: d, Radio: 5}, 3, 4, 0, 100 * math.Pi, (4.0 / 3.0) * math.Pi * 125},
		{"cilindro", Cylinder{Dom: d, Radio: 5}, 3, 99, 4, 2 * math.Pi * 5 * 10, math.Pi * 25 * 10},
		{"cono", Cone{Dom: d, A: 2}, 3, 4, 10, math.Pi * 2 * math.Sqrt(50), (1.0 / 3.0) * math.Pi * 4 * 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h := tt.f.Height(tt.x, tt.y); !near(h, tt.height) {
				t.Fatalf("height=%v want %v", h, tt.height)
			}
			if a := float64(tt.f.Area()); !near(a, tt.area) {
				t.Fatalf("area=%v want %v", a, tt.area)
			}
			if v := float64(tt.f.Volume()); !near(v, tt.volume) {
				t.Fatalf("volume=%v want %v", v, tt.volume)
			}
		})
	}
}

func TestSinusoidInfinite(t *testing.T) {
	s := Sinusoid{Dom: dom(-5, 5, -5, 5), Frecuencia: 0}
	if !s.Area().IsInfinite() || !s.Volume().IsInfinite() {
		t.Fatalf("面积/体积应为无限哨兵")
	}
	for _, p := range [][2]float64{{0, 0}, {1, 1}, {-5, 3}} {
		if h := s.Height(p[0], p[1]); h != 0 {
			t.Fatalf("freq=0 时 height(%v)=%v", p, h)
		}
	}
	s.Frecuencia = 1
	if h := s.Height(math.Pi/2, 0); !near(h, 1) {
		t.Fatalf("height=%v", h)
	}
}

// TestMathDomainNaN 平方根负数传播为 NaN，不截断。
func TestMathDomainNaN(t *testing.T) {
	d := dom(-5, 5, -5, 5)
	if h := (Sphere{Dom: d, Radio: 1}).Height(5, 5); !math.IsNaN(h) {
		t.Fatalf("esfera 圆盘外应为 NaN, got %v", h)
	}
	if h := (Cylinder{Dom: d, Radio: 1}).Height(2, 0); !math.IsNaN(h) {
		t.Fatalf("cilindro |x|>r 应为 NaN, got %v", h)
	}
	if h := (Hyperboloid{Dom: d, A: 1, B: 1, C: 1}).Height(0, 0); !math.IsNaN(h) {
		t.Fatalf("hiperboloide 原点应为 NaN, got %v", h)
	}
}

func TestSurfaceHeightFieldCached(t *testing.T) {
	calls := 0
	f := countingFormula{Plane: Plane{Dom: dom(-5, 5, -5, 5), Pendiente: 1}, calls: &calls}
	s, err := New(f, f.Dom, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hf, err := s.HeightField()
	if err != nil {
		t.Fatalf("HeightField: %v", err)
	}
	if r, c := hf.Dims(); r != 10 || c != 10 || len(hf.X) != 10 || len(hf.Y[9]) != 10 {
		t.Fatalf("dims %dx%d", r, c)
	}
	if calls != 100 {
		t.Fatalf("首次求值次数 %d", calls)
	}
	hf2, _ := s.HeightField()
	if calls != 100 {
		t.Fatalf("缓存未生效, calls=%d", calls)
	}
	if &hf2.Z[0][0] != &hf.Z[0][0] {
		t.Fatalf("应返回同一缓存")
	}
	// Z[i][j] = f(X[i][j], Y[i][j])
	if hf.Z[3][7] != hf.X[3][7] {
		t.Fatalf("z=%v x=%v", hf.Z[3][7], hf.X[3][7])
	}
}

func TestSurfaceDefaultResolution(t *testing.T) {
	s, err := New(Sphere{Dom: dom(-5, 5, -5, 5), Radio: 1}, dom(-5, 5, -5, 5), 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hf, err := s.HeightField()
	if err != nil {
		t.Fatalf("HeightField: %v", err)
	}
	if r, c := hf.Dims(); r != 100 || c != 100 {
		t.Fatalf("dims %dx%d", r, c)
	}
	// 角点在圆盘外
	if !math.IsNaN(hf.Z[0][0]) {
		t.Fatalf("corner z=%v", hf.Z[0][0])
	}
}

func TestSurfaceParameters(t *testing.T) {
	d := dom(-5, 5, -5, 5)
	s, _ := New(Hyperboloid{Dom: d, A: 1, B: 2, C: 3}, d, 4)
	rep := s.Parameters()
	keys := []string{"x_range", "y_range", "a", "b", "c", "tipo_superficie"}
	if len(rep) != len(keys) {
		t.Fatalf("report=%v", rep)
	}
	for i, k := range keys {
		if rep[i].Key != k {
			t.Fatalf("第 %d 键 %q, 预期 %q", i, rep[i].Key, k)
		}
	}
	if rep.Variant() != contract.HiperboloideDeUnaHoja {
		t.Fatalf("variant=%v", rep.Variant())
	}
	if xr, _ := rep.Get("x_range"); xr != d.X {
		t.Fatalf("x_range=%v", xr)
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New(nil, dom(0, 1, 0, 1), 3); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("nil formula: %v", err)
	}
	if _, err := New(Plane{}, dom(1, 0, 0, 1), 3); !errors.Is(err, contract.ErrInvalidDomain) {
		t.Fatalf("x 反转: %v", err)
	}
	if _, err := New(Plane{}, dom(0, 1, 1, 1), 3); !errors.Is(err, contract.ErrInvalidDomain) {
		t.Fatalf("y 退化: %v", err)
	}
}

type countingFormula struct {
	Plane
	calls *int
}

func (c countingFormula) Height(x, y float64) float64 {
	*c.calls++
	return c.Plane.Height(x, y)
}
