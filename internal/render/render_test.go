package render

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"surfaces/pkg/contract"
	"surfaces/plugins/surface/analytic"
)

func field(t *testing.T, f contract.Formula, res int) contract.HeightField {
	t.Helper()
	s, err := analytic.New(f, contract.DefaultDomain(), res)
	if err != nil {
		t.Fatalf("surface: %v", err)
	}
	hf, err := s.HeightField()
	if err != nil {
		t.Fatalf("height field: %v", err)
	}
	return hf
}

func TestHeatMapPNG(t *testing.T) {
	d := contract.DefaultDomain()
	cases := map[string]contract.Formula{
		"esfera含NaN": analytic.Sphere{Dom: d, Radio: 2},
		"常值平面":      analytic.Plane{Dom: d, Pendiente: 0},
		"正弦":        analytic.Sinusoid{Dom: d, Frecuencia: 1},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := HeatMap(&buf, field(t, f, 20), Options{Title: name, WidthIn: 2, HeightIn: 2, Levels: 8}); err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Fatalf("非 PNG 输出")
			}
		})
	}
}

func TestHeatMapNoFinite(t *testing.T) {
	nan := math.NaN()
	hf := contract.HeightField{
		X: [][]float64{{0, 1}, {0, 1}},
		Y: [][]float64{{0, 0}, {1, 1}},
		Z: [][]float64{{nan, math.Inf(1)}, {nan, nan}},
	}
	err := HeatMap(&bytes.Buffer{}, hf, Options{})
	if !errors.Is(err, ErrNoFiniteValues) || !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("expect ErrNoFiniteValues, got %v", err)
	}
}

func TestHeatMapShape(t *testing.T) {
	if err := HeatMap(&bytes.Buffer{}, field(t, analytic.Plane{Dom: contract.DefaultDomain(), Pendiente: 1}, 1), Options{}); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("1x1 应失败: %v", err)
	}
	ragged := contract.HeightField{
		X: [][]float64{{0, 1}, {0, 1}},
		Y: [][]float64{{0, 0}, {1, 1}},
		Z: [][]float64{{1, 2}, {3}},
	}
	if err := HeatMap(&bytes.Buffer{}, ragged, Options{}); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("ragged 应失败: %v", err)
	}
}

func TestGridAdapter(t *testing.T) {
	hf := contract.HeightField{
		X: [][]float64{{-1, 0, 1}, {-1, 0, 1}},
		Y: [][]float64{{5, 5, 5}, {6, 6, 6}},
		Z: [][]float64{{1, math.Inf(1), 3}, {4, 5, 6}},
	}
	g, err := newGrid(hf)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if c, r := g.Dims(); c != 3 || r != 2 {
		t.Fatalf("dims c=%d r=%d", c, r)
	}
	if g.X(2) != 1 || g.Y(1) != 6 || g.Z(2, 1) != 6 || !math.IsNaN(g.Z(1, 0)) {
		t.Fatalf("adapter 坐标映射错误")
	}
	if g.Min() != 1 || g.Max() != 6 {
		t.Fatalf("min/max %v %v", g.Min(), g.Max())
	}
}
