// Package render 将高度场导出为 PNG 热力图。
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"surfaces/pkg/contract"
)

// ErrNoFiniteValues: 高度场中没有任何有限值，无法确定色阶。
var ErrNoFiniteValues = fmt.Errorf("%w: height field has no finite values", contract.ErrInvalidInput)

// Options: 图像尺寸（英寸）与色阶数。零值使用默认。
type Options struct {
	Title    string
	WidthIn  float64
	HeightIn float64
	Levels   int
}

func (o Options) withDefaults() Options {
	if o.WidthIn <= 0 {
		o.WidthIn = 6
	}
	if o.HeightIn <= 0 {
		o.HeightIn = 6
	}
	if o.Levels < 2 {
		o.Levels = 64
	}
	return o
}

// HeatMap 以 PNG 写出热力图；非有限单元不着色。
func HeatMap(w io.Writer, hf contract.HeightField, opts Options) error {
	g, err := newGrid(hf)
	if err != nil {
		return err
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	hm := plotter.NewHeatMap(g, palette.Heat(opts.Levels, 1))
	hm.Min, hm.Max = g.Min(), g.Max()
	p.Add(hm)

	wt, err := p.WriterTo(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

// grid 适配 plotter.GridXYZ：列沿 x，行沿 y。
type grid struct {
	hf       contract.HeightField
	min, max float64
}

var _ plotter.GridXYZ = (*grid)(nil)

func newGrid(hf contract.HeightField) (*grid, error) {
	rows, cols := hf.Dims()
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: heat map needs at least 2x2 cells, got %dx%d", contract.ErrInvalidInput, rows, cols)
	}
	if len(hf.X) != rows || len(hf.Y) != rows {
		return nil, errors.Join(contract.ErrInvalidInput, errors.New("height field X/Y/Z shapes differ"))
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range hf.Z {
		if len(row) != cols {
			return nil, errors.Join(contract.ErrInvalidInput, errors.New("height field rows are ragged"))
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return nil, ErrNoFiniteValues
	}
	// 常值场：扩展色阶避免零宽区间
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return &grid{hf: hf, min: lo, max: hi}, nil
}

func (g *grid) Dims() (c, r int) {
	r, c = g.hf.Dims()
	return c, r
}

func (g *grid) Z(c, r int) float64 {
	v := g.hf.Z[r][c]
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func (g *grid) X(c int) float64 { return g.hf.X[0][c] }
func (g *grid) Y(r int) float64 { return g.hf.Y[r][0] }

// Min/Max 仅统计有限值。
func (g *grid) Min() float64 { return g.min }
func (g *grid) Max() float64 { return g.max }
