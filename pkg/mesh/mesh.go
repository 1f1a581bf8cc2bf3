// Package mesh 构建曲面求值所用的规则二维网格。
package mesh

import (
	"fmt"

	"surfaces/pkg/contract"
)

// DefaultResolution: 每个方向的采样数。
const DefaultResolution = 100

// Linspace 返回 [lo, hi] 上 n 个等距样本（含两端）；n == 1 时仅返回 lo。
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = lo + float64(i)*step
	}
	// 末端精确落在 hi，避免累计误差
	out[n-1] = hi
	return out
}

// MakeGrid 以外积广播组合两个独立的等距序列：X[i][j] = xs[j]，Y[i][j] = ys[i]。
// 结果形状恒为 n×n，与变体无关。
func MakeGrid(x, y contract.Range, n int) (contract.Grid, error) {
	if n <= 0 {
		return contract.Grid{}, fmt.Errorf("%w: resolution %d", contract.ErrInvalidInput, n)
	}
	if !x.Valid() {
		return contract.Grid{}, fmt.Errorf("%w: x_range %v", contract.ErrInvalidDomain, x)
	}
	if !y.Valid() {
		return contract.Grid{}, fmt.Errorf("%w: y_range %v", contract.ErrInvalidDomain, y)
	}
	xs := Linspace(x.Lo, x.Hi, n)
	ys := Linspace(y.Lo, y.Hi, n)
	gx := Square(n)
	gy := Square(n)
	for i := 0; i < n; i++ {
		copy(gx[i], xs)
		for j := 0; j < n; j++ {
			gy[i][j] = ys[i]
		}
	}
	return contract.Grid{X: gx, Y: gy}, nil
}

// Square 分配 n×n 矩阵；行共享同一块连续内存。
func Square(n int) [][]float64 {
	backing := make([]float64, n*n)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = backing[i*n : (i+1)*n : (i+1)*n]
	}
	return rows
}

// Eval 在网格上逐点求值 f，返回与网格同形的 Z。
func Eval(g contract.Grid, f func(x, y float64) float64) [][]float64 {
	n := len(g.X)
	z := Square(n)
	for i := 0; i < n; i++ {
		for j := 0; j < len(g.X[i]); j++ {
			z[i][j] = f(g.X[i][j], g.Y[i][j])
		}
	}
	return z
}
