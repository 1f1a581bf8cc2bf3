package mesh

import (
	"errors"
	"testing"

	"surfaces/pkg/contract"
)

func TestLinspace(t *testing.T) {
	got := Linspace(-5, 5, 11)
	if len(got) != 11 {
		t.Fatalf("len=%d", len(got))
	}
	for i, v := range got {
		if want := float64(i - 5); v != want {
			t.Fatalf("got[%d]=%v, 预期 %v", i, v, want)
		}
	}
	if one := Linspace(2, 3, 1); len(one) != 1 || one[0] != 2 {
		t.Fatalf("n=1: %v", one)
	}
	if Linspace(0, 1, 0) != nil {
		t.Fatalf("n=0 应返回 nil")
	}
	// 末端精确
	if last := Linspace(0, 0.3, 100)[99]; last != 0.3 {
		t.Fatalf("末端 %v", last)
	}
}

// TestMakeGridShape 任意合法区间下 X/Y 形状恒为 n×n。
func TestMakeGridShape(t *testing.T) {
	ranges := []contract.Range{{Lo: -5, Hi: 5}, {Lo: 0, Hi: 0.001}, {Lo: -100, Hi: -99}}
	for _, n := range []int{1, 2, 7, DefaultResolution} {
		for _, xr := range ranges {
			for _, yr := range ranges {
				g, err := MakeGrid(xr, yr, n)
				if err != nil {
					t.Fatalf("MakeGrid(%v,%v,%d): %v", xr, yr, n, err)
				}
				if len(g.X) != n || len(g.Y) != n {
					t.Fatalf("行数 %d/%d, 预期 %d", len(g.X), len(g.Y), n)
				}
				for i := 0; i < n; i++ {
					if len(g.X[i]) != n || len(g.Y[i]) != n {
						t.Fatalf("第 %d 行列数不符", i)
					}
				}
			}
		}
	}
}

// TestMakeGridOrientation X 沿列变化、Y 沿行变化。
func TestMakeGridOrientation(t *testing.T) {
	g, err := MakeGrid(contract.Range{Lo: 0, Hi: 2}, contract.Range{Lo: 10, Hi: 20}, 3)
	if err != nil {
		t.Fatalf("MakeGrid: %v", err)
	}
	wantX := [][]float64{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}}
	wantY := [][]float64{{10, 10, 10}, {15, 15, 15}, {20, 20, 20}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if g.X[i][j] != wantX[i][j] || g.Y[i][j] != wantY[i][j] {
				t.Fatalf("(%d,%d): X=%v Y=%v", i, j, g.X[i][j], g.Y[i][j])
			}
		}
	}
}

func TestMakeGridInvalid(t *testing.T) {
	ok := contract.Range{Lo: -1, Hi: 1}
	if _, err := MakeGrid(contract.Range{Lo: 1, Hi: 1}, ok, 3); !errors.Is(err, contract.ErrInvalidDomain) {
		t.Fatalf("x 退化应报 ErrInvalidDomain: %v", err)
	}
	if _, err := MakeGrid(ok, contract.Range{Lo: 2, Hi: -2}, 3); !errors.Is(err, contract.ErrInvalidDomain) {
		t.Fatalf("y 反转应报 ErrInvalidDomain: %v", err)
	}
	if _, err := MakeGrid(ok, ok, 0); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("n=0 应报 ErrInvalidInput: %v", err)
	}
}

func TestEval(t *testing.T) {
	g, _ := MakeGrid(contract.Range{Lo: 0, Hi: 1}, contract.Range{Lo: 0, Hi: 1}, 2)
	z := Eval(g, func(x, y float64) float64 { return x + 10*y })
	want := [][]float64{{0, 1}, {10, 11}}
	for i := range want {
		for j := range want[i] {
			if z[i][j] != want[i][j] {
				t.Fatalf("z[%d][%d]=%v", i, j, z[i][j])
			}
		}
	}
	// 行相互独立
	z[0][1] = 99
	if z[1][0] != 10 {
		t.Fatalf("行内存越界共享")
	}
}
