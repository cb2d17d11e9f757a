package tabu

import (
	"errors"
	"math"
	"testing"
)

func TestNewQUBO_Symmetrizes(t *testing.T) {
	// Non-symmetric input: Q[0][1] != Q[1][0]. The construction should
	// average them, since only the symmetric part affects xᵀQx on {0,1}.
	m := [][]float64{
		{0, 4},
		{0, 0},
	}
	q, err := NewQUBO(m, 1)
	if err != nil {
		t.Fatalf("NewQUBO: %v", err)
	}
	if q.Coef(0, 1) != 2 || q.Coef(1, 0) != 2 {
		t.Fatalf("got coef(0,1)=%d coef(1,0)=%d, want 2,2", q.Coef(0, 1), q.Coef(1, 0))
	}
}

func TestNewQUBO_NonSquare(t *testing.T) {
	m := [][]float64{
		{1, 2, 3},
		{4, 5},
	}
	_, err := NewQUBO(m, 1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestNewQUBO_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		m := [][]float64{{v}}
		_, err := NewQUBO(m, 1)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("value %v: got %v, want ErrInvalidInput", v, err)
		}
	}
}

func TestNewQUBO_InvalidScale(t *testing.T) {
	m := [][]float64{{1}}
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewQUBO(m, scale); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("scale %v: got %v, want ErrInvalidInput", scale, err)
		}
	}
}

func TestNewQUBO_OutOfRange(t *testing.T) {
	m := [][]float64{{1e300}}
	_, err := NewQUBO(m, 1e300)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
}

func TestQUBO_Energy(t *testing.T) {
	// E(x) = 2x0 + x0x1 + x1x0 + 2x1 = 2x0 + 2x0x1 + 2x1 for Q=[[2,1],[1,2]]
	q, err := NewQUBO([][]float64{{2, 1}, {1, 2}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x    []uint8
		want int64
	}{
		{[]uint8{0, 0}, 0},
		{[]uint8{1, 0}, 2},
		{[]uint8{0, 1}, 2},
		{[]uint8{1, 1}, 6},
	}
	for _, tc := range tests {
		if got := q.Energy(tc.x); got != tc.want {
			t.Errorf("Energy(%v) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestQUBO_ScaleFixedPoint(t *testing.T) {
	q, err := NewQUBO([][]float64{{-1.2}}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.Coef(0, 0); got != -12 {
		t.Fatalf("Coef(0,0) = %d, want -12", got)
	}
}
