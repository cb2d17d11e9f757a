package tabu

import "math"

// QUBO is an immutable N×N symmetric coefficient matrix, reinterpreted
// internally as exact fixed-point integers so that incremental energy
// bookkeeping never drifts. Construct with NewQUBO; a QUBO is safe for
// concurrent reads from multiple independent searches.
type QUBO struct {
	n     int
	scale float64
	coef  [][]int64 // symmetrized, scaled: coef[i][j] == coef[j][i]
}

// NewQUBO builds a QUBO from a dense N×N real matrix and a positive
// scale factor. Non-symmetric input is symmetrized via M := (M + Mᵀ)/2,
// since only the symmetric part affects xᵀQx on {0,1}ᴺ. Returns
// ErrInvalidInput for a non-square matrix, a non-finite entry, or a
// non-positive/non-finite scale; returns ErrOutOfRange if any scaled
// coefficient overflows int64.
func NewQUBO(matrix [][]float64, scale float64) (*QUBO, error) {
	n := len(matrix)
	if !(scale > 0) || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return nil, invalidInputf("scale must be positive and finite, got %v", scale)
	}
	for i, row := range matrix {
		if len(row) != n {
			return nil, invalidInputf("matrix row %d has length %d, want %d", i, len(row), n)
		}
	}

	coef := make([][]int64, n)
	for i := range coef {
		coef[i] = make([]int64, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := matrix[i][j], matrix[j][i]
			if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
				return nil, invalidInputf("matrix entry (%d,%d) is not finite", i, j)
			}
			sym := (a + b) / 2
			// Scaled values are truncated toward zero.
			scaled := math.Trunc(sym * scale)
			// math.MaxInt64 rounds up to 2⁶³ as a float64, so the upper
			// bound must be exclusive against 2⁶³ itself. MinInt64 is
			// exactly representable and stays inclusive.
			if scaled >= 9223372036854775808.0 || scaled < math.MinInt64 {
				return nil, outOfRangef("scaled coefficient at (%d,%d) overflows int64", i, j)
			}
			coef[i][j] = int64(scaled)
		}
	}

	return &QUBO{n: n, scale: scale, coef: coef}, nil
}

// Size returns N, the order of the matrix.
func (q *QUBO) Size() int {
	return q.n
}

// Scale returns the fixed-point scale factor used to build this QUBO.
func (q *QUBO) Scale() float64 {
	return q.scale
}

// Coef returns the scaled, symmetrized integer coefficient q_int[i][j].
func (q *QUBO) Coef(i, j int) int64 {
	return q.coef[i][j]
}

// Energy evaluates E(x) = Σᵢⱼ q_int[i][j]·xᵢ·xⱼ by brute force in
// O(N²). It exists for validation and restart initialization only;
// the hot incremental path lives in State.
func (q *QUBO) Energy(x []uint8) int64 {
	var e int64
	for i := 0; i < q.n; i++ {
		if x[i] == 0 {
			continue
		}
		row := q.coef[i]
		for j := 0; j < q.n; j++ {
			if x[j] != 0 {
				e += row[j]
			}
		}
	}
	return e
}
