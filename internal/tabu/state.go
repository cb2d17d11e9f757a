package tabu

// State is a mutable search position: a binary assignment x, its
// current integer energy E, and the move-gain vector Δ, where Δᵢ is the
// change in energy that flipping bit i would produce. Δ and E are kept
// consistent with x incrementally; flip never falls back to a full
// recomputation.
type State struct {
	qubo   *QUBO
	x      []uint8
	delta  []int64
	energy int64
}

// FromAssignment builds a State from an initial {0,1} assignment,
// computing Δ and E from scratch in O(N²). Returns ErrInvalidInput if
// len(x) != qubo.Size().
func FromAssignment(q *QUBO, x []uint8) (*State, error) {
	n := q.Size()
	if len(x) != n {
		return nil, invalidInputf("initial assignment has length %d, want %d", len(x), n)
	}

	bits := make([]uint8, n)
	for i, v := range x {
		if v != 0 {
			bits[i] = 1
		}
	}

	s := &State{
		qubo:   q,
		x:      bits,
		delta:  make([]int64, n),
		energy: q.Energy(bits),
	}
	s.recomputeDelta()
	return s, nil
}

// recomputeDelta fills Δ from scratch: Δᵢ = (1-2xᵢ)·(Qii + 2·Σⱼ≠ᵢ Qij·xⱼ).
func (s *State) recomputeDelta() {
	n := s.qubo.Size()
	for i := 0; i < n; i++ {
		sum := s.qubo.Coef(i, i)
		row := s.qubo.coef[i]
		for j := 0; j < n; j++ {
			if j != i && s.x[j] != 0 {
				sum += 2 * row[j]
			}
		}
		sign := int64(1)
		if s.x[i] != 0 {
			sign = -1
		}
		s.delta[i] = sign * sum
	}
}

// Flip toggles bit k and updates Δ and E incrementally in O(N). It
// never recomputes from scratch. Returns ErrIndexOutOfRange if k is
// outside [0, N), which indicates an engine bug: callers only ever
// pass indices returned by selection logic inside this package.
func (s *State) Flip(k int) error {
	n := s.qubo.Size()
	if k < 0 || k >= n {
		return indexOutOfRangef("flip index %d outside [0,%d)", k, n)
	}

	s.energy += s.delta[k]

	oldXk := s.x[k]
	s.x[k] = 1 - oldXk

	// sign flips: bit k's own gain reverses.
	s.delta[k] = -s.delta[k]

	// The cross-term increment uses the pre-flip value of bit k:
	// xₖ_new − xₖ_old = 1−2·xₖ_old.
	oneMinus2Xk := int64(1)
	if oldXk != 0 {
		oneMinus2Xk = -1
	}
	row := s.qubo.coef[k]
	for j := 0; j < n; j++ {
		if j == k {
			continue
		}
		oneMinus2Xj := int64(1)
		if s.x[j] != 0 {
			oneMinus2Xj = -1
		}
		s.delta[j] += 2 * oneMinus2Xj * oneMinus2Xk * row[j]
	}

	return nil
}

// Delta returns the cached change in energy that flipping bit k would
// currently produce.
func (s *State) Delta(k int) int64 {
	return s.delta[k]
}

// Energy returns the current integer energy E(x).
func (s *State) Energy() int64 {
	return s.energy
}

// Assignment returns the current binary assignment. The returned slice
// is owned by the State; callers must not mutate it.
func (s *State) Assignment() []uint8 {
	return s.x
}

// Clone returns an independent copy of the State, safe to mutate
// without affecting the original.
func (s *State) Clone() *State {
	c := &State{
		qubo:   s.qubo,
		x:      make([]uint8, len(s.x)),
		delta:  make([]int64, len(s.delta)),
		energy: s.energy,
	}
	copy(c.x, s.x)
	copy(c.delta, s.delta)
	return c
}
