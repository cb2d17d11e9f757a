package tabu

import (
	"context"
	"io"
	"math/rand"
	"time"
)

// Config bundles every input the facade validates before any
// per-search structure is allocated, so a failure leaves no partial
// state.
type Config struct {
	// Q is the N×N coefficient matrix. It need not be symmetric; the
	// core symmetrizes it. N == 0 is valid and yields an empty result.
	Q [][]float64

	// X0 is the initial assignment, coerced element-wise to {0,1}: any
	// nonzero value maps to 1. Must have length N.
	X0 []int

	// Tenure is the tabu tenure T, required to be in [0, N-1].
	Tenure int

	// Scale is the fixed-point scale factor. Zero selects the default
	// of 1.
	Scale float64

	// TimeoutMs bounds the wall-clock budget of the multistart
	// controller's restart loop (not the mandatory first run). Must be
	// >= 0.
	TimeoutMs int64

	// Restarts caps the number of restarts. Zero means unbounded
	// (bounded only by the timeout).
	Restarts int

	// Seed seeds the deterministic random source used for restart
	// diversification. Nil derives a seed from the monotonic clock,
	// which forfeits determinism across runs.
	Seed *int64

	// Console, if non-nil, receives human-readable progress lines.
	Console io.Writer

	// LogFile, if non-nil, receives JSONL structured progress events.
	LogFile io.Writer
}

// SearchResult is the facade's output: the best assignment found and
// its energy. The energy is re-evaluated against the caller's original
// matrix at the boundary, so it is free of fixed-point truncation;
// the scaled integers steer only the search itself.
type SearchResult struct {
	BestAssignment []uint8
	BestEnergy     float64
	Restarts       int
}

// stagnationBound sets the single-run stagnation bound S = N, floored
// at 1 so N=1 still halts.
func stagnationBound(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// session holds everything prepareSession validates and builds: the
// immutable QUBO, the coerced initial assignment, the seeded random
// source, and the optional logger.
type session struct {
	q      *QUBO
	x0     []uint8
	rng    *rand.Rand
	logger *Logger
}

// prepareSession performs all input validation before any per-search
// structure is allocated, and returns ok=false with a zero session
// when N == 0 (the caller returns the empty result directly).
func prepareSession(cfg Config) (s session, ok bool, err error) {
	n := len(cfg.Q)
	if n == 0 {
		return session{}, false, nil
	}

	if cfg.Tenure < 0 || cfg.Tenure > n-1 {
		return session{}, false, invalidInputf("tenure %d outside [0,%d]", cfg.Tenure, n-1)
	}
	if len(cfg.X0) != n {
		return session{}, false, invalidInputf("initial assignment has length %d, want %d", len(cfg.X0), n)
	}
	if cfg.TimeoutMs < 0 {
		return session{}, false, invalidInputf("timeout_ms must be non-negative, got %d", cfg.TimeoutMs)
	}

	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}

	q, err := NewQUBO(cfg.Q, scale)
	if err != nil {
		return session{}, false, err
	}

	x0 := make([]uint8, n)
	for i, v := range cfg.X0 {
		if v != 0 {
			x0[i] = 1
		}
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	var logger *Logger
	if cfg.Console != nil || cfg.LogFile != nil {
		logger = NewLogger(cfg.Console, cfg.LogFile)
	}

	return session{
		q:      q,
		x0:     x0,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}, true, nil
}

func (s session) mst2Config(cfg Config, onImprove func([]uint8, int64)) mst2Config {
	return mst2Config{
		tenure:     cfg.Tenure,
		stagnation: stagnationBound(s.q.Size()),
		restarts:   cfg.Restarts,
		deadline:   deadlineFromTimeout(cfg.TimeoutMs),
		alpha:      defaultAlpha,
		rng:        s.rng,
		logger:     s.logger,
		onImprove:  onImprove,
	}
}

// Search runs a multistart tabu search session to completion and
// blocks the calling thread until a result is ready. It is equivalent
// to SearchContext(context.Background(), cfg).
func Search(cfg Config) (SearchResult, error) {
	return SearchContext(context.Background(), cfg)
}

// SearchContext is Search with cooperative cancellation: ctx is
// checked at the same restart-boundary granularity as the millisecond
// deadline, so it never interrupts a running STS iteration early.
func SearchContext(ctx context.Context, cfg Config) (SearchResult, error) {
	s, ok, err := prepareSession(cfg)
	if err != nil {
		return SearchResult{}, err
	}
	if !ok {
		return SearchResult{BestAssignment: []uint8{}, BestEnergy: 0}, nil
	}

	res, err := runMST2WithContext(ctx, s.q, s.x0, s.mst2Config(cfg, nil))
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		BestAssignment: res.best,
		BestEnergy:     floatEnergy(cfg.Q, res.best),
		Restarts:       res.restarts,
	}, nil
}

// floatEnergy evaluates xᵀQx against the caller's original matrix.
// Symmetrization is irrelevant here: the double sum already visits
// both (i,j) and (j,i).
func floatEnergy(q [][]float64, x []uint8) float64 {
	var e float64
	for i := range q {
		if x[i] == 0 {
			continue
		}
		for j, v := range q[i] {
			if x[j] != 0 {
				e += v
			}
		}
	}
	return e
}

// SearchStream runs a multistart session and returns a channel that
// receives a SearchResult every time the global incumbent improves,
// including the mandatory first run. The channel is closed once the
// session ends (deadline, restart budget, or ctx cancellation); a
// caller only interested in the final answer should drain it to
// completion and keep the last value received.
func SearchStream(ctx context.Context, cfg Config) (<-chan SearchResult, error) {
	s, ok, err := prepareSession(cfg)
	if err != nil {
		return nil, err
	}
	if !ok {
		ch := make(chan SearchResult, 1)
		ch <- SearchResult{BestAssignment: []uint8{}, BestEnergy: 0}
		close(ch)
		return ch, nil
	}

	out := make(chan SearchResult)
	onImprove := func(x []uint8, e int64) {
		xCopy := append([]uint8(nil), x...)
		out <- SearchResult{BestAssignment: xCopy, BestEnergy: floatEnergy(cfg.Q, xCopy)}
	}

	go func() {
		defer close(out)
		_, _ = runMST2WithContext(ctx, s.q, s.x0, s.mst2Config(cfg, onImprove))
	}()

	return out, nil
}

// deadlineFromTimeout converts a millisecond budget into an absolute
// deadline. A zero budget yields time.Now(), so the restart loop
// terminates immediately; the mandatory first run ignores this
// deadline.
func deadlineFromTimeout(timeoutMs int64) time.Time {
	return time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
}
