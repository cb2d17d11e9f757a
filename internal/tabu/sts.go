package tabu

import "time"

// deadlinePollInterval is the number of iterations between clock
// checks, amortizing the cost of polling a monotonic clock against the
// cost of a flip.
const deadlinePollInterval = 32

// stsConfig bundles the parameters a single run needs beyond the
// starting State; MST2 builds one for each run.
type stsConfig struct {
	tenure     int
	stagnation int       // S: consecutive non-improving iterations before halting
	deadline   time.Time // zero value means "no deadline"
	logger     *Logger
}

// stsResult is the outcome of one tabu descent: the best State seen
// during the run and its energy.
type stsResult struct {
	best       *State
	bestEnergy int64
	iterations int
	timedOut   bool
}

// runSTS performs one tabu-guided descent from start until local
// stagnation (or the deadline elapses) and returns the best State
// observed. start is mutated in place; callers that need the
// pre-search state preserved must pass a clone.
func runSTS(start *State, cfg stsConfig) stsResult {
	n := len(start.Assignment())
	tabu := NewTabuList(n)

	best := start.Clone()
	bestEnergy := start.Energy()
	stagnant := 0
	iter := 0
	timedOut := false

	for {
		if stagnant > cfg.stagnation {
			break
		}
		if !cfg.deadline.IsZero() && iter%deadlinePollInterval == 0 && iter > 0 {
			if !time.Now().Before(cfg.deadline) {
				timedOut = true
				break
			}
		}

		k, found := selectMove(start, tabu, bestEnergy)
		if !found {
			break
		}

		// Flip never errors for an index returned by selectMove, since
		// selectMove only considers indices in [0, N).
		_ = start.Flip(k)
		// Tick before setting so the just-flipped variable keeps its
		// full tenure; only the other entries decrement this iteration.
		tabu.Tick()
		tabu.Set(k, cfg.tenure)
		iter++

		if start.Energy() < bestEnergy {
			bestEnergy = start.Energy()
			best = start.Clone()
			stagnant = 0
			if cfg.logger != nil {
				cfg.logger.LogImprovement(iter, bestEnergy)
			}
		} else {
			stagnant++
		}
	}

	if cfg.logger != nil && timedOut {
		cfg.logger.LogTimeout(iter)
	}

	return stsResult{best: best, bestEnergy: bestEnergy, iterations: iter, timedOut: timedOut}
}

// selectMove picks the candidate index with the minimum Δ among
// variables that are either untabu or satisfy aspiration (their
// post-flip energy would strictly improve on the run's best). Ties
// are broken by the lowest index. Returns found=false when no
// candidate exists.
func selectMove(s *State, tabu *TabuList, bestEnergy int64) (int, bool) {
	n := len(s.Assignment())
	bestDelta := int64(0)
	bestIdx := -1
	found := false

	for i := 0; i < n; i++ {
		if tabu.IsTabu(i) {
			aspiration := s.Energy()+s.Delta(i) < bestEnergy
			if !aspiration {
				continue
			}
		}
		d := s.Delta(i)
		if !found || d < bestDelta {
			bestDelta = d
			bestIdx = i
			found = true
		}
	}

	return bestIdx, found
}
