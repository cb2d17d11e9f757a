package tabu

import (
	"context"
	"math/rand"
	"time"
)

// mst2Config bundles the parameters the multistart controller needs.
type mst2Config struct {
	tenure     int
	stagnation int
	restarts   int // 0 means unbounded
	deadline   time.Time
	alpha      float64 // exploration parameter for restart diversification
	rng        *rand.Rand
	logger     *Logger

	// onImprove, if non-nil, is invoked synchronously every time the
	// global incumbent improves (including the mandatory first run).
	// It must not block for long, since it runs on the search's own
	// goroutine between restarts.
	onImprove func(x []uint8, energy int64)
}

// mst2Result is what the multistart controller returns to the facade.
type mst2Result struct {
	best       []uint8
	bestEnergy int64
	restarts   int
}

// defaultAlpha is the exploration parameter in pᵢ = 1 - α·ĥᵢ, clipped
// to [0.5, 1]. α=0.5 keeps perturbation strength moderate even when a
// variable has appeared in every past best.
const defaultAlpha = 0.5

// runMST2WithContext orchestrates independent STS runs from
// diversified starting points, tracking the globally best assignment
// and enforcing the wall-clock deadline, the restart budget, and
// cooperative ctx cancellation. x0 is the caller-supplied initial
// assignment; it is not mutated.
func runMST2WithContext(ctx context.Context, q *QUBO, x0 []uint8, cfg mst2Config) (mst2Result, error) {
	n := q.Size()
	if n == 0 {
		return mst2Result{best: []uint8{}, bestEnergy: 0}, nil
	}

	initial, err := FromAssignment(q, x0)
	if err != nil {
		return mst2Result{}, err
	}

	// The initial run always completes to stagnation, regardless of
	// the deadline; a zero timeout still gets one full descent.
	if cfg.logger != nil {
		cfg.logger.LogStart(n, cfg.tenure, cfg.deadline)
	}
	initRes := runSTS(initial, stsConfig{tenure: cfg.tenure, stagnation: cfg.stagnation, logger: cfg.logger})

	bestX := append([]uint8(nil), initRes.best.Assignment()...)
	bestEnergy := initRes.bestEnergy
	if cfg.onImprove != nil {
		cfg.onImprove(bestX, bestEnergy)
	}

	history := make([]int, n) // H: visit counts in past-best assignments
	for i, v := range bestX {
		if v != 0 {
			history[i]++
		}
	}
	restartsSinceImprovement := 1

	restartCount := 0
	for {
		if cfg.restarts > 0 && restartCount >= cfg.restarts {
			break
		}
		if !cfg.deadline.IsZero() && !time.Now().Before(cfg.deadline) {
			break
		}
		if ctx.Err() != nil {
			break
		}

		x1 := diversify(bestX, history, restartsSinceImprovement, cfg.alpha, cfg.rng)
		state, err := FromAssignment(q, x1)
		if err != nil {
			return mst2Result{}, err
		}

		if cfg.logger != nil {
			cfg.logger.LogRestart(restartCount + 1)
		}
		res := runSTS(state, stsConfig{
			tenure:     cfg.tenure,
			stagnation: cfg.stagnation,
			deadline:   cfg.deadline,
			logger:     cfg.logger,
		})
		restartCount++

		if res.bestEnergy < bestEnergy {
			bestEnergy = res.bestEnergy
			bestX = append([]uint8(nil), res.best.Assignment()...)
			history = make([]int, n)
			for i, v := range bestX {
				if v != 0 {
					history[i]++
				}
			}
			restartsSinceImprovement = 1
			if cfg.logger != nil {
				cfg.logger.LogGlobalImprovement(restartCount, bestEnergy)
			}
			if cfg.onImprove != nil {
				cfg.onImprove(bestX, bestEnergy)
			}
		} else {
			for i, v := range res.best.Assignment() {
				if v != 0 {
					history[i]++
				}
			}
			restartsSinceImprovement++
		}
	}

	if cfg.logger != nil {
		cfg.logger.LogEnd(bestEnergy, restartCount)
	}

	return mst2Result{best: bestX, bestEnergy: bestEnergy, restarts: restartCount}, nil
}

// diversify builds a new starting assignment by perturbing best: each
// bit is kept with probability pᵢ = clip(1 - α·Hᵢ/restarts, 0.5, 1) and
// flipped otherwise, so variables over-represented in past bests are
// perturbed more aggressively.
func diversify(best []uint8, history []int, restarts int, alpha float64, rng *rand.Rand) []uint8 {
	n := len(best)
	x := make([]uint8, n)
	for i := 0; i < n; i++ {
		hHat := float64(history[i]) / float64(restarts)
		p := 1 - alpha*hHat
		if p < 0.5 {
			p = 0.5
		}
		if p > 1 {
			p = 1
		}
		if rng.Float64() < p {
			x[i] = best[i]
		} else {
			x[i] = 1 - best[i]
		}
	}
	return x
}
