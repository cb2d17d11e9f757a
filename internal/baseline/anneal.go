// Package baseline provides a simulated-annealing QUBO solver built on
// eaopt. It exists to benchmark the tabu engine against an independent
// heuristic; the engine itself never depends on it.
package baseline

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/MaxHalford/eaopt"

	"github.com/rbscholtus/qubocraft/internal/tabu"
	"github.com/rbscholtus/qubocraft/internal/tabuutil"
)

// AnnealParams configures a simulated-annealing run.
type AnnealParams struct {
	// Generations is the number of annealing iterations.
	Generations uint
	// AcceptWorse names the acceptance policy: "always", "never",
	// "drop-slow", "linear", or "drop-fast".
	AcceptWorse string
	// Seed makes the run reproducible.
	Seed int64
	// Console, if non-nil, receives a line per improvement.
	Console io.Writer
}

// Result is the best assignment the annealer observed and its energy
// in the caller's original (unscaled) units.
type Result struct {
	Assignment []uint8
	Energy     float64
}

// getAcceptFunc returns an acceptance function for simulated annealing
// based on the chosen policy.
func getAcceptFunc(acceptWorse string) func(g, ng uint, e0, e1 float64) float64 {
	switch acceptWorse {
	case "always":
		return func(g, ng uint, e0, e1 float64) float64 { return 1.0 }
	case "never":
		return func(g, ng uint, e0, e1 float64) float64 { return 0.0 }
	case "drop-slow":
		return func(g, ng uint, e0, e1 float64) float64 {
			t := 1.0 - float64(g)/float64(ng)
			return (math.Cos(t*math.Pi) + 1.0) / 2.0
		}
	case "linear":
		return func(g, ng uint, e0, e1 float64) float64 {
			t := 1.0 - float64(g)/float64(ng)
			return t
		}
	case "drop-fast":
		return func(g, ng uint, e0, e1 float64) float64 {
			t := 1.0 - float64(g)/float64(ng)
			return math.Exp(-3.0 * (1 - t))
		}
	default:
		panic("unknown accept worse function")
	}
}

// Anneal minimizes xᵀQx over {0,1}ᴺ with eaopt's simulated annealing,
// starting from x0. The hall of fame retains the best genome ever
// evaluated, so the returned energy never exceeds E(x0).
func Anneal(q *tabu.QUBO, x0 []uint8, params AnnealParams) (Result, error) {
	n := q.Size()
	if n == 0 {
		return Result{Assignment: []uint8{}, Energy: 0}, nil
	}
	if len(x0) != n {
		return Result{}, fmt.Errorf("initial assignment has length %d, want %d", len(x0), n)
	}
	if params.Generations == 0 {
		return Result{}, fmt.Errorf("number of generations must be above 0")
	}

	cfg := eaopt.NewDefaultGAConfig()
	cfg.NGenerations = params.Generations
	cfg.RNG = rand.New(rand.NewSource(params.Seed))
	cfg.Model = eaopt.ModSimulatedAnnealing{
		Accept: getAcceptFunc(params.AcceptWorse),
	}

	// Report only when the hall of fame improves.
	minFit := math.MaxFloat64
	cfg.Callback = func(ga *eaopt.GA) {
		fit := ga.HallOfFame[0].Fitness
		if fit >= minFit {
			return
		}
		if params.Console != nil {
			tabuutil.MustFprintf(params.Console, "generation %d: energy %.4f\n", ga.Generations, fit)
		}
		minFit = fit
	}

	// NewGA only fails on an invalid config, and Minimize only surfaces
	// Evaluate errors, which bitGenome never produces.
	ga := tabuutil.Must(cfg.NewGA())

	seedGenome := &bitGenome{q: q, bits: append([]uint8(nil), x0...)}
	newGenome := func(rng *rand.Rand) eaopt.Genome {
		return seedGenome.Clone()
	}
	tabuutil.Must0(ga.Minimize(newGenome))

	hof0 := ga.HallOfFame[0]
	best := hof0.Genome.(*bitGenome)
	return Result{
		Assignment: append([]uint8(nil), best.bits...),
		Energy:     hof0.Fitness,
	}, nil
}
