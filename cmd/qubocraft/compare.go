package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rbscholtus/qubocraft/internal/baseline"
	"github.com/rbscholtus/qubocraft/internal/tabu"
	"github.com/rbscholtus/qubocraft/internal/tui"
)

// compareCommand defines the "compare" CLI command: tabu search versus
// a simulated-annealing baseline on the same problem and start.
var compareCommand = &cli.Command{
	Name:          "compare",
	Usage:         "Benchmark tabu search against a simulated-annealing baseline",
	Flags:         flagsSlice("tenure", "scale", "timeout", "restarts", "seed", "init", "verbose", "generations", "accept-worse"),
	ArgsUsage:     "<matrix-file>",
	Before:        validateSolveFlags,
	Action:        compareAction,
	ShellComplete: matrixShellComplete,
}

// compareAction runs both solvers from the same initial assignment and
// renders their outcomes side by side.
func compareAction(ctx context.Context, c *cli.Command) error {
	if isShellCompletion() {
		return nil
	}

	p, err := loadProblem(c)
	if err != nil {
		return err
	}

	tabuStart := time.Now()
	tabuRes, err := tabu.SearchContext(ctx, p.cfg)
	if err != nil {
		return err
	}
	tabuElapsed := time.Since(tabuStart)

	// The baseline operates on the engine's own QUBO representation so
	// both solvers score with identical fixed-point arithmetic.
	scale := p.cfg.Scale
	if scale == 0 {
		scale = 1
	}
	q, err := tabu.NewQUBO(p.cfg.Q, scale)
	if err != nil {
		return err
	}
	x0 := make([]uint8, len(p.cfg.X0))
	for i, v := range p.cfg.X0 {
		if v != 0 {
			x0[i] = 1
		}
	}

	seed := time.Now().UnixNano()
	if p.cfg.Seed != nil {
		seed = *p.cfg.Seed
	}
	var console io.Writer
	if c.Bool("verbose") {
		console = os.Stdout
	}

	annealStart := time.Now()
	annealRes, err := baseline.Anneal(q, x0, baseline.AnnealParams{
		Generations: uint(c.Uint("generations")),
		AcceptWorse: c.String("accept-worse"),
		Seed:        seed,
		Console:     console,
	})
	if err != nil {
		return err
	}
	annealElapsed := time.Since(annealStart)

	tui.RenderComparison(os.Stdout, fmt.Sprintf("Solver Comparison - %s", p.meta.Name), []tui.SessionRow{
		{Label: "tabu multistart", Energy: tabuRes.BestEnergy, Restarts: tabuRes.Restarts, Elapsed: tabuElapsed},
		{Label: "simulated annealing", Energy: annealRes.Energy, Restarts: -1, Elapsed: annealElapsed},
	})
	return nil
}
