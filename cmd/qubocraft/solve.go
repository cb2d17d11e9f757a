package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rbscholtus/qubocraft/internal/qfile"
	"github.com/rbscholtus/qubocraft/internal/tabu"
	"github.com/rbscholtus/qubocraft/internal/tui"
)

// solveCommand defines the "solve" CLI command for running a
// multistart tabu search on a QUBO problem file.
var solveCommand = &cli.Command{
	Name:          "solve",
	Usage:         "Solve a QUBO problem with multistart tabu search",
	Flags:         flagsSlice("tenure", "scale", "timeout", "restarts", "seed", "init", "verbose", "log-file", "save", "watch"),
	ArgsUsage:     "<matrix-file>",
	Before:        validateSolveFlags,
	Action:        solveAction,
	ShellComplete: matrixShellComplete,
}

// validateSolveFlags validates CLI flags before running the solve command.
func validateSolveFlags(ctx context.Context, c *cli.Command) (context.Context, error) {
	// Skip validation during shell completion
	if isShellCompletion() {
		return ctx, nil
	}

	if c.Args().Len() != 1 {
		return ctx, fmt.Errorf("expected exactly 1 problem file, got %d", c.Args().Len())
	}
	return ctx, nil
}

// solveAction loads the problem, runs the search, and renders the result.
func solveAction(ctx context.Context, c *cli.Command) error {
	// During shell completion, action should not run
	if isShellCompletion() {
		return nil
	}

	p, err := loadProblem(c)
	if err != nil {
		return err
	}

	logFile, closeLog, err := openLogFile(c)
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}
	p.cfg.LogFile = logFile

	start := time.Now()
	var res tabu.SearchResult
	if c.Bool("watch") {
		res, err = solveWatch(ctx, p.cfg)
	} else {
		res, err = tabu.SearchContext(ctx, p.cfg)
	}
	if err != nil {
		return err
	}

	tui.RenderResult(os.Stdout, p.meta.Name, res, time.Since(start))

	if savePath := c.String("save"); savePath != "" {
		if err := qfile.SaveResult(savePath, res); err != nil {
			return fmt.Errorf("failed to save result to %s: %v", savePath, err)
		}
	}

	return nil
}

// solveWatch runs the streaming search variant, printing every
// improving incumbent, and returns the last (best) one.
func solveWatch(ctx context.Context, cfg tabu.Config) (tabu.SearchResult, error) {
	ch, err := tabu.SearchStream(ctx, cfg)
	if err != nil {
		return tabu.SearchResult{}, err
	}

	var last tabu.SearchResult
	for r := range ch {
		fmt.Printf("incumbent: energy %s\n", tui.Energy(r.BestEnergy))
		last = r
	}
	return last, nil
}
