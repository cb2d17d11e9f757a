package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rbscholtus/qubocraft/internal/tabu"
	"github.com/rbscholtus/qubocraft/internal/tui"
)

// benchCommand defines the "bench" CLI command: N independent searches
// over the same problem, run in parallel with distinct seeds.
var benchCommand = &cli.Command{
	Name:          "bench",
	Usage:         "Run independent parallel searches over one problem and tabulate the outcomes",
	Flags:         flagsSlice("tenure", "scale", "timeout", "restarts", "seed", "init", "sessions", "log-file"),
	ArgsUsage:     "<matrix-file>",
	Before:        validateSolveFlags,
	Action:        benchAction,
	ShellComplete: matrixShellComplete,
}

// sessionOutcome holds one parallel session's result for collection
// over a channel.
type sessionOutcome struct {
	index   int
	res     tabu.SearchResult
	elapsed time.Duration
	err     error
}

// benchAction launches the sessions, joins them, and renders a
// comparison table. The QUBO matrix is shared read-only; every session
// builds its own per-search state inside the engine.
func benchAction(ctx context.Context, c *cli.Command) error {
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

	numSessions := int(c.Int("sessions"))
	baseSeed := time.Now().UnixNano()
	if p.cfg.Seed != nil {
		baseSeed = *p.cfg.Seed
	}

	results := make(chan sessionOutcome, numSessions)
	var wg sync.WaitGroup

	for i := 0; i < numSessions; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Each session gets its own config copy and seed; the JSONL
			// log is shared, with events demultiplexed by run ID.
			cfg := p.cfg
			seed := baseSeed + int64(idx)
			cfg.Seed = &seed
			cfg.LogFile = logFile

			start := time.Now()
			res, err := tabu.SearchContext(ctx, cfg)
			results <- sessionOutcome{index: idx, res: res, elapsed: time.Since(start), err: err}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	rows := make([]tui.SessionRow, 0, numSessions)
	for outcome := range results {
		if outcome.err != nil {
			return outcome.err
		}
		rows = append(rows, tui.SessionRow{
			Label:    fmt.Sprintf("session %d", outcome.index+1),
			Energy:   outcome.res.BestEnergy,
			Restarts: outcome.res.Restarts,
			Elapsed:  outcome.elapsed,
		})
	}

	tui.RenderComparison(os.Stdout, fmt.Sprintf("Parallel Sessions - %s", p.meta.Name), rows)
	return nil
}
