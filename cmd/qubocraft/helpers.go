package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rbscholtus/qubocraft/internal/qfile"
	"github.com/rbscholtus/qubocraft/internal/tabu"
	"github.com/rbscholtus/qubocraft/internal/tabuutil"
)

// problem bundles everything a command needs to run a search: the
// loaded matrix, its metadata, and a fully resolved tabu.Config.
type problem struct {
	doc  qfile.Document
	meta qfile.Meta
	cfg  tabu.Config
}

// loadProblem loads the matrix file given as the command's argument
// and resolves the search configuration. Precedence, lowest to
// highest: engine defaults, the problem file, its YAML sidecar,
// command-line flags.
func loadProblem(c *cli.Command) (*problem, error) {
	path := c.Args().First()
	if path == "" {
		return nil, fmt.Errorf("problem file is required")
	}

	doc, meta, err := qfile.Load(path)
	if err != nil {
		return nil, err
	}
	params, _, err := qfile.LoadParams(path)
	if err != nil {
		return nil, err
	}

	n := len(doc.Matrix)

	scale := doc.Scale
	if params.Scale != nil {
		scale = *params.Scale
	}
	if c.Float("scale") != 0 {
		scale = c.Float("scale")
	}

	tenure := defaultTenure(n)
	if params.Tenure != nil {
		tenure = *params.Tenure
	}
	if c.Int("tenure") >= 0 {
		tenure = int(c.Int("tenure"))
	}

	timeoutMs := c.Int("timeout")
	if params.TimeoutMs != nil && !c.IsSet("timeout") {
		timeoutMs = *params.TimeoutMs
	}

	restarts := int(c.Int("restarts"))
	if params.Restarts != nil && !c.IsSet("restarts") {
		restarts = *params.Restarts
	}

	seed := resolveSeed(c, params)

	x0, err := parseInit(c.String("init"), n, seed)
	if err != nil {
		return nil, err
	}

	cfg := tabu.Config{
		Q:         doc.Matrix,
		X0:        x0,
		Tenure:    tenure,
		Scale:     scale,
		TimeoutMs: timeoutMs,
		Restarts:  restarts,
	}
	if seed != 0 {
		cfg.Seed = &seed
	}
	if c.Bool("verbose") {
		cfg.Console = os.Stdout
	}

	return &problem{doc: doc, meta: meta, cfg: cfg}, nil
}

// resolveSeed picks the seed: flag beats sidecar; 0 means "derive from
// the clock at facade entry".
func resolveSeed(c *cli.Command, params qfile.Params) int64 {
	if c.IsSet("seed") {
		return c.Int("seed")
	}
	if params.Seed != nil {
		return *params.Seed
	}
	return c.Int("seed")
}

// defaultTenure is the facade-level tenure policy: min(20, N/4),
// clamped to the engine's [0, N-1] contract.
func defaultTenure(n int) int {
	t := n / 4
	if t > 20 {
		t = 20
	}
	if t > n-1 {
		t = n - 1
	}
	if t < 0 {
		t = 0
	}
	return t
}

// parseInit builds the initial assignment from the --init flag. The
// "random" form uses seed so the whole run stays reproducible; seed 0
// falls back to the clock.
func parseInit(spec string, n int, seed int64) ([]int, error) {
	switch spec {
	case "zeros", "":
		return make([]int, n), nil
	case "ones":
		x := make([]int, n)
		for i := range x {
			x[i] = 1
		}
		return x, nil
	case "random":
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		x := make([]int, n)
		for i := range x {
			x[i] = rng.Intn(2)
		}
		return x, nil
	}

	parts := strings.Split(spec, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("--init has %d entries, problem has %d variables", len(parts), n)
	}
	x := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid --init entry %q: %v", p, err)
		}
		x[i] = v
	}
	return x, nil
}

// openLogFile opens the JSONL log file named by --log-file, returning
// a nil writer (and nil cleanup) when the flag is unset.
func openLogFile(c *cli.Command) (io.Writer, func(), error) {
	path := c.String("log-file")
	if path == "" {
		return nil, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file %s: %v", path, err)
	}
	return f, func() { tabuutil.CloseFile(f) }, nil
}
