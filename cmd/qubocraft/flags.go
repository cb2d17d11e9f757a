package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

// validAcceptFuncs lists the acceptance policies the compare command's
// simulated-annealing baseline understands.
var validAcceptFuncs = []string{"always", "never", "drop-slow", "linear", "drop-fast"}

// appFlagsMap is a centralized map of CLI flags used across various
// commands. It keeps flag definitions in one place, allowing commands
// to select only the flags they need.
var appFlagsMap = map[string]cli.Flag{
	"tenure": &cli.IntFlag{
		Name:    "tenure",
		Aliases: []string{"t"},
		Usage: "Tabu tenure: iterations a flipped variable stays prohibited. " +
			"-1 uses the YAML sidecar's tenure if set, otherwise min(20, N/4).",
		Value: -1,
	},
	"scale": &cli.FloatFlag{
		Name:  "scale",
		Usage: "Fixed-point scale factor for energy arithmetic. 0 uses the YAML sidecar's value, else the problem file's, else 1.",
		Value: 0,
		Action: func(ctx context.Context, c *cli.Command, value float64) error {
			if value < 0 {
				return fmt.Errorf("--scale must be non-negative (got %f)", value)
			}
			return nil
		},
	},
	"timeout": &cli.IntFlag{
		Name:    "timeout",
		Aliases: []string{"mt"},
		Usage:   "Wall-clock budget for the restart loop, in milliseconds.",
		Value:   1000,
		Action: func(ctx context.Context, c *cli.Command, value int64) error {
			if value < 0 {
				return fmt.Errorf("--timeout must be non-negative (got %d)", value)
			}
			return nil
		},
	},
	"restarts": &cli.IntFlag{
		Name:    "restarts",
		Aliases: []string{"r"},
		Usage:   "Maximum number of restarts. 0 means bounded only by the timeout.",
		Value:   0,
	},
	"seed": &cli.IntFlag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "Random seed for reproducible results. Uses current timestamp if 0.",
		Value:   0,
	},
	"init": &cli.StringFlag{
		Name:    "init",
		Aliases: []string{"i"},
		Usage:   "Initial assignment: \"zeros\", \"ones\", \"random\", or comma-separated bits (e.g. \"0,1,1,0\").",
		Value:   "zeros",
	},
	"verbose": &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Print search progress to the console.",
	},
	"log-file": &cli.StringFlag{
		Name:    "log-file",
		Aliases: []string{"lf"},
		Usage:   "JSONL log file path for detailed search events.",
	},
	"save": &cli.StringFlag{
		Name:  "save",
		Usage: "Write the full result (assignment, energy, restarts) to this JSON file.",
	},
	"watch": &cli.BoolFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Print every improving incumbent as it is found.",
	},
	"sessions": &cli.IntFlag{
		Name:    "sessions",
		Aliases: []string{"n"},
		Usage:   "Number of independent searches to run in parallel.",
		Value:   4,
		Action: func(ctx context.Context, c *cli.Command, value int64) error {
			if value < 1 {
				return fmt.Errorf("--sessions must be at least 1 (got %d)", value)
			}
			return nil
		},
	},
	"generations": &cli.UintFlag{
		Name:    "generations",
		Aliases: []string{"gens", "g"},
		Usage:   "Number of annealing iterations for the baseline solver.",
		Value:   1000,
	},
	"accept-worse": &cli.StringFlag{
		Name:    "accept-worse",
		Aliases: []string{"aw"},
		Usage:   fmt.Sprintf("Baseline accept-worse policy: %v.", validAcceptFuncs),
		Value:   "drop-slow",
		Action: func(ctx context.Context, c *cli.Command, value string) error {
			if !slices.Contains(validAcceptFuncs, value) {
				return fmt.Errorf("--accept-worse must be one of %v (got %q)", validAcceptFuncs, value)
			}
			return nil
		},
	},
}

// flagsSlice returns a slice of cli.Flag pointers for the given keys
// from appFlagsMap.
func flagsSlice(keys ...string) []cli.Flag {
	flags := make([]cli.Flag, 0, len(keys))
	for _, k := range keys {
		if f, ok := appFlagsMap[k]; ok {
			flags = append(flags, f)
		}
	}
	return flags
}

// isShellCompletion reports whether the process is answering a shell
// completion request rather than running a command.
func isShellCompletion() bool {
	return slices.Contains(os.Args, "--generate-shell-completion")
}

// matrixShellComplete suggests matrix files from the current directory
// for the problem-file argument.
func matrixShellComplete(ctx context.Context, c *cli.Command) {
	entries, err := os.ReadDir(".")
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt", ".csv", ".json":
			fmt.Println(name)
		}
	}
}
