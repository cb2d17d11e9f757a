// Package main provides the CLI entrypoint for the qubocraft
// command-line tool.
//
// solve.go implements the "solve" command: it loads a QUBO matrix,
// runs the multistart tabu search engine, and renders the result.
//
// bench.go implements the "bench" command, which launches several
// independent searches in parallel with distinct seeds and tabulates
// their outcomes.
//
// compare.go implements the "compare" command, which runs the tabu
// engine head to head against a simulated-annealing baseline.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// main sets up the CLI application and registers commands.
func main() {
	app := &cli.Command{
		Name:  "qubocraft",
		Usage: "A CLI tool for solving QUBO problems with multistart tabu search",
		Commands: []*cli.Command{
			solveCommand,
			benchCommand,
			compareCommand,
		},
		EnableShellCompletion: true,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
