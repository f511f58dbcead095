// exprcalc - expression engine CLI
//
// Usage:
//
//	exprcalc eval --var x=3 "x^2 - 1"             Evaluate an expression
//	exprcalc simplify "(x + 0) * 1"               Simplify and print
//	exprcalc format [--unicode] "(a+b)*c"         Print with minimal parentheses
//	exprcalc compare [--db FILE] "(a+b)^2" "..."  Check equivalence
//	exprcalc verdicts --db verdicts.db            List journaled comparisons
//
// Flags go before positional arguments.
// Global flags --config (YAML or JSON engine options) and --log-level
// (debug, info, warn, error) apply to every command.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "exprcalc:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "exprcalc",
		Usage: "parse, simplify, evaluate and compare math expressions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "engine options file (.yaml, .yml or .json)",
				EnvVars: []string{"EXPRCALC_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn or error",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			evalCommand(),
			simplifyCommand(),
			formatCommand(),
			compareCommand(),
			verdictsCommand(),
		},
	}
}
