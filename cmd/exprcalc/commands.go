package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/randalmurphal/exprengine/pkg/exprengine"
	"github.com/randalmurphal/exprengine/pkg/exprengine/config"
	"github.com/randalmurphal/exprengine/pkg/exprengine/format"
	"github.com/randalmurphal/exprengine/pkg/exprengine/verdict"
)

const defaultVerdictDB = "verdicts.db"

// verdictPath returns --db when set, else verdicts.path from --config, else
// fallback.
func verdictPath(c *cli.Context, fallback string) (string, error) {
	if c.IsSet("db") {
		return c.String("db"), nil
	}
	cfg, err := config.FromFile(c.String("config"))
	if err != nil {
		return "", err
	}
	return cfg.String("verdicts.path", fallback), nil
}

// newLogger builds a text logger writing to the app's error writer.
func newLogger(c *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.String("log-level"))
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})), nil
}

// engineOptions collects options from --config and --log-level, followed
// by extra.
func engineOptions(c *cli.Context, extra ...exprengine.Option) ([]exprengine.Option, error) {
	logger, err := newLogger(c)
	if err != nil {
		return nil, err
	}
	cfg, err := config.FromFile(c.String("config"))
	if err != nil {
		return nil, err
	}

	opts := exprengine.OptionsFromConfig(cfg)
	opts = append(opts, exprengine.WithLogger(logger))
	return append(opts, extra...), nil
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", c.Command.Name, n, c.NArg())
	}
	return nil
}

// parseBindings parses name=value pairs.
func parseBindings(pairs []string) (map[string]float64, error) {
	vars := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid binding %q: want name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		vars[name] = v
	}
	return vars, nil
}

func evalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "evaluate an expression",
		ArgsUsage: "EXPR",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "var",
				Aliases: []string{"v"},
				Usage:   "variable binding name=value (repeatable; use either --var or -v, not both)",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			vars, err := parseBindings(c.StringSlice("var"))
			if err != nil {
				return err
			}
			opts, err := engineOptions(c)
			if err != nil {
				return err
			}

			value, err := exprengine.New(opts...).EvaluateExpression(c.Context, c.Args().First(), vars)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			fmt.Fprintln(c.App.Writer, strconv.FormatFloat(value, 'g', -1, 64))
			return nil
		},
	}
}

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "unicode", Aliases: []string{"u"}, Usage: "render ×, ÷ and −"},
		&cli.BoolFlag{Name: "no-spaces", Usage: "omit spaces around binary operators"},
		&cli.BoolFlag{Name: "full-parens", Usage: "parenthesize every binary subexpression"},
	}
}

// formatOverride returns a format option for any render flag that was set.
func formatOverride(c *cli.Context, cfg config.Config) []exprengine.Option {
	if !c.IsSet("unicode") && !c.IsSet("no-spaces") && !c.IsSet("full-parens") {
		return nil
	}
	def := format.DefaultOptions()
	o := format.Options{
		UseUnicode:    cfg.Bool("format.unicode", def.UseUnicode),
		Spaces:        cfg.Bool("format.spaces", def.Spaces),
		MinimalParens: cfg.Bool("format.minimal_parens", def.MinimalParens),
	}
	if c.IsSet("unicode") {
		o.UseUnicode = c.Bool("unicode")
	}
	if c.IsSet("no-spaces") {
		o.Spaces = !c.Bool("no-spaces")
	}
	if c.IsSet("full-parens") {
		o.MinimalParens = !c.Bool("full-parens")
	}
	return []exprengine.Option{exprengine.WithFormatOptions(o)}
}

func render(c *cli.Context, run func(*exprengine.Engine, context.Context, string) (string, error)) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	cfg, err := config.FromFile(c.String("config"))
	if err != nil {
		return err
	}
	opts, err := engineOptions(c, formatOverride(c, cfg)...)
	if err != nil {
		return err
	}

	out, err := run(exprengine.New(opts...), c.Context, c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

func simplifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "simplify",
		Usage:     "simplify an expression and print the result",
		ArgsUsage: "EXPR",
		Flags:     formatFlags(),
		Action: func(c *cli.Context) error {
			return render(c, (*exprengine.Engine).Simplify)
		},
	}
}

func formatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "print an expression with minimal parentheses",
		ArgsUsage: "EXPR",
		Flags:     formatFlags(),
		Action: func(c *cli.Context) error {
			return render(c, (*exprengine.Engine).Format)
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "check two expressions for equivalence",
		ArgsUsage: "A B",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "samples", Usage: "number of sample points"},
			&cli.Float64Flag{Name: "tolerance", Usage: "absolute tolerance"},
			&cli.StringFlag{Name: "db", Usage: "journal the verdict to this SQLite file"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}

			var extra []exprengine.Option
			if c.IsSet("samples") {
				extra = append(extra, exprengine.WithSamples(c.Int("samples")))
			}
			if c.IsSet("tolerance") {
				extra = append(extra, exprengine.WithTolerance(c.Float64("tolerance")))
			}
			path, err := verdictPath(c, "")
			if err != nil {
				return err
			}
			if path != "" {
				store, err := verdict.NewSQLiteStore(path)
				if err != nil {
					return err
				}
				defer store.Close()
				extra = append(extra, exprengine.WithVerdictStore(store))
			}

			opts, err := engineOptions(c, extra...)
			if err != nil {
				return err
			}
			report := exprengine.New(opts...).Check(c.Context, c.Args().Get(0), c.Args().Get(1))

			w := c.App.Writer
			switch {
			case report.Err != nil:
				fmt.Fprintf(w, "not equivalent: %v\n", report.Err)
			case report.Mismatch != nil:
				fmt.Fprintf(w, "not equivalent: %g != %g at %s\n",
					report.Mismatch.Left, report.Mismatch.Right, formatBindings(report.Variables, report.Mismatch.Bindings))
			case report.Equivalent:
				fmt.Fprintf(w, "equivalent (%d checked, %d skipped)\n", report.Checked, report.Skipped)
			default:
				fmt.Fprintf(w, "not equivalent: no evaluable sample (%d skipped)\n", report.Skipped)
			}
			if !report.Equivalent {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func formatBindings(names []string, vars map[string]float64) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, vars[name])
	}
	return strings.Join(parts, ", ")
}

func verdictsCommand() *cli.Command {
	return &cli.Command{
		Name:  "verdicts",
		Usage: "list journaled comparisons, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "SQLite verdict journal (default: verdicts.path or " + defaultVerdictDB + ")"},
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum entries (0 for all)"},
		},
		Action: func(c *cli.Context) error {
			path, err := verdictPath(c, defaultVerdictDB)
			if err != nil {
				return err
			}
			store, err := verdict.NewSQLiteStore(path)
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.List(c.Int("limit"))
			if err != nil {
				return err
			}
			for _, info := range infos {
				mark := "≢"
				if info.Equivalent {
					mark = "≡"
				}
				fmt.Fprintf(c.App.Writer, "%s  %s  %s %s %s\n",
					info.Timestamp.Format(time.RFC3339), info.ID, info.Left, mark, info.Right)
			}
			return nil
		},
	}
}
