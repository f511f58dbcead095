// Package equiv decides whether two expressions are semantically
// equivalent by evaluating both at a fixed set of sample points.
//
// This is a bounded numeric check, not a proof. Sample points come from
// SampleTable, a literal table rather than a random generator, so results
// are reproducible across runs and platforms.
package equiv

import (
	"math"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/eval"
	"github.com/randalmurphal/exprengine/pkg/exprengine/lexer"
	"github.com/randalmurphal/exprengine/pkg/exprengine/parse"
)

// Defaults for Compare.
const (
	DefaultSamples   = 10
	DefaultTolerance = 1e-9
)

// SampleTable holds the sample rows. Variables are assigned in sorted name
// order; the i-th variable takes row[i % len(row)].
var SampleTable = [10][8]float64{
	{0.5, 1.25, -0.75, 2.0, -1.5, 3.25, 0.125, -2.5},
	{1.7, -0.3, 2.9, -1.1, 0.6, 4.2, -3.7, 1.05},
	{-2.2, 0.9, 1.4, 3.3, -0.45, 2.6, 0.35, -1.8},
	{3.1, 2.4, -1.9, 0.7, 1.15, -2.75, 4.6, 0.25},
	{-0.6, -1.35, 0.85, 2.2, 3.9, 1.6, -4.1, 2.95},
	{2.75, 0.4, 3.6, -2.05, -0.85, 0.15, 1.95, -3.3},
	{0.3, 3.7, -2.6, 1.85, 2.45, -0.55, -1.25, 4.4},
	{-1.05, 2.15, 0.65, -3.45, 1.35, 3.05, 2.85, -0.95},
	{4.25, -2.35, 1.55, 0.95, -1.65, 2.05, -0.15, 3.55},
	{1.1, 1.9, -0.25, -0.65, 2.7, -3.15, 0.55, 1.45},
}

// Point is a sample where the two expressions disagreed.
type Point struct {
	Bindings eval.Bindings
	Left     float64
	Right    float64
}

// Report describes a comparison.
type Report struct {
	// Equivalent is the verdict.
	Equivalent bool

	// Variables is the sorted union of free variables of both expressions.
	Variables []string

	// Checked counts sample points where both sides evaluated.
	Checked int

	// Skipped counts sample points where either side failed to evaluate.
	Skipped int

	// Mismatch is the first disagreeing point, if any.
	Mismatch *Point

	// Err is set when either expression failed to parse.
	Err error
}

type compareConfig struct {
	samples       int
	tolerance     float64
	requireSample bool
	tokenizer     lexer.Tokenizer
	buildOpts     []parse.Option
}

func defaultCompareConfig() compareConfig {
	return compareConfig{
		samples:       DefaultSamples,
		tolerance:     DefaultTolerance,
		requireSample: true,
		tokenizer:     lexer.Default,
	}
}

// Option configures a comparison.
type Option func(*compareConfig)

// WithSamples sets the number of sample points. Counts above the table
// size cycle through the rows again. Values <= 0 are ignored.
// Default: 10
func WithSamples(n int) Option {
	return func(c *compareConfig) {
		if n > 0 {
			c.samples = n
		}
	}
}

// WithTolerance sets the maximum absolute difference treated as equal.
// Negative values are ignored.
// Default: 1e-9
func WithTolerance(tol float64) Option {
	return func(c *compareConfig) {
		if tol >= 0 {
			c.tolerance = tol
		}
	}
}

// WithRequireValidSample controls the verdict when every sample point is
// skipped. When true (the default) such a comparison is not equivalent;
// when false it passes vacuously.
func WithRequireValidSample(require bool) Option {
	return func(c *compareConfig) {
		c.requireSample = require
	}
}

// WithTokenizer sets the tokenizer used to read both expressions.
func WithTokenizer(tk lexer.Tokenizer) Option {
	return func(c *compareConfig) {
		if tk != nil {
			c.tokenizer = tk
		}
	}
}

// WithBuildOptions passes options to the tree builder.
func WithBuildOptions(opts ...parse.Option) Option {
	return func(c *compareConfig) {
		c.buildOpts = append(c.buildOpts, opts...)
	}
}

// Compare reports whether a and b are equivalent. Parse failures on
// either side yield false.
func Compare(a, b string, opts ...Option) bool {
	return Check(a, b, opts...).Equivalent
}

// Check compares a and b and returns a full report.
func Check(a, b string, opts ...Option) Report {
	cfg := defaultCompareConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	left, err := parse.FromText(a, cfg.tokenizer, cfg.buildOpts...)
	if err != nil {
		return Report{Err: err}
	}
	right, err := parse.FromText(b, cfg.tokenizer, cfg.buildOpts...)
	if err != nil {
		return Report{Err: err}
	}
	return CheckTrees(left, right, opts...)
}

// CheckTrees compares two already-built trees.
func CheckTrees(left, right ast.Node, opts ...Option) Report {
	cfg := defaultCompareConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	report := Report{Variables: ast.Variables(left, right)}
	samples := cfg.samples
	if len(report.Variables) == 0 {
		samples = 1
	}

	for k := 0; k < samples; k++ {
		vars := Bindings(report.Variables, k)
		l, errL := eval.Evaluate(left, vars)
		r, errR := eval.Evaluate(right, vars)
		if errL != nil || errR != nil {
			report.Skipped++
			continue
		}
		report.Checked++
		if !agree(l, r, cfg.tolerance) {
			report.Mismatch = &Point{Bindings: vars, Left: l, Right: r}
			return report
		}
	}

	report.Equivalent = report.Checked > 0 || !cfg.requireSample
	return report
}

// Bindings returns the assignment of names for sample k.
func Bindings(names []string, k int) eval.Bindings {
	row := SampleTable[k%len(SampleTable)]
	vars := make(eval.Bindings, len(names))
	for i, name := range names {
		vars[name] = row[i%len(row)]
	}
	return vars
}

func agree(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tol
}
