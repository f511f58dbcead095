package exprengine

import (
	"log/slog"

	"github.com/randalmurphal/exprengine/pkg/exprengine/equiv"
	"github.com/randalmurphal/exprengine/pkg/exprengine/format"
	"github.com/randalmurphal/exprengine/pkg/exprengine/lexer"
	"github.com/randalmurphal/exprengine/pkg/exprengine/observability"
	"github.com/randalmurphal/exprengine/pkg/exprengine/parse"
	"github.com/randalmurphal/exprengine/pkg/exprengine/verdict"
)

// engineConfig holds Engine settings.
type engineConfig struct {
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	verdicts       verdict.Store
	tokenizer      lexer.Tokenizer
	samples        int
	tolerance      float64
	maxDepth       int
	strictBrackets bool
	requireSample  bool
	format         format.Options
}

// defaultEngineConfig returns the default engine settings.
func defaultEngineConfig() engineConfig {
	return engineConfig{
		metrics:        observability.NoopMetrics{},
		spans:          observability.NoopSpanManager{},
		tokenizer:      lexer.Default,
		samples:        equiv.DefaultSamples,
		tolerance:      equiv.DefaultTolerance,
		maxDepth:       parse.DefaultMaxDepth,
		strictBrackets: true,
		requireSample:  true,
		format:         format.DefaultOptions(),
	}
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics{}
//
// Example:
//
//	engine := exprengine.New(exprengine.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *engineConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager. Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *engineConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithVerdictStore journals every equivalence check to store.
// Store failures are logged and never change a verdict.
func WithVerdictStore(store verdict.Store) Option {
	return func(c *engineConfig) {
		c.verdicts = store
	}
}

// WithTokenizer sets the lexical collaborator. Default: lexer.Default
func WithTokenizer(tk lexer.Tokenizer) Option {
	return func(c *engineConfig) {
		if tk != nil {
			c.tokenizer = tk
		}
	}
}

// WithSamples sets the number of equivalence sample points. Default: 10
func WithSamples(n int) Option {
	return func(c *engineConfig) {
		if n > 0 {
			c.samples = n
		}
	}
}

// WithTolerance sets the equivalence tolerance. Default: 1e-9
func WithTolerance(tol float64) Option {
	return func(c *engineConfig) {
		if tol >= 0 {
			c.tolerance = tol
		}
	}
}

// WithMaxDepth limits the depth of parsed trees. Default: 10000
func WithMaxDepth(n int) Option {
	return func(c *engineConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithStrictBrackets requires closing brackets to match their opening
// family. Default: true
func WithStrictBrackets(strict bool) Option {
	return func(c *engineConfig) {
		c.strictBrackets = strict
	}
}

// WithRequireValidSample makes an equivalence check with no evaluable
// sample point fail. Default: true
func WithRequireValidSample(require bool) Option {
	return func(c *engineConfig) {
		c.requireSample = require
	}
}

// WithFormatOptions sets the options used by Format and Simplify.
func WithFormatOptions(o format.Options) Option {
	return func(c *engineConfig) {
		c.format = o
	}
}
