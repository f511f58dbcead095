package exprengine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/equiv"
	"github.com/randalmurphal/exprengine/pkg/exprengine/eval"
	"github.com/randalmurphal/exprengine/pkg/exprengine/format"
	"github.com/randalmurphal/exprengine/pkg/exprengine/observability"
	"github.com/randalmurphal/exprengine/pkg/exprengine/parse"
	"github.com/randalmurphal/exprengine/pkg/exprengine/simplify"
	"github.com/randalmurphal/exprengine/pkg/exprengine/verdict"
)

// Engine runs the expression pipeline over text.
// An Engine is immutable after New and safe for concurrent use.
type Engine struct {
	cfg engineConfig
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) buildOptions() []parse.Option {
	return []parse.Option{
		parse.WithStrictBrackets(e.cfg.strictBrackets),
		parse.WithMaxDepth(e.cfg.maxDepth),
	}
}

func (e *Engine) compareOptions() []equiv.Option {
	return []equiv.Option{
		equiv.WithSamples(e.cfg.samples),
		equiv.WithTolerance(e.cfg.tolerance),
		equiv.WithRequireValidSample(e.cfg.requireSample),
		equiv.WithTokenizer(e.cfg.tokenizer),
		equiv.WithBuildOptions(e.buildOptions()...),
	}
}

// Parse tokenizes, validates and builds text.
func (e *Engine) Parse(ctx context.Context, text string) (ast.Node, error) {
	ctx, span := e.cfg.spans.StartSpan(ctx, "parse", text)
	tree, err := e.parse(ctx, text)
	e.cfg.spans.EndSpanWithError(span, err)
	return tree, err
}

func (e *Engine) parse(ctx context.Context, text string) (ast.Node, error) {
	tree, err := parse.FromText(text, e.cfg.tokenizer, e.buildOptions()...)
	e.cfg.metrics.RecordParse(ctx, err)
	if err != nil {
		observability.LogParseError(e.cfg.logger, text, err)
	}
	return tree, err
}

// EvaluateExpression parses text and evaluates it with vars, returning the
// first error from any stage.
func (e *Engine) EvaluateExpression(ctx context.Context, text string, vars map[string]float64) (float64, error) {
	ctx, span := e.cfg.spans.StartSpan(ctx, "evaluate", text)
	value, err := e.evaluate(ctx, text, vars)
	e.cfg.spans.EndSpanWithError(span, err)
	return value, err
}

func (e *Engine) evaluate(ctx context.Context, text string, vars map[string]float64) (float64, error) {
	tree, err := e.parse(ctx, text)
	if err != nil {
		return 0, err
	}

	done := observability.TimedOperation()
	value, err := eval.Evaluate(tree, vars)
	elapsed := done()

	e.cfg.metrics.RecordEvaluation(ctx, elapsed, err)
	observability.LogEvaluation(e.cfg.logger, text, value, err, observability.Milliseconds(elapsed))
	return value, err
}

// Simplify parses text, simplifies it and renders the result.
func (e *Engine) Simplify(ctx context.Context, text string) (string, error) {
	ctx, span := e.cfg.spans.StartSpan(ctx, "simplify", text)
	tree, err := e.parse(ctx, text)
	if err != nil {
		e.cfg.spans.EndSpanWithError(span, err)
		return "", err
	}
	before := ast.Size(tree)
	reduced := simplify.Simplify(tree)
	e.cfg.spans.AddSpanEvent(ctx, "simplify.reduced",
		attribute.Int("expr.size.before", before),
		attribute.Int("expr.size.after", ast.Size(reduced)),
		attribute.Int("expr.depth", ast.Depth(reduced)),
	)
	e.cfg.spans.EndSpanWithError(span, nil)
	return format.FormatWith(reduced, e.cfg.format), nil
}

// Format parses text and renders it with the engine's format options.
func (e *Engine) Format(ctx context.Context, text string) (string, error) {
	ctx, span := e.cfg.spans.StartSpan(ctx, "format", text)
	tree, err := e.parse(ctx, text)
	e.cfg.spans.EndSpanWithError(span, err)
	if err != nil {
		return "", err
	}
	return format.FormatWith(tree, e.cfg.format), nil
}

// Compare reports whether a and b are semantically equivalent.
func (e *Engine) Compare(ctx context.Context, a, b string) bool {
	return e.Check(ctx, a, b).Equivalent
}

// Check compares a and b and returns the full report. When a verdict store
// is configured the outcome is journaled.
func (e *Engine) Check(ctx context.Context, a, b string) equiv.Report {
	ctx, span := e.cfg.spans.StartSpan(ctx, "compare", a+" ≡ "+b)
	report := equiv.Check(a, b, e.compareOptions()...)
	e.addComparisonEvents(ctx, report)
	e.cfg.spans.EndSpanWithError(span, report.Err)

	e.cfg.metrics.RecordComparison(ctx, report.Equivalent, report.Checked, report.Skipped)

	id := ""
	if e.cfg.verdicts != nil {
		v := verdict.New(a, b, report)
		id = v.ID
		if err := e.cfg.verdicts.Save(v); err != nil {
			observability.LogVerdictError(e.cfg.logger, id, "save", err)
		}
	}
	observability.LogComparison(e.cfg.logger, id, a, b, report.Equivalent, report.Checked, report.Skipped)
	return report
}

// addComparisonEvents records skipped samples and the first mismatch on the
// compare span.
func (e *Engine) addComparisonEvents(ctx context.Context, report equiv.Report) {
	if report.Skipped > 0 {
		e.cfg.spans.AddSpanEvent(ctx, "equiv.skipped",
			attribute.Int("equiv.skipped", report.Skipped),
			attribute.Int("equiv.checked", report.Checked),
		)
	}
	if m := report.Mismatch; m != nil {
		attrs := []attribute.KeyValue{
			attribute.Float64("equiv.left", m.Left),
			attribute.Float64("equiv.right", m.Right),
		}
		for _, name := range report.Variables {
			attrs = append(attrs, attribute.Float64("equiv.var."+name, m.Bindings[name]))
		}
		e.cfg.spans.AddSpanEvent(ctx, "equiv.mismatch", attrs...)
	}
}

var defaultEngine = New()

// EvaluateExpression evaluates text with the default engine.
func EvaluateExpression(text string, vars map[string]float64) (float64, error) {
	return defaultEngine.EvaluateExpression(context.Background(), text, vars)
}

// Compare checks a and b for equivalence with the default engine.
func Compare(a, b string) bool {
	return defaultEngine.Compare(context.Background(), a, b)
}

// Simplify simplifies text with the default engine.
func Simplify(text string) (string, error) {
	return defaultEngine.Simplify(context.Background(), text)
}

// Format renders text with the default engine.
func Format(text string) (string, error) {
	return defaultEngine.Format(context.Background(), text)
}
