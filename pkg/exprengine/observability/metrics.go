package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records engine metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordParse records a parse of expression text.
	RecordParse(ctx context.Context, err error)

	// RecordEvaluation records an evaluation with its duration and error status.
	RecordEvaluation(ctx context.Context, duration time.Duration, err error)

	// RecordComparison records an equivalence check.
	RecordComparison(ctx context.Context, equivalent bool, checked, skipped int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	parses         metric.Int64Counter
	parseErrors    metric.Int64Counter
	evaluations    metric.Int64Counter
	evalErrors     metric.Int64Counter
	evalLatency    metric.Float64Histogram
	comparisons    metric.Int64Counter
	compareSamples metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the default OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("exprengine")

	parses, err := meter.Int64Counter("exprengine.parse.count",
		metric.WithDescription("Number of expressions parsed"),
	)
	if err != nil {
		return nil, err
	}

	parseErrors, err := meter.Int64Counter("exprengine.parse.errors",
		metric.WithDescription("Number of expressions rejected by the tokenizer or builder"),
	)
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter("exprengine.eval.count",
		metric.WithDescription("Number of evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("exprengine.eval.errors",
		metric.WithDescription("Number of failed evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("exprengine.eval.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	comparisons, err := meter.Int64Counter("exprengine.compare.count",
		metric.WithDescription("Number of equivalence checks"),
	)
	if err != nil {
		return nil, err
	}

	compareSamples, err := meter.Int64Counter("exprengine.compare.samples",
		metric.WithDescription("Sample points examined by equivalence checks"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		parses:         parses,
		parseErrors:    parseErrors,
		evaluations:    evaluations,
		evalErrors:     evalErrors,
		evalLatency:    evalLatency,
		comparisons:    comparisons,
		compareSamples: compareSamples,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordParse records a parse.
func (m *otelMetrics) RecordParse(ctx context.Context, err error) {
	m.parses.Add(ctx, 1)
	if err != nil {
		m.parseErrors.Add(ctx, 1, metric.WithAttributes(errorKind(err)))
	}
}

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evalLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))
	if err != nil {
		m.evalErrors.Add(ctx, 1, metric.WithAttributes(errorKind(err)))
	}
}

// RecordComparison records an equivalence check.
func (m *otelMetrics) RecordComparison(ctx context.Context, equivalent bool, checked, skipped int) {
	m.comparisons.Add(ctx, 1, metric.WithAttributes(attribute.Bool("equivalent", equivalent)))
	m.compareSamples.Add(ctx, int64(checked), metric.WithAttributes(attribute.String("outcome", "checked")))
	m.compareSamples.Add(ctx, int64(skipped), metric.WithAttributes(attribute.String("outcome", "skipped")))
}
