// Package observability provides structured logging, metrics, and tracing
// for the expression engine.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// None of them influence results: the pure stages never see them.
package observability

import (
	"log/slog"
	"time"
)

// LogParseError logs an expression that failed to tokenize or build.
func LogParseError(logger *slog.Logger, text string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("expression rejected",
		slog.String("expr", text),
		slog.String("error", err.Error()),
	)
}

// LogEvaluation logs the outcome of an evaluation.
func LogEvaluation(logger *slog.Logger, text string, value float64, err error, durationMs float64) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Debug("evaluation failed",
			slog.String("expr", text),
			slog.String("error", err.Error()),
			slog.Float64("duration_ms", durationMs),
		)
		return
	}
	logger.Debug("evaluation completed",
		slog.String("expr", text),
		slog.Float64("value", value),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogComparison logs an equivalence verdict.
func LogComparison(logger *slog.Logger, id, left, right string, equivalent bool, checked, skipped int) {
	if logger == nil {
		return
	}
	logger.Info("equivalence checked",
		slog.String("verdict_id", id),
		slog.String("left", left),
		slog.String("right", right),
		slog.Bool("equivalent", equivalent),
		slog.Int("checked", checked),
		slog.Int("skipped", skipped),
	)
}

// LogVerdictError logs a verdict journal failure (non-fatal).
func LogVerdictError(logger *slog.Logger, id string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("verdict journal failed",
		slog.String("verdict_id", id),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
