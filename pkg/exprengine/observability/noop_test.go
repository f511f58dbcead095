package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordParse(ctx, nil)
		m.RecordParse(ctx, errors.New("bad"))
		m.RecordEvaluation(ctx, time.Millisecond, nil)
		m.RecordEvaluation(ctx, 0, errors.New("bad"))
		m.RecordComparison(ctx, true, 10, 0)
	})
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := m.StartSpan(ctx, "evaluate", "x")
	assert.Equal(t, ctx, newCtx, "context is returned unchanged")
	assert.NotNil(t, span)
	assert.False(t, span.IsRecording())

	assert.NotPanics(t, func() {
		m.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
		m.EndSpanWithError(span, errors.New("bad"))
		m.EndSpanWithError(nil, nil)
	})
}
