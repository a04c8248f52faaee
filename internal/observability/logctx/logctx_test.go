package logctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zhima-Mochi/stockledger/internal/observability"
)

type recordingLogger struct {
	fields []observability.Field
}

func (r *recordingLogger) With(fields ...observability.Field) observability.Logger {
	return &recordingLogger{fields: append(append([]observability.Field(nil), r.fields...), fields...)}
}
func (r *recordingLogger) Debug(string, ...observability.Field) {}
func (r *recordingLogger) Info(string, ...observability.Field)  {}
func (r *recordingLogger) Warn(string, ...observability.Field)  {}
func (r *recordingLogger) Error(string, ...observability.Field) {}

func TestFromOr_FallsBackWhenUnset(t *testing.T) {
	fallback := &recordingLogger{}

	assert.Same(t, fallback, FromOr(context.Background(), fallback))
	assert.Nil(t, From(context.Background()))
}

func TestWith_RoundTrip(t *testing.T) {
	logger := &recordingLogger{}
	ctx := With(context.Background(), logger)

	assert.Same(t, logger, From(ctx))
	assert.Same(t, logger, FromOr(ctx, observability.NopLogger()))
}

func TestWith_NilLoggerLeavesContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, With(ctx, nil))
}

func TestEnrich_BindsFieldsOnContextLogger(t *testing.T) {
	base := &recordingLogger{fields: []observability.Field{observability.F("service", "stockledger")}}
	ctx := With(context.Background(), base)

	ctx = Enrich(ctx, observability.NopLogger(), observability.F("run_id", "r-1"))

	got, ok := From(ctx).(*recordingLogger)
	if assert.True(t, ok) {
		assert.Equal(t, []observability.Field{
			observability.F("service", "stockledger"),
			observability.F("run_id", "r-1"),
		}, got.fields)
	}
}
