package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	infraobs "github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/stockledger/internal/observability/logctx"
)

func TestStartCommand_FinishWithError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reg := prometheus.NewRegistry()
	tel := infraobs.New(oteltrace.FromProvider(tp, "cli-test"), zaplogger.New(zap.New(core)),
		instruments(prometrics.New(reg, "", "")))

	ctx, run := startCommand(context.Background(), tel, "run-1", "add")
	require.NotNil(t, logctx.From(ctx))

	run.finish(errors.New("boom"))

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "CLI.add", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)

	done := logs.FilterMessage("command_done").All()
	require.Len(t, done, 1)
	assert.Equal(t, zapcore.ErrorLevel, done[0].Level)
	fields := done[0].ContextMap()
	assert.Equal(t, "run-1", fields["run_id"])
	assert.Equal(t, "add", fields["command"])
	assert.Equal(t, ended[0].SpanContext().TraceID().String(), fields["trace_id"])

	count, err := testutil.GatherAndCount(reg, "cli_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
