package cli

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/stockledger/internal/observability"
	"github.com/Zhima-Mochi/stockledger/internal/observability/logctx"
)

// commandRun tracks one command invocation from setup to close.
type commandRun struct {
	command string
	span    trace.Span
	logger  observability.Logger
	start   time.Time
	runs    observability.Counter
	latency observability.Histogram
}

// startCommand opens the command span and injects a run-scoped logger.
// Dynamic fields only: run_id, command and trace_id/span_id when valid.
func startCommand(ctx context.Context, tel observability.Observability, runID, command string) (context.Context, *commandRun) {
	ctx, span := tel.Tracer().Start(ctx, "CLI."+command,
		attribute.String("command", command),
		attribute.String("run_id", runID),
	)

	fields := []observability.Field{
		observability.F("run_id", runID),
		observability.F("command", command),
	}
	if sc := span.SpanContext(); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	ctx = logctx.Enrich(ctx, tel.Logger(), fields...)

	return ctx, &commandRun{
		command: command,
		span:    span,
		logger:  logctx.FromOr(ctx, tel.Logger()),
		start:   time.Now(),
		runs:    tel.Metrics().Counter(observability.MCommandRuns),
		latency: tel.Metrics().Histogram(observability.MCommandDuration),
	}
}

func (r *commandRun) finish(err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	} else {
		r.span.SetStatus(codes.Ok, "")
	}
	r.span.End()

	lat := time.Since(r.start).Seconds()
	r.runs.Add(1, observability.L("command", r.command), observability.L("outcome", outcome))
	r.latency.Observe(lat, observability.L("command", r.command))

	fields := []observability.Field{
		observability.F("outcome", outcome),
		observability.F("latency_seconds", lat),
	}
	if err != nil {
		r.logger.Error("command_done", append(fields, observability.F("error", err))...)
		return
	}
	r.logger.Info("command_done", fields...)
}
