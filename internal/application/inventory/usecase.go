package inventory

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/stockledger/internal/observability"
	"github.com/Zhima-Mochi/stockledger/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	storeService   = "inventory-store"
	spanPrefix     = "UC."
	useCaseAdd     = "inventory.add"
	useCaseRemove  = "inventory.remove"
	useCaseLoad    = "inventory.load"
	useCaseSave    = "inventory.save"
	useCaseApply   = "inventory.apply"
	outcomeSuccess = "success"
	outcomeError   = "error"
)

const (
	statusOK               = "OK"
	statusInvalidInput     = "INVALID_INPUT"
	statusItemNotFound     = "ITEM_NOT_FOUND"
	statusSnapshotNotFound = "SNAPSHOT_NOT_FOUND"
	statusPartiallyApplied = "PARTIALLY_APPLIED"
	statusLoadFailed       = "LOAD_FAILED"
	statusSaveFailed       = "SAVE_FAILED"
)

// execution carries the RED bookkeeping of one use case call.
type execution struct {
	useCase string
	span    trace.Span
	logger  observability.Logger
	start   time.Time
	outcome string
	status  string
	fields  []observability.Field
}

func (s *Store) begin(ctx context.Context, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, *execution) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCase))

	attrs = append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := s.tracer.Start(ctx, spanPrefix+spanName, attrs...)

	return ctx, &execution{
		useCase: useCase,
		span:    span,
		logger:  logger,
		start:   time.Now(),
		outcome: outcomeSuccess,
		status:  statusOK,
	}
}

func (e *execution) mark(outcome, status string) {
	e.outcome, e.status = outcome, status
}

func (e *execution) with(fields ...observability.Field) {
	e.fields = append(e.fields, fields...)
}

func (s *Store) end(ctx context.Context, e *execution, err error) {
	lat := time.Since(e.start).Seconds()

	if e.span != nil {
		if err != nil {
			e.span.RecordError(err)
			e.span.SetStatus(codes.Error, e.status)
		} else {
			e.span.SetStatus(codes.Ok, e.status)
		}
		e.span.End()
	}

	s.reqCounter.Add(1,
		observability.L("use_case", e.useCase),
		observability.L("outcome", e.outcome),
	)
	s.durHistogram.Observe(lat,
		observability.L("use_case", e.useCase),
	)

	fields := []observability.Field{
		observability.F("outcome", e.outcome),
		observability.F("status", e.status),
		observability.F("latency_seconds", lat),
	}
	fields = append(fields, e.fields...)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	if err != nil {
		fields = append(fields, observability.F("error", err.Error()))
	}

	switch e.status {
	case statusInvalidInput, statusItemNotFound, statusSnapshotNotFound, statusPartiallyApplied:
		e.logger.Warn("use_case_done", fields...)
	case statusLoadFailed, statusSaveFailed:
		e.logger.Error("use_case_done", fields...)
	default:
		e.logger.Info("use_case_done", fields...)
	}
}
