package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/pipe-works/ipc/provenance"
)

// InstrumentationName is the meter name used for the package instruments.
const InstrumentationName = "github.com/pipe-works/ipc/telemetry"

// Span and attribute names.
const (
	SpanRecord = "ipc.record"

	AttrRunID            = attribute.Key("ipc.run_id")
	AttrID               = attribute.Key("ipc.id")
	AttrModel            = attribute.Key("ipc.model")
	AttrInputHash        = attribute.Key("ipc.input_hash")
	AttrSystemPromptHash = attribute.Key("ipc.system_prompt_hash")
	AttrOutputHash       = attribute.Key("ipc.output_hash")
	AttrHasOutput        = attribute.Key("ipc.has_output")
)

// Options configures an Instrumentation. Nil members disable the matching
// signal.
type Options struct {
	// Tracer is used to create one span per record.
	Tracer trace.Tracer

	// MeterProvider is used to create the ipc.records counters.
	MeterProvider metric.MeterProvider
}

// Instrumentation records provenance spans and metrics. It is immutable after
// construction and safe for concurrent use.
type Instrumentation struct {
	tracer  trace.Tracer
	records metric.Int64Counter
	errors  metric.Int64Counter
}

// NewInstrumentation creates the metric instruments for opts.
func NewInstrumentation(opts Options) (*Instrumentation, error) {
	inst := &Instrumentation{tracer: opts.Tracer}
	if opts.MeterProvider == nil {
		return inst, nil
	}

	meter := opts.MeterProvider.Meter(InstrumentationName)

	var err error
	inst.records, err = meter.Int64Counter(
		"ipc.records",
		metric.WithDescription("Number of provenance records produced"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create records counter: %w", err)
	}

	inst.errors, err = meter.Int64Counter(
		"ipc.record.errors",
		metric.WithDescription("Number of runs that could not be hashed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create errors counter: %w", err)
	}

	return inst, nil
}

// Annotate sets the provenance attributes of rec on span. The output hash is
// only set when the record has one.
func Annotate(span trace.Span, rec provenance.Record) {
	if span == nil {
		return
	}
	span.SetAttributes(
		AttrRunID.String(rec.RunID),
		AttrID.String(rec.IPCID.String()),
		AttrModel.String(rec.Model),
		AttrInputHash.String(rec.InputHash.String()),
		AttrSystemPromptHash.String(rec.SystemPromptHash.String()),
	)
	if rec.HasOutput() {
		span.SetAttributes(AttrOutputHash.String(rec.OutputHash.String()))
	}
}

// Observe emits a span and a counter increment for an already computed record.
func (i *Instrumentation) Observe(ctx context.Context, rec provenance.Record) {
	if i == nil {
		return
	}
	if i.tracer != nil {
		var span trace.Span
		ctx, span = i.tracer.Start(ctx, SpanRecord)
		defer span.End()

		Annotate(span, rec)
		span.SetStatus(codes.Ok, "")
	}
	if i.records != nil {
		i.records.Add(ctx, 1, metric.WithAttributes(AttrHasOutput.Bool(rec.HasOutput())))
	}
}

// Record hashes run with r and observes the result. Hashing errors are set on
// the span and counted, then returned unchanged.
func (i *Instrumentation) Record(ctx context.Context, r *provenance.Recorder, run provenance.Run) (provenance.Record, error) {
	rec, err := r.Record(run)
	if err == nil {
		i.Observe(ctx, rec)
		return rec, nil
	}

	if i == nil {
		return rec, err
	}
	if i.tracer != nil {
		var span trace.Span
		ctx, span = i.tracer.Start(ctx, SpanRecord)
		span.SetAttributes(AttrModel.String(run.Model))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
	}
	if i.errors != nil {
		i.errors.Add(ctx, 1)
	}
	return rec, err
}
