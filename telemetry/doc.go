// Package telemetry attaches provenance identifiers to OpenTelemetry traces
// and metrics.
//
// Spans carry the content hashes of a run so that traces can be joined with
// stored outputs by IPC id:
//
//	inst, err := telemetry.NewInstrumentation(telemetry.Options{
//	    Tracer:        tp.Tracer("pipeworks"),
//	    MeterProvider: mp,
//	})
//	rec, err := inst.Record(ctx, recorder, run)
//
// Emitted metrics:
//   - ipc.records (counter): records produced, by ipc.has_output
//   - ipc.record.errors (counter): runs that could not be hashed
//
// Span attributes:
//   - ipc.run_id, ipc.id, ipc.model
//   - ipc.input_hash, ipc.system_prompt_hash, ipc.output_hash
//
// A zero Options value is valid; recording is then a no-op. Nothing in this
// package influences the identifiers themselves.
package telemetry
