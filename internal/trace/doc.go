// Package trace is the structured event log of the stratum tools.
//
// Passes open spans around their work and emit point events for notable
// steps; tracers decide where the events go.
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps from the ring buffer
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including scope-layer creation
//
// # Context propagation
//
// A context carries the tracer and the span new work hangs under:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.BeginContext(ctx, trace.ScopeDriver, "analyze_files")
//	defer span.End("")
//
// Code that only needs the tracer uses FromContext and passes parent IDs to
// Begin directly.
package trace
