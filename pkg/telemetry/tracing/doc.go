// Package tracing provides OpenTelemetry tracing for solve runs.
//
// Each run opens one span named after the solver, carrying the run ID, the
// input size and hash, and one "answer" event per computed answer. Spans go
// to stdout (pretty-printed JSON on stderr by default) or to an OTLP gRPC
// collector.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    exporter: otlp
//	    endpoint: localhost:4317
//	    insecure: true
//	    sampler: ratio
//	    sample_ratio: 0.5
//
// # Propagation
//
// A CLI has no request headers, so incoming trace context is read from the
// TRACEPARENT and TRACESTATE environment variables (FromEnvironment). Runs
// started that way become children of the caller's span.
package tracing
