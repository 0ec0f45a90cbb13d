// Package telemetry groups the observability packages of advent.
//
// # Components
//
//   - logging: slog based structured logging with password subject redaction
//     and run scoped context fields
//   - metrics: Prometheus collectors for solves, password entries, grid
//     traversals and the answer history, served over HTTP or written to a
//     node_exporter textfile
//   - tracing: OpenTelemetry spans per solve, exported to stdout or an OTLP
//     collector, joining a caller's trace through TRACEPARENT
//   - health: liveness and readiness endpoints for watch mode
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, _ := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(context.Background())
//
//	runner := solver.NewRunner(registry,
//		solver.WithLogger(logger),
//		solver.WithMetrics(collector),
//		solver.WithTracer(tracer),
//	)
//
// # Redaction
//
// Password subjects never reach the logs in clear text when
// telemetry.logging.redact_subjects is set (the default): subject fields
// are masked and malformed entry messages have their subject replaced.
package telemetry
