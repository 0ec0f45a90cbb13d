package tracing

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/propagation"
)

// Environment variables carrying W3C trace context into a CLI run, so a
// solve started by a traced CI job joins the caller's trace.
const (
	EnvTraceParent = "TRACEPARENT"
	EnvTraceState  = "TRACESTATE"
	EnvBaggage     = "BAGGAGE"
)

var defaultPropagator = propagation.NewCompositeTextMapPropagator(
	propagation.TraceContext{},
	propagation.Baggage{},
)

// FromEnvironment extracts trace context from TRACEPARENT, TRACESTATE and
// BAGGAGE. The context is returned unchanged when TRACEPARENT is missing
// or invalid.
func FromEnvironment(ctx context.Context) context.Context {
	traceparent := os.Getenv(EnvTraceParent)
	if !ValidateTraceParent(traceparent) {
		return ctx
	}

	carrier := propagation.MapCarrier{"traceparent": traceparent}
	if v := os.Getenv(EnvTraceState); v != "" {
		carrier["tracestate"] = v
	}
	if v := os.Getenv(EnvBaggage); v != "" {
		carrier["baggage"] = v
	}

	return defaultPropagator.Extract(ctx, carrier)
}

// Environment returns the trace context of ctx as KEY=value pairs suitable
// for exec.Cmd.Env.
func Environment(ctx context.Context) []string {
	carrier := propagation.MapCarrier{}
	defaultPropagator.Inject(ctx, carrier)

	var env []string
	for key, value := range carrier {
		env = append(env, strings.ToUpper(key)+"="+value)
	}
	return env
}

// ValidateTraceParent validates a W3C traceparent value.
//
// Format: version-trace_id-parent_id-trace_flags
//   - version: 2 hex digits
//   - trace_id: 32 hex digits (128-bit)
//   - parent_id: 16 hex digits (64-bit)
//   - trace_flags: 2 hex digits (8-bit)
//
// Example: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
func ValidateTraceParent(traceparent string) bool {
	parts := strings.Split(traceparent, "-")
	if len(parts) != 4 {
		return false
	}

	if len(parts[0]) != 2 || !isHexString(parts[0]) {
		return false
	}
	if len(parts[1]) != 32 || !isHexString(parts[1]) {
		return false
	}
	if len(parts[2]) != 16 || !isHexString(parts[2]) {
		return false
	}
	if len(parts[3]) != 2 || !isHexString(parts[3]) {
		return false
	}

	// All-zero IDs are invalid.
	if parts[1] == "00000000000000000000000000000000" || parts[2] == "0000000000000000" {
		return false
	}

	return true
}

func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// IsSampledFromTraceParent reports whether the sampled flag is set.
func IsSampledFromTraceParent(traceparent string) bool {
	if !ValidateTraceParent(traceparent) {
		return false
	}

	var flags byte
	if _, err := fmt.Sscanf(traceparent[len(traceparent)-2:], "%02x", &flags); err != nil {
		return false
	}
	return flags&0x01 == 0x01
}
