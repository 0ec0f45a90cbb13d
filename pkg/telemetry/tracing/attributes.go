package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on solve spans. Custom keys use the "advent.*"
// namespace.
const (
	// Run attributes
	AttrRunID  = "advent.run_id"
	AttrPuzzle = "advent.puzzle"

	// Input attributes
	AttrInputPath  = "advent.input.path"
	AttrInputBytes = "advent.input.bytes"
	AttrInputHash  = "advent.input.sha256"

	// Answer attributes
	AttrAnswerPart  = "advent.answer.part"
	AttrAnswerLabel = "advent.answer.label"
	AttrAnswerValue = "advent.answer.value"

	// Password policy attributes
	AttrRuleKind     = "advent.rule.kind"
	AttrEntriesTotal = "advent.entries.total"
	AttrEntriesValid = "advent.entries.valid"

	// Traversal attributes
	AttrRoute = "advent.route"
	AttrTrees = "advent.route.trees"

	// Error attributes
	AttrErrorKind    = "advent.error.kind"
	AttrErrorMessage = "error.message"
)

// SetRunAttributes sets the run ID and puzzle name on a span.
func SetRunAttributes(span trace.Span, runID, puzzle string) {
	span.SetAttributes(
		attribute.String(AttrRunID, runID),
		attribute.String(AttrPuzzle, puzzle),
	)
}

// SetInputAttributes describes the input a run was computed from.
func SetInputAttributes(span trace.Span, path string, size int, sha256 string) {
	attrs := []attribute.KeyValue{
		attribute.Int(AttrInputBytes, size),
	}
	if path != "" {
		attrs = append(attrs, attribute.String(AttrInputPath, path))
	}
	if sha256 != "" {
		attrs = append(attrs, attribute.String(AttrInputHash, sha256))
	}
	span.SetAttributes(attrs...)
}

// AddAnswerEvent records one computed answer as a span event.
func AddAnswerEvent(span trace.Span, part, label string, value int64) {
	span.AddEvent("answer", trace.WithAttributes(
		attribute.String(AttrAnswerPart, part),
		attribute.String(AttrAnswerLabel, label),
		attribute.Int64(AttrAnswerValue, value),
	))
}

// SetErrorAttributes records an error together with its kind.
func SetErrorAttributes(span trace.Span, err error, kind string) {
	if err == nil {
		return
	}
	if kind != "" {
		span.SetAttributes(attribute.String(AttrErrorKind, kind))
	}
	SetError(span, err)
}

// AttributeBuilder provides a fluent API for building span attributes.
//
// Example:
//
//	attrs := NewAttributeBuilder().
//		WithRule("position").
//		WithEntries(1000, 428).
//		Build()
//	ctx, span := tracer.Start(ctx, "evaluate", attrs)
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates a new attribute builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{}
}

// WithRule adds the password rule kind.
func (ab *AttributeBuilder) WithRule(kind string) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.String(AttrRuleKind, kind))
	return ab
}

// WithEntries adds entry totals.
func (ab *AttributeBuilder) WithEntries(total, valid int) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.Int(AttrEntriesTotal, total),
		attribute.Int(AttrEntriesValid, valid),
	)
	return ab
}

// WithRoute adds a traversal route and its tree count.
func (ab *AttributeBuilder) WithRoute(route string, trees int) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.String(AttrRoute, route),
		attribute.Int(AttrTrees, trees),
	)
	return ab
}

// Build returns a span start option carrying the attributes.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Apply sets the attributes on an existing span.
func (ab *AttributeBuilder) Apply(span trace.Span) {
	span.SetAttributes(ab.attrs...)
}

// Attributes returns the accumulated attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
