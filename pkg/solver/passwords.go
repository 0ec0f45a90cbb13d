package solver

import (
	"context"
	"fmt"
	"log/slog"

	"mercator-hq/advent/pkg/passwords"
	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
	"mercator-hq/advent/pkg/telemetry/logging"
	"mercator-hq/advent/pkg/telemetry/metrics"
	"mercator-hq/advent/pkg/telemetry/tracing"
)

// PasswordsSolver counts policy entries whose subject satisfies the rule,
// once per rule kind.
type PasswordsSolver struct {
	// Kinds are evaluated in order, one answer each.
	Kinds []passwords.Kind

	// KeepGoing skips malformed lines instead of failing.
	KeepGoing bool

	Metrics *metrics.Collector
}

// Name implements Solver.
func (s *PasswordsSolver) Name() string { return "passwords" }

// Solve evaluates the input once per kind.
func (s *PasswordsSolver) Solve(ctx context.Context, input []byte) ([]Answer, error) {
	kinds := s.Kinds
	if len(kinds) == 0 {
		kinds = passwords.Kinds
	}

	logger := slog.Default().With("component", "solver.passwords")
	opts := passwords.Options{
		File:      logging.GetInput(ctx),
		KeepGoing: s.KeepGoing,
	}

	answers := make([]Answer, 0, len(kinds))
	for i, kind := range kinds {
		result, err := s.evaluate(ctx, string(input), kind, opts)
		if err != nil {
			return nil, err
		}

		for _, e := range result.Errors.Errors {
			s.Metrics.RecordParseError(string(e.Kind))
			logger.Warn("skipped entry",
				"kind", string(kind),
				"location", e.Location.String(),
				"error_kind", string(e.Kind),
			)
		}

		answers = append(answers, Answer{
			Part:  i + 1,
			Label: fmt.Sprintf("Matching entries (%s)", kind),
			Value: int64(result.Valid),
		})
	}

	return answers, nil
}

func (s *PasswordsSolver) evaluate(ctx context.Context, text string, kind passwords.Kind, opts passwords.Options) (passwords.Result, error) {
	_, span := tracing.StartSpan(ctx, "passwords.evaluate",
		tracing.NewAttributeBuilder().WithRule(string(kind)).Build())
	defer span.End()

	result, err := passwords.Evaluate(text, kind, opts)
	if err != nil {
		errKind, _ := puzzleerrors.KindOf(err)
		s.Metrics.RecordParseError(string(errKind))
		tracing.SetErrorAttributes(span, err, string(errKind))
		tracing.SetStatus(span, err)
		return result, err
	}

	s.Metrics.RecordEntries(string(kind), result.Entries, result.Valid)
	tracing.NewAttributeBuilder().WithEntries(result.Entries, result.Valid).Apply(span)
	tracing.SetStatus(span, nil)

	return result, nil
}
