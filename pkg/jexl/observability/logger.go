// Package observability provides opt-in structured logging, metrics, and
// distributed tracing for expression compilation and evaluation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Everything is opt-in and has a no-op implementation when disabled.
package observability

import "log/slog"

// EnrichLogger returns a logger carrying the evaluation's correlation
// fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "b2f7…", "foo.bar > 2")
//	enriched.Debug("evaluating") // includes eval_id, expression
func EnrichLogger(logger *slog.Logger, evalID, expression string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("eval_id", evalID),
		slog.String("expression", expression),
	)
}

// LogCompile logs the outcome of compiling an expression.
func LogCompile(logger *slog.Logger, source string, durationMs float64, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Error("expression compile failed",
			slog.String("expression", source),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("expression compiled",
		slog.String("expression", source),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateStart logs the start of an evaluation.
func LogEvaluateStart(logger *slog.Logger, evalID, expression string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting",
		slog.String("eval_id", evalID),
		slog.String("expression", expression),
	)
}

// LogEvaluateComplete logs a successful evaluation.
func LogEvaluateComplete(logger *slog.Logger, evalID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.String("eval_id", evalID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateError logs a failed evaluation.
func LogEvaluateError(logger *slog.Logger, evalID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("evaluation failed",
		slog.String("eval_id", evalID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}
