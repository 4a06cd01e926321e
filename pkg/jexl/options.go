package jexl

import (
	"log/slog"

	"github.com/firehammersolutions/jexl/pkg/jexl/evaluator"
	"github.com/firehammersolutions/jexl/pkg/jexl/grammar"
	"github.com/firehammersolutions/jexl/pkg/jexl/observability"
)

// Option configures a Jexl instance at creation.
type Option func(*Jexl)

// WithGrammar replaces the default grammar. The grammar is used live,
// so later registrations on it are visible to this instance; sharing
// one grammar between instances shares those registrations.
func WithGrammar(g *grammar.Grammar) Option {
	return func(j *Jexl) {
		if g != nil {
			j.grammar = g
		}
	}
}

// WithExecutor sets how independent sub-computations are scheduled.
// Default: evaluator.Concurrent. Pass evaluator.Sequential for fully
// synchronous, in-place evaluation; results are identical either way.
func WithExecutor(executor evaluator.Executor) Option {
	return func(j *Jexl) {
		if executor != nil {
			j.executor = executor
		}
	}
}

// WithLogger enables structured logging of compilation and evaluation.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Jexl) {
		j.logger = logger
	}
}

// WithObservability enables tracing and metrics. Either argument may be
// nil to leave that side disabled.
//
// Example:
//
//	j := jexl.New(jexl.WithObservability(
//	    observability.NewSpanManager(),
//	    observability.NewMetricsRecorder(),
//	))
func WithObservability(spans observability.SpanManager, metrics observability.MetricsRecorder) Option {
	return func(j *Jexl) {
		if spans != nil {
			j.spans = spans
		}
		if metrics != nil {
			j.metrics = metrics
		}
	}
}

// WithTransform registers a named transform at creation.
func WithTransform(name string, fn grammar.TransformFunc) Option {
	return func(j *Jexl) {
		j.grammar.AddTransform(name, fn)
	}
}

// WithBinaryOperator registers an infix operator at creation.
func WithBinaryOperator(symbol string, precedence int, assoc grammar.Associativity, fn grammar.BinaryFunc) Option {
	return func(j *Jexl) {
		j.grammar.AddBinaryOperator(symbol, precedence, assoc, fn)
	}
}

// WithUnaryOperator registers a prefix operator at creation.
func WithUnaryOperator(symbol string, precedence int, fn grammar.UnaryFunc) Option {
	return func(j *Jexl) {
		j.grammar.AddUnaryOperator(symbol, precedence, fn)
	}
}
