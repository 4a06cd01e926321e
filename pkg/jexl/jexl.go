package jexl

import (
	"context"
	"log/slog"
	"time"

	"github.com/firehammersolutions/jexl/pkg/jexl/evaluator"
	"github.com/firehammersolutions/jexl/pkg/jexl/grammar"
	"github.com/firehammersolutions/jexl/pkg/jexl/observability"
	"github.com/firehammersolutions/jexl/pkg/jexl/parser"
)

// Jexl is one independently configured instance of the expression
// language: a grammar plus evaluation settings. Instances do not share
// state, so differently configured grammars can coexist in one process.
//
// Operator and transform tables are live: a transform registered after
// Compile is visible to the next Evaluate of an already-compiled
// expression.
type Jexl struct {
	grammar  *grammar.Grammar
	executor evaluator.Executor
	logger   *slog.Logger
	spans    observability.SpanManager
	metrics  observability.MetricsRecorder
}

// New creates a Jexl instance with the default grammar, concurrent
// evaluation, and observability disabled.
func New(opts ...Option) *Jexl {
	j := &Jexl{
		grammar:  grammar.Default(),
		executor: evaluator.Concurrent{},
		spans:    observability.NoopSpanManager{},
		metrics:  observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Grammar returns the instance's live grammar for direct registration.
func (j *Jexl) Grammar() *grammar.Grammar {
	return j.grammar
}

// AddBinaryOperator registers an infix operator on the instance grammar.
func (j *Jexl) AddBinaryOperator(symbol string, precedence int, assoc grammar.Associativity, fn grammar.BinaryFunc) {
	j.grammar.AddBinaryOperator(symbol, precedence, assoc, fn)
}

// AddUnaryOperator registers a prefix operator on the instance grammar.
func (j *Jexl) AddUnaryOperator(symbol string, precedence int, fn grammar.UnaryFunc) {
	j.grammar.AddUnaryOperator(symbol, precedence, fn)
}

// AddTransform registers a named transform on the instance grammar.
func (j *Jexl) AddTransform(name string, fn grammar.TransformFunc) {
	j.grammar.AddTransform(name, fn)
}

// Compile parses source into an Expression that can be evaluated any
// number of times. Compilation failures are a *LexError or *SyntaxError.
func (j *Jexl) Compile(source string) (*Expression, error) {
	start := time.Now()
	node, err := parser.Parse(source, j.grammar)
	duration := time.Since(start)

	observability.LogCompile(j.logger, source, float64(duration.Microseconds())/1000, err)
	j.metrics.RecordCompile(context.Background(), duration, err)

	if err != nil {
		return nil, err
	}
	return &Expression{owner: j, source: source, node: node}, nil
}

// MustCompile is Compile but panics on error, for expressions known
// valid at program start.
func (j *Jexl) MustCompile(source string) *Expression {
	expr, err := j.Compile(source)
	if err != nil {
		panic("jexl: MustCompile(" + source + "): " + err.Error())
	}
	return expr
}

// EvalString compiles and evaluates source in one call. Prefer Compile
// when the same expression is evaluated repeatedly.
func (j *Jexl) EvalString(ctx context.Context, source string, vars map[string]any) (any, error) {
	expr, err := j.Compile(source)
	if err != nil {
		return nil, err
	}
	return expr.Evaluate(ctx, vars)
}
