package jexl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/firehammersolutions/jexl/pkg/jexl/ast"
	"github.com/firehammersolutions/jexl/pkg/jexl/evaluator"
	"github.com/firehammersolutions/jexl/pkg/jexl/observability"
	"github.com/firehammersolutions/jexl/pkg/jexl/serializer"
)

// Expression is a compiled expression: the parsed tree bound to the Jexl
// instance that compiled it. It is immutable and safe for concurrent
// evaluation against different contexts.
type Expression struct {
	owner  *Jexl
	source string
	node   ast.Node
}

// AST returns the root of the parsed tree. The tree is shared and must
// be treated as read-only.
func (e *Expression) AST() ast.Node {
	return e.node
}

// Source returns the text the expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// String returns the canonical minimal form of the expression:
// normalized whitespace, no redundant parentheses, double-quoted strings
// and object keys, shortest round-trip numbers. Parsing the result
// yields a tree equivalent to this one.
func (e *Expression) String() string {
	return serializer.Serialize(e.owner.grammar, e.node)
}

// Evaluate computes the expression's value against vars. Missing
// properties resolve to nil; all other failures return a
// *evaluator.EvaluationError (or the transform's own error, wrapped).
func (e *Expression) Evaluate(ctx context.Context, vars map[string]any) (any, error) {
	return e.EvaluateRelative(ctx, vars, nil)
}

// EvaluateRelative is Evaluate with an explicit relative context: the
// value leading-dot identifiers resolve against. It is what a host uses
// to evaluate a filter-style expression against one element.
func (e *Expression) EvaluateRelative(ctx context.Context, vars map[string]any, relative any) (any, error) {
	j := e.owner

	evalID := ""
	_, noopSpans := j.spans.(observability.NoopSpanManager)
	if j.logger != nil || !noopSpans {
		evalID = uuid.NewString()
	}
	if j.logger != nil {
		observability.LogEvaluateStart(j.logger, evalID, e.source)
	}
	spanCtx, span := j.spans.StartEvaluateSpan(ctx, evalID, e.source)

	start := time.Now()
	ev := evaluator.New(j.grammar, j.executor)
	result, err := ev.EvaluateRelative(spanCtx, e.node, vars, relative)
	duration := time.Since(start)

	j.spans.EndSpanWithError(span, err)
	j.metrics.RecordEvaluation(ctx, duration, err)
	if j.logger != nil {
		if err != nil {
			observability.LogEvaluateError(j.logger, evalID, err, float64(duration.Microseconds())/1000)
		} else {
			observability.LogEvaluateComplete(j.logger, evalID, float64(duration.Microseconds())/1000)
		}
	}

	return result, err
}
