package jexl

import (
	"github.com/firehammersolutions/jexl/pkg/jexl/evaluator"
	"github.com/firehammersolutions/jexl/pkg/jexl/lexer"
	"github.com/firehammersolutions/jexl/pkg/jexl/parser"
)

// The error taxonomy, re-exported so callers matching with errors.As do
// not need to import the subpackages.
//
// LexError and SyntaxError reject Compile before an AST exists;
// EvaluationError rejects an Evaluate call. All three are fatal to the
// call that raised them: there is no recovery, retry, or partial result.
type (
	// LexError is an unrecognized character or unterminated literal,
	// tagged with its position in the source.
	LexError = lexer.LexError

	// SyntaxError is a malformed token sequence, tagged with the
	// offending token and an expectation.
	SyntaxError = parser.SyntaxError

	// EvaluationError is an unregistered transform or operator, or a
	// type mismatch inside an operator's evaluation function.
	EvaluationError = evaluator.EvaluationError
)

// Sentinel errors re-exported from the evaluator for errors.Is matching.
var (
	ErrUnknownTransform = evaluator.ErrUnknownTransform
	ErrUnknownOperator  = evaluator.ErrUnknownOperator
)
