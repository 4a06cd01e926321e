package evaluator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/firehammersolutions/jexl/pkg/jexl/ast"
	"github.com/firehammersolutions/jexl/pkg/jexl/grammar"
)

// Sentinel errors for evaluation.
var (
	// ErrUnknownTransform indicates a transform name with no registration.
	ErrUnknownTransform = errors.New("unknown transform")

	// ErrUnknownOperator indicates an operator symbol with no registration.
	// This only occurs when an operator is removed between parse and
	// evaluation or when a tree is built by hand.
	ErrUnknownOperator = errors.New("unknown operator")
)

// EvaluationError wraps a failure raised during the tree walk with the
// operator or transform it occurred in.
type EvaluationError struct {
	// Op is the operator symbol or transform name that failed.
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Evaluator walks an AST against a host-supplied context. It holds no
// per-evaluation state: the context and the relative context travel as
// call arguments, so one Evaluator can serve concurrent evaluations.
type Evaluator struct {
	grammar  *grammar.Grammar
	executor Executor
}

// New creates an evaluator over the grammar. A nil executor defaults to
// Concurrent; pass Sequential for in-place synchronous evaluation. The
// evaluator's results are identical under either executor.
func New(g *grammar.Grammar, executor Executor) *Evaluator {
	if executor == nil {
		executor = Concurrent{}
	}
	return &Evaluator{grammar: g, executor: executor}
}

// Evaluate computes the value of node against vars. Missing context
// properties resolve to nil rather than erroring; every other failure is
// fatal to the call, fail-fast with no partial result.
func (e *Evaluator) Evaluate(ctx context.Context, node ast.Node, vars map[string]any) (any, error) {
	return e.eval(ctx, node, vars, nil)
}

// EvaluateRelative is Evaluate with an explicit relative context, the
// value that leading-dot identifiers resolve against.
func (e *Evaluator) EvaluateRelative(ctx context.Context, node ast.Node, vars map[string]any, relative any) (any, error) {
	return e.eval(ctx, node, vars, relative)
}

func (e *Evaluator) eval(ctx context.Context, node ast.Node, vars map[string]any, relative any) (any, error) {
	switch v := node.(type) {
	case *ast.Literal:
		return v.Value, nil

	case *ast.Identifier:
		return e.evalIdentifier(ctx, v, vars, relative)

	case *ast.Unary:
		op, ok := e.grammar.UnaryOperator(v.Operator)
		if !ok {
			return nil, &EvaluationError{Op: v.Operator, Err: ErrUnknownOperator}
		}
		operand, err := e.eval(ctx, v.Operand, vars, relative)
		if err != nil {
			return nil, err
		}
		result, err := op.Eval(operand)
		if err != nil {
			return nil, &EvaluationError{Op: v.Operator, Err: err}
		}
		return result, nil

	case *ast.Binary:
		op, ok := e.grammar.BinaryOperator(v.Operator)
		if !ok {
			return nil, &EvaluationError{Op: v.Operator, Err: ErrUnknownOperator}
		}
		left, err := e.eval(ctx, v.Left, vars, relative)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(ctx, v.Right, vars, relative)
		if err != nil {
			return nil, err
		}
		result, err := op.Eval(left, right)
		if err != nil {
			return nil, &EvaluationError{Op: v.Operator, Err: err}
		}
		return result, nil

	case *ast.Conditional:
		test, err := e.eval(ctx, v.Test, vars, relative)
		if err != nil {
			return nil, err
		}
		// Only the selected branch is evaluated.
		if grammar.Truthy(test) {
			if v.Consequent == nil {
				return test, nil
			}
			return e.eval(ctx, v.Consequent, vars, relative)
		}
		return e.eval(ctx, v.Alternate, vars, relative)

	case *ast.ArrayLiteral:
		results, err := e.executor.Map(ctx, len(v.Elements), func(i int) (any, error) {
			return e.eval(ctx, v.Elements[i], vars, relative)
		})
		if err != nil {
			return nil, err
		}
		if results == nil {
			results = []any{}
		}
		return results, nil

	case *ast.ObjectLiteral:
		values, err := e.executor.Map(ctx, len(v.Entries), func(i int) (any, error) {
			return e.eval(ctx, v.Entries[i].Value, vars, relative)
		})
		if err != nil {
			return nil, err
		}
		result := make(map[string]any, len(v.Entries))
		for i, entry := range v.Entries {
			result[entry.Key] = values[i]
		}
		return result, nil

	case *ast.Transform:
		return e.evalTransform(ctx, v, vars, relative)

	case *ast.Filter:
		if v.Relative {
			return e.evalRelativeFilter(ctx, v, vars, relative)
		}
		return e.evalStaticFilter(ctx, v, vars, relative)
	}
	return nil, fmt.Errorf("unsupported node type %T", node)
}

func (e *Evaluator) evalIdentifier(ctx context.Context, v *ast.Identifier, vars map[string]any, relative any) (any, error) {
	var base any
	switch {
	case v.From != nil:
		resolved, err := e.eval(ctx, v.From, vars, relative)
		if err != nil {
			return nil, err
		}
		base = resolved
	case v.Relative:
		base = relative
	default:
		base = vars
	}
	base, err := resolve(ctx, base)
	if err != nil {
		return nil, err
	}
	return resolve(ctx, property(base, v.Name))
}

func (e *Evaluator) evalTransform(ctx context.Context, v *ast.Transform, vars map[string]any, relative any) (any, error) {
	fn, ok := e.grammar.Transform(v.Name)
	if !ok {
		return nil, &EvaluationError{Op: v.Name, Err: ErrUnknownTransform}
	}

	// Subject and arguments are independent siblings.
	resolved, err := e.executor.Map(ctx, 1+len(v.Args), func(i int) (any, error) {
		if i == 0 {
			return e.eval(ctx, v.Subject, vars, relative)
		}
		return e.eval(ctx, v.Args[i-1], vars, relative)
	})
	if err != nil {
		return nil, err
	}

	result, err := fn(ctx, resolved[0], resolved[1:]...)
	if err != nil {
		return nil, &EvaluationError{Op: v.Name, Err: err}
	}
	return resolve(ctx, result)
}

// evalRelativeFilter evaluates the filter expression once per element of
// the subject sequence, keeping the elements for which it is truthy. A
// non-sequence subject is treated as a single-element sequence; a nil
// subject as an empty one. Elements are settled before matching, so the
// kept values are never still-pending Deferreds.
func (e *Evaluator) evalRelativeFilter(ctx context.Context, v *ast.Filter, vars map[string]any, relative any) (any, error) {
	subject, err := e.eval(ctx, v.Subject, vars, relative)
	if err != nil {
		return nil, err
	}
	raw := toSequence(subject)
	elements, err := e.executor.Map(ctx, len(raw), func(i int) (any, error) {
		return resolve(ctx, raw[i])
	})
	if err != nil {
		return nil, err
	}

	verdicts, err := e.executor.Map(ctx, len(elements), func(i int) (any, error) {
		return e.eval(ctx, v.Expression, vars, elements[i])
	})
	if err != nil {
		return nil, err
	}

	kept := []any{}
	for i, verdict := range verdicts {
		if grammar.Truthy(verdict) {
			kept = append(kept, elements[i])
		}
	}
	return kept, nil
}

// evalStaticFilter evaluates the bracket expression exactly once, even
// when the subject is nil, so any side effects of the expression still
// occur. A nil subject then yields nil regardless of the expression's
// value. A boolean expression gates the subject through; anything else
// is used as an index or property accessor.
func (e *Evaluator) evalStaticFilter(ctx context.Context, v *ast.Filter, vars map[string]any, relative any) (any, error) {
	accessor, err := e.eval(ctx, v.Expression, vars, relative)
	if err != nil {
		return nil, err
	}
	subject, err := e.eval(ctx, v.Subject, vars, relative)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}
	if gate, ok := accessor.(bool); ok {
		if gate {
			return subject, nil
		}
		return nil, nil
	}
	return resolve(ctx, index(subject, accessor))
}

// property looks a name up in a mapping. Unknown names and non-mapping
// bases resolve to nil: path navigation is permissive by design of the
// language, not an error source.
func property(base any, name string) any {
	switch m := base.(type) {
	case nil:
		return nil
	case map[string]any:
		return m[name]
	}
	rv := reflect.ValueOf(base)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		v := rv.MapIndex(reflect.ValueOf(name))
		if v.IsValid() {
			return v.Interface()
		}
	}
	return nil
}

// index applies a non-boolean static filter result to a subject:
// a numeric accessor indexes sequences, a string accessor reads mapping
// properties. Anything unresolvable is nil.
func index(subject, accessor any) any {
	if f, ok := grammar.AsNumber(accessor); ok {
		seq, ok := asSequence(subject)
		if !ok {
			return nil
		}
		i := int(f)
		if i < 0 || i >= len(seq) {
			return nil
		}
		return seq[i]
	}
	if name, ok := accessor.(string); ok {
		return property(subject, name)
	}
	return nil
}

// asSequence reports whether v is a sequence and converts it, without
// the single-element wrapping toSequence applies for filter subjects.
func asSequence(v any) ([]any, bool) {
	if seq, ok := v.([]any); ok {
		return seq, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// toSequence normalizes a relative filter subject: nil becomes empty,
// sequences pass through, and any other value becomes a single-element
// sequence.
func toSequence(v any) []any {
	if v == nil {
		return nil
	}
	if seq, ok := asSequence(v); ok {
		return seq
	}
	return []any{v}
}
