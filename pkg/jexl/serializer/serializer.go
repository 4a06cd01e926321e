// Package serializer renders an AST back into minimal canonical source
// text.
//
// The output is the inverse of parsing for every form that admits a
// canonical rewrite: whitespace collapses to single spaces in fixed
// positions, redundant parentheses disappear, strings and object keys
// are always double-quoted, and numbers print as the shortest decimal
// that round-trips to the same double. Filter, transform, and property
// chains have exactly one valid textual shape and are emitted verbatim.
//
// Parenthesization works by passing each child the minimum precedence it
// may have without needing parentheses. A child whose own precedence is
// lower wraps itself. Equal precedence is safe on the associative side
// of an operator and unsafe on the other, which is why 1 + (2 * 3)
// collapses to 1 + 2 * 3 while (1 + 2) * 3 keeps its parentheses.
package serializer

import (
	"math"
	"strings"

	"github.com/firehammersolutions/jexl/pkg/jexl/ast"
	"github.com/firehammersolutions/jexl/pkg/jexl/grammar"
)

// Precedence handed to children that must be atomic, such as the subject
// of a chain. Only chain-shaped and literal nodes satisfy it.
const atomic = math.MaxInt

// Serialize renders node as canonical source text using the grammar's
// current operator metadata. It is a pure function of the AST and the
// grammar; no context is needed and it never fails on parser-produced
// trees.
func Serialize(g *grammar.Grammar, node ast.Node) string {
	s := &serializer{grammar: g}
	var sb strings.Builder
	s.write(&sb, node, 0)
	return sb.String()
}

type serializer struct {
	grammar *grammar.Grammar
}

// write emits node, wrapping it in parentheses when its own binding
// power is below what its position requires.
func (s *serializer) write(sb *strings.Builder, node ast.Node, minPrec int) {
	if s.precedence(node) < minPrec {
		sb.WriteByte('(')
		s.emit(sb, node)
		sb.WriteByte(')')
		return
	}
	s.emit(sb, node)
}

// precedence returns the binding power of a node's top-level form.
// Chains and literals are atomic; the conditional binds loosest.
func (s *serializer) precedence(node ast.Node) int {
	switch v := node.(type) {
	case *ast.Binary:
		if op, ok := s.grammar.BinaryOperator(v.Operator); ok {
			return op.Precedence
		}
		return 0
	case *ast.Unary:
		if op, ok := s.grammar.UnaryOperator(v.Operator); ok {
			return op.Precedence
		}
		return 0
	case *ast.Conditional:
		return 0
	default:
		return atomic
	}
}

func (s *serializer) emit(sb *strings.Builder, node ast.Node) {
	switch v := node.(type) {
	case *ast.Literal:
		s.emitLiteral(sb, v)

	case *ast.Identifier:
		if v.From != nil {
			s.write(sb, v.From, atomic)
			sb.WriteByte('.')
		} else if v.Relative {
			sb.WriteByte('.')
		}
		sb.WriteString(v.Name)

	case *ast.Unary:
		sb.WriteString(v.Operator)
		operand := s.capture(v.Operand, s.precedence(v))
		if s.wouldMerge(v.Operator, operand) {
			sb.WriteByte(' ')
		}
		sb.WriteString(operand)

	case *ast.Binary:
		prec := s.precedence(v)
		leftMin, rightMin := prec, prec+1
		if op, ok := s.grammar.BinaryOperator(v.Operator); ok && op.Associativity == grammar.Right {
			leftMin, rightMin = prec+1, prec
		}
		s.write(sb, v.Left, leftMin)
		sb.WriteByte(' ')
		sb.WriteString(v.Operator)
		sb.WriteByte(' ')
		s.write(sb, v.Right, rightMin)

	case *ast.Conditional:
		// The test needs parens when it is itself a conditional; the
		// branches never do because ?: is right-associative.
		s.write(sb, v.Test, 1)
		if v.Consequent == nil {
			sb.WriteString(" ?: ")
		} else {
			sb.WriteString(" ? ")
			s.write(sb, v.Consequent, 0)
			sb.WriteString(" : ")
		}
		s.write(sb, v.Alternate, 0)

	case *ast.ArrayLiteral:
		sb.WriteByte('[')
		for i, elem := range v.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			s.write(sb, elem, 0)
		}
		sb.WriteByte(']')

	case *ast.ObjectLiteral:
		if len(v.Entries) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, entry := range v.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeQuoted(sb, entry.Key)
			sb.WriteString(": ")
			s.write(sb, entry.Value, 0)
		}
		sb.WriteString(" }")

	case *ast.Filter:
		s.write(sb, v.Subject, atomic)
		sb.WriteByte('[')
		s.write(sb, v.Expression, 0)
		sb.WriteByte(']')

	case *ast.Transform:
		s.write(sb, v.Subject, atomic)
		sb.WriteString(" | ")
		sb.WriteString(v.Name)
		if len(v.Args) > 0 {
			sb.WriteByte('(')
			for i, arg := range v.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				s.write(sb, arg, 0)
			}
			sb.WriteByte(')')
		}
	}
}

func (s *serializer) emitLiteral(sb *strings.Builder, v *ast.Literal) {
	switch val := v.Value.(type) {
	case bool:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case string:
		writeQuoted(sb, val)
	case float64:
		sb.WriteString(grammar.FormatNumber(val))
	default:
		// Host-built ASTs may carry other numeric types.
		if f, ok := grammar.AsNumber(v.Value); ok {
			sb.WriteString(grammar.FormatNumber(f))
		} else {
			writeQuoted(sb, grammar.Stringify(v.Value))
		}
	}
}

// capture renders a node to a string so the unary emitter can inspect
// its first character.
func (s *serializer) capture(node ast.Node, minPrec int) string {
	var sb strings.Builder
	s.write(&sb, node, minPrec)
	return sb.String()
}

// wouldMerge reports whether writing operand directly after op would lex
// as a longer operator, such as a custom "-" followed by ">" when "->"
// is registered. A space is inserted in that case.
func (s *serializer) wouldMerge(op, operand string) bool {
	if operand == "" {
		return false
	}
	joined := op + string(operand[0])
	for _, sym := range s.grammar.OperatorSymbols() {
		if len(sym) > len(op) && strings.HasPrefix(sym, joined) {
			return true
		}
	}
	return false
}

// writeQuoted emits a double-quoted string with internal backslashes and
// double quotes escaped, regardless of the source quoting style.
func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
}
