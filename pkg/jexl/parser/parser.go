// Package parser builds an expression AST from source text.
//
// The core algorithm is precedence climbing: a primary is parsed first,
// then binary operators are folded in while their grammar precedence
// meets the current minimum binding power. Left-associative operators
// recurse one level tighter, right-associative operators recurse at
// their own level. After every primary the parser greedily consumes
// postfix continuations (.property, [filter], and |transform), which is
// what produces the right-nested subject chains the evaluator and
// serializer rely on.
//
// Parsing is fail-fast: the first structural violation aborts the parse
// with a *SyntaxError and no partial result.
package parser

import (
	"fmt"

	"github.com/firehammersolutions/jexl/pkg/jexl/ast"
	"github.com/firehammersolutions/jexl/pkg/jexl/grammar"
	"github.com/firehammersolutions/jexl/pkg/jexl/lexer"
)

// SyntaxError is a parse failure, tagged with the offending token and
// what was expected in its place.
type SyntaxError struct {
	Token    lexer.Token
	Expected string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Token.Kind == lexer.EOF {
		return fmt.Sprintf("syntax error at position %d: expected %s, found end of expression", e.Token.Pos, e.Expected)
	}
	return fmt.Sprintf("syntax error at position %d: expected %s, found %q", e.Token.Pos, e.Expected, e.Token.Text)
}

// Parse lexes and parses input against the grammar's current tables,
// returning the AST root.
func Parse(input string, g *grammar.Grammar) (ast.Node, error) {
	p := &parser{lx: lexer.New(input, g), grammar: g}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.unexpected("end of expression")
	}
	return node, nil
}

type parser struct {
	lx      *lexer.Lexer
	grammar *grammar.Grammar
	tok     lexer.Token
}

func (p *parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected(expected string) error {
	return &SyntaxError{Token: p.tok, Expected: expected}
}

// expectPunct consumes the given punctuation token or fails.
func (p *parser) expectPunct(text string) error {
	if !p.isPunct(text) {
		return p.unexpected(fmt.Sprintf("%q", text))
	}
	return p.advance()
}

func (p *parser) isPunct(text string) bool {
	return p.tok.Kind == lexer.Punctuation && p.tok.Text == text
}

// parseExpression parses at the given minimum binding power. The ternary
// conditional binds looser than every binary operator and is therefore
// only considered at the outermost (zero) level of each subexpression;
// parsing the alternate at level zero again makes it right-associative.
func (p *parser) parseExpression(minPrec int) (ast.Node, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == lexer.Operator {
		op, ok := p.grammar.BinaryOperator(p.tok.Text)
		if !ok || op.Precedence < minPrec {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		next := op.Precedence
		if op.Associativity == grammar.Left {
			next++
		}
		right, err := p.parseExpression(next)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: op.Symbol, Left: left, Right: right}
	}

	if minPrec == 0 && p.isPunct("?") {
		return p.parseConditional(left)
	}
	return left, nil
}

// parseConditional parses test ? consequent : alternate with the test
// already in hand. A colon directly after the question mark is the elvis
// form, which omits the consequent.
func (p *parser) parseConditional(test ast.Node) (ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var consequent ast.Node
	if !p.isPunct(":") {
		var err error
		consequent, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	alternate, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Test: test, Consequent: consequent, Alternate: alternate}, nil
}

// parseOperand parses a unary-prefixed expression or a primary with its
// postfix chain.
func (p *parser) parseOperand() (ast.Node, error) {
	if p.tok.Kind == lexer.Operator {
		op, ok := p.grammar.UnaryOperator(p.tok.Text)
		if !ok {
			return nil, p.unexpected("an expression")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(op.Precedence)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op.Symbol, Operand: operand}, nil
	}

	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(node)
}

func (p *parser) parsePrimary() (ast.Node, error) {
	switch {
	case p.tok.Kind == lexer.Literal:
		node := &ast.Literal{Value: p.tok.Value}
		return node, p.advance()

	case p.tok.Kind == lexer.Identifier:
		node := &ast.Identifier{Name: p.tok.Text}
		return node, p.advance()

	case p.isPunct("."):
		// Leading dot: a reference relative to the current filter element.
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.Identifier {
			return nil, p.unexpected("an identifier after \".\"")
		}
		node := &ast.Identifier{Name: p.tok.Text, Relative: true}
		return node, p.advance()

	case p.isPunct("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		return node, p.expectPunct(")")

	case p.isPunct("["):
		return p.parseArrayLiteral()

	case p.isPunct("{"):
		return p.parseObjectLiteral()
	}
	return nil, p.unexpected("an expression")
}

func (p *parser) parseArrayLiteral() (ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	node := &ast.ArrayLiteral{}
	if p.isPunct("]") {
		return node, p.advance()
	}
	for {
		elem, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node.Elements = append(node.Elements, elem)
		if !p.isPunct(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return node, p.expectPunct("]")
}

func (p *parser) parseObjectLiteral() (ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	node := &ast.ObjectLiteral{}
	if p.isPunct("}") {
		return node, p.advance()
	}
	for {
		key, err := p.parseObjectKey()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node.Entries = append(node.Entries, ast.ObjectEntry{Key: key, Value: value})
		if !p.isPunct(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return node, p.expectPunct("}")
}

// parseObjectKey accepts a bare identifier or a quoted string. Both
// normalize to the plain key text; the quoting is purely textual.
func (p *parser) parseObjectKey() (string, error) {
	switch {
	case p.tok.Kind == lexer.Identifier:
		key := p.tok.Text
		return key, p.advance()
	case p.tok.Kind == lexer.Literal:
		if key, ok := p.tok.Value.(string); ok {
			return key, p.advance()
		}
	}
	return "", p.unexpected("an object key")
}

// parsePostfix greedily consumes .property, [filter], and |transform
// continuations, each wrapping the chain built so far as its subject.
func (p *parser) parsePostfix(node ast.Node) (ast.Node, error) {
	for {
		switch {
		case p.isPunct("."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind != lexer.Identifier {
				return nil, p.unexpected("an identifier after \".\"")
			}
			node = &ast.Identifier{Name: p.tok.Text, From: node}
			if err := p.advance(); err != nil {
				return nil, err
			}

		case p.isPunct("["):
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			node = &ast.Filter{Subject: node, Expression: expr, Relative: rootIsRelative(expr)}

		case p.isPunct("|"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind != lexer.Identifier {
				return nil, p.unexpected("a transform name after \"|\"")
			}
			name := p.tok.Text
			if err := p.advance(); err != nil {
				return nil, err
			}
			args, err := p.parseTransformArgs()
			if err != nil {
				return nil, err
			}
			node = &ast.Transform{Name: name, Subject: node, Args: args}

		default:
			return node, nil
		}
	}
}

func (p *parser) parseTransformArgs() ([]ast.Node, error) {
	if !p.isPunct("(") {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.isPunct(")") {
		return nil, p.advance()
	}
	var args []ast.Node
	for {
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.isPunct(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return args, p.expectPunct(")")
}

// rootIsRelative walks the leftmost constituent of a filter expression
// down to the root of its leading chain to decide whether the filter
// applies per element. Only an expression whose leftmost chain is rooted
// at a leading-dot identifier makes the filter relative; a relative
// reference elsewhere in the expression does not, so bar == .baz is
// still a static filter.
func rootIsRelative(n ast.Node) bool {
	for {
		switch v := n.(type) {
		case *ast.Identifier:
			if v.From == nil {
				return v.Relative
			}
			n = v.From
		case *ast.Filter:
			n = v.Subject
		case *ast.Transform:
			n = v.Subject
		case *ast.Binary:
			n = v.Left
		case *ast.Unary:
			n = v.Operand
		default:
			return false
		}
	}
}
