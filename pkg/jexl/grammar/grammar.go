package grammar

import (
	"context"
	"sort"

	"github.com/firehammersolutions/jexl/pkg/jexl/registry"
)

// Associativity controls how operators of equal precedence group.
type Associativity int

const (
	// Left groups a op b op c as (a op b) op c.
	Left Associativity = iota
	// Right groups a op b op c as a op (b op c).
	Right
)

// String returns the associativity name.
func (a Associativity) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// BinaryFunc evaluates a binary operator over two resolved operand values.
type BinaryFunc func(left, right any) (any, error)

// UnaryFunc evaluates a unary operator over one resolved operand value.
type UnaryFunc func(operand any) (any, error)

// TransformFunc is a host-registered function applied to a subject value
// via pipe syntax. The subject arrives as value; any piped arguments
// follow, already resolved.
type TransformFunc func(ctx context.Context, value any, args ...any) (any, error)

// BinaryOperator is the grammar metadata for one infix operator symbol.
type BinaryOperator struct {
	Symbol        string
	Precedence    int
	Associativity Associativity
	Eval          BinaryFunc
}

// UnaryOperator is the grammar metadata for one prefix operator symbol.
type UnaryOperator struct {
	Symbol     string
	Precedence int
	Eval       UnaryFunc
}

// Grammar holds the operator and transform tables shared by the lexer,
// parser, serializer, and evaluator. All tables are live: registrations
// are visible to the next lookup, with no caching of stale metadata.
//
// A Grammar is owned by one Jexl instance; independently configured
// instances can coexist because there is no ambient global table.
type Grammar struct {
	binary     *registry.Registry[string, BinaryOperator]
	unary      *registry.Registry[string, UnaryOperator]
	transforms *registry.Registry[string, TransformFunc]
}

// New creates an empty grammar with no operators or transforms.
// Most callers want Default instead.
func New() *Grammar {
	return &Grammar{
		binary:     registry.New[string, BinaryOperator](),
		unary:      registry.New[string, UnaryOperator](),
		transforms: registry.New[string, TransformFunc](),
	}
}

// AddBinaryOperator registers an infix operator. Registering an existing
// symbol replaces it.
func (g *Grammar) AddBinaryOperator(symbol string, precedence int, assoc Associativity, fn BinaryFunc) {
	g.binary.Register(symbol, BinaryOperator{
		Symbol:        symbol,
		Precedence:    precedence,
		Associativity: assoc,
		Eval:          fn,
	})
}

// AddUnaryOperator registers a prefix operator. Registering an existing
// symbol replaces it.
func (g *Grammar) AddUnaryOperator(symbol string, precedence int, fn UnaryFunc) {
	g.unary.Register(symbol, UnaryOperator{
		Symbol:     symbol,
		Precedence: precedence,
		Eval:       fn,
	})
}

// AddTransform registers a named transform. Registering an existing name
// replaces it.
func (g *Grammar) AddTransform(name string, fn TransformFunc) {
	g.transforms.Register(name, fn)
}

// BinaryOperator returns the metadata for an infix symbol.
func (g *Grammar) BinaryOperator(symbol string) (BinaryOperator, bool) {
	return g.binary.Get(symbol)
}

// UnaryOperator returns the metadata for a prefix symbol.
func (g *Grammar) UnaryOperator(symbol string) (UnaryOperator, bool) {
	return g.unary.Get(symbol)
}

// Transform returns the registered transform for a name.
func (g *Grammar) Transform(name string) (TransformFunc, bool) {
	return g.transforms.Get(name)
}

// TransformNames returns the registered transform names, sorted.
func (g *Grammar) TransformNames() []string {
	names := g.transforms.Keys()
	sort.Strings(names)
	return names
}

// OperatorSymbols returns the union of binary and unary operator symbols,
// longest first. The lexer scans this list so that multi-character
// operators win over their prefixes (== before =, || before |).
func (g *Grammar) OperatorSymbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	g.binary.Range(func(sym string, _ BinaryOperator) bool {
		if !seen[sym] {
			seen[sym] = true
			symbols = append(symbols, sym)
		}
		return true
	})
	g.unary.Range(func(sym string, _ UnaryOperator) bool {
		if !seen[sym] {
			seen[sym] = true
			symbols = append(symbols, sym)
		}
		return true
	})
	sort.Slice(symbols, func(i, j int) bool {
		if len(symbols[i]) != len(symbols[j]) {
			return len(symbols[i]) > len(symbols[j])
		}
		return symbols[i] < symbols[j]
	})
	return symbols
}
