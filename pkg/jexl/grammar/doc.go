/*
Package grammar holds the operator and transform tables that define the
expression language.

# Overview

A Grammar is the single source of truth for operator metadata: symbol,
precedence, associativity, and evaluation function. The lexer asks it
which symbols exist (longest-match scanning), the parser asks it for
precedence and associativity, the serializer asks it for precedence when
deciding where parentheses are required, and the evaluator asks it for
the evaluation functions. Because all four consult the same live tables,
a symbol registered after parsing is visible to the next evaluation.

# Default operators

Default() registers the standard set:

	||                          logical or (returns the selected operand)
	&&                          logical and (returns the selected operand)
	== != < <= > >= in          comparison and membership
	+ -                         addition/concatenation, subtraction
	* / //                      multiplication, division, floor division
	% ^                         modulo, exponentiation
	! -                         unary not, unary negation

Numbers are IEEE-754 doubles. + concatenates when either operand is a
string. Comparisons order two strings lexicographically and everything
else numerically.

# Custom operators and transforms

	g := grammar.Default()
	g.AddBinaryOperator("~=", grammar.PrecedenceComparison, grammar.Left,
	    func(l, r any) (any, error) {
	        return strings.EqualFold(grammar.Stringify(l), grammar.Stringify(r)), nil
	    })
	g.AddTransform("upper", func(ctx context.Context, v any, args ...any) (any, error) {
	    return strings.ToUpper(grammar.Stringify(v)), nil
	})
*/
package grammar
