package grammar

import (
	"fmt"
	"math"
	"strings"
)

// Default precedence ladder, loosest to tightest. Ternary ?: binds looser
// than everything here; unary operators bind tighter.
const (
	PrecedenceOr         = 10
	PrecedenceAnd        = 15
	PrecedenceComparison = 20
	PrecedenceAdditive   = 30
	PrecedenceMultiplied = 40
	PrecedencePower      = 50
	PrecedenceUnary      = 100
)

// Default returns a grammar with the standard operator set registered and
// no transforms. All binary operators are left-associative.
func Default() *Grammar {
	g := New()

	g.AddBinaryOperator("||", PrecedenceOr, Left, func(l, r any) (any, error) {
		if Truthy(l) {
			return l, nil
		}
		return r, nil
	})
	g.AddBinaryOperator("&&", PrecedenceAnd, Left, func(l, r any) (any, error) {
		if Truthy(l) {
			return r, nil
		}
		return l, nil
	})

	g.AddBinaryOperator("==", PrecedenceComparison, Left, func(l, r any) (any, error) {
		return Equal(l, r), nil
	})
	g.AddBinaryOperator("!=", PrecedenceComparison, Left, func(l, r any) (any, error) {
		return !Equal(l, r), nil
	})
	g.AddBinaryOperator("<", PrecedenceComparison, Left, compareFunc("<"))
	g.AddBinaryOperator("<=", PrecedenceComparison, Left, compareFunc("<="))
	g.AddBinaryOperator(">", PrecedenceComparison, Left, compareFunc(">"))
	g.AddBinaryOperator(">=", PrecedenceComparison, Left, compareFunc(">="))
	g.AddBinaryOperator("in", PrecedenceComparison, Left, evalIn)

	g.AddBinaryOperator("+", PrecedenceAdditive, Left, evalAdd)
	g.AddBinaryOperator("-", PrecedenceAdditive, Left, numericFunc("-", func(l, r float64) float64 { return l - r }))
	g.AddBinaryOperator("*", PrecedenceMultiplied, Left, numericFunc("*", func(l, r float64) float64 { return l * r }))
	g.AddBinaryOperator("/", PrecedenceMultiplied, Left, numericFunc("/", func(l, r float64) float64 { return l / r }))
	g.AddBinaryOperator("//", PrecedenceMultiplied, Left, numericFunc("//", func(l, r float64) float64 { return math.Floor(l / r) }))
	g.AddBinaryOperator("%", PrecedencePower, Left, numericFunc("%", math.Mod))
	g.AddBinaryOperator("^", PrecedencePower, Left, numericFunc("^", math.Pow))

	g.AddUnaryOperator("!", PrecedenceUnary, func(v any) (any, error) {
		return !Truthy(v), nil
	})
	g.AddUnaryOperator("-", PrecedenceUnary, func(v any) (any, error) {
		f, ok := ToFloat64(v)
		if !ok {
			return nil, fmt.Errorf("operator -: cannot negate %T", v)
		}
		return -f, nil
	})

	return g
}

// numericFunc builds a binary eval func that coerces both operands to
// float64 and fails on values that have no numeric meaning.
func numericFunc(symbol string, fn func(l, r float64) float64) BinaryFunc {
	return func(l, r any) (any, error) {
		lf, lok := ToFloat64(l)
		rf, rok := ToFloat64(r)
		if !lok || !rok {
			return nil, fmt.Errorf("operator %s: cannot apply to %T and %T", symbol, l, r)
		}
		return fn(lf, rf), nil
	}
}

// compareFunc builds an ordering func. Two strings compare
// lexicographically; anything else compares numerically.
func compareFunc(symbol string) BinaryFunc {
	return func(l, r any) (any, error) {
		if ls, ok := l.(string); ok {
			if rs, ok := r.(string); ok {
				return compareOrdered(symbol, strings.Compare(ls, rs)), nil
			}
		}
		lf, lok := ToFloat64(l)
		rf, rok := ToFloat64(r)
		if !lok || !rok {
			return nil, fmt.Errorf("operator %s: cannot compare %T and %T", symbol, l, r)
		}
		switch {
		case lf < rf:
			return compareOrdered(symbol, -1), nil
		case lf > rf:
			return compareOrdered(symbol, 1), nil
		default:
			return compareOrdered(symbol, 0), nil
		}
	}
}

func compareOrdered(symbol string, cmp int) bool {
	switch symbol {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	default:
		return cmp >= 0
	}
}

// evalAdd concatenates when either operand is a string, otherwise adds.
func evalAdd(l, r any) (any, error) {
	_, lstr := l.(string)
	_, rstr := r.(string)
	if lstr || rstr {
		return Stringify(l) + Stringify(r), nil
	}
	lf, lok := ToFloat64(l)
	rf, rok := ToFloat64(r)
	if !lok || !rok {
		return nil, fmt.Errorf("operator +: cannot apply to %T and %T", l, r)
	}
	return lf + rf, nil
}

// evalIn is substring containment for string right operands and
// membership for sequence right operands.
func evalIn(l, r any) (any, error) {
	switch seq := r.(type) {
	case string:
		return strings.Contains(seq, Stringify(l)), nil
	case []any:
		for _, elem := range seq {
			if Equal(elem, l) {
				return true, nil
			}
		}
		return false, nil
	default:
		return nil, fmt.Errorf("operator in: right operand must be a string or array, got %T", r)
	}
}
