package grammar

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Truthy reports whether a value counts as true in a condition.
// False, nil, the empty string, and numeric zero are falsy; everything
// else, including empty arrays and objects, is truthy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	}
	if f, ok := AsNumber(v); ok {
		return f != 0
	}
	return true
}

// AsNumber converts a value of any numeric Go type to float64.
// It does not coerce strings or bools; use ToFloat64 for that.
func AsNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	}
	return 0, false
}

// ToFloat64 converts a value to float64 for arithmetic and ordering.
// Beyond the numeric types it coerces numeric strings and bools.
func ToFloat64(v any) (float64, bool) {
	if f, ok := AsNumber(v); ok {
		return f, true
	}
	switch val := v.(type) {
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Equal compares two values. Numbers compare numerically across numeric
// types; everything else compares by deep equality. There is no implicit
// string-to-number coercion, so 5 == "5" is false.
func Equal(left, right any) bool {
	if lf, lok := AsNumber(left); lok {
		if rf, rok := AsNumber(right); rok {
			return lf == rf
		}
		return false
	}
	return reflect.DeepEqual(left, right)
}

// Stringify renders a value the way the language renders it in string
// contexts: canonical numeric text for numbers, true/false for bools.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	}
	if f, ok := AsNumber(v); ok {
		return FormatNumber(f)
	}
	return fmt.Sprintf("%v", v)
}

// FormatNumber renders a float64 as the shortest decimal string that
// parses back to the same value. Fixed notation is used for everything
// except tiny magnitudes below 1e-6, where only scientific notation
// stays readable; large integers print all their digits, so a literal
// that lost precision to double rounding shows exactly the value it
// became. Exponents carry no zero padding.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f != 0 && math.Abs(f) < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent rewrites Go's zero-padded exponent (1e-07) to the
// canonical form (1e-7).
func trimExponent(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != 'e' {
			continue
		}
		mantissa, exp := s[:i], s[i+1:]
		sign := ""
		if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
			sign, exp = string(exp[0]), exp[1:]
		}
		for len(exp) > 1 && exp[0] == '0' {
			exp = exp[1:]
		}
		return mantissa + "e" + sign + exp
	}
	return s
}
