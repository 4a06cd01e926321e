/*
Package jexl is an embeddable expression language: a small textual
language with arithmetic and boolean operators, property access, array
and object literals, conditionals, named transforms, and
context-relative filters. Source text is parsed once into a tree that
can be evaluated any number of times against host-supplied data and
re-serialized back into minimal canonical text.

# Basic Usage

	j := jexl.New()
	expr, err := j.Compile("users[.age > 21][0].name")
	if err != nil {
	    log.Fatal(err)
	}

	result, err := expr.Evaluate(context.Background(), map[string]any{
	    "users": []any{
	        map[string]any{"name": "ada", "age": 36},
	        map[string]any{"name": "kit", "age": 12},
	    },
	})
	// result: "ada", the name of the first user over 21

Missing properties never error; they resolve to nil, so guards like
a.b.c == nil are safe on any input shape.

# Transforms

Transforms are host functions applied with pipe syntax:

	j := jexl.New(jexl.WithTransform("upper",
	    func(ctx context.Context, v any, args ...any) (any, error) {
	        return strings.ToUpper(grammar.Stringify(v)), nil
	    }))
	out, _ := j.EvalString(ctx, `name | upper`, vars)

# Filters

A bracketed expression whose chain starts with a leading dot runs once
per element of its subject and keeps the truthy matches:

	foo[.bar == 2]     // elements of foo whose bar equals 2

Any other bracketed expression is static: a boolean result gates the
subject through, anything else indexes into it:

	foo[0]             // first element
	foo["key"]         // property access
	foo[isAdmin]       // foo when isAdmin is truthy, else nil

# Serialization

Expression.String returns the canonical minimal text: collapsed
whitespace, no redundant parentheses, double-quoted strings and object
keys, and shortest-round-trip numbers. Serializing, reparsing, and
serializing again is a fixed point.

# Evaluation model

Independent siblings (array elements, object values, transform
arguments, per-element filter runs) evaluate concurrently by default and
join in structural order, so results are deterministic. Use
jexl.WithExecutor(evaluator.Sequential{}) for fully synchronous
evaluation; behavior is identical. Context values implementing
evaluator.Deferred are awaited transparently, letting hosts supply
values that are still being computed.
*/
package jexl
