package evaluator

import "context"

// Deferred is a value whose computation may still be pending. Hosts can
// place Deferred values in the evaluation context; the evaluator awaits
// them transparently at the node boundary where they are first used, so
// an expression never observes the difference between a plain value and
// a pending one.
type Deferred interface {
	// Await blocks until the value is available and returns it.
	Await(ctx context.Context) (any, error)
}

// DeferredFunc adapts a function to the Deferred interface.
type DeferredFunc func(ctx context.Context) (any, error)

// Await implements Deferred.
func (f DeferredFunc) Await(ctx context.Context) (any, error) {
	return f(ctx)
}

// resolve unwraps chained Deferred values until a settled value remains.
func resolve(ctx context.Context, v any) (any, error) {
	for {
		d, ok := v.(Deferred)
		if !ok {
			return v, nil
		}
		awaited, err := d.Await(ctx)
		if err != nil {
			return nil, err
		}
		v = awaited
	}
}
