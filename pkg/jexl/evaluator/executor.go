package evaluator

import (
	"context"
	"sync"
)

// Executor runs a batch of independent sub-computations and joins their
// results in index order. The evaluator uses it wherever siblings are
// independent: array elements, object values, transform subject and
// arguments, and per-element relative filter evaluations.
//
// Implementations must preserve ordering of the joined results by index,
// never by completion time, and must surface the error of the
// lowest-index failing computation so that evaluation outcomes do not
// depend on scheduling.
type Executor interface {
	Map(ctx context.Context, n int, fn func(i int) (any, error)) ([]any, error)
}

// Sequential runs sub-computations one at a time in index order,
// stopping at the first error. Use it when evaluation must produce its
// result in place without spawning goroutines.
type Sequential struct{}

// Map implements Executor.
func (Sequential) Map(ctx context.Context, n int, fn func(i int) (any, error)) ([]any, error) {
	results := make([]any, n)
	for i := 0; i < n; i++ {
		v, err := fn(i)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// Concurrent fans each sub-computation out to its own goroutine and
// joins them all. In-flight siblings are not aborted when one fails;
// the lowest-index error is returned after the join so the outcome is
// deterministic.
type Concurrent struct{}

// Map implements Executor.
func (Concurrent) Map(ctx context.Context, n int, fn func(i int) (any, error)) ([]any, error) {
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		v, err := fn(0)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	results := make([]any, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = fn(i)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
