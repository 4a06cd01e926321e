package evaluator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestExecutors_OrderPreserved(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			results, err := exec.Map(context.Background(), 8, func(i int) (any, error) {
				// Later indices finish first under concurrency.
				time.Sleep(time.Duration(8-i) * time.Millisecond)
				return i * 10, nil
			})
			if err != nil {
				t.Fatal(err)
			}
			want := []any{0, 10, 20, 30, 40, 50, 60, 70}
			if !reflect.DeepEqual(results, want) {
				t.Errorf("results = %v, want %v", results, want)
			}
		})
	}
}

func TestExecutors_Empty(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			results, err := exec.Map(context.Background(), 0, func(i int) (any, error) {
				t.Fatal("fn called for empty batch")
				return nil, nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != 0 {
				t.Errorf("results = %v, want empty", results)
			}
		})
	}
}

func TestExecutors_LowestIndexErrorWins(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			for round := 0; round < 50; round++ {
				_, err := exec.Map(context.Background(), 4, func(i int) (any, error) {
					switch i {
					case 1:
						time.Sleep(time.Millisecond)
						return nil, errA
					case 3:
						return nil, errB
					default:
						return i, nil
					}
				})
				if !errors.Is(err, errA) {
					t.Fatalf("round %d: err = %v, want the lowest-index error", round, err)
				}
			}
		})
	}
}

func TestSequential_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var calls []int
	_, err := Sequential{}.Map(context.Background(), 5, func(i int) (any, error) {
		calls = append(calls, i)
		if i == 2 {
			return nil, boom
		}
		return i, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(calls, []int{0, 1, 2}) {
		t.Errorf("calls = %v, want [0 1 2]", calls)
	}
}

func TestConcurrent_RunsInParallel(t *testing.T) {
	// All computations must be in flight at once: each blocks until every
	// other has started.
	const n = 6
	var wg sync.WaitGroup
	wg.Add(n)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	results, err := Concurrent{}.Map(context.Background(), n, func(i int) (any, error) {
		wg.Done()
		select {
		case <-done:
			return i, nil
		case <-time.After(5 * time.Second):
			return nil, fmt.Errorf("computation %d never unblocked", i)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != n {
		t.Errorf("got %d results", len(results))
	}
}

func TestConcurrent_SingleRunsInline(t *testing.T) {
	results, err := Concurrent{}.Map(context.Background(), 1, func(i int) (any, error) {
		return "only", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(results, []any{"only"}) {
		t.Errorf("results = %v", results)
	}
}

func TestDeferredFunc_Await(t *testing.T) {
	d := DeferredFunc(func(ctx context.Context) (any, error) {
		return 42, nil
	})
	v, err := d.Await(context.Background())
	if err != nil || v != 42 {
		t.Errorf("Await = %v, %v", v, err)
	}
}
