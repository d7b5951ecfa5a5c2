package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn(ctx, param) in its own goroutine and returns a Future.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	return start(ctx, nil, param, fn)
}

func start[T any, U any](ctx context.Context, sem chan struct{}, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if sem != nil {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				f.err = ctx.Err()
				return
			}
		}

		// Early exit prevents running work for a canceled batch
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		res, err := fn(ctx, param)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// Outcome is the result of one item processed by Map.
type Outcome[U any] struct {
	Value U
	Err   error
}

// Map runs fn for every item with at most limit calls in flight and returns
// the outcomes in item order. A limit below 1 runs the items one at a time.
// One failing item does not stop the others.
func Map[T any, U any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (U, error)) []Outcome[U] {
	sem := make(chan struct{}, max(limit, 1))

	futures := make([]*Future[U], len(items))
	for i, item := range items {
		futures[i] = start(ctx, sem, item, fn)
	}

	out := make([]Outcome[U], len(futures))
	for i, f := range futures {
		v, err := f.Await()
		out[i] = Outcome[U]{Value: v, Err: err}
	}
	return out
}

// WaitAll waits for all futures to complete and returns their results and
// the first error encountered in future order.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
