package workerpool

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of tasks running at once. A single Pool is shared by
// every batch of an orchestrator run so hashing, fetching and downloading
// never exceed the configured width together.
type Pool struct {
	size int64
	sem  *semaphore.Weighted
}

// DefaultSize is the width used when none is configured.
func DefaultSize() int {
	return 2 * runtime.NumCPU()
}

// New creates a pool of the given width. Non-positive sizes fall back to DefaultSize.
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	return &Pool{size: int64(size), sem: semaphore.NewWeighted(int64(size))}
}

// Size returns the pool width.
func (p *Pool) Size() int {
	return int(p.size)
}

// Result is the settled outcome for one key: exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Key   string
	Value T
	Err   error
}

// Settle runs fn for every key on the pool and waits for all of them.
// Results come back in key order. A failing or panicking task only affects
// its own Result; cancellation of ctx marks unstarted keys with ctx.Err().
func Settle[T any](ctx context.Context, p *Pool, keys []string, fn func(ctx context.Context, key string) (T, error)) []Result[T] {
	results := make([]Result[T], len(keys))
	var wg sync.WaitGroup

	for i, key := range keys {
		results[i].Key = key

		if err := p.sem.Acquire(ctx, 1); err != nil {
			results[i].Err = err
			continue
		}

		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			defer p.sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("task %s panicked: %v\n%s", key, r, debug.Stack())
				}
			}()

			results[i].Value, results[i].Err = fn(ctx, key)
		}(i, key)
	}

	wg.Wait()
	return results
}
