// Package parallel provides a bounded-concurrency starmap with a graceful
// single-goroutine fallback. Go has no GIL, so "processes" here are
// goroutines bounded by a weighted semaphore, and a failed batch becomes
// "a mapped function panicked" rather than a pickling error — both degrade
// to serial execution with a diagnostic.
package parallel

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Func is the work performed for one item.
type Func[T, R any] func(T) R

// Mapper maps Func over large slices with bounded concurrency.
type Mapper[T, R any] struct {
	fn        Func[T, R]
	processes int
	retry     bool
	diag      *log.Logger
}

// New builds a Mapper. processes <= 1 (zero and negative values included)
// makes StarMap run serially; New does no auto-detection, so callers that
// want parallelism pass runtime.GOMAXPROCS(0) or similar, mirroring an
// explicit-construction style. retryOnFailure controls whether
// a pool-level failure falls back to serial execution (true) or panics
// (false). diag receives the one diagnostic line printed on fallback; pass
// nil to use log.Default().
func New[T, R any](fn Func[T, R], processes int, retryOnFailure bool, diag *log.Logger) *Mapper[T, R] {
	if diag == nil {
		diag = log.Default()
	}
	return &Mapper[T, R]{fn: fn, processes: processes, retry: retryOnFailure, diag: diag}
}

// StarMap applies fn to every item. With one process it delegates to serial
// execution. With more than one, it spawns goroutines bounded by a weighted
// semaphore and awaits all results; if any goroutine panics and retry is
// true, the panic is logged to the diagnostic stream and the whole batch is
// repeated serially. Ordering matches input ordering in both cases (unlike
// a documented unordered parallel case some pool implementations have, because Go's goroutine
// results are written back into index-addressed slots rather than streamed
// from worker processes).
func (m *Mapper[T, R]) StarMap(ctx context.Context, items []T) []R {
	if len(items) == 0 {
		return nil
	}
	if m.processes <= 1 {
		return m.serial(items)
	}
	results, err := m.parallel(ctx, items)
	if err == nil {
		return results
	}
	if !m.retry {
		panic(err)
	}
	m.diag.Printf("parallel operation failed (%v); retrying with a single goroutine", err)
	return m.serial(items)
}

func (m *Mapper[T, R]) serial(items []T) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = m.fn(item)
	}
	return out
}

func (m *Mapper[T, R]) parallel(ctx context.Context, items []T) (res []R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v", r)
		}
	}()
	results := make([]R, len(items))
	sem := semaphore.NewWeighted(int64(m.processes))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for i, item := range items {
		if acqErr := sem.Acquire(ctx, 1); acqErr != nil {
			return nil, acqErr
		}
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			defer sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("worker panic: %v", r)
					}
					mu.Unlock()
				}
			}()
			results[i] = m.fn(item)
		}(i, item)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
