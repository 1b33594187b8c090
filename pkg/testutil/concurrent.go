// Package testutil holds helpers shared by package tests.
package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"cookieconsent/pkg/platform/sentinel"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes int32
	NotFounds int32
	Errors    int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.NotFounds + r.Errors
}

// RunConcurrent starts goroutines copies of fn behind a shared start barrier
// so they contend as closely as possible, then tallies their outcomes.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, notFounds, errs atomic.Int32
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrNotFound):
				notFounds.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		NotFounds: notFounds.Load(),
		Errors:    errs.Load(),
	}
}
