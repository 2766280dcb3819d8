package utils

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// ItemFunc processes one independent work item.
type ItemFunc func(ctx context.Context, item int) error

// PoolExecutor is a synchronous fan-out/join primitive: ParallelFor invokes the callback once per
// item on at most Workers goroutines and returns once every invocation has returned.
type PoolExecutor struct {
	// Workers bounds the number of concurrently running items. Zero or less uses ParallelFactor.
	Workers int
}

// NewPoolExecutor returns an executor limited to the given number of workers.
func NewPoolExecutor(workers int) *PoolExecutor {
	return &PoolExecutor{Workers: workers}
}

// NumWorkers returns the effective worker bound.
func (pe *PoolExecutor) NumWorkers() int {
	if pe == nil || pe.Workers <= 0 {
		return ParallelFactor
	}
	return pe.Workers
}

// ParallelFor runs fn for every item in [0, n). The first failure cancels the context handed to
// items that have not started yet; all failures, including panics, are combined into the
// returned error.
func (pe *PoolExecutor) ParallelFor(ctx context.Context, n int, fn ItemFunc) error {
	if n <= 0 {
		return nil
	}
	workers := min(pe.NumWorkers(), n)
	if workers == 1 {
		return SerialExecutor{}.ParallelFor(ctx, n, fn)
	}

	var bigError error
	var bigErrorMutex sync.Mutex
	storeError := func(err error) {
		bigErrorMutex.Lock()
		defer bigErrorMutex.Unlock()
		if bigError == nil || !errors.Is(err, context.Canceled) {
			bigError = multierr.Combine(bigError, err)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for item := 0; item < n; item++ {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				storeError(err)
				return err
			}
			if err := runItem(groupCtx, item, fn); err != nil {
				storeError(err)
				return err
			}
			return nil
		})
	}
	_ = group.Wait()
	return bigError
}

// SerialExecutor runs every item on the calling goroutine, stopping at the first failure.
type SerialExecutor struct{}

// ParallelFor runs fn for every item in [0, n) in order.
func (SerialExecutor) ParallelFor(ctx context.Context, n int, fn ItemFunc) error {
	for item := 0; item < n; item++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runItem(ctx, item, fn); err != nil {
			return err
		}
	}
	return nil
}

func runItem(ctx context.Context, item int, fn ItemFunc) (err error) {
	defer func() {
		if thePanic := recover(); thePanic != nil {
			err = errors.Errorf("got panic running work item %d in parallel: %v", item, thePanic)
		}
	}()
	return fn(ctx, item)
}
