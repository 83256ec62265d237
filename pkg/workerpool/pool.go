package workerpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many blocking network calls run at once across all
// requests, so one slow dependency cannot soak up unbounded goroutines.
// Submit dispatches the task and blocks until its result is available.
type Pool struct {
	sem *semaphore.Weighted
}

func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Submit runs task on the pool and waits for it. Acquiring a slot respects
// ctx, so a cancelled request never starts its task.
func (p *Pool) Submit(ctx context.Context, task func(ctx context.Context) error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		done <- task(ctx)
	}()
	return <-done
}
