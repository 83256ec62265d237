package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitReturnsTaskResult(t *testing.T) {
	pool := New(2)

	err := pool.Submit(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Errorf("Submit() = %v, want nil", err)
	}

	want := errors.New("boom")
	err = pool.Submit(context.Background(), func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("Submit() = %v, want %v", err, want)
	}
}

func TestSubmitBoundsConcurrency(t *testing.T) {
	const size = 3
	pool := New(size)

	var running, peak int64
	var wg sync.WaitGroup
	gate := make(chan struct{})

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Submit(context.Background(), func(ctx context.Context) error {
				n := atomic.AddInt64(&running, 1)
				for {
					p := atomic.LoadInt64(&peak)
					if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
						break
					}
				}
				<-gate
				atomic.AddInt64(&running, -1)
				return nil
			})
		}()
	}

	// Let workers pile up against the gate, then release them
	for atomic.LoadInt64(&running) < size {
		time.Sleep(time.Millisecond)
	}
	close(gate)
	wg.Wait()

	if got := atomic.LoadInt64(&peak); got > size {
		t.Errorf("peak concurrency = %d, want <= %d", got, size)
	}
}

func TestSubmitRespectsCancelledContext(t *testing.T) {
	pool := New(1)
	block := make(chan struct{})
	defer close(block)

	go func() {
		_ = pool.Submit(context.Background(), func(ctx context.Context) error {
			<-block
			return nil
		})
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := pool.Submit(ctx, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Submit() = %v, want context.Canceled", err)
	}
	if ran {
		t.Error("task ran despite cancelled context")
	}
}
