package parallel

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	var count int64
	ctx := context.Background()
	const n = 100
	for i := 0; i < n; i++ {
		if err := p.Submit(ctx, func() { atomic.AddInt64(&count, 1) }); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt64(&count) != n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for tasks, got %d/%d", atomic.LoadInt64(&count), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPoolDefaultsWorkerCount(t *testing.T) {
	p := New(0)
	defer p.Shutdown()
	if p.WorkerCount() <= 0 {
		t.Fatalf("expected a positive default worker count, got %d", p.WorkerCount())
	}
}

func TestPoolSubmitAfterShutdownFails(t *testing.T) {
	p := New(2)
	p.Shutdown()

	err := p.Submit(context.Background(), func() {})
	if err != ErrPoolShutdown {
		t.Fatalf("expected ErrPoolShutdown, got %v", err)
	}
}

func TestPoolShutdownIsIdempotent(t *testing.T) {
	p := New(2)
	p.Shutdown()
	p.Shutdown() // must not panic on a second close
}

func TestPoolSubmitRespectsContext(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	// Saturate the single worker and its buffered queue from background
	// goroutines so the next Submit, on the test goroutine, has no free
	// worker or queue slot and must wait on ctx instead.
	block := make(chan struct{})
	defer close(block)
	for i := 0; i < 3; i++ {
		go func() { _ = p.Submit(context.Background(), func() { <-block }) }()
	}
	time.Sleep(20 * time.Millisecond) // let the saturating submits land

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := p.Submit(ctx, func() {})

	if err != context.DeadlineExceeded {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}
