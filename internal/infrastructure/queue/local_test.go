package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocalPoolRunsTasks(t *testing.T) {
	p := NewLocalPool(3, 16, nil)
	var ran int32
	var wg sync.WaitGroup
	p.Register("ping", func(ctx context.Context, task Task) error {
		atomic.AddInt32(&ran, 1)
		wg.Done()
		return nil
	})
	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	wg.Add(5)
	for i := 0; i < 5; i++ {
		if err := p.Enqueue(context.Background(), Task{Type: "ping"}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	wg.Wait()
	if atomic.LoadInt32(&ran) != 5 {
		t.Fatalf("ran = %d", ran)
	}
}

func TestLocalPoolEnqueueDoesNotBlock(t *testing.T) {
	p := NewLocalPool(1, 1, nil)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	p.Register("slow", func(ctx context.Context, task Task) error {
		started <- struct{}{}
		<-release
		return nil
	})
	_ = p.Start(context.Background())

	_ = p.Enqueue(context.Background(), Task{Type: "slow"})
	<-started
	if err := p.Enqueue(context.Background(), Task{Type: "slow"}); err != nil {
		t.Fatalf("buffered enqueue: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Enqueue(context.Background(), Task{Type: "slow"}) }()
	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueFull) {
			t.Fatalf("expected ErrQueueFull, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}

	close(release)
	_ = p.Close()
}

func TestLocalPoolCloseDrainsAndRejects(t *testing.T) {
	p := NewLocalPool(1, 8, nil)
	var ran int32
	p.Register("x", func(ctx context.Context, task Task) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("ignored")
	})
	_ = p.Start(context.Background())
	for i := 0; i < 4; i++ {
		_ = p.Enqueue(context.Background(), Task{Type: "x"})
	}
	_ = p.Close()

	if atomic.LoadInt32(&ran) != 4 {
		t.Fatalf("buffered tasks not drained: %d", ran)
	}
	if err := p.Enqueue(context.Background(), Task{Type: "x"}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestLocalPoolUnknownType(t *testing.T) {
	p := NewLocalPool(1, 1, nil)
	_ = p.Start(context.Background())
	defer p.Close()
	if err := p.Enqueue(context.Background(), Task{Type: "nope"}); !errors.Is(err, ErrNoHandler) {
		t.Fatalf("expected ErrNoHandler, got %v", err)
	}
}

func TestLocalPoolRecoversPanics(t *testing.T) {
	p := NewLocalPool(1, 2, nil)
	var ran int32
	p.Register("boom", func(ctx context.Context, task Task) error { panic("boom") })
	p.Register("ok", func(ctx context.Context, task Task) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	_ = p.Start(context.Background())
	_ = p.Enqueue(context.Background(), Task{Type: "boom"})
	_ = p.Enqueue(context.Background(), Task{Type: "ok"})
	_ = p.Close()
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("worker died after a panic")
	}
}

func TestLocalPoolTagsWorkerID(t *testing.T) {
	if got := WorkerID(context.Background()); got != -1 {
		t.Fatalf("untagged WorkerID = %d", got)
	}

	p := NewLocalPool(2, 8, nil)
	ids := make(chan int, 4)
	p.Register("who", func(ctx context.Context, task Task) error {
		ids <- WorkerID(ctx)
		return nil
	})
	_ = p.Start(context.Background())
	for i := 0; i < 4; i++ {
		if err := p.Enqueue(context.Background(), Task{Type: "who"}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	_ = p.Close()
	close(ids)

	for id := range ids {
		if id < 0 || id > 1 {
			t.Fatalf("worker id = %d", id)
		}
	}
}
