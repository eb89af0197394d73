package queue

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// LocalPool runs tasks on a fixed set of goroutines fed by a buffered channel
type LocalPool struct {
	workers  int
	jobs     chan Task
	handlers map[string]Handler
	logger   *zap.Logger

	workerWg  sync.WaitGroup
	mu        sync.RWMutex
	isRunning bool
	cancel    context.CancelFunc
}

var _ Enqueuer = (*LocalPool)(nil)

// NewLocalPool creates a pool; call Start before enqueueing
func NewLocalPool(workers, buffer int, logger *zap.Logger) *LocalPool {
	if workers < 1 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &LocalPool{
		workers:  workers,
		jobs:     make(chan Task, buffer),
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register binds a handler to a task type. Call before Start.
func (p *LocalPool) Register(taskType string, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[taskType] = h
}

// Start launches the worker goroutines
func (p *LocalPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return fmt.Errorf("worker pool already running")
	}
	if p.cancel != nil {
		return ErrQueueClosed
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.isRunning = true

	if p.logger != nil {
		p.logger.Info("🚀 Starting notification worker pool",
			zap.Int("worker_count", p.workers),
			zap.Int("buffer", cap(p.jobs)),
		)
	}

	for i := 0; i < p.workers; i++ {
		p.workerWg.Add(1)
		go p.worker(ctx, i)
	}
	return nil
}

// Enqueue hands the task to a worker without blocking
func (p *LocalPool) Enqueue(_ context.Context, t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.isRunning {
		return ErrQueueClosed
	}
	if _, ok := p.handlers[t.Type]; !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, t.Type)
	}

	select {
	case p.jobs <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks, lets the workers drain what is buffered and
// waits for them.
func (p *LocalPool) Close() error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	close(p.jobs)
	p.mu.Unlock()

	if p.logger != nil {
		p.logger.Info("🛑 Stopping notification worker pool...")
	}

	p.workerWg.Wait()
	p.cancel()

	if p.logger != nil {
		p.logger.Info("✅ Notification worker pool stopped")
	}
	return nil
}

func (p *LocalPool) worker(ctx context.Context, workerID int) {
	defer p.workerWg.Done()

	for t := range p.jobs {
		p.mu.RLock()
		h := p.handlers[t.Type]
		p.mu.RUnlock()

		if err := p.run(WithWorkerID(ctx, workerID), h, t); err != nil && p.logger != nil {
			p.logger.Warn("⚠️ Task failed",
				zap.Int("worker_id", workerID),
				zap.String("task_type", t.Type),
				zap.Error(err),
			)
		}
	}
}

func (p *LocalPool) run(ctx context.Context, h Handler, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	return h(ctx, t)
}
