package queue

import (
	"context"
	"errors"
)

// Task is a background job message with a stable type and an opaque payload
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task
type Handler func(ctx context.Context, task Task) error

type workerIDKey struct{}

// WithWorkerID tags ctx with the local worker running the task
func WithWorkerID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, workerIDKey{}, id)
}

// WorkerID returns the local worker id, or -1 when the task runs outside a
// LocalPool.
func WorkerID(ctx context.Context) int {
	id, ok := ctx.Value(workerIDKey{}).(int)
	if !ok {
		return -1
	}
	return id
}

// Enqueuer hands tasks to a background runner. Enqueue must not wait for the
// task to run.
type Enqueuer interface {
	Enqueue(ctx context.Context, t Task) error
	Close() error
}

var (
	// ErrQueueFull is returned when the local buffer has no room
	ErrQueueFull = errors.New("queue: buffer full")
	// ErrQueueClosed is returned after the runner stopped
	ErrQueueClosed = errors.New("queue: closed")
	// ErrNoHandler is returned for a task type nobody registered
	ErrNoHandler = errors.New("queue: no handler for task type")
)
