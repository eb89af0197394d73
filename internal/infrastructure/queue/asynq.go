package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqClient persists tasks in Redis through asynq
type AsynqClient struct {
	client *asynq.Client
	queue  string
}

var _ Enqueuer = (*AsynqClient)(nil)

// NewAsynqClient connects to redisURL. Tasks are enqueued without asynq
// redelivery: handlers retry in-process and report success to asynq.
func NewAsynqClient(redisURL, queueName string) (*AsynqClient, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse redis url: %w", err)
	}
	return &AsynqClient{client: asynq.NewClient(opt), queue: queueName}, nil
}

func (a *AsynqClient) Enqueue(ctx context.Context, t Task) error {
	if t.Type == "" {
		return errors.New("asynq: task type is required")
	}
	opts := []asynq.Option{asynq.MaxRetry(0)}
	if a.queue != "" {
		opts = append(opts, asynq.Queue(a.queue))
	}
	if _, err := a.client.EnqueueContext(ctx, asynq.NewTask(t.Type, t.Payload), opts...); err != nil {
		return fmt.Errorf("asynq: enqueue %s: %w", t.Type, err)
	}
	return nil
}

func (a *AsynqClient) Close() error {
	return a.client.Close()
}

// AsynqServer drains tasks from Redis and dispatches them to registered handlers
type AsynqServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewAsynqServer builds a server consuming queueName with the given concurrency
func NewAsynqServer(redisURL, queueName string, concurrency int, logger *zap.Logger) (*AsynqServer, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse redis url: %w", err)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if queueName == "" {
		queueName = "default"
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queueName: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			if logger != nil {
				logger.Warn("⚠️ asynq task failed",
					zap.String("task_type", task.Type()),
					zap.Error(err),
				)
			}
		}),
	})
	return &AsynqServer{server: srv, mux: asynq.NewServeMux()}, nil
}

// Register binds a handler to a task type
func (s *AsynqServer) Register(taskType string, h Handler) {
	s.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		return h(ctx, Task{Type: t.Type(), Payload: t.Payload()})
	})
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
func (s *AsynqServer) Run(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.server.Shutdown()
	return nil
}
