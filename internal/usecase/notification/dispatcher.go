package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/queue"
	"github.com/aseeltahaa/smartspace/pkg/jobcontext"
)

// TaskSend is the queue task type of one notification delivery
const TaskSend = "notification:send"

// Options tune delivery
type Options struct {
	// MaxRetries of zero means a single attempt.
	MaxRetries    uint64
	RetryInterval time.Duration
	JobTimeout    time.Duration
}

// sendPayload is the queued form of one delivery
type sendPayload struct {
	JobID   uuid.UUID   `json:"jobId"`
	UserID  entities.ID `json:"userId"`
	Subject string      `json:"subject"`
	Body    string      `json:"body"`
}

// Dispatcher posts notification records as a best-effort side effect. Notify
// never fails the caller: deliveries run on a queue and failures end up in the
// failure log.
type Dispatcher struct {
	repo     repositories.NotificationRepository
	queue    queue.Enqueuer
	failures repositories.FailureLog
	desktop  Desktop
	allowed  bool
	opts     Options
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher and asks the desktop for permission once.
// q may be nil in a process that only drains a queue.
func NewDispatcher(
	ctx context.Context,
	repo repositories.NotificationRepository,
	q queue.Enqueuer,
	failures repositories.FailureLog,
	desktop Desktop,
	opts Options,
	logger *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{
		repo:     repo,
		queue:    q,
		failures: failures,
		desktop:  desktop,
		opts:     opts,
		logger:   logger,
	}
	if desktop != nil {
		d.allowed = desktop.RequestPermission(ctx)
	}
	return d
}

// Handler returns the queue handler that performs deliveries. The dispatcher
// owns retries: a delivery that still fails after MaxRetries lands in the
// failure log and the task is reported done, so the queue never redelivers.
// Only an undecodable payload is returned as an error.
func (d *Dispatcher) Handler() queue.Handler {
	return func(ctx context.Context, t queue.Task) error {
		var p sendPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", TaskSend, err)
		}
		d.deliver(ctx, p, queue.WorkerID(ctx))
		return nil
	}
}

// Notify queues one notification for userID
func (d *Dispatcher) Notify(ctx context.Context, userID entities.ID, subject, body string) {
	if userID.IsZero() {
		return
	}
	p := sendPayload{JobID: uuid.New(), UserID: userID, Subject: subject, Body: body}

	if d.queue == nil {
		go d.deliver(context.WithoutCancel(ctx), p, -1)
		return
	}

	raw, err := json.Marshal(p)
	if err != nil {
		d.recordFailure(ctx, p, err, 0)
		return
	}
	if err := d.queue.Enqueue(ctx, queue.Task{Type: TaskSend, Payload: raw}); err != nil {
		d.recordFailure(ctx, p, fmt.Errorf("enqueue: %w", err), 0)
	}
}

// NotifyBulk queues one notification per distinct recipient. Deliveries are
// independent: no ordering, no aggregation.
func (d *Dispatcher) NotifyBulk(ctx context.Context, userIDs []entities.ID, subject, body string) {
	seen := make(map[entities.ID]bool, len(userIDs))
	for _, id := range userIDs {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		d.Notify(ctx, id, subject, body)
	}
}

// RaiseLocal shows a desktop notification when permission was granted
func (d *Dispatcher) RaiseLocal(ctx context.Context, title, body string) {
	if !d.allowed || d.desktop == nil {
		return
	}
	if err := d.desktop.Show(ctx, title, body); err != nil && d.logger != nil {
		d.logger.Debug("desktop notification failed", zap.Error(err))
	}
}

// Failures lists recorded delivery failures, newest first
func (d *Dispatcher) Failures(ctx context.Context, limit int) ([]entities.NotificationFailure, error) {
	if d.failures == nil {
		return nil, nil
	}
	return d.failures.List(ctx, limit)
}

func (d *Dispatcher) deliver(parent context.Context, p sendPayload, workerID int) {
	ctx, cancel := jobcontext.JobBegin(parent, p.JobID, TaskSend, workerID, jobcontext.Options{
		Timeout:    d.opts.JobTimeout,
		MaxRetries: d.opts.MaxRetries,
	})
	defer cancel()

	attempts, err := jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		_, err := d.repo.Create(ctx, repositories.NotificationInput{
			UserID:  p.UserID,
			Subject: p.Subject,
			Body:    p.Body,
		})
		return err
	}, d.opts.RetryInterval)

	md := jobcontext.GetJobMetadata(ctx)
	if err != nil {
		if d.logger != nil {
			d.logger.Debug("delivery gave up",
				zap.String("job_id", md.JobID.String()),
				zap.Int("worker_id", md.WorkerID),
				zap.Duration("elapsed", time.Since(md.StartTime)),
			)
		}
		d.recordFailure(parent, p, err, attempts)
		return
	}
	if d.logger != nil {
		d.logger.Debug("📨 Notification sent",
			zap.String("job_id", md.JobID.String()),
			zap.String("user_id", p.UserID.String()),
			zap.Int("worker_id", md.WorkerID),
			zap.Int("attempts", attempts),
			zap.Duration("elapsed", time.Since(md.StartTime)),
		)
	}
}

func (d *Dispatcher) recordFailure(ctx context.Context, p sendPayload, cause error, attempts int) {
	if d.logger != nil {
		d.logger.Warn("⚠️ Notification not delivered",
			zap.String("job_id", p.JobID.String()),
			zap.String("user_id", p.UserID.String()),
			zap.String("subject", p.Subject),
			zap.Int("attempts", attempts),
			zap.Error(cause),
		)
	}
	if d.failures == nil {
		return
	}

	f := &entities.NotificationFailure{
		ID:       p.JobID.String(),
		UserID:   p.UserID,
		Subject:  p.Subject,
		Body:     p.Body,
		Error:    cause.Error(),
		Attempts: attempts,
	}
	if err := d.failures.Record(context.WithoutCancel(ctx), f); err != nil && d.logger != nil {
		d.logger.Error("❌ Failed to record notification failure", zap.Error(err))
	}
}
