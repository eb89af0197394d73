package notification

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
)

// LocalRaiser shows a notification on the local machine
type LocalRaiser interface {
	RaiseLocal(ctx context.Context, title, body string)
}

// Inbox manages the signed-in user's notifications and announces the unread
// count on the bus after every change.
type Inbox struct {
	repo   repositories.NotificationRepository
	bus    *events.Bus
	raiser LocalRaiser
	logger *zap.Logger

	mu     sync.Mutex
	seen   map[entities.ID]bool
	primed bool
}

// NewInbox creates an inbox. bus and raiser may be nil.
func NewInbox(repo repositories.NotificationRepository, bus *events.Bus, raiser LocalRaiser, logger *zap.Logger) *Inbox {
	return &Inbox{
		repo:   repo,
		bus:    bus,
		raiser: raiser,
		logger: logger,
		seen:   make(map[entities.ID]bool),
	}
}

// List returns the inbox newest first. Unread notifications that were not in
// the previous listing are raised locally; the first listing raises nothing.
func (i *Inbox) List(ctx context.Context) ([]entities.Notification, error) {
	items, err := i.repo.ListMine(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Date.After(items[b].Date) })

	fresh := i.markSeen(items)
	for _, n := range fresh {
		if i.raiser != nil {
			i.raiser.RaiseLocal(ctx, n.Subject, n.Body)
		}
	}

	i.publish(entities.CountUnread(items))
	return items, nil
}

// UnreadCount returns the number of unread notifications
func (i *Inbox) UnreadCount(ctx context.Context) (int, error) {
	items, err := i.List(ctx)
	if err != nil {
		return 0, err
	}
	return entities.CountUnread(items), nil
}

// MarkRead marks a notification read or unread
func (i *Inbox) MarkRead(ctx context.Context, id entities.ID, read bool) error {
	if err := i.repo.SetRead(ctx, id, read); err != nil {
		return err
	}
	i.refreshCount(ctx)
	return nil
}

// Delete removes a notification
func (i *Inbox) Delete(ctx context.Context, id entities.ID) error {
	if err := i.repo.Delete(ctx, id); err != nil {
		return err
	}
	i.refreshCount(ctx)
	return nil
}

// Reset forgets what was seen, after a sign-out
func (i *Inbox) Reset() {
	i.mu.Lock()
	i.seen = make(map[entities.ID]bool)
	i.primed = false
	i.mu.Unlock()
	i.publish(0)
}

func (i *Inbox) refreshCount(ctx context.Context) {
	if _, err := i.List(ctx); err != nil && i.logger != nil {
		i.logger.Warn("⚠️ Failed to refresh unread count", zap.Error(err))
	}
}

func (i *Inbox) markSeen(items []entities.Notification) []entities.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	var fresh []entities.Notification
	for _, n := range items {
		if !i.seen[n.ID] && !n.IsRead && i.primed {
			fresh = append(fresh, n)
		}
		i.seen[n.ID] = true
	}
	i.primed = true
	return fresh
}

func (i *Inbox) publish(unread int) {
	if i.bus != nil {
		i.bus.Publish(events.TopicUnreadCount, unread)
	}
}
