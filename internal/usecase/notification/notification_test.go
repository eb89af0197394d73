package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aseeltahaa/smartspace/internal/adapter/repository"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/queue"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []repositories.NotificationInput
	fail    map[entities.ID]error
	inbox   []entities.Notification
	read    map[entities.ID]bool
}

func (f *fakeNotificationRepo) Create(ctx context.Context, in repositories.NotificationInput) (*entities.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[in.UserID]; err != nil {
		return nil, err
	}
	f.created = append(f.created, in)
	return &entities.Notification{UserID: in.UserID, Subject: in.Subject}, nil
}

func (f *fakeNotificationRepo) ListMine(ctx context.Context) ([]entities.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Notification, len(f.inbox))
	for i, n := range f.inbox {
		if r, ok := f.read[n.ID]; ok {
			n.IsRead = r
		}
		out[i] = n
	}
	return out, nil
}

func (f *fakeNotificationRepo) SetRead(ctx context.Context, id entities.ID, read bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.read == nil {
		f.read = map[entities.ID]bool{}
	}
	f.read[id] = read
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id entities.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.inbox {
		if n.ID == id {
			f.inbox = append(f.inbox[:i], f.inbox[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeNotificationRepo) recipients() map[entities.ID]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[entities.ID]int{}
	for _, c := range f.created {
		out[c.UserID]++
	}
	return out
}

type fakeDesktop struct {
	mu      sync.Mutex
	asked   int
	allowed bool
	shown   []string
}

func (d *fakeDesktop) RequestPermission(context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.asked++
	return d.allowed
}

func (d *fakeDesktop) Show(_ context.Context, title, body string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, title)
	return nil
}

func startPool(t *testing.T, d *Dispatcher) *queue.LocalPool {
	t.Helper()
	pool := queue.NewLocalPool(4, 64, nil)
	pool.Register(TaskSend, d.Handler())
	if err := pool.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return pool
}

func TestNotifyBulkOnePerDistinctRecipient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewDispatcher(context.Background(), repo, nil, nil, nil, Options{}, nil)
	pool := startPool(t, d)
	d.queue = pool

	d.NotifyBulk(context.Background(), []entities.ID{"a", "b", "a", "", "c"}, "Meeting updated", "Standup moved")
	_ = pool.Close()

	got := repo.recipients()
	if len(got) != 3 || got["a"] != 1 || got["b"] != 1 || got["c"] != 1 {
		t.Fatalf("recipients = %v", got)
	}
}

func TestFailedDeliveryIsIsolatedAndLogged(t *testing.T) {
	repo := &fakeNotificationRepo{fail: map[entities.ID]error{"b": errors.New("boom")}}
	failures := repository.NewMemoryFailureLog(10)
	d := NewDispatcher(context.Background(), repo, nil, failures, nil, Options{}, nil)
	pool := startPool(t, d)
	d.queue = pool

	d.NotifyBulk(context.Background(), []entities.ID{"a", "b", "c"}, "s", "b")
	_ = pool.Close()

	got := repo.recipients()
	if got["a"] != 1 || got["c"] != 1 {
		t.Fatalf("other recipients affected: %v", got)
	}
	list, _ := d.Failures(context.Background(), 0)
	if len(list) != 1 || list[0].UserID != "b" || list[0].Attempts != 1 {
		t.Fatalf("failures = %+v", list)
	}
}

func TestNotifyWithClosedQueueRecordsFailure(t *testing.T) {
	failures := repository.NewMemoryFailureLog(10)
	pool := queue.NewLocalPool(1, 1, nil)
	d := NewDispatcher(context.Background(), &fakeNotificationRepo{}, pool, failures, nil, Options{}, nil)

	d.Notify(context.Background(), "a", "s", "b")

	list, _ := failures.List(context.Background(), 0)
	if len(list) != 1 {
		t.Fatalf("failures = %+v", list)
	}
}

func TestHandlerSettlesFailedDeliveries(t *testing.T) {
	repo := &fakeNotificationRepo{fail: map[entities.ID]error{"b": errors.New("boom")}}
	failures := repository.NewMemoryFailureLog(10)
	d := NewDispatcher(context.Background(), repo, nil, failures, nil, Options{}, nil)
	h := d.Handler()

	raw := []byte(`{"jobId":"7b1f5c1e-3a51-4d43-9d55-0d6b8f8f3f10","userId":"b","subject":"s","body":"x"}`)
	if err := h(queue.WithWorkerID(context.Background(), 2), queue.Task{Type: TaskSend, Payload: raw}); err != nil {
		t.Fatalf("failed delivery must not be redelivered, got %v", err)
	}
	list, _ := failures.List(context.Background(), 0)
	if len(list) != 1 || list[0].UserID != "b" {
		t.Fatalf("failures = %+v", list)
	}

	if err := h(context.Background(), queue.Task{Type: TaskSend, Payload: []byte("{")}); err == nil {
		t.Fatal("undecodable payload must be reported")
	}
}

func TestDesktopPermissionAskedOnce(t *testing.T) {
	desk := &fakeDesktop{allowed: false}
	d := NewDispatcher(context.Background(), &fakeNotificationRepo{}, nil, nil, desk, Options{}, nil)
	d.RaiseLocal(context.Background(), "t", "b")
	d.RaiseLocal(context.Background(), "t", "b")
	if desk.asked != 1 || len(desk.shown) != 0 {
		t.Fatalf("asked=%d shown=%v", desk.asked, desk.shown)
	}

	allowed := &fakeDesktop{allowed: true}
	d = NewDispatcher(context.Background(), &fakeNotificationRepo{}, nil, nil, allowed, Options{}, nil)
	d.RaiseLocal(context.Background(), "t", "b")
	if allowed.asked != 1 || len(allowed.shown) != 1 {
		t.Fatalf("asked=%d shown=%v", allowed.asked, allowed.shown)
	}
}

func TestInboxPublishesUnreadCount(t *testing.T) {
	now := time.Now()
	repo := &fakeNotificationRepo{inbox: []entities.Notification{
		{ID: "1", Subject: "old", Date: now.Add(-time.Hour)},
		{ID: "2", Subject: "new", Date: now},
		{ID: "3", Subject: "read", IsRead: true, Date: now.Add(-2 * time.Hour)},
	}}
	bus := events.NewBus(8)
	inbox := NewInbox(repo, bus, nil, nil)

	items, err := inbox.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if items[0].ID != "2" {
		t.Fatalf("not newest first: %v", items)
	}
	if ev, _ := bus.Last(events.TopicUnreadCount); ev.Payload.(int) != 2 {
		t.Fatalf("unread = %v", ev.Payload)
	}

	if err := inbox.MarkRead(context.Background(), "2", true); err != nil {
		t.Fatal(err)
	}
	if ev, _ := bus.Last(events.TopicUnreadCount); ev.Payload.(int) != 1 {
		t.Fatalf("unread after mark = %v", ev.Payload)
	}

	if err := inbox.Delete(context.Background(), "1"); err != nil {
		t.Fatal(err)
	}
	if n, _ := inbox.UnreadCount(context.Background()); n != 0 {
		t.Fatalf("unread after delete = %d", n)
	}
}

type recordingRaiser struct{ titles []string }

func (r *recordingRaiser) RaiseLocal(_ context.Context, title, _ string) {
	r.titles = append(r.titles, title)
}

func TestInboxRaisesOnlyNewArrivals(t *testing.T) {
	repo := &fakeNotificationRepo{inbox: []entities.Notification{{ID: "1", Subject: "first"}}}
	raiser := &recordingRaiser{}
	inbox := NewInbox(repo, nil, raiser, nil)

	_, _ = inbox.List(context.Background())
	if len(raiser.titles) != 0 {
		t.Fatal("first listing must not raise")
	}

	repo.mu.Lock()
	repo.inbox = append(repo.inbox, entities.Notification{ID: "2", Subject: "second"})
	repo.mu.Unlock()

	_, _ = inbox.List(context.Background())
	_, _ = inbox.List(context.Background())
	if len(raiser.titles) != 1 || raiser.titles[0] != "second" {
		t.Fatalf("raised = %v", raiser.titles)
	}
}
