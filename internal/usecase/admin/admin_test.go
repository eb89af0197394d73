package admin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
	ucErrors "github.com/aseeltahaa/smartspace/internal/usecase/errors"
)

type fakeRooms struct {
	mu        sync.Mutex
	rooms     []entities.Room
	listCalls int
}

func (f *fakeRooms) List(context.Context) ([]entities.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]entities.Room(nil), f.rooms...), nil
}

func (f *fakeRooms) FindByID(_ context.Context, id entities.ID) (*entities.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRooms) Create(_ context.Context, in repositories.RoomInput) (*entities.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := entities.Room{ID: "r-new", Name: in.Name, Capacity: in.Capacity, Location: in.Location}
	f.rooms = append(f.rooms, r)
	return &r, nil
}

func (f *fakeRooms) Update(_ context.Context, id entities.ID, in repositories.RoomInput) (*entities.Room, error) {
	return &entities.Room{ID: id, Name: in.Name, Capacity: in.Capacity, Location: in.Location}, nil
}

func (f *fakeRooms) Delete(context.Context, entities.ID) error { return nil }

type fakeFeatures struct{ features []entities.Feature }

func (f *fakeFeatures) List(context.Context) ([]entities.Feature, error) { return f.features, nil }

func (f *fakeFeatures) Create(_ context.Context, in repositories.FeatureInput) (*entities.Feature, error) {
	return &entities.Feature{ID: "f-new", Name: in.Name}, nil
}

func (f *fakeFeatures) Update(_ context.Context, id entities.ID, in repositories.FeatureInput) (*entities.Feature, error) {
	return &entities.Feature{ID: id, Name: in.Name}, nil
}

func (f *fakeFeatures) Delete(context.Context, entities.ID) error { return nil }

type session struct {
	id    entities.ID
	admin bool
}

func (s session) Current() entities.Session {
	return entities.Session{Token: "t", User: &entities.User{ID: s.id}, IsAdmin: s.admin}
}

func TestCatalogRefetchesOnNewRevision(t *testing.T) {
	rooms := &fakeRooms{rooms: []entities.Room{{ID: "1", Name: "Cedar", Capacity: 8, Location: "L1"}}}
	bus := events.NewBus(4)
	sub, cancel := bus.Subscribe(events.TopicCatalogRevision)
	defer cancel()

	c := NewCatalog(rooms, &fakeFeatures{}, session{id: "admin", admin: true}, bus, nil)
	ctx := context.Background()

	if _, err := c.Rooms(ctx); err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if _, err := c.Rooms(ctx); err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if rooms.listCalls != 1 {
		t.Fatalf("unchanged catalog refetched: %d calls", rooms.listCalls)
	}

	if _, err := c.CreateRoom(ctx, repositories.RoomInput{Name: "Oak", Capacity: 4, Location: "L2"}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if c.Revision() != 1 {
		t.Fatalf("revision = %d", c.Revision())
	}

	select {
	case ev := <-sub:
		if rev, ok := ev.Payload.(CatalogRevision); !ok || rev.Revision != 1 {
			t.Fatalf("event payload = %#v", ev.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no catalog revision event")
	}

	list, err := c.Rooms(ctx)
	if err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if rooms.listCalls != 2 || len(list) != 2 {
		t.Fatalf("rooms not reloaded after change: calls=%d len=%d", rooms.listCalls, len(list))
	}
}

func TestCatalogValidation(t *testing.T) {
	c := NewCatalog(&fakeRooms{}, &fakeFeatures{}, session{admin: true}, nil, nil)
	ctx := context.Background()

	_, err := c.CreateRoom(ctx, repositories.RoomInput{Name: "", Capacity: 0, Location: "L1"})
	if !errors.Is(err, ucErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := c.CreateFeature(ctx, repositories.FeatureInput{}); !errors.Is(err, ucErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if c.Revision() != 0 {
		t.Fatal("rejected input must not bump the revision")
	}
}

func TestCatalogRequiresAdmin(t *testing.T) {
	c := NewCatalog(&fakeRooms{}, &fakeFeatures{}, session{id: "u1"}, nil, nil)
	if err := c.DeleteRoom(context.Background(), "1"); !errors.Is(err, ucErrors.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

type fakeAuth struct {
	registered []repositories.RegisterInput
	deleted    []entities.ID
	roles      map[entities.ID]entities.UserRole
}

func (f *fakeAuth) Login(context.Context, string, string) (*repositories.LoginResult, error) {
	return nil, errors.New("unused")
}

func (f *fakeAuth) Register(_ context.Context, in repositories.RegisterInput) (*entities.User, error) {
	f.registered = append(f.registered, in)
	return &entities.User{ID: "u-new", Email: in.Email}, nil
}

func (f *fakeAuth) ChangePassword(context.Context, string, string) error { return nil }

func (f *fakeAuth) Delete(_ context.Context, id entities.ID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAuth) ChangeRole(_ context.Context, id entities.ID, role entities.UserRole) error {
	if f.roles == nil {
		f.roles = make(map[entities.ID]entities.UserRole)
	}
	f.roles[id] = role
	return nil
}

type fakeDirectory struct{}

func (fakeDirectory) Me(context.Context) (*entities.User, error) { return nil, nil }

func (fakeDirectory) FindByID(_ context.Context, id entities.ID) (*entities.User, error) {
	return &entities.User{ID: id}, nil
}

func (fakeDirectory) List(context.Context) ([]entities.User, error) {
	return []entities.User{{ID: "a"}, {ID: "b"}}, nil
}

func TestUsersAdministration(t *testing.T) {
	auth := &fakeAuth{}
	u := NewUsers(auth, fakeDirectory{}, session{id: "me", admin: true}, nil)
	ctx := context.Background()

	_, err := u.Register(ctx, repositories.RegisterInput{FirstName: "A", LastName: "B", Email: "not-an-email", Password: "secret1"})
	if !errors.Is(err, ucErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := u.Register(ctx, repositories.RegisterInput{FirstName: "A", LastName: "B", Email: "a@b.io", Password: "secret1", Role: entities.RoleEmployee}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(auth.registered) != 1 {
		t.Fatalf("registered = %v", auth.registered)
	}

	if err := u.ChangeRole(ctx, "a", "Owner"); !errors.Is(err, ucErrors.ErrInvalidInput) {
		t.Fatalf("unknown role: %v", err)
	}
	if err := u.ChangeRole(ctx, "a", entities.RoleAdmin); err != nil || auth.roles["a"] != entities.RoleAdmin {
		t.Fatalf("ChangeRole: %v, %v", err, auth.roles)
	}

	if err := u.Delete(ctx, "me"); !errors.Is(err, ucErrors.ErrInvalidInput) {
		t.Fatalf("self delete: %v", err)
	}
	if err := u.Delete(ctx, "b"); err != nil || len(auth.deleted) != 1 {
		t.Fatalf("Delete: %v, %v", err, auth.deleted)
	}
}

func TestUsersRequireSession(t *testing.T) {
	u := NewUsers(&fakeAuth{}, fakeDirectory{}, signedOut{}, nil)
	if _, err := u.List(context.Background()); !errors.Is(err, ucErrors.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

type signedOut struct{}

func (signedOut) Current() entities.Session { return entities.Session{} }
