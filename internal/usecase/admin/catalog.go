package admin

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
	ucErrors "github.com/aseeltahaa/smartspace/internal/usecase/errors"
	"github.com/aseeltahaa/smartspace/pkg/validator"
)

// SessionReader exposes the signed-in session
type SessionReader interface {
	Current() entities.Session
}

// CatalogRevision is the payload published on events.TopicCatalogRevision
type CatalogRevision struct {
	Revision uint64 `json:"revision"`
}

// Catalog manages rooms and features. Every successful change bumps the
// revision; the cached lists are refetched when they are older than it.
type Catalog struct {
	rooms     repositories.RoomRepository
	features  repositories.FeatureRepository
	sessions  SessionReader
	validator *validator.CustomValidator
	bus       *events.Bus
	logger    *zap.Logger

	mu         sync.Mutex
	revision   uint64
	loadedRev  uint64
	loaded     bool
	roomList   []entities.Room
	featureSet []entities.Feature
}

// NewCatalog creates a catalog. bus may be nil.
func NewCatalog(
	rooms repositories.RoomRepository,
	features repositories.FeatureRepository,
	sessions SessionReader,
	bus *events.Bus,
	logger *zap.Logger,
) *Catalog {
	return &Catalog{
		rooms:     rooms,
		features:  features,
		sessions:  sessions,
		validator: validator.New(),
		bus:       bus,
		logger:    logger,
	}
}

// Revision returns the current catalog revision
func (c *Catalog) Revision() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision
}

// Rooms returns the room list, refetching it when the catalog changed since
// the last fetch.
func (c *Catalog) Rooms(ctx context.Context) ([]entities.Room, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entities.Room(nil), c.roomList...), nil
}

// Features returns the feature list, refetching it when needed
func (c *Catalog) Features(ctx context.Context) ([]entities.Feature, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entities.Feature(nil), c.featureSet...), nil
}

// Room fetches a single room
func (c *Catalog) Room(ctx context.Context, id entities.ID) (*entities.Room, error) {
	return c.rooms.FindByID(ctx, id)
}

func (c *Catalog) refresh(ctx context.Context) error {
	c.mu.Lock()
	target := c.revision
	fresh := c.loaded && c.loadedRev >= target
	c.mu.Unlock()
	if fresh {
		return nil
	}

	var rooms []entities.Room
	var features []entities.Feature
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = c.rooms.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		features, err = c.features.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded || target >= c.loadedRev {
		c.roomList = rooms
		c.featureSet = features
		c.loadedRev = target
		c.loaded = true
	}
	return nil
}

// CreateRoom validates and creates a room
func (c *Catalog) CreateRoom(ctx context.Context, input repositories.RoomInput) (*entities.Room, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	room, err := c.rooms.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	c.bump("room created", room.ID)
	return room, nil
}

// UpdateRoom validates and saves a room
func (c *Catalog) UpdateRoom(ctx context.Context, id entities.ID, input repositories.RoomInput) (*entities.Room, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	room, err := c.rooms.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	c.bump("room updated", id)
	return room, nil
}

// DeleteRoom removes a room
func (c *Catalog) DeleteRoom(ctx context.Context, id entities.ID) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if err := c.rooms.Delete(ctx, id); err != nil {
		return err
	}
	c.bump("room deleted", id)
	return nil
}

// CreateFeature validates and creates a feature
func (c *Catalog) CreateFeature(ctx context.Context, input repositories.FeatureInput) (*entities.Feature, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	f, err := c.features.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	c.bump("feature created", f.ID)
	return f, nil
}

// UpdateFeature validates and renames a feature
func (c *Catalog) UpdateFeature(ctx context.Context, id entities.ID, input repositories.FeatureInput) (*entities.Feature, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	f, err := c.features.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	c.bump("feature updated", id)
	return f, nil
}

// DeleteFeature removes a feature
func (c *Catalog) DeleteFeature(ctx context.Context, id entities.ID) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if err := c.features.Delete(ctx, id); err != nil {
		return err
	}
	c.bump("feature deleted", id)
	return nil
}

func (c *Catalog) check(input interface{}) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if err := c.validator.Validate(input); err != nil {
		return fmt.Errorf("%w: %s", ucErrors.ErrInvalidInput, validator.Message(err))
	}
	return nil
}

func (c *Catalog) requireAdmin() error {
	return requireAdmin(c.sessions)
}

func (c *Catalog) bump(action string, id entities.ID) {
	c.mu.Lock()
	c.revision++
	rev := c.revision
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.Publish(events.TopicCatalogRevision, CatalogRevision{Revision: rev})
	}
	if c.logger != nil {
		c.logger.Info("🏢 Catalog changed",
			zap.String("action", action),
			zap.String("id", id.String()),
			zap.Uint64("revision", rev),
		)
	}
}

// requireAdmin passes when no session reader is wired
func requireAdmin(sessions SessionReader) error {
	if sessions == nil {
		return nil
	}
	s := sessions.Current()
	if !s.IsAuthenticated() {
		return ucErrors.ErrNotAuthenticated
	}
	if !s.IsAdmin {
		return ucErrors.ErrNotAdmin
	}
	return nil
}
