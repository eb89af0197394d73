package repository

import (
	"context"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
)

// roomRepository implements the RoomRepository interface
type roomRepository struct {
	api APIClient
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(api APIClient) repositories.RoomRepository {
	return &roomRepository{api: api}
}

// List returns every room in the catalog
func (r *roomRepository) List(ctx context.Context) ([]entities.Room, error) {
	var page entities.Page[entities.Room]
	if err := r.api.Get(ctx, "/Room", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// FindByID retrieves a room by its ID
func (r *roomRepository) FindByID(ctx context.Context, id entities.ID) (*entities.Room, error) {
	var room entities.Room
	if err := r.api.Get(ctx, path("Room", id.String()), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create creates a new room
func (r *roomRepository) Create(ctx context.Context, input repositories.RoomInput) (*entities.Room, error) {
	var room entities.Room
	if err := r.api.Post(ctx, "/Room", input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Update updates an existing room
func (r *roomRepository) Update(ctx context.Context, id entities.ID, input repositories.RoomInput) (*entities.Room, error) {
	var room entities.Room
	if err := r.api.Put(ctx, path("Room", id.String()), input, &room); err != nil {
		return nil, err
	}
	if room.ID.IsZero() {
		room = entities.Room{ID: id, Name: input.Name, Capacity: input.Capacity, Location: input.Location, FeatureIDs: input.FeatureIDs, ImageURL: input.ImageURL}
	}
	return &room, nil
}

// Delete deletes a room
func (r *roomRepository) Delete(ctx context.Context, id entities.ID) error {
	return r.api.Delete(ctx, path("Room", id.String()))
}

// featureRepository implements the FeatureRepository interface
type featureRepository struct {
	api APIClient
}

// NewFeatureRepository creates a new feature repository
func NewFeatureRepository(api APIClient) repositories.FeatureRepository {
	return &featureRepository{api: api}
}

func (r *featureRepository) List(ctx context.Context) ([]entities.Feature, error) {
	var page entities.Page[entities.Feature]
	if err := r.api.Get(ctx, "/Features", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (r *featureRepository) Create(ctx context.Context, input repositories.FeatureInput) (*entities.Feature, error) {
	var f entities.Feature
	if err := r.api.Post(ctx, "/Features", input, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *featureRepository) Update(ctx context.Context, id entities.ID, input repositories.FeatureInput) (*entities.Feature, error) {
	var f entities.Feature
	if err := r.api.Put(ctx, path("Features", id.String()), input, &f); err != nil {
		return nil, err
	}
	if f.ID.IsZero() {
		f = entities.Feature{ID: id, Name: input.Name}
	}
	return &f, nil
}

func (r *featureRepository) Delete(ctx context.Context, id entities.ID) error {
	return r.api.Delete(ctx, path("Features", id.String()))
}
