package repositories

import (
	"context"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
)

// RoomInput is the body of the room admin form
type RoomInput struct {
	Name       string        `json:"name" validate:"required,max=100"`
	Capacity   int           `json:"capacity" validate:"required,min=1"`
	Location   string        `json:"location" validate:"required"`
	FeatureIDs []entities.ID `json:"featureIds"`
	ImageURL   string        `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// RoomRepository defines the interface for room catalog access
type RoomRepository interface {
	List(ctx context.Context) ([]entities.Room, error)
	FindByID(ctx context.Context, id entities.ID) (*entities.Room, error)
	Create(ctx context.Context, input RoomInput) (*entities.Room, error)
	Update(ctx context.Context, id entities.ID, input RoomInput) (*entities.Room, error)
	Delete(ctx context.Context, id entities.ID) error
}

// FeatureInput is the body of the feature admin form
type FeatureInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// FeatureRepository defines the interface for feature catalog access
type FeatureRepository interface {
	List(ctx context.Context) ([]entities.Feature, error)
	Create(ctx context.Context, input FeatureInput) (*entities.Feature, error)
	Update(ctx context.Context, id entities.ID, input FeatureInput) (*entities.Feature, error)
	Delete(ctx context.Context, id entities.ID) error
}
