package repositories

import (
	"context"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
)

// NotificationInput is the record posted for a recipient
type NotificationInput struct {
	UserID  entities.ID `json:"userId"`
	Subject string      `json:"subject"`
	Body    string      `json:"body"`
}

// NotificationRepository defines access to notification records
type NotificationRepository interface {
	// Create posts one notification for a recipient
	Create(ctx context.Context, input NotificationInput) (*entities.Notification, error)

	// ListMine returns the signed-in user's inbox
	ListMine(ctx context.Context) ([]entities.Notification, error)

	// SetRead marks a notification read or unread
	SetRead(ctx context.Context, id entities.ID, read bool) error

	Delete(ctx context.Context, id entities.ID) error
}

// FailureLog keeps notification dispatches that could not be delivered
type FailureLog interface {
	Record(ctx context.Context, failure *entities.NotificationFailure) error
	List(ctx context.Context, limit int) ([]entities.NotificationFailure, error)
}
