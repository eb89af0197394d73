package repository

import (
	"context"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
)

// notificationRepository implements NotificationRepository over the REST API
type notificationRepository struct {
	api APIClient
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(api APIClient) repositories.NotificationRepository {
	return &notificationRepository{api: api}
}

// Create posts one notification record
func (r *notificationRepository) Create(ctx context.Context, input repositories.NotificationInput) (*entities.Notification, error) {
	var n entities.Notification
	if err := r.api.Post(ctx, "/Notifications", input, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListMine returns the signed-in user's inbox
func (r *notificationRepository) ListMine(ctx context.Context) ([]entities.Notification, error) {
	var page entities.Page[entities.Notification]
	if err := r.api.Get(ctx, "/Notifications", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// SetRead marks a notification read or unread
func (r *notificationRepository) SetRead(ctx context.Context, id entities.ID, read bool) error {
	return r.api.Put(ctx, path("Notifications", id.String()), map[string]bool{"isRead": read}, nil)
}

func (r *notificationRepository) Delete(ctx context.Context, id entities.ID) error {
	return r.api.Delete(ctx, path("Notifications", id.String()))
}
