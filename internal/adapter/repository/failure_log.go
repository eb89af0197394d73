package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/aseeltahaa/smartspace/errors"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
)

// notificationFailure is the gorm model of the notification_failures table
type notificationFailure struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    string         `gorm:"type:varchar(64);not null;index"`
	Subject   string         `gorm:"type:varchar(255);not null"`
	Body      string         `gorm:"type:text;not null"`
	Error     string         `gorm:"type:text;not null"`
	Attempts  int            `gorm:"not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName specifies the table name
func (notificationFailure) TableName() string {
	return "notification_failures"
}

// failureMetadata is kept alongside the failure for later inspection
type failureMetadata struct {
	RecordedBy string `json:"recordedBy"`
}

// FailureLogRepository stores notification failures in postgres
type FailureLogRepository struct {
	db *gorm.DB
}

var _ repositories.FailureLog = (*FailureLogRepository)(nil)

// NewFailureLogRepository creates a new failure log repository
func NewFailureLogRepository(db *gorm.DB) *FailureLogRepository {
	return &FailureLogRepository{db: db}
}

// Record stores one failure
func (r *FailureLogRepository) Record(ctx context.Context, f *entities.NotificationFailure) error {
	prepareFailure(f)

	meta, _ := json.Marshal(failureMetadata{RecordedBy: "dispatcher"})
	row := notificationFailure{
		ID:        uuid.MustParse(f.ID),
		UserID:    f.UserID.String(),
		Subject:   f.Subject,
		Body:      f.Body,
		Error:     f.Error,
		Attempts:  f.Attempts,
		Metadata:  datatypes.JSON(meta),
		CreatedAt: f.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.ErrDBQueryFailed("insert notification_failures", err)
	}
	return nil
}

// List returns the newest failures first
func (r *FailureLogRepository) List(ctx context.Context, limit int) ([]entities.NotificationFailure, error) {
	var rows []notificationFailure
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperrors.ErrDBQueryFailed("select notification_failures", err)
	}

	out := make([]entities.NotificationFailure, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.NotificationFailure{
			ID:        row.ID.String(),
			UserID:    entities.ID(row.UserID),
			Subject:   row.Subject,
			Body:      row.Body,
			Error:     row.Error,
			Attempts:  row.Attempts,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// MemoryFailureLog keeps the most recent failures in memory
type MemoryFailureLog struct {
	mu       sync.Mutex
	items    []entities.NotificationFailure
	capacity int
}

var _ repositories.FailureLog = (*MemoryFailureLog)(nil)

// NewMemoryFailureLog keeps at most capacity entries, dropping the oldest
func NewMemoryFailureLog(capacity int) *MemoryFailureLog {
	if capacity < 1 {
		capacity = 100
	}
	return &MemoryFailureLog{capacity: capacity}
}

func (l *MemoryFailureLog) Record(_ context.Context, f *entities.NotificationFailure) error {
	prepareFailure(f)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, *f)
	if over := len(l.items) - l.capacity; over > 0 {
		l.items = append([]entities.NotificationFailure(nil), l.items[over:]...)
	}
	return nil
}

func (l *MemoryFailureLog) List(_ context.Context, limit int) ([]entities.NotificationFailure, error) {
	l.mu.Lock()
	out := append([]entities.NotificationFailure(nil), l.items...)
	l.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func prepareFailure(f *entities.NotificationFailure) {
	if _, err := uuid.Parse(f.ID); err != nil {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if f.Attempts < 1 {
		f.Attempts = 1
	}
}
