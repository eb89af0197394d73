package entities

import "time"

// Note is a free-text note attached to a meeting
type Note struct {
	ID              ID        `json:"id"`
	Content         string    `json:"content"`
	CreatedByUserID ID        `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}
