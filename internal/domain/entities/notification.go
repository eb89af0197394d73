package entities

import "time"

// Notification is an inbox record owned by its recipient
type Notification struct {
	ID      ID        `json:"id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	UserID  ID        `json:"userId"`
	IsRead  bool      `json:"isRead"`
	Date    time.Time `json:"date"`
}

// NotificationFailure records a dispatch that could not be delivered
type NotificationFailure struct {
	ID        string    `json:"id"`
	UserID    ID        `json:"userId"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Error     string    `json:"error"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
}

// CountUnread returns the number of unread notifications
func CountUnread(items []Notification) int {
	n := 0
	for _, it := range items {
		if !it.IsRead {
			n++
		}
	}
	return n
}
