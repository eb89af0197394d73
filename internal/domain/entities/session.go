package entities

import "time"

// Session is the signed-in state shared by every component. It is a value:
// readers receive copies and only the session manager replaces it.
type Session struct {
	Token     string     `json:"token"`
	User      *User      `json:"user,omitempty"`
	IsAdmin   bool       `json:"isAdmin"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// IsAuthenticated reports whether a token is present
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// UserID returns the signed-in user's id, if known
func (s Session) UserID() ID {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

// Expired reports whether the token expiry (when known) has passed. Nothing
// acts on this proactively; it is informational.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
