package auth

import "time"

// UserResponse represents user information in responses
type UserResponse struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	FullName          string   `json:"fullName"`
	Roles             []string `json:"roles"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
}

// SessionResponse describes the signed-in session. The token itself stays
// in the companion server.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	IsAdmin       bool          `json:"isAdmin"`
	ExpiresAt     *time.Time    `json:"expiresAt,omitempty"`
	Expired       bool          `json:"expired"`
	User          *UserResponse `json:"user,omitempty"`
}
