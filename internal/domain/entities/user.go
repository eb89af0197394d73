package entities

import "strings"

// UserRole is one of the roles the API assigns
type UserRole string

const (
	RoleAdmin    UserRole = "Admin"
	RoleEmployee UserRole = "Employee"
	RoleGuest    UserRole = "Guest"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleGuest:
		return true
	}
	return false
}

// User represents a SmartSpace account
type User struct {
	ID                ID       `json:"id"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Email             string   `json:"email"`
	Roles             []string `json:"roles"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole checks role membership case-insensitively
func (u *User) HasRole(role UserRole) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if strings.EqualFold(r, string(role)) {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is admin
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
