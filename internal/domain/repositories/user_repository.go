package repositories

import (
	"context"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
)

// UserRepository defines read access to the user directory
type UserRepository interface {
	// Me returns the signed-in user's profile
	Me(ctx context.Context) (*entities.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id entities.ID) (*entities.User, error)

	// List returns the whole directory
	List(ctx context.Context) ([]entities.User, error)
}

// LoginResult is what the API answers on a successful login
type LoginResult struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user,omitempty"`
}

// RegisterInput is the body of the user creation form
type RegisterInput struct {
	FirstName string            `json:"firstName" validate:"required"`
	LastName  string            `json:"lastName" validate:"required"`
	Email     string            `json:"email" validate:"required,email"`
	Password  string            `json:"password" validate:"required,min=6"`
	Role      entities.UserRole `json:"role,omitempty" validate:"omitempty,oneof=Admin Employee Guest"`
}

// AuthRepository defines the credential lifecycle endpoints
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*entities.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// Delete removes a user account (admin)
	Delete(ctx context.Context, userID entities.ID) error

	// ChangeRole replaces a user's role (admin)
	ChangeRole(ctx context.Context, userID entities.ID, role entities.UserRole) error
}
