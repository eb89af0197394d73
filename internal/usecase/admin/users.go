package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	ucErrors "github.com/aseeltahaa/smartspace/internal/usecase/errors"
	"github.com/aseeltahaa/smartspace/pkg/validator"
)

// Users is the user administration screen
type Users struct {
	auth      repositories.AuthRepository
	users     repositories.UserRepository
	sessions  SessionReader
	validator *validator.CustomValidator
	logger    *zap.Logger
}

// NewUsers creates the user administration service
func NewUsers(
	auth repositories.AuthRepository,
	users repositories.UserRepository,
	sessions SessionReader,
	logger *zap.Logger,
) *Users {
	return &Users{
		auth:      auth,
		users:     users,
		sessions:  sessions,
		validator: validator.New(),
		logger:    logger,
	}
}

// List returns every user
func (u *Users) List(ctx context.Context) ([]entities.User, error) {
	if err := requireAdmin(u.sessions); err != nil {
		return nil, err
	}
	return u.users.List(ctx)
}

// Get returns one user
func (u *Users) Get(ctx context.Context, id entities.ID) (*entities.User, error) {
	if err := requireAdmin(u.sessions); err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, id)
}

// Register creates an account
func (u *Users) Register(ctx context.Context, input repositories.RegisterInput) (*entities.User, error) {
	if err := requireAdmin(u.sessions); err != nil {
		return nil, err
	}
	if err := u.validator.Validate(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ucErrors.ErrInvalidInput, validator.Message(err))
	}

	user, err := u.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	if u.logger != nil {
		u.logger.Info("👤 User registered", zap.String("email", input.Email))
	}
	return user, nil
}

// Delete removes an account. Admins cannot delete themselves.
func (u *Users) Delete(ctx context.Context, id entities.ID) error {
	if err := requireAdmin(u.sessions); err != nil {
		return err
	}
	if u.sessions != nil && u.sessions.Current().UserID() == id {
		return fmt.Errorf("%w: cannot delete your own account", ucErrors.ErrInvalidInput)
	}
	if err := u.auth.Delete(ctx, id); err != nil {
		return err
	}
	if u.logger != nil {
		u.logger.Info("🗑️ User deleted", zap.String("user_id", id.String()))
	}
	return nil
}

// ChangeRole assigns role to a user
func (u *Users) ChangeRole(ctx context.Context, id entities.ID, role entities.UserRole) error {
	if err := requireAdmin(u.sessions); err != nil {
		return err
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: %v", ucErrors.ErrInvalidInput, entities.ErrInvalidRole)
	}
	if err := u.auth.ChangeRole(ctx, id, role); err != nil {
		return err
	}
	if u.logger != nil {
		u.logger.Info("🔑 Role changed",
			zap.String("user_id", id.String()),
			zap.String("role", string(role)),
		)
	}
	return nil
}
