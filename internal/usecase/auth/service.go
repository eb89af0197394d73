package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	ucErrors "github.com/aseeltahaa/smartspace/internal/usecase/errors"
	"github.com/aseeltahaa/smartspace/pkg/jwt"
)

// Service handles the credential lifecycle of the signed-in user
type Service struct {
	authRepo repositories.AuthRepository
	userRepo repositories.UserRepository
	sessions *SessionManager
	logger   *zap.Logger
}

// NewService creates a new auth service
func NewService(
	authRepo repositories.AuthRepository,
	userRepo repositories.UserRepository,
	sessions *SessionManager,
	logger *zap.Logger,
) *Service {
	return &Service{
		authRepo: authRepo,
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Sessions exposes the session manager for read access
func (s *Service) Sessions() *SessionManager {
	return s.sessions
}

// Login exchanges credentials for a session. When the login answer carries no
// profile, the token claims seed the session and /Users/me completes it.
func (s *Service) Login(ctx context.Context, email, password string) (entities.Session, error) {
	res, err := s.authRepo.Login(ctx, email, password)
	if err != nil {
		return entities.Session{}, err
	}
	if res.Token == "" {
		return entities.Session{}, ucErrors.ErrEmptyToken
	}

	user := res.User
	if user == nil {
		user = userFromToken(res.Token, email)
	}
	session, err := s.sessions.Login(ctx, res.Token, user)
	if err != nil {
		return entities.Session{}, err
	}
	if res.User != nil {
		return session, nil
	}

	me, err := s.userRepo.Me(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Could not load profile after login", zap.Error(err))
		}
		if user.ID.IsZero() {
			_ = s.sessions.Logout(ctx)
			return entities.Session{}, fmt.Errorf("load profile: %w", err)
		}
		return session, nil
	}
	if len(me.Roles) == 0 {
		me.Roles = user.Roles
	}
	return s.sessions.Login(ctx, res.Token, me)
}

// Logout clears the session
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// Restore reloads the persisted session
func (s *Service) Restore(ctx context.Context) (entities.Session, error) {
	return s.sessions.Restore(ctx)
}

// Me returns the signed-in user's profile from the API
func (s *Service) Me(ctx context.Context) (*entities.User, error) {
	if !s.sessions.Current().IsAuthenticated() {
		return nil, ucErrors.ErrNotAuthenticated
	}
	return s.userRepo.Me(ctx)
}

// ChangePassword changes the signed-in user's password
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if !s.sessions.Current().IsAuthenticated() {
		return ucErrors.ErrNotAuthenticated
	}
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ucErrors.ErrInvalidInput)
	}
	return s.authRepo.ChangePassword(ctx, currentPassword, newPassword)
}

func userFromToken(token, email string) *entities.User {
	u := &entities.User{Email: email}
	claims, err := jwt.ParseUnverified(token)
	if err != nil {
		return u
	}
	u.ID = entities.ID(claims.Subject)
	u.Roles = claims.Roles
	if claims.Email != "" {
		u.Email = claims.Email
	}
	return u
}
