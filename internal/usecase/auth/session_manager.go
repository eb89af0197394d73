package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/aseeltahaa/smartspace/errors"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/cache"
	"github.com/aseeltahaa/smartspace/pkg/jwt"
)

// Keys of the persisted session
const (
	keyToken = "session:token"
	keyUser  = "session:user"
	keyAdmin = "session:admin"
)

// SessionManager owns the signed-in session. It is the only writer: Login,
// Logout and Restore replace the session, everything else reads copies.
type SessionManager struct {
	mu      sync.RWMutex
	current entities.Session
	store   cache.Store
	logger  *zap.Logger
	now     func() time.Time
}

// NewSessionManager creates a manager persisting into store
func NewSessionManager(store cache.Store, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Current returns a copy of the session
func (m *SessionManager) Current() entities.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.current
	if s.User != nil {
		u := *s.User
		u.Roles = append([]string(nil), s.User.Roles...)
		s.User = &u
	}
	return s
}

// Token returns the bearer token, or "" when signed out
func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token
}

// Login replaces the session with token and user and persists it. Admin is
// derived from the user's roles or, failing that, from the token claims.
func (m *SessionManager) Login(ctx context.Context, token string, user *entities.User) (entities.Session, error) {
	s := entities.Session{Token: token, User: user}

	claims, err := jwt.ParseUnverified(token)
	if err == nil {
		s.ExpiresAt = claims.ExpiresAt
		s.IsAdmin = claims.HasRole(string(entities.RoleAdmin))
	} else if m.logger != nil {
		m.logger.Debug("session token is not a readable JWT", zap.Error(err))
	}
	if user.IsAdmin() {
		s.IsAdmin = true
	}

	if err := m.persist(ctx, s); err != nil {
		return entities.Session{}, err
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("🔐 Signed in",
			zap.String("user_id", s.UserID().String()),
			zap.Bool("is_admin", s.IsAdmin),
		)
	}
	return m.Current(), nil
}

// Logout clears the session in memory and in the store
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = entities.Session{}
	m.mu.Unlock()

	var errs []error
	for _, k := range []string{keyToken, keyUser, keyAdmin} {
		if err := m.store.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return apperrors.ErrCacheFailed("clear session", errors.Join(errs...))
	}

	if m.logger != nil {
		m.logger.Info("👋 Signed out")
	}
	return nil
}

// Restore reloads a persisted session at startup. A missing session is not an
// error.
func (m *SessionManager) Restore(ctx context.Context) (entities.Session, error) {
	token, err := m.store.Get(ctx, keyToken)
	if errors.Is(err, cache.ErrMiss) {
		return entities.Session{}, nil
	}
	if err != nil {
		return entities.Session{}, apperrors.ErrCacheFailed("read session", err)
	}

	s := entities.Session{Token: token}
	if raw, err := m.store.Get(ctx, keyUser); err == nil && raw != "" {
		var u entities.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			s.User = &u
		}
	}
	if admin, err := m.store.Get(ctx, keyAdmin); err == nil {
		s.IsAdmin = admin == "true"
	}
	if claims, err := jwt.ParseUnverified(token); err == nil {
		s.ExpiresAt = claims.ExpiresAt
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("♻️ Session restored",
			zap.String("user_id", s.UserID().String()),
			zap.Bool("expired", s.Expired(m.now())),
		)
	}
	return m.Current(), nil
}

func (m *SessionManager) persist(ctx context.Context, s entities.Session) error {
	var ttl time.Duration
	if s.ExpiresAt != nil {
		ttl = s.ExpiresAt.Sub(m.now())
		if ttl <= 0 {
			ttl = 0
		}
	}

	userJSON := ""
	if s.User != nil {
		b, err := json.Marshal(s.User)
		if err != nil {
			return apperrors.ErrInternal(err)
		}
		userJSON = string(b)
	}
	admin := "false"
	if s.IsAdmin {
		admin = "true"
	}

	for k, v := range map[string]string{keyToken: s.Token, keyUser: userJSON, keyAdmin: admin} {
		if err := m.store.Set(ctx, k, v, ttl); err != nil {
			return apperrors.ErrCacheFailed("write session", err)
		}
	}
	return nil
}
