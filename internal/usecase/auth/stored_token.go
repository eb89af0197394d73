package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/infrastructure/cache"
)

const storedTokenTimeout = 2 * time.Second

// StoredToken reads the bearer token from the session store on every call.
// A process that never signs in itself, like the notification worker, follows
// logins, user switches and logouts made by the api process this way.
type StoredToken struct {
	store  cache.Store
	logger *zap.Logger
}

// NewStoredToken creates a token provider over store
func NewStoredToken(store cache.Store, logger *zap.Logger) *StoredToken {
	return &StoredToken{store: store, logger: logger}
}

// Token returns the persisted token, or "" when nobody is signed in or the
// store cannot be read.
func (t *StoredToken) Token() string {
	ctx, cancel := context.WithTimeout(context.Background(), storedTokenTimeout)
	defer cancel()

	token, err := t.store.Get(ctx, keyToken)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) && t.logger != nil {
			t.logger.Warn("⚠️ Session token unreadable", zap.Error(err))
		}
		return ""
	}
	return token
}
