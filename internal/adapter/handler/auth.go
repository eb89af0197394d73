package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/aseeltahaa/smartspace/internal/adapter/dto/auth"
	"github.com/aseeltahaa/smartspace/internal/adapter/presenter"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/http/middleware"
)

// AuthService is the auth use case as seen by the handler
type AuthService interface {
	Login(ctx context.Context, email, password string) (entities.Session, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*entities.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

// SessionResetter is notified when the signed-in user changes
type SessionResetter interface {
	Reset()
}

// Auth handles authentication HTTP requests
type Auth struct {
	service  AuthService
	sessions middleware.SessionSource
	resets   []SessionResetter
	logger   *zap.Logger
}

// NewAuth creates a new auth handler. resets are cleared on login and logout.
func NewAuth(service AuthService, sessions middleware.SessionSource, logger *zap.Logger, resets ...SessionResetter) *Auth {
	return &Auth{
		service:  service,
		sessions: sessions,
		resets:   resets,
		logger:   logger,
	}
}

// Session describes the local session without calling the API
// @Summary      Current session
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  auth.SessionResponse  "Session, authenticated or not"
// @Router       /auth/session [get]
func (h *Auth) Session(c echo.Context) error {
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(h.sessions.Current(), time.Now()))
}

// Login signs in with email and password
// @Summary      Sign in
// @Description  Signs in against the SmartSpace API and stores the session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      auth.LoginRequest       true  "Credentials"
// @Success      200      {object}  auth.SessionResponse    "Signed in"
// @Failure      400      {object}  common.ErrorResponse    "Invalid email or missing password"
// @Failure      401      {object}  common.ErrorResponse    "Credentials rejected by the API"
// @Router       /auth/login [post]
func (h *Auth) Login(c echo.Context) error {
	var req authDTO.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	s, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	h.reset()

	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s, time.Now()))
}

// Logout clears the session
// @Summary      Sign out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  common.SuccessResponse  "Signed out"
// @Router       /auth/logout [post]
func (h *Auth) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context()); err != nil {
		return HandleError(h.logger, c, err)
	}
	h.reset()

	return HandleSuccess(h.logger, c, map[string]string{
		"message": "Logged out successfully",
	})
}

// Me returns the current user from the API
// GET /v1/auth/me
func (h *Auth) Me(c echo.Context) error {
	user, err := h.service.Me(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}

// ChangePassword changes the signed-in user's password
// POST /v1/auth/change-password
func (h *Auth) ChangePassword(c echo.Context) error {
	var req authDTO.ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{
		"message": "Password changed",
	})
}

func (h *Auth) reset() {
	for _, r := range h.resets {
		r.Reset()
	}
}
