package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/errors"
	adminDTO "github.com/aseeltahaa/smartspace/internal/adapter/dto/admin"
	"github.com/aseeltahaa/smartspace/internal/adapter/presenter"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/usecase/admin"
)

// Admin handles the room, feature and user administration screens
type Admin struct {
	catalog *admin.Catalog
	users   *admin.Users
	logger  *zap.Logger
}

// NewAdmin creates a new admin handler
func NewAdmin(catalog *admin.Catalog, users *admin.Users, logger *zap.Logger) *Admin {
	return &Admin{
		catalog: catalog,
		users:   users,
		logger:  logger,
	}
}

// ListRooms returns the room catalog with its revision
// GET /v1/admin/rooms
func (h *Admin) ListRooms(c echo.Context) error {
	rooms, err := h.catalog.Rooms(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"items":    rooms,
		"revision": h.catalog.Revision(),
	})
}

// GetRoom returns one room
// GET /v1/admin/rooms/:id
func (h *Admin) GetRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	room, err := h.catalog.Room(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, room)
}

// CreateRoom creates a room
// POST /v1/admin/rooms
func (h *Admin) CreateRoom(c echo.Context) error {
	var req repositories.RoomInput
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	room, err := h.catalog.CreateRoom(c.Request().Context(), req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, room)
}

// UpdateRoom saves a room
// PUT /v1/admin/rooms/:id
func (h *Admin) UpdateRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req repositories.RoomInput
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	room, err := h.catalog.UpdateRoom(c.Request().Context(), id, req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, room)
}

// DeleteRoom removes a room
// DELETE /v1/admin/rooms/:id
func (h *Admin) DeleteRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.catalog.DeleteRoom(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFeatures returns the feature catalog
// GET /v1/admin/features
func (h *Admin) ListFeatures(c echo.Context) error {
	features, err := h.catalog.Features(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"items":    features,
		"revision": h.catalog.Revision(),
	})
}

// CreateFeature creates a feature
// POST /v1/admin/features
func (h *Admin) CreateFeature(c echo.Context) error {
	var req repositories.FeatureInput
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	f, err := h.catalog.CreateFeature(c.Request().Context(), req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, f)
}

// UpdateFeature renames a feature
// PUT /v1/admin/features/:id
func (h *Admin) UpdateFeature(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req repositories.FeatureInput
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	f, err := h.catalog.UpdateFeature(c.Request().Context(), id, req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, f)
}

// DeleteFeature removes a feature
// DELETE /v1/admin/features/:id
func (h *Admin) DeleteFeature(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.catalog.DeleteFeature(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers returns every user
// GET /v1/admin/users
func (h *Admin) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponses(users))
}

// GetUser returns one user
// GET /v1/admin/users/:id
func (h *Admin) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}

// RegisterUser creates an account
// POST /v1/admin/users
func (h *Admin) RegisterUser(c echo.Context) error {
	var req repositories.RegisterInput
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	user, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToUserResponse(user))
}

// DeleteUser removes an account
// DELETE /v1/admin/users/:id
func (h *Admin) DeleteUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeRole assigns a role
// PUT /v1/admin/users/:id/role
func (h *Admin) ChangeRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req adminDTO.RoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.users.ChangeRole(c.Request().Context(), id, req.Role); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
