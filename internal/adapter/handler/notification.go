package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/usecase/notification"
)

// defaultFailureLimit bounds GET /v1/notifications/failures
const defaultFailureLimit = 50

// Notification handles the inbox and the delivery failure log
type Notification struct {
	inbox      *notification.Inbox
	dispatcher *notification.Dispatcher
	logger     *zap.Logger
}

// NewNotification creates a new notification handler
func NewNotification(inbox *notification.Inbox, dispatcher *notification.Dispatcher, logger *zap.Logger) *Notification {
	return &Notification{
		inbox:      inbox,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// List returns the inbox, newest first
// @Summary      Notification inbox
// @Tags         Notifications
// @Produce      json
// @Success      200  {object}  common.ListResponse   "Notifications, newest first"
// @Failure      401  {object}  common.ErrorResponse  "Not signed in"
// @Router       /notifications [get]
func (h *Notification) List(c echo.Context) error {
	items, err := h.inbox.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"items":  items,
		"unread": entities.CountUnread(items),
	})
}

// UnreadCount returns the unread badge value
// GET /v1/notifications/unread-count
func (h *Notification) UnreadCount(c echo.Context) error {
	n, err := h.inbox.UnreadCount(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]int{"unread": n})
}

// MarkRead sets the read flag; ?read=false marks unread
// PUT /v1/notifications/:id/read
func (h *Notification) MarkRead(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	read := true
	if v := c.QueryParam("read"); v != "" {
		if parsed, perr := strconv.ParseBool(v); perr == nil {
			read = parsed
		}
	}
	if err := h.inbox.MarkRead(c.Request().Context(), id, read); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a notification
// DELETE /v1/notifications/:id
func (h *Notification) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.inbox.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Failures lists recorded delivery failures
// GET /v1/notifications/failures?limit=
func (h *Notification) Failures(c echo.Context) error {
	limit := defaultFailureLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	items, err := h.dispatcher.Failures(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, items)
}
