package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aseeltahaa/smartspace/internal/infrastructure/http/middleware"
	"github.com/aseeltahaa/smartspace/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                 *config.Config
	authHandler         *Auth
	meetingHandler      *Meeting
	notificationHandler *Notification
	adminHandler        *Admin
	archiveHandler      *Archive
	realtimeHandler     *Realtime
	sessions            middleware.SessionSource
}

// NewRouter creates a new router with all handlers. Nil handlers get
// placeholder routes.
func NewRouter(
	cfg *config.Config,
	sessions middleware.SessionSource,
	authHandler *Auth,
	meetingHandler *Meeting,
	notificationHandler *Notification,
	adminHandler *Admin,
	archiveHandler *Archive,
	realtimeHandler *Realtime,
) *Router {
	return &Router{
		cfg:                 cfg,
		sessions:            sessions,
		authHandler:         authHandler,
		meetingHandler:      meetingHandler,
		notificationHandler: notificationHandler,
		adminHandler:        adminHandler,
		archiveHandler:      archiveHandler,
		realtimeHandler:     realtimeHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)

	signedIn := v1.Group("", middleware.RequireSession(rt.sessions))
	rt.setupMeetingRoutes(signedIn)
	rt.setupNotificationRoutes(signedIn)
	rt.setupArchiveRoutes(signedIn)
	if rt.realtimeHandler != nil {
		signedIn.GET("/ws", rt.realtimeHandler.Connect)
	}

	rt.setupAdminRoutes(v1.Group("/admin", middleware.RequireSession(rt.sessions), middleware.RequireAdmin()))
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	if rt.authHandler == nil {
		authGroup.Any("/*", rt.notImplemented)
		return
	}

	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/session", rt.authHandler.Session)

	protected := authGroup.Group("", middleware.RequireSession(rt.sessions))
	protected.GET("/me", rt.authHandler.Me)
	protected.POST("/change-password", rt.authHandler.ChangePassword)
}

// setupMeetingRoutes configures the meeting list and detail routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	h := rt.meetingHandler
	if h == nil {
		meetings.Any("*", rt.notImplemented)
		return
	}

	meetings.GET("", h.List)
	meetings.POST("", h.Create)
	meetings.GET("/search", h.Search)
	meetings.POST("/sections/:section/next", h.NextPage)
	meetings.POST("/sections/:section/previous", h.PreviousPage)

	meetings.GET("/:id", h.Get)
	meetings.PUT("/:id", h.Update)
	meetings.DELETE("/:id", h.Delete)

	meetings.POST("/:id/invitees", h.AddInvitee)
	meetings.DELETE("/:id/invitees/:inviteeId", h.RemoveInvitee)
	meetings.POST("/:id/invitees/:inviteeId/accept", h.Accept)
	meetings.POST("/:id/invitees/:inviteeId/decline", h.Decline)

	meetings.POST("/:id/notes", h.AddNote)
	meetings.DELETE("/:id/notes/:noteId", h.DeleteNote)

	meetings.POST("/:id/action-items", h.CreateActionItem)
	meetings.PUT("/:id/action-items/:itemId/toggle-status", h.ToggleStatus)
	meetings.PUT("/:id/action-items/:itemId/toggle-judgment", h.ToggleJudgment)
	meetings.DELETE("/:id/action-items/:itemId", h.DeleteActionItem)

	meetings.POST("/:id/attachments", h.UploadAttachments)
	meetings.GET("/:id/attachments/:file", h.DownloadAttachment)
	if rt.archiveHandler != nil {
		meetings.POST("/:id/attachments/archive", rt.archiveHandler.ArchiveMeeting)
	}
}

// setupNotificationRoutes configures the inbox routes
func (rt *Router) setupNotificationRoutes(g *echo.Group) {
	notifications := g.Group("/notifications")

	h := rt.notificationHandler
	if h == nil {
		notifications.Any("*", rt.notImplemented)
		return
	}

	notifications.GET("", h.List)
	notifications.GET("/unread-count", h.UnreadCount)
	notifications.GET("/failures", h.Failures)
	notifications.PUT("/:id/read", h.MarkRead)
	notifications.DELETE("/:id", h.Delete)
}

// setupArchiveRoutes configures the attachment archive browser
func (rt *Router) setupArchiveRoutes(g *echo.Group) {
	if rt.archiveHandler == nil {
		return
	}
	archive := g.Group("/archive")
	archive.GET("/files", rt.archiveHandler.ListFiles)
	archive.GET("/download-url", rt.archiveHandler.DownloadURL)
}

// setupAdminRoutes configures the administration routes
func (rt *Router) setupAdminRoutes(g *echo.Group) {
	h := rt.adminHandler
	if h == nil {
		g.Any("*", rt.notImplemented)
		return
	}

	g.GET("/rooms", h.ListRooms)
	g.POST("/rooms", h.CreateRoom)
	g.GET("/rooms/:id", h.GetRoom)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)

	g.GET("/features", h.ListFeatures)
	g.POST("/features", h.CreateFeature)
	g.PUT("/features/:id", h.UpdateFeature)
	g.DELETE("/features/:id", h.DeleteFeature)

	g.GET("/users", h.ListUsers)
	g.POST("/users", h.RegisterUser)
	g.GET("/users/:id", h.GetUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.PUT("/users/:id/role", h.ChangeRole)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
