// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/eventhub/event-wizard/internal/config"
	"github.com/eventhub/event-wizard/internal/handler"
	"github.com/eventhub/event-wizard/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterWizard registers the wizard API.  All routes require a valid
// access token; wizard routes additionally require the ORGANIZER role
// (ADMIN passes too, matching the reviewing side's elevated access), and
// the terms update route is ADMIN-only.  The rate limiter applies to the
// whole authenticated surface and degrades to pass-through without Redis.
func RegisterWizard(e *echo.Echo, h *handler.WizardHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RateLimit(rlCfg, rdb))

	// Terms text is readable by any authenticated user; the organizer step
	// renders it next to the agreement checkbox.
	v1.GET("/terms", h.GetTerms, middleware.RequireRole("ORGANIZER", "ADMIN"))
	v1.PUT("/admin/terms", h.UpdateTerms, middleware.RequireRole("ADMIN"))

	org := v1.Group("", middleware.RequireRole("ORGANIZER", "ADMIN"))

	// Wizard sessions.
	org.POST("/wizard/sessions", h.CreateSession)
	org.GET("/wizard/sessions/:id", h.GetSession)
	org.DELETE("/wizard/sessions/:id", h.DeleteSession)
	org.POST("/wizard/sessions/:id/actions", h.Dispatch)
	org.POST("/wizard/sessions/:id/showtimes", h.AddShowtime)
	org.DELETE("/wizard/sessions/:id/showtimes/:code", h.RemoveShowtime)
	org.POST("/wizard/sessions/:id/ticket-types", h.AddTicketType)
	org.DELETE("/wizard/sessions/:id/ticket-types/:code", h.RemoveTicketType)
	org.POST("/wizard/sessions/:id/ticket-details", h.AddTicketDetail)
	org.DELETE("/wizard/sessions/:id/ticket-details/:code", h.RemoveTicketDetail)
	org.PUT("/wizard/sessions/:id/allocations", h.SetAllocation)
	org.POST("/wizard/sessions/:id/advance", h.Advance)
	org.POST("/wizard/sessions/:id/back", h.Back)

	// Persistence.
	org.POST("/wizard/sessions/:id/draft", h.SaveDraft)
	org.POST("/wizard/sessions/:id/submit", h.Submit)

	// Persisted events.
	org.GET("/events", h.ListEvents)
	org.GET("/events/custom-url/exists", h.CustomURLExists)
	org.GET("/events/:id", h.GetEvent)
}
