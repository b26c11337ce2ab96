package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/event-wizard/internal/repository"
)

func parseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// GetEvent handles GET /v1/events/:id and returns the stored event in the
// external nested shape.  Organizers can only read their own events.
func (h *WizardHandler) GetEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := parseEventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
	}
	rec, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load event"})
	}
	if rec.OrganizerID != "" && rec.OrganizerID != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, rec)
}

// ListEvents handles GET /v1/events and returns the caller's events,
// optionally filtered with ?status=DRAFT|PENDING_APPROVAL|...
func (h *WizardHandler) ListEvents(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	items, err := h.Events.ListByOrganizer(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CustomURLExists handles GET /v1/events/custom-url/exists and lets the
// settings step check URL availability while typing.  excludeEventId keeps
// an event from colliding with itself when editing.
func (h *WizardHandler) CustomURLExists(c echo.Context) error {
	url := c.QueryParam("customUrl")
	if url == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "customUrl is required"})
	}
	var exclude int64
	if raw := c.QueryParam("excludeEventId"); raw != "" {
		var err error
		exclude, err = parseInt64(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid excludeEventId"})
		}
	}
	exists, err := h.Events.CustomURLExists(c.Request().Context(), url, exclude)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to check custom url"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}
