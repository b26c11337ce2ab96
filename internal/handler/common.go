// Package handler contains the HTTP handlers of the wizard service.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/event-wizard/internal/repository"
	"github.com/eventhub/event-wizard/internal/session"
	"github.com/eventhub/event-wizard/internal/terms"
	"github.com/eventhub/event-wizard/internal/wizard"
)

// WizardHandler bundles the collaborators the wizard endpoints need.
type WizardHandler struct {
	Sessions session.Store
	Events   *repository.EventRepo
	Terms    terms.Provider
}

// NewWizardHandler constructs a WizardHandler and panics if any dependency
// is nil.
func NewWizardHandler(sessions session.Store, events *repository.EventRepo, provider terms.Provider) *WizardHandler {
	if sessions == nil || events == nil || provider == nil {
		panic("nil dependency passed to NewWizardHandler")
	}
	return &WizardHandler{
		Sessions: sessions,
		Events:   events,
		Terms:    provider,
	}
}

// getUserID extracts the authenticated identity that JWTAuth stored in the
// context.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing user_id in context")
}

// sessionView is the wire representation of a wizard session.
type sessionView struct {
	ID       string       `json:"id"`
	Step     int          `json:"step"`
	StepName string       `json:"stepName"`
	Steps    []string     `json:"steps"`
	State    wizard.State `json:"state"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{
		ID:       s.ID,
		Step:     s.Step,
		StepName: wizard.StepNames[s.Step],
		Steps:    wizard.StepNames,
		State:    s.State,
	}
}

// loadOwnedSession fetches the session from the store and verifies that the
// caller owns it.  On failure it writes the error response and returns nil.
func (h *WizardHandler) loadOwnedSession(c echo.Context) *session.Session {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return nil
	}
	s, err := h.Sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
		}
		return nil
	}
	if s.OwnerID != userID {
		_ = c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		return nil
	}
	return s
}
