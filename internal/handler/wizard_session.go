package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/event-wizard/internal/repository"
	"github.com/eventhub/event-wizard/internal/session"
	"github.com/eventhub/event-wizard/internal/wizard"
)

// CreateSession handles POST /v1/wizard/sessions.  Without a body it starts
// a blank wizard; with an event_id it fetches the stored event, verifies
// ownership and hydrates the wizard for editing.
func (h *WizardHandler) CreateSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var body struct {
		EventID *int64 `json:"eventId"`
	}
	// The body is optional; ignore bind errors for an empty payload.
	_ = c.Bind(&body)

	var s *session.Session
	if body.EventID != nil {
		rec, err := h.Events.GetByID(c.Request().Context(), *body.EventID)
		if err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load event"})
		}
		if rec.OrganizerID != "" && rec.OrganizerID != userID {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
		s = session.NewFromRecord(userID, *rec)
	} else {
		s = session.New(userID)
	}

	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusCreated, viewOf(s))
}

// GetSession handles GET /v1/wizard/sessions/:id and returns the current
// wizard state and step.
func (h *WizardHandler) GetSession(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	return c.JSON(http.StatusOK, viewOf(s))
}

// DeleteSession handles DELETE /v1/wizard/sessions/:id and abandons the
// wizard.  Persisted drafts are untouched.
func (h *WizardHandler) DeleteSession(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	if err := h.Sessions.Delete(c.Request().Context(), s.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete session"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Dispatch handles POST /v1/wizard/sessions/:id/actions.  The body names an
// action and carries its payload; identity and lifecycle fields are
// server-managed and rejected here even though the reducer knows them.
func (h *WizardHandler) Dispatch(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	var body struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	switch body.Type {
	case wizard.ActionSetEventID, wizard.ActionSetOrganizerID, wizard.ActionSetStatus:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "action is server-managed"})
	}
	action, err := wizard.DecodeAction(body.Type, body.Payload)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	s.Dispatch(action)
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusOK, viewOf(s))
}

// AddShowtime handles POST /v1/wizard/sessions/:id/showtimes and appends a
// blank showtime with a freshly issued code.
func (h *WizardHandler) AddShowtime(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	next := append(append([]wizard.Showtime{}, s.State.Showtimes...), wizard.Showtime{
		Code: s.Codes.NextShowtime(),
	})
	s.Dispatch(wizard.SetShowtimes{Showtimes: next})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusCreated, viewOf(s))
}

// RemoveShowtime handles DELETE /v1/wizard/sessions/:id/showtimes/:code.
// Allocations referencing the removed showtime are dropped with it so the
// allocation matrix never carries rows for a showtime that no longer
// exists.
func (h *WizardHandler) RemoveShowtime(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	code := c.Param("code")
	next := make([]wizard.Showtime, 0, len(s.State.Showtimes))
	for _, st := range s.State.Showtimes {
		if st.Code != code {
			next = append(next, st)
		}
	}
	if len(next) == len(s.State.Showtimes) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "showtime not found"})
	}
	allocs := make([]wizard.Allocation, 0, len(s.State.Allocations))
	for _, a := range s.State.Allocations {
		if a.ShowtimeCode != code {
			allocs = append(allocs, a)
		}
	}
	s.Dispatch(wizard.SetShowtimes{Showtimes: next})
	s.Dispatch(wizard.SetAllocations{Allocations: allocs})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusOK, viewOf(s))
}

// AddTicketType handles POST /v1/wizard/sessions/:id/ticket-types.
func (h *WizardHandler) AddTicketType(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	next := append(append([]wizard.TicketType{}, s.State.TicketTypes...), wizard.TicketType{
		Code: s.Codes.NextTicketType(),
	})
	s.Dispatch(wizard.SetTicketTypes{TicketTypes: next})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusCreated, viewOf(s))
}

// RemoveTicketType handles DELETE /v1/wizard/sessions/:id/ticket-types/:code.
// Allocations for the removed type are dropped; ticket details that still
// reference it are left in place and surface as a step-3 validation
// failure, pointing the organizer at the row to fix.
func (h *WizardHandler) RemoveTicketType(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	code := c.Param("code")
	next := make([]wizard.TicketType, 0, len(s.State.TicketTypes))
	for _, tt := range s.State.TicketTypes {
		if tt.Code != code {
			next = append(next, tt)
		}
	}
	if len(next) == len(s.State.TicketTypes) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "ticket type not found"})
	}
	allocs := make([]wizard.Allocation, 0, len(s.State.Allocations))
	for _, a := range s.State.Allocations {
		if a.TicketTypeCode != code {
			allocs = append(allocs, a)
		}
	}
	s.Dispatch(wizard.SetTicketTypes{TicketTypes: next})
	s.Dispatch(wizard.SetAllocations{Allocations: allocs})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusOK, viewOf(s))
}

// AddTicketDetail handles POST /v1/wizard/sessions/:id/ticket-details.
func (h *WizardHandler) AddTicketDetail(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	next := append(append([]wizard.TicketDetail{}, s.State.TicketDetails...), wizard.TicketDetail{
		Code: s.Codes.NextTicketDetail(),
	})
	s.Dispatch(wizard.SetTicketDetails{TicketDetails: next})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusCreated, viewOf(s))
}

// RemoveTicketDetail handles DELETE /v1/wizard/sessions/:id/ticket-details/:code.
func (h *WizardHandler) RemoveTicketDetail(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	code := c.Param("code")
	next := make([]wizard.TicketDetail, 0, len(s.State.TicketDetails))
	for _, td := range s.State.TicketDetails {
		if td.Code != code {
			next = append(next, td)
		}
	}
	if len(next) == len(s.State.TicketDetails) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "ticket detail not found"})
	}
	s.Dispatch(wizard.SetTicketDetails{TicketDetails: next})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusOK, viewOf(s))
}

// SetAllocation handles PUT /v1/wizard/sessions/:id/allocations and writes
// one cell of the showtime × ticket-type matrix.
func (h *WizardHandler) SetAllocation(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	var body struct {
		ShowtimeCode   string `json:"showtimeCode"`
		TicketTypeCode string `json:"ticketTypeCode"`
		Quantity       int    `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.ShowtimeCode == "" || body.TicketTypeCode == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "showtimeCode and ticketTypeCode are required"})
	}
	if body.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "quantity must not be negative"})
	}
	next := wizard.SetAllocation(s.State, body.ShowtimeCode, body.TicketTypeCode, body.Quantity)
	s.Dispatch(wizard.SetAllocations{Allocations: next})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"showtimeCode":   body.ShowtimeCode,
		"ticketTypeCode": body.TicketTypeCode,
		"quantity":       wizard.GetAllocation(s.State, body.ShowtimeCode, body.TicketTypeCode),
	})
}

// Advance handles POST /v1/wizard/sessions/:id/advance.  The active step is
// validated; on success the step index moves forward, on failure the
// verdict reason is returned with 422 and the step stays put.
func (h *WizardHandler) Advance(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	res := s.Advance()
	if !res.OK {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"ok":     false,
			"reason": res.Reason,
			"step":   s.Step,
		})
	}
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"ok":       true,
		"step":     s.Step,
		"stepName": wizard.StepNames[s.Step],
	})
}

// Back handles POST /v1/wizard/sessions/:id/back and never validates.
func (h *WizardHandler) Back(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	s.Back()
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store session"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"step":     s.Step,
		"stepName": wizard.StepNames[s.Step],
	})
}

// parseEventID converts an :id path parameter to int64.
func parseEventID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
