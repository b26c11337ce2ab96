package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/event-wizard/internal/queue"
	"github.com/eventhub/event-wizard/internal/repository"
	queue_publisher "github.com/eventhub/event-wizard/internal/service"
	"github.com/eventhub/event-wizard/internal/session"
	"github.com/eventhub/event-wizard/internal/wizard"
)

// SaveDraft handles POST /v1/wizard/sessions/:id/draft.  The document is
// assembled from current state — no validation, a half-finished wizard is a
// legitimate draft — and persisted with status DRAFT.  Only on success are
// the returned id and status folded back into the session; a failed save
// leaves the state exactly as it was.
func (h *WizardHandler) SaveDraft(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	doc := wizard.BuildPayload(s.State)
	doc.OrganizerID = s.OwnerID // identity comes from the token, not the client

	result, err := h.Events.SaveDraft(c.Request().Context(), doc)
	if err != nil {
		return h.saveError(c, err)
	}
	h.foldResult(c, s, result)
	return c.JSON(http.StatusOK, result)
}

// Submit handles POST /v1/wizard/sessions/:id/submit.  Every wizard step is
// re-validated first; the submission is rejected with the first failing
// reason.  On success the event lands with status PENDING_APPROVAL and an
// EventSubmittedEvent is published best-effort.
func (h *WizardHandler) Submit(c echo.Context) error {
	s := h.loadOwnedSession(c)
	if s == nil {
		return nil
	}
	if res := wizard.ValidateThrough(s.State, wizard.StepReview); !res.OK {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"ok":     false,
			"reason": res.Reason,
		})
	}
	doc := wizard.BuildPayload(s.State)
	doc.OrganizerID = s.OwnerID

	result, err := h.Events.Submit(c.Request().Context(), doc)
	if err != nil {
		return h.saveError(c, err)
	}
	h.foldResult(c, s, result)

	// Downstream consumers (approval inbox, notifications) learn about the
	// submission over the broker.  A broker outage must not undo a
	// submission that is already persisted, so failures are only logged.
	ev := queue.EventSubmittedEvent{
		EventID:       result.ID,
		OrganizerID:   s.OwnerID,
		EventCode:     doc.EventCode,
		Name:          doc.Name,
		Category:      doc.Category,
		Status:        result.Status,
		ShowtimeCount: len(doc.Showtimes),
		TicketTypes:   len(doc.TicketTypes),
		SubmittedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishEventSubmitted(c.Request().Context(), ev); err != nil {
		log.Printf("submit: publish event failed for event_id=%d: %v", result.ID, err)
	}

	return c.JSON(http.StatusOK, result)
}

// foldResult applies the authoritative id and status to the session.  A
// failed session write is logged but does not fail the request: the event
// row is already persisted and the next save reconciles the session.
func (h *WizardHandler) foldResult(c echo.Context, s *session.Session, result repository.SaveResult) {
	id := result.ID
	s.Dispatch(wizard.SetEventID{ID: &id})
	s.Dispatch(wizard.SetStatus{Status: result.Status})
	if err := h.Sessions.Put(c.Request().Context(), s); err != nil {
		log.Printf("save: store session %s failed: %v", s.ID, err)
	}
}

// saveError maps repository failures onto HTTP responses.
func (h *WizardHandler) saveError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": "custom url already in use"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save event"})
}
