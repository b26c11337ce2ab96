package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/event-wizard/internal/terms"
)

// GetTerms handles GET /v1/terms and returns the text the organizer step
// displays next to the agreement checkbox.
func (h *WizardHandler) GetTerms(c echo.Context) error {
	text, err := h.Terms.Current(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load terms"})
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

// UpdateTerms handles PUT /v1/admin/terms.  Requires the ADMIN role (route
// middleware) and a provider that supports administrative updates.
func (h *WizardHandler) UpdateTerms(c echo.Context) error {
	updater, ok := h.Terms.(terms.Updater)
	if !ok {
		return c.JSON(http.StatusNotImplemented, map[string]string{"error": "terms are read-only in this deployment"})
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Text) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}
	if err := updater.Update(c.Request().Context(), body.Text); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update terms"})
	}
	return c.NoContent(http.StatusNoContent)
}
