package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/event-wizard/internal/repository"
	"github.com/eventhub/event-wizard/internal/session"
	"github.com/eventhub/event-wizard/internal/terms"
	"github.com/eventhub/event-wizard/internal/wizard"
)

func newTestHandler() (*WizardHandler, *session.MemoryStore) {
	store := session.NewMemoryStore()
	h := NewWizardHandler(store, repository.NewEventRepo(nil), terms.NewStatic("test terms"))
	return h, store
}

// newContext builds an echo context for a request already past the JWT
// middleware, with the authenticated user id set.
func newContext(e *echo.Echo, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func seedSession(t *testing.T, store *session.MemoryStore, ownerID string) *session.Session {
	t.Helper()
	s := session.New(ownerID)
	require.NoError(t, store.Put(context.Background(), s))
	return s
}

func withSessionID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) sessionView {
	t.Helper()
	var v sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestCreateSession_Blank(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions", "", "user-1")
	require.NoError(t, h.CreateSession(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	v := decodeView(t, rec)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, 0, v.Step)
	assert.Equal(t, wizard.StepNames[0], v.StepName)
	assert.True(t, strings.HasPrefix(v.State.BasicInfo.EventCode, "EVT-"))
	assert.Equal(t, "user-1", v.State.OrganizerID)
}

func TestCreateSession_RequiresIdentity(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions", "", "")
	require.NoError(t, h.CreateSession(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSession_OwnershipEnforced(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	c, rec := newContext(e, http.MethodGet, "/v1/wizard/sessions/"+s.ID, "", "user-2")
	withSessionID(c, s.ID)
	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newContext(e, http.MethodGet, "/v1/wizard/sessions/"+s.ID, "", "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	c, rec := newContext(e, http.MethodGet, "/v1/wizard/sessions/missing", "", "user-1")
	withSessionID(c, "missing")
	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDispatch_AppliesPatch(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	body := `{"type":"UPDATE_BASIC_INFO","payload":{"name":"City Music Night","category":"Music"}}`
	c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions/"+s.ID+"/actions", body, "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.Dispatch(c))

	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	assert.Equal(t, "City Music Night", v.State.BasicInfo.Name)
	assert.Equal(t, "Music", v.State.BasicInfo.Category)

	stored, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "City Music Night", stored.State.BasicInfo.Name)
}

func TestDispatch_RejectsServerManagedActions(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	for _, typ := range []string{wizard.ActionSetEventID, wizard.ActionSetOrganizerID, wizard.ActionSetStatus} {
		body := `{"type":"` + typ + `","payload":{}}`
		c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions/"+s.ID+"/actions", body, "user-1")
		withSessionID(c, s.ID)
		require.NoError(t, h.Dispatch(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, typ)
	}
}

func TestDispatch_UnknownActionRejected(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions/"+s.ID+"/actions", `{"type":"NOT_AN_ACTION"}`, "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.Dispatch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddShowtime_IssuesSequentialCodes(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	for i, want := range []string{"ST-001", "ST-002"} {
		c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions/"+s.ID+"/showtimes", "", "user-1")
		withSessionID(c, s.ID)
		require.NoError(t, h.AddShowtime(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		v := decodeView(t, rec)
		require.Len(t, v.State.Showtimes, i+1)
		assert.Equal(t, want, v.State.Showtimes[i].Code)
	}
}

func TestRemoveShowtime_CascadesAllocations(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")
	s.Dispatch(wizard.SetShowtimes{Showtimes: []wizard.Showtime{{Code: "ST-001"}, {Code: "ST-002"}}})
	s.Dispatch(wizard.SetAllocations{Allocations: []wizard.Allocation{
		{ShowtimeCode: "ST-001", TicketTypeCode: "TT-001", Quantity: 10},
		{ShowtimeCode: "ST-002", TicketTypeCode: "TT-001", Quantity: 20},
	}})
	require.NoError(t, store.Put(context.Background(), s))

	c, rec := newContext(e, http.MethodDelete, "/v1/wizard/sessions/"+s.ID+"/showtimes/ST-001", "", "user-1")
	c.SetParamNames("id", "code")
	c.SetParamValues(s.ID, "ST-001")
	require.NoError(t, h.RemoveShowtime(c))

	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	require.Len(t, v.State.Showtimes, 1)
	assert.Equal(t, "ST-002", v.State.Showtimes[0].Code)
	require.Len(t, v.State.Allocations, 1)
	assert.Equal(t, "ST-002", v.State.Allocations[0].ShowtimeCode)
}

func TestRemoveShowtime_UnknownCode(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	c, rec := newContext(e, http.MethodDelete, "/v1/wizard/sessions/"+s.ID+"/showtimes/ST-009", "", "user-1")
	c.SetParamNames("id", "code")
	c.SetParamValues(s.ID, "ST-009")
	require.NoError(t, h.RemoveShowtime(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveTicketType_CascadesAllocationsButKeepsDetails(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")
	s.Dispatch(wizard.SetTicketTypes{TicketTypes: []wizard.TicketType{{Code: "TT-001", Name: "GA", Price: 50, MaxQuantity: 10}}})
	s.Dispatch(wizard.SetTicketDetails{TicketDetails: []wizard.TicketDetail{{Code: "TK-001", ZoneName: "Floor", TicketTypeCode: "TT-001"}}})
	s.Dispatch(wizard.SetAllocations{Allocations: []wizard.Allocation{{ShowtimeCode: "ST-001", TicketTypeCode: "TT-001", Quantity: 10}}})
	require.NoError(t, store.Put(context.Background(), s))

	c, rec := newContext(e, http.MethodDelete, "/v1/wizard/sessions/"+s.ID+"/ticket-types/TT-001", "", "user-1")
	c.SetParamNames("id", "code")
	c.SetParamValues(s.ID, "TT-001")
	require.NoError(t, h.RemoveTicketType(c))

	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	assert.Empty(t, v.State.TicketTypes)
	assert.Empty(t, v.State.Allocations)
	// the dangling detail survives and is caught by step validation instead
	require.Len(t, v.State.TicketDetails, 1)
	res := wizard.ValidateStep(v.State, wizard.StepTickets)
	assert.False(t, res.OK)
}

func TestSetAllocation_ValidatesBody(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	c, rec := newContext(e, http.MethodPut, "/v1/wizard/sessions/"+s.ID+"/allocations", `{"ticketTypeCode":"TT-001","quantity":5}`, "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.SetAllocation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(e, http.MethodPut, "/v1/wizard/sessions/"+s.ID+"/allocations", `{"showtimeCode":"ST-001","ticketTypeCode":"TT-001","quantity":-1}`, "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.SetAllocation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetAllocation_WritesOneCell(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	c, rec := newContext(e, http.MethodPut, "/v1/wizard/sessions/"+s.ID+"/allocations", `{"showtimeCode":"ST-001","ticketTypeCode":"TT-001","quantity":30}`, "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.SetAllocation(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		ShowtimeCode   string `json:"showtimeCode"`
		TicketTypeCode string `json:"ticketTypeCode"`
		Quantity       int    `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 30, out.Quantity)

	stored, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, wizard.GetAllocation(stored.State, "ST-001", "TT-001"))
}

func TestAdvance_FailureKeepsStep(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions/"+s.ID+"/advance", "", "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.Advance(c))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var out struct {
		OK     bool   `json:"ok"`
		Reason string `json:"reason"`
		Step   int    `json:"step"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.OK)
	assert.NotEmpty(t, out.Reason)
	assert.Equal(t, 0, out.Step)
}

func TestAdvanceAndBack_MoveTheStep(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")
	s.Dispatch(wizard.UpdateBasicInfo{Patch: wizard.BasicInfoPatch{
		Name:     ptr("Webinar"),
		Category: ptr("Online"),
	}})
	require.NoError(t, store.Put(context.Background(), s))

	c, rec := newContext(e, http.MethodPost, "/v1/wizard/sessions/"+s.ID+"/advance", "", "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.Advance(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		OK       bool   `json:"ok"`
		Step     int    `json:"step"`
		StepName string `json:"stepName"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.OK)
	assert.Equal(t, 1, out.Step)
	assert.Equal(t, wizard.StepNames[1], out.StepName)

	c, rec = newContext(e, http.MethodPost, "/v1/wizard/sessions/"+s.ID+"/back", "", "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.Back(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Step)
}

func TestDeleteSession(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()
	s := seedSession(t, store, "user-1")

	c, rec := newContext(e, http.MethodDelete, "/v1/wizard/sessions/"+s.ID, "", "user-1")
	withSessionID(c, s.ID)
	require.NoError(t, h.DeleteSession(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := store.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }
