// Package session manages wizard sessions: one State plus the active step
// and code counters, keyed by a UUID.  Sessions live in a Store; handlers
// load a session, run wizard operations against it, and put it back.  The
// wizard is single-writer by design: callers serialize operations on one
// session (the UI disables its controls while a save is in flight), so the
// store does not arbitrate concurrent writes to the same id.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/event-wizard/internal/wizard"
)

// Session is one organizer's in-progress wizard.
type Session struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"ownerId"`
	Step      int            `json:"step"`
	State     wizard.State   `json:"state"`
	Codes     wizard.CodeGen `json:"codes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// New creates a fresh session for the given organizer identity.  It seeds
// what the wizard generates once per session: the event code, the organizer
// id and organizer code derived from the identity, and a category coerced
// into the fixed set.
func New(ownerID string) *Session {
	now := time.Now().UTC()
	code := wizard.NewEventCode()
	orgCode := wizard.OrganizerCodeFor(ownerID)
	state := wizard.ApplyAll(wizard.NewState(),
		wizard.UpdateBasicInfo{Patch: wizard.BasicInfoPatch{EventCode: &code}},
		wizard.SetOrganizerID{ID: ownerID},
		wizard.UpdateOrganizerInfo{Patch: wizard.OrganizerInfoPatch{OrganizerCode: &orgCode}},
	)
	return &Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewFromRecord creates a session hydrated from a previously saved event.
// Code counters are seeded past the persisted codes so new entities never
// collide with stale references.
func NewFromRecord(ownerID string, rec wizard.EventRecord) *Session {
	s := New(ownerID)
	s.State = wizard.ApplyAll(s.State, wizard.HydrateActions(rec)...)
	s.State = coerceCategory(s.State)
	s.Codes.SeedFrom(s.State)
	return s
}

// Dispatch applies one action to the session state.
func (s *Session) Dispatch(a wizard.Action) {
	s.State = coerceCategory(wizard.Apply(s.State, a))
	s.UpdatedAt = time.Now().UTC()
}

// Advance validates the active step and moves forward when it passes.  The
// review step is terminal; advancing from it is rejected with an OK=false
// result rather than running off the end.
func (s *Session) Advance() wizard.Result {
	if s.Step >= wizard.StepReview {
		return wizard.Result{OK: false, Reason: "Already at the final step."}
	}
	res := wizard.ValidateStep(s.State, s.Step)
	if res.OK {
		s.Step++
		s.UpdatedAt = time.Now().UTC()
	}
	return res
}

// Back moves to the previous step without validating.
func (s *Session) Back() {
	if s.Step > 0 {
		s.Step--
		s.UpdatedAt = time.Now().UTC()
	}
}

// coerceCategory forces the category back into the fixed set.  An empty or
// unknown value becomes the set's first member, matching the wizard's
// always-valid-category invariant.
func coerceCategory(st wizard.State) wizard.State {
	if wizard.ValidCategory(st.BasicInfo.Category) {
		return st
	}
	def := wizard.Categories[0]
	return wizard.Apply(st, wizard.UpdateBasicInfo{Patch: wizard.BasicInfoPatch{Category: &def}})
}
