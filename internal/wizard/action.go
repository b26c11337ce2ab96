package wizard

import (
	"encoding/json"
	"fmt"
)

// Action is one member of the closed set of state transitions.  Concrete
// actions are plain data; the reducer in Apply is the only interpreter.
// The marker method keeps the set closed to this package.
type Action interface {
	isAction()
}

// SetEventID records the server-assigned event id after a successful draft
// save or submission.  A nil ID clears the field.
type SetEventID struct {
	ID *int64
}

// SetOrganizerID records the authenticated organizer identity.
type SetOrganizerID struct {
	ID string
}

// SetStatus records the server-side lifecycle status.  The value is opaque
// server vocabulary and is never interpreted by the wizard.
type SetStatus struct {
	Status string
}

// UpdateBasicInfo shallow-merges a partial basic-info patch; nil fields are
// left untouched.
type UpdateBasicInfo struct {
	Patch BasicInfoPatch
}

// UpdateVenue shallow-merges a partial venue patch.
type UpdateVenue struct {
	Patch VenuePatch
}

// UpdateOrganizerInfo shallow-merges a partial organizer patch.
type UpdateOrganizerInfo struct {
	Patch OrganizerInfoPatch
}

// SetShowtimes replaces the showtime list wholesale.
type SetShowtimes struct {
	Showtimes []Showtime
}

// SetTicketTypes replaces the ticket type list wholesale.
type SetTicketTypes struct {
	TicketTypes []TicketType
}

// SetTicketDetails replaces the ticket detail list wholesale.
type SetTicketDetails struct {
	TicketDetails []TicketDetail
}

// SetAllocations replaces the allocation list wholesale.
type SetAllocations struct {
	Allocations []Allocation
}

// UpdateSettings shallow-merges a partial settings patch.
type UpdateSettings struct {
	Patch SettingsPatch
}

// UpdatePayout shallow-merges a partial payout patch.
type UpdatePayout struct {
	Patch PayoutPatch
}

// UpdateInvoice shallow-merges a partial invoice patch.
type UpdateInvoice struct {
	Patch InvoicePatch
}

func (SetEventID) isAction()          {}
func (SetOrganizerID) isAction()      {}
func (SetStatus) isAction()           {}
func (UpdateBasicInfo) isAction()     {}
func (UpdateVenue) isAction()         {}
func (UpdateOrganizerInfo) isAction() {}
func (SetShowtimes) isAction()        {}
func (SetTicketTypes) isAction()      {}
func (SetTicketDetails) isAction()    {}
func (SetAllocations) isAction()      {}
func (UpdateSettings) isAction()      {}
func (UpdatePayout) isAction()        {}
func (UpdateInvoice) isAction()       {}

// BasicInfoPatch carries optional replacements for BasicInfo fields.  The
// venue is patched through UpdateVenue, never here.
type BasicInfoPatch struct {
	EventCode   *string `json:"eventCode"`
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	BannerURL   *string `json:"bannerUrl"`
}

// VenuePatch carries optional replacements for Venue fields.
type VenuePatch struct {
	Name          *string `json:"name"`
	Province      *string `json:"province"`
	District      *string `json:"district"`
	Ward          *string `json:"ward"`
	StreetAddress *string `json:"streetAddress"`
}

// OrganizerInfoPatch carries optional replacements for OrganizerInfo fields.
type OrganizerInfoPatch struct {
	OrganizerCode *string `json:"organizerCode"`
	OrganizerName *string `json:"organizerName"`
	LogoURL       *string `json:"logoUrl"`
	Description   *string `json:"description"`
	TermsAgreed   *bool   `json:"termsAgreed"`
	AccountStatus *string `json:"accountStatus"`
}

// SettingsPatch carries optional replacements for Settings fields.
type SettingsPatch struct {
	CustomURL *string  `json:"customUrl"`
	Privacy   *Privacy `json:"privacy"`
}

// PayoutPatch carries optional replacements for PayoutInfo fields.
type PayoutPatch struct {
	AccountHolderName *string `json:"accountHolderName"`
	BankNumber        *string `json:"bankNumber"`
	BankName          *string `json:"bankName"`
}

// InvoicePatch carries optional replacements for InvoiceInfo fields.
type InvoicePatch struct {
	Enabled     *bool   `json:"enabled"`
	CompanyName *string `json:"companyName"`
	TaxCode     *string `json:"taxCode"`
	Address     *string `json:"address"`
}

// Wire names for each action type, used by DecodeAction when actions arrive
// over HTTP.
const (
	ActionSetEventID          = "SET_EVENT_ID"
	ActionSetOrganizerID      = "SET_ORGANIZER_ID"
	ActionSetStatus           = "SET_STATUS"
	ActionUpdateBasicInfo     = "UPDATE_BASIC_INFO"
	ActionUpdateVenue         = "UPDATE_VENUE"
	ActionUpdateOrganizerInfo = "UPDATE_ORGANIZER_INFO"
	ActionSetShowtimes        = "SET_SHOWTIMES"
	ActionSetTicketTypes      = "SET_TICKET_TYPES"
	ActionSetTicketDetails    = "SET_TICKET_DETAILS"
	ActionSetAllocations      = "SET_ALLOCATIONS"
	ActionUpdateSettings      = "UPDATE_SETTINGS"
	ActionUpdatePayout        = "UPDATE_PAYOUT"
	ActionUpdateInvoice       = "UPDATE_INVOICE"
)

// DecodeAction parses a wire action into its typed form.  The payload shape
// depends on the action name; unknown names are an error at the transport
// boundary even though Apply itself treats unknown actions as no-ops.
func DecodeAction(name string, payload json.RawMessage) (Action, error) {
	switch name {
	case ActionSetEventID:
		var id *int64
		if err := json.Unmarshal(payload, &id); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return SetEventID{ID: id}, nil
	case ActionSetOrganizerID:
		var id string
		if err := json.Unmarshal(payload, &id); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return SetOrganizerID{ID: id}, nil
	case ActionSetStatus:
		var st string
		if err := json.Unmarshal(payload, &st); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return SetStatus{Status: st}, nil
	case ActionUpdateBasicInfo:
		var p BasicInfoPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return UpdateBasicInfo{Patch: p}, nil
	case ActionUpdateVenue:
		var p VenuePatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return UpdateVenue{Patch: p}, nil
	case ActionUpdateOrganizerInfo:
		var p OrganizerInfoPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return UpdateOrganizerInfo{Patch: p}, nil
	case ActionSetShowtimes:
		var list []Showtime
		if err := json.Unmarshal(payload, &list); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return SetShowtimes{Showtimes: list}, nil
	case ActionSetTicketTypes:
		var list []TicketType
		if err := json.Unmarshal(payload, &list); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return SetTicketTypes{TicketTypes: list}, nil
	case ActionSetTicketDetails:
		var list []TicketDetail
		if err := json.Unmarshal(payload, &list); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return SetTicketDetails{TicketDetails: list}, nil
	case ActionSetAllocations:
		var list []Allocation
		if err := json.Unmarshal(payload, &list); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return SetAllocations{Allocations: list}, nil
	case ActionUpdateSettings:
		var p SettingsPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return UpdateSettings{Patch: p}, nil
	case ActionUpdatePayout:
		var p PayoutPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return UpdatePayout{Patch: p}, nil
	case ActionUpdateInvoice:
		var p InvoicePatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return UpdateInvoice{Patch: p}, nil
	}
	return nil, fmt.Errorf("unknown action %q", name)
}
