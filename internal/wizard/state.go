// Package wizard implements the event creation wizard core: the aggregate
// state, the closed set of mutating actions and their pure reducer, the
// showtime/ticket-type allocation matrix, per-step validation, and the
// assembly of a submission-ready document.  Nothing in this package touches
// the network or the database; transports and repositories live elsewhere
// and drive this package through actions.
package wizard

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Privacy is the visibility of a published event.
type Privacy string

const (
	PrivacyPublic  Privacy = "PUBLIC"
	PrivacyPrivate Privacy = "PRIVATE"
)

// Categories is the fixed set of event categories the wizard accepts.  The
// first member doubles as the default: whenever a state carries an empty or
// unknown category it is coerced to Categories[0].
var Categories = []string{"Music", "Sports", "Conference", "Exhibition", "Workshop", "Online"}

// Provinces is the fixed province list offered for the venue.  Membership is
// a rendering concern; the model stores whatever string it is given.
var Provinces = []string{
	"Ha Noi",
	"Ho Chi Minh",
	"Da Nang",
	"Hai Phong",
	"Can Tho",
	"An Giang",
	"Binh Duong",
	"Dong Nai",
	"Khanh Hoa",
	"Thanh Hoa",
	"Thua Thien Hue",
}

// Format distinguishes events that need a physical venue from online ones.
// It replaces repeated case-insensitive string compares against "online"
// with a single tagged value derived in one place.
type Format int

const (
	// FormatPhysical requires a fully populated venue.
	FormatPhysical Format = iota
	// FormatOnline never requires venue data; the assembler nulls it out.
	FormatOnline
)

// FormatOf derives the event format from a category string.  The comparison
// is case-insensitive so "Online", "online" and "ONLINE" all map to
// FormatOnline.
func FormatOf(category string) Format {
	if strings.EqualFold(category, "Online") {
		return FormatOnline
	}
	return FormatPhysical
}

// ValidCategory reports whether the given category is a member of the fixed
// category set.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Venue holds the physical location of an event.  All fields are free text;
// Province is expected to be drawn from Provinces when rendered.
type Venue struct {
	Name          string `json:"name"`
	Province      string `json:"province"`
	District      string `json:"district"`
	Ward          string `json:"ward"`
	StreetAddress string `json:"streetAddress"`
}

// Complete reports whether every venue field is non-empty.
func (v Venue) Complete() bool {
	return v.Name != "" && v.Province != "" && v.District != "" && v.Ward != "" && v.StreetAddress != ""
}

// BasicInfo is the first wizard step: identity and presentation of the
// event plus its venue.  EventCode is generated once per session and is
// read-only afterwards.
type BasicInfo struct {
	EventCode   string `json:"eventCode"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	BannerURL   string `json:"bannerUrl"`
	Venue       Venue  `json:"venue"`
}

// OrganizerInfo is the second wizard step.  OrganizerCode is derived from
// the authenticated identity once per session.  TermsAgreed gates step 1.
type OrganizerInfo struct {
	OrganizerCode string `json:"organizerCode"`
	OrganizerName string `json:"organizerName"`
	LogoURL       string `json:"logoUrl"`
	Description   string `json:"description"`
	TermsAgreed   bool   `json:"termsAgreed"`
	AccountStatus string `json:"accountStatus"`
}

// Showtime is one scheduled occurrence of the event.  Times are local
// date-time strings with minute precision ("2006-01-02T15:04"); the
// invariant StartTime < EndTime (lexicographic) is checked at step 2.
type Showtime struct {
	Code      string `json:"code"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// TicketType is a priced class of ticket with a sale window and a quota.
type TicketType struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	MaxQuantity int     `json:"maxQuantity"`
	SaleStart   string  `json:"saleStart"`
	SaleEnd     string  `json:"saleEnd"`
	Description string  `json:"description"`
}

// TicketDetail is a named zone bound to one ticket type.  TicketTypeCode is
// a foreign reference into the ticket type list; integrity is checked at
// validation time, not on mutation.
type TicketDetail struct {
	Code           string `json:"code"`
	ZoneName       string `json:"zoneName"`
	TicketTypeCode string `json:"ticketTypeCode"`
	CheckInTime    string `json:"checkInTime"`
}

// Allocation is the quota of one ticket type available at one showtime.
// The pair (ShowtimeCode, TicketTypeCode) is unique within the list.
type Allocation struct {
	ShowtimeCode   string `json:"showtimeCode"`
	TicketTypeCode string `json:"ticketTypeCode"`
	Quantity       int    `json:"quantity"`
}

// Settings carries the publication options of the event.
type Settings struct {
	CustomURL string  `json:"customUrl"`
	Privacy   Privacy `json:"privacy"`
}

// PayoutInfo is the bank account receiving ticket revenue.
type PayoutInfo struct {
	AccountHolderName string `json:"accountHolderName"`
	BankNumber        string `json:"bankNumber"`
	BankName          string `json:"bankName"`
}

// InvoiceInfo enables VAT invoices; the three text fields are required only
// when Enabled is true.
type InvoiceInfo struct {
	Enabled     bool   `json:"enabled"`
	CompanyName string `json:"companyName"`
	TaxCode     string `json:"taxCode"`
	Address     string `json:"address"`
}

// State is the aggregate root of one wizard session.  It is treated as an
// immutable value: every mutation goes through Apply, which returns a new
// State and leaves the receiver untouched.  Sub-entity lists are only ever
// replaced wholesale, never edited in place.
type State struct {
	EventID     *int64 `json:"eventId,omitempty"`
	OrganizerID string `json:"organizerId,omitempty"`
	Status      string `json:"status,omitempty"`

	BasicInfo     BasicInfo      `json:"basicInfo"`
	OrganizerInfo OrganizerInfo  `json:"organizerInfo"`
	Showtimes     []Showtime     `json:"showtimes"`
	TicketTypes   []TicketType   `json:"ticketTypes"`
	TicketDetails []TicketDetail `json:"ticketDetails"`
	Allocations   []Allocation   `json:"allocations"`
	Settings      Settings       `json:"settings"`
	PayoutInfo    PayoutInfo     `json:"payoutInfo"`
	InvoiceInfo   InvoiceInfo    `json:"invoiceInfo"`
}

// NewState returns the empty wizard state used when no existing event is
// being edited.  Category defaults to the first member of the category set
// and the organizer account status mirrors the verified default of the
// original platform.
func NewState() State {
	return State{
		BasicInfo: BasicInfo{
			Category: Categories[0],
		},
		OrganizerInfo: OrganizerInfo{
			AccountStatus: "Verified",
		},
		Showtimes:     []Showtime{},
		TicketTypes:   []TicketType{},
		TicketDetails: []TicketDetail{},
		Allocations:   []Allocation{},
		Settings: Settings{
			Privacy: PrivacyPublic,
		},
	}
}

// Format returns the event format derived from the current category.
func (s State) Format() Format {
	return FormatOf(s.BasicInfo.Category)
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewEventCode generates a session-unique event code of the form
// EVT-XXXXXX with six uppercase base-36 characters.
func NewEventCode() string {
	var b strings.Builder
	b.WriteString("EVT-")
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed character rather than panic mid-session.
			b.WriteByte('0')
			continue
		}
		b.WriteByte(base36[n.Int64()])
	}
	return b.String()
}

// OrganizerCodeFor derives the organizer code from an identity string:
// "ORG-" plus the first six characters of the identity with hyphens
// stripped, upper-cased.  Short identities yield short codes.
func OrganizerCodeFor(identity string) string {
	cleaned := strings.ReplaceAll(identity, "-", "")
	if len(cleaned) > 6 {
		cleaned = cleaned[:6]
	}
	return "ORG-" + strings.ToUpper(cleaned)
}
