package wizard

import "strings"

// Wizard steps in order.  Advancing past a step requires its validation to
// pass; StepReview is terminal and has no forward validation.
const (
	StepBasicInfo = iota
	StepOrganizer
	StepShowtimes
	StepTickets
	StepPayout
	StepReview

	// StepCount is the number of wizard steps.
	StepCount
)

// StepNames are the display titles of the wizard steps, index-aligned with
// the step constants.
var StepNames = []string{
	"Event Basic Information",
	"Organizer Information",
	"Showtimes & Ticket Configuration",
	"Ticket Creation & Mapping",
	"Payment & Invoice Information",
	"Review & Submit",
}

// Result is a validation verdict.  When OK is false, Reason carries a
// human-readable explanation for the user.
type Result struct {
	OK     bool
	Reason string
}

func pass() Result         { return Result{OK: true} }
func fail(r string) Result { return Result{OK: false, Reason: r} }

// ValidateStep checks whether the user may advance past the given step.
// Rules are evaluated in order and the first failure wins.  The check is a
// pure read over the state; it never mutates anything.  Steps outside the
// validated range (including the terminal review step) always pass.
func ValidateStep(s State, step int) Result {
	switch step {
	case StepBasicInfo:
		return validateBasicInfo(s)
	case StepOrganizer:
		return validateOrganizer(s)
	case StepShowtimes:
		return validateShowtimes(s)
	case StepTickets:
		return validateTickets(s)
	case StepPayout:
		return validatePayout(s)
	}
	return pass()
}

// ValidateThrough runs every step before the given one (exclusive) and
// returns the first failure.  Submit uses it to re-check the whole wizard.
func ValidateThrough(s State, step int) Result {
	for i := 0; i < step && i < StepReview; i++ {
		if res := ValidateStep(s, i); !res.OK {
			return res
		}
	}
	return pass()
}

func validateBasicInfo(s State) Result {
	if strings.TrimSpace(s.BasicInfo.Name) == "" || s.BasicInfo.Category == "" {
		return fail("Event name and category are required.")
	}
	if s.Format() != FormatOnline && !s.BasicInfo.Venue.Complete() {
		return fail("Complete all location fields for offline events.")
	}
	return pass()
}

func validateOrganizer(s State) Result {
	if strings.TrimSpace(s.OrganizerInfo.OrganizerName) == "" {
		return fail("Organizer name is required.")
	}
	if !s.OrganizerInfo.TermsAgreed {
		return fail("You must accept the terms agreement.")
	}
	return pass()
}

func validateShowtimes(s State) Result {
	if len(s.Showtimes) == 0 {
		return fail("Add at least one showtime.")
	}
	if len(s.TicketTypes) == 0 {
		return fail("Add at least one ticket type.")
	}
	for _, st := range s.Showtimes {
		// Times are minute-precision local date-time strings, so the
		// lexicographic order matches the chronological one.
		if st.StartTime == "" || st.EndTime == "" || st.StartTime >= st.EndTime {
			return fail("Each showtime must have valid start and end time.")
		}
	}
	for _, tt := range s.TicketTypes {
		if strings.TrimSpace(tt.Name) == "" || tt.Price <= 0 || tt.MaxQuantity <= 0 {
			return fail("Ticket types require name, price, and max quantity.")
		}
	}
	return pass()
}

func validateTickets(s State) Result {
	if len(s.TicketDetails) == 0 {
		return fail("Add at least one ticket detail.")
	}
	known := make(map[string]bool, len(s.TicketTypes))
	for _, tt := range s.TicketTypes {
		known[tt.Code] = true
	}
	for _, td := range s.TicketDetails {
		if strings.TrimSpace(td.ZoneName) == "" || td.TicketTypeCode == "" {
			return fail("Ticket details require zone name and ticket type.")
		}
		// A detail can outlive the ticket type it referenced if the type was
		// removed on step 2; reject the dangling reference instead of
		// letting it reach the submission document.
		if !known[td.TicketTypeCode] {
			return fail("Ticket detail " + td.Code + " references a removed ticket type.")
		}
	}
	hasAllocation := false
	for _, a := range s.Allocations {
		if a.Quantity > 0 {
			hasAllocation = true
			break
		}
	}
	if !hasAllocation {
		return fail("Allocate quantities for ticket types per showtime.")
	}
	return pass()
}

func validatePayout(s State) Result {
	p := s.PayoutInfo
	if strings.TrimSpace(p.AccountHolderName) == "" || strings.TrimSpace(p.BankNumber) == "" || strings.TrimSpace(p.BankName) == "" {
		return fail("All payout information (account holder, bank number, bank name) is required.")
	}
	inv := s.InvoiceInfo
	if inv.Enabled {
		if strings.TrimSpace(inv.CompanyName) == "" || strings.TrimSpace(inv.TaxCode) == "" || strings.TrimSpace(inv.Address) == "" {
			return fail("All invoice information is required when invoices are enabled.")
		}
	}
	return pass()
}
