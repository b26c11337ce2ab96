package wizard

// SubmissionDocument is the wire shape accepted by the persistence service
// for both draft saves and submissions.  BuildPayload is the single source
// of truth for this shape: a field added to the entity model reaches the
// server only if it is threaded through here.
type SubmissionDocument struct {
	EventID       *int64         `json:"eventId,omitempty"`
	OrganizerID   string         `json:"organizerId,omitempty"`
	EventCode     string         `json:"eventCode"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	Description   string         `json:"description"`
	LogoURL       string         `json:"logoUrl"`
	BannerURL     string         `json:"bannerUrl"`
	Venue         *Venue         `json:"venue"`
	Organizer     OrganizerInfo  `json:"organizer"`
	Showtimes     []Showtime     `json:"showtimes"`
	TicketTypes   []TicketType   `json:"ticketTypes"`
	TicketDetails []TicketDetail `json:"ticketDetails"`
	Allocations   []Allocation   `json:"allocations"`
	Settings      Settings       `json:"settings"`
	Payout        PayoutInfo     `json:"payout"`
	Invoice       InvoiceInfo    `json:"invoice"`
}

// BuildPayload assembles the submission document from the current state.
// It is total: it never fails, even on a half-filled wizard, so it can be
// used for draft saves at any step.  Two transformations apply:
//
//   - venue is re-derived from the current category: online events always
//     submit a null venue no matter what was typed on step 0;
//   - non-empty showtime times get a ":00" seconds suffix, up-converting
//     the minute-precision wizard strings to the seconds precision the
//     server stores.  Empty times pass through unchanged.
//
// Everything else is projected field for field.
func BuildPayload(s State) SubmissionDocument {
	var venue *Venue
	if s.Format() != FormatOnline {
		v := s.BasicInfo.Venue
		venue = &v
	}

	showtimes := make([]Showtime, len(s.Showtimes))
	for i, st := range s.Showtimes {
		showtimes[i] = Showtime{
			Code:      st.Code,
			StartTime: withSeconds(st.StartTime),
			EndTime:   withSeconds(st.EndTime),
		}
	}

	return SubmissionDocument{
		EventID:       s.EventID,
		OrganizerID:   s.OrganizerID,
		EventCode:     s.BasicInfo.EventCode,
		Name:          s.BasicInfo.Name,
		Category:      s.BasicInfo.Category,
		Description:   s.BasicInfo.Description,
		LogoURL:       s.BasicInfo.LogoURL,
		BannerURL:     s.BasicInfo.BannerURL,
		Venue:         venue,
		Organizer:     s.OrganizerInfo,
		Showtimes:     showtimes,
		TicketTypes:   copyList(s.TicketTypes),
		TicketDetails: copyList(s.TicketDetails),
		Allocations:   copyList(s.Allocations),
		Settings:      s.Settings,
		Payout:        s.PayoutInfo,
		Invoice:       s.InvoiceInfo,
	}
}

// withSeconds appends ":00" to a non-empty minute-precision time string.
func withSeconds(t string) string {
	if t == "" {
		return ""
	}
	return t + ":00"
}
