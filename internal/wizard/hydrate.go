package wizard

// EventRecord is the shape the persistence service returns when fetching an
// event by id.  It differs from the wizard model: ticket types use
// quota/startSale/endSale, zones are called ticketZones, and allocations
// are nested per showtime with a ticket type reference instead of a flat
// code.  HydrateActions maps all of that back into wizard state.
type EventRecord struct {
	ID          int64              `json:"id"`
	Status      string             `json:"status"`
	OrganizerID string             `json:"organizerId,omitempty"`
	EventCode   string             `json:"eventCode"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	LogoURL     string             `json:"logoUrl"`
	BannerURL   string             `json:"bannerUrl"`
	Venue       *Venue             `json:"venue,omitempty"`
	Organizer   *OrganizerInfo     `json:"organizerInfo,omitempty"`
	Showtimes   []RecordShowtime   `json:"showtimes,omitempty"`
	TicketTypes []RecordTicketType `json:"ticketTypes,omitempty"`
	TicketZones []RecordTicketZone `json:"ticketZones,omitempty"`
	CustomURL   string             `json:"customUrl,omitempty"`
	Privacy     Privacy            `json:"privacy,omitempty"`
	PayoutInfo  *PayoutInfo        `json:"payoutInfo,omitempty"`
	InvoiceInfo *InvoiceInfo       `json:"invoiceInfo,omitempty"`
}

// TicketTypeRef references a ticket type by code inside nested records.
type TicketTypeRef struct {
	Code string `json:"code"`
}

// RecordShowtime is a stored showtime with its nested allocations.
type RecordShowtime struct {
	Code        string             `json:"code"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Allocations []RecordAllocation `json:"allocations,omitempty"`
}

// RecordAllocation is a stored allocation nested under its showtime.
type RecordAllocation struct {
	TicketType TicketTypeRef `json:"ticketType"`
	Quantity   int           `json:"quantity"`
}

// RecordTicketType is a stored ticket type in server vocabulary.
type RecordTicketType struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quota       int     `json:"quota"`
	StartSale   string  `json:"startSale"`
	EndSale     string  `json:"endSale"`
	Description string  `json:"description"`
}

// RecordTicketZone is a stored ticket zone in server vocabulary.
type RecordTicketZone struct {
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	TicketType  TicketTypeRef `json:"ticketType"`
	CheckInTime string        `json:"checkInTime"`
}

// HydrateActions converts a fetched event into the action sequence that
// rebuilds wizard state for editing.  Field renames are applied here
// (quota→maxQuantity, startSale→saleStart, endSale→saleEnd, zone
// name→zoneName) and per-showtime allocations are flattened into the
// wizard's flat allocation list.
func HydrateActions(rec EventRecord) []Action {
	id := rec.ID
	actions := []Action{
		SetEventID{ID: &id},
		SetStatus{Status: rec.Status},
		UpdateBasicInfo{Patch: BasicInfoPatch{
			EventCode:   &rec.EventCode,
			Name:        &rec.Name,
			Category:    &rec.Category,
			Description: &rec.Description,
			LogoURL:     &rec.LogoURL,
			BannerURL:   &rec.BannerURL,
		}},
	}
	if rec.OrganizerID != "" {
		actions = append(actions, SetOrganizerID{ID: rec.OrganizerID})
	}
	if rec.Venue != nil {
		v := *rec.Venue
		actions = append(actions, UpdateVenue{Patch: VenuePatch{
			Name:          &v.Name,
			Province:      &v.Province,
			District:      &v.District,
			Ward:          &v.Ward,
			StreetAddress: &v.StreetAddress,
		}})
	}
	if rec.Organizer != nil {
		o := *rec.Organizer
		actions = append(actions, UpdateOrganizerInfo{Patch: OrganizerInfoPatch{
			OrganizerCode: &o.OrganizerCode,
			OrganizerName: &o.OrganizerName,
			LogoURL:       &o.LogoURL,
			Description:   &o.Description,
			TermsAgreed:   &o.TermsAgreed,
			AccountStatus: &o.AccountStatus,
		}})
	}
	if rec.Showtimes != nil {
		showtimes := make([]Showtime, 0, len(rec.Showtimes))
		allocations := []Allocation{}
		for _, st := range rec.Showtimes {
			showtimes = append(showtimes, Showtime{
				Code:      st.Code,
				StartTime: st.StartTime,
				EndTime:   st.EndTime,
			})
			for _, a := range st.Allocations {
				allocations = append(allocations, Allocation{
					ShowtimeCode:   st.Code,
					TicketTypeCode: a.TicketType.Code,
					Quantity:       a.Quantity,
				})
			}
		}
		actions = append(actions, SetShowtimes{Showtimes: showtimes}, SetAllocations{Allocations: allocations})
	}
	if rec.TicketTypes != nil {
		types := make([]TicketType, 0, len(rec.TicketTypes))
		for _, t := range rec.TicketTypes {
			types = append(types, TicketType{
				Code:        t.Code,
				Name:        t.Name,
				Price:       t.Price,
				MaxQuantity: t.Quota,
				SaleStart:   t.StartSale,
				SaleEnd:     t.EndSale,
				Description: t.Description,
			})
		}
		actions = append(actions, SetTicketTypes{TicketTypes: types})
	}
	if rec.TicketZones != nil {
		details := make([]TicketDetail, 0, len(rec.TicketZones))
		for _, z := range rec.TicketZones {
			details = append(details, TicketDetail{
				Code:           z.Code,
				ZoneName:       z.Name,
				TicketTypeCode: z.TicketType.Code,
				CheckInTime:    z.CheckInTime,
			})
		}
		actions = append(actions, SetTicketDetails{TicketDetails: details})
	}
	if rec.CustomURL != "" {
		url := rec.CustomURL
		privacy := rec.Privacy
		actions = append(actions, UpdateSettings{Patch: SettingsPatch{CustomURL: &url, Privacy: &privacy}})
	}
	if rec.PayoutInfo != nil {
		p := *rec.PayoutInfo
		actions = append(actions, UpdatePayout{Patch: PayoutPatch{
			AccountHolderName: &p.AccountHolderName,
			BankNumber:        &p.BankNumber,
			BankName:          &p.BankName,
		}})
	}
	if rec.InvoiceInfo != nil {
		inv := *rec.InvoiceInfo
		actions = append(actions, UpdateInvoice{Patch: InvoicePatch{
			Enabled:     &inv.Enabled,
			CompanyName: &inv.CompanyName,
			TaxCode:     &inv.TaxCode,
			Address:     &inv.Address,
		}})
	}
	return actions
}
