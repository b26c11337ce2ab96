package wizard

// Apply is the reducer: it takes the current state and one action and
// returns the next state.  The input state is never modified.  Partial
// update actions merge only the non-nil patch fields; set-list actions
// replace the targeted list with a copy of the given slice so later caller
// mutations cannot leak into stored state.  An action outside the known set
// returns the input unchanged.
func Apply(s State, a Action) State {
	switch act := a.(type) {
	case SetEventID:
		s.EventID = act.ID
	case SetOrganizerID:
		s.OrganizerID = act.ID
	case SetStatus:
		s.Status = act.Status
	case UpdateBasicInfo:
		s.BasicInfo = mergeBasicInfo(s.BasicInfo, act.Patch)
	case UpdateVenue:
		s.BasicInfo.Venue = mergeVenue(s.BasicInfo.Venue, act.Patch)
	case UpdateOrganizerInfo:
		s.OrganizerInfo = mergeOrganizerInfo(s.OrganizerInfo, act.Patch)
	case SetShowtimes:
		s.Showtimes = copyList(act.Showtimes)
	case SetTicketTypes:
		s.TicketTypes = copyList(act.TicketTypes)
	case SetTicketDetails:
		s.TicketDetails = copyList(act.TicketDetails)
	case SetAllocations:
		s.Allocations = copyList(act.Allocations)
	case UpdateSettings:
		s.Settings = mergeSettings(s.Settings, act.Patch)
	case UpdatePayout:
		s.PayoutInfo = mergePayout(s.PayoutInfo, act.Patch)
	case UpdateInvoice:
		s.InvoiceInfo = mergeInvoice(s.InvoiceInfo, act.Patch)
	}
	return s
}

// ApplyAll folds a sequence of actions over the state in order.
func ApplyAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Apply(s, a)
	}
	return s
}

func copyList[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func mergeBasicInfo(b BasicInfo, p BasicInfoPatch) BasicInfo {
	if p.EventCode != nil {
		b.EventCode = *p.EventCode
	}
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.LogoURL != nil {
		b.LogoURL = *p.LogoURL
	}
	if p.BannerURL != nil {
		b.BannerURL = *p.BannerURL
	}
	return b
}

func mergeVenue(v Venue, p VenuePatch) Venue {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Province != nil {
		v.Province = *p.Province
	}
	if p.District != nil {
		v.District = *p.District
	}
	if p.Ward != nil {
		v.Ward = *p.Ward
	}
	if p.StreetAddress != nil {
		v.StreetAddress = *p.StreetAddress
	}
	return v
}

func mergeOrganizerInfo(o OrganizerInfo, p OrganizerInfoPatch) OrganizerInfo {
	if p.OrganizerCode != nil {
		o.OrganizerCode = *p.OrganizerCode
	}
	if p.OrganizerName != nil {
		o.OrganizerName = *p.OrganizerName
	}
	if p.LogoURL != nil {
		o.LogoURL = *p.LogoURL
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.TermsAgreed != nil {
		o.TermsAgreed = *p.TermsAgreed
	}
	if p.AccountStatus != nil {
		o.AccountStatus = *p.AccountStatus
	}
	return o
}

func mergeSettings(s Settings, p SettingsPatch) Settings {
	if p.CustomURL != nil {
		s.CustomURL = *p.CustomURL
	}
	if p.Privacy != nil {
		s.Privacy = *p.Privacy
	}
	return s
}

func mergePayout(po PayoutInfo, p PayoutPatch) PayoutInfo {
	if p.AccountHolderName != nil {
		po.AccountHolderName = *p.AccountHolderName
	}
	if p.BankNumber != nil {
		po.BankNumber = *p.BankNumber
	}
	if p.BankName != nil {
		po.BankName = *p.BankName
	}
	return po
}

func mergeInvoice(inv InvoiceInfo, p InvoicePatch) InvoiceInfo {
	if p.Enabled != nil {
		inv.Enabled = *p.Enabled
	}
	if p.CompanyName != nil {
		inv.CompanyName = *p.CompanyName
	}
	if p.TaxCode != nil {
		inv.TaxCode = *p.TaxCode
	}
	if p.Address != nil {
		inv.Address = *p.Address
	}
	return inv
}
