package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/event-wizard/internal/wizard"
)

func storedDocument() wizard.SubmissionDocument {
	s := wizard.NewState()
	s.BasicInfo.Name = "City Music Night"
	s.BasicInfo.Category = "Music"
	s.BasicInfo.EventCode = "EVT-ABC123"
	s.BasicInfo.Venue = wizard.Venue{
		Name: "Opera House", Province: "Ha Noi", District: "Hoan Kiem",
		Ward: "Trang Tien", StreetAddress: "1 Trang Tien",
	}
	s.OrganizerInfo.OrganizerName = "Live Events Co"
	s.OrganizerInfo.TermsAgreed = true
	s.Showtimes = []wizard.Showtime{
		{Code: "ST-001", StartTime: "2024-06-01T19:00", EndTime: "2024-06-01T22:00"},
		{Code: "ST-002", StartTime: "2024-06-02T19:00", EndTime: "2024-06-02T22:00"},
	}
	s.TicketTypes = []wizard.TicketType{
		{Code: "TT-001", Name: "Standard", Price: 100, MaxQuantity: 50, SaleStart: "2024-05-01T00:00", SaleEnd: "2024-05-31T23:59"},
	}
	s.TicketDetails = []wizard.TicketDetail{
		{Code: "TK-001", ZoneName: "Floor", TicketTypeCode: "TT-001", CheckInTime: "18:00"},
	}
	s.Allocations = []wizard.Allocation{
		{ShowtimeCode: "ST-001", TicketTypeCode: "TT-001", Quantity: 30},
		{ShowtimeCode: "ST-002", TicketTypeCode: "TT-001", Quantity: 20},
	}
	s.Settings = wizard.Settings{CustomURL: "city-music-night", Privacy: wizard.PrivacyPublic}
	s.PayoutInfo = wizard.PayoutInfo{AccountHolderName: "Live Events Co", BankNumber: "0123456789", BankName: "VCB"}
	return wizard.BuildPayload(s)
}

func TestRecordFromDocument_GroupsAllocationsByShowtime(t *testing.T) {
	rec := recordFromDocument(42, "user-1", StatusDraft, storedDocument())

	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, "user-1", rec.OrganizerID)
	assert.Equal(t, StatusDraft, rec.Status)

	require.Len(t, rec.Showtimes, 2)
	require.Len(t, rec.Showtimes[0].Allocations, 1)
	assert.Equal(t, "TT-001", rec.Showtimes[0].Allocations[0].TicketType.Code)
	assert.Equal(t, 30, rec.Showtimes[0].Allocations[0].Quantity)
	assert.Equal(t, 20, rec.Showtimes[1].Allocations[0].Quantity)
}

func TestRecordFromDocument_TicketVocabulary(t *testing.T) {
	rec := recordFromDocument(1, "user-1", StatusDraft, storedDocument())

	require.Len(t, rec.TicketTypes, 1)
	tt := rec.TicketTypes[0]
	assert.Equal(t, 50, tt.Quota)
	assert.Equal(t, "2024-05-01T00:00", tt.StartSale)
	assert.Equal(t, "2024-05-31T23:59", tt.EndSale)

	require.Len(t, rec.TicketZones, 1)
	zone := rec.TicketZones[0]
	assert.Equal(t, "TK-001", zone.Code)
	assert.Equal(t, "Floor", zone.Name)
	assert.Equal(t, "TT-001", zone.TicketType.Code)
}

// The stored shape must hydrate back to the state it was assembled from.
func TestRecordFromDocument_RoundTripsThroughHydration(t *testing.T) {
	doc := storedDocument()
	rec := recordFromDocument(42, "user-1", StatusDraft, doc)

	s := wizard.ApplyAll(wizard.NewState(), wizard.HydrateActions(rec)...)

	require.NotNil(t, s.EventID)
	assert.Equal(t, int64(42), *s.EventID)
	assert.Equal(t, doc.Name, s.BasicInfo.Name)
	assert.Equal(t, *doc.Venue, s.BasicInfo.Venue)
	assert.Equal(t, doc.TicketDetails, s.TicketDetails)
	assert.Equal(t, doc.Allocations, s.Allocations)
	assert.Equal(t, doc.Settings, s.Settings)
	assert.Equal(t, doc.Payout, s.PayoutInfo)

	// showtime bounds were stored with seconds; hydration keeps them as-is
	assert.Equal(t, "2024-06-01T19:00:00", s.Showtimes[0].StartTime)
}
