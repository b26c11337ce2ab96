package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eventhub/event-wizard/internal/wizard"
)

// Event lifecycle statuses assigned on save.  Approval, cancellation and
// later transitions belong to the reviewing side and are opaque here.
const (
	StatusDraft           = "DRAFT"
	StatusPendingApproval = "PENDING_APPROVAL"
)

// SaveResult is the authoritative identity returned by a successful draft
// save or submission.
type SaveResult struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// EventSummary is a row in organizer-facing event listings.
type EventSummary struct {
	ID        int64  `json:"id"`
	EventCode string `json:"eventCode"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	CustomURL string `json:"customUrl"`
	UpdatedAt string `json:"updatedAt"`
}

// EventRepo persists submission documents.  The full document is stored as
// JSON next to the columns the service queries on (organizer, status,
// custom URL), so the wire shape can evolve without schema churn.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need transactions
// spanning repositories.
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

// EnsureSchema creates the events table when it does not exist yet.  Called
// once at startup.
func (r *EventRepo) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS events (
        id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        organizer_id VARCHAR(64)  NOT NULL,
        event_code   VARCHAR(32)  NOT NULL,
        name         VARCHAR(255) NOT NULL DEFAULT '',
        category     VARCHAR(64)  NOT NULL DEFAULT '',
        status       VARCHAR(32)  NOT NULL DEFAULT 'DRAFT',
        custom_url   VARCHAR(255) NOT NULL DEFAULT '',
        document     JSON         NOT NULL,
        created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        UNIQUE KEY uq_events_event_code (event_code),
        KEY idx_events_organizer (organizer_id, status)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// SaveDraft inserts or updates the event with status DRAFT.
func (r *EventRepo) SaveDraft(ctx context.Context, doc wizard.SubmissionDocument) (SaveResult, error) {
	return r.save(ctx, doc, StatusDraft)
}

// Submit inserts or updates the event with status PENDING_APPROVAL.
func (r *EventRepo) Submit(ctx context.Context, doc wizard.SubmissionDocument) (SaveResult, error) {
	return r.save(ctx, doc, StatusPendingApproval)
}

// save performs the upsert shared by SaveDraft and Submit.  A document
// carrying an eventId updates that row; otherwise a new row is inserted and
// the generated id is returned.  A custom URL already taken by a different
// event yields ErrConflict.
func (r *EventRepo) save(ctx context.Context, doc wizard.SubmissionDocument, status string) (SaveResult, error) {
	if doc.Settings.CustomURL != "" {
		var exclude int64
		if doc.EventID != nil {
			exclude = *doc.EventID
		}
		taken, err := r.CustomURLExists(ctx, doc.Settings.CustomURL, exclude)
		if err != nil {
			return SaveResult{}, err
		}
		if taken {
			return SaveResult{}, fmt.Errorf("custom url %q: %w", doc.Settings.CustomURL, ErrConflict)
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return SaveResult{}, fmt.Errorf("encode document: %w", err)
	}

	if doc.EventID != nil {
		const q = `UPDATE events
                   SET organizer_id = ?, event_code = ?, name = ?, category = ?,
                       status = ?, custom_url = ?, document = ?
                   WHERE id = ?`
		res, err := r.db.ExecContext(ctx, q,
			doc.OrganizerID, doc.EventCode, doc.Name, doc.Category,
			status, doc.Settings.CustomURL, raw, *doc.EventID)
		if err != nil {
			return SaveResult{}, err
		}
		// RowsAffected is 0 both for a missing row and for a no-op update;
		// distinguish with an existence check.
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			var exists bool
			if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = ?)`, *doc.EventID).Scan(&exists); err != nil {
				return SaveResult{}, err
			}
			if !exists {
				return SaveResult{}, ErrEventNotFound
			}
		}
		return SaveResult{ID: *doc.EventID, Status: status}, nil
	}

	const q = `INSERT INTO events (organizer_id, event_code, name, category, status, custom_url, document)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		doc.OrganizerID, doc.EventCode, doc.Name, doc.Category,
		status, doc.Settings.CustomURL, raw)
	if err != nil {
		return SaveResult{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SaveResult{}, err
	}
	return SaveResult{ID: id, Status: status}, nil
}

// GetByID returns the stored event in the external nested shape consumed by
// wizard hydration.  It returns ErrEventNotFound when no row matches.
func (r *EventRepo) GetByID(ctx context.Context, id int64) (*wizard.EventRecord, error) {
	const q = `SELECT id, organizer_id, status, document FROM events WHERE id = ?`
	var (
		rowID       int64
		organizerID string
		status      string
		raw         []byte
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rowID, &organizerID, &status, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	var doc wizard.SubmissionDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %d: %w", rowID, err)
	}
	rec := recordFromDocument(rowID, organizerID, status, doc)
	return &rec, nil
}

// CustomURLExists reports whether another event already claims the given
// custom URL.  excludeID is ignored when zero.
func (r *EventRepo) CustomURLExists(ctx context.Context, url string, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM events WHERE custom_url = ? AND id <> ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, url, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByOrganizer returns summaries of the organizer's events, optionally
// filtered by status, newest first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID, status string) ([]EventSummary, error) {
	q := `SELECT id, event_code, name, category, status, custom_url, updated_at
          FROM events WHERE organizer_id = ?`
	args := []any{organizerID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []EventSummary
	for rows.Next() {
		var e EventSummary
		if err := rows.Scan(&e.ID, &e.EventCode, &e.Name, &e.Category, &e.Status, &e.CustomURL, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		result = []EventSummary{}
	}
	return result, nil
}

// recordFromDocument rebuilds the external nested event shape from a stored
// submission document: flat allocations are grouped under their showtime,
// ticket types switch to quota/startSale/endSale vocabulary, and ticket
// details become ticket zones.  This is the exact inverse of the mapping
// wizard.HydrateActions applies on read.
func recordFromDocument(id int64, organizerID, status string, doc wizard.SubmissionDocument) wizard.EventRecord {
	byShowtime := make(map[string][]wizard.RecordAllocation, len(doc.Showtimes))
	for _, a := range doc.Allocations {
		byShowtime[a.ShowtimeCode] = append(byShowtime[a.ShowtimeCode], wizard.RecordAllocation{
			TicketType: wizard.TicketTypeRef{Code: a.TicketTypeCode},
			Quantity:   a.Quantity,
		})
	}

	showtimes := make([]wizard.RecordShowtime, 0, len(doc.Showtimes))
	for _, st := range doc.Showtimes {
		showtimes = append(showtimes, wizard.RecordShowtime{
			Code:        st.Code,
			StartTime:   st.StartTime,
			EndTime:     st.EndTime,
			Allocations: byShowtime[st.Code],
		})
	}

	types := make([]wizard.RecordTicketType, 0, len(doc.TicketTypes))
	for _, t := range doc.TicketTypes {
		types = append(types, wizard.RecordTicketType{
			Code:        t.Code,
			Name:        t.Name,
			Price:       t.Price,
			Quota:       t.MaxQuantity,
			StartSale:   t.SaleStart,
			EndSale:     t.SaleEnd,
			Description: t.Description,
		})
	}

	zones := make([]wizard.RecordTicketZone, 0, len(doc.TicketDetails))
	for _, d := range doc.TicketDetails {
		zones = append(zones, wizard.RecordTicketZone{
			Code:        d.Code,
			Name:        d.ZoneName,
			TicketType:  wizard.TicketTypeRef{Code: d.TicketTypeCode},
			CheckInTime: d.CheckInTime,
		})
	}

	org := doc.Organizer
	payout := doc.Payout
	invoice := doc.Invoice
	return wizard.EventRecord{
		ID:          id,
		Status:      status,
		OrganizerID: organizerID,
		EventCode:   doc.EventCode,
		Name:        doc.Name,
		Category:    doc.Category,
		Description: doc.Description,
		LogoURL:     doc.LogoURL,
		BannerURL:   doc.BannerURL,
		Venue:       doc.Venue,
		Organizer:   &org,
		Showtimes:   showtimes,
		TicketTypes: types,
		TicketZones: zones,
		CustomURL:   doc.Settings.CustomURL,
		Privacy:     doc.Settings.Privacy,
		PayoutInfo:  &payout,
		InvoiceInfo: &invoice,
	}
}
