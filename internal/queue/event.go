// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// EventSubmittedEvent is published when an organizer submits an event for
// approval.  It carries enough context for downstream consumers (approval
// inbox, notifications, analytics) to act without querying the primary
// database.
type EventSubmittedEvent struct {
	EventID       int64  `json:"event_id"`
	OrganizerID   string `json:"organizer_id"`
	EventCode     string `json:"event_code"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	ShowtimeCount int    `json:"showtime_count"`
	TicketTypes   int    `json:"ticket_types"`
	SubmittedAt   string `json:"submitted_at"`
}
