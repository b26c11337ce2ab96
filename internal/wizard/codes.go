package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeGen issues ST-/TT-/TK- codes for one wizard session.  Counters are
// monotonic for the life of the session, so removing an entity and adding a
// new one never reuses a code that a stale reference list might still
// carry.  The zero value starts every sequence at 001.
type CodeGen struct {
	ShowtimeSeq     int `json:"showtimeSeq"`
	TicketTypeSeq   int `json:"ticketTypeSeq"`
	TicketDetailSeq int `json:"ticketDetailSeq"`
}

// NextShowtime returns the next showtime code, e.g. ST-001.
func (g *CodeGen) NextShowtime() string {
	g.ShowtimeSeq++
	return fmt.Sprintf("ST-%03d", g.ShowtimeSeq)
}

// NextTicketType returns the next ticket type code, e.g. TT-001.
func (g *CodeGen) NextTicketType() string {
	g.TicketTypeSeq++
	return fmt.Sprintf("TT-%03d", g.TicketTypeSeq)
}

// NextTicketDetail returns the next ticket detail code, e.g. TK-001.
func (g *CodeGen) NextTicketDetail() string {
	g.TicketDetailSeq++
	return fmt.Sprintf("TK-%03d", g.TicketDetailSeq)
}

// SeedFrom advances each counter past the highest numeric suffix already
// present in the state.  Called after hydrating an existing event so newly
// issued codes never collide with persisted ones.
func (g *CodeGen) SeedFrom(s State) {
	for _, st := range s.Showtimes {
		if n := codeNumber(st.Code, "ST-"); n > g.ShowtimeSeq {
			g.ShowtimeSeq = n
		}
	}
	for _, tt := range s.TicketTypes {
		if n := codeNumber(tt.Code, "TT-"); n > g.TicketTypeSeq {
			g.TicketTypeSeq = n
		}
	}
	for _, td := range s.TicketDetails {
		if n := codeNumber(td.Code, "TK-"); n > g.TicketDetailSeq {
			g.TicketDetailSeq = n
		}
	}
}

// codeNumber extracts the numeric suffix of a code with the given prefix,
// or 0 when the code does not match.
func codeNumber(code, prefix string) int {
	if !strings.HasPrefix(code, prefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
