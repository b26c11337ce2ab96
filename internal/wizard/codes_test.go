package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGen_MonotonicAcrossRemovals(t *testing.T) {
	var g CodeGen

	assert.Equal(t, "ST-001", g.NextShowtime())
	assert.Equal(t, "ST-002", g.NextShowtime())
	// removing ST-002 from the state does not rewind the counter
	assert.Equal(t, "ST-003", g.NextShowtime())

	assert.Equal(t, "TT-001", g.NextTicketType())
	assert.Equal(t, "TK-001", g.NextTicketDetail())
	assert.Equal(t, "TT-002", g.NextTicketType())
}

func TestCodeGen_SeedFrom(t *testing.T) {
	s := NewState()
	s.Showtimes = []Showtime{{Code: "ST-001"}, {Code: "ST-007"}, {Code: "ST-003"}}
	s.TicketTypes = []TicketType{{Code: "TT-002"}}
	s.TicketDetails = []TicketDetail{{Code: "TK-010"}, {Code: "not-a-code"}}

	var g CodeGen
	g.SeedFrom(s)

	assert.Equal(t, "ST-008", g.NextShowtime())
	assert.Equal(t, "TT-003", g.NextTicketType())
	assert.Equal(t, "TK-011", g.NextTicketDetail())
}

func TestCodeGen_SeedFromEmptyState(t *testing.T) {
	var g CodeGen
	g.SeedFrom(NewState())
	assert.Equal(t, "ST-001", g.NextShowtime())
}

func TestNewEventCode_Shape(t *testing.T) {
	code := NewEventCode()
	require.True(t, strings.HasPrefix(code, "EVT-"))
	suffix := strings.TrimPrefix(code, "EVT-")
	assert.Len(t, suffix, 6)
	for _, r := range suffix {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z'), "unexpected rune %q", r)
	}
}

func TestNewEventCode_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		seen[NewEventCode()] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestOrganizerCodeFor(t *testing.T) {
	assert.Equal(t, "ORG-A1B2C3", OrganizerCodeFor("a1b2c3d4-5678"))
	assert.Equal(t, "ORG-AB", OrganizerCodeFor("ab"))
	assert.Equal(t, "ORG-", OrganizerCodeFor(""))
}
