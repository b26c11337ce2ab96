package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAllocation_InsertsThenUpdates(t *testing.T) {
	s := NewState()

	list := SetAllocation(s, "ST-001", "TT-001", 10)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].Quantity)

	s = Apply(s, SetAllocations{Allocations: list})
	list = SetAllocation(s, "ST-001", "TT-001", 25)
	require.Len(t, list, 1)
	assert.Equal(t, 25, list[0].Quantity)
}

func TestSetAllocation_IdempotentAndUnique(t *testing.T) {
	s := NewState()
	for i := 0; i < 3; i++ {
		s = Apply(s, SetAllocations{Allocations: SetAllocation(s, "ST-001", "TT-001", 30)})
	}
	require.Len(t, s.Allocations, 1)
	assert.Equal(t, 30, s.Allocations[0].Quantity)
}

func TestSetAllocation_PreservesOrder(t *testing.T) {
	s := Apply(NewState(), SetAllocations{Allocations: []Allocation{
		{ShowtimeCode: "ST-001", TicketTypeCode: "TT-001", Quantity: 5},
		{ShowtimeCode: "ST-001", TicketTypeCode: "TT-002", Quantity: 7},
		{ShowtimeCode: "ST-002", TicketTypeCode: "TT-001", Quantity: 9},
	}})

	list := SetAllocation(s, "ST-001", "TT-002", 70)
	require.Len(t, list, 3)
	assert.Equal(t, "TT-001", list[0].TicketTypeCode)
	assert.Equal(t, 70, list[1].Quantity)
	assert.Equal(t, "ST-002", list[2].ShowtimeCode)
}

func TestSetAllocation_DistinctPairsAppend(t *testing.T) {
	s := NewState()
	s = Apply(s, SetAllocations{Allocations: SetAllocation(s, "ST-001", "TT-001", 1)})
	s = Apply(s, SetAllocations{Allocations: SetAllocation(s, "ST-001", "TT-002", 2)})
	s = Apply(s, SetAllocations{Allocations: SetAllocation(s, "ST-002", "TT-001", 3)})

	assert.Len(t, s.Allocations, 3)
}

func TestGetAllocation_AbsentMeansZero(t *testing.T) {
	s := NewState()
	assert.Equal(t, 0, GetAllocation(s, "ST-001", "TT-001"))

	s = Apply(s, SetAllocations{Allocations: SetAllocation(s, "ST-001", "TT-001", 15)})
	assert.Equal(t, 15, GetAllocation(s, "ST-001", "TT-001"))
	assert.Equal(t, 0, GetAllocation(s, "ST-001", "TT-999"))
}
