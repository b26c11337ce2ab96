package wizard

// SetAllocation returns a new allocation list with the quantity for the
// (showtimeCode, ticketTypeCode) pair set.  An existing record is replaced
// in place, preserving list order so rendered matrices stay stable; a
// missing record is appended.  The result is meant to be applied through a
// SetAllocations action.
func SetAllocation(s State, showtimeCode, ticketTypeCode string, quantity int) []Allocation {
	next := make([]Allocation, len(s.Allocations))
	copy(next, s.Allocations)
	for i, a := range next {
		if a.ShowtimeCode == showtimeCode && a.TicketTypeCode == ticketTypeCode {
			next[i].Quantity = quantity
			return next
		}
	}
	return append(next, Allocation{
		ShowtimeCode:   showtimeCode,
		TicketTypeCode: ticketTypeCode,
		Quantity:       quantity,
	})
}

// GetAllocation returns the allocated quantity for the pair, or 0 when no
// record exists.  Absence means zero, not an error.
func GetAllocation(s State, showtimeCode, ticketTypeCode string) int {
	for _, a := range s.Allocations {
		if a.ShowtimeCode == showtimeCode && a.TicketTypeCode == ticketTypeCode {
			return a.Quantity
		}
	}
	return 0
}
