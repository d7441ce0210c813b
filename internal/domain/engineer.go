package domain

import "time"

// Engineer is a field engineer eligible for ticket assignment.
type Engineer struct {
	ID        string
	FullName  string
	IsActive  bool
	CreatedAt time.Time
}

// EngineerLoad pairs an engineer with its derived open-ticket count. The
// count is always computed from ticket state, never stored.
type EngineerLoad struct {
	Engineer      Engineer
	ActiveTickets int
}
