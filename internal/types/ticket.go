package types

import (
	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/samber/lo"
)

// TicketStatus is the resolution state of a support ticket.
type TicketStatus string

const (
	TicketStatusResolved  TicketStatus = "resolved"
	TicketStatusOpen      TicketStatus = "open"
	TicketStatusEscalated TicketStatus = "escalated"
)

func (s TicketStatus) String() string {
	return string(s)
}

// IsResolved reports whether the ticket carries a resolution timestamp and
// a satisfaction score.
func (s TicketStatus) IsResolved() bool {
	return s == TicketStatusResolved
}

func (s TicketStatus) Validate() error {
	allowed := []TicketStatus{
		TicketStatusResolved,
		TicketStatusOpen,
		TicketStatusEscalated,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid ticket status").
			WithHint("Invalid ticket status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TicketPriority maps to an SLA target configured in hours.
type TicketPriority string

const (
	TicketPriorityP1 TicketPriority = "p1"
	TicketPriorityP2 TicketPriority = "p2"
	TicketPriorityP3 TicketPriority = "p3"
	TicketPriorityP4 TicketPriority = "p4"
)

func (p TicketPriority) String() string {
	return string(p)
}

func (p TicketPriority) Validate() error {
	allowed := []TicketPriority{
		TicketPriorityP1,
		TicketPriorityP2,
		TicketPriorityP3,
		TicketPriorityP4,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid ticket priority").
			WithHint("Invalid ticket priority").
			WithReportableDetails(map[string]any{
				"priority":           p,
				"allowed_priorities": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
