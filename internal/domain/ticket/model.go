package ticket

import (
	"time"

	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/shopspring/decimal"
)

// SupportTicket is one support interaction for an account. ResolvedAt and
// SatisfactionScore are set together: both present when the ticket is
// resolved, both absent when it is still open or escalated.
type SupportTicket struct {
	ID                string               `json:"ticket_id"`
	AccountID         string               `json:"account_id"`
	CreatedAt         time.Time            `json:"created_at"`
	ResolvedAt        *time.Time           `json:"resolved_at,omitempty"`
	Priority          types.TicketPriority `json:"priority"`
	Category          string               `json:"category"`
	Status            types.TicketStatus   `json:"status"`
	SatisfactionScore *decimal.Decimal     `json:"satisfaction_score,omitempty"`
}

func (t *SupportTicket) Validate() error {
	if err := t.Status.Validate(); err != nil {
		return err
	}
	if err := t.Priority.Validate(); err != nil {
		return err
	}

	if t.Status.IsResolved() {
		if t.ResolvedAt == nil || t.SatisfactionScore == nil {
			return ierr.NewError("resolved ticket missing resolution fields").
				WithHint("resolved tickets carry resolved_at and satisfaction_score").
				WithReportableDetails(map[string]any{"ticket_id": t.ID}).
				Mark(ierr.ErrValidation)
		}
		if t.ResolvedAt.Before(t.CreatedAt) {
			return ierr.NewError("ticket resolved before creation").
				WithHint("resolved_at must not precede created_at").
				WithReportableDetails(map[string]any{"ticket_id": t.ID}).
				Mark(ierr.ErrValidation)
		}
		return nil
	}

	if t.ResolvedAt != nil || t.SatisfactionScore != nil {
		return ierr.NewError("unresolved ticket carries resolution fields").
			WithHint("open and escalated tickets have no resolved_at or satisfaction_score").
			WithReportableDetails(map[string]any{"ticket_id": t.ID}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
