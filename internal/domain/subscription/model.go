package subscription

import (
	"time"

	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/shopspring/decimal"
)

// Subscription is one row of an account's subscription timeline: the base
// platform product, an upgrade successor, or an add-on. EndDate is nil for
// records that are still open at the dataset boundary.
type Subscription struct {
	ID          string                   `json:"subscription_id"`
	AccountID   string                   `json:"account_id"`
	ProductName string                   `json:"product_name"`
	PlanTier    types.PlanTier           `json:"plan_tier"`
	MRRAmount   decimal.Decimal          `json:"mrr_amount"`
	StartDate   time.Time                `json:"start_date"`
	EndDate     *time.Time               `json:"end_date,omitempty"`
	Status      types.SubscriptionStatus `json:"status"`
}

// ActiveAt reports whether the record accrues MRR at the given instant.
// The interval is [StartDate, EndDate) with a nil EndDate treated as
// unbounded; trial records never bill.
func (s *Subscription) ActiveAt(t time.Time) bool {
	if s.Status == types.SubscriptionStatusTrial {
		return false
	}
	if t.Before(s.StartDate) {
		return false
	}
	if s.EndDate != nil && !t.Before(*s.EndDate) {
		return false
	}
	return true
}

func (s *Subscription) Validate() error {
	if err := s.Status.Validate(); err != nil {
		return err
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return ierr.NewError("subscription ends before it starts").
			WithHint("end_date must not precede start_date").
			WithReportableDetails(map[string]any{
				"subscription_id": s.ID,
				"start_date":      s.StartDate,
				"end_date":        *s.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	if s.MRRAmount.IsNegative() {
		return ierr.NewError("negative mrr amount").
			WithHint("mrr_amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
