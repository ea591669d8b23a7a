package invoice

import (
	"time"

	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is one month of billing for an account. Amount is always the sum
// of the MRR of the line-item subscriptions active at the month start; the
// replayer never emits a zero-amount invoice.
type Invoice struct {
	ID          string              `json:"invoice_id"`
	AccountID   string              `json:"account_id"`
	InvoiceDate time.Time           `json:"invoice_date"`
	Amount      decimal.Decimal     `json:"amount"`
	Currency    string              `json:"currency"`
	Status      types.InvoiceStatus `json:"status"`
	LineItems   []string            `json:"line_items"`
}

func (i *Invoice) Validate() error {
	if err := i.Status.Validate(); err != nil {
		return err
	}
	if !i.Amount.IsPositive() {
		return ierr.NewError("non positive invoice amount").
			WithHint("invoices are only emitted for months with billable MRR").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"amount":     i.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if len(i.LineItems) == 0 {
		return ierr.NewError("invoice without line items").
			WithHint("a billable month always has at least one contributing product").
			Mark(ierr.ErrValidation)
	}
	return nil
}
