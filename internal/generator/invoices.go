package generator

import (
	"math/rand"

	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/invoice"
	"github.com/novacrm/seedforge/internal/domain/subscription"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/shopspring/decimal"
)

// churnCollectionWindowDays is the tail of a churned account's history in
// which invoices can also void, reflecting collection difficulty near churn.
const churnCollectionWindowDays = 90

// InvoiceReplayer walks each non-trial account's subscription timeline
// month by month and emits one invoice per month with billable MRR. The
// invoice amount is, by construction, the sum of the MRR of its line
// items — this is the referential-integrity guarantee linking the invoice
// table to the subscription table.
type InvoiceReplayer struct {
	cfg *config.Configuration
	rng *rand.Rand
	log *logger.Logger
}

func NewInvoiceReplayer(cfg *config.Configuration, rng *rand.Rand, log *logger.Logger) *InvoiceReplayer {
	return &InvoiceReplayer{cfg: cfg, rng: rng, log: log}
}

func (g *InvoiceReplayer) Generate(accounts []*account.Account, subs []*subscription.Subscription) []*invoice.Invoice {
	byAccount := make(map[string][]*subscription.Subscription, len(accounts))
	for _, s := range subs {
		byAccount[s.AccountID] = append(byAccount[s.AccountID], s)
	}

	var invoices []*invoice.Invoice
	seq := 0
	for _, acct := range accounts {
		if acct.IsTrial() {
			continue
		}
		invoices = append(invoices, g.replayAccount(acct, byAccount[acct.ID], &seq)...)
	}
	return invoices
}

func (g *InvoiceReplayer) replayAccount(acct *account.Account, subs []*subscription.Subscription, seq *int) []*invoice.Invoice {
	rangeEnd := g.cfg.DateRange.End
	voidWindowStart := rangeEnd.AddDate(0, 0, -churnCollectionWindowDays)

	var invoices []*invoice.Invoice
	for month := monthStart(acct.SignupDate); month.Before(rangeEnd); month = month.AddDate(0, 1, 0) {
		amount := decimal.Zero
		var lineItems []string
		for _, sub := range subs {
			if sub.ActiveAt(month) {
				amount = amount.Add(sub.MRRAmount)
				lineItems = append(lineItems, sub.ProductName)
			}
		}
		if !amount.IsPositive() {
			continue
		}

		*seq++

		var status types.InvoiceStatus
		if acct.IsChurned() && month.After(voidWindowStart) {
			status = WeightedChoice(g.rng,
				[]types.InvoiceStatus{types.InvoiceStatusPaid, types.InvoiceStatusOverdue, types.InvoiceStatusVoid},
				[]float64{0.5, 0.3, 0.2})
		} else {
			status = WeightedChoice(g.rng,
				[]types.InvoiceStatus{types.InvoiceStatusPaid, types.InvoiceStatusOverdue},
				[]float64{0.92, 0.08})
		}

		invoices = append(invoices, &invoice.Invoice{
			ID:          types.FormatInvoiceID(*seq),
			AccountID:   acct.ID,
			InvoiceDate: month.AddDate(0, 0, intBetween(g.rng, 0, 3)),
			Amount:      amount,
			Currency:    types.CurrencyUSD,
			Status:      status,
			LineItems:   lineItems,
		})
	}
	return invoices
}
