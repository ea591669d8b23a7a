package generator

import (
	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/events"
	"github.com/novacrm/seedforge/internal/domain/invoice"
	"github.com/novacrm/seedforge/internal/domain/subscription"
	"github.com/novacrm/seedforge/internal/domain/ticket"
	"github.com/novacrm/seedforge/internal/logger"
)

// Dataset holds the five finalized entity collections of one run. Each
// collection is fully materialized before the next stage starts; nothing
// mutates a collection after its stage returns.
type Dataset struct {
	Accounts       []*account.Account
	Subscriptions  []*subscription.Subscription
	Invoices       []*invoice.Invoice
	UsageEvents    []*events.UsageEvent
	SupportTickets []*ticket.SupportTicket
}

// Pipeline wires the five stages over one shared random sequence. The
// stage order below is part of the observable contract: every stage
// consumes draws from the same sequence, so reordering stages changes
// every subsequent draw and therefore the entire output.
type Pipeline struct {
	cfg *config.Configuration
	log *logger.Logger
}

func NewPipeline(cfg *config.Configuration, log *logger.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Run materializes the full dataset. It cannot fail: all randomness is
// bounded by construction once the configuration validates.
func (p *Pipeline) Run() *Dataset {
	rng := NewRand(p.cfg.Seed)

	accounts := NewAccountSynthesizer(p.cfg, rng, p.log).Generate()
	p.log.Infow("accounts synthesized", "count", len(accounts))

	subs := NewSubscriptionDeriver(p.cfg, rng, p.log).Generate(accounts)
	p.log.Infow("subscriptions derived", "count", len(subs))

	invoices := NewInvoiceReplayer(p.cfg, rng, p.log).Generate(accounts, subs)
	p.log.Infow("invoices replayed", "count", len(invoices))

	usageEvents := NewUsageEventSampler(p.cfg, rng, p.log).Generate(accounts)
	p.log.Infow("usage events sampled", "count", len(usageEvents))

	tickets := NewTicketLifecycleGenerator(p.cfg, rng, p.log).Generate(accounts)
	p.log.Infow("support tickets generated", "count", len(tickets))

	return &Dataset{
		Accounts:       accounts,
		Subscriptions:  subs,
		Invoices:       invoices,
		UsageEvents:    usageEvents,
		SupportTickets: tickets,
	}
}
