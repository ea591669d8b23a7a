package generator

import (
	"math/rand"
	"time"

	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/ticket"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/shopspring/decimal"
)

const (
	trialTicketProbability = 0.3
	slaBreachProbability   = 0.15
	unresolvedProbability  = 0.08
	maxTicketsPerAccount   = 25
	onboardingCategory     = "onboarding"
)

// Fixed categorical weights. Each vector aligns with the stock vocabulary
// order; a custom vocabulary of a different length falls back to uniform.
var (
	priorityWeights = []float64{0.05, 0.15, 0.45, 0.35}

	// bug, feature_request, billing, onboarding, how_to, performance
	churnedCategoryWeights = []float64{0.35, 0.10, 0.20, 0.10, 0.10, 0.15}
	healthyCategoryWeights = []float64{0.20, 0.20, 0.15, 0.15, 0.20, 0.10}
)

// TicketLifecycleGenerator emits support tickets whose volume, category
// mix, resolution time and satisfaction all correlate with account health:
// churned accounts file more tickets, skew toward bugs and rate lower.
type TicketLifecycleGenerator struct {
	cfg *config.Configuration
	rng *rand.Rand
	log *logger.Logger
}

func NewTicketLifecycleGenerator(cfg *config.Configuration, rng *rand.Rand, log *logger.Logger) *TicketLifecycleGenerator {
	return &TicketLifecycleGenerator{cfg: cfg, rng: rng, log: log}
}

func (g *TicketLifecycleGenerator) Generate(accounts []*account.Account) []*ticket.SupportTicket {
	var tickets []*ticket.SupportTicket
	seq := 0
	for _, acct := range accounts {
		if acct.IsTrial() {
			if t := g.onboardingTicket(acct, &seq); t != nil {
				tickets = append(tickets, t)
			}
			continue
		}
		tickets = append(tickets, g.accountTickets(acct, &seq)...)
	}
	return tickets
}

// onboardingTicket gives a trial account at most one ticket: an onboarding
// question, always resolved, always rated favorably.
func (g *TicketLifecycleGenerator) onboardingTicket(acct *account.Account, seq *int) *ticket.SupportTicket {
	if g.rng.Float64() >= trialTicketProbability {
		return nil
	}

	*seq++
	created := acct.SignupDate.AddDate(0, 0, intBetween(g.rng, 1, 10))
	resolved := created.Add(time.Duration(intBetween(g.rng, 2, 48)) * time.Hour)
	score := roundScore(floatBetween(g.rng, 3.0, 5.0))

	return &ticket.SupportTicket{
		ID:                types.FormatTicketID(*seq),
		AccountID:         acct.ID,
		CreatedAt:         created,
		ResolvedAt:        &resolved,
		Priority:          types.TicketPriorityP3,
		Category:          onboardingCategory,
		Status:            types.TicketStatusResolved,
		SatisfactionScore: &score,
	}
}

func (g *TicketLifecycleGenerator) accountTickets(acct *account.Account, seq *int) []*ticket.SupportTicket {
	rangeEnd := g.cfg.DateRange.End

	monthsActive := daysBetween(acct.SignupDate, rangeEnd) / 30
	if monthsActive < 1 {
		monthsActive = 1
	}

	total := int(g.monthlyRate(acct) * float64(monthsActive))
	if total < 1 {
		total = 1
	}
	if total > maxTicketsPerAccount {
		total = maxTicketsPerAccount
	}

	tickets := make([]*ticket.SupportTicket, 0, total)
	for i := 0; i < total; i++ {
		tickets = append(tickets, g.sampleTicket(acct, seq))
	}
	return tickets
}

// monthlyRate is the tickets-per-active-month rate: highest for churned
// accounts, otherwise scaled by tier.
func (g *TicketLifecycleGenerator) monthlyRate(acct *account.Account) float64 {
	switch {
	case acct.IsChurned():
		return floatBetween(g.rng, 0.8, 2.5)
	case acct.PlanTier == types.PlanTierEnterprise:
		return floatBetween(g.rng, 0.3, 1.5)
	case acct.PlanTier == types.PlanTierGrowth:
		return floatBetween(g.rng, 0.2, 1.2)
	default:
		return floatBetween(g.rng, 0.1, 0.8)
	}
}

func (g *TicketLifecycleGenerator) sampleTicket(acct *account.Account, seq *int) *ticket.SupportTicket {
	*seq++
	created := timeBetween(g.rng, acct.SignupDate, g.cfg.DateRange.End)
	priority := g.samplePriority()
	category := g.sampleCategory(acct)

	// Resolution time as a multiple of the priority's SLA target: a breach
	// lands above the target, everything else comfortably under it.
	targetHours := float64(g.cfg.SLATargets[priority.String()])
	var resolutionHours float64
	if g.rng.Float64() < slaBreachProbability {
		resolutionHours = targetHours * floatBetween(g.rng, 1.2, 3.0)
	} else {
		resolutionHours = targetHours * floatBetween(g.rng, 0.2, 0.95)
	}

	t := &ticket.SupportTicket{
		ID:        types.FormatTicketID(*seq),
		AccountID: acct.ID,
		CreatedAt: created,
		Priority:  priority,
		Category:  category,
	}

	if g.rng.Float64() < unresolvedProbability {
		t.Status = Choice(g.rng, []types.TicketStatus{types.TicketStatusOpen, types.TicketStatusEscalated})
		return t
	}

	resolved := created.Add(time.Duration(resolutionHours * float64(time.Hour)))
	t.Status = types.TicketStatusResolved
	t.ResolvedAt = &resolved

	var score decimal.Decimal
	if acct.IsChurned() {
		score = roundScore(floatBetween(g.rng, 1.0, 4.0))
	} else {
		score = roundScore(floatBetween(g.rng, 2.5, 5.0))
	}
	t.SatisfactionScore = &score

	return t
}

func (g *TicketLifecycleGenerator) samplePriority() types.TicketPriority {
	weights := priorityWeights
	if len(weights) != len(g.cfg.TicketPriorities) {
		weights = uniformWeights(len(g.cfg.TicketPriorities))
	}
	return types.TicketPriority(WeightedChoice(g.rng, g.cfg.TicketPriorities, weights))
}

func (g *TicketLifecycleGenerator) sampleCategory(acct *account.Account) string {
	weights := healthyCategoryWeights
	if acct.IsChurned() {
		weights = churnedCategoryWeights
	}
	if len(weights) != len(g.cfg.TicketCategories) {
		weights = uniformWeights(len(g.cfg.TicketCategories))
	}
	return WeightedChoice(g.rng, g.cfg.TicketCategories, weights)
}

func roundScore(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(1)
}
