package generator

import (
	"math/rand"

	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/subscription"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/shopspring/decimal"
)

const (
	trialLengthDays      = 14
	upgradeProbability   = 0.15
	enterpriseAddonBoost = 1.5
)

// SubscriptionDeriver emits each account's subscription timeline: one base
// platform record, possibly an upgrade successor, and zero or more add-ons.
//
// The subscription counter advances even for upgrade/add-on records whose
// computed start date falls at or past the dataset end and are therefore
// dropped. The resulting ID gaps are intentional: they mirror how the live
// billing exporter allocates IDs before boundary filtering.
type SubscriptionDeriver struct {
	cfg *config.Configuration
	rng *rand.Rand
	log *logger.Logger
}

func NewSubscriptionDeriver(cfg *config.Configuration, rng *rand.Rand, log *logger.Logger) *SubscriptionDeriver {
	return &SubscriptionDeriver{cfg: cfg, rng: rng, log: log}
}

func (g *SubscriptionDeriver) Generate(accounts []*account.Account) []*subscription.Subscription {
	var subs []*subscription.Subscription
	seq := 0
	for _, acct := range accounts {
		subs = append(subs, g.deriveTimeline(acct, &seq)...)
	}
	return subs
}

// deriveTimeline builds one account's records. The retroactive close-out of
// the base record on upgrade happens inside this function only; once the
// timeline is returned, no record is ever mutated again.
func (g *SubscriptionDeriver) deriveTimeline(acct *account.Account, seq *int) []*subscription.Subscription {
	rangeEnd := g.cfg.DateRange.End
	timeline := make([]*subscription.Subscription, 0, 2+len(g.cfg.Addons))

	*seq++
	base := &subscription.Subscription{
		ID:          types.FormatSubscriptionID(*seq),
		AccountID:   acct.ID,
		ProductName: types.ProductCorePlatform,
		PlanTier:    acct.PlanTier,
		MRRAmount:   g.tierMRR(acct.PlanTier),
		StartDate:   acct.SignupDate,
	}

	switch acct.Status {
	case types.AccountStatusChurned:
		monthsActive := intBetween(g.rng, 2, 18)
		endDate := acct.SignupDate.AddDate(0, 0, monthsActive*30)
		if endDate.After(rangeEnd) {
			endDate = rangeEnd.AddDate(0, 0, -intBetween(g.rng, 10, 60))
		}
		if endDate.Before(acct.SignupDate) {
			endDate = acct.SignupDate
		}
		base.EndDate = &endDate
		base.Status = types.SubscriptionStatusCancelled
	case types.AccountStatusTrial:
		endDate := acct.SignupDate.AddDate(0, 0, trialLengthDays)
		base.EndDate = &endDate
		base.Status = types.SubscriptionStatusTrial
		base.MRRAmount = decimal.Zero
	default:
		base.Status = types.SubscriptionStatusActive
	}
	timeline = append(timeline, base)

	if upgrade := g.deriveUpgrade(acct, base, seq); upgrade != nil {
		timeline = append(timeline, upgrade)
	}

	timeline = append(timeline, g.deriveAddons(acct, base, seq)...)
	return timeline
}

// deriveUpgrade may close out the base record and return its successor at
// the next tier up. Only active, non-enterprise accounts upgrade.
func (g *SubscriptionDeriver) deriveUpgrade(acct *account.Account, base *subscription.Subscription, seq *int) *subscription.Subscription {
	if acct.Status != types.AccountStatusActive || acct.PlanTier == types.PlanTierEnterprise {
		return nil
	}
	if g.rng.Float64() >= upgradeProbability {
		return nil
	}

	*seq++
	upgradeDate := acct.SignupDate.AddDate(0, 0, intBetween(g.rng, 90, 365))
	if !upgradeDate.Before(g.cfg.DateRange.End) {
		// Past the dataset boundary: record dropped, ID gap kept.
		return nil
	}

	nextTier := acct.PlanTier.Next()
	base.EndDate = &upgradeDate
	base.Status = types.SubscriptionStatusUpgraded

	return &subscription.Subscription{
		ID:          types.FormatSubscriptionID(*seq),
		AccountID:   acct.ID,
		ProductName: types.ProductCorePlatform,
		PlanTier:    nextTier,
		MRRAmount:   g.tierMRR(nextTier),
		StartDate:   upgradeDate,
		Status:      types.SubscriptionStatusActive,
	}
}

// deriveAddons samples each configured add-on independently. Trial accounts
// never get add-ons; enterprise accounts attach them more often. For
// churned accounts the add-on inherits the base record's end date, and an
// add-on that would only start after churn is dropped.
func (g *SubscriptionDeriver) deriveAddons(acct *account.Account, base *subscription.Subscription, seq *int) []*subscription.Subscription {
	if acct.IsTrial() {
		return nil
	}

	var addons []*subscription.Subscription
	for _, name := range g.cfg.AddonNames() {
		info := g.cfg.Addons[name]
		chance := info.Chance
		if acct.PlanTier == types.PlanTierEnterprise {
			chance *= enterpriseAddonBoost
		}
		if g.rng.Float64() >= chance {
			continue
		}

		*seq++
		start := acct.SignupDate.AddDate(0, 0, intBetween(g.rng, 15, 180))
		if !start.Before(g.cfg.DateRange.End) {
			continue
		}

		sub := &subscription.Subscription{
			ID:          types.FormatSubscriptionID(*seq),
			AccountID:   acct.ID,
			ProductName: name,
			PlanTier:    acct.PlanTier,
			MRRAmount:   decimal.NewFromInt(info.MRR),
			StartDate:   start,
			Status:      types.SubscriptionStatusActive,
		}

		if acct.IsChurned() {
			endDate := g.cfg.DateRange.End
			if base.EndDate != nil {
				endDate = *base.EndDate
			}
			if !start.Before(endDate) {
				continue
			}
			end := endDate
			sub.EndDate = &end
			sub.Status = types.SubscriptionStatusCancelled
		}

		addons = append(addons, sub)
	}
	return addons
}

func (g *SubscriptionDeriver) tierMRR(tier types.PlanTier) decimal.Decimal {
	if info, ok := g.cfg.PlanTiers[tier.String()]; ok {
		return decimal.NewFromInt(info.MRR)
	}
	return decimal.Zero
}
