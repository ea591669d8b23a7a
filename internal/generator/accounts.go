package generator

import (
	"math/rand"
	"time"

	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/novacrm/seedforge/internal/types"
)

const (
	// signupBufferDays keeps signups away from the dataset end so even the
	// latest account has room for a full trial window and some history.
	signupBufferDays = 60

	// recentSignupDays is the window in which an account can still be in
	// trial at the dataset boundary.
	recentSignupDays = 30
)

// AccountSynthesizer produces the root entity set. It has no upstream
// dependencies; every other stage conditions on its output.
type AccountSynthesizer struct {
	cfg *config.Configuration
	rng *rand.Rand
	log *logger.Logger
}

func NewAccountSynthesizer(cfg *config.Configuration, rng *rand.Rand, log *logger.Logger) *AccountSynthesizer {
	return &AccountSynthesizer{cfg: cfg, rng: rng, log: log}
}

// Generate returns exactly AccountCount accounts with sequential IDs.
func (g *AccountSynthesizer) Generate() []*account.Account {
	latestSignup := g.cfg.DateRange.End.AddDate(0, 0, -signupBufferDays)
	if latestSignup.Before(g.cfg.DateRange.Start) {
		latestSignup = g.cfg.DateRange.Start
	}

	tierNames := g.cfg.TierNames()
	tierWeights := make([]float64, len(tierNames))
	for i, name := range tierNames {
		tierWeights[i] = g.cfg.PlanTiers[name].Weight
	}

	regionWeights := g.cfg.RegionWeights
	if len(regionWeights) == 0 {
		regionWeights = uniformWeights(len(g.cfg.Regions))
	}

	accounts := make([]*account.Account, 0, g.cfg.AccountCount)
	for i := 1; i <= g.cfg.AccountCount; i++ {
		signup := dateBetween(g.rng, g.cfg.DateRange.Start, latestSignup)
		tier := types.PlanTier(WeightedChoice(g.rng, tierNames, tierWeights))

		accounts = append(accounts, &account.Account{
			ID:            types.FormatAccountID(i),
			CompanyName:   companyName(g.rng),
			Industry:      Choice(g.rng, g.cfg.Industries),
			EmployeeCount: g.employeeCount(tier),
			PlanTier:      tier,
			AccountOwner:  Choice(g.rng, g.cfg.AccountOwners),
			Region:        WeightedChoice(g.rng, g.cfg.Regions, regionWeights),
			SignupDate:    signup,
			Status:        g.status(tier, signup),
		})
	}

	return accounts
}

// employeeCount correlates company size with plan tier. This is a soft
// realism signal, not a constraint downstream stages depend on.
func (g *AccountSynthesizer) employeeCount(tier types.PlanTier) int {
	switch tier {
	case types.PlanTierEnterprise:
		return intBetween(g.rng, 200, 5000)
	case types.PlanTierGrowth:
		return intBetween(g.rng, 30, 500)
	default:
		return intBetween(g.rng, 5, 100)
	}
}

// status finalizes the account lifecycle state. Recent signups can still be
// trialing; otherwise churn odds shrink as the tier rises and only
// enterprise accounts can end up suspended.
func (g *AccountSynthesizer) status(tier types.PlanTier, signup time.Time) types.AccountStatus {
	if daysBetween(signup, g.cfg.DateRange.End) < recentSignupDays {
		return WeightedChoice(g.rng,
			[]types.AccountStatus{types.AccountStatusTrial, types.AccountStatusActive},
			[]float64{0.6, 0.4})
	}

	switch tier {
	case types.PlanTierStarter:
		return WeightedChoice(g.rng,
			[]types.AccountStatus{types.AccountStatusActive, types.AccountStatusChurned},
			[]float64{0.70, 0.30})
	case types.PlanTierGrowth:
		return WeightedChoice(g.rng,
			[]types.AccountStatus{types.AccountStatusActive, types.AccountStatusChurned},
			[]float64{0.80, 0.20})
	default:
		return WeightedChoice(g.rng,
			[]types.AccountStatus{types.AccountStatusActive, types.AccountStatusChurned, types.AccountStatusSuspended},
			[]float64{0.88, 0.08, 0.04})
	}
}
