package generator

import (
	"testing"
	"time"

	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/subscription"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionDeriver(t *testing.T) {
	cfg := testConfig()
	cfg.AccountCount = 200
	rng := NewRand(cfg.Seed)
	accounts := NewAccountSynthesizer(cfg, rng, testLogger()).Generate()
	subs := NewSubscriptionDeriver(cfg, rng, testLogger()).Generate(accounts)

	accountsByID := lo.KeyBy(accounts, func(a *account.Account) string { return a.ID })
	subsByAccount := lo.GroupBy(subs, func(s *subscription.Subscription) string { return s.AccountID })

	t.Run("every subscription references an existing account", func(t *testing.T) {
		for _, s := range subs {
			_, ok := accountsByID[s.AccountID]
			assert.True(t, ok, "subscription %s references unknown account %s", s.ID, s.AccountID)
		}
	})

	t.Run("every account has a base platform subscription", func(t *testing.T) {
		for _, a := range accounts {
			base := lo.Filter(subsByAccount[a.ID], func(s *subscription.Subscription, _ int) bool {
				return s.ProductName == types.ProductCorePlatform
			})
			require.NotEmpty(t, base, "account %s has no platform subscription", a.ID)
			assert.Equal(t, a.SignupDate, base[0].StartDate)
		}
	})

	t.Run("all records satisfy their own invariants", func(t *testing.T) {
		for _, s := range subs {
			assert.NoError(t, s.Validate(), "subscription %s", s.ID)
		}
	})

	t.Run("at most one non-terminal platform subscription per account at any instant", func(t *testing.T) {
		for _, a := range accounts {
			open := 0
			for _, s := range subsByAccount[a.ID] {
				if s.ProductName != types.ProductCorePlatform {
					continue
				}
				if !s.Status.IsTerminal() && s.EndDate == nil {
					open++
				}
			}
			assert.LessOrEqual(t, open, 1, "account %s has %d open platform subscriptions", a.ID, open)
		}
	})

	t.Run("upgraded records end exactly where their successor starts", func(t *testing.T) {
		for _, a := range accounts {
			records := subsByAccount[a.ID]
			for i, s := range records {
				if s.Status != types.SubscriptionStatusUpgraded {
					continue
				}
				require.NotNil(t, s.EndDate)
				require.Greater(t, len(records), i+1, "upgraded record %s has no successor", s.ID)
				successor := records[i+1]
				assert.Equal(t, *s.EndDate, successor.StartDate)
				assert.Equal(t, s.PlanTier.Next(), successor.PlanTier)
				assert.Equal(t, types.SubscriptionStatusActive, successor.Status)
			}
		}
	})

	t.Run("trial accounts get a zero-mrr two-week record and nothing else", func(t *testing.T) {
		for _, a := range accounts {
			if !a.IsTrial() {
				continue
			}
			records := subsByAccount[a.ID]
			require.Len(t, records, 1)
			s := records[0]
			assert.True(t, s.MRRAmount.IsZero())
			assert.Equal(t, types.SubscriptionStatusTrial, s.Status)
			require.NotNil(t, s.EndDate)
			assert.Equal(t, a.SignupDate.AddDate(0, 0, trialLengthDays), *s.EndDate)
		}
	})

	t.Run("churned accounts have no open records", func(t *testing.T) {
		for _, a := range accounts {
			if !a.IsChurned() {
				continue
			}
			for _, s := range subsByAccount[a.ID] {
				assert.NotNil(t, s.EndDate, "churned account %s has open subscription %s", a.ID, s.ID)
				assert.Equal(t, types.SubscriptionStatusCancelled, s.Status)
			}
		}
	})
}

func TestSubscriptionDeriverChurnedScenario(t *testing.T) {
	cfg := testConfig()
	cfg.DateRange.Start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.DateRange.End = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	acct := enterpriseChurnedAccount()
	subs := NewSubscriptionDeriver(cfg, NewRand(99), testLogger()).Generate([]*account.Account{acct})

	base := subs[0]
	assert.Equal(t, types.ProductCorePlatform, base.ProductName)
	assert.Equal(t, types.SubscriptionStatusCancelled, base.Status)
	require.NotNil(t, base.EndDate)
	assert.False(t, base.EndDate.After(acct.SignupDate.AddDate(0, 0, 18*30)))
	assert.False(t, base.EndDate.After(cfg.DateRange.End))
	assert.False(t, base.EndDate.Before(base.StartDate))
}

func TestSubscriptionDeriverIDGapsOnDroppedRecords(t *testing.T) {
	// The counter advances for upgrade/add-on records dropped at the
	// dataset boundary, so IDs can have gaps but never duplicates.
	cfg := testConfig()
	cfg.AccountCount = 300
	rng := NewRand(cfg.Seed)
	accounts := NewAccountSynthesizer(cfg, rng, testLogger()).Generate()
	subs := NewSubscriptionDeriver(cfg, rng, testLogger()).Generate(accounts)

	seen := map[string]bool{}
	for _, s := range subs {
		assert.False(t, seen[s.ID], "duplicate subscription id %s", s.ID)
		seen[s.ID] = true
	}
}
