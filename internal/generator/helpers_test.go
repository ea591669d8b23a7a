package generator

import (
	"time"

	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/novacrm/seedforge/internal/types"
)

func testConfig() *config.Configuration {
	cfg := config.GetDefaultConfig()
	cfg.AccountCount = 40
	return cfg
}

func testLogger() *logger.Logger {
	return logger.NewNopLogger()
}

// enterpriseChurnedAccount builds the pinned scenario account: a single
// enterprise customer that churned inside a short dataset window.
func enterpriseChurnedAccount() *account.Account {
	return &account.Account{
		ID:            types.FormatAccountID(1),
		CompanyName:   "Cascade Dynamics",
		Industry:      "technology",
		EmployeeCount: 1200,
		PlanTier:      types.PlanTierEnterprise,
		AccountOwner:  "Sarah Chen",
		Region:        "north_america",
		SignupDate:    time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:        types.AccountStatusChurned,
	}
}

func starterTrialAccount() *account.Account {
	return &account.Account{
		ID:            types.FormatAccountID(1),
		CompanyName:   "Orchard Labs",
		Industry:      "retail",
		EmployeeCount: 12,
		PlanTier:      types.PlanTierStarter,
		AccountOwner:  "David Kim",
		Region:        "europe",
		SignupDate:    time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC),
		Status:        types.AccountStatusTrial,
	}
}
