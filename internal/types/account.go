package types

import (
	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/samber/lo"
)

// AccountStatus is the finalized lifecycle state of an account. It is drawn
// once at account creation and downstream generators read it as a
// correlation signal, it is never re-evaluated over time.
type AccountStatus string

const (
	AccountStatusTrial     AccountStatus = "trial"
	AccountStatusActive    AccountStatus = "active"
	AccountStatusChurned   AccountStatus = "churned"
	AccountStatusSuspended AccountStatus = "suspended"
)

func (s AccountStatus) String() string {
	return string(s)
}

func (s AccountStatus) Validate() error {
	allowed := []AccountStatus{
		AccountStatusTrial,
		AccountStatusActive,
		AccountStatusChurned,
		AccountStatusSuspended,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid account status").
			WithHint("Invalid account status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlanTier is a plan level that conditions firmographic and behavioral
// sampling across all entities.
type PlanTier string

const (
	PlanTierStarter    PlanTier = "starter"
	PlanTierGrowth     PlanTier = "growth"
	PlanTierEnterprise PlanTier = "enterprise"
)

func (t PlanTier) String() string {
	return string(t)
}

func (t PlanTier) Validate() error {
	allowed := []PlanTier{
		PlanTierStarter,
		PlanTierGrowth,
		PlanTierEnterprise,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid plan tier").
			WithHint("Invalid plan tier").
			WithReportableDetails(map[string]any{
				"tier":          t,
				"allowed_tiers": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Next returns the tier an account moves to when it upgrades.
// Enterprise is terminal.
func (t PlanTier) Next() PlanTier {
	switch t {
	case PlanTierStarter:
		return PlanTierGrowth
	case PlanTierGrowth:
		return PlanTierEnterprise
	default:
		return PlanTierEnterprise
	}
}
