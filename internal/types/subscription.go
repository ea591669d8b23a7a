package types

import (
	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/samber/lo"
)

// ProductCorePlatform is the base product every account subscribes to.
// Add-on product names come from configuration.
const ProductCorePlatform = "novacrm_platform"

// SubscriptionStatus is the status of a subscription record.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	// SubscriptionStatusUpgraded marks a record closed out because a
	// successor record at a higher tier replaced it. Its end date equals
	// the successor's start date.
	SubscriptionStatusUpgraded SubscriptionStatus = "upgraded"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the record can no longer accrue billable time.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == SubscriptionStatusCancelled || s == SubscriptionStatusUpgraded
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusTrial,
		SubscriptionStatusActive,
		SubscriptionStatusCancelled,
		SubscriptionStatusUpgraded,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
