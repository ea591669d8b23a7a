package account

import (
	"time"

	"github.com/novacrm/seedforge/internal/types"
)

// Account is the root entity of the dataset. Every downstream collection
// hangs off an account, and the finalized Status/PlanTier pair is the
// correlation signal the other generators condition on.
type Account struct {
	ID            string              `json:"account_id"`
	CompanyName   string              `json:"company_name"`
	Industry      string              `json:"industry"`
	EmployeeCount int                 `json:"employee_count"`
	PlanTier      types.PlanTier      `json:"plan_tier"`
	AccountOwner  string              `json:"account_owner"`
	Region        string              `json:"region"`
	SignupDate    time.Time           `json:"signup_date"`
	Status        types.AccountStatus `json:"status"`
}

func (a *Account) IsTrial() bool {
	return a.Status == types.AccountStatusTrial
}

func (a *Account) IsChurned() bool {
	return a.Status == types.AccountStatusChurned
}
