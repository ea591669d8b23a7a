package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIDs(t *testing.T) {
	assert.Equal(t, "ACC-0001", FormatAccountID(1))
	assert.Equal(t, "ACC-0150", FormatAccountID(150))
	assert.Equal(t, "SUB-00042", FormatSubscriptionID(42))
	assert.Equal(t, "INV-000007", FormatInvoiceID(7))
	assert.Equal(t, "EVT-00015000", FormatEventID(15000))
	assert.Equal(t, "TKT-00311", FormatTicketID(311))
	assert.Equal(t, "ACC-0001-U03", FormatUserID("ACC-0001", 3))
}

func TestGenerateRunID(t *testing.T) {
	first := GenerateRunID()
	second := GenerateRunID()
	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
}

func TestPlanTierNext(t *testing.T) {
	assert.Equal(t, PlanTierGrowth, PlanTierStarter.Next())
	assert.Equal(t, PlanTierEnterprise, PlanTierGrowth.Next())
	assert.Equal(t, PlanTierEnterprise, PlanTierEnterprise.Next())
}

func TestEnumValidation(t *testing.T) {
	assert.NoError(t, AccountStatusChurned.Validate())
	assert.Error(t, AccountStatus("paused").Validate())

	assert.NoError(t, PlanTierGrowth.Validate())
	assert.Error(t, PlanTier("platinum").Validate())

	assert.NoError(t, SubscriptionStatusUpgraded.Validate())
	assert.Error(t, SubscriptionStatus("expired").Validate())

	assert.NoError(t, InvoiceStatusVoid.Validate())
	assert.Error(t, InvoiceStatus("draft").Validate())

	assert.NoError(t, TicketStatusEscalated.Validate())
	assert.Error(t, TicketStatus("closed").Validate())

	assert.NoError(t, TicketPriorityP1.Validate())
	assert.Error(t, TicketPriority("p5").Validate())
}

func TestSubscriptionStatusIsTerminal(t *testing.T) {
	assert.True(t, SubscriptionStatusCancelled.IsTerminal())
	assert.True(t, SubscriptionStatusUpgraded.IsTerminal())
	assert.False(t, SubscriptionStatusActive.IsTerminal())
	assert.False(t, SubscriptionStatusTrial.IsTerminal())
}

func TestTicketStatusIsResolved(t *testing.T) {
	assert.True(t, TicketStatusResolved.IsResolved())
	assert.False(t, TicketStatusOpen.IsResolved())
	assert.False(t, TicketStatusEscalated.IsResolved())
}
