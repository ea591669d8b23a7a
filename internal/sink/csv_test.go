package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/novacrm/seedforge/internal/config"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/events"
	"github.com/novacrm/seedforge/internal/domain/invoice"
	"github.com/novacrm/seedforge/internal/domain/subscription"
	"github.com/novacrm/seedforge/internal/domain/ticket"
	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/novacrm/seedforge/internal/generator"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/novacrm/seedforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDataset() *generator.Dataset {
	signup := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	subEnd := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	resolved := time.Date(2023, 2, 2, 9, 30, 0, 0, time.UTC)
	score := decimal.NewFromFloat(4.5)

	return &generator.Dataset{
		Accounts: []*account.Account{{
			ID:            "ACC-0001",
			CompanyName:   "Cascade Dynamics",
			Industry:      "technology",
			EmployeeCount: 1200,
			PlanTier:      types.PlanTierEnterprise,
			AccountOwner:  "Sarah Chen",
			Region:        "north_america",
			SignupDate:    signup,
			Status:        types.AccountStatusActive,
		}},
		Subscriptions: []*subscription.Subscription{
			{
				ID:          "SUB-00001",
				AccountID:   "ACC-0001",
				ProductName: types.ProductCorePlatform,
				PlanTier:    types.PlanTierEnterprise,
				MRRAmount:   decimal.NewFromInt(2500),
				StartDate:   signup,
				Status:      types.SubscriptionStatusActive,
			},
			{
				ID:          "SUB-00002",
				AccountID:   "ACC-0001",
				ProductName: "priority_support",
				PlanTier:    types.PlanTierEnterprise,
				MRRAmount:   decimal.NewFromInt(500),
				StartDate:   signup.AddDate(0, 0, 30),
				EndDate:     &subEnd,
				Status:      types.SubscriptionStatusCancelled,
			},
		},
		Invoices: []*invoice.Invoice{{
			ID:          "INV-000001",
			AccountID:   "ACC-0001",
			InvoiceDate: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.NewFromInt(3000),
			Currency:    types.CurrencyUSD,
			Status:      types.InvoiceStatusPaid,
			LineItems:   []string{types.ProductCorePlatform, "priority_support"},
		}},
		UsageEvents: []*events.UsageEvent{{
			ID:        "EVT-00000001",
			AccountID: "ACC-0001",
			UserID:    "ACC-0001-U01",
			EventName: "login",
			Timestamp: time.Date(2023, 1, 16, 9, 4, 5, 0, time.UTC),
		}},
		SupportTickets: []*ticket.SupportTicket{
			{
				ID:                "TKT-00001",
				AccountID:         "ACC-0001",
				CreatedAt:         time.Date(2023, 2, 1, 14, 0, 0, 0, time.UTC),
				ResolvedAt:        &resolved,
				Priority:          types.TicketPriorityP3,
				Category:          "how_to",
				Status:            types.TicketStatusResolved,
				SatisfactionScore: &score,
			},
			{
				ID:        "TKT-00002",
				AccountID: "ACC-0001",
				CreatedAt: time.Date(2023, 3, 10, 11, 15, 0, 0, time.UTC),
				Priority:  types.TicketPriorityP2,
				Category:  "bug",
				Status:    types.TicketStatusOpen,
			},
		},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestCSVSinkWrite(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(dir, logger.NewNopLogger())
	require.NoError(t, sink.Write(fixtureDataset()))

	t.Run("accounts file carries the expected header and row", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, AccountsFile))
		require.Len(t, lines, 2)
		assert.Equal(t,
			"account_id,company_name,industry,employee_count,plan_tier,account_owner,region,signup_date,status",
			lines[0])
		assert.Equal(t,
			"ACC-0001,Cascade Dynamics,technology,1200,enterprise,Sarah Chen,north_america,2023-01-15,active",
			lines[1])
	})

	t.Run("open subscriptions serialize an empty end date", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, SubscriptionsFile))
		require.Len(t, lines, 3)
		assert.Equal(t,
			"subscription_id,account_id,product_name,plan_tier,mrr_amount,start_date,end_date,status",
			lines[0])
		assert.Equal(t,
			"SUB-00001,ACC-0001,novacrm_platform,enterprise,2500,2023-01-15,,active",
			lines[1])
		assert.Equal(t,
			"SUB-00002,ACC-0001,priority_support,enterprise,500,2023-02-14,2023-07-01,cancelled",
			lines[2])
	})

	t.Run("invoice line items join with a pipe", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, InvoicesFile))
		require.Len(t, lines, 2)
		assert.Equal(t,
			"invoice_id,account_id,invoice_date,amount,currency,status,line_items",
			lines[0])
		assert.Equal(t,
			"INV-000001,ACC-0001,2023-02-01,3000,USD,paid,novacrm_platform|priority_support",
			lines[1])
	})

	t.Run("usage events keep second precision and an empty properties cell", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, UsageEventsFile))
		require.Len(t, lines, 2)
		assert.Equal(t,
			"event_id,account_id,user_id,event_name,event_timestamp,properties",
			lines[0])
		assert.Equal(t,
			"EVT-00000001,ACC-0001,ACC-0001-U01,login,2023-01-16T09:04:05,",
			lines[1])
	})

	t.Run("tickets serialize nullable fields as empty cells", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, SupportTicketsFile))
		require.Len(t, lines, 3)
		assert.Equal(t,
			"ticket_id,account_id,created_at,resolved_at,priority,category,status,satisfaction_score",
			lines[0])
		assert.Equal(t,
			"TKT-00001,ACC-0001,2023-02-01T14:00:00,2023-02-02T09:30:00,p3,how_to,resolved,4.5",
			lines[1])
		assert.Equal(t,
			"TKT-00002,ACC-0001,2023-03-10T11:15:00,,p2,bug,open,",
			lines[2])
	})
}

func TestCSVSinkWriteEmptyCollection(t *testing.T) {
	ds := fixtureDataset()
	ds.Invoices = nil

	sink := NewCSVSink(t.TempDir(), logger.NewNopLogger())
	err := sink.Write(ds)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestCSVSinkWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seeds")
	sink := NewCSVSink(dir, logger.NewNopLogger())
	require.NoError(t, sink.Write(fixtureDataset()))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCSVSinkOutputIsByteStable(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.AccountCount = 30
	log := logger.NewNopLogger()

	firstDir := t.TempDir()
	secondDir := t.TempDir()
	require.NoError(t, NewCSVSink(firstDir, log).Write(generator.NewPipeline(cfg, log).Run()))
	require.NoError(t, NewCSVSink(secondDir, log).Write(generator.NewPipeline(cfg, log).Run()))

	for _, name := range []string{AccountsFile, SubscriptionsFile, InvoicesFile, UsageEventsFile, SupportTicketsFile} {
		first, err := os.ReadFile(filepath.Join(firstDir, name))
		require.NoError(t, err)
		second, err := os.ReadFile(filepath.Join(secondDir, name))
		require.NoError(t, err)
		assert.Equal(t, first, second, "file %s differs between identical runs", name)
	}
}
