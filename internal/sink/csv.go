package sink

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/novacrm/seedforge/internal/domain/account"
	"github.com/novacrm/seedforge/internal/domain/events"
	"github.com/novacrm/seedforge/internal/domain/invoice"
	"github.com/novacrm/seedforge/internal/domain/subscription"
	"github.com/novacrm/seedforge/internal/domain/ticket"
	ierr "github.com/novacrm/seedforge/internal/errors"
	"github.com/novacrm/seedforge/internal/generator"
	"github.com/novacrm/seedforge/internal/logger"
	"github.com/samber/lo"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"

	// lineItemSeparator joins multi-valued fields into one CSV cell.
	lineItemSeparator = "|"
)

// Output file names, one tabular file per entity collection.
const (
	AccountsFile       = "raw_accounts.csv"
	SubscriptionsFile  = "raw_subscriptions.csv"
	InvoicesFile       = "raw_invoices.csv"
	UsageEventsFile    = "raw_usage_events.csv"
	SupportTicketsFile = "raw_support_tickets.csv"
)

// CSVSink serializes a finished dataset to one CSV file per collection.
// It is a thin collaborator: it never inspects or reorders records, and it
// fails fast on an empty collection since there is no record to derive a
// header from — an empty collection is always a configuration error.
type CSVSink struct {
	dir string
	log *logger.Logger
}

func NewCSVSink(dir string, log *logger.Logger) *CSVSink {
	return &CSVSink{dir: dir, log: log}
}

// Write persists all five collections. All-or-nothing per run: the first
// failure aborts, partially written files are left for inspection.
func (s *CSVSink) Write(ds *generator.Dataset) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return ierr.WithError(err).
			WithHintf("Unable to create output directory %q", s.dir).
			Mark(ierr.ErrSystem)
	}

	if err := writeFile(s, AccountsFile, lo.Map(ds.Accounts, toAccountRow)); err != nil {
		return err
	}
	if err := writeFile(s, SubscriptionsFile, lo.Map(ds.Subscriptions, toSubscriptionRow)); err != nil {
		return err
	}
	if err := writeFile(s, InvoicesFile, lo.Map(ds.Invoices, toInvoiceRow)); err != nil {
		return err
	}
	if err := writeFile(s, UsageEventsFile, lo.Map(ds.UsageEvents, toUsageEventRow)); err != nil {
		return err
	}
	if err := writeFile(s, SupportTicketsFile, lo.Map(ds.SupportTickets, toTicketRow)); err != nil {
		return err
	}

	return nil
}

func writeFile[T any](s *CSVSink, name string, rows []T) error {
	if len(rows) == 0 {
		return ierr.NewError("empty entity collection").
			WithHintf("No records to write for %s, check the configured date range and account count", name).
			Mark(ierr.ErrInvalidOperation)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Unable to create %s", path).
			Mark(ierr.ErrSystem)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return ierr.WithError(err).
			WithHintf("Unable to serialize %s", name).
			Mark(ierr.ErrSystem)
	}

	s.log.Infow("collection written", "file", name, "rows", len(rows))
	return nil
}

// Row shapes. Everything serializes as text: calendar dates for date
// fields, second-precision timestamps for instants, empty string for
// nullable fields, pipe-joined strings for multi-valued fields.

type accountRow struct {
	AccountID     string `csv:"account_id"`
	CompanyName   string `csv:"company_name"`
	Industry      string `csv:"industry"`
	EmployeeCount int    `csv:"employee_count"`
	PlanTier      string `csv:"plan_tier"`
	AccountOwner  string `csv:"account_owner"`
	Region        string `csv:"region"`
	SignupDate    string `csv:"signup_date"`
	Status        string `csv:"status"`
}

func toAccountRow(a *account.Account, _ int) accountRow {
	return accountRow{
		AccountID:     a.ID,
		CompanyName:   a.CompanyName,
		Industry:      a.Industry,
		EmployeeCount: a.EmployeeCount,
		PlanTier:      a.PlanTier.String(),
		AccountOwner:  a.AccountOwner,
		Region:        a.Region,
		SignupDate:    a.SignupDate.Format(dateLayout),
		Status:        a.Status.String(),
	}
}

type subscriptionRow struct {
	SubscriptionID string `csv:"subscription_id"`
	AccountID      string `csv:"account_id"`
	ProductName    string `csv:"product_name"`
	PlanTier       string `csv:"plan_tier"`
	MRRAmount      string `csv:"mrr_amount"`
	StartDate      string `csv:"start_date"`
	EndDate        string `csv:"end_date"`
	Status         string `csv:"status"`
}

func toSubscriptionRow(s *subscription.Subscription, _ int) subscriptionRow {
	return subscriptionRow{
		SubscriptionID: s.ID,
		AccountID:      s.AccountID,
		ProductName:    s.ProductName,
		PlanTier:       s.PlanTier.String(),
		MRRAmount:      s.MRRAmount.String(),
		StartDate:      s.StartDate.Format(dateLayout),
		EndDate:        formatNullableDate(s.EndDate),
		Status:         s.Status.String(),
	}
}

type invoiceRow struct {
	InvoiceID   string `csv:"invoice_id"`
	AccountID   string `csv:"account_id"`
	InvoiceDate string `csv:"invoice_date"`
	Amount      string `csv:"amount"`
	Currency    string `csv:"currency"`
	Status      string `csv:"status"`
	LineItems   string `csv:"line_items"`
}

func toInvoiceRow(i *invoice.Invoice, _ int) invoiceRow {
	return invoiceRow{
		InvoiceID:   i.ID,
		AccountID:   i.AccountID,
		InvoiceDate: i.InvoiceDate.Format(dateLayout),
		Amount:      i.Amount.String(),
		Currency:    i.Currency,
		Status:      i.Status.String(),
		LineItems:   strings.Join(i.LineItems, lineItemSeparator),
	}
}

type usageEventRow struct {
	EventID        string `csv:"event_id"`
	AccountID      string `csv:"account_id"`
	UserID         string `csv:"user_id"`
	EventName      string `csv:"event_name"`
	EventTimestamp string `csv:"event_timestamp"`
	Properties     string `csv:"properties"`
}

func toUsageEventRow(e *events.UsageEvent, _ int) usageEventRow {
	return usageEventRow{
		EventID:        e.ID,
		AccountID:      e.AccountID,
		UserID:         e.UserID,
		EventName:      e.EventName,
		EventTimestamp: e.Timestamp.Format(timestampLayout),
		Properties:     e.Properties,
	}
}

type ticketRow struct {
	TicketID          string `csv:"ticket_id"`
	AccountID         string `csv:"account_id"`
	CreatedAt         string `csv:"created_at"`
	ResolvedAt        string `csv:"resolved_at"`
	Priority          string `csv:"priority"`
	Category          string `csv:"category"`
	Status            string `csv:"status"`
	SatisfactionScore string `csv:"satisfaction_score"`
}

func toTicketRow(t *ticket.SupportTicket, _ int) ticketRow {
	row := ticketRow{
		TicketID:   t.ID,
		AccountID:  t.AccountID,
		CreatedAt:  t.CreatedAt.Format(timestampLayout),
		ResolvedAt: formatNullableTimestamp(t.ResolvedAt),
		Priority:   t.Priority.String(),
		Category:   t.Category,
		Status:     t.Status.String(),
	}
	if t.SatisfactionScore != nil {
		row.SatisfactionScore = t.SatisfactionScore.StringFixed(1)
	}
	return row
}

func formatNullableDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatNullableTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timestampLayout)
}
