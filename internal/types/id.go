package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Entity identifiers are sequential by contract: downstream analytics
// models join on them and expect stable, zero-padded forms.

func FormatAccountID(n int) string {
	return fmt.Sprintf("ACC-%04d", n)
}

func FormatSubscriptionID(n int) string {
	return fmt.Sprintf("SUB-%05d", n)
}

func FormatInvoiceID(n int) string {
	return fmt.Sprintf("INV-%06d", n)
}

func FormatEventID(n int) string {
	return fmt.Sprintf("EVT-%08d", n)
}

func FormatTicketID(n int) string {
	return fmt.Sprintf("TKT-%05d", n)
}

// FormatUserID builds a synthetic user identifier scoped to an account,
// e.g. ACC-0001-U03.
func FormatUserID(accountID string, n int) string {
	return fmt.Sprintf("%s-U%02d", accountID, n)
}

// GenerateRunID returns a k-sortable identifier for a single generation
// run, used to tag log output. Entity IDs stay sequential.
func GenerateRunID() string {
	return ulid.Make().String()
}
