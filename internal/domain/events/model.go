package events

import (
	"sort"
	"time"
)

// UsageEvent is a single timestamped product action by one synthetic user
// of an account.
type UsageEvent struct {
	ID        string    `json:"event_id"`
	AccountID string    `json:"account_id"`
	UserID    string    `json:"user_id"`
	EventName string    `json:"event_name"`
	Timestamp time.Time `json:"event_timestamp"`

	// Properties is kept as an always-empty column so the output schema
	// matches what the analytics models ingest today.
	Properties string `json:"properties"`
}

// SortByTimestamp orders a collection by timestamp ascending, breaking ties
// on the sequential event ID so the total order is unambiguous. The global
// cap step samples without preserving order, so callers re-sort after it.
func SortByTimestamp(evts []*UsageEvent) {
	sort.Slice(evts, func(i, j int) bool {
		if evts[i].Timestamp.Equal(evts[j].Timestamp) {
			return evts[i].ID < evts[j].ID
		}
		return evts[i].Timestamp.Before(evts[j].Timestamp)
	})
}
