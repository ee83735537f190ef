// Package rates supplies exchange-rate tables to the ledger. The core
// never fetches or caches rates itself; a provider is queried fresh on
// every snapshot and its staleness is the operator's responsibility.
package rates

import (
	"context"

	"tripsplit/internal/core"
)

// Provider returns the current rate table: currency code mapped to its
// value relative to the base unit.
type Provider interface {
	Rates(ctx context.Context) (core.RateTable, error)
}
