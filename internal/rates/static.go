package rates

import (
	"context"

	"tripsplit/internal/core"
)

// Static serves a fixed rate table. Intended for tests and local
// development; production deployments should use FileProvider so rates
// can be refreshed without a rebuild.
type Static struct {
	table core.RateTable
}

func NewStatic(table core.RateTable) *Static {
	normalized := make(core.RateTable, len(table))
	for code, rate := range table {
		normalized[core.NormalizeCurrencyCode(code)] = rate
	}
	return &Static{table: normalized}
}

func (s *Static) Rates(_ context.Context) (core.RateTable, error) {
	out := make(core.RateTable, len(s.table))
	for code, rate := range s.table {
		out[code] = rate
	}
	return out, nil
}
