package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tripsplit/internal/core"
)

// FileProvider reads the rate table from a JSON file on every call, so
// an operator can refresh rates by replacing the file. There are no
// embedded default rates; a missing or empty file is an error rather
// than silently stale financial data.
//
// File format: {"USD": 1.0, "EUR": 0.85, ...}
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Rates(_ context.Context) (core.RateTable, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}

	var table map[string]float64
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse rates file %s: %w", p.path, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("rates file %s contains no rates", p.path)
	}

	out := make(core.RateTable, len(table))
	for code, rate := range table {
		if rate <= 0 {
			return nil, fmt.Errorf("rates file %s: non-positive rate %v for %s", p.path, rate, code)
		}
		out[core.NormalizeCurrencyCode(code)] = rate
	}
	return out, nil
}
