package sqlite

import (
	"encoding/json"
	"fmt"

	"tripsplit/internal/core"
)

// Split strategies are stored as a type tag column plus a JSON shares
// column. Equal splits carry an empty shares object.

type moneyRow struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func encodeShares(s core.SplitStrategy) (string, error) {
	switch v := s.(type) {
	case core.ExactSplit:
		shares := make(map[string]moneyRow, len(v.Shares))
		for id, m := range v.Shares {
			shares[id] = moneyRow{Amount: m.Amount, Currency: m.Currency}
		}
		b, err := json.Marshal(shares)
		if err != nil {
			return "", fmt.Errorf("marshal exact shares: %w", err)
		}
		return string(b), nil
	case core.PercentageSplit:
		b, err := json.Marshal(v.Shares)
		if err != nil {
			return "", fmt.Errorf("marshal percentage shares: %w", err)
		}
		return string(b), nil
	default:
		return "{}", nil
	}
}

func decodeStrategy(splitType string, shares string) (core.SplitStrategy, error) {
	switch core.SplitType(splitType) {
	case core.SplitEqual:
		return core.EqualSplit{}, nil
	case core.SplitExact:
		var raw map[string]moneyRow
		if err := json.Unmarshal([]byte(shares), &raw); err != nil {
			return nil, fmt.Errorf("unmarshal exact shares: %w", err)
		}
		out := make(map[string]core.Money, len(raw))
		for id, m := range raw {
			out[id] = core.Money{Amount: m.Amount, Currency: m.Currency}
		}
		return core.ExactSplit{Shares: out}, nil
	case core.SplitPercentage:
		var out map[string]float64
		if err := json.Unmarshal([]byte(shares), &out); err != nil {
			return nil, fmt.Errorf("unmarshal percentage shares: %w", err)
		}
		return core.PercentageSplit{Shares: out}, nil
	default:
		return nil, fmt.Errorf("unknown split type %q", splitType)
	}
}

func encodeParticipants(ids []string) (string, error) {
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal participants: %w", err)
	}
	return string(b), nil
}

func decodeParticipants(raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("unmarshal participants: %w", err)
	}
	return out, nil
}
