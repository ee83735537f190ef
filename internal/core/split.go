package core

// ResolveShares computes each participant's owed share of an accepted
// expense, expressed in the display currency. normalizedTotal is the
// expense amount already converted by Normalize.
//
// Equal splits divide the normalized total evenly; no rounding happens
// here, full float precision is retained until display formatting.
// Exact shares are converted with the same rate ratio as the parent
// expense (shares are denominated in the expense's own currency).
// Percentage shares take normalizedTotal * percent / 100.
//
// The function is total for expenses that passed ValidateDraft: it
// never panics and participants absent from an exact or percentage
// share map simply owe nothing.
func ResolveShares(e Expense, normalizedTotal float64, display string, rates RateTable) map[string]float64 {
	shares := make(map[string]float64, len(e.Participants))

	switch s := e.Strategy.(type) {
	case ExactSplit:
		ratio := exactRatio(e, rates, display)
		for id, m := range s.Shares {
			shares[id] = m.Amount * ratio
		}
	case PercentageSplit:
		for id, pct := range s.Shares {
			shares[id] = normalizedTotal * pct / 100
		}
	default:
		// EqualSplit; acceptance defaults nil strategies to equal.
		n := len(e.Participants)
		if n == 0 {
			return shares
		}
		each := normalizedTotal / float64(n)
		for _, id := range e.Participants {
			shares[id] = each
		}
	}
	return shares
}

// exactRatio mirrors the ratio Normalize applied to the parent expense.
// A validated ledger never reaches the fallback: the aggregator only
// resolves expenses whose currencies already normalized successfully.
func exactRatio(e Expense, rates RateTable, display string) float64 {
	source, err := rates.Rate(e.Amount.Currency)
	if err != nil {
		return 1
	}
	dest, err := rates.Rate(display)
	if err != nil {
		return 1
	}
	return dest / source
}
