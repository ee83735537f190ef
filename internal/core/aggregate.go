package core

import "fmt"

// BalanceSnapshot is the complete, freshly computed result of folding
// every expense into per-participant net positions. It is derived, never
// stored: a pure function of ledger state plus the supplied rate table.
//
// A positive balance means the participant is owed money, a negative one
// that they owe money. Balances always sum to zero within floating
// tolerance: every normalized amount credited to a payer is offset by
// the debits distributed among participants.
type BalanceSnapshot struct {
	Total    Money
	PerHead  Money
	Balances map[string]float64
}

// Aggregate folds the expenses, in insertion order, into a snapshot
// expressed in the display currency. It fails outright with
// ErrUnknownCurrency when any expense currency or the display currency
// is missing from the rate table; there is no partial result.
func Aggregate(expenses []Expense, participants []Participant, display string, rates RateTable) (BalanceSnapshot, error) {
	display = NormalizeCurrencyCode(display)
	if _, err := rates.Rate(display); err != nil {
		return BalanceSnapshot{}, err
	}

	balances := make(map[string]float64, len(participants))
	for _, p := range participants {
		balances[p.ID] = 0
	}

	var total float64
	for _, e := range expenses {
		normalized, err := Normalize(e.Amount, display, rates)
		if err != nil {
			return BalanceSnapshot{}, fmt.Errorf("expense %q: %w", e.Label, err)
		}
		for id, share := range ResolveShares(e, normalized.Amount, display, rates) {
			balances[id] -= share
		}
		balances[e.PaidBy] += normalized.Amount
		total += normalized.Amount
	}

	perHead := 0.0
	if len(participants) > 0 {
		perHead = total / float64(len(participants))
	}

	return BalanceSnapshot{
		Total:    Money{Amount: total, Currency: display},
		PerHead:  Money{Amount: perHead, Currency: display},
		Balances: balances,
	}, nil
}
