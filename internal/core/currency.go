package core

import "fmt"

// RateTable maps a currency code to its value relative to a single base
// unit (the conventional base is USD at 1.0). It is always supplied by
// the caller per computation; the ledger never embeds or caches rates.
type RateTable map[string]float64

// Rate returns the rate for a code, or ErrUnknownCurrency when the code
// has no entry or a non-positive rate.
func (rt RateTable) Rate(code string) (float64, error) {
	r, ok := rt[NormalizeCurrencyCode(code)]
	if !ok || r <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return r, nil
}

// Normalize converts a tagged amount into the target currency using the
// supplied rate table. Pure function; fails when either currency is not
// in the table.
//
// Conversion: result = amount * rates[target] / rates[source].
func Normalize(m Money, target string, rates RateTable) (Money, error) {
	source, err := rates.Rate(m.Currency)
	if err != nil {
		return Money{}, err
	}
	dest, err := rates.Rate(target)
	if err != nil {
		return Money{}, err
	}
	return Money{
		Amount:   m.Amount * (dest / source),
		Currency: NormalizeCurrencyCode(target),
	}, nil
}
