package core

import (
	"errors"
	"math"
	"testing"
)

func testRates() RateTable {
	return RateTable{"USD": 1.0, "EUR": 0.85, "GBP": 0.75, "JPY": 110.0}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name   string
		in     Money
		target string
		out    float64
	}{
		{"identity", Money{Amount: 480, Currency: "USD"}, "USD", 480},
		{"usd to eur", Money{Amount: 100, Currency: "USD"}, "EUR", 85},
		{"eur to usd", Money{Amount: 85, Currency: "EUR"}, "USD", 100},
		{"lowercase code", Money{Amount: 100, Currency: "usd"}, "eur", 85},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in, tc.target, testRates())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Amount-tc.out) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.out, got.Amount)
			}
			if got.Currency != NormalizeCurrencyCode(tc.target) {
				t.Fatalf("expected currency %q, got %q", tc.target, got.Currency)
			}
		})
	}
}

func TestNormalizeUnknownCurrency(t *testing.T) {
	if _, err := Normalize(Money{Amount: 10, Currency: "XXX"}, "USD", testRates()); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency for source, got %v", err)
	}
	if _, err := Normalize(Money{Amount: 10, Currency: "USD"}, "XXX", testRates()); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency for target, got %v", err)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	// X -> Y -> X returns the original amount within floating tolerance.
	rates := testRates()
	original := Money{Amount: 123.45, Currency: "EUR"}
	mid, err := Normalize(original, "JPY", rates)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	back, err := Normalize(mid, "EUR", rates)
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if math.Abs(back.Amount-original.Amount) > 1e-9 {
		t.Fatalf("round trip drifted: %v -> %v", original.Amount, back.Amount)
	}
}

func TestRateTableRejectsNonPositiveRate(t *testing.T) {
	rt := RateTable{"USD": 1.0, "BAD": 0}
	if _, err := rt.Rate("BAD"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}
