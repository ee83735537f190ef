package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"1.0", 1, true},
		{"47.50", 47.5, true},
		{"12,34", 12.34, true},
		{"0.01", 0.01, true},
		{" 2.50 ", 2.5, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Amount: 10, Currency: "USD"}).Validate(); err != nil {
		t.Fatalf("valid money rejected: %v", err)
	}
	if err := (Money{Amount: 0, Currency: "USD"}).Validate(); err == nil {
		t.Fatal("zero amount accepted")
	}
	if err := (Money{Amount: 5, Currency: "  "}).Validate(); err == nil {
		t.Fatal("blank currency accepted")
	}
}

func TestNormalizeCurrencyCode(t *testing.T) {
	if got := NormalizeCurrencyCode(" usd "); got != "USD" {
		t.Fatalf("expected USD, got %q", got)
	}
}
