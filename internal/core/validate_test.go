package core

import (
	"errors"
	"math"
	"testing"
)

func testDirectory() map[string]Participant {
	return map[string]Participant{
		"laura": {ID: "laura", Name: "Laura"},
		"david": {ID: "david", Name: "David"},
		"nina":  {ID: "nina", Name: "Nina"},
	}
}

func validDraft() ExpenseDraft {
	return ExpenseDraft{
		Label:        "Cabin deposit",
		Amount:       Money{Amount: 480, Currency: "USD"},
		PaidBy:       "laura",
		Strategy:     EqualSplit{},
		Participants: []string{"laura", "david", "nina"},
	}
}

func TestValidateDraftRuleOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExpenseDraft)
		want   error
	}{
		{"empty label", func(d *ExpenseDraft) { d.Label = "  " }, ErrEmptyLabel},
		{"zero amount", func(d *ExpenseDraft) { d.Amount.Amount = 0 }, ErrNonPositiveAmount},
		{"negative amount", func(d *ExpenseDraft) { d.Amount.Amount = -5 }, ErrNonPositiveAmount},
		{"no participants", func(d *ExpenseDraft) { d.Participants = nil }, ErrNoParticipants},
		{"unknown payer", func(d *ExpenseDraft) { d.PaidBy = "ghost" }, ErrUnknownPayer},
		{"unknown participant", func(d *ExpenseDraft) { d.Participants = append(d.Participants, "ghost") }, ErrUnknownParticipant},
		{
			"share outside participants",
			func(d *ExpenseDraft) {
				d.Participants = []string{"laura", "david"}
				d.Strategy = PercentageSplit{Shares: map[string]float64{"laura": 50, "nina": 50}}
			},
			ErrShareNotParticipant,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			if err := ValidateDraft(d, testDirectory(), DefaultTolerances()); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateDraftLabelCheckedBeforeParticipants(t *testing.T) {
	// First failing rule wins.
	d := validDraft()
	d.Label = ""
	d.Participants = nil
	if err := ValidateDraft(d, testDirectory(), DefaultTolerances()); !errors.Is(err, ErrEmptyLabel) {
		t.Fatalf("expected ErrEmptyLabel first, got %v", err)
	}
}

func TestValidateDraftExactSplit(t *testing.T) {
	d := validDraft()
	d.Label = "Coffee & Snacks"
	d.Amount = Money{Amount: 47.50, Currency: "USD"}
	d.Strategy = ExactSplit{Shares: map[string]Money{
		"laura": {Amount: 12.50, Currency: "USD"},
		"david": {Amount: 8.00, Currency: "USD"},
		"nina":  {Amount: 27.00, Currency: "USD"},
	}}
	if err := ValidateDraft(d, testDirectory(), DefaultTolerances()); err != nil {
		t.Fatalf("exact shares summing to the total rejected: %v", err)
	}

	d.Strategy = ExactSplit{Shares: map[string]Money{
		"laura": {Amount: 12.50, Currency: "USD"},
		"david": {Amount: 8.00, Currency: "USD"},
		"nina":  {Amount: 26.00, Currency: "USD"},
	}}
	err := ValidateDraft(d, testDirectory(), DefaultTolerances())
	var mismatch ExactSplitMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ExactSplitMismatchError, got %v", err)
	}
	if math.Abs(mismatch.Expected-47.50) > 1e-9 || math.Abs(mismatch.Actual-46.50) > 1e-9 {
		t.Fatalf("expected {47.50 46.50}, got %+v", mismatch)
	}
}

func TestValidateDraftExactSplitTolerance(t *testing.T) {
	d := validDraft()
	d.Amount = Money{Amount: 30, Currency: "USD"}
	d.Strategy = ExactSplit{Shares: map[string]Money{
		"laura": {Amount: 10.005, Currency: "USD"},
		"david": {Amount: 10.000, Currency: "USD"},
		"nina":  {Amount: 10.000, Currency: "USD"},
	}}
	// 0.005 off is inside the 0.01 absolute tolerance.
	if err := ValidateDraft(d, testDirectory(), DefaultTolerances()); err != nil {
		t.Fatalf("sum within tolerance rejected: %v", err)
	}
}

func TestValidateDraftPercentageSplit(t *testing.T) {
	d := validDraft()
	d.Strategy = PercentageSplit{Shares: map[string]float64{"laura": 50, "david": 30, "nina": 20}}
	if err := ValidateDraft(d, testDirectory(), DefaultTolerances()); err != nil {
		t.Fatalf("percentages summing to 100 rejected: %v", err)
	}

	d.Strategy = PercentageSplit{Shares: map[string]float64{"laura": 50, "david": 30, "nina": 10}}
	err := ValidateDraft(d, testDirectory(), DefaultTolerances())
	var mismatch PercentageSplitMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected PercentageSplitMismatchError, got %v", err)
	}
	if math.Abs(mismatch.Total-90) > 1e-9 {
		t.Fatalf("expected total 90, got %v", mismatch.Total)
	}

	// 0.05 percentage points off is inside the 0.1 tolerance.
	d.Strategy = PercentageSplit{Shares: map[string]float64{"laura": 50.05, "david": 30, "nina": 20}}
	if err := ValidateDraft(d, testDirectory(), DefaultTolerances()); err != nil {
		t.Fatalf("percentages within tolerance rejected: %v", err)
	}
}

func TestValidateDraftCustomTolerances(t *testing.T) {
	tol := Tolerances{ExactAbs: 1.0, PercentagePts: 5}
	d := validDraft()
	d.Strategy = PercentageSplit{Shares: map[string]float64{"laura": 50, "david": 30, "nina": 16}}
	if err := ValidateDraft(d, testDirectory(), tol); err != nil {
		t.Fatalf("96%% should pass with a 5-point tolerance: %v", err)
	}
}
