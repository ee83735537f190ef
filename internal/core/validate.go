package core

import (
	"fmt"
	"math"
	"strings"
)

// Tolerances are the explicit sum-mismatch thresholds used when
// accepting exact and percentage splits. They exist as configuration
// rather than buried constants; DefaultTolerances matches the values
// the product has always shipped with.
type Tolerances struct {
	// ExactAbs is the absolute tolerance, in currency units, allowed
	// between an exact split's share sum and the expense total.
	ExactAbs float64
	// PercentagePts is the tolerance, in percentage points, allowed
	// between a percentage split's share sum and 100.
	PercentagePts float64
}

func DefaultTolerances() Tolerances {
	return Tolerances{ExactAbs: 0.01, PercentagePts: 0.1}
}

// ExactSplitMismatchError reports an exact split whose shares do not
// sum to the expense total.
type ExactSplitMismatchError struct {
	Expected float64
	Actual   float64
}

func (e ExactSplitMismatchError) Error() string {
	return fmt.Sprintf("exact split mismatch: shares sum to %.2f, expense total is %.2f", e.Actual, e.Expected)
}

// PercentageSplitMismatchError reports a percentage split whose shares
// do not sum to 100.
type PercentageSplitMismatchError struct {
	Total float64
}

func (e PercentageSplitMismatchError) Error() string {
	return fmt.Sprintf("split percentages must total 100, got %.2f", e.Total)
}

// ValidateDraft checks a draft against the participant directory and
// the split-specific sum invariants. Rules run in a fixed order and the
// first failing rule is reported. This is the only place numeric
// acceptance decisions are made; an expense that passes is treated as
// permanently valid.
func ValidateDraft(d ExpenseDraft, directory map[string]Participant, tol Tolerances) error {
	if strings.TrimSpace(d.Label) == "" {
		return ErrEmptyLabel
	}
	if d.Amount.Amount <= 0 {
		return ErrNonPositiveAmount
	}

	if len(d.Participants) == 0 {
		return ErrNoParticipants
	}
	if _, ok := directory[d.PaidBy]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPayer, d.PaidBy)
	}
	members := make(map[string]struct{}, len(d.Participants))
	for _, id := range d.Participants {
		if _, ok := directory[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParticipant, id)
		}
		members[id] = struct{}{}
	}

	switch s := d.Strategy.(type) {
	case ExactSplit:
		var sum float64
		for id, m := range s.Shares {
			if _, ok := members[id]; !ok {
				return fmt.Errorf("%w: %q", ErrShareNotParticipant, id)
			}
			sum += m.Amount
		}
		if math.Abs(sum-d.Amount.Amount) > tol.ExactAbs {
			return ExactSplitMismatchError{Expected: d.Amount.Amount, Actual: sum}
		}
	case PercentageSplit:
		var sum float64
		for id, pct := range s.Shares {
			if _, ok := members[id]; !ok {
				return fmt.Errorf("%w: %q", ErrShareNotParticipant, id)
			}
			sum += pct
		}
		if math.Abs(sum-100) > tol.PercentagePts {
			return PercentageSplitMismatchError{Total: sum}
		}
	default:
		// Equal split (or no strategy, which acceptance defaults to
		// equal): no additional numeric check.
	}

	return nil
}
