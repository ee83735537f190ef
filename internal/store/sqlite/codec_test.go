package sqlite

import (
	"reflect"
	"testing"

	"tripsplit/internal/core"
)

func TestStrategyCodec(t *testing.T) {
	cases := []struct {
		name     string
		strategy core.SplitStrategy
	}{
		{"equal", core.EqualSplit{}},
		{"exact", core.ExactSplit{Shares: map[string]core.Money{
			"laura": {Amount: 12.50, Currency: "USD"},
			"david": {Amount: 8.00, Currency: "USD"},
		}}},
		{"percentage", core.PercentageSplit{Shares: map[string]float64{
			"laura": 50, "david": 30, "nina": 20,
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shares, err := encodeShares(tc.strategy)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := decodeStrategy(string(tc.strategy.Type()), shares)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.strategy) {
				t.Fatalf("round trip changed strategy: %+v vs %+v", got, tc.strategy)
			}
		})
	}
}

func TestDecodeStrategyUnknownType(t *testing.T) {
	if _, err := decodeStrategy("weighted", "{}"); err == nil {
		t.Fatal("unknown split type accepted")
	}
}

func TestParticipantsCodec(t *testing.T) {
	in := []string{"laura", "david", "nina"}
	raw, err := encodeParticipants(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeParticipants(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip changed participants: %v vs %v", in, out)
	}
}
