package models

import (
	"context"
	"testing"
)

// These tests are intentionally DB-free: with no database connected, the
// settings accessor falls back to the documented defaults, which is exactly
// the fail-open behavior under test.

func intPtr(n int) *int { return &n }

func TestIsBelowThreshold_NilScoreNeverHidden(t *testing.T) {
	receipt := &Receipt{}
	if IsBelowThreshold(context.Background(), receipt, intPtr(85)) {
		t.Error("receipt with no confidence score must not be below threshold")
	}
}

func TestIsBelowThreshold_NilReceipt(t *testing.T) {
	if IsBelowThreshold(context.Background(), nil, intPtr(85)) {
		t.Error("nil receipt must not be below threshold")
	}
}

func TestIsBelowThreshold_StrictComparison(t *testing.T) {
	cases := []struct {
		score     int
		threshold int
		want      bool
	}{
		{84, 85, true},
		{85, 85, false}, // equal is visible
		{86, 85, false},
		{0, 0, false},
		{0, 1, true},
		{100, 100, false},
	}
	for _, tc := range cases {
		receipt := &Receipt{ConfidenceScore: intPtr(tc.score)}
		got := IsBelowThreshold(context.Background(), receipt, intPtr(tc.threshold))
		if got != tc.want {
			t.Errorf("score=%d threshold=%d: got %v, want %v", tc.score, tc.threshold, got, tc.want)
		}
	}
}

func TestIsBelowThreshold_NilThresholdUsesPolicyDefault(t *testing.T) {
	// No DB connected: the policy threshold falls back to 85.
	below := &Receipt{ConfidenceScore: intPtr(84)}
	if !IsBelowThreshold(context.Background(), below, nil) {
		t.Error("score 84 should be below the default threshold 85")
	}
	at := &Receipt{ConfidenceScore: intPtr(85)}
	if IsBelowThreshold(context.Background(), at, nil) {
		t.Error("score 85 should not be below the default threshold 85")
	}
}

func TestConfidenceReasonLabel_KnownCodes(t *testing.T) {
	if got := ConfidenceReasonLabel("SOURCE_POS"); got != "Source verified from merchant POS" {
		t.Errorf("SOURCE_POS label = %q", got)
	}
	if got := ConfidenceReasonLabel("DESCRIPTOR_WEAK"); got != "Merchant descriptor is unclear" {
		t.Errorf("DESCRIPTOR_WEAK label = %q", got)
	}
}

func TestConfidenceReasonLabel_UnknownCodeHumanized(t *testing.T) {
	if got := ConfidenceReasonLabel("SOME_NEW_CODE"); got != "Some New Code" {
		t.Errorf("unknown code label = %q, want %q", got, "Some New Code")
	}
}

func TestFormatConfidenceReasons(t *testing.T) {
	got := FormatConfidenceReasons(StringArray{"TOTAL_EXACT", "NOT_A_KNOWN_CODE"})
	if len(got) != 2 {
		t.Fatalf("got %d labels, want 2", len(got))
	}
	if got[0] != "Transaction total matches receipt" {
		t.Errorf("got[0] = %q", got[0])
	}
	if got[1] != "Not A Known Code" {
		t.Errorf("got[1] = %q", got[1])
	}
}
