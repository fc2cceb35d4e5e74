package models

import (
	"testing"
	"time"
)

func TestShareRejectionReason(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name    string
		share   ReceiptShare
		receipt Receipt
		reason  string
		ok      bool
	}{
		{"fresh token", ReceiptShare{}, Receipt{}, "", true},
		{"revoked", ReceiptShare{Revoked: true}, Receipt{}, "token_revoked", false},
		{"expired", ReceiptShare{ExpiresAt: &past}, Receipt{}, "token_expired", false},
		{"not yet expired", ReceiptShare{ExpiresAt: &future}, Receipt{}, "", true},
		{"single use unseen", ReceiptShare{SingleUse: true}, Receipt{}, "", true},
		{"single use already viewed", ReceiptShare{SingleUse: true, ViewCount: 1}, Receipt{}, "token_already_used", false},
		{"multi use viewed", ReceiptShare{ViewCount: 7}, Receipt{}, "", true},
		{"demo expired receipt", ReceiptShare{}, Receipt{DemoExpiredQR: true}, "token_expired", false},
	}
	for _, tc := range cases {
		reason, ok := shareRejectionReason(&tc.share, &tc.receipt, now)
		if ok != tc.ok || reason != tc.reason {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.name, reason, ok, tc.reason, tc.ok)
		}
	}
}

func TestNewShareToken(t *testing.T) {
	a := newShareToken()
	b := newShareToken()
	if len(a) != 32 {
		t.Errorf("token length = %d, want 32", len(a))
	}
	if a == b {
		t.Error("tokens should be unique")
	}
}
