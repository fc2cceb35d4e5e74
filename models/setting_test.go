package models

import (
	"context"
	"errors"
	"testing"

	"github.com/proofpay/proofpay_backend/utils"
)

// With no database connected, every getter must fall back to its documented
// default: a configuration outage never blocks the customer-facing flow.

func TestSettings_DefaultsWithoutDatabase(t *testing.T) {
	ctx := context.Background()

	if got := GetConfidenceThreshold(ctx); got != 85 {
		t.Errorf("GetConfidenceThreshold = %d, want 85", got)
	}
	if !IsReceiptsEnabled(ctx) {
		t.Error("IsReceiptsEnabled default should be true")
	}
	if !IsQRVerificationEnabled(ctx) {
		t.Error("IsQRVerificationEnabled default should be true")
	}
	if IsQRSingleUseEnabled(ctx) {
		t.Error("IsQRSingleUseEnabled default should be false")
	}
	if got := GetQRTokenExpiryMinutes(ctx); got != nil {
		t.Errorf("GetQRTokenExpiryMinutes = %v, want nil (never expire)", *got)
	}
	if got := GetRetentionDays(ctx); got != 0 {
		t.Errorf("GetRetentionDays = %d, want 0", got)
	}
}

func TestSetters_ReportFailureWithoutDatabase(t *testing.T) {
	ctx := context.Background()

	if SetConfidenceThreshold(ctx, 90) {
		t.Error("SetConfidenceThreshold should report failure with no database")
	}
	if SetReceiptsEnabled(ctx, false) {
		t.Error("SetReceiptsEnabled should report failure with no database")
	}
	if SetRetentionDays(ctx, 30) {
		t.Error("SetRetentionDays should report failure with no database")
	}
}

func TestSetQRTokenExpiryMinutes_Validation(t *testing.T) {
	ctx := context.Background()

	for _, minutes := range []int{1, 10, 30, 120, -5} {
		m := minutes
		ok, err := SetQRTokenExpiryMinutes(ctx, &m)
		if !errors.Is(err, utils.ErrorInvalidInput) {
			t.Errorf("minutes=%d: got err=%v, want ErrorInvalidInput", minutes, err)
		}
		if ok {
			t.Errorf("minutes=%d: stored despite invalid value", minutes)
		}
	}

	// Allowed values pass validation; the store write still fails (no DB)
	// but without an error.
	for _, minutes := range []int{5, 15, 60} {
		m := minutes
		ok, err := SetQRTokenExpiryMinutes(ctx, &m)
		if err != nil {
			t.Errorf("minutes=%d: unexpected error %v", minutes, err)
		}
		if ok {
			t.Errorf("minutes=%d: reported success with no database", minutes)
		}
	}
	if ok, err := SetQRTokenExpiryMinutes(ctx, nil); err != nil || ok {
		t.Errorf("nil minutes: got ok=%v err=%v, want false/nil", ok, err)
	}
}

func TestGetAllQRSettings_DefaultsWithoutDatabase(t *testing.T) {
	settings := GetAllQRSettings(context.Background())
	if !settings.EnableQRVerification {
		t.Error("EnableQRVerification default should be true")
	}
	if settings.QRSingleUseEnabled {
		t.Error("QRSingleUseEnabled default should be false")
	}
	if settings.QRTokenExpiryMinutes != nil {
		t.Errorf("QRTokenExpiryMinutes = %v, want nil", *settings.QRTokenExpiryMinutes)
	}
}

func TestValueHelpers(t *testing.T) {
	value := JSONMap{"threshold": float64(72), "enabled": true, "minutes": nil}

	if n, ok := valueInt(value, "threshold"); !ok || n != 72 {
		t.Errorf("valueInt(threshold) = %d,%v", n, ok)
	}
	if _, ok := valueInt(value, "minutes"); ok {
		t.Error("valueInt on nil field should report !ok")
	}
	if _, ok := valueInt(value, "absent"); ok {
		t.Error("valueInt on absent field should report !ok")
	}
	if b, ok := valueBool(value, "enabled"); !ok || !b {
		t.Errorf("valueBool(enabled) = %v,%v", b, ok)
	}
	if _, ok := valueBool(value, "threshold"); ok {
		t.Error("valueBool on non-bool field should report !ok")
	}
}
