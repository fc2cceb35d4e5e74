package models

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/proofpay/proofpay_backend/utils"
)

func TestSynthesizeConfidence_HighBand(t *testing.T) {
	for i := 0; i < 200; i++ {
		score, label, reasons := synthesizeConfidence(false)
		if score < 92 || score > 99 {
			t.Fatalf("high-confidence score %d out of band [92,99]", score)
		}
		if label != ConfidenceLabelHigh {
			t.Fatalf("high-confidence label = %q", label)
		}
		if len(reasons) != 3 || reasons[0] != "SOURCE_POS" {
			t.Fatalf("high-confidence reasons = %v", reasons)
		}
	}
}

func TestSynthesizeConfidence_LowBand(t *testing.T) {
	for i := 0; i < 200; i++ {
		score, label, reasons := synthesizeConfidence(true)
		if score < 40 || score > 70 {
			t.Fatalf("low-confidence score %d out of band [40,70]", score)
		}
		if score < 55 && label != ConfidenceLabelLow {
			t.Fatalf("score %d should label LOW, got %q", score, label)
		}
		if score >= 55 && label != ConfidenceLabelMedium {
			t.Fatalf("score %d should label MEDIUM, got %q", score, label)
		}
		if len(reasons) != 2 || reasons[0] != "DESCRIPTOR_WEAK" {
			t.Fatalf("low-confidence reasons = %v", reasons)
		}
	}
}

func TestGenerateFakeIds(t *testing.T) {
	payment := generateFakePaymentId()
	order := generateFakeOrderId()
	if !strings.HasPrefix(payment, "sim_pay_") {
		t.Errorf("payment id %q missing sim_pay_ prefix", payment)
	}
	if !strings.HasPrefix(order, "sim_ord_") {
		t.Errorf("order id %q missing sim_ord_ prefix", order)
	}
	if payment == generateFakePaymentId() {
		t.Error("payment ids should not repeat")
	}
}

func TestCreateSimulatedReceipt_NoDatabase(t *testing.T) {
	_, _, err := CreateSimulatedReceipt(context.Background(), SimulatePurchaseInput{
		Items: []CartItem{{ProductId: "p1", Name: "Shoe", Sku: "SKU1", Quantity: 1, UnitPriceCents: 1999}},
	})
	if !errors.Is(err, utils.ErrorUnavailable) {
		t.Errorf("got %v, want ErrorUnavailable", err)
	}
}

func TestGetReceiptById_NoDatabase(t *testing.T) {
	_, err := GetReceiptById(context.Background(), "r-1")
	if !errors.Is(err, utils.ErrorUnavailable) {
		t.Errorf("got %v, want ErrorUnavailable", err)
	}
}
