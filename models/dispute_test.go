package models

import (
	"context"
	"errors"
	"testing"

	"github.com/proofpay/proofpay_backend/utils"
	"github.com/shopspring/decimal"
)

func receiptItemsFixture() []ReceiptItem {
	return []ReceiptItem{
		{ID: "item-1", ItemName: "Air Zoom", ItemPrice: decimal.RequireFromString("19.99"), Quantity: 2},
		{ID: "item-2", ItemName: "Dri-FIT Tee", ItemPrice: decimal.RequireFromString("10.00"), Quantity: 1},
		{ID: "item-3", ItemName: "Socks", ItemPrice: decimal.RequireFromString("0.99"), Quantity: 3},
	}
}

func TestComputeDisputeLines_FullSelection(t *testing.T) {
	lines, total, err := ComputeDisputeLines(receiptItemsFixture(), []DisputeItemSelection{
		{ReceiptItemId: "item-1", Quantity: 2},
		{ReceiptItemId: "item-2", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].AmountCents != 3998 {
		t.Errorf("line 0 = %d cents, want 3998", lines[0].AmountCents)
	}
	if lines[1].AmountCents != 1000 {
		t.Errorf("line 1 = %d cents, want 1000", lines[1].AmountCents)
	}
	if total != 4998 {
		t.Errorf("total = %d cents, want 4998", total)
	}
}

func TestComputeDisputeLines_PartialQuantity(t *testing.T) {
	lines, total, err := ComputeDisputeLines(receiptItemsFixture(), []DisputeItemSelection{
		{ReceiptItemId: "item-1", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].AmountCents != 1999 || total != 1999 {
		t.Errorf("got line=%d total=%d, want 1999/1999", lines[0].AmountCents, total)
	}
}

func TestComputeDisputeLines_EmptySelection(t *testing.T) {
	_, _, err := ComputeDisputeLines(receiptItemsFixture(), nil)
	if !errors.Is(err, utils.ErrorInvalidInput) {
		t.Errorf("got %v, want ErrorInvalidInput", err)
	}
}

func TestComputeDisputeLines_ForeignItem(t *testing.T) {
	_, _, err := ComputeDisputeLines(receiptItemsFixture(), []DisputeItemSelection{
		{ReceiptItemId: "not-on-this-receipt", Quantity: 1},
	})
	if !errors.Is(err, utils.ErrorInvalidInput) {
		t.Errorf("got %v, want ErrorInvalidInput", err)
	}
}

func TestComputeDisputeLines_DuplicateSelection(t *testing.T) {
	_, _, err := ComputeDisputeLines(receiptItemsFixture(), []DisputeItemSelection{
		{ReceiptItemId: "item-1", Quantity: 1},
		{ReceiptItemId: "item-1", Quantity: 1},
	})
	if !errors.Is(err, utils.ErrorInvalidInput) {
		t.Errorf("got %v, want ErrorInvalidInput", err)
	}
}

func TestComputeDisputeLines_QuantityOutOfRange(t *testing.T) {
	for _, qty := range []int{0, -1, 3} {
		_, _, err := ComputeDisputeLines(receiptItemsFixture(), []DisputeItemSelection{
			{ReceiptItemId: "item-1", Quantity: qty},
		})
		if !errors.Is(err, utils.ErrorInvalidInput) {
			t.Errorf("qty=%d: got %v, want ErrorInvalidInput", qty, err)
		}
	}
}

func TestComputeDisputeLines_RoundsPerLine(t *testing.T) {
	// 0.99 x 3 = 2.97 -> 297 cents, no floating point drift.
	lines, total, err := ComputeDisputeLines(receiptItemsFixture(), []DisputeItemSelection{
		{ReceiptItemId: "item-3", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].AmountCents != 297 || total != 297 {
		t.Errorf("got line=%d total=%d, want 297/297", lines[0].AmountCents, total)
	}
}

func TestCreateDispute_InvalidReason(t *testing.T) {
	_, err := CreateDispute(context.Background(), "r-1", []DisputeItemSelection{{ReceiptItemId: "i", Quantity: 1}}, "not_a_reason", "")
	if !errors.Is(err, utils.ErrorInvalidInput) {
		t.Errorf("got %v, want ErrorInvalidInput", err)
	}
}

func TestCreateDispute_EmptySelections(t *testing.T) {
	_, err := CreateDispute(context.Background(), "r-1", nil, DisputeReasonOther, "")
	if !errors.Is(err, utils.ErrorInvalidInput) {
		t.Errorf("got %v, want ErrorInvalidInput", err)
	}
}

func TestCreateDispute_NoDatabase(t *testing.T) {
	_, err := CreateDispute(context.Background(), "r-1", []DisputeItemSelection{{ReceiptItemId: "i", Quantity: 1}}, DisputeReasonOther, "")
	if !errors.Is(err, utils.ErrorUnavailable) {
		t.Errorf("got %v, want ErrorUnavailable", err)
	}
}
