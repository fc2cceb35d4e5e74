package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

type Dispute struct {
	ID                  string        `gorm:"type:char(36);primaryKey" json:"id"`
	ReceiptId           string        `gorm:"type:char(36);index;not null" json:"receipt_id"`
	Status              DisputeStatus `gorm:"type:enum('submitted','in_review','resolved','rejected');default:submitted" json:"status"`
	Reason              DisputeReason `gorm:"size:50;not null" json:"reason"`
	Notes               string        `gorm:"type:text;default:null" json:"notes"`
	DisputedAmountCents int64         `gorm:"default:0" json:"disputed_amount_cents"`
	Items               []DisputeItem `gorm:"foreignKey:DisputeId" json:"items"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type DisputeItem struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	DisputeId     string    `gorm:"type:char(36);index;not null" json:"dispute_id"`
	ReceiptItemId string    `gorm:"type:char(36);index;not null" json:"receipt_item_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	AmountCents   int64     `gorm:"default:0" json:"amount_cents"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// DisputeItemSelection is one disputed line as submitted by the customer.
type DisputeItemSelection struct {
	ReceiptItemId string `json:"receipt_item_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
}

// ComputeDisputeLines validates the customer's selection against the
// receipt's items and computes per-line disputed amounts in minor units.
// Rules: every selection must reference an item of this receipt, no item may
// be selected twice, and 0 < quantity <= the item's purchased quantity.
// Line amount = round(unit_price x quantity x 100).
func ComputeDisputeLines(items []ReceiptItem, selections []DisputeItemSelection) ([]DisputeItem, int64, error) {
	if len(selections) == 0 {
		return nil, 0, utils.ErrorInvalidInput
	}

	byId := make(map[string]*ReceiptItem, len(items))
	for i := range items {
		byId[items[i].ID] = &items[i]
	}

	seen := make(map[string]bool, len(selections))
	lines := make([]DisputeItem, 0, len(selections))
	var totalCents int64
	for _, sel := range selections {
		item, ok := byId[sel.ReceiptItemId]
		if !ok {
			return nil, 0, utils.ErrorInvalidInput
		}
		if seen[sel.ReceiptItemId] {
			return nil, 0, utils.ErrorInvalidInput
		}
		seen[sel.ReceiptItemId] = true
		if sel.Quantity <= 0 || sel.Quantity > item.Quantity {
			return nil, 0, utils.ErrorInvalidInput
		}

		amountCents := utils.DecimalToCents(item.ItemPrice.Mul(decimalFromInt(sel.Quantity)))
		lines = append(lines, DisputeItem{
			ReceiptItemId: item.ID,
			Quantity:      sel.Quantity,
			AmountCents:   amountCents,
		})
		totalCents += amountCents
	}
	return lines, totalCents, nil
}

// CreateDispute validates and persists a dispute plus its item breakdown in
// one transaction. This path fails closed: any persistence error rolls the
// whole dispute back and is returned to the caller, so a dispute is never
// silently dropped or mis-recorded. The audit event afterwards is best
// effort per the event logger contract.
func CreateDispute(ctx context.Context, receiptId string, selections []DisputeItemSelection, reason DisputeReason, notes string) (*Dispute, error) {
	if !reason.IsValid() {
		return nil, utils.ErrorInvalidInput
	}
	if len(selections) == 0 {
		return nil, utils.ErrorInvalidInput
	}

	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}

	receipt, err := GetReceiptById(ctx, receiptId)
	if err != nil {
		return nil, err
	}

	lines, totalCents, err := ComputeDisputeLines(receipt.Items, selections)
	if err != nil {
		return nil, err
	}

	dispute := &Dispute{
		ID:                  uuid.NewString(),
		ReceiptId:           receipt.ID,
		Status:              DisputeStatusSubmitted,
		Reason:              reason,
		Notes:               notes,
		DisputedAmountCents: totalCents,
	}
	for i := range lines {
		lines[i].ID = uuid.NewString()
		lines[i].DisputeId = dispute.ID
	}
	dispute.Items = lines

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(dispute).Error
	})
	if err != nil {
		return nil, err
	}

	LogEvent(ctx, EventTypeDisputeCreated, &receipt.ID, JSONMap{
		"dispute_id":  dispute.ID,
		"reason_code": string(reason),
		"item_count":  len(lines),
		"total_cents": totalCents,
	})

	return dispute, nil
}

// GetDisputeById loads a dispute with its item breakdown.
func GetDisputeById(ctx context.Context, id string) (*Dispute, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	var dispute Dispute
	err := db.WithContext(ctx).Preload("Items").Where("id = ?", id).Take(&dispute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &dispute, nil
}

// ListDisputes returns disputes newest first, optionally filtered by status.
func ListDisputes(ctx context.Context, status *DisputeStatus, limit int) ([]*Dispute, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	dbCtx := db.WithContext(ctx).Preload("Items").Order("created_at DESC").Limit(limit)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	var disputes []*Dispute
	if err := dbCtx.Find(&disputes).Error; err != nil {
		return nil, err
	}
	return disputes, nil
}

// UpdateDisputeStatus is the bank-admin review action.
func UpdateDisputeStatus(ctx context.Context, id string, status DisputeStatus) (*Dispute, error) {
	if !status.IsValid() {
		return nil, utils.ErrorInvalidInput
	}
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	dispute, err := GetDisputeById(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&Dispute{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	dispute.Status = status
	return dispute, nil
}
