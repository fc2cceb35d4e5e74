package models

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Receipt struct {
	ID                string           `gorm:"type:char(36);primaryKey" json:"id"`
	PaymentId         string           `gorm:"size:255;uniqueIndex;not null" json:"payment_id"`
	Amount            decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Currency          string           `gorm:"size:3;not null" json:"currency"`
	MerchantName      string           `gorm:"size:255;default:null" json:"merchant_name"`
	Source            ReceiptSource    `gorm:"size:50;default:null" json:"source"`
	PurchaseTime      *time.Time       `json:"purchase_time"`
	ConfidenceScore   *int             `gorm:"default:null" json:"confidence_score"`
	ConfidenceLabel   *ConfidenceLabel `gorm:"type:enum('HIGH','MEDIUM','LOW');default:null" json:"confidence_label"`
	ConfidenceReasons StringArray      `gorm:"type:json" json:"confidence_reasons"`
	DemoRefunded      bool             `gorm:"column:demo_refunded;default:false" json:"demo_refunded"`
	DemoDisputed      bool             `gorm:"column:demo_disputed;default:false" json:"demo_disputed"`
	DemoExpiredQR     bool             `gorm:"column:demo_expired_qr;default:false" json:"demo_expired_qr"`
	Items             []ReceiptItem    `gorm:"foreignKey:ReceiptId" json:"items"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type ReceiptItem struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`
	ReceiptId string          `gorm:"type:char(36);index;not null" json:"receipt_id"`
	ItemName  string          `gorm:"size:255;not null" json:"item_name"`
	ItemPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"item_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// CartItem is one storefront line on a simulated purchase.
type CartItem struct {
	ProductId      string `json:"product_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Sku            string `json:"sku" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	UnitPriceCents int64  `json:"unit_price_cents" binding:"required,gt=0"`
	Variation      string `json:"variation"`
}

type SimulatePurchaseInput struct {
	Items         []CartItem `json:"items" binding:"required,min=1,dive"`
	LowConfidence bool       `json:"low_confidence"`
	DemoRefunded  bool       `json:"demo_refunded"`
	DemoDisputed  bool       `json:"demo_disputed"`
	DemoExpiredQR bool       `json:"demo_expired_qr"`
}

func generateFakePaymentId() string {
	return fmt.Sprintf("sim_pay_%d_%s", time.Now().UnixMilli(), utils.RandomIdSuffix(6))
}

func generateFakeOrderId() string {
	return fmt.Sprintf("sim_ord_%d_%s", time.Now().UnixMilli(), utils.RandomIdSuffix(6))
}

// synthesizeConfidence produces the demo confidence fields. High-confidence
// receipts score 92-99; low-confidence ones score 40-70 and split into
// LOW/MEDIUM at 55. Reason codes are fixed per band.
func synthesizeConfidence(lowConfidence bool) (int, ConfidenceLabel, StringArray) {
	if lowConfidence {
		score := rand.Intn(31) + 40
		label := ConfidenceLabelMedium
		if score < 55 {
			label = ConfidenceLabelLow
		}
		return score, label, StringArray{"DESCRIPTOR_WEAK", "TIME_WINDOW_WIDE"}
	}
	score := rand.Intn(8) + 92
	return score, ConfidenceLabelHigh, StringArray{"SOURCE_POS", "TOTAL_EXACT", "TIME_EXACT"}
}

// CreateSimulatedReceipt ingests a storefront demo purchase: receipt plus
// items in one transaction, then a best-effort receipt_created event.
// Returns the receipt and the fake order id.
func CreateSimulatedReceipt(ctx context.Context, input SimulatePurchaseInput) (*Receipt, string, error) {
	db := config.GetDB()
	if db == nil {
		return nil, "", utils.ErrorUnavailable
	}
	if len(input.Items) == 0 {
		return nil, "", utils.ErrorInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductId == "" || item.Name == "" || item.Sku == "" || item.Quantity <= 0 || item.UnitPriceCents <= 0 {
			return nil, "", utils.ErrorInvalidInput
		}
	}

	totalCents := int64(0)
	for _, item := range input.Items {
		totalCents += item.UnitPriceCents * int64(item.Quantity)
	}
	amount := decimal.NewFromInt(totalCents).Div(decimal.NewFromInt(100))

	score, label, reasons := synthesizeConfidence(input.LowConfidence)
	now := time.Now().UTC()
	orderId := generateFakeOrderId()

	receipt := &Receipt{
		ID:                uuid.NewString(),
		PaymentId:         generateFakePaymentId(),
		Amount:            amount,
		Currency:          "AUD",
		MerchantName:      "Nike Store (Demo)",
		Source:            ReceiptSourceSimulated,
		PurchaseTime:      &now,
		ConfidenceScore:   &score,
		ConfidenceLabel:   &label,
		ConfidenceReasons: reasons,
		DemoRefunded:      input.DemoRefunded,
		DemoDisputed:      input.DemoDisputed,
		DemoExpiredQR:     input.DemoExpiredQR,
	}
	for _, item := range input.Items {
		name := item.Name
		if item.Variation != "" {
			name = fmt.Sprintf("%s (%s)", item.Name, item.Variation)
		}
		receipt.Items = append(receipt.Items, ReceiptItem{
			ID:        uuid.NewString(),
			ReceiptId: receipt.ID,
			ItemName:  name,
			ItemPrice: decimal.NewFromInt(item.UnitPriceCents).Div(decimal.NewFromInt(100)),
			Quantity:  item.Quantity,
		})
	}

	err := db.WithContext(ctx).Create(receipt).Error
	if IsDuplicateKeyError(err) {
		// Demo-only scaffolding: the timestamped fake payment id collided,
		// mint a new one and try once more.
		receipt.PaymentId = generateFakePaymentId()
		err = db.WithContext(ctx).Create(receipt).Error
	}
	if err != nil {
		return nil, "", err
	}

	LogEvent(ctx, EventTypeReceiptCreated, &receipt.ID, JSONMap{
		"source":      string(ReceiptSourceSimulated),
		"total":       amount.String(),
		"total_cents": totalCents,
		"item_count":  len(input.Items),
		"payment_id":  receipt.PaymentId,
		"order_id":    orderId,
	})

	return receipt, orderId, nil
}

// GetReceiptById loads a receipt with its items.
func GetReceiptById(ctx context.Context, id string) (*Receipt, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	var receipt Receipt
	err := db.WithContext(ctx).Preload("Items").Where("id = ?", id).Take(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// ListReceipts returns receipts newest first. limit <= 0 means the default page.
func ListReceipts(ctx context.Context, limit int) ([]*Receipt, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var receipts []*Receipt
	err := db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}
