package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
)

// ReceiptEvent is an append-only audit record. Rows double as the outbox
// for the Pub/Sub side channel: the dispatcher claims PENDING rows and
// publishes them after commit.
type ReceiptEvent struct {
	ID               string     `gorm:"type:char(36);primaryKey" json:"id"`
	EventType        EventType  `gorm:"size:50;index;not null" json:"event_type"`
	ReceiptId        *string    `gorm:"type:char(36);index" json:"receipt_id"`
	Metadata         JSONMap    `gorm:"type:json" json:"metadata"`
	PublishStatus    string     `gorm:"size:20;index;default:PENDING" json:"publish_status"`
	PublishAttempts  int        `gorm:"default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time `json:"next_attempt_at"`
	PublishedAt      *time.Time `json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:64" json:"pub_sub_message_id"`
	LockedAt         *time.Time `json:"locked_at"`
	LockedBy         *string    `gorm:"size:64" json:"locked_by"`
	LastPublishError *string    `gorm:"size:500" json:"last_publish_error"`
	CorrelationId    string     `gorm:"size:64;default:null" json:"correlation_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ReceiptEvent) TableName() string {
	return "receipt_events"
}

// LogEvent appends one audit event, best effort. It never returns an error
// and never panics: event loss under transient failure is accepted, and a
// failed write must not fail the operation that triggered it.
func LogEvent(ctx context.Context, eventType EventType, receiptId *string, metadata JSONMap) {
	logger := config.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("event log panic recovered (%s): %v", eventType, r)
		}
	}()

	if !eventType.IsValid() {
		logger.Warnf("invalid event type %q; dropping event", eventType)
		return
	}

	db := config.GetDB()
	if db == nil {
		logger.Warn("database not connected; skipping event log")
		return
	}

	if metadata == nil {
		metadata = JSONMap{}
	}
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	event := ReceiptEvent{
		ID:            uuid.NewString(),
		EventType:     eventType,
		ReceiptId:     receiptId,
		Metadata:      metadata,
		PublishStatus: EventPublishStatusPending,
		CorrelationId: correlationId,
	}
	if err := db.WithContext(ctx).Create(&event).Error; err != nil {
		if IsMissingTableError(err) {
			// Deployment-ordering concern: migrations have not created
			// receipt_events yet. Not fatal, no retry.
			logger.Warn("receipt_events table does not exist; run migrations to enable event logging")
			return
		}
		config.LogError(logger, "event.go", "LogEvent", "insert "+string(eventType), event.ReceiptId, err)
	}
}

// ListRecentEvents returns the newest audit rows for the admin console.
func ListRecentEvents(ctx context.Context, limit int) ([]*ReceiptEvent, error) {
	db := config.GetDB()
	if db == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []*ReceiptEvent
	err := db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
