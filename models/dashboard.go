package models

import (
	"context"

	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
)

// UsageSummary feeds the admin dashboard. Counts come straight from the
// audit trail and the domain tables.
type UsageSummary struct {
	TotalReceipts       int64                   `json:"total_receipts"`
	EventCounts         map[EventType]int64     `json:"event_counts"`
	DisputeCounts       map[DisputeStatus]int64 `json:"dispute_counts"`
	TotalDisputedCents  int64                   `json:"total_disputed_cents"`
	ConfidenceThreshold int                     `json:"confidence_threshold"`
	ReceiptsEnabled     bool                    `json:"receipts_enabled"`
}

type countRow struct {
	Key   string
	Count int64
}

// GetUsageSummary aggregates receipt, event and dispute activity. Each
// aggregate query is independent; a missing table zeroes that section
// instead of failing the whole dashboard.
func GetUsageSummary(ctx context.Context) (*UsageSummary, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}

	summary := &UsageSummary{
		EventCounts:         map[EventType]int64{},
		DisputeCounts:       map[DisputeStatus]int64{},
		ConfidenceThreshold: GetConfidenceThreshold(ctx),
		ReceiptsEnabled:     IsReceiptsEnabled(ctx),
	}

	if err := db.WithContext(ctx).Model(&Receipt{}).Count(&summary.TotalReceipts).Error; err != nil {
		if !IsMissingTableError(err) {
			return nil, err
		}
	}

	var eventRows []countRow
	err := db.WithContext(ctx).Model(&ReceiptEvent{}).
		Select("event_type AS `key`, COUNT(*) AS count").
		Group("event_type").
		Scan(&eventRows).Error
	if err != nil {
		if !IsMissingTableError(err) {
			return nil, err
		}
	}
	for _, row := range eventRows {
		summary.EventCounts[EventType(row.Key)] = row.Count
	}

	var disputeRows []countRow
	err = db.WithContext(ctx).Model(&Dispute{}).
		Select("status AS `key`, COUNT(*) AS count").
		Group("status").
		Scan(&disputeRows).Error
	if err != nil {
		if !IsMissingTableError(err) {
			return nil, err
		}
	}
	for _, row := range disputeRows {
		summary.DisputeCounts[DisputeStatus(row.Key)] = row.Count
	}

	var totalDisputed struct{ Total int64 }
	err = db.WithContext(ctx).Model(&Dispute{}).
		Select("COALESCE(SUM(disputed_amount_cents), 0) AS total").
		Scan(&totalDisputed).Error
	if err != nil {
		if !IsMissingTableError(err) {
			return nil, err
		}
	}
	summary.TotalDisputedCents = totalDisputed.Total

	return summary, nil
}
