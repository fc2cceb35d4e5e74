package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
)

// DisputeAttachment is one piece of uploaded evidence on a dispute. The
// object itself lives in cloud storage; this row carries the pointers.
type DisputeAttachment struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	DisputeId    string    `gorm:"type:char(36);index;not null" json:"dispute_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	SizeBytes    int64     `gorm:"default:0" json:"size_bytes"`
	StorageUrl   string    `gorm:"size:500;not null" json:"storage_url"`
	ThumbnailUrl string    `gorm:"size:500;default:null" json:"thumbnail_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CreateDisputeAttachment records uploaded evidence against an existing
// dispute.
func CreateDisputeAttachment(ctx context.Context, disputeId, fileName, contentType string, sizeBytes int64, storageUrl, thumbnailUrl string) (*DisputeAttachment, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	if _, err := GetDisputeById(ctx, disputeId); err != nil {
		return nil, err
	}
	attachment := &DisputeAttachment{
		ID:           uuid.NewString(),
		DisputeId:    disputeId,
		FileName:     fileName,
		ContentType:  contentType,
		SizeBytes:    sizeBytes,
		StorageUrl:   storageUrl,
		ThumbnailUrl: thumbnailUrl,
	}
	if err := db.WithContext(ctx).Create(attachment).Error; err != nil {
		return nil, err
	}
	return attachment, nil
}

// ListDisputeAttachments returns evidence rows for one dispute.
func ListDisputeAttachments(ctx context.Context, disputeId string) ([]*DisputeAttachment, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	var attachments []*DisputeAttachment
	err := db.WithContext(ctx).Where("dispute_id = ?", disputeId).
		Order("created_at ASC").Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}
