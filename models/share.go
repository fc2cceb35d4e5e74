package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
	"gorm.io/gorm"
)

// ReceiptShare is a QR share token for one receipt. Lifecycle policy
// (single-use, expiry window) is captured at creation time from the current
// bank settings, so later policy changes do not retroactively alter tokens.
type ReceiptShare struct {
	ID            string     `gorm:"type:char(36);primaryKey" json:"id"`
	ReceiptId     string     `gorm:"type:char(36);index;not null" json:"receipt_id"`
	Token         string     `gorm:"size:64;uniqueIndex;not null" json:"token"`
	SingleUse     bool       `gorm:"default:false" json:"single_use"`
	ExpiresAt     *time.Time `json:"expires_at"`
	ViewCount     int        `gorm:"default:0" json:"view_count"`
	FirstViewedAt *time.Time `json:"first_viewed_at"`
	Revoked       bool       `gorm:"default:false" json:"revoked"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func newShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateReceiptShare issues a share token for a receipt under the current
// QR policy.
func CreateReceiptShare(ctx context.Context, receiptId string) (*ReceiptShare, error) {
	if !IsQRVerificationEnabled(ctx) {
		return nil, utils.ErrorUnavailable
	}
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}

	receipt, err := GetReceiptById(ctx, receiptId)
	if err != nil {
		return nil, err
	}

	share := &ReceiptShare{
		ID:        uuid.NewString(),
		ReceiptId: receipt.ID,
		Token:     newShareToken(),
		SingleUse: IsQRSingleUseEnabled(ctx),
	}
	if minutes := GetQRTokenExpiryMinutes(ctx); minutes != nil {
		expiresAt := time.Now().UTC().Add(time.Duration(*minutes) * time.Minute)
		share.ExpiresAt = &expiresAt
	}

	if err := db.WithContext(ctx).Create(share).Error; err != nil {
		return nil, err
	}

	LogEvent(ctx, EventTypeReceiptShareCreated, &receipt.ID, JSONMap{
		"share_id":   share.ID,
		"token":      share.Token,
		"single_use": share.SingleUse,
		"expires_at": share.ExpiresAt,
	})

	return share, nil
}

// VerifyShareToken resolves a share token and returns the underlying
// receipt. Verification outcomes are audited either way. Single-use
// check-and-bump takes a best-effort redis lock per token; the row's
// view_count stays authoritative when redis is absent.
func VerifyShareToken(ctx context.Context, token string) (*Receipt, *ReceiptShare, error) {
	if !IsQRVerificationEnabled(ctx) {
		return nil, nil, utils.ErrorUnavailable
	}
	db := config.GetDB()
	if db == nil {
		return nil, nil, utils.ErrorUnavailable
	}

	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, "sharelock:"+token, 5*time.Second, nil)
		if err == nil {
			defer lock.Release(ctx)
		} else if err != redislock.ErrNotObtained {
			config.GetLogger().Warn("share token lock unavailable; proceeding: " + err.Error())
		}
	}

	var share ReceiptShare
	err := db.WithContext(ctx).Where("token = ?", token).Take(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			LogEvent(ctx, EventTypeReceiptVerificationFailed, nil, JSONMap{
				"token":  token,
				"reason": "token_not_found",
			})
			return nil, nil, utils.ErrorRecordNotFound
		}
		return nil, nil, err
	}

	receipt, err := GetReceiptById(ctx, share.ReceiptId)
	if err != nil {
		return nil, nil, err
	}

	if reason, ok := shareRejectionReason(&share, receipt, time.Now().UTC()); !ok {
		LogEvent(ctx, EventTypeReceiptVerificationFailed, &receipt.ID, JSONMap{
			"share_id": share.ID,
			"token":    token,
			"reason":   reason,
		})
		return nil, nil, utils.ErrorInvalidInput
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"view_count": gorm.Expr("view_count + 1"),
	}
	if share.FirstViewedAt == nil {
		updates["first_viewed_at"] = &now
	}
	if err := db.WithContext(ctx).Model(&ReceiptShare{}).Where("id = ?", share.ID).
		Updates(updates).Error; err != nil {
		return nil, nil, err
	}
	share.ViewCount++
	if share.FirstViewedAt == nil {
		share.FirstViewedAt = &now
	}

	LogEvent(ctx, EventTypeReceiptShareViewed, &receipt.ID, JSONMap{
		"share_id":   share.ID,
		"token":      token,
		"view_count": share.ViewCount,
	})
	LogEvent(ctx, EventTypeReceiptVerified, &receipt.ID, JSONMap{
		"share_id": share.ID,
		"token":    token,
	})

	return receipt, &share, nil
}

// shareRejectionReason applies the token lifecycle rules. ok=false comes
// with a machine-readable reason for the audit trail.
func shareRejectionReason(share *ReceiptShare, receipt *Receipt, now time.Time) (string, bool) {
	if share.Revoked {
		return "token_revoked", false
	}
	if share.ExpiresAt != nil && now.After(*share.ExpiresAt) {
		return "token_expired", false
	}
	if share.SingleUse && share.ViewCount > 0 {
		return "token_already_used", false
	}
	if receipt != nil && receipt.DemoExpiredQR {
		// Demo state simulation: the storefront can mint receipts whose QR
		// is already expired.
		return "token_expired", false
	}
	return "", true
}
