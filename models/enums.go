package models

// Domain enumerations. Values match the rows the admin console and the
// analytics consumers already expect, so they are wire-stable strings.

type EventType string

const (
	EventTypeReceiptCreated            EventType = "receipt_created"
	EventTypeReceiptViewed             EventType = "receipt_viewed"
	EventTypeDisputeCreated            EventType = "dispute_created"
	EventTypeReceiptViewBlocked        EventType = "receipt_view_blocked"
	EventTypePolicyUpdated             EventType = "policy_updated"
	EventTypeReceiptShareCreated       EventType = "receipt_share_created"
	EventTypeReceiptShareViewed        EventType = "receipt_share_viewed"
	EventTypeReceiptVerified           EventType = "receipt_verified"
	EventTypeReceiptVerificationFailed EventType = "receipt_verification_failed"
)

var validEventTypes = map[EventType]bool{
	EventTypeReceiptCreated:            true,
	EventTypeReceiptViewed:             true,
	EventTypeDisputeCreated:            true,
	EventTypeReceiptViewBlocked:        true,
	EventTypePolicyUpdated:             true,
	EventTypeReceiptShareCreated:       true,
	EventTypeReceiptShareViewed:        true,
	EventTypeReceiptVerified:           true,
	EventTypeReceiptVerificationFailed: true,
}

func (t EventType) IsValid() bool {
	return validEventTypes[t]
}

type DisputeStatus string

const (
	DisputeStatusSubmitted DisputeStatus = "submitted"
	DisputeStatusInReview  DisputeStatus = "in_review"
	DisputeStatusResolved  DisputeStatus = "resolved"
	DisputeStatusRejected  DisputeStatus = "rejected"
)

func (s DisputeStatus) IsValid() bool {
	switch s {
	case DisputeStatusSubmitted, DisputeStatusInReview, DisputeStatusResolved, DisputeStatusRejected:
		return true
	}
	return false
}

type DisputeReason string

const (
	DisputeReasonItemNotReceived         DisputeReason = "item_not_received"
	DisputeReasonItemDefective           DisputeReason = "item_defective"
	DisputeReasonUnauthorizedTransaction DisputeReason = "unauthorized_transaction"
	DisputeReasonDuplicateCharge         DisputeReason = "duplicate_charge"
	DisputeReasonIncorrectAmount         DisputeReason = "incorrect_amount"
	DisputeReasonMerchantError           DisputeReason = "merchant_error"
	DisputeReasonOther                   DisputeReason = "other"
)

func (r DisputeReason) IsValid() bool {
	switch r {
	case DisputeReasonItemNotReceived, DisputeReasonItemDefective, DisputeReasonUnauthorizedTransaction,
		DisputeReasonDuplicateCharge, DisputeReasonIncorrectAmount, DisputeReasonMerchantError, DisputeReasonOther:
		return true
	}
	return false
}

type ConfidenceLabel string

const (
	ConfidenceLabelHigh   ConfidenceLabel = "HIGH"
	ConfidenceLabelMedium ConfidenceLabel = "MEDIUM"
	ConfidenceLabelLow    ConfidenceLabel = "LOW"
)

type ReceiptSource string

const (
	ReceiptSourceSimulated ReceiptSource = "simulated"
)

// Setting keys. At most one bank_settings row exists per key.
type SettingKey string

const (
	SettingKeyConfidenceThreshold  SettingKey = "confidence_threshold"
	SettingKeyReceiptsEnabled      SettingKey = "receipts_enabled"
	SettingKeyEnableQRVerification SettingKey = "enable_qr_verification"
	SettingKeyQRSingleUseEnabled   SettingKey = "qr_single_use_enabled"
	SettingKeyQRTokenExpiryMinutes SettingKey = "qr_token_expiry_minutes"
	SettingKeyRetentionDaysPolicy  SettingKey = "retention_days_policy"
)

// Audit event publish lifecycle (outbox side channel).
const (
	EventPublishStatusPending    = "PENDING"
	EventPublishStatusProcessing = "PROCESSING"
	EventPublishStatusPublished  = "PUBLISHED"
	EventPublishStatusFailed     = "FAILED"
	EventPublishStatusDead       = "DEAD"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "Admin"
	UserRoleAnalyst UserRole = "Analyst"
)
