package models

import (
	"context"
	"sync"
	"time"

	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
	"gorm.io/gorm/clause"
)

// BankSetting is a singleton row per key. The value payload is a small JSON
// object whose shape depends on the key.
type BankSetting struct {
	ID          int        `gorm:"primary_key" json:"id"`
	Key         SettingKey `gorm:"column:setting_key;size:100;uniqueIndex;not null" json:"key"`
	Value       JSONMap    `gorm:"type:json" json:"value"`
	Description string     `gorm:"size:255;default:null" json:"description"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BankSetting) TableName() string {
	return "bank_settings"
}

// Hardcoded fallbacks. Settings reads are fail-open: a configuration error
// must never block the customer-facing flow.
const (
	DefaultConfidenceThreshold = 85
	defaultReceiptsEnabled     = true
	defaultQRVerification      = true
	defaultQRSingleUse         = false
)

// getSettingValue fetches one row. ok=false covers every failure mode the
// same way: DB not connected, row absent, query error, bad payload.
func getSettingValue(ctx context.Context, key SettingKey) (JSONMap, bool) {
	db := config.GetDB()
	if db == nil {
		return nil, false
	}
	var setting BankSetting
	err := db.WithContext(ctx).Where("setting_key = ?", key).Take(&setting).Error
	if err != nil {
		if !IsMissingTableError(err) {
			logger := config.GetLogger()
			logger.Warnf("failed to read setting %s, using default: %v", key, err)
		}
		return nil, false
	}
	if setting.Value == nil {
		return nil, false
	}
	return setting.Value, true
}

// upsertSetting writes a row by key and reports success. Errors are logged,
// never returned: setters surface failure as false.
func upsertSetting(ctx context.Context, key SettingKey, value JSONMap, description string) bool {
	db := config.GetDB()
	if db == nil {
		return false
	}
	setting := BankSetting{
		Key:         key,
		Value:       value,
		Description: description,
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		config.LogError(config.GetLogger(), "setting.go", "upsertSetting", "upsert "+string(key), value, err)
		return false
	}
	return true
}

func valueInt(value JSONMap, field string) (int, bool) {
	raw, ok := value[field]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

func valueBool(value JSONMap, field string) (bool, bool) {
	raw, ok := value[field]
	if !ok || raw == nil {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

// GetConfidenceThreshold returns the active policy threshold (default 85).
func GetConfidenceThreshold(ctx context.Context) int {
	value, ok := getSettingValue(ctx, SettingKeyConfidenceThreshold)
	if !ok {
		return DefaultConfidenceThreshold
	}
	threshold, ok := valueInt(value, "threshold")
	if !ok {
		return DefaultConfidenceThreshold
	}
	return threshold
}

// SetConfidenceThreshold clamps to [0,100], upserts, and records a
// policy_updated audit event. The evaluator relies on this clamp and does
// not re-validate.
func SetConfidenceThreshold(ctx context.Context, threshold int) bool {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 100 {
		threshold = 100
	}
	ok := upsertSetting(ctx, SettingKeyConfidenceThreshold,
		JSONMap{"threshold": threshold},
		"Receipts scoring below this confidence threshold are hidden from customers.")
	if ok {
		LogEvent(ctx, EventTypePolicyUpdated, nil, JSONMap{
			"key":       string(SettingKeyConfidenceThreshold),
			"threshold": threshold,
		})
	}
	return ok
}

// IsReceiptsEnabled is the master receipts toggle (default enabled).
// enabled=false means the whole receipts surface presents as unavailable.
func IsReceiptsEnabled(ctx context.Context) bool {
	value, ok := getSettingValue(ctx, SettingKeyReceiptsEnabled)
	if !ok {
		return defaultReceiptsEnabled
	}
	enabled, ok := valueBool(value, "enabled")
	if !ok {
		return defaultReceiptsEnabled
	}
	return enabled
}

func SetReceiptsEnabled(ctx context.Context, enabled bool) bool {
	ok := upsertSetting(ctx, SettingKeyReceiptsEnabled,
		JSONMap{"enabled": enabled},
		"Master toggle for the customer-facing receipts experience.")
	if ok {
		LogEvent(ctx, EventTypePolicyUpdated, nil, JSONMap{
			"key":     string(SettingKeyReceiptsEnabled),
			"enabled": enabled,
		})
	}
	return ok
}

func IsQRVerificationEnabled(ctx context.Context) bool {
	value, ok := getSettingValue(ctx, SettingKeyEnableQRVerification)
	if !ok {
		return defaultQRVerification
	}
	enabled, ok := valueBool(value, "enabled")
	if !ok {
		return defaultQRVerification
	}
	return enabled
}

func SetQRVerificationEnabled(ctx context.Context, enabled bool) bool {
	ok := upsertSetting(ctx, SettingKeyEnableQRVerification,
		JSONMap{"enabled": enabled},
		"Master toggle to enable or disable QR code verification functionality.")
	if ok {
		LogEvent(ctx, EventTypePolicyUpdated, nil, JSONMap{
			"key":     string(SettingKeyEnableQRVerification),
			"enabled": enabled,
		})
	}
	return ok
}

func IsQRSingleUseEnabled(ctx context.Context) bool {
	value, ok := getSettingValue(ctx, SettingKeyQRSingleUseEnabled)
	if !ok {
		return defaultQRSingleUse
	}
	enabled, ok := valueBool(value, "enabled")
	if !ok {
		return defaultQRSingleUse
	}
	return enabled
}

func SetQRSingleUseEnabled(ctx context.Context, enabled bool) bool {
	ok := upsertSetting(ctx, SettingKeyQRSingleUseEnabled,
		JSONMap{"enabled": enabled},
		"If enabled, all new QR tokens will be single-use (can only be verified once).")
	if ok {
		LogEvent(ctx, EventTypePolicyUpdated, nil, JSONMap{
			"key":     string(SettingKeyQRSingleUseEnabled),
			"enabled": enabled,
		})
	}
	return ok
}

// GetQRTokenExpiryMinutes returns 5, 15 or 60, or nil meaning never expire.
func GetQRTokenExpiryMinutes(ctx context.Context) *int {
	value, ok := getSettingValue(ctx, SettingKeyQRTokenExpiryMinutes)
	if !ok {
		return nil
	}
	minutes, ok := valueInt(value, "minutes")
	if !ok || minutes == 0 {
		return nil
	}
	return &minutes
}

// SetQRTokenExpiryMinutes is the one setter that validates before writing:
// downstream token-expiry computation assumes exactly these four states.
func SetQRTokenExpiryMinutes(ctx context.Context, minutes *int) (bool, error) {
	if minutes != nil && *minutes != 5 && *minutes != 15 && *minutes != 60 {
		return false, utils.ErrorInvalidInput
	}
	value := JSONMap{"minutes": nil}
	if minutes != nil {
		value["minutes"] = *minutes
	}
	ok := upsertSetting(ctx, SettingKeyQRTokenExpiryMinutes, value,
		"Number of minutes until QR tokens expire. Options: 5, 15, 60, or null (never expire).")
	if ok {
		LogEvent(ctx, EventTypePolicyUpdated, nil, JSONMap{
			"key":     string(SettingKeyQRTokenExpiryMinutes),
			"minutes": value["minutes"],
		})
	}
	return ok, nil
}

// GetRetentionDays returns the advisory retention policy in days;
// 0 means no policy is set. Consumed by an external purge job.
func GetRetentionDays(ctx context.Context) int {
	value, ok := getSettingValue(ctx, SettingKeyRetentionDaysPolicy)
	if !ok {
		return 0
	}
	days, ok := valueInt(value, "days")
	if !ok {
		return 0
	}
	return days
}

func SetRetentionDays(ctx context.Context, days int) bool {
	if days < 0 {
		days = 0
	}
	ok := upsertSetting(ctx, SettingKeyRetentionDaysPolicy,
		JSONMap{"days": days},
		"Advisory retention window in days, consumed by the external purge job.")
	if ok {
		LogEvent(ctx, EventTypePolicyUpdated, nil, JSONMap{
			"key":  string(SettingKeyRetentionDaysPolicy),
			"days": days,
		})
	}
	return ok
}

// QRSettings is the combined view the admin console reads.
type QRSettings struct {
	EnableQRVerification bool `json:"enable_qr_verification"`
	QRSingleUseEnabled   bool `json:"qr_single_use_enabled"`
	QRTokenExpiryMinutes *int `json:"qr_token_expiry_minutes"`
}

// GetAllQRSettings fetches the three QR values concurrently. Each fetch
// fails open on its own, so one bad row never blocks the others.
func GetAllQRSettings(ctx context.Context) QRSettings {
	var settings QRSettings
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		settings.EnableQRVerification = IsQRVerificationEnabled(ctx)
	}()
	go func() {
		defer wg.Done()
		settings.QRSingleUseEnabled = IsQRSingleUseEnabled(ctx)
	}()
	go func() {
		defer wg.Done()
		settings.QRTokenExpiryMinutes = GetQRTokenExpiryMinutes(ctx)
	}()
	wg.Wait()
	return settings
}
