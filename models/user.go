package models

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/utils"
	"gorm.io/gorm"
)

// User is a bank-console operator account.
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:Analyst" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateUser stores a new operator with a bcrypt-hashed password.
func CreateUser(ctx context.Context, username, password string, role UserRole) (*User, error) {
	if username == "" || password == "" {
		return nil, utils.ErrorInvalidInput
	}
	if role != UserRoleAdmin && role != UserRoleAnalyst {
		return nil, utils.ErrorInvalidInput
	}
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:       uuid.NewString(),
		Username: username,
		Password: hashed,
		Role:     role,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if IsDuplicateKeyError(err) {
			return nil, utils.ErrorInvalidInput
		}
		return nil, err
	}
	return user, nil
}

// BootstrapAdminUser seeds the console admin from ADMIN_USERNAME and
// ADMIN_PASSWORD. A no-op when the vars are unset or the user already exists.
func BootstrapAdminUser(ctx context.Context) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}
	db := config.GetDB()
	if db == nil {
		return
	}
	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil || count > 0 {
		return
	}
	if _, err := CreateUser(ctx, username, password, UserRoleAdmin); err != nil {
		config.LogError(config.GetLogger(), "user.go", "BootstrapAdminUser", "create "+username, nil, err)
	}
}

// AuthenticateUser checks credentials and issues a signed token.
// Unknown username and wrong password are indistinguishable to the caller.
func AuthenticateUser(ctx context.Context, username, password string) (*User, string, error) {
	db := config.GetDB()
	if db == nil {
		return nil, "", utils.ErrorUnavailable
	}
	var user User
	err := db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", utils.ErrorRecordNotFound
		}
		return nil, "", err
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, "", utils.ErrorRecordNotFound
	}
	token, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetUserById loads one operator account.
func GetUserById(ctx context.Context, id string) (*User, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorUnavailable
	}
	var user User
	err := db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}
