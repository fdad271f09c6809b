package models

import "time"

// PasswordReset stores a hashed one-time reset code with expiry and single use.
type PasswordReset struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint      `gorm:"index;not null"`
	CodeHash  string    `gorm:"size:128;not null;index"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Used      bool      `gorm:"default:false"`
}
