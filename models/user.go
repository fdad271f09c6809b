package models

import (
	"time"
)

// User model
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Email          string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     // empty for OAuth-only accounts
	Name           string     `gorm:"size:255"`
	OAuthOnly      bool       `gorm:"default:false;not null"`
	Currency       string     `gorm:"size:8;default:'$';not null"`
	Salary         *float64   // optional monthly salary figure
	Categories     []Category
	Expenses       []Expense
}
