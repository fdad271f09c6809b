package models

import "time"

// Expense is a single spend record attributed to one category.
// CreatedAt is authoritative for month bucketing. IsOverLimit is a cached
// projection of "month-to-date category spend exceeds the category limit",
// recomputed on mutations; it is never authoritative on its own.
//
// CategoryID has no FK constraint on purpose: deleting a category leaves its
// expenses referencing a row that no longer exists, and reads handle the
// missing join.
type Expense struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint    `gorm:"index;not null"`
	CategoryID  uint    `gorm:"index;not null"`
	Amount      float64 `gorm:"not null"`
	Description string  `gorm:"size:255"`
	IsOverLimit bool    `gorm:"default:false;not null"`
}
