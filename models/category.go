package models

import "time"

// Category is a named spending bucket with a monthly limit.
// Name is unique per user; Limit 0 means no limit is enforced.
type Category struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint    `gorm:"index;not null;uniqueIndex:idx_user_category_name"`
	Name      string  `gorm:"size:255;not null;uniqueIndex:idx_user_category_name"`
	Limit     float64 `gorm:"column:monthly_limit;default:0;not null"`
	Icon      string  `gorm:"size:64"`
	Color     string  `gorm:"size:20"`
}
