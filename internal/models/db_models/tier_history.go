package db_models

import "github.com/google/uuid"

// TierHistory is the append-only log of tier changes shown on the
// subscription page. A tier change closes the current row and appends a new
// one with is_current=true.
type TierHistory struct {
	BaseModel
	UserID       uuid.UUID `gorm:"index;not null"`
	Tier         Tier      `gorm:"size:16"`
	StartDate    int64     `gorm:"not null"`
	EndDate      *int64
	DurationDays *int
	IsCurrent    bool   `gorm:"default:true;index"`
	ChangeReason string `gorm:"size:255"`
}
