package db_models

import "github.com/google/uuid"

type Tier string

const (
	TierFree  Tier = "free"
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

func ValidTier(t Tier) bool {
	switch t {
	case TierFree, TierBasic, TierPro:
		return true
	}
	return false
}

// Subscription holds the single tier row per user. Rows are created lazily
// with tier=free the first time a metered feature is checked.
type Subscription struct {
	BaseModel
	UserID uuid.UUID `gorm:"uniqueIndex;not null"`
	Tier   Tier      `gorm:"size:16;default:free"`
}
