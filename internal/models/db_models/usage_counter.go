package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Feature string

const (
	FeatureVideoSummaries    Feature = "video_summaries"
	FeatureFlashcardSets     Feature = "flashcard_sets"
	FeatureTextHumanizations Feature = "text_humanizations"
)

// TierLimits is the single source of truth for per-feature monthly limits.
// Both the enforcement path and the usage-display endpoint read this table,
// so the numbers a user sees are the numbers the gate enforces.
var TierLimits = map[Tier]map[Feature]int{
	TierFree: {
		FeatureVideoSummaries:    5,
		FeatureFlashcardSets:     5,
		FeatureTextHumanizations: 10,
	},
	TierBasic: {
		FeatureVideoSummaries:    20,
		FeatureFlashcardSets:     20,
		FeatureTextHumanizations: 40,
	},
	TierPro: {
		FeatureVideoSummaries:    1000,
		FeatureFlashcardSets:     1000,
		FeatureTextHumanizations: 500,
	},
}

// LimitFor defaults unknown tiers to free.
func LimitFor(t Tier, f Feature) int {
	limits, ok := TierLimits[t]
	if !ok {
		limits = TierLimits[TierFree]
	}
	return limits[f]
}

// UsageCounter tracks per-user consumption of metered features. ResetDate is
// written on creation; zeroing the counters on schedule is owned by the
// database, not this service.
type UsageCounter struct {
	BaseModel
	UserID                 uuid.UUID `gorm:"uniqueIndex;not null"`
	VideoSummariesCount    int       `gorm:"default:0"`
	FlashcardSetsCount     int       `gorm:"default:0"`
	TextHumanizationsCount int       `gorm:"default:0"`
	ResetDate              time.Time
}

// CountFor returns the stored counter for a feature kind.
func (u *UsageCounter) CountFor(f Feature) int {
	switch f {
	case FeatureVideoSummaries:
		return u.VideoSummariesCount
	case FeatureFlashcardSets:
		return u.FlashcardSetsCount
	case FeatureTextHumanizations:
		return u.TextHumanizationsCount
	}
	return 0
}
