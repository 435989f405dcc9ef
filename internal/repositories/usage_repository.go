package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"studymate/internal/models/db_models"
	"studymate/pkg/utils"
)

type UsageRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*db_models.UsageCounter, error)
	CreateDefault(ctx context.Context, userID uuid.UUID) error

	// CheckAndIncrement adds one to the feature counter only while it is
	// still under limit, in a single guarded UPDATE. Returns whether the
	// increment was applied. This is the one operation that must be atomic
	// under concurrent requests from the same user.
	CheckAndIncrement(ctx context.Context, userID uuid.UUID, feature db_models.Feature, limit int) (bool, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (u *usageRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*db_models.UsageCounter, error) {
	var usage db_models.UsageCounter
	err := u.db.WithContext(ctx).First(&usage, "user_id = ?", userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &usage, nil
}

func (u *usageRepository) CreateDefault(ctx context.Context, userID uuid.UUID) error {
	usage := db_models.UsageCounter{
		UserID:    userID,
		ResetDate: utils.NextResetDate(time.Now()),
	}
	err := u.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&usage).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// counterColumn whitelists the column name per feature kind; feature values
// never reach the SQL string unchecked.
func counterColumn(f db_models.Feature) (string, error) {
	switch f {
	case db_models.FeatureVideoSummaries:
		return "video_summaries_count", nil
	case db_models.FeatureFlashcardSets:
		return "flashcard_sets_count", nil
	case db_models.FeatureTextHumanizations:
		return "text_humanizations_count", nil
	}
	return "", fmt.Errorf("unknown feature kind: %s", f)
}

func (u *usageRepository) CheckAndIncrement(ctx context.Context, userID uuid.UUID, feature db_models.Feature, limit int) (bool, error) {
	col, err := counterColumn(feature)
	if err != nil {
		return false, err
	}

	res := u.db.WithContext(ctx).Exec(
		fmt.Sprintf(`UPDATE usage_counters
			SET %s = %s + 1, updated_at = ?
			WHERE user_id = ? AND %s < ? AND deleted_at IS NULL`, col, col, col),
		time.Now().Unix(), userID, limit,
	)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
