package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"studymate/internal/models/db_models"
)

type TierHistoryRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.TierHistory, error)

	// RecordChange closes the current row (end_date, duration_days,
	// is_current=false) and appends a new current row for the new tier.
	RecordChange(ctx context.Context, userID uuid.UUID, tier db_models.Tier, reason string) error
}

type tierHistoryRepository struct {
	db *gorm.DB
}

func NewTierHistoryRepository(db *gorm.DB) TierHistoryRepository {
	return &tierHistoryRepository{db: db}
}

func (t *tierHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.TierHistory, error) {
	var rows []db_models.TierHistory
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *tierHistoryRepository) RecordChange(ctx context.Context, userID uuid.UUID, tier db_models.Tier, reason string) error {
	now := time.Now().Unix()

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current db_models.TierHistory
		err := tx.Where("user_id = ? AND is_current = TRUE", userID).
			First(&current).Error

		if err == nil {
			days := int((now - current.StartDate) / 86400)
			if err := tx.Model(&current).Updates(map[string]interface{}{
				"end_date":      now,
				"duration_days": days,
				"is_current":    false,
			}).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		next := db_models.TierHistory{
			UserID:       userID,
			Tier:         tier,
			StartDate:    now,
			IsCurrent:    true,
			ChangeReason: reason,
		}
		return tx.Create(&next).Error
	})
}
