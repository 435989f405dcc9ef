package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"studymate/internal/models/db_models"
)

// isUniqueViolation reports whether err is a Postgres duplicate-key error
// (SQLSTATE 23505). Lazy default-row creation treats those as success.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type SubscriptionRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*db_models.Subscription, error)
	CreateDefault(ctx context.Context, userID uuid.UUID) error
	UpsertTier(ctx context.Context, userID uuid.UUID, tier db_models.Tier) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (s *subscriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

// CreateDefault inserts a free-tier row, ignoring the race where a concurrent
// request created it first.
func (s *subscriptionRepository) CreateDefault(ctx context.Context, userID uuid.UUID) error {
	sub := db_models.Subscription{UserID: userID, Tier: db_models.TierFree}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&sub).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func (s *subscriptionRepository) UpsertTier(ctx context.Context, userID uuid.UUID, tier db_models.Tier) error {
	sub := db_models.Subscription{UserID: userID, Tier: tier}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"tier": tier}),
		}).
		Create(&sub).Error
}
