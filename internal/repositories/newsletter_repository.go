package repositories

import (
	"context"

	"gorm.io/gorm"
	"studymate/internal/models/db_models"
)

type NewsletterRepository interface {
	// Subscribe stores the address. Returns created=false when the address
	// was already on the list.
	Subscribe(ctx context.Context, email string) (bool, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (n *newsletterRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	sub := db_models.NewsletterSubscriber{Email: email}
	res := n.db.WithContext(ctx).Create(&sub)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return true, nil
}
