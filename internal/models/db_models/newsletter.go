package db_models

type NewsletterSubscriber struct {
	BaseModel
	Email string `gorm:"uniqueIndex;not null"`
}
