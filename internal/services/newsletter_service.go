package services

import (
	"context"
	"log"

	"studymate/internal/repositories"
	"studymate/pkg/utils"
)

type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, email string) error
}

type newsletterService struct {
	repo repositories.NewsletterRepository
	mail MailServiceInterface
}

func NewNewsletterService(repo repositories.NewsletterRepository, mail MailServiceInterface) NewsletterServiceInterface {
	return &newsletterService{repo: repo, mail: mail}
}

// Subscribe is idempotent: re-subscribing an address succeeds without
// sending a second welcome mail.
func (n *newsletterService) Subscribe(ctx context.Context, email string) error {
	created, err := n.repo.Subscribe(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !created {
		return nil
	}

	if err := n.mail.SendNotification(email, "Welcome to the newsletter",
		"Thanks for subscribing! We'll let you know about new study tools and tips."); err != nil {
		// The subscription stands either way.
		log.Printf("newsletter: welcome mail failed for %s: %v", email, err)
	}
	return nil
}
