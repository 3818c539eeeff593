package services

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type NewsletterService interface {
	// Subscribe is idempotent: subscribing an already-subscribed email is
	// reported as success.
	Subscribe(ctx context.Context, email string) error
	GetSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, id uint) error
}

type newsletterService struct {
	newsletterRepo repository.NewsletterRepository
}

func NewNewsletterService(newsletterRepo repository.NewsletterRepository) NewsletterService {
	return &newsletterService{newsletterRepo: newsletterRepo}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	err := s.newsletterRepo.Create(ctx, &models.NewsletterSubscriber{Email: email})
	if errors.Is(err, repository.ErrAlreadySubscribed) {
		return nil
	}
	return err
}

func (s *newsletterService) GetSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	return s.newsletterRepo.GetAll(ctx)
}

func (s *newsletterService) Unsubscribe(ctx context.Context, id uint) error {
	return s.newsletterRepo.Delete(ctx, id)
}
