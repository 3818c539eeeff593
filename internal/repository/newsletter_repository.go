package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// ErrAlreadySubscribed signals a duplicate newsletter email.
var ErrAlreadySubscribed = errors.New("email already subscribed")

type NewsletterRepository interface {
	Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	GetAll(ctx context.Context) ([]models.NewsletterSubscriber, error)
	Delete(ctx context.Context, id uint) error
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	err := r.db.WithContext(ctx).Create(subscriber).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadySubscribed
	}
	return err
}

func (r *newsletterRepository) GetAll(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&subscribers).Error
	return subscribers, err
}

func (r *newsletterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.NewsletterSubscriber{}, id).Error
}
