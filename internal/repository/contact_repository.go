package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepository) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.WithContext(ctx).First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id).Error
}
