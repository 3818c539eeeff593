package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type ContactService interface {
	SubmitMessage(ctx context.Context, message *models.ContactMessage) error
	GetMessages(ctx context.Context) ([]models.ContactMessage, error)
	GetMessageByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	DeleteMessage(ctx context.Context, id uint) error
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) SubmitMessage(ctx context.Context, message *models.ContactMessage) error {
	return s.contactRepo.Create(ctx, message)
}

func (s *contactService) GetMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.contactRepo.GetAll(ctx)
}

func (s *contactService) GetMessageByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	return s.contactRepo.GetByID(ctx, id)
}

func (s *contactService) DeleteMessage(ctx context.Context, id uint) error {
	return s.contactRepo.Delete(ctx, id)
}
