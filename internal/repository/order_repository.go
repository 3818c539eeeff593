package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateReference signals that an order with the same payment reference
// already exists. The unique index on payment_reference is the only
// idempotency guard in the checkout path; callers must treat this as
// "already processed", not as a failure.
var ErrDuplicateReference = errors.New("payment reference already used")

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByReference(ctx context.Context, reference string) (*models.Order, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems inserts the order row and all its line items in one
// transaction. GORM persists the Items association inside the same tx, so
// either the order and every item exist or nothing does.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("payment_reference = ?", reference).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
