package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UserID           *uint          `json:"user_id" gorm:"index"` // nil for guest checkout
	Status           string         `json:"status" gorm:"default:'pending'"` // pending, paid, shipped, delivered, cancelled
	TotalAmount      int64          `json:"total_amount" gorm:"not null"`  // minor currency units
	ShippingCost     int64          `json:"shipping_cost" gorm:"not null"` // minor currency units
	PaymentReference string         `json:"payment_reference" gorm:"uniqueIndex;not null"`
	CustomerName     string         `json:"customer_name" gorm:"not null"`
	CustomerEmail    string         `json:"customer_email" gorm:"not null"`
	AddressLine1     string         `json:"address_line1" gorm:"not null"`
	AddressLine2     string         `json:"address_line2"`
	City             string         `json:"city" gorm:"not null"`
	State            string         `json:"state"`
	PostalCode       string         `json:"postal_code"`
	Country          string         `json:"country" gorm:"not null"`
	Items            []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the fixed order statuses.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
