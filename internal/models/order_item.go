package models

import (
	"time"
)

// OrderItem captures a snapshot of the product at purchase time. ProductID is a
// soft reference: the product row may be deleted later without touching history.
type OrderItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"index;not null"`
	ProductID   uint      `json:"product_id" gorm:"index"`
	ProductName string    `json:"product_name" gorm:"not null"`
	UnitPrice   int64     `json:"unit_price" gorm:"not null"` // minor currency units
	Quantity    int       `json:"quantity" gorm:"not null"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
