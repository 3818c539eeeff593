package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int64          `json:"price" gorm:"not null"` // minor currency units
	Stock       int            `json:"stock" gorm:"default:0"` // plain counter, admin managed
	Category    string         `json:"category" gorm:"index"`
	ImageURL    string         `json:"image_url"`
	Sizes       string         `json:"sizes"`  // comma separated, e.g. "S,M,L"
	Colors      string         `json:"colors"` // comma separated
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
