package models

import (
	"time"
)

// MasterProduct is the authoritative catalog entry for one real-world product.
// Barcode is globally unique; duplicates are rejected before creation.
type MasterProduct struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Barcode       string    `json:"barcode" gorm:"type:varchar(64);uniqueIndex:idx_products_barcode;not null"`
	ProductName   string    `json:"product_name" gorm:"not null"`
	PackSize      string    `json:"pack_size"`
	BrandID       uint      `json:"brand_id"`
	Brand         Brand     `json:"brand" gorm:"foreignKey:BrandID"`
	CategoryID    uint      `json:"category_id"`
	Category      Category  `json:"category" gorm:"foreignKey:CategoryID"`
	RRP           float64   `json:"rrp"`
	Size          string    `json:"size"`
	Unit          string    `json:"unit"`
	Configuration string    `json:"configuration"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Pricings []RetailerCurrentPricing `json:"pricings,omitempty" gorm:"foreignKey:ProductID"`
}
