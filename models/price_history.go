package models

import (
	"time"
)

// PriceHistory is append-only: one row per price-affecting merge event.
// Rows are never updated; they only disappear via cascading product deletion.
type PriceHistory struct {
	ID                       uint      `json:"id" gorm:"primaryKey"`
	RetailerCurrentPricingID uint      `json:"retailer_current_pricing_id" gorm:"index"`
	RRP                      float64   `json:"rrp"`
	CurrentPrice             float64   `json:"current_price"`
	Date                     time.Time `json:"date" gorm:"autoCreateTime"`
}
