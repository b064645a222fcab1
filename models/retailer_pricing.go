package models

import (
	"time"
)

// Recognized promotion types. Anything else coming in from candidates
// normalizes to PromotionRetailer at merge time.
const (
	PromotionRetailer  = "retailer"
	PromotionMultibuy  = "multibuy"
	PromotionHalfPrice = "halfprice"
	PromotionClearance = "clearance"
	PromotionLoyalty   = "loyalty"
)

func IsKnownPromotion(p string) bool {
	switch p {
	case PromotionRetailer, PromotionMultibuy, PromotionHalfPrice, PromotionClearance, PromotionLoyalty:
		return true
	}
	return false
}

// RetailerCurrentPricing is one retailer's current offer for one product.
// Unique on (barcode, retailer_id, retailer_code); two concurrent merges for
// the same offer lose the race on this index instead of silently overwriting.
// WasPrice holds the previous CurrentPrice and only advances when the price
// actually changes.
type RetailerCurrentPricing struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ProductID     uint      `json:"product_id"`
	Barcode       string    `json:"barcode" gorm:"type:varchar(64);uniqueIndex:idx_pricing_offer;not null"`
	RetailerID    uint      `json:"retailer_id" gorm:"uniqueIndex:idx_pricing_offer"`
	Retailer      Retailer  `json:"retailer" gorm:"foreignKey:RetailerID"`
	RetailerCode  string    `json:"retailer_code" gorm:"type:varchar(64);uniqueIndex:idx_pricing_offer"`
	CurrentPrice  float64   `json:"current_price"`
	WasPrice      float64   `json:"was_price"`
	PerUnitPrice  string    `json:"per_unit_price"`
	OfferInfo     string    `json:"offer_info"`
	PromotionType string    `json:"promotion_type" gorm:"default:retailer"`
	ProductURL    string    `json:"product_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}
