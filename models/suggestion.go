package models

import (
	"time"
)

// SuggestionDetails is an externally-sourced candidate product/price record.
// It lives until the merge engine resolves it (matched to an existing product
// or promoted to a new one), at which point it is deleted together with its
// MatchSuggestion links. Intervention flags a candidate for manual review
// without resolving it.
type SuggestionDetails struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ProductName   string    `json:"product_name"`
	Barcode       string    `json:"barcode" gorm:"type:varchar(64);index"`
	BrandName     string    `json:"brand_name"`
	CategoryID    uint      `json:"category_id"`
	RetailerID    uint      `json:"retailer_id"`
	Retailer      Retailer  `json:"retailer" gorm:"foreignKey:RetailerID"`
	RetailerCode  string    `json:"retailer_code"`
	CurrentPrice  float64   `json:"current_price"`
	RRP           float64   `json:"rrp"`
	PackSize      string    `json:"pack_size"`
	Size          string    `json:"size"`
	Unit          string    `json:"unit"`
	PerUnitPrice  string    `json:"per_unit_price"`
	OfferInfo     string    `json:"offer_info"`
	PromotionType string    `json:"promotion_type"`
	ProductURL    string    `json:"product_url"`
	Intervention  bool      `json:"intervention" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`

	Matches []MatchSuggestion `json:"matches,omitempty" gorm:"foreignKey:SuggestionDetailsID"`
}

// MatchSuggestion links a candidate to an existing retailer pricing row the
// upstream matcher believes is the same real-world item.
type MatchSuggestion struct {
	ID                      uint    `json:"id" gorm:"primaryKey"`
	SuggestionDetailsID     uint    `json:"suggestion_details_id" gorm:"index"`
	MatchedProductPricingID uint    `json:"matched_product_pricing_id"`
	MatchConfidence         float64 `json:"match_confidence"`
}
