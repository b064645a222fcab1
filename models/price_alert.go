package models

import (
	"time"
)

// PriceAlert asks to be notified when a product's best price drops to
// TargetPrice or below. Re-evaluated after every price-changing merge.
type PriceAlert struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	UserID      uint          `json:"user_id" gorm:"index"`
	ProductID   uint          `json:"product_id" gorm:"index"`
	Product     MasterProduct `json:"product" gorm:"foreignKey:ProductID"`
	TargetPrice float64       `json:"target_price"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
