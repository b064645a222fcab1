package models

import (
	"time"
)

// BasketItem: one product in one user's basket. Unique per (user, product);
// adding the same product again bumps the quantity instead.
type BasketItem struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    uint          `json:"user_id" gorm:"uniqueIndex:idx_basket_user_product"`
	ProductID uint          `json:"product_id" gorm:"uniqueIndex:idx_basket_user_product"`
	Product   MasterProduct `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int           `json:"quantity" gorm:"default:1"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
