// Package alerts re-evaluates price alerts after a price-changing merge.
// Callers fire it in a goroutine once the catalog transaction has committed;
// failures are logged and swallowed, never surfaced to the merge caller.
package alerts

import (
	"fmt"
	"log"

	"shopsave-backend/models"

	"gorm.io/gorm"
)

// Reevaluate checks every active alert on the product against its current
// best price and writes a notification for each one that triggered. Triggered
// alerts are deactivated so a stable low price does not notify repeatedly.
func Reevaluate(db *gorm.DB, productID uint) {
	var product models.MasterProduct
	if err := db.Preload("Pricings").First(&product, productID).Error; err != nil {
		log.Printf("alerts: product %d not found for re-evaluation: %v", productID, err)
		return
	}

	bestPrice := 0.0
	for _, pricing := range product.Pricings {
		if pricing.CurrentPrice <= 0 {
			continue
		}
		if bestPrice == 0 || pricing.CurrentPrice < bestPrice {
			bestPrice = pricing.CurrentPrice
		}
	}
	if bestPrice == 0 {
		return
	}

	var triggered []models.PriceAlert
	if err := db.
		Where("product_id = ? AND is_active = ? AND target_price >= ?", productID, true, bestPrice).
		Find(&triggered).Error; err != nil {
		log.Printf("alerts: failed to load alerts for product %d: %v", productID, err)
		return
	}

	for _, alert := range triggered {
		notification := models.Notification{
			UserID:    alert.UserID,
			ProductID: productID,
			Title:     "Price drop",
			Message:   fmt.Sprintf("%s is now %.2f, at or below your target of %.2f", product.ProductName, bestPrice, alert.TargetPrice),
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("alerts: failed to create notification for user %d: %v", alert.UserID, err)
			continue
		}
		if err := db.Model(&models.PriceAlert{}).Where("id = ?", alert.ID).Update("is_active", false).Error; err != nil {
			log.Printf("alerts: failed to deactivate alert %d: %v", alert.ID, err)
		}
	}

	if len(triggered) > 0 {
		log.Printf("alerts: product %d triggered %d alert(s) at price %.2f", productID, len(triggered), bestPrice)
	}
}
