package controllers

import (
	"errors"
	"log"
	"strings"

	"shopsave-backend/alerts"
	"shopsave-backend/database"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetSuggestions lists unresolved candidates for review, oldest first, with
// their match links. ?intervention=true narrows to flagged candidates.
func GetSuggestions(c *fiber.Ctx) error {
	query := database.DB.Preload("Matches").Preload("Retailer").Order("created_at ASC")

	switch c.Query("intervention") {
	case "true":
		query = query.Where("intervention = ?", true)
	case "false":
		query = query.Where("intervention = ?", false)
	}
	if retailerID := c.Query("retailer_id"); retailerID != "" {
		query = query.Where("retailer_id = ?", retailerID)
	}

	var suggestions []models.SuggestionDetails
	if err := query.Find(&suggestions).Error; err != nil {
		log.Printf("❌ Failed to fetch suggestions: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to fetch suggestions")
	}

	return ok(c, "Suggestions fetched", suggestions)
}

// ToggleIntervention flags or unflags a candidate for manual review without
// resolving it.
func ToggleIntervention(c *fiber.Ctx) error {
	var suggestion models.SuggestionDetails
	if err := database.DB.First(&suggestion, c.Params("id")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Suggestion not found")
	}

	suggestion.Intervention = !suggestion.Intervention
	if err := database.DB.Save(&suggestion).Error; err != nil {
		log.Printf("❌ Failed to toggle intervention on suggestion %d: %v", suggestion.ID, err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to update suggestion")
	}

	return ok(c, "Intervention flag updated", suggestion)
}

type MatchInput struct {
	ProductID uint `json:"product_id"`
}

// MatchCandidate resolves a candidate against an existing product. The
// pricing/history writes and the candidate deletion share one transaction: a
// crash mid-merge leaves the candidate unresolved for retry. A second call on
// the same candidate finds it deleted and returns NOT_FOUND — callers treat
// that as "already resolved".
func MatchCandidate(c *fiber.Ctx) error {
	var input MatchInput
	if err := c.BodyParser(&input); err != nil || input.ProductID == 0 {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "product_id is required")
	}

	var suggestion models.SuggestionDetails
	if err := database.DB.First(&suggestion, c.Params("id")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Suggestion not found")
	}

	var product models.MasterProduct
	if err := database.DB.First(&product, input.ProductID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Product not found")
	}

	promotion := suggestion.PromotionType
	if !models.IsKnownPromotion(promotion) {
		promotion = models.PromotionRetailer
	}

	tx := database.DB.Begin()

	priceChanged := false
	var existing models.RetailerCurrentPricing
	err := tx.Where("barcode = ? AND retailer_id = ?", product.Barcode, suggestion.RetailerID).First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pricing := models.RetailerCurrentPricing{
			ProductID:     product.ID,
			Barcode:       product.Barcode,
			RetailerID:    suggestion.RetailerID,
			RetailerCode:  suggestion.RetailerCode,
			CurrentPrice:  suggestion.CurrentPrice,
			PerUnitPrice:  suggestion.PerUnitPrice,
			OfferInfo:     suggestion.OfferInfo,
			PromotionType: promotion,
			ProductURL:    suggestion.ProductURL,
		}
		if err := tx.Create(&pricing).Error; err != nil {
			tx.Rollback()
			if isDuplicateErr(err) {
				return fail(c, fiber.StatusConflict, StatusConflict, "Concurrent pricing write, please retry")
			}
			log.Printf("❌ Failed to create pricing from suggestion %d: %v", suggestion.ID, err)
			return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create retailer offer")
		}
		history := models.PriceHistory{
			RetailerCurrentPricingID: pricing.ID,
			RRP:                      suggestion.RRP,
			CurrentPrice:             pricing.CurrentPrice,
		}
		if err := tx.Create(&history).Error; err != nil {
			tx.Rollback()
			return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create price history")
		}

	case err == nil:
		if existing.CurrentPrice != suggestion.CurrentPrice {
			existing.WasPrice = existing.CurrentPrice
			existing.CurrentPrice = suggestion.CurrentPrice
			// Only refresh with values the candidate actually supplies;
			// never overwrite good data with empties.
			if suggestion.OfferInfo != "" {
				existing.OfferInfo = suggestion.OfferInfo
			}
			if suggestion.PerUnitPrice != "" {
				existing.PerUnitPrice = suggestion.PerUnitPrice
			}
			if err := tx.Save(&existing).Error; err != nil {
				tx.Rollback()
				log.Printf("❌ Failed to update pricing %d: %v", existing.ID, err)
				return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to update retailer offer")
			}
			history := models.PriceHistory{
				RetailerCurrentPricingID: existing.ID,
				RRP:                      suggestion.RRP,
				CurrentPrice:             existing.CurrentPrice,
			}
			if err := tx.Create(&history).Error; err != nil {
				tx.Rollback()
				return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create price history")
			}
			priceChanged = true
		}
		// Unchanged price: no pricing mutation, no history row.

	default:
		tx.Rollback()
		log.Printf("❌ Pricing lookup failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to load retailer offer")
	}

	if err := tx.Where("suggestion_details_id = ?", suggestion.ID).Delete(&models.MatchSuggestion{}).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete match links")
	}
	if err := tx.Delete(&suggestion).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete suggestion")
	}

	if err := tx.Commit().Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to commit transaction")
	}

	if priceChanged {
		// Fire-and-forget: a failed alert pass is logged inside, never
		// surfaced to the merge caller.
		go alerts.Reevaluate(database.DB, product.ID)
	}

	return ok(c, "Suggestion matched to product", fiber.Map{
		"product_id":    product.ID,
		"price_changed": priceChanged,
	})
}

type PromoteInput struct {
	SuggestionID  uint    `json:"suggestion_id" form:"suggestion_id"`
	ProductName   string  `json:"product_name" form:"product_name"`
	Barcode       string  `json:"barcode" form:"barcode"`
	BrandName     string  `json:"brand_name" form:"brand_name"`
	CategoryID    uint    `json:"category_id" form:"category_id"`
	RetailerID    uint    `json:"retailer_id" form:"retailer_id"`
	RetailerCode  string  `json:"retailer_code" form:"retailer_code"`
	CurrentPrice  float64 `json:"current_price" form:"current_price"`
	RRP           float64 `json:"rrp" form:"rrp"`
	PackSize      string  `json:"pack_size" form:"pack_size"`
	Size          string  `json:"size" form:"size"`
	Unit          string  `json:"unit" form:"unit"`
	PerUnitPrice  string  `json:"per_unit_price" form:"per_unit_price"`
	OfferInfo     string  `json:"offer_info" form:"offer_info"`
	PromotionType string  `json:"promotion_type" form:"promotion_type"`
	ProductURL    string  `json:"product_url" form:"product_url"`
}

// getOrCreateBrand matches brands by name with spaces stripped and case
// folded, creating one when nothing matches. Known trade-off: genuinely
// distinct brands differing only in spacing or case will merge.
func getOrCreateBrand(tx *gorm.DB, name string) (models.Brand, error) {
	normalized := strings.ReplaceAll(strings.ToLower(name), " ", "")

	var brand models.Brand
	err := tx.Where("REPLACE(LOWER(name), ' ', '') = ?", normalized).First(&brand).Error
	if err == nil {
		return brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return brand, err
	}

	brand = models.Brand{Name: strings.TrimSpace(name)}
	if err := tx.Create(&brand).Error; err != nil {
		return brand, err
	}
	return brand, nil
}

// PromoteCandidate turns a candidate into a brand-new MasterProduct with its
// first retailer offer and history row, then deletes the candidate.
func PromoteCandidate(c *fiber.Ctx) error {
	var input PromoteInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "Invalid input")
	}

	// All required fields are checked before any storage access.
	if input.SuggestionID == 0 || input.ProductName == "" || input.Barcode == "" ||
		input.RetailerID == 0 || input.CategoryID == 0 || input.BrandName == "" ||
		input.CurrentPrice <= 0 || input.PackSize == "" {
		return fail(c, fiber.StatusBadRequest, StatusValidation,
			"suggestion_id, product_name, barcode, retailer_id, category_id, brand_name, current_price and pack_size are required")
	}

	var suggestion models.SuggestionDetails
	if err := database.DB.First(&suggestion, input.SuggestionID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Suggestion not found")
	}

	var category models.Category
	if err := database.DB.First(&category, input.CategoryID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Category not found")
	}
	var retailer models.Retailer
	if err := database.DB.First(&retailer, input.RetailerID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Retailer not found")
	}

	var existing models.MasterProduct
	if err := database.DB.Where("barcode = ?", input.Barcode).First(&existing).Error; err == nil {
		return fail(c, fiber.StatusConflict, StatusAlreadyExists, "A product with this barcode already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ Barcode check failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to check barcode")
	}

	imageURL, err := saveProductImage(c, "image")
	if err != nil {
		log.Printf("❌ Image upload failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to store product image")
	}

	promotion := input.PromotionType
	if !models.IsKnownPromotion(promotion) {
		promotion = models.PromotionRetailer
	}

	tx := database.DB.Begin()

	brand, err := getOrCreateBrand(tx, input.BrandName)
	if err != nil {
		tx.Rollback()
		log.Printf("❌ Brand resolution failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to resolve brand")
	}

	product := models.MasterProduct{
		Barcode:     input.Barcode,
		ProductName: input.ProductName,
		PackSize:    input.PackSize,
		BrandID:     brand.ID,
		CategoryID:  input.CategoryID,
		RRP:         input.RRP,
		Size:        input.Size,
		Unit:        input.Unit,
		ImageURL:    imageURL,
	}
	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		if isDuplicateErr(err) {
			return fail(c, fiber.StatusConflict, StatusAlreadyExists, "A product with this barcode already exists")
		}
		log.Printf("❌ Failed to create product: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create product")
	}

	pricing := models.RetailerCurrentPricing{
		ProductID:     product.ID,
		Barcode:       product.Barcode,
		RetailerID:    input.RetailerID,
		RetailerCode:  input.RetailerCode,
		CurrentPrice:  input.CurrentPrice,
		PerUnitPrice:  input.PerUnitPrice,
		OfferInfo:     input.OfferInfo,
		PromotionType: promotion,
		ProductURL:    input.ProductURL,
	}
	if err := tx.Create(&pricing).Error; err != nil {
		tx.Rollback()
		if isDuplicateErr(err) {
			return fail(c, fiber.StatusConflict, StatusConflict, "Concurrent pricing write, please retry")
		}
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create retailer offer")
	}

	history := models.PriceHistory{
		RetailerCurrentPricingID: pricing.ID,
		RRP:                      input.RRP,
		CurrentPrice:             input.CurrentPrice,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create price history")
	}

	if err := tx.Where("suggestion_details_id = ?", suggestion.ID).Delete(&models.MatchSuggestion{}).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete match links")
	}
	if err := tx.Delete(&suggestion).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete suggestion")
	}

	if err := tx.Commit().Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to commit transaction")
	}

	go SyncProductDocument(product.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  StatusOK,
		"message": "Suggestion promoted to new product",
		"data":    product,
	})
}
