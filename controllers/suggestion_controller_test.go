package controllers

import (
	"fmt"
	"testing"

	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
)

func suggestionApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/suggestions/:id/match", MatchCandidate)
	app.Post("/api/suggestions/promote", PromoteCandidate)
	return app
}

func TestMatchCandidateAdvancesWasPriceOnChange(t *testing.T) {
	db := setupTestDB(t)
	app := suggestionApp()

	r := seedRetailer(t, db, "Shop A")
	p := seedProduct(t, db, "1111", 5.00)
	pricing := models.RetailerCurrentPricing{
		ProductID: p.ID, Barcode: p.Barcode,
		RetailerID: r.ID, RetailerCode: "SKU-1",
		CurrentPrice: 4.00,
	}
	if err := db.Create(&pricing).Error; err != nil {
		t.Fatalf("seed pricing: %v", err)
	}
	suggestion := models.SuggestionDetails{
		ProductName: "Candidate", Barcode: p.Barcode,
		RetailerID: r.ID, RetailerCode: "SKU-1",
		CurrentPrice: 3.50, RRP: 5.00,
	}
	if err := db.Create(&suggestion).Error; err != nil {
		t.Fatalf("seed suggestion: %v", err)
	}
	link := models.MatchSuggestion{SuggestionDetailsID: suggestion.ID, MatchedProductPricingID: pricing.ID}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("seed match link: %v", err)
	}

	code, env := doJSON(t, app, "POST",
		fmt.Sprintf("/api/suggestions/%d/match", suggestion.ID),
		fiber.Map{"product_id": p.ID})
	if code != fiber.StatusOK || env.Status != StatusOK {
		t.Fatalf("match: code %d status %q, want 200 OK", code, env.Status)
	}

	var updated models.RetailerCurrentPricing
	if err := db.First(&updated, pricing.ID).Error; err != nil {
		t.Fatalf("reload pricing: %v", err)
	}
	if updated.WasPrice != 4.00 {
		t.Errorf("WasPrice = %v, want 4.00", updated.WasPrice)
	}
	if updated.CurrentPrice != 3.50 {
		t.Errorf("CurrentPrice = %v, want 3.50", updated.CurrentPrice)
	}

	var histories []models.PriceHistory
	if err := db.Where("retailer_current_pricing_id = ?", pricing.ID).Find(&histories).Error; err != nil {
		t.Fatalf("fetch history: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("history rows = %d, want exactly 1", len(histories))
	}
	if histories[0].CurrentPrice != 3.50 || histories[0].RRP != 5.00 {
		t.Errorf("history row = %+v, want price 3.50 rrp 5.00", histories[0])
	}

	var suggestionCount, linkCount int64
	db.Model(&models.SuggestionDetails{}).Count(&suggestionCount)
	db.Model(&models.MatchSuggestion{}).Count(&linkCount)
	if suggestionCount != 0 || linkCount != 0 {
		t.Errorf("candidate not fully resolved: %d suggestions, %d links left", suggestionCount, linkCount)
	}
}

func TestMatchCandidateUnchangedPriceWritesNoHistory(t *testing.T) {
	db := setupTestDB(t)
	app := suggestionApp()

	r := seedRetailer(t, db, "Shop A")
	p := seedProduct(t, db, "1112", 5.00)
	pricing := models.RetailerCurrentPricing{
		ProductID: p.ID, Barcode: p.Barcode,
		RetailerID: r.ID, RetailerCode: "SKU-1",
		CurrentPrice: 4.00, WasPrice: 4.50,
	}
	if err := db.Create(&pricing).Error; err != nil {
		t.Fatalf("seed pricing: %v", err)
	}
	suggestion := models.SuggestionDetails{
		ProductName: "Candidate", Barcode: p.Barcode,
		RetailerID: r.ID, RetailerCode: "SKU-1",
		CurrentPrice: 4.00, RRP: 5.00,
	}
	if err := db.Create(&suggestion).Error; err != nil {
		t.Fatalf("seed suggestion: %v", err)
	}

	code, env := doJSON(t, app, "POST",
		fmt.Sprintf("/api/suggestions/%d/match", suggestion.ID),
		fiber.Map{"product_id": p.ID})
	if code != fiber.StatusOK || env.Status != StatusOK {
		t.Fatalf("match: code %d status %q, want 200 OK", code, env.Status)
	}

	var updated models.RetailerCurrentPricing
	if err := db.First(&updated, pricing.ID).Error; err != nil {
		t.Fatalf("reload pricing: %v", err)
	}
	if updated.WasPrice != 4.50 || updated.CurrentPrice != 4.00 {
		t.Errorf("pricing mutated on unchanged price: was %v current %v", updated.WasPrice, updated.CurrentPrice)
	}

	var historyCount int64
	db.Model(&models.PriceHistory{}).Count(&historyCount)
	if historyCount != 0 {
		t.Errorf("history rows = %d, want 0 for unchanged price", historyCount)
	}

	var suggestionCount int64
	db.Model(&models.SuggestionDetails{}).Count(&suggestionCount)
	if suggestionCount != 0 {
		t.Errorf("candidate still present after resolution")
	}
}

func TestMatchCandidateResolvedTwiceReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := suggestionApp()

	r := seedRetailer(t, db, "Shop A")
	p := seedProduct(t, db, "1113", 6.00)
	suggestion := models.SuggestionDetails{
		ProductName: "Candidate", Barcode: p.Barcode,
		RetailerID: r.ID, RetailerCode: "SKU-9",
		CurrentPrice: 5.25, RRP: 6.00,
	}
	if err := db.Create(&suggestion).Error; err != nil {
		t.Fatalf("seed suggestion: %v", err)
	}

	path := fmt.Sprintf("/api/suggestions/%d/match", suggestion.ID)
	payload := fiber.Map{"product_id": p.ID}

	code, env := doJSON(t, app, "POST", path, payload)
	if code != fiber.StatusOK || env.Status != StatusOK {
		t.Fatalf("first match: code %d status %q, want 200 OK", code, env.Status)
	}

	code, env = doJSON(t, app, "POST", path, payload)
	if code != fiber.StatusNotFound || env.Status != StatusNotFound {
		t.Fatalf("second match: code %d status %q, want 404 NOT_FOUND", code, env.Status)
	}

	var pricingCount, historyCount int64
	db.Model(&models.RetailerCurrentPricing{}).Count(&pricingCount)
	db.Model(&models.PriceHistory{}).Count(&historyCount)
	if pricingCount != 1 || historyCount != 1 {
		t.Errorf("repeat call mutated storage: %d pricings, %d histories, want 1 each", pricingCount, historyCount)
	}
}

func TestPromoteCandidateDuplicateBarcodeLeavesCandidateUnresolved(t *testing.T) {
	db := setupTestDB(t)
	app := suggestionApp()

	r := seedRetailer(t, db, "Shop A")
	existing := seedProduct(t, db, "2222", 3.00)
	suggestion := models.SuggestionDetails{
		ProductName: "Candidate", Barcode: existing.Barcode,
		RetailerID: r.ID, RetailerCode: "SKU-2",
		CurrentPrice: 2.50, RRP: 3.00,
	}
	if err := db.Create(&suggestion).Error; err != nil {
		t.Fatalf("seed suggestion: %v", err)
	}

	code, env := doJSON(t, app, "POST", "/api/suggestions/promote", fiber.Map{
		"suggestion_id": suggestion.ID,
		"product_name":  "Candidate",
		"barcode":       existing.Barcode,
		"brand_name":    "New Brand",
		"category_id":   existing.CategoryID,
		"retailer_id":   r.ID,
		"retailer_code": "SKU-2",
		"current_price": 2.50,
		"rrp":           3.00,
		"pack_size":     "330ml",
	})
	if code != fiber.StatusConflict || env.Status != StatusAlreadyExists {
		t.Fatalf("promote: code %d status %q, want 409 ALREADY_EXISTS", code, env.Status)
	}

	var productCount, suggestionCount int64
	db.Model(&models.MasterProduct{}).Count(&productCount)
	db.Model(&models.SuggestionDetails{}).Count(&suggestionCount)
	if productCount != 1 {
		t.Errorf("product count = %d, want 1", productCount)
	}
	if suggestionCount != 1 {
		t.Errorf("candidate was resolved despite the conflict")
	}
}

func TestPromoteCandidateReusesNormalizedBrand(t *testing.T) {
	db := setupTestDB(t)
	app := suggestionApp()

	r := seedRetailer(t, db, "Shop A")
	brand := models.Brand{Name: "DairyCo"}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	cat := models.Category{Name: "Dairy"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	suggestion := models.SuggestionDetails{
		ProductName: "Milk 2L", Barcode: "3333",
		RetailerID: r.ID, RetailerCode: "SKU-3",
		CurrentPrice: 1.80, RRP: 2.20,
	}
	if err := db.Create(&suggestion).Error; err != nil {
		t.Fatalf("seed suggestion: %v", err)
	}

	code, env := doJSON(t, app, "POST", "/api/suggestions/promote", fiber.Map{
		"suggestion_id": suggestion.ID,
		"product_name":  "Milk 2L",
		"barcode":       "3333",
		"brand_name":    "dairy co",
		"category_id":   cat.ID,
		"retailer_id":   r.ID,
		"retailer_code": "SKU-3",
		"current_price": 1.80,
		"rrp":           2.20,
		"pack_size":     "2L",
	})
	if code != fiber.StatusCreated || env.Status != StatusOK {
		t.Fatalf("promote: code %d status %q, want 201 OK", code, env.Status)
	}

	var brandCount int64
	db.Model(&models.Brand{}).Count(&brandCount)
	if brandCount != 1 {
		t.Fatalf("brand count = %d, want the existing brand reused", brandCount)
	}

	var product models.MasterProduct
	if err := db.Where("barcode = ?", "3333").First(&product).Error; err != nil {
		t.Fatalf("load promoted product: %v", err)
	}
	if product.BrandID != brand.ID {
		t.Errorf("BrandID = %d, want %d", product.BrandID, brand.ID)
	}

	var pricingCount, historyCount, suggestionCount int64
	db.Model(&models.RetailerCurrentPricing{}).Where("product_id = ?", product.ID).Count(&pricingCount)
	db.Model(&models.PriceHistory{}).Count(&historyCount)
	db.Model(&models.SuggestionDetails{}).Count(&suggestionCount)
	if pricingCount != 1 || historyCount != 1 {
		t.Errorf("promote wrote %d pricings and %d histories, want 1 each", pricingCount, historyCount)
	}
	if suggestionCount != 0 {
		t.Errorf("candidate still present after promotion")
	}
}
