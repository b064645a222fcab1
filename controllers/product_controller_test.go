package controllers

import (
	"fmt"
	"testing"

	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
)

func productApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/products/detail", GetProductDetail)
	app.Put("/api/products/:id/pricing", BulkRepriceProduct)
	return app
}

func TestGetProductDetailRejectsBadID(t *testing.T) {
	db := setupTestDB(t)
	app := productApp()
	seedProduct(t, db, "4440", 2.00)

	code, env := doJSON(t, app, "GET", "/api/products/detail?id=abc", nil)
	if code != fiber.StatusBadRequest || env.Status != StatusValidation {
		t.Errorf("non-numeric id: code %d status %q, want 400 VALIDATION", code, env.Status)
	}

	code, env = doJSON(t, app, "GET", "/api/products/detail?id=999", nil)
	if code != fiber.StatusNotFound || env.Status != StatusNotFound {
		t.Errorf("missing id: code %d status %q, want 404 NOT_FOUND", code, env.Status)
	}

	code, env = doJSON(t, app, "GET", "/api/products/detail?id=1&barcode=4440", nil)
	if code != fiber.StatusBadRequest || env.Status != StatusValidation {
		t.Errorf("id and barcode together: code %d status %q, want 400 VALIDATION", code, env.Status)
	}
}

func TestBulkRepriceReplacesFullOfferSet(t *testing.T) {
	db := setupTestDB(t)
	app := productApp()

	rA := seedRetailer(t, db, "Shop A")
	rB := seedRetailer(t, db, "Shop B")
	p := seedProduct(t, db, "4444", 10.00)

	pricingA := models.RetailerCurrentPricing{
		ProductID: p.ID, Barcode: p.Barcode,
		RetailerID: rA.ID, RetailerCode: "A-1",
		CurrentPrice: 8.00,
	}
	pricingB := models.RetailerCurrentPricing{
		ProductID: p.ID, Barcode: p.Barcode,
		RetailerID: rB.ID, RetailerCode: "B-1",
		CurrentPrice: 9.00,
	}
	if err := db.Create(&pricingA).Error; err != nil {
		t.Fatalf("seed pricing A: %v", err)
	}
	if err := db.Create(&pricingB).Error; err != nil {
		t.Fatalf("seed pricing B: %v", err)
	}
	oldHistory := models.PriceHistory{RetailerCurrentPricingID: pricingB.ID, RRP: 10.00, CurrentPrice: 9.00}
	if err := db.Create(&oldHistory).Error; err != nil {
		t.Fatalf("seed history: %v", err)
	}

	code, env := doJSON(t, app, "PUT",
		fmt.Sprintf("/api/products/%d/pricing", p.ID),
		fiber.Map{"offers": []fiber.Map{{
			"retailer_id":   rA.ID,
			"retailer_code": "A-1",
			"current_price": 7.50,
		}}})
	if code != fiber.StatusOK || env.Status != StatusOK {
		t.Fatalf("reprice: code %d status %q, want 200 OK", code, env.Status)
	}

	var pricings []models.RetailerCurrentPricing
	if err := db.Where("product_id = ?", p.ID).Find(&pricings).Error; err != nil {
		t.Fatalf("fetch pricings: %v", err)
	}
	if len(pricings) != 1 {
		t.Fatalf("offer count = %d, want the batch to be the full set", len(pricings))
	}
	if pricings[0].RetailerID != rA.ID {
		t.Errorf("surviving offer belongs to retailer %d, want %d", pricings[0].RetailerID, rA.ID)
	}
	if pricings[0].WasPrice != 8.00 || pricings[0].CurrentPrice != 7.50 {
		t.Errorf("offer prices was %v current %v, want 8.00 and 7.50", pricings[0].WasPrice, pricings[0].CurrentPrice)
	}

	var newHistoryCount int64
	db.Model(&models.PriceHistory{}).Where("retailer_current_pricing_id = ?", pricingA.ID).Count(&newHistoryCount)
	if newHistoryCount != 1 {
		t.Errorf("history rows for repriced offer = %d, want 1", newHistoryCount)
	}

	// Dropping the offer must not drop its history; that only happens when
	// the product itself is deleted.
	var keptHistoryCount int64
	db.Model(&models.PriceHistory{}).Where("retailer_current_pricing_id = ?", pricingB.ID).Count(&keptHistoryCount)
	if keptHistoryCount != 1 {
		t.Errorf("history rows for removed offer = %d, want 1", keptHistoryCount)
	}
}

func TestBulkRepriceConcurrentInsertConflicts(t *testing.T) {
	db := setupTestDB(t)
	app := productApp()

	r := seedRetailer(t, db, "Shop A")
	p := seedProduct(t, db, "5555", 5.00)

	// Another writer already claimed this (barcode, retailer, code) tuple,
	// just not under our product id, so the read-then-insert path hits the
	// unique index.
	stray := models.RetailerCurrentPricing{
		ProductID: p.ID + 100, Barcode: p.Barcode,
		RetailerID: r.ID, RetailerCode: "X-1",
		CurrentPrice: 3.00,
	}
	if err := db.Create(&stray).Error; err != nil {
		t.Fatalf("seed conflicting pricing: %v", err)
	}

	code, env := doJSON(t, app, "PUT",
		fmt.Sprintf("/api/products/%d/pricing", p.ID),
		fiber.Map{"offers": []fiber.Map{{
			"retailer_id":   r.ID,
			"retailer_code": "X-1",
			"current_price": 3.00,
		}}})
	if code != fiber.StatusConflict || env.Status != StatusConflict {
		t.Fatalf("reprice: code %d status %q, want 409 CONFLICT", code, env.Status)
	}

	var pricingCount int64
	db.Model(&models.RetailerCurrentPricing{}).Count(&pricingCount)
	if pricingCount != 1 {
		t.Errorf("pricing count = %d, want the losing write rolled back", pricingCount)
	}
}
