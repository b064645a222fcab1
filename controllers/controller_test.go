package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"shopsave-backend/database"
	"shopsave-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// setupTestDB swaps the package-level connection for an in-memory SQLite
// database so handler tests exercise the real transaction paths.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// One connection, otherwise each pooled connection gets its own
	// in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Retailer{},
		&models.MasterProduct{},
		&models.RetailerCurrentPricing{},
		&models.PriceHistory{},
		&models.SuggestionDetails{},
		&models.MatchSuggestion{},
		&models.User{},
		&models.BasketItem{},
		&models.PriceAlert{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db
	return db
}

type testEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, testEnvelope) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return resp.StatusCode, env
}

func seedRetailer(t *testing.T, db *gorm.DB, name string) models.Retailer {
	t.Helper()
	r := models.Retailer{Name: name}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed retailer: %v", err)
	}
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, barcode string, rrp float64) models.MasterProduct {
	t.Helper()
	cat := models.Category{Name: "Cat " + barcode}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	brand := models.Brand{Name: "Brand " + barcode}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	p := models.MasterProduct{
		Barcode:     barcode,
		ProductName: "Product " + barcode,
		PackSize:    "500g",
		BrandID:     brand.ID,
		CategoryID:  cat.ID,
		RRP:         rrp,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}
