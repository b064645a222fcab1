package controllers

import (
	"context"
	"log"
	"time"

	"shopsave-backend/database"
	"shopsave-backend/models"
	"shopsave-backend/search"

	"github.com/gofiber/fiber/v2"
)

// SearchClient is set at startup when ELASTIC_URL is configured. When nil
// every sync becomes a logged no-op; catalog writes never depend on it.
var SearchClient *search.Client

// syncBatchSize is how many products go into one bulk request.
const syncBatchSize = 200

const documentSelect = "master_products.id, master_products.product_name AS name, " +
	"master_products.barcode, master_products.pack_size, master_products.image_url, " +
	"master_products.brand_id, brands.name AS brand_name, " +
	"master_products.category_id, categories.name AS category_name"

func productDocuments(offset, limit int) ([]search.Document, error) {
	var docs []search.Document
	err := database.DB.Model(&models.MasterProduct{}).
		Select(documentSelect).
		Joins("LEFT JOIN brands ON brands.id = master_products.brand_id").
		Joins("LEFT JOIN categories ON categories.id = master_products.category_id").
		Order("master_products.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&docs).Error
	return docs, err
}

// SyncSearchIndex walks the full catalog in fixed-size chunks and bulk-upserts
// each chunk. A failed chunk is logged and skipped so one corrupt document
// cannot halt the mirror.
func SyncSearchIndex(c *fiber.Ctx) error {
	if SearchClient == nil {
		log.Println("search sync requested but no search index is configured")
		return ok(c, "Search index not configured, nothing to sync", nil)
	}

	ctx := context.Background()
	synced := 0
	failedBatches := 0

	for offset := 0; ; offset += syncBatchSize {
		docs, err := productDocuments(offset, syncBatchSize)
		if err != nil {
			log.Printf("❌ Failed to load products for sync at offset %d: %v", offset, err)
			return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to load products for sync")
		}
		if len(docs) == 0 {
			break
		}

		if err := SearchClient.BulkIndex(ctx, docs); err != nil {
			// Best-effort: log and keep going with the next chunk.
			log.Printf("❌ Search sync batch at offset %d failed: %v", offset, err)
			failedBatches++
			continue
		}
		synced += len(docs)
	}

	log.Printf("✅ Search sync finished: %d documents, %d failed batches", synced, failedBatches)

	return ok(c, "Search index synchronized", fiber.Map{
		"synced":         synced,
		"failed_batches": failedBatches,
	})
}

// SyncProductDocument mirrors one product after a catalog write. Failures are
// logged and swallowed: the index is eventually consistent by contract and
// the catalog write it follows is already committed.
func SyncProductDocument(productID uint) {
	if SearchClient == nil {
		return
	}

	var docs []search.Document
	err := database.DB.Model(&models.MasterProduct{}).
		Select(documentSelect).
		Joins("LEFT JOIN brands ON brands.id = master_products.brand_id").
		Joins("LEFT JOIN categories ON categories.id = master_products.category_id").
		Where("master_products.id = ?", productID).
		Limit(1).
		Scan(&docs).Error
	if err != nil || len(docs) == 0 {
		log.Printf("search: failed to load product %d for indexing: %v", productID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := SearchClient.IndexProduct(ctx, docs[0]); err != nil {
		log.Printf("search: failed to index product %d: %v", productID, err)
	}
}
