package controllers

import (
	"errors"
	"log"
	"strconv"

	"shopsave-backend/alerts"
	"shopsave-backend/catalog"
	"shopsave-backend/database"
	"shopsave-backend/middleware"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProductView is the listing/detail wire shape: the product row plus its
// ranked retailer offers and the caller's basket/alert decoration.
type ProductView struct {
	ID             uint                `json:"id"`
	Barcode        string              `json:"barcode"`
	ProductName    string              `json:"product_name"`
	PackSize       string              `json:"pack_size"`
	BrandID        uint                `json:"brand_id"`
	BrandName      string              `json:"brand_name"`
	CategoryID     uint                `json:"category_id"`
	CategoryName   string              `json:"category_name"`
	RRP            float64             `json:"rrp"`
	Size           string              `json:"size"`
	Unit           string              `json:"unit"`
	ImageURL       string              `json:"image_url"`
	RetailerPrices []catalog.OfferView `json:"retailer_prices"`
	BestDeal       catalog.OfferView   `json:"best_deal"`
	InBasket       bool                `json:"in_basket"`
	BasketQuantity int                 `json:"basket_quantity"`
	HasPriceAlert  bool                `json:"has_price_alert"`
}

func pricingsToOffers(pricings []models.RetailerCurrentPricing) []catalog.Offer {
	offers := make([]catalog.Offer, 0, len(pricings))
	for _, pricing := range pricings {
		offers = append(offers, catalog.Offer{
			RetailerID:   pricing.RetailerID,
			RetailerName: pricing.Retailer.Name,
			SiteURL:      pricing.Retailer.SiteURL,
			CurrentPrice: pricing.CurrentPrice,
			WasPrice:     pricing.WasPrice,
			PerUnitPrice: pricing.PerUnitPrice,
			OfferInfo:    pricing.OfferInfo,
			ProductURL:   pricing.ProductURL,
		})
	}
	return offers
}

func buildProductView(product models.MasterProduct, pricings []models.RetailerCurrentPricing) ProductView {
	ranked, best := catalog.Rank(pricingsToOffers(pricings), product.RRP)
	return ProductView{
		ID:             product.ID,
		Barcode:        product.Barcode,
		ProductName:    product.ProductName,
		PackSize:       product.PackSize,
		BrandID:        product.BrandID,
		BrandName:      product.Brand.Name,
		CategoryID:     product.CategoryID,
		CategoryName:   product.Category.Name,
		RRP:            product.RRP,
		Size:           product.Size,
		Unit:           product.Unit,
		ImageURL:       product.ImageURL,
		RetailerPrices: ranked,
		BestDeal:       best,
	}
}

const productSelect = "master_products.*, MIN(rcp.current_price) AS best_price, " +
	"CASE WHEN master_products.rrp > 0 THEN (master_products.rrp - MIN(rcp.current_price)) / master_products.rrp ELSE 0 END AS saving_ratio"

// ListProducts compiles the optional facets into one listing query. At least
// one facet is required; an unfiltered request is rejected instead of
// scanning the whole catalog.
func ListProducts(c *fiber.Ctx) error {
	var filter catalog.ProductFilter
	if err := c.BodyParser(&filter); err != nil {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "Invalid filter payload")
	}

	if !filter.HasFacet() {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "At least one filter is required")
	}
	filter = filter.Normalize()

	expandedCategories, err := catalog.ExpandCategoryFilter(database.DB, filter.CategoryIDs)
	if err != nil {
		log.Printf("❌ Category expansion failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to resolve category filter")
	}

	baseQuery := func() *gorm.DB {
		q := database.DB.Model(&models.MasterProduct{}).
			Joins("LEFT JOIN retailer_current_pricings rcp ON rcp.product_id = master_products.id")
		return catalog.ApplyProductFilter(q, filter, expandedCategories)
	}

	// Total is the distinct-product count, not the row count after the join.
	var total int64
	if err := baseQuery().Distinct("master_products.id").Count(&total).Error; err != nil {
		log.Printf("❌ Product count failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to count products")
	}

	var products []models.MasterProduct
	if err := baseQuery().
		Select(productSelect).
		Group("master_products.id").
		Order(catalog.OrderClause(filter.SortBy, filter.SortOrder)).
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Preload("Brand").
		Preload("Category").
		Find(&products).Error; err != nil {
		log.Printf("❌ Product listing failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to fetch products")
	}

	productIDs := make([]uint, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}

	// Offers for the whole page in one query; the retailer/promotion facets
	// matched against the join, but the response carries every offer.
	pricingsByProduct := make(map[uint][]models.RetailerCurrentPricing, len(productIDs))
	if len(productIDs) > 0 {
		var pricings []models.RetailerCurrentPricing
		if err := database.DB.Preload("Retailer").Where("product_id IN ?", productIDs).Find(&pricings).Error; err != nil {
			log.Printf("❌ Failed to fetch offers: %v", err)
			return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to fetch retailer offers")
		}
		for _, pricing := range pricings {
			pricingsByProduct[pricing.ProductID] = append(pricingsByProduct[pricing.ProductID], pricing)
		}
	}

	// Basket/alert decoration only when the caller is known. Anonymous
	// callers get false/0 without altering the filter result.
	basketQty := map[uint]int{}
	alertSet := map[uint]bool{}
	if userID := middleware.UserID(c); userID != 0 && len(productIDs) > 0 {
		var basketItems []models.BasketItem
		database.DB.Where("user_id = ? AND product_id IN ?", userID, productIDs).Find(&basketItems)
		for _, item := range basketItems {
			basketQty[item.ProductID] = item.Quantity
		}

		var activeAlerts []models.PriceAlert
		database.DB.Where("user_id = ? AND is_active = ? AND product_id IN ?", userID, true, productIDs).Find(&activeAlerts)
		for _, alert := range activeAlerts {
			alertSet[alert.ProductID] = true
		}
	}

	items := make([]ProductView, 0, len(products))
	for _, product := range products {
		view := buildProductView(product, pricingsByProduct[product.ID])
		if qty, found := basketQty[product.ID]; found {
			view.InBasket = true
			view.BasketQuantity = qty
		}
		view.HasPriceAlert = alertSet[product.ID]
		items = append(items, view)
	}

	return ok(c, "Products fetched", fiber.Map{
		"items": items,
		"total": total,
	})
}

// GetProductDetail looks a product up by id or barcode (exactly one).
func GetProductDetail(c *fiber.Ctx) error {
	idParam := c.Query("id")
	barcode := c.Query("barcode")
	if (idParam == "") == (barcode == "") {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "Provide exactly one of id or barcode")
	}

	query := database.DB.Preload("Brand").Preload("Category")
	var product models.MasterProduct
	var err error
	if idParam != "" {
		id, parseErr := strconv.ParseUint(idParam, 10, 64)
		if parseErr != nil {
			return fail(c, fiber.StatusBadRequest, StatusValidation, "Invalid product id")
		}
		err = query.First(&product, uint(id)).Error
	} else {
		err = query.Where("barcode = ?", barcode).First(&product).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, StatusNotFound, "Product not found")
		}
		log.Printf("❌ Product lookup failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to fetch product")
	}

	var pricings []models.RetailerCurrentPricing
	if err := database.DB.Preload("Retailer").Where("product_id = ?", product.ID).Find(&pricings).Error; err != nil {
		log.Printf("❌ Failed to fetch offers for product %d: %v", product.ID, err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to fetch retailer offers")
	}

	view := buildProductView(product, pricings)
	if userID := middleware.UserID(c); userID != 0 {
		var item models.BasketItem
		if err := database.DB.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&item).Error; err == nil {
			view.InBasket = true
			view.BasketQuantity = item.Quantity
		}
		var count int64
		database.DB.Model(&models.PriceAlert{}).
			Where("user_id = ? AND product_id = ? AND is_active = ?", userID, product.ID, true).
			Count(&count)
		view.HasPriceAlert = count > 0
	}

	return ok(c, "Product fetched", view)
}

type ProductInput struct {
	ProductName   string  `json:"product_name" form:"product_name"`
	Barcode       string  `json:"barcode" form:"barcode"`
	PackSize      string  `json:"pack_size" form:"pack_size"`
	BrandID       uint    `json:"brand_id" form:"brand_id"`
	CategoryID    uint    `json:"category_id" form:"category_id"`
	RRP           float64 `json:"rrp" form:"rrp"`
	Size          string  `json:"size" form:"size"`
	Unit          string  `json:"unit" form:"unit"`
	Configuration string  `json:"configuration" form:"configuration"`
}

// CreateProduct is the direct admin add; candidates normally arrive through
// the merge engine instead.
func CreateProduct(c *fiber.Ctx) error {
	var input ProductInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "Invalid input")
	}
	if input.ProductName == "" || input.Barcode == "" || input.BrandID == 0 || input.CategoryID == 0 {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "product_name, barcode, brand_id and category_id are required")
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

	product := models.MasterProduct{
		Barcode:       input.Barcode,
		ProductName:   input.ProductName,
		PackSize:      input.PackSize,
		BrandID:       input.BrandID,
		CategoryID:    input.CategoryID,
		RRP:           input.RRP,
		Size:          input.Size,
		Unit:          input.Unit,
		Configuration: input.Configuration,
		ImageURL:      imageURL,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		if isDuplicateErr(err) {
			return fail(c, fiber.StatusConflict, StatusAlreadyExists, "A product with this barcode already exists")
		}
		log.Printf("❌ Failed to create product: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create product")
	}

	go SyncProductDocument(product.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  StatusOK,
		"message": "Product created",
		"data":    product,
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	var product models.MasterProduct
	if err := database.DB.First(&product, c.Params("id")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Product not found")
	}

	var input ProductInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "Invalid input")
	}

	if input.Barcode != "" && input.Barcode != product.Barcode {
		var existing models.MasterProduct
		if err := database.DB.Where("barcode = ? AND id != ?", input.Barcode, product.ID).First(&existing).Error; err == nil {
			return fail(c, fiber.StatusConflict, StatusAlreadyExists, "Another product already uses this barcode")
		}
		product.Barcode = input.Barcode
	}
	if input.ProductName != "" {
		product.ProductName = input.ProductName
	}
	if input.PackSize != "" {
		product.PackSize = input.PackSize
	}
	if input.BrandID != 0 {
		product.BrandID = input.BrandID
	}
	if input.CategoryID != 0 {
		product.CategoryID = input.CategoryID
	}
	if input.RRP != 0 {
		product.RRP = input.RRP
	}
	if input.Size != "" {
		product.Size = input.Size
	}
	if input.Unit != "" {
		product.Unit = input.Unit
	}
	if input.Configuration != "" {
		product.Configuration = input.Configuration
	}

	if imageURL, err := saveProductImage(c, "image"); err != nil {
		log.Printf("❌ Image upload failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to store product image")
	} else if imageURL != "" {
		product.ImageURL = imageURL
	}

	if err := database.DB.Save(&product).Error; err != nil {
		log.Printf("❌ Failed to update product %d: %v", product.ID, err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to update product")
	}

	// Mirror refresh is best-effort: the catalog write above stands even if
	// the index is down.
	go SyncProductDocument(product.ID)

	return ok(c, "Product updated", product)
}

func DeleteProduct(c *fiber.Ctx) error {
	var product models.MasterProduct
	if err := database.DB.First(&product, c.Params("id")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Product not found")
	}

	tx := database.DB.Begin()

	var pricingIDs []uint
	if err := tx.Model(&models.RetailerCurrentPricing{}).Where("product_id = ?", product.ID).Pluck("id", &pricingIDs).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to load retailer offers")
	}
	if len(pricingIDs) > 0 {
		if err := tx.Where("retailer_current_pricing_id IN ?", pricingIDs).Delete(&models.PriceHistory{}).Error; err != nil {
			tx.Rollback()
			return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete price history")
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.RetailerCurrentPricing{}).Error; err != nil {
			tx.Rollback()
			return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete retailer offers")
		}
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.BasketItem{}).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete basket references")
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.PriceAlert{}).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete price alerts")
	}
	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete product")
	}

	if err := tx.Commit().Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to commit transaction")
	}

	return ok(c, "Product deleted", nil)
}

type RetailerOfferInput struct {
	RetailerID    uint    `json:"retailer_id"`
	RetailerCode  string  `json:"retailer_code"`
	CurrentPrice  float64 `json:"current_price"`
	PerUnitPrice  string  `json:"per_unit_price"`
	OfferInfo     string  `json:"offer_info"`
	PromotionType string  `json:"promotion_type"`
	ProductURL    string  `json:"product_url"`
}

type BulkRepriceInput struct {
	Offers []RetailerOfferInput `json:"offers"`
}

// BulkRepriceProduct replaces a product's full offer set: rows in the batch
// are upserted with was_price semantics, rows from retailers missing from
// the batch are deleted.
func BulkRepriceProduct(c *fiber.Ctx) error {
	var product models.MasterProduct
	if err := database.DB.First(&product, c.Params("id")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, StatusNotFound, "Product not found")
	}

	var input BulkRepriceInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "Invalid input")
	}

	tx := database.DB.Begin()

	priceChanged := false
	keptIDs := make([]uint, 0, len(input.Offers))
	for _, offer := range input.Offers {
		promotion := offer.PromotionType
		if !models.IsKnownPromotion(promotion) {
			promotion = models.PromotionRetailer
		}

		var existing models.RetailerCurrentPricing
		err := tx.Where("product_id = ? AND barcode = ? AND retailer_id = ? AND retailer_code = ?",
			product.ID, product.Barcode, offer.RetailerID, offer.RetailerCode).
			First(&existing).Error

		switch {
		case err == nil:
			if existing.CurrentPrice != offer.CurrentPrice {
				existing.WasPrice = existing.CurrentPrice
				existing.CurrentPrice = offer.CurrentPrice
				if offer.PerUnitPrice != "" {
					existing.PerUnitPrice = offer.PerUnitPrice
				}
				if offer.OfferInfo != "" {
					existing.OfferInfo = offer.OfferInfo
				}
				if offer.ProductURL != "" {
					existing.ProductURL = offer.ProductURL
				}
				existing.PromotionType = promotion
				if err := tx.Save(&existing).Error; err != nil {
					tx.Rollback()
					return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to update retailer offer")
				}
				history := models.PriceHistory{
					RetailerCurrentPricingID: existing.ID,
					RRP:                      product.RRP,
					CurrentPrice:             existing.CurrentPrice,
				}
				if err := tx.Create(&history).Error; err != nil {
					tx.Rollback()
					return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create price history")
				}
				priceChanged = true
			}
			keptIDs = append(keptIDs, existing.ID)

		case errors.Is(err, gorm.ErrRecordNotFound):
			pricing := models.RetailerCurrentPricing{
				ProductID:     product.ID,
				Barcode:       product.Barcode,
				RetailerID:    offer.RetailerID,
				RetailerCode:  offer.RetailerCode,
				CurrentPrice:  offer.CurrentPrice,
				PerUnitPrice:  offer.PerUnitPrice,
				OfferInfo:     offer.OfferInfo,
				PromotionType: promotion,
				ProductURL:    offer.ProductURL,
			}
			// A concurrent writer may insert the same (barcode, retailer,
			// code) tuple between our read and this write. Let the unique
			// index reject the loser so the caller retries with fresh state.
			if createErr := tx.Create(&pricing).Error; createErr != nil {
				tx.Rollback()
				if isDuplicateErr(createErr) {
					return fail(c, fiber.StatusConflict, StatusConflict, "Concurrent pricing write, please retry")
				}
				return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create retailer offer")
			}
			history := models.PriceHistory{
				RetailerCurrentPricingID: pricing.ID,
				RRP:                      product.RRP,
				CurrentPrice:             pricing.CurrentPrice,
			}
			if err := tx.Create(&history).Error; err != nil {
				tx.Rollback()
				return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to create price history")
			}
			keptIDs = append(keptIDs, pricing.ID)
			priceChanged = true

		default:
			tx.Rollback()
			log.Printf("❌ Offer lookup failed: %v", err)
			return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to load retailer offer")
		}
	}

	// The batch is the full desired offer set: offers from retailers not in
	// it are deleted. Their history rows stay; history only cascades away
	// with the product itself.
	removeQuery := tx.Where("product_id = ?", product.ID)
	if len(keptIDs) > 0 {
		removeQuery = removeQuery.Where("id NOT IN ?", keptIDs)
	}
	removeResult := removeQuery.Delete(&models.RetailerCurrentPricing{})
	if removeResult.Error != nil {
		tx.Rollback()
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to delete stale offers")
	}
	removed := removeResult.RowsAffected

	if err := tx.Commit().Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to commit transaction")
	}

	if priceChanged {
		go alerts.Reevaluate(database.DB, product.ID)
	}

	return ok(c, "Retailer offers replaced", fiber.Map{
		"kept":    len(keptIDs),
		"removed": removed,
	})
}

// GetPricingHistory returns the append-only history for one retailer offer,
// oldest first, for price charts.
func GetPricingHistory(c *fiber.Ctx) error {
	pricingID, err := strconv.ParseUint(c.Params("pricing_id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, StatusValidation, "Invalid pricing id")
	}

	var histories []models.PriceHistory
	if err := database.DB.
		Where("retailer_current_pricing_id = ?", pricingID).
		Order("date ASC").
		Find(&histories).Error; err != nil {
		log.Printf("❌ Failed to fetch price history: %v", err)
		return fail(c, fiber.StatusInternalServerError, StatusInternal, "Failed to fetch price history")
	}

	return ok(c, "Price history fetched", histories)
}
