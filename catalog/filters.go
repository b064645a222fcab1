package catalog

import (
	"gorm.io/gorm"
)

// ProductFilter carries the optional listing facets. All facets are
// independently composable; at least one must be present or the request is
// rejected upstream (guard against unfiltered full-table scans).
type ProductFilter struct {
	ProductIDs    []uint `json:"product_ids"`
	BrandIDs      []uint `json:"brand_ids"`
	CategoryIDs   []uint `json:"category_ids"`
	RetailerIDs   []uint `json:"retailer_ids"`
	PromotionType string `json:"promotion_type"`
	Keyword       string `json:"keyword"`
	SortBy        string `json:"sort_by"`
	SortOrder     string `json:"sort_order"`
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
}

func (f ProductFilter) HasFacet() bool {
	return len(f.ProductIDs) > 0 ||
		len(f.BrandIDs) > 0 ||
		len(f.CategoryIDs) > 0 ||
		len(f.RetailerIDs) > 0 ||
		f.PromotionType != "" ||
		f.Keyword != ""
}

// Normalize fills paging and sort defaults: page 1, limit 20, sort id asc.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.SortBy == "" {
		f.SortBy = "id"
	}
	if f.SortOrder == "" {
		f.SortOrder = "asc"
	}
	return f
}

func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ApplyProductFilter attaches the facet predicates to a query that already
// joins retailer_current_pricings as rcp. Retailer and promotion predicates
// sit on the join: a product matches if any of its offers does, but the
// response still carries all offers for matched products. categoryIDs is the
// already-expanded id set (OR'd); everything else ANDs together.
func ApplyProductFilter(q *gorm.DB, f ProductFilter, categoryIDs []uint) *gorm.DB {
	if len(f.ProductIDs) > 0 {
		q = q.Where("master_products.id IN ?", f.ProductIDs)
	}
	if len(f.BrandIDs) > 0 {
		q = q.Where("master_products.brand_id IN ?", f.BrandIDs)
	}
	if len(categoryIDs) > 0 {
		q = q.Where("master_products.category_id IN ?", categoryIDs)
	}
	if len(f.RetailerIDs) > 0 {
		q = q.Where("rcp.retailer_id IN ?", f.RetailerIDs)
	}
	if f.PromotionType != "" {
		q = q.Where("rcp.promotion_type = ?", f.PromotionType)
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("master_products.product_name LIKE ? OR master_products.barcode LIKE ?", kw, kw)
	}
	return q
}

// OrderClause maps the sort facet onto a whitelist of column expressions.
// Anything off the whitelist falls back to id asc. Every ordering breaks
// ties by product id ascending so pagination stays stable across pages.
func OrderClause(sortBy, sortOrder string) string {
	dir := "ASC"
	if sortOrder == "desc" {
		dir = "DESC"
	}

	var col string
	switch sortBy {
	case "name":
		col = "master_products.product_name"
	case "price":
		col = "best_price"
	case "saving_percentage":
		col = "saving_ratio"
	default:
		return "master_products.id " + dir
	}

	return col + " " + dir + ", master_products.id ASC"
}
