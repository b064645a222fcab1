package catalog

import (
	"testing"
)

func TestHasFacet(t *testing.T) {
	tests := []struct {
		name   string
		filter ProductFilter
		want   bool
	}{
		{"no facets", ProductFilter{}, false},
		{"paging alone is not a facet", ProductFilter{Page: 3, Limit: 50, SortBy: "name"}, false},
		{"product ids", ProductFilter{ProductIDs: []uint{1}}, true},
		{"brand ids", ProductFilter{BrandIDs: []uint{2}}, true},
		{"category ids", ProductFilter{CategoryIDs: []uint{3}}, true},
		{"retailer ids", ProductFilter{RetailerIDs: []uint{4}}, true},
		{"promotion type", ProductFilter{PromotionType: "multibuy"}, true},
		{"keyword", ProductFilter{Keyword: "milk"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.HasFacet(); got != tt.want {
				t.Errorf("HasFacet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	f := ProductFilter{}.Normalize()

	if f.Page != 1 {
		t.Errorf("default page = %d, want 1", f.Page)
	}
	if f.Limit != 20 {
		t.Errorf("default limit = %d, want 20", f.Limit)
	}
	if f.SortBy != "id" || f.SortOrder != "asc" {
		t.Errorf("default sort = %s %s, want id asc", f.SortBy, f.SortOrder)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page  int
		limit int
		want  int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 50, 100},
	}

	for _, tt := range tests {
		f := ProductFilter{Page: tt.page, Limit: tt.limit}
		if got := f.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"default id asc", "id", "asc", "master_products.id ASC"},
		{"id desc", "id", "desc", "master_products.id DESC"},
		{"name asc with tiebreak", "name", "asc", "master_products.product_name ASC, master_products.id ASC"},
		{"price desc with tiebreak", "price", "desc", "best_price DESC, master_products.id ASC"},
		{"saving asc with tiebreak", "saving_percentage", "asc", "saving_ratio ASC, master_products.id ASC"},
		{"off-whitelist column falls back to id", "barcode; DROP TABLE", "asc", "master_products.id ASC"},
		{"off-whitelist direction falls back to asc", "name", "sideways", "master_products.product_name ASC, master_products.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderClause(tt.sortBy, tt.sortOrder)
			if got != tt.want {
				t.Errorf("OrderClause(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}
