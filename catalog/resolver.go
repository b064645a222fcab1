package catalog

import (
	"errors"

	"shopsave-backend/models"

	"gorm.io/gorm"
)

// maxCategoryDepth bounds the hierarchy walk. A real tree never gets close;
// hitting the cap means the parent links are misconfigured (cycle).
const maxCategoryDepth = 32

var ErrCategoryDepth = errors.New("category tree exceeds maximum depth, parent links are likely cyclic")

// ExpandCategoryIDs returns ids plus every transitive descendant, walking the
// parent_id edges top-down over the already-loaded category set. Requested ids
// that overlap (one an ancestor of another) are fine; the visited set dedupes.
func ExpandCategoryIDs(categories []models.Category, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	children := make(map[uint][]uint, len(categories))
	for _, cat := range categories {
		if cat.ParentID != nil {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat.ID)
		}
	}

	visited := make(map[uint]bool, len(ids))
	expanded := make([]uint, 0, len(ids))
	frontier := make([]uint, 0, len(ids))

	for _, id := range ids {
		if !visited[id] {
			visited[id] = true
			expanded = append(expanded, id)
			frontier = append(frontier, id)
		}
	}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxCategoryDepth {
			return nil, ErrCategoryDepth
		}
		var next []uint
		for _, id := range frontier {
			for _, child := range children[id] {
				if visited[child] {
					continue
				}
				visited[child] = true
				expanded = append(expanded, child)
				next = append(next, child)
			}
		}
		frontier = next
	}

	return expanded, nil
}

// ExpandCategoryFilter loads the id/parent_id edge set once and expands the
// requested ids in memory. Empty input is a no-op, not an error.
func ExpandCategoryFilter(db *gorm.DB, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var categories []models.Category
	if err := db.Select("id", "parent_id").Find(&categories).Error; err != nil {
		return nil, err
	}

	return ExpandCategoryIDs(categories, ids)
}
