// Package grocery holds the grocery list editor: a flat item list that is the
// single source of truth, a derived category view, and the save path that
// hands a normalized list to the persistence service.
package grocery

import "strings"

// DefaultCategory is the grouping label for items without a category.
const DefaultCategory = "Add Category Name"

// NewListID marks a list that has not been created yet.
const NewListID = "new"

// Item is a single row of a grocery list.
type Item struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Checked   bool     `json:"checked"`
	Category  string   `json:"category"`
	Pinned    bool     `json:"isPinned"`
	SortOrder int      `json:"sortOrder"`
}

// ItemPatch carries a partial update. Nil fields are left alone.
type ItemPatch struct {
	Name          *string
	Quantity      *float64
	ClearQuantity bool
	Unit          *string
	Checked       *bool
	Category      *string
	Pinned        *bool
}

func (p ItemPatch) apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.ClearQuantity {
		item.Quantity = nil
	} else if p.Quantity != nil {
		q := *p.Quantity
		item.Quantity = &q
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Checked != nil {
		item.Checked = *p.Checked
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Pinned != nil {
		item.Pinned = *p.Pinned
	}
}

// NormalizeCategory returns the grouping key for a category value.
// Blank values map to DefaultCategory.
func NormalizeCategory(category string) string {
	c := strings.TrimSpace(category)
	if c == "" {
		return DefaultCategory
	}
	return c
}

func (i Item) clone() Item {
	if i.Quantity != nil {
		q := *i.Quantity
		i.Quantity = &q
	}
	return i
}
