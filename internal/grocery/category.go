package grocery

// Category is a derived group of items sharing a normalized category name.
// It is rebuilt from the flat item list on every read.
type Category struct {
	Name      string `json:"name"`
	Items     []Item `json:"items"`
	Collapsed bool   `json:"isCollapsed"`
}

// GroupByCategory groups items by normalized category in first-occurrence
// order. Items keep their relative order inside each group. collapsed may be
// nil.
func GroupByCategory(items []Item, collapsed map[string]bool) []Category {
	var categories []Category
	index := make(map[string]int)

	for _, item := range items {
		key := NormalizeCategory(item.Category)
		i, ok := index[key]
		if !ok {
			i = len(categories)
			index[key] = i
			categories = append(categories, Category{Name: key, Collapsed: collapsed[key]})
		}
		categories[i].Items = append(categories[i].Items, item.clone())
	}
	return categories
}

// Flatten concatenates the items of each category in order.
func Flatten(categories []Category) []Item {
	var items []Item
	for _, c := range categories {
		items = append(items, c.Items...)
	}
	return items
}
