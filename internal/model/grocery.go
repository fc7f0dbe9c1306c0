package model

import "time"

// CreateGroceryListInput is the body of POST /grocery-lists.
type CreateGroceryListInput struct {
	Title    string           `json:"title" validate:"required,max=200"`
	IsPinned bool             `json:"isPinned"`
	Items    []NormalizedItem `json:"items" validate:"dive"`
}

// NormalizedItem is an item in the shape the create call expects: category
// is null when unset and SortOrder is the position in the saved list.
type NormalizedItem struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Quantity  *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Unit      *string  `json:"unit" validate:"omitempty,max=50"`
	Checked   bool     `json:"checked"`
	Category  *string  `json:"category" validate:"omitempty,max=100"`
	IsPinned  bool     `json:"isPinned"`
	SortOrder int      `json:"sortOrder" validate:"gte=0"`
}

type CreateGroceryListResponse struct {
	ID string `json:"id"`
}

type GroceryList struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"ownerId"`
	Title     string        `json:"title"`
	IsPinned  bool          `json:"isPinned"`
	Items     []GroceryItem `json:"items"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type GroceryItem struct {
	ID        string    `json:"id"`
	ListID    string    `json:"listId"`
	Name      string    `json:"name"`
	Quantity  *float64  `json:"quantity"`
	Unit      *string   `json:"unit"`
	Checked   bool      `json:"checked"`
	Category  *string   `json:"category"`
	IsPinned  bool      `json:"isPinned"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroceryListSummary is the overview card for a list.
type GroceryListSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	IsPinned     bool      `json:"isPinned"`
	ItemCount    int       `json:"itemCount"`
	CheckedCount int       `json:"checkedCount"`
	CreatedAt    time.Time `json:"createdAt"`
}
