package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/pantrylist/internal/model"
)

type GroceryListStore struct {
	db *sql.DB
}

func NewGroceryListStore(db *sql.DB) *GroceryListStore {
	return &GroceryListStore{db: db}
}

// --- List methods ---

func scanList(scanner interface{ Scan(...any) error }) (*model.GroceryList, error) {
	var l model.GroceryList
	var pinned int
	err := scanner.Scan(&l.ID, &l.OwnerID, &l.Title, &pinned, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.IsPinned = pinned != 0
	return &l, nil
}

const listCols = `id, owner_id, title, is_pinned, created_at, updated_at`

// Create stores a list and its items in one transaction.
func (s *GroceryListStore) Create(ownerID string, in model.CreateGroceryListInput) (*model.GroceryList, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	listID := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO grocery_lists (id, owner_id, title, is_pinned, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		listID, ownerID, in.Title, boolToInt(in.IsPinned), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO grocery_items (id, list_id, name, quantity, unit, checked, category, is_pinned, sort_order, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range in.Items {
		_, err := stmt.Exec(
			uuid.NewString(), listID, item.Name, nullFloat(item.Quantity), nullString(item.Unit),
			boolToInt(item.Checked), nullString(item.Category), boolToInt(item.IsPinned), item.SortOrder, now,
		)
		if err != nil {
			return nil, fmt.Errorf("insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(listID)
}

// GetByID returns the list with its items in sort order, or nil if missing.
func (s *GroceryListStore) GetByID(id string) (*model.GroceryList, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM grocery_lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}

	items, err := s.listItems(id)
	if err != nil {
		return nil, err
	}
	l.Items = items
	return l, nil
}

// ListByOwner returns summaries of the owner's lists, pinned first and then
// newest first.
func (s *GroceryListStore) ListByOwner(ownerID string) ([]model.GroceryListSummary, error) {
	rows, err := s.db.Query(
		`SELECT l.id, l.title, l.is_pinned, l.created_at,
		        COUNT(i.id), COALESCE(SUM(i.checked), 0)
		 FROM grocery_lists l
		 LEFT JOIN grocery_items i ON i.list_id = l.id
		 WHERE l.owner_id = ?
		 GROUP BY l.id
		 ORDER BY l.is_pinned DESC, l.created_at DESC, l.rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var summaries []model.GroceryListSummary
	for rows.Next() {
		var sum model.GroceryListSummary
		var pinned int
		if err := rows.Scan(&sum.ID, &sum.Title, &pinned, &sum.CreatedAt, &sum.ItemCount, &sum.CheckedCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.IsPinned = pinned != 0
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *GroceryListStore) SetPinned(id string, pinned bool) (*model.GroceryList, error) {
	_, err := s.db.Exec(
		`UPDATE grocery_lists SET is_pinned = ?, updated_at = ? WHERE id = ?`,
		boolToInt(pinned), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("set pinned: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a list; its items go with it.
func (s *GroceryListStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM grocery_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// --- Item methods ---

func scanItem(scanner interface{ Scan(...any) error }) (*model.GroceryItem, error) {
	var item model.GroceryItem
	var quantity sql.NullFloat64
	var unit, category sql.NullString
	var checked, pinned int

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Name, &quantity, &unit,
		&checked, &category, &pinned, &item.SortOrder, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Checked = checked != 0
	item.IsPinned = pinned != 0
	if quantity.Valid {
		item.Quantity = &quantity.Float64
	}
	if unit.Valid {
		item.Unit = &unit.String
	}
	if category.Valid {
		item.Category = &category.String
	}
	return &item, nil
}

const itemCols = `id, list_id, name, quantity, unit, checked, category, is_pinned, sort_order, created_at`

func (s *GroceryListStore) listItems(listID string) ([]model.GroceryItem, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM grocery_items WHERE list_id = ? ORDER BY sort_order ASC, rowid ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []model.GroceryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
