package grocery

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const defaultNewTitle = "New Grocery List"

// List is the editable state of one grocery list. The flat item slice is
// authoritative; categories are derived from it on every read. A List belongs
// to a single screen or command and is discarded with it.
type List struct {
	mu        sync.Mutex
	id        string
	title     string
	pinned    bool
	items     []Item
	collapsed map[string]bool

	saving atomic.Bool
	logger *slog.Logger
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger used by Save.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		l.logger = logger
	}
}

// NewList returns a list in "new" mode: placeholder id, default title and one
// blank row in the default category.
func NewList(opts ...Option) *List {
	l := newList(NewListID, defaultNewTitle, false, opts)
	l.AddItem(DefaultCategory)
	return l
}

// Load opens an existing list. Items without an id get a fresh one.
func Load(id, title string, pinned bool, items []Item, opts ...Option) *List {
	l := newList(id, title, pinned, opts)
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = item.clone()
		if item.ID == "" || seen[item.ID] {
			item.ID = uuid.NewString()
		}
		seen[item.ID] = true
		l.items = append(l.items, item)
	}
	return l
}

func newList(id, title string, pinned bool, opts []Option) *List {
	l := &List{
		id:        id,
		title:     title,
		pinned:    pinned,
		collapsed: make(map[string]bool),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *List) ID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.id
}

// IsNew reports whether the list has not been created yet.
func (l *List) IsNew() bool {
	return l.ID() == NewListID
}

func (l *List) Title() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.title
}

func (l *List) SetTitle(title string) {
	l.mu.Lock()
	l.title = title
	l.mu.Unlock()
}

func (l *List) Pinned() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pinned
}

func (l *List) ToggleListPinned() {
	l.mu.Lock()
	l.pinned = !l.pinned
	l.mu.Unlock()
}

// Items returns a copy of the flat item list.
func (l *List) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *List) snapshot() []Item {
	items := make([]Item, len(l.items))
	for i, item := range l.items {
		items[i] = item.clone()
	}
	return items
}

// Item returns a copy of the item with the given id.
func (l *List) Item(id string) (Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		return l.items[i].clone(), true
	}
	return Item{}, false
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem appends a blank item to the given category and returns it so the
// caller can focus it.
func (l *List) AddItem(category string) Item {
	item := Item{
		ID:       uuid.NewString(),
		Category: category,
	}
	l.mu.Lock()
	l.items = append(l.items, item)
	l.mu.Unlock()
	return item
}

// UpdateItem applies patch to the item with the given id. Unknown ids are
// ignored.
func (l *List) UpdateItem(id string, patch ItemPatch) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		patch.apply(&l.items[i])
	}
}

func (l *List) ToggleChecked(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		l.items[i].Checked = !l.items[i].Checked
	}
}

func (l *List) TogglePinned(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		l.items[i].Pinned = !l.items[i].Pinned
	}
}

// DeleteItem removes the item with the given id. Unknown ids are ignored.
func (l *List) DeleteItem(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
}

// MoveItem moves the item to position to in the flat list, clamped to the
// list bounds. Unknown ids are ignored.
func (l *List) MoveItem(id string, to int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	from := l.indexOf(id)
	if from < 0 {
		return
	}
	to = max(0, min(to, len(l.items)-1))
	if from == to {
		return
	}
	item := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items[:to], append([]Item{item}, l.items[to:]...)...)
}

// ToggleCategoryCollapsed flips the collapse flag of a category. The flag is
// view state only and is keyed by name.
func (l *List) ToggleCategoryCollapsed(name string) {
	key := NormalizeCategory(name)
	l.mu.Lock()
	l.collapsed[key] = !l.collapsed[key]
	l.mu.Unlock()
}

func (l *List) IsCollapsed(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.collapsed[NormalizeCategory(name)]
}

// RenameCategory moves every item in category oldName to newName. It does
// nothing and returns false when newName is blank or equal to oldName.
func (l *List) RenameCategory(oldName, newName string) bool {
	oldKey := NormalizeCategory(oldName)
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldKey {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	renamed := false
	for i := range l.items {
		if NormalizeCategory(l.items[i].Category) == oldKey {
			l.items[i].Category = newName
			renamed = true
		}
	}
	if renamed {
		if l.collapsed[oldKey] {
			l.collapsed[newName] = true
		}
		delete(l.collapsed, oldKey)
	}
	return renamed
}

// Categories derives the grouped view from the current items.
func (l *List) Categories() []Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	return GroupByCategory(l.items, l.collapsed)
}

// Summary is the overview card data for a list.
type Summary struct {
	ItemCount    int
	CheckedCount int
}

func (l *List) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	var s Summary
	for _, item := range l.items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		s.ItemCount++
		if item.Checked {
			s.CheckedCount++
		}
	}
	return s
}

// AutoCategorize files named items that are still in the default category
// under the category Categorize recognizes. It returns the number of items
// moved.
func (l *List) AutoCategorize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i := range l.items {
		item := &l.items[i]
		if NormalizeCategory(item.Category) != DefaultCategory {
			continue
		}
		if category, ok := Categorize(item.Name); ok {
			item.Category = category
			n++
		}
	}
	return n
}

// Saving reports whether a save is in flight.
func (l *List) Saving() bool {
	return l.saving.Load()
}
