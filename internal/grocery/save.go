package grocery

import (
	"context"
	"errors"
	"strings"

	"github.com/dukerupert/pantrylist/internal/model"
)

// TokenSource supplies the credential the persistence call requires.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Persister creates a grocery list and returns its id.
type Persister interface {
	CreateGroceryList(ctx context.Context, token string, in model.CreateGroceryListInput) (string, error)
}

// PrepareSave validates the title and turns items into the payload shape:
// rows with a blank name are dropped, names and categories are trimmed, the
// default category and blank categories become null, and SortOrder is the
// index among the surviving rows.
func PrepareSave(title string, pinned bool, items []Item) (model.CreateGroceryListInput, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.CreateGroceryListInput{}, &ValidationError{Field: "title", Message: ErrTitleRequired.Error()}
	}

	out := make([]model.NormalizedItem, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		n := model.NormalizedItem{
			Name:      name,
			Checked:   item.Checked,
			IsPinned:  item.Pinned,
			SortOrder: len(out),
		}
		if item.Quantity != nil {
			q := *item.Quantity
			n.Quantity = &q
		}
		if unit := strings.TrimSpace(item.Unit); unit != "" {
			n.Unit = &unit
		}
		if category := NormalizeCategory(item.Category); category != DefaultCategory {
			n.Category = &category
		}
		out = append(out, n)
	}

	return model.CreateGroceryListInput{
		Title:    title,
		IsPinned: pinned,
		Items:    out,
	}, nil
}

// DroppedRows returns the ids of rows PrepareSave would drop.
func DroppedRows(items []Item) []string {
	var ids []string
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Save validates and normalizes a new list and submits it through store.
// Errors are ErrSaveInProgress, ErrAlreadySaved (the list was loaded or saved
// before), a *ValidationError, ErrUnauthenticated or a *PersistenceError. On
// any error the list is unchanged; on success it takes the returned id and
// leaves "new" mode.
func (l *List) Save(ctx context.Context, tokens TokenSource, store Persister) (string, error) {
	if !l.saving.CompareAndSwap(false, true) {
		return "", ErrSaveInProgress
	}
	defer l.saving.Store(false)

	l.mu.Lock()
	if l.id != NewListID {
		l.mu.Unlock()
		return "", ErrAlreadySaved
	}
	title, pinned, items := l.title, l.pinned, l.snapshot()
	l.mu.Unlock()

	in, err := PrepareSave(title, pinned, items)
	if err != nil {
		return "", err
	}
	if dropped := DroppedRows(items); len(dropped) > 0 {
		l.logger.Debug("dropping blank rows", "count", len(dropped), "ids", dropped)
	}

	if tokens == nil {
		return "", ErrUnauthenticated
	}
	token, err := tokens.AccessToken(ctx)
	if err != nil || strings.TrimSpace(token) == "" {
		return "", ErrUnauthenticated
	}

	id, err := store.CreateGroceryList(ctx, token, in)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", &PersistenceError{Message: "save abandoned", Err: ctxErr}
	}
	if err != nil {
		var ua interface{ Unauthorized() bool }
		if errors.As(err, &ua) && ua.Unauthorized() {
			return "", ErrUnauthenticated
		}
		l.logger.Warn("save grocery list failed", "error", err)
		return "", &PersistenceError{Message: "unable to save grocery list", Err: err}
	}

	l.mu.Lock()
	l.id = id
	l.mu.Unlock()
	l.logger.Info("grocery list saved", "id", id, "items", len(in.Items))
	return id, nil
}
