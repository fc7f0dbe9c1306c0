package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/pantrylist/internal/auth"
	"github.com/dukerupert/pantrylist/internal/grocery"
	"github.com/dukerupert/pantrylist/internal/model"
	"github.com/dukerupert/pantrylist/internal/store"
	ws "github.com/dukerupert/pantrylist/internal/websocket"
)

const entityGroceryList = "grocery_list"

type GroceryListHandler struct {
	store  *store.GroceryListStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewGroceryListHandler(s *store.GroceryListStore, hub *ws.Hub, logger *slog.Logger) *GroceryListHandler {
	return &GroceryListHandler{store: s, hub: hub, logger: logger}
}

func (h *GroceryListHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	var req model.CreateGroceryListInput
	if !decodeAndValidate(w, r, &req, normalizeInput) {
		return
	}

	list, err := h.store.Create(ownerID, req)
	if err != nil {
		h.logger.Error("create grocery list", "error", err)
		writeDetail(w, http.StatusInternalServerError, "failed to create grocery list")
		return
	}

	h.logger.Info("grocery list created", "id", list.ID, "owner", ownerID, "items", len(list.Items))
	h.hub.BroadcastTo(ownerID, ws.NewMessage(entityGroceryList, "created", list.ID, map[string]any{
		"title":    list.Title,
		"isPinned": list.IsPinned,
	}))
	writeJSON(w, http.StatusCreated, model.CreateGroceryListResponse{ID: list.ID})
}

func (h *GroceryListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.store.ListByOwner(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list grocery lists", "error", err)
		writeDetail(w, http.StatusInternalServerError, "failed to list grocery lists")
		return
	}
	if lists == nil {
		lists = []model.GroceryListSummary{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *GroceryListHandler) Get(w http.ResponseWriter, r *http.Request) {
	list, ok := h.owned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *GroceryListHandler) Update(w http.ResponseWriter, r *http.Request) {
	list, ok := h.owned(w, r)
	if !ok {
		return
	}

	var req struct {
		IsPinned *bool `json:"isPinned" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req, nil) {
		return
	}

	updated, err := h.store.SetPinned(list.ID, *req.IsPinned)
	if err != nil {
		h.logger.Error("update grocery list", "id", list.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "failed to update grocery list")
		return
	}

	h.hub.BroadcastTo(list.OwnerID, ws.NewMessage(entityGroceryList, "updated", list.ID, map[string]any{
		"isPinned": updated.IsPinned,
	}))
	writeJSON(w, http.StatusOK, updated)
}

func (h *GroceryListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	list, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(list.ID); err != nil {
		h.logger.Error("delete grocery list", "id", list.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "failed to delete grocery list")
		return
	}

	h.hub.BroadcastTo(list.OwnerID, ws.NewMessage(entityGroceryList, "deleted", list.ID, nil))
	w.WriteHeader(http.StatusNoContent)
}

// owned loads the list named in the path and checks it belongs to the
// caller. Lists of other users are reported as missing.
func (h *GroceryListHandler) owned(w http.ResponseWriter, r *http.Request) (*model.GroceryList, bool) {
	list, err := h.store.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get grocery list", "error", err)
		writeDetail(w, http.StatusInternalServerError, "failed to get grocery list")
		return nil, false
	}
	if list == nil || list.OwnerID != auth.UserID(r.Context()) {
		writeDetail(w, http.StatusNotFound, "grocery list not found")
		return nil, false
	}
	return list, true
}

// normalizeInput applies the same cleanup the editor does before saving, so
// clients that skip it still store tidy rows.
func normalizeInput(in *model.CreateGroceryListInput) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Items == nil {
		in.Items = []model.NormalizedItem{}
	}
	for i := range in.Items {
		item := &in.Items[i]
		item.Name = strings.TrimSpace(item.Name)
		item.Unit = trimOrNil(item.Unit)
		item.Category = trimOrNil(item.Category)
		if item.Category != nil && *item.Category == grocery.DefaultCategory {
			item.Category = nil
		}
	}
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
