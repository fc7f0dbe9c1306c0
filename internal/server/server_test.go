package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dukerupert/pantrylist/internal/auth"
	"github.com/dukerupert/pantrylist/internal/database"
	"github.com/dukerupert/pantrylist/internal/model"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func setupServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	opts.JWTSecret = testSecret
	opts.JWTAudience = auth.DefaultAudience
	return New(db, opts, slog.Default()).Router()
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	tok, err := auth.NewIssuer(testSecret, auth.DefaultAudience).Issue(sub, "", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + tok
}

func TestHealth(t *testing.T) {
	h := setupServer(t, Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("body = %v, want status ok", body)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := setupServer(t, Options{})

	for _, path := range []string{"/grocery-lists", "/grocery-lists/abc", "/ws"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: status = %d, want %d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestCreateThenList(t *testing.T) {
	h := setupServer(t, Options{})

	body := `{"title":"For Home","isPinned":false,"items":[{"name":"Milk","quantity":null,"unit":null,"checked":false,"category":"Dairy","isPinned":false,"sortOrder":0}]}`
	req := httptest.NewRequest("POST", "/grocery-lists", bytes.NewBufferString(body))
	req.Header.Set("Authorization", bearer(t, "alice"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created model.CreateGroceryListResponse
	json.NewDecoder(rec.Body).Decode(&created)

	req = httptest.NewRequest("GET", "/grocery-lists", nil)
	req.Header.Set("Authorization", bearer(t, "alice"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var lists []model.GroceryListSummary
	if err := json.NewDecoder(rec.Body).Decode(&lists); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var ids []string
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	if diff := cmp.Diff([]string{created.ID}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRateLimit(t *testing.T) {
	h := setupServer(t, Options{WriteLimit: 1})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/grocery-lists", bytes.NewBufferString(`{"title":"x"}`))
		req.Header.Set("Authorization", bearer(t, "alice"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(); rec.Code != http.StatusCreated {
		t.Fatalf("first write: status = %d", rec.Code)
	}
	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second write: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// Reads are not limited.
	req := httptest.NewRequest("GET", "/grocery-lists", nil)
	req.Header.Set("Authorization", bearer(t, "alice"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("read: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := setupServer(t, Options{AllowedOrigins: []string{"http://localhost:8081"}})

	req := httptest.NewRequest("OPTIONS", "/grocery-lists", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8081" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:8081")
	}
	if rec.Code == http.StatusUnauthorized {
		t.Error("preflight should not require a token")
	}
}

func TestOriginHosts(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"*"}, []string{"*"}},
		{[]string{"http://localhost:8081", "https://app.example.com"}, []string{"localhost:8081", "app.example.com"}},
		{[]string{"app.example.com", "*"}, []string{"*"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, originHosts(tt.in)); diff != "" {
			t.Errorf("originHosts(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
