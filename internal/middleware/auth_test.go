package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/pantrylist/internal/auth"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func protected(t *testing.T, reached *auth.AuthContext) http.Handler {
	t.Helper()
	v := auth.NewVerifier(testSecret, auth.DefaultAudience)
	return RequireBearer(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reached == nil {
			t.Error("should not reach handler")
			return
		}
		ac, ok := auth.FromContext(r.Context())
		if !ok {
			t.Error("expected AuthContext in request context")
		}
		*reached = ac
		w.WriteHeader(http.StatusOK)
	}))
}

func issue(t *testing.T, sub string) string {
	t.Helper()
	tok, err := auth.NewIssuer(testSecret, auth.DefaultAudience).Issue(sub, sub+"@example.com", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func TestRequireBearerMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/grocery-lists", nil)
	rec := httptest.NewRecorder()
	protected(t, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["detail"] != "missing access token" {
		t.Errorf("detail = %q, want %q", body["detail"], "missing access token")
	}
}

func TestRequireBearerInvalid(t *testing.T) {
	for _, h := range []string{"Bearer not-a-jwt", "Basic dXNlcjpwYXNz", "Bearer"} {
		req := httptest.NewRequest("GET", "/grocery-lists", nil)
		req.Header.Set("Authorization", h)
		rec := httptest.NewRecorder()
		protected(t, nil).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Authorization %q: status = %d, want %d", h, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRequireBearerValid(t *testing.T) {
	var got auth.AuthContext
	req := httptest.NewRequest("GET", "/grocery-lists", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, "alice"))
	rec := httptest.NewRecorder()
	protected(t, &got).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.UserID != "alice" {
		t.Errorf("UserID = %q, want %q", got.UserID, "alice")
	}
}

func TestRequireBearerQueryParam(t *testing.T) {
	var got auth.AuthContext
	req := httptest.NewRequest("GET", "/ws?access_token="+issue(t, "bob"), nil)
	rec := httptest.NewRecorder()
	protected(t, &got).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.UserID != "bob" {
		t.Errorf("UserID = %q, want %q", got.UserID, "bob")
	}
}

func TestRequestLoggerRecordsUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var got auth.AuthContext
	handler := RequestLogger(logger)(protected(t, &got))

	req := httptest.NewRequest("GET", "/grocery-lists", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, "carol"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{"method=GET", "path=/grocery-lists", "status=200", "user=carol", "level=INFO"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestRequestLoggerWarnsOnClientError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogger(logger)(protected(t, nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/grocery-lists", nil))

	line := buf.String()
	if !strings.Contains(line, "level=WARN") || !strings.Contains(line, "status=401") {
		t.Errorf("log line = %q, want WARN with status=401", line)
	}
	if strings.Contains(line, "user=") {
		t.Errorf("log line = %q, want no user for rejected request", line)
	}
}
