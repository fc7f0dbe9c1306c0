package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dukerupert/pantrylist/internal/apiclient"
)

const goodSecret = "super-secret-jwt-token-with-at-least-32-characters"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Server
		wantErr string
	}{
		{"ok", Server{JWTSecret: goodSecret, WriteLimit: 60}, ""},
		{"short secret", Server{JWTSecret: "short", WriteLimit: 60}, "PANTRYLIST_JWT_SECRET must be at least 32 bytes (got 5)"},
		{"zero limit", Server{JWTSecret: goodSecret}, "PANTRYLIST_WRITE_LIMIT must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Server{CORSOrigins: " http://localhost:8081, ,https://app.example.com "}
	want := []string{"http://localhost:8081", "https://app.example.com"}
	if diff := cmp.Diff(want, cfg.AllowedOrigins()); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("PANTRYLIST_API_URL", "")
	t.Setenv("PANTRYLIST_ACCESS_TOKEN", "tok")
	t.Setenv("PANTRYLIST_JWT_AUDIENCE", "")

	got := LoadClient()
	if got.APIURL != apiclient.DefaultBaseURL {
		t.Errorf("APIURL = %q, want %q", got.APIURL, apiclient.DefaultBaseURL)
	}
	if got.AccessToken != "tok" {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, "tok")
	}
	if got.JWTAudience != "authenticated" {
		t.Errorf("JWTAudience = %q, want %q", got.JWTAudience, "authenticated")
	}

	t.Setenv("PANTRYLIST_API_URL", "https://lists.example.com")
	if got := LoadClient(); got.APIURL != "https://lists.example.com" {
		t.Errorf("APIURL = %q, want override", got.APIURL)
	}
}
