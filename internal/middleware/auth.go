package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/pantrylist/internal/auth"
)

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (auth.AuthContext, error)
}

// RequireBearer validates the Authorization bearer token and populates
// AuthContext. Browsers cannot set headers on WebSocket upgrades, so an
// access_token query parameter is accepted when the header is absent.
func RequireBearer(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeDetail(w, http.StatusUnauthorized, "missing access token")
				return
			}

			ac, err := verifier.Verify(token)
			if err != nil {
				writeDetail(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			recordUser(r.Context(), ac)
			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if h == "" {
		return r.URL.Query().Get("access_token")
	}
	return ""
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
