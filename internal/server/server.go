package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/cors"

	"github.com/dukerupert/pantrylist/internal/auth"
	"github.com/dukerupert/pantrylist/internal/handler"
	"github.com/dukerupert/pantrylist/internal/middleware"
	"github.com/dukerupert/pantrylist/internal/store"
	ws "github.com/dukerupert/pantrylist/internal/websocket"
)

const maxBodyBytes = 1 << 20

// Options configures the router.
type Options struct {
	JWTSecret      string
	JWTAudience    string
	AllowedOrigins []string
	// WriteLimit is the number of mutating requests a user may make per minute.
	WriteLimit int
}

type Server struct {
	hub         *ws.Hub
	groceryH    *handler.GroceryListHandler
	verifier    *auth.Verifier
	rateLimiter *middleware.RateLimiter
	opts        Options
	logger      *slog.Logger
}

func New(db *sql.DB, opts Options, logger *slog.Logger) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.WriteLimit <= 0 {
		opts.WriteLimit = 60
	}

	hub := ws.NewHub(logger.With("component", "websocket"))
	return &Server{
		hub:         hub,
		groceryH:    handler.NewGroceryListHandler(store.NewGroceryListStore(db), hub, logger.With("component", "grocery")),
		verifier:    auth.NewVerifier(opts.JWTSecret, opts.JWTAudience),
		rateLimiter: middleware.NewRateLimiter(),
		opts:        opts,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /health", s.healthHandler)

	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireBearer(s.verifier)
	outerMux.Handle("/", authMiddleware(protectedMux))

	var h http.Handler = outerMux
	h = corsMiddleware(s.opts.AllowedOrigins)(h)
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	return h
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /grocery-lists", s.groceryH.List)
	mux.HandleFunc("GET /grocery-lists/{id}", s.groceryH.Get)
	mux.Handle("POST /grocery-lists", s.writeLimited(s.groceryH.Create))
	mux.Handle("PATCH /grocery-lists/{id}", s.writeLimited(s.groceryH.Update))
	mux.Handle("DELETE /grocery-lists/{id}", s.writeLimited(s.groceryH.Delete))

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, originHosts(s.opts.AllowedOrigins), s.logger.With("component", "websocket")))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) writeLimited(h http.HandlerFunc) http.Handler {
	rl := middleware.RateLimit(s.rateLimiter, middleware.UserOrIP, s.opts.WriteLimit, time.Minute)
	return rl(middleware.BodyLimit(maxBodyBytes)(h))
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// originHosts turns CORS origins into the host patterns the websocket
// accept check matches against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, o)
	}
	return hosts
}
