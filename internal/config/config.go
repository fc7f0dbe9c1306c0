// Package config loads process settings from the environment. An optional
// .env file in the working directory is read first; real environment
// variables win over it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"

	"github.com/dukerupert/pantrylist/internal/apiclient"
	"github.com/dukerupert/pantrylist/internal/auth"
)

// Server holds the list service settings.
type Server struct {
	Port            string        `conf:"default:8001,env:PANTRYLIST_PORT"`
	DBPath          string        `conf:"default:pantrylist.db,env:PANTRYLIST_DB_PATH"`
	LogLevel        string        `conf:"default:info,env:PANTRYLIST_LOG_LEVEL"`
	LogFormat       string        `conf:"default:text,enum:text|json,env:PANTRYLIST_LOG_FORMAT"`
	JWTSecret       string        `conf:"required,env:PANTRYLIST_JWT_SECRET,noprint"`
	JWTAudience     string        `conf:"default:authenticated,env:PANTRYLIST_JWT_AUDIENCE"`
	CORSOrigins     string        `conf:"default:*,env:PANTRYLIST_CORS_ORIGINS"`
	WriteLimit      int           `conf:"default:60,env:PANTRYLIST_WRITE_LIMIT"`
	ShutdownTimeout time.Duration `conf:"default:5s,env:PANTRYLIST_SHUTDOWN_TIMEOUT"`
}

// LoadServer reads the service configuration. With --help the error matches
// conf.ErrHelpWanted; ServerUsage returns the text to print.
func LoadServer() (*Server, error) {
	var cfg Server
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ServerUsage() string {
	usage, err := conf.UsageInfo("pantrylistd", &Server{})
	if err != nil {
		return err.Error()
	}
	return usage
}

// Validate checks settings conf tags cannot express.
func (c *Server) Validate() error {
	var errs []string
	if len(c.JWTSecret) < 32 {
		errs = append(errs, fmt.Sprintf("PANTRYLIST_JWT_SECRET must be at least 32 bytes (got %d)", len(c.JWTSecret)))
	}
	if c.WriteLimit <= 0 {
		errs = append(errs, "PANTRYLIST_WRITE_LIMIT must be positive")
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
}

// AllowedOrigins splits CORSOrigins on commas, dropping blanks.
func (c *Server) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Client holds CLI settings. Command-line flags override these.
type Client struct {
	APIURL      string
	AccessToken string
	JWTSecret   string
	JWTAudience string
}

// LoadClient reads CLI settings from the environment. Flags are owned by the
// command tree, so conf's own flag parsing is not used here.
func LoadClient() Client {
	_ = godotenv.Load()
	return Client{
		APIURL:      envOr("PANTRYLIST_API_URL", apiclient.DefaultBaseURL),
		AccessToken: os.Getenv("PANTRYLIST_ACCESS_TOKEN"),
		JWTSecret:   os.Getenv("PANTRYLIST_JWT_SECRET"),
		JWTAudience: envOr("PANTRYLIST_JWT_AUDIENCE", auth.DefaultAudience),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
