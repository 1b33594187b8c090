package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable via CONSENT_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Script fetch modes selectable via SCRIPT_FETCH_MODE.
const (
	FetchModeHTTP   = "http"
	FetchModeStatic = "static"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    slog.Level

	Binding Binding
	Gate    Gate
	Store   Store
	Pages   Pages
	Scripts Scripts
}

// Binding holds the provider account identifiers the host renders into the
// component's data attributes. Either may be empty.
type Binding struct {
	AnalyticsID string
	MarketingID string
}

// Gate toggles the behaviors that differed between deployed copies of the
// consent component.
type Gate struct {
	EmitCloseSignal      bool
	ExposeGlobalAccessor bool
	VerboseLogging       bool
}

// Store selects and configures the client-local key/value backend.
type Store struct {
	Backend     string
	RedisURL    string
	DatabaseURL string
	SQLitePath  string
	// TTL applies to Redis namespaces only; zero keeps items until cleared.
	TTL time.Duration
}

// Pages bounds page session lifetime.
type Pages struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
	LoadWait      time.Duration
}

// Scripts configures how provider scripts are resolved.
type Scripts struct {
	FetchMode    string
	FetchTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return Server{
		Addr:        getString("COOKIE_CONSENT_ADDR", ":8080"),
		Environment: getString("ENVIRONMENT", "development"),
		LogLevel:    parseLevel(os.Getenv("LOG_LEVEL")),
		Binding: Binding{
			AnalyticsID: strings.TrimSpace(os.Getenv("GA_ID")),
			MarketingID: strings.TrimSpace(os.Getenv("META_PIXEL_ID")),
		},
		Gate: Gate{
			EmitCloseSignal:      getBool("CONSENT_EMIT_CLOSE_SIGNAL", true),
			ExposeGlobalAccessor: getBool("CONSENT_EXPOSE_ACCESSOR", true),
			VerboseLogging:       getBool("CONSENT_VERBOSE_LOGGING", false),
		},
		Store: Store{
			Backend:     strings.ToLower(getString("CONSENT_STORE", StoreMemory)),
			RedisURL:    os.Getenv("REDIS_URL"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  getString("SQLITE_PATH", "cookie_consent.db"),
			TTL:         getDuration("CONSENT_STORAGE_TTL", 0),
		},
		Pages: Pages{
			IdleTTL:       getDuration("PAGE_IDLE_TTL", 30*time.Minute),
			SweepInterval: getDuration("PAGE_SWEEP_INTERVAL", 5*time.Minute),
			LoadWait:      getDuration("LOAD_WAIT", 2*time.Second),
		},
		Scripts: Scripts{
			FetchMode:    strings.ToLower(getString("SCRIPT_FETCH_MODE", FetchModeHTTP)),
			FetchTimeout: getDuration("SCRIPT_FETCH_TIMEOUT", 10*time.Second),
		},
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func parseLevel(v string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return slog.LevelInfo
	}
	return level
}
