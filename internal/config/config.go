package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Record store
	StoreBackend   string        // mongo | redis | memory
	DatabaseURL    string        // mongodb://... or redis://...
	MongoDatabase  string        // database name (mongo only)
	ConnectTimeout time.Duration // bound on the lazy connection attempt

	RedisDT       time.Duration // Redis dial timeout (ex: 5s)
	RedisRT       time.Duration // Redis read timeout (ex: 3s)
	RedisWT       time.Duration // Redis write timeout (ex: 3s)
	RedisPoolSize int           // Redis connection pool size

	// Auth
	JWTSecret   string        // HMAC signing secret, required by the server
	TokenTTL    time.Duration // ex: 1h
	BcryptCost  int           // ex: 10
	RequireAuth bool          // true => mutation routes need a bearer token

	// API
	DefaultPageSize int    // page size when ?limit is missing or invalid
	MaxUploadBytes  int64  // multipart body limit
	ImagesDir       string // legacy static logo directory, "" disables /images
	PublicBaseURL   string // prefix for relative logo paths in responses

	// Access
	CORSOrigins   []string // ex: "*" or "https://a.ext, https://b.ext"
	AuthRateLimit int      // requests per minute per IP on /login and /register
	AllowedCIDRS  []string // optional, restrict /metrics and /infra
	TrustProxy    bool     // true => trust X-Forwarded-For headers

	// Background jobs
	StatsInterval time.Duration // store record gauge refresh, <= 0 disables

	// Seeding
	SeedIfEmpty bool   // seed local games at startup if none exist
	SeedFile    string // YAML seed set, "" => embedded default
}

// Load reads configuration from the environment. A .env file in the working
// directory is read first; variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to read .env: %v", err)
	}

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("GAMES_LISTEN_PORT", ":"+getenv("PORT", "8000")),
		ShutdownTimeout: mustDuration("GAMES_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("GAMES_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("GAMES_LOG_LEVEL", "info"),
		PrettyLog: mustBool("GAMES_PRETTY_LOG", true),

		// Store settings
		StoreBackend:   strings.ToLower(getenv("GAMES_STORE_BACKEND", BackendMongo)),
		DatabaseURL:    getenv("GAMES_DATABASE_URL", os.Getenv("MONGODBCON")),
		MongoDatabase:  getenv("GAMES_MONGO_DATABASE", ""),
		ConnectTimeout: mustDuration("GAMES_CONNECT_TIMEOUT", 10*time.Second),
		RedisDT:        mustDuration("GAMES_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:        mustDuration("GAMES_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:        mustDuration("GAMES_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:  getenvInt("GAMES_REDIS_POOL_SIZE", 10),

		// Auth
		JWTSecret:   os.Getenv("GAMES_JWT_SECRET"),
		TokenTTL:    mustDuration("GAMES_TOKEN_TTL", time.Hour),
		BcryptCost:  getenvInt("GAMES_BCRYPT_COST", 10),
		RequireAuth: mustBool("GAMES_REQUIRE_AUTH", false),

		// API
		DefaultPageSize: getenvInt("GAMES_DEFAULT_PAGE_SIZE", 50),
		MaxUploadBytes:  int64(getenvInt("GAMES_MAX_UPLOAD_BYTES", 5<<20)),
		ImagesDir:       getenvAllowEmpty("GAMES_IMAGES_DIR", "images"),
		PublicBaseURL:   getenv("GAMES_PUBLIC_BASE_URL", ""),

		// Access restrictions
		CORSOrigins:   splitAndTrim(getenv("GAMES_CORS_ORIGINS", "*")),
		AuthRateLimit: getenvInt("GAMES_AUTH_RATE_LIMIT", 10),
		AllowedCIDRS:  splitAndTrim(getenv("GAMES_ALLOWED_CIDRS", "")),
		TrustProxy:    mustBool("GAMES_TRUST_PROXY", false),

		// Background jobs
		StatsInterval: mustDuration("GAMES_STATS_INTERVAL", time.Minute),

		// Seeding
		SeedIfEmpty: mustBool("GAMES_SEED_IF_EMPTY", false),
		SeedFile:    getenv("GAMES_SEED_FILE", ""),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.DatabaseURL = RedactURL(cfg.DatabaseURL)
		if cfg.JWTSecret != "" {
			cfgCopy.JWTSecret = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMongo, BackendRedis:
		if c.DatabaseURL == "" {
			return fmt.Errorf("GAMES_DATABASE_URL (or MONGODBCON) is required for the %s backend", c.StoreBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("GAMES_STORE_BACKEND must be one of mongo|redis|memory, got %q", c.StoreBackend)
	}
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("GAMES_DEFAULT_PAGE_SIZE must be >= 1, got %d", c.DefaultPageSize)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("GAMES_CONNECT_TIMEOUT must be > 0, got %v", c.ConnectTimeout)
	}
	return nil
}

// RedactURL hides the password of a connection URL.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "***REDACTED***"
	}
	return u.Redacted()
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvAllowEmpty distinguishes "unset" (default) from "set to empty".
func getenvAllowEmpty(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
