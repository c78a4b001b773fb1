package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrRedisPasswordRequired is returned by Load when Redis is enabled, a
// password is required and none is set.
var ErrRedisPasswordRequired = errors.New("COURSESITE_REDIS_PASSWORD is required when COURSESITE_REDIS_PASSWORD_REQUIRED=true")

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SiteDir        string        // directory holding site.yaml, sidebars.yaml, courses.yaml, docs/
	ReloadInterval time.Duration // periodic reload of the site definition (default: 1h)
	Watch          bool          // reload on file-system changes under SiteDir
	WatchDebounce  time.Duration // quiet period before a watched change triggers a reload
	Strict         bool          // reject snapshots whose report has errors
	ScanWorkers    int           // concurrent markdown parsers

	ReloadRate  float64 // manual reloads per second
	ReloadBurst int

	// Redis (optional, empty RedisAddr = no persistence)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	RedisSnapshotTTL      time.Duration // expiry of persisted snapshots (0 = no expiry)

	AllowedHosts []string // optional, restrict reload to specific Host headers
	AllowedCIDRS []string // optional, restrict reload to specific IP (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// RedisEnabled reports whether snapshots are persisted.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("COURSESITE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("COURSESITE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("COURSESITE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("COURSESITE_PRETTY_LOG", true),

		// Site definition
		SiteDir:        getenv("COURSESITE_SITE_DIR", "/app/site"),
		ReloadInterval: mustDuration("COURSESITE_RELOAD_INTERVAL", time.Hour),
		Watch:          mustBool("COURSESITE_WATCH", true),
		WatchDebounce:  mustDuration("COURSESITE_WATCH_DEBOUNCE", 500*time.Millisecond),
		Strict:         mustBool("COURSESITE_STRICT", false),
		ScanWorkers:    getenvInt("COURSESITE_SCAN_WORKERS", 8),

		ReloadRate:  getenvFloat("COURSESITE_RELOAD_RATE", 0.2),
		ReloadBurst: getenvInt("COURSESITE_RELOAD_BURST", 2),

		// Redis settings
		RedisAddr:             getenv("COURSESITE_REDIS_ADDR", ""),
		RedisUser:             getenv("COURSESITE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("COURSESITE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("COURSESITE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("COURSESITE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		RedisSnapshotTTL:      mustDuration("COURSESITE_REDIS_SNAPSHOT_TTL", 7*24*time.Hour),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("COURSESITE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("COURSESITE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("COURSESITE_TRUST_PROXY", false),
	}

	if cfg.RedisEnabled() && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		return nil, ErrRedisPasswordRequired
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg, nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
