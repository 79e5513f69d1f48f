package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	UserID          string        // the signed-in user this instance serves
	CatalogFile     string        // path to the site catalog yaml (optional, empty = add-by-url disabled)
	NotificationTTL time.Duration // how long a notification stays visible (default: 5s)
	RefreshInterval time.Duration // interval between background collection refreshes (default: 1h)

	// Redis
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

	// Rate limiting
	RateLimitBurst  int // bucket capacity per client IP
	RateLimitPerMin int // refill rate per client IP per minute

	AllowedHosts []string // optional, restrict admin endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	CORSOrigins  []string // allowed CORS origins for the UI
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LUNARIA_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LUNARIA_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LUNARIA_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LUNARIA_PRETTY_LOG", true),

		// Collection
		UserID:          requireEnv("LUNARIA_USER_ID"),
		CatalogFile:     getenv("LUNARIA_CATALOG_FILE", ""), // Optional, empty = add-by-url disabled
		NotificationTTL: mustDuration("LUNARIA_NOTIFICATION_TTL", 5*time.Second),
		RefreshInterval: mustDuration("LUNARIA_REFRESH_INTERVAL", time.Hour),

		// Redis settings
		RedisAddr:             requireEnv("LUNARIA_REDIS_ADDR"),
		RedisUser:             getenv("LUNARIA_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LUNARIA_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("LUNARIA_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LUNARIA_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Rate limiting
		RateLimitBurst:  getenvInt("LUNARIA_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("LUNARIA_RATE_LIMIT_PER_MIN", 120),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LUNARIA_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("LUNARIA_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LUNARIA_TRUST_PROXY", true),
		CORSOrigins:  splitAndTrim(getenv("LUNARIA_CORS_ORIGINS", "*")),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LUNARIA_REDIS_PASSWORD is required when LUNARIA_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
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
