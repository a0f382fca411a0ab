package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Record stores
	LinksDir      string // directory holding one front-matter document per link
	LinksExt      string // link document extension, with the leading dot (ex: ".mdx")
	ResourcesFile string // JSON array file of the resource section

	// Metadata fetcher
	FetchTimeout time.Duration // per-page request timeout, 0 = none (ex: 30s)
	UserAgent    string        // User-Agent header sent with each fetch
	CacheTTL     time.Duration // how long fetched metadata is cached

	// Redis (optional, empty address = in-memory cache)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 2s)
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt

	// bm serve
	ListenAddr      string        // ex: "127.0.0.1:8080"
	ShutdownTimeout time.Duration // ex: 5s
}

const defaultUserAgent = "Mozilla/5.0 (compatible; bm/1.0; +https://github.com/MrSnakeDoc/bm)"

// Load reads an optional .env file from the working directory, then the
// process environment.
func Load() *Config {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:  getenv("BM_LOG_LEVEL", "warn"),
		PrettyLog: mustBool("BM_PRETTY_LOG", true),

		LinksDir:      getenv("BM_LINKS_DIR", "src/content/links"),
		LinksExt:      normalizeExt(getenv("BM_LINKS_EXT", ".mdx")),
		ResourcesFile: getenv("BM_RESOURCES_FILE", "perl/resources.json"),

		FetchTimeout: mustDuration("BM_FETCH_TIMEOUT", 0),
		UserAgent:    getenv("BM_USER_AGENT", defaultUserAgent),
		CacheTTL:     mustDuration("BM_CACHE_TTL", 24*time.Hour),

		RedisAddr:           getenv("BM_REDIS_ADDR", ""),
		RedisUser:           getenv("BM_REDIS_USERNAME", ""),
		RedisPassword:       getenv("BM_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("BM_REDIS_DB", 0),
		RedisConnectTimeout: mustDuration("BM_REDIS_CONNECT_TIMEOUT", 2*time.Second),
		RedisRetryInterval:  mustDuration("BM_REDIS_RETRY_INTERVAL", 250*time.Millisecond),
		RedisMaxWait:        mustDuration("BM_REDIS_MAX_WAIT", time.Second),
		RedisPingTimeout:    mustDuration("BM_REDIS_PING_TIMEOUT", 500*time.Millisecond),

		ListenAddr:      getenv("BM_LISTEN_ADDR", "127.0.0.1:8080"),
		ShutdownTimeout: mustDuration("BM_SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
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

// normalizeExt accepts "mdx" as well as ".mdx".
func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
