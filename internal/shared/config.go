package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	DBDriver       string // mysql | sqlite
	DBDSN          string
	MigrateOnStart bool
	RedisAddr      string // empty disables the review submission guard
	RedisDB        int
	RedisPass      string
	GuardTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	LogLevel       string
	LogFile        string
	SeedWorkers    int
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Real environment variables win over .env entries.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		DBDriver:       env("DB_DRIVER", DriverMySQL),
		DBDSN:          env("DB_DSN", ""),
		MigrateOnStart: envBool("MIGRATE_ON_START", false),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		GuardTTL:       time.Duration(atoi("REVIEW_GUARD_TTL_SECONDS", 10)) * time.Second,
		RateLimitRPS:   atof("RATE_LIMIT_RPS", 0),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 20),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		LogLevel:       env("LOG_LEVEL", "info"),
		LogFile:        env("LOG_FILE", ""),
		SeedWorkers:    atoi("SEED_WORKERS", 8),
	}
	if c.DBDSN == "" {
		c.DBDSN = defaultDSN(c.DBDriver)
	}
	if c.DBDriver != DriverMySQL && c.DBDriver != DriverSQLite {
		log.Warn().Str("driver", c.DBDriver).Msg("unknown DB_DRIVER, falling back to mysql")
		c.DBDriver = DriverMySQL
		c.DBDSN = env("DB_DSN", defaultDSN(DriverMySQL))
	}
	return c
}

func defaultDSN(driver string) string {
	if driver == DriverSQLite {
		return "business_reviews.db"
	}
	return "root:root@tcp(localhost:3306)/business_reviews?charset=utf8mb4&loc=UTC"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
