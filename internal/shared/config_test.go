package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_DSN", "HTTP_ADDR", "REDIS_ADDR", "REVIEW_GUARD_TTL_SECONDS", "RATE_LIMIT_RPS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.DBDriver != DriverMySQL || c.DBDSN != defaultDSN(DriverMySQL) {
		t.Fatalf("driver/dsn: %q %q", c.DBDriver, c.DBDSN)
	}
	if c.HTTPAddr != ":8080" || c.RedisAddr != "" || c.GuardTTL != 10*time.Second || c.RateLimitRPS != 0 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")
	t.Setenv("REVIEW_GUARD_TTL_SECONDS", "3")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("SEED_WORKERS", "not-a-number")

	c := Load()
	if c.DBDriver != DriverSQLite || c.DBDSN != "business_reviews.db" {
		t.Fatalf("driver/dsn: %q %q", c.DBDriver, c.DBDSN)
	}
	if c.GuardTTL != 3*time.Second || c.RateLimitRPS != 2.5 || !c.MigrateOnStart || c.SeedWorkers != 8 {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoad_UnknownDriverFallsBack(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	c := Load()
	if c.DBDriver != DriverMySQL || c.DBDSN != defaultDSN(DriverMySQL) {
		t.Fatalf("driver/dsn: %q %q", c.DBDriver, c.DBDSN)
	}
}
