package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_PORT", "APP_ENV", "ASSIGN_BULK_CONCURRENCY", "ACTOR_CACHE_TTL", "METRICS_TEXTFILE"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, 4, cfg.Assignment.BulkConcurrency)
	assert.Equal(t, 5*time.Minute, cfg.Assignment.ActorCacheTTL)
	assert.Empty(t, cfg.Metrics.TextfilePath)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/leads.db")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MIGRATIONS", "yes")
	t.Setenv("ASSIGN_BULK_CONCURRENCY", "8")
	t.Setenv("ACTOR_CACHE_TTL", "30s")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/leadhunter.prom")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/leads.db", cfg.Database.Path)
	assert.True(t, cfg.App.IsProduction())
	assert.True(t, cfg.App.Migrations)
	assert.Equal(t, 8, cfg.Assignment.BulkConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Assignment.ActorCacheTTL)
	assert.Equal(t, "/var/lib/node_exporter/leadhunter.prom", cfg.Metrics.TextfilePath)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("ACTOR_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Assignment.ActorCacheTTL)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "leads", SSLMode: "require"}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=leads sslmode=require", d.DSN())
}
