package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AUTH_TOKEN_TTL", "")
	t.Setenv("MIN_PASSWORD_LENGTH", "")

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, 5, cfg.MinPasswordLength)
	assert.Equal(t, time.Second, cfg.WaitForDBInterval)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_TOKEN_TTL", "2h")
	t.Setenv("HTTP_LOG_ENABLED", "true")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.HTTPLogEnabled)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	t.Setenv("SESSION_CACHE_TTL", "forever")
	t.Setenv("DEBUG_METRICS_ENABLED", "nope")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.DebugMetricsEnabled)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "app", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/app?sslmode=disable", cfg.PostgresDSN())
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test ", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func TestValidate(t *testing.T) {
	cfg := Load()
	assert.NoError(t, cfg.Validate())

	cfg.Env = "production"
	assert.ErrorContains(t, cfg.Validate(), "AUTH_TOKEN_SECRET")

	cfg = Load()
	cfg.MinPasswordLength = 0
	cfg.TokenTTL = -time.Second
	cfg.StorageDriver = "sqlite"
	err := cfg.Validate()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
	assert.ErrorContains(t, err, "MIN_PASSWORD_LENGTH")
	assert.ErrorContains(t, err, "AUTH_TOKEN_TTL")
}

func TestValidate_PasswordFloor(t *testing.T) {
	cfg := Load()
	cfg.MinPasswordLength = MinPasswordFloor - 1
	assert.ErrorContains(t, cfg.Validate(), "MIN_PASSWORD_LENGTH must be at least 5")

	cfg.MinPasswordLength = MinPasswordFloor + 3
	assert.NoError(t, cfg.Validate())
}

func TestValidate_TrustedProxies(t *testing.T) {
	cfg := Load()
	cfg.TrustedProxies = "10.0.0.1, 172.16.0.0/12"
	cfg.TrustedPlatform = "cloudflare"
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxyList())

	cfg.TrustedProxies = "not-an-ip"
	cfg.TrustedPlatform = "heroku"
	err := cfg.Validate()
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
	assert.ErrorContains(t, err, "TRUSTED_PLATFORM")
}
