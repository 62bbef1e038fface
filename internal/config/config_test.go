package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "4000")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_CONNECTION_STRING", "postgres://localhost/tidings")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("WEBSITE_URL", "https://tidings.example/")
}

func TestFromEnvReportsEveryMissingVariable(t *testing.T) {
	for _, key := range requiredVars {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "4000")

	_, err := FromEnv()
	require.Error(t, err)

	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"JWT_SECRET", "DB_CONNECTION_STRING", "APP_ENV", "WEBSITE_URL"}, missing.Keys)
	assert.Contains(t, err.Error(), "JWT_SECRET, DB_CONNECTION_STRING")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://tidings.example", cfg.WebsiteURL)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "tidings", cfg.DB.Name)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"https://tidings.example"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "Mongo")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://tidings.example ,")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.DB.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.TrustedProxies)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"https://tidings.example", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestFromEnvReportsUnparsableValues(t *testing.T) {
	setRequired(t)
	t.Setenv("BCRYPT_COST", "abc")
	t.Setenv("TOKEN_TTL", "1hour")
	t.Setenv("DB_AUTO_MIGRATE", "sometimes")

	_, err := FromEnv()
	require.Error(t, err)
	assert.ErrorContains(t, err, `BCRYPT_COST: "abc" is not an integer`)
	assert.ErrorContains(t, err, `TOKEN_TTL: "1hour" is not a duration`)
	assert.ErrorContains(t, err, `DB_AUTO_MIGRATE: "sometimes" is not a boolean`)
}

func TestFromEnvRejectsOriginsWithoutScheme(t *testing.T) {
	setRequired(t)
	t.Setenv("WEBSITE_URL", "tidings.example")

	_, err := FromEnv()
	assert.ErrorContains(t, err, `origin "tidings.example" must be an http:// or https:// URL`)

	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", "localhost:3000")

	_, err = FromEnv()
	assert.ErrorContains(t, err, `origin "localhost:3000" must be an http:// or https:// URL`)

	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", "https://tidings.example/app")

	_, err = FromEnv()
	assert.ErrorContains(t, err, "must not carry a path")
}

func TestFromEnvRejectsBadTrustedProxies(t *testing.T) {
	setRequired(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/33")

	_, err := FromEnv()
	assert.ErrorContains(t, err, `TRUSTED_PROXIES: "10.0.0.0/33" is not a CIDR`)

	t.Setenv("TRUSTED_PROXIES", "proxy.internal")

	_, err = FromEnv()
	assert.ErrorContains(t, err, `TRUSTED_PROXIES: "proxy.internal" is not an IP address`)
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, Config{Env: EnvDevelopment}.IsDevelopment())
	assert.False(t, Config{Env: EnvProduction}.IsDevelopment())
}
