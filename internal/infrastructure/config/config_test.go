package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "fieldsales-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 10*time.Second, cfg.Fulfillment.Timeout)
	assert.Equal(t, "ORD", cfg.Orders.NumberPrefix)
}

func TestApplyDefaults_DoesNotOverrideSetValues(t *testing.T) {
	cfg := &Config{
		App:    AppConfig{Port: "9090"},
		Orders: OrdersConfig{NumberPrefix: "FS"},
	}
	applyDefaults(cfg)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "FS", cfg.Orders.NumberPrefix)
}

func TestValidate_Development(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	// Development allows empty secrets and sslmode=disable
	assert.NoError(t, cfg.validate())
}

func TestValidate_ProductionRequirements(t *testing.T) {
	base := func() *Config {
		cfg := &Config{App: AppConfig{Env: "production"}}
		applyDefaults(cfg)
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Fulfillment.BaseURL = "https://fulfillment.example.com"
		return cfg
	}

	t.Run("valid production config passes", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = ""
		assert.ErrorContains(t, cfg.validate(), "jwt.secret is required")
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = "too-short"
		assert.ErrorContains(t, cfg.validate(), "at least 32 characters")
	})

	t.Run("missing database password", func(t *testing.T) {
		cfg := base()
		cfg.Database.Password = ""
		assert.ErrorContains(t, cfg.validate(), "database.password")
	})

	t.Run("sslmode disable rejected", func(t *testing.T) {
		cfg := base()
		cfg.Database.SSLMode = "disable"
		assert.ErrorContains(t, cfg.validate(), "sslmode")
	})

	t.Run("missing fulfillment base url", func(t *testing.T) {
		cfg := base()
		cfg.Fulfillment.BaseURL = ""
		assert.ErrorContains(t, cfg.validate(), "fulfillment.base_url")
	})

	t.Run("wildcard CORS rejected", func(t *testing.T) {
		cfg := base()
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.ErrorContains(t, cfg.validate(), "cors_allow_origins")
	})
}

func TestValidate_ConnectionPoolBounds(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 100
	assert.ErrorContains(t, cfg.validate(), "cannot exceed")
}

func TestDSN_EscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "field sales",
		Password: "p@ss/word#1",
		DBName:   "fieldsales",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	require.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "field%20sales")
	assert.Contains(t, dsn, "p%40ss%2Fword%231")
	assert.Contains(t, dsn, "db.internal:5432/fieldsales")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
