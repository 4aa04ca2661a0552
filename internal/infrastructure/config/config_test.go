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

	assert.Equal(t, "teeforge-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "stub", cfg.Storage.Provider)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 6.00, cfg.Studio.BaseFee)
	assert.Equal(t, 0.10, cfg.Studio.TextPerChar)
	assert.Equal(t, 5.00, cfg.Studio.UploadedImage)
	assert.Equal(t, 3.00, cfg.Studio.TemplateImage)
	assert.Equal(t, 50, cfg.Studio.HistoryLimit)
	assert.Equal(t, 500, cfg.Studio.CanvasWidth)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100
		require.Error(t, cfg.validate())
	})

	t.Run("negative prices rejected", func(t *testing.T) {
		cfg := base()
		cfg.Studio.TextPerChar = -0.1
		require.Error(t, cfg.validate())
	})

	t.Run("history limit floor", func(t *testing.T) {
		cfg := base()
		cfg.Studio.HistoryLimit = 1
		require.Error(t, cfg.validate())
	})

	t.Run("production requires db password and ssl", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		require.Error(t, cfg.validate())

		cfg.Database.Password = "secret"
		require.Error(t, cfg.validate())

		cfg.Database.SSLMode = "require"
		require.Error(t, cfg.validate()) // stub storage still blocks

		cfg.Storage.Provider = "s3"
		require.NoError(t, cfg.validate())
	})

	t.Run("production rejects wildcard cors", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Storage.Provider = "s3"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		require.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "tee",
		Password: "p@ss/word",
		DBName:   "teeforge",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word") // escaped
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
