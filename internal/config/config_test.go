package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL_MINUTES", "")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 20*time.Minute, cfg.TokenTTL)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.AllowAdminSignup)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("TOKEN_TTL_MINUTES", "5")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example,")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.AllowAdminSignup)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := Load()
		cfg.DBDriver = "oracle"
		require.Error(t, cfg.Validate())
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		cfg := Load()
		cfg.StorageBackend = StorageS3
		cfg.AWSS3Bucket = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("missing secret in release mode", func(t *testing.T) {
		cfg := Load()
		cfg.GinMode = "release"
		cfg.JWTSecret = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("development secret fallback", func(t *testing.T) {
		cfg := Load()
		cfg.GinMode = "debug"
		cfg.JWTSecret = ""
		require.NoError(t, cfg.Validate())
		assert.NotEmpty(t, cfg.JWTSecret)
	})
}
