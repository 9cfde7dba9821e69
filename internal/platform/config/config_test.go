package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"STORAGE_BACKEND": "memory"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 10*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "0 3 * * *", cfg.CacheWarmSchedule)
}

func TestFromViper_PostgresNeedsURL(t *testing.T) {
	_, err := fromViper(newViper(nil))
	assert.Error(t, err)

	cfg, err := fromViper(newViper(map[string]any{"PGSQL_URL": "postgres://localhost/mei"}))
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
}

func TestFromViper_ProductionRequiresSecret(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"STORAGE_BACKEND": "memory", "IS_PRODUCTION": true}))
	assert.Error(t, err)

	cfg, err := fromViper(newViper(map[string]any{"STORAGE_BACKEND": "memory", "IS_PRODUCTION": true, "JWT_SECRET": "s3cret"}))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestFromViper_ParsesLists(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"STORAGE_BACKEND":      "MEMORY",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
		"REPORT_CACHE_TTL":     "30s",
		"JWT_EXPIRY_DURATION":  "nonsense",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)

	_, err = fromViper(newViper(map[string]any{"STORAGE_BACKEND": "memory", "REPORT_CACHE_TTL": "soon"}))
	assert.Error(t, err)
}
