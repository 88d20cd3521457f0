package config_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MOBILEMESSAGING_API__BASE_URL", "https://mobile.example.com")
	t.Setenv("MOBILEMESSAGING_API__API_KEY", "app-code")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://mobile.example.com", cfg.API.BaseURL)
	assert.Equal(t, "GCM", cfg.API.PlatformType)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "std", cfg.Serialization.Engine)
	assert.Equal(t, "sha1", cfg.Reports.KeyDigest)
	assert.Equal(t, "memory", cfg.Reports.Store)
	assert.Equal(t, 100, cfg.Reports.BatchSize)
	assert.Equal(t, 15*time.Second, cfg.Reports.FlushInterval)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MOBILEMESSAGING_SERIALIZATION__ENGINE", "parser")
	t.Setenv("MOBILEMESSAGING_SERIALIZATION__PRESERVE_NULLS", "true")
	t.Setenv("MOBILEMESSAGING_REPORTS__KEY_DIGEST", "sha256")
	t.Setenv("MOBILEMESSAGING_REPORTS__BATCH_SIZE", "25")
	t.Setenv("MOBILEMESSAGING_API__TIMEOUT", "2s")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "parser", cfg.Serialization.Engine)
	assert.True(t, cfg.Serialization.PreserveNulls)
	assert.Equal(t, "sha256", cfg.Reports.KeyDigest)
	assert.Equal(t, 25, cfg.Reports.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing api key", map[string]string{"MOBILEMESSAGING_API__API_KEY": ""}},
		{"unknown engine", map[string]string{"MOBILEMESSAGING_SERIALIZATION__ENGINE": "fast"}},
		{"unknown digest", map[string]string{"MOBILEMESSAGING_REPORTS__KEY_DIGEST": "md5"}},
		{"postgres without database", map[string]string{"MOBILEMESSAGING_REPORTS__STORE": "postgres"}},
		{"redis without address", map[string]string{"MOBILEMESSAGING_REPORTS__STORE": "redis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_RedisStore(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MOBILEMESSAGING_REPORTS__STORE", "redis")
	t.Setenv("MOBILEMESSAGING_REDIS__ADDR", "localhost:6379")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mmsdk", cfg.Redis.KeyPrefix)
}

func TestAPIConfig_Properties(t *testing.T) {
	props := config.APIConfig{PlatformType: "APNS", SDKVersion: "2.1.0", UserAgent: "ua"}.Properties()

	assert.Equal(t, "APNS", props["platform.type"])
	assert.Equal(t, "2.1.0", props["sdk.version"])
	assert.Equal(t, "ua", props["user.agent"])
}

func TestDatabaseConfig_PgxConfig(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host: "db.local", Port: 5433, User: "u", Password: "p@ss", Name: "reports", SSLMode: "disable",
		MaxOpenConns: 8, MaxIdleConns: 1, ConnMaxLifetime: time.Hour, ConnMaxIdleTime: time.Minute,
	}

	pgxCfg, err := cfg.PgxConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "db.local", pgxCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pgxCfg.ConnConfig.Port)
	assert.Equal(t, "p@ss", pgxCfg.ConnConfig.Password)
	assert.Equal(t, "reports", pgxCfg.ConnConfig.Database)
	assert.Equal(t, int32(8), pgxCfg.MaxConns)
}

func TestLoggerConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := config.LoggerConfig{Level: "warn", Format: "json"}.NewLoggerTo(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"key":"value"`)
}
