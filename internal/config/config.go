package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "MOBILEMESSAGING_"

type Config struct {
	API           APIConfig           `koanf:"api"`
	Serialization SerializationConfig `koanf:"serialization"`
	Reports       ReportsConfig       `koanf:"reports"`
	Server        ServerConfig        `koanf:"server"`
	Logger        LoggerConfig        `koanf:"logger"`
	// Database and Redis are validated only when the report store needs them.
	Database DatabaseConfig `koanf:"database" validate:"-"`
	Redis    RedisConfig    `koanf:"redis" validate:"-"`
}

type APIConfig struct {
	BaseURL      string        `koanf:"base_url" validate:"required,url"`
	APIKey       string        `koanf:"api_key" validate:"required"`
	PlatformType string        `koanf:"platform_type" validate:"required,oneof=GCM APNS HMS"`
	UserAgent    string        `koanf:"user_agent" validate:"required"`
	SDKVersion   string        `koanf:"sdk_version" validate:"required"`
	Timeout      time.Duration `koanf:"timeout" validate:"required"`
}

// Properties returns the values available to ${name} placeholders in
// operation templates.
func (c APIConfig) Properties() map[string]string {
	return map[string]string{
		"platform.type": c.PlatformType,
		"sdk.version":   c.SDKVersion,
		"user.agent":    c.UserAgent,
	}
}

type SerializationConfig struct {
	Engine        string `koanf:"engine" validate:"oneof=std parser"`
	PreserveNulls bool   `koanf:"preserve_nulls"`
}

type ReportsConfig struct {
	PushRegistrationID string        `koanf:"push_registration_id"`
	KeyDigest          string        `koanf:"key_digest" validate:"oneof=sha1 sha256"`
	Store              string        `koanf:"store" validate:"oneof=memory postgres redis"`
	FlushInterval      time.Duration `koanf:"flush_interval" validate:"required"`
	BatchSize          int           `koanf:"batch_size" validate:"required,min=1,max=1000"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type RedisConfig struct {
	Addr      string `koanf:"addr" validate:"required"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db" validate:"min=0"`
	KeyPrefix string `koanf:"key_prefix" validate:"required"`
}

var defaults = map[string]any{
	"api.platform_type":           "GCM",
	"api.user_agent":              "MobileMessaging-Go",
	"api.sdk_version":             "1.0.0",
	"api.timeout":                 "30s",
	"serialization.engine":        "std",
	"reports.key_digest":          "sha1",
	"reports.store":               "memory",
	"reports.flush_interval":      "15s",
	"reports.batch_size":          100,
	"server.port":                 "8080",
	"server.read_timeout":         "10s",
	"server.write_timeout":        "10s",
	"server.idle_timeout":         "60s",
	"server.request_timeout":      "5s",
	"logger.level":                "info",
	"logger.format":               "json",
	"database.port":               5432,
	"database.ssl_mode":           "disable",
	"database.max_open_conns":     10,
	"database.max_idle_conns":     2,
	"database.conn_max_lifetime":  "1h",
	"database.conn_max_idle_time": "30m",
	"redis.key_prefix":            "mmsdk",
}

// LoadConfig reads MOBILEMESSAGING_* environment variables (and a .env file
// when present) over the defaults. A double underscore separates nesting
// levels, e.g. MOBILEMESSAGING_API__BASE_URL.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks the configuration, including the backing store section
// selected by Reports.Store.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Reports.Store {
	case "postgres":
		if err := validate.Struct(c.Database); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case "redis":
		if err := validate.Struct(c.Redis); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}
