package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"go.temporal.io/sdk/client"
)

// EnvPrefix namespaces every environment variable read by the adoption processes.
const EnvPrefix = "ADOPT_"

// Config carries environment-driven settings for the API and worker processes.
// ADOPT_DATABASE_DRIVER maps to the database_driver key, and so on.
type Config struct {
	Port              string `koanf:"port" validate:"required,numeric"`
	Environment       string `koanf:"environment" validate:"required"`
	DatabaseDriver    string `koanf:"database_driver" validate:"oneof=memory sqlite postgres"`
	DatabaseDSN       string `koanf:"database_dsn" validate:"required_unless=DatabaseDriver memory"`
	LogLevel          string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFile           string `koanf:"log_file"`
	TraceExporter     string `koanf:"trace_exporter" validate:"oneof=none stdout otlp"`
	OTLPEndpoint      string `koanf:"otlp_endpoint"`
	TemporalEnabled   bool   `koanf:"temporal_enabled"`
	TemporalAddress   string `koanf:"temporal_address" validate:"required_if=TemporalEnabled true"`
	TemporalNamespace string `koanf:"temporal_namespace" validate:"required_if=TemporalEnabled true"`
}

// DefaultConfig returns the settings used when no variable overrides them.
func DefaultConfig() Config {
	return Config{
		Port:              "8080",
		Environment:       "local",
		DatabaseDriver:    "sqlite",
		DatabaseDSN:       "adopt.db",
		LogLevel:          "info",
		TraceExporter:     "none",
		TemporalAddress:   client.DefaultHostPort,
		TemporalNamespace: client.DefaultNamespace,
	}
}

// LoadConfig reads ADOPT_* environment variables (and a .env file when present),
// applies defaults, and validates the result.
func LoadConfig() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	c.DatabaseDSN = strings.TrimSpace(c.DatabaseDSN)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.TraceExporter = strings.ToLower(strings.TrimSpace(c.TraceExporter))
}
