// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Data sources selectable with DATA_SOURCE.
const (
	DataSourcePostgres = "postgres"
	DataSourceSupabase = "supabase"
	DataSourceDemo     = "demo"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN. Required for the postgres data source; also backs
	// memberships, access policies and audit logs when set.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// DataSource selects where screen records come from: postgres, supabase or demo.
	DataSource string `mapstructure:"DATA_SOURCE"`
	// SupabaseURL is the project URL (e.g. https://xyz.supabase.co) for the supabase data source.
	SupabaseURL string `mapstructure:"SUPABASE_URL"`
	// SupabaseAPIKey is the anon or service key sent with every PostgREST request.
	SupabaseAPIKey string `mapstructure:"SUPABASE_API_KEY"`
	// RedisURL enables the record cache (e.g. redis://localhost:6379/0). Empty disables caching.
	RedisURL string `mapstructure:"REDIS_URL"`
	// CacheTTL is how long fetched records stay cached (e.g. "30s").
	CacheTTL string `mapstructure:"CACHE_TTL"`

	// JWTPrivateKey is the PEM-encoded private key or path to file. Only cmd/seed uses it, to mint
	// dev tokens.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file used to validate access tokens.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	// JWTIssuer is the expected iss claim.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the expected aud claim.
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// JWTAccessTTL is the lifetime of dev tokens minted by cmd/seed (e.g. "15m").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`

	// AccessPolicyPath is an optional Rego file replacing the built-in screen access policy.
	AccessPolicyPath string `mapstructure:"ACCESS_POLICY_PATH"`

	// OTelEndpoint is the OTLP gRPC collector endpoint (e.g. localhost:4317). Empty disables export.
	OTelEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTelInsecure disables TLS to the collector.
	OTelInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// OTelServiceName is the service.name resource attribute.
	OTelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// Telemetry (optional). When Kafka brokers are set, gRPC server emits telemetry to Kafka.
	// TelemetryKafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	TelemetryKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// TelemetryKafkaTopic is the Kafka topic for telemetry events (default bookingdesk-telemetry).
	TelemetryKafkaTopic string `mapstructure:"TELEMETRY_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the telemetry worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the telemetry worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is json or console.
	LogFormat string `mapstructure:"LOG_FORMAT"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATA_SOURCE", DataSourcePostgres)
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_API_KEY", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("JWT_PRIVATE_KEY", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("JWT_ISSUER", "bookingdesk-auth")
	v.SetDefault("JWT_AUDIENCE", "bookingdesk-api")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("ACCESS_POLICY_PATH", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "bookingdesk-backend")
	v.SetDefault("TELEMETRY_KAFKA_TOPIC", "bookingdesk-telemetry")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "bookingdesk-telemetry-worker")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.DataSource = strings.ToLower(strings.TrimSpace(cfg.DataSource))

	if cfg.GRPCAddr == "" {
		return nil, errors.New("config: GRPC_ADDR must be set")
	}
	switch cfg.DataSource {
	case DataSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("config: DATABASE_URL must be set when DATA_SOURCE=postgres")
		}
	case DataSourceSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseAPIKey == "" {
			return nil, errors.New("config: SUPABASE_URL and SUPABASE_API_KEY must be set when DATA_SOURCE=supabase")
		}
	case DataSourceDemo:
		if cfg.Env == "production" {
			return nil, errors.New("config: DATA_SOURCE=demo must not be used when APP_ENV=production")
		}
	default:
		return nil, fmt.Errorf("config: unknown DATA_SOURCE %q", cfg.DataSource)
	}

	return &cfg, nil
}

// IsDemo reports whether screens are served from the built-in demo dataset.
func (c *Config) IsDemo() bool {
	return c != nil && c.DataSource == DataSourceDemo
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 15m if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// RecordCacheTTL parses CacheTTL as a time.Duration. Returns 30s if unset or invalid.
func (c *Config) RecordCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// TelemetryKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if telemetry is enabled (non-empty list) and to create the producer.
func (c *Config) TelemetryKafkaBrokersList() []string {
	if c == nil || c.TelemetryKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.TelemetryKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
