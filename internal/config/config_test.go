package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

// demoEnv clears the environment and selects the demo data source so Load needs no database.
func demoEnv(t *testing.T) {
	t.Helper()
	os.Clearenv()
	os.Setenv("DATA_SOURCE", "demo")
}

func TestLoad_Defaults(t *testing.T) {
	demoEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.GRPCAddr != ":8080" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":8080")
	}
	if cfg.JWTIssuer != "bookingdesk-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "bookingdesk-auth")
	}
	if cfg.JWTAudience != "bookingdesk-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "bookingdesk-api")
	}
	if cfg.CacheTTL != "30s" {
		t.Errorf("CacheTTL = %q, want 30s", cfg.CacheTTL)
	}
	if cfg.TelemetryKafkaTopic != "bookingdesk-telemetry" {
		t.Errorf("TelemetryKafkaTopic = %q", cfg.TelemetryKafkaTopic)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("log = %q/%q, want info/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.OTelServiceName != "bookingdesk-backend" {
		t.Errorf("OTelServiceName = %q", cfg.OTelServiceName)
	}
	if cfg.OTelInsecure {
		t.Error("OTelInsecure should default to false")
	}
	if !cfg.IsDemo() {
		t.Error("IsDemo should be true")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":9090")
	os.Setenv("DATA_SOURCE", "Supabase")
	os.Setenv("SUPABASE_URL", "https://xyz.supabase.co")
	os.Setenv("SUPABASE_API_KEY", "anon")
	os.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	os.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":9090" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":9090")
	}
	if cfg.DataSource != DataSourceSupabase {
		t.Errorf("DataSource = %q, want supabase", cfg.DataSource)
	}
	if !cfg.OTelInsecure {
		t.Error("OTelInsecure should be true")
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.IsDemo() {
		t.Error("IsDemo should be false")
	}
}

func TestLoad_DataSourceValidation(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"postgres without url", map[string]string{"DATA_SOURCE": "postgres"}, "config: DATABASE_URL must be set when DATA_SOURCE=postgres"},
		{"default is postgres", map[string]string{}, "config: DATABASE_URL must be set when DATA_SOURCE=postgres"},
		{"supabase without key", map[string]string{"DATA_SOURCE": "supabase", "SUPABASE_URL": "https://x.supabase.co"}, "config: SUPABASE_URL and SUPABASE_API_KEY must be set when DATA_SOURCE=supabase"},
		{"demo in production", map[string]string{"DATA_SOURCE": "demo", "APP_ENV": "production"}, "config: DATA_SOURCE=demo must not be used when APP_ENV=production"},
		{"unknown", map[string]string{"DATA_SOURCE": "mysql"}, `config: unknown DATA_SOURCE "mysql"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tc.env {
				os.Setenv(k, v)
			}
			cfg, err := Load()
			if err == nil {
				t.Fatal("Load should return error")
			}
			if cfg != nil {
				t.Error("Load should return nil config on error")
			}
			if err.Error() != tc.want {
				t.Errorf("error = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoad_PostgresWithURL(t *testing.T) {
	os.Clearenv()
	os.Setenv("DATABASE_URL", "postgres://localhost/bookingdesk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource != DataSourcePostgres {
		t.Errorf("DataSource = %q", cfg.DataSource)
	}
}

func TestAccessTTL(t *testing.T) {
	testCases := []struct {
		value string
		want  time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"invalid", 15 * time.Minute},
		{"0", 15 * time.Minute},
		{"-5m", 15 * time.Minute},
	}
	for _, tc := range testCases {
		cfg := &Config{JWTAccessTTL: tc.value}
		if got := cfg.AccessTTL(); got != tc.want {
			t.Errorf("AccessTTL(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRecordCacheTTL(t *testing.T) {
	demoEnv(t)
	os.Setenv("CACHE_TTL", "2m")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.RecordCacheTTL(); got != 2*time.Minute {
		t.Errorf("RecordCacheTTL = %v, want 2m", got)
	}
	for _, bad := range []string{"", "soon", "0", "-1s"} {
		if got := (&Config{CacheTTL: bad}).RecordCacheTTL(); got != 30*time.Second {
			t.Errorf("RecordCacheTTL(%q) = %v, want 30s", bad, got)
		}
	}
}

func TestTelemetryKafkaBrokersList(t *testing.T) {
	testCases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"localhost:9092", []string{"localhost:9092"}},
		{" a:9092, ,b:9092 ", []string{"a:9092", "b:9092"}},
	}
	for _, tc := range testCases {
		got := (&Config{TelemetryKafkaBrokers: tc.in}).TelemetryKafkaBrokersList()
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("TelemetryKafkaBrokersList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	var nilCfg *Config
	if nilCfg.TelemetryKafkaBrokersList() != nil {
		t.Error("nil config should return nil")
	}
}
