package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/quill/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.2.0"

[server]
host = "127.0.0.1"
port = 8080
read_timeout = "20s"
write_timeout = "40s"

[api]
base_path = "/api"
max_body_size = "2MB"

[api.cors]
enabled = true
origins = ["http://localhost:5173"]

[logging]
level = "debug"
format = "json"

[cache]
max_cost = "32MB"
ttl = "5m"

[compiler]
batch_limit = 20
concurrency = 4
`

const overlayConfig = `
[server]
port = 9090

[bus]
url = "nats://nats:4222"
prefix = "prod.compile"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.Version != "0.2.0" {
		t.Errorf("version: got %s, want 0.2.0", cfg.Version)
	}
	if cfg.API.MaxBodySize.Bytes() != 2*1024*1024 {
		t.Errorf("max_body_size: got %d", cfg.API.MaxBodySize)
	}
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("cors: got %+v", cfg.API.CORS)
	}
	if cfg.Logging.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level: got %v", cfg.Logging.SlogLevel())
	}
	if cfg.Cache.MaxCost.Bytes() != 32*1024*1024 {
		t.Errorf("cache max_cost: got %d", cfg.Cache.MaxCost)
	}
	if cfg.Cache.TTLDuration() != 5*time.Minute {
		t.Errorf("cache ttl: got %v", cfg.Cache.TTLDuration())
	}
	if cfg.Compiler.BatchLimit != 20 || cfg.Compiler.Concurrency != 4 {
		t.Errorf("compiler: got %+v", cfg.Compiler)
	}
	if cfg.Bus.Enabled() {
		t.Error("bus should be disabled without a url")
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv(config.EnvQuillEnv, "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("overlay port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("base host should survive overlay: got %s", cfg.Server.Host)
	}
	if !cfg.Bus.Enabled() {
		t.Error("bus should be enabled by overlay")
	}
	if got := cfg.Bus.Subject("apply"); got != "prod.compile.apply" {
		t.Errorf("subject: got %s", got)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv(config.EnvServerPort, "7070")
	t.Setenv(config.EnvAPIMaxBodySize, "512KB")
	t.Setenv(config.EnvLoggingFormat, "TEXT")
	t.Setenv(config.EnvCacheEnabled, "false")
	t.Setenv(config.EnvCompilerConcurrency, "2")
	t.Setenv("QUILL_CORS_ORIGINS", "http://a.com, http://b.com")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port: got %d, want 7070", cfg.Server.Port)
	}
	if cfg.API.MaxBodySize.Bytes() != 512*1024 {
		t.Errorf("max_body_size: got %d", cfg.API.MaxBodySize)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("format: got %s, want text", cfg.Logging.Format)
	}
	if cfg.Cache.IsEnabled() {
		t.Error("cache should be disabled by env")
	}
	if cfg.Compiler.Concurrency != 2 {
		t.Errorf("concurrency: got %d, want 2", cfg.Compiler.Concurrency)
	}
	if len(cfg.API.CORS.Origins) != 2 {
		t.Errorf("cors origins: got %v", cfg.API.CORS.Origins)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("default base_path: got %s", cfg.API.BasePath)
	}
	if cfg.API.MaxBodySize.Bytes() != 1<<20 {
		t.Errorf("default max_body_size: got %d", cfg.API.MaxBodySize)
	}
	if cfg.API.OpenAPI.Title != "Quill API" {
		t.Errorf("default openapi title: got %s", cfg.API.OpenAPI.Title)
	}
	if !cfg.Cache.IsEnabled() {
		t.Error("cache should default to enabled")
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry should default to disabled")
	}
	if cfg.Bus.Prefix != "quill.compile" || cfg.Bus.QueueGroup != "quill" {
		t.Errorf("bus defaults: got %+v", cfg.Bus)
	}
	if cfg.Compiler.BatchLimit != 50 || cfg.Compiler.Concurrency != 8 {
		t.Errorf("compiler defaults: got %+v", cfg.Compiler)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %v", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, "this is not = = toml")
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvDefault(t *testing.T) {
	t.Setenv(config.EnvQuillEnv, "")
	cfg := &config.Config{}
	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}

func TestEnvFromEnvVar(t *testing.T) {
	t.Setenv(config.EnvQuillEnv, "staging")
	cfg := &config.Config{}
	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad port", "[server]\nport = 70000\n", "invalid port"},
		{"bad shutdown", "shutdown_timeout = \"soon\"\n", "invalid shutdown_timeout"},
		{"bad server timeout", "[server]\nwrite_timeout = \"x\"\n", "invalid write_timeout"},
		{"nested base path", "[api]\nbase_path = \"/api/v1\"\n", "invalid base_path"},
		{"bad log level", "[logging]\nlevel = \"loud\"\n", "invalid level"},
		{"bad log format", "[logging]\nformat = \"xml\"\n", "invalid format"},
		{"bad cache ttl", "[cache]\nttl = \"forever\"\n", "invalid ttl"},
		{"bad bus prefix", "[bus]\nprefix = \"quill.*\"\n", "invalid prefix"},
		{"bad concurrency", "[compiler]\nconcurrency = -1\n", "invalid concurrency"},
		{"bad body size", "[api]\nmax_body_size = \"huge\"\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.content)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error: got %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMaxBodySizeEnvInvalid(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(config.EnvAPIMaxBodySize, "lots")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid max body size")
	}
}

func TestTelemetryOptions(t *testing.T) {
	cfg := config.TelemetryConfig{Enabled: true}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	opts := cfg.Options("1.2.3")
	if !opts.Enabled || opts.Endpoint != "localhost:4317" || opts.ServiceName != "quill" {
		t.Errorf("options: got %+v", opts)
	}
	if opts.Version != "1.2.3" || opts.Interval != 30*time.Second {
		t.Errorf("options: got %+v", opts)
	}
}

func TestBusOptions(t *testing.T) {
	cfg := config.BusConfig{URL: "nats://localhost:4222", Prefix: ".custom."}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Prefix != "custom" {
		t.Errorf("prefix should be trimmed: got %s", cfg.Prefix)
	}

	opts := cfg.Options()
	if opts.URL != "nats://localhost:4222" || opts.QueueGroup != "quill" || opts.Timeout != 10*time.Second {
		t.Errorf("options: got %+v", opts)
	}
}

func TestCacheMergeEnabled(t *testing.T) {
	off := false
	base := config.CacheConfig{}
	base.Merge(&config.CacheConfig{Enabled: &off})

	if base.IsEnabled() {
		t.Error("overlay should disable cache")
	}

	base.Merge(&config.CacheConfig{TTL: "1m"})
	if base.IsEnabled() {
		t.Error("unset overlay flag should not re-enable cache")
	}
}
