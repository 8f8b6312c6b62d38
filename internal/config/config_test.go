package config

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/storebridge/internal/errors"
)

func code(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want info/text", cfg.Log)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing should be disabled by default")
	}
	if !cfg.Bridge.InitialNotify {
		t.Error("Bridge.InitialNotify should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if code(err) != "C001" {
		t.Fatalf("expected C001 for missing config, got %v", err)
	}

	configYAML := `log:
  level: debug
  format: json
metrics:
  namespace: demo
bridge:
  initial_notify: false
`
	path := filepath.Join(tmpDir, "storebridge.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Metrics.Namespace != "demo" {
		t.Errorf("Metrics.Namespace = %q, want demo", cfg.Metrics.Namespace)
	}
	// Unset keys keep their defaults.
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should keep its default")
	}
	if cfg.Bridge.InitialNotify {
		t.Error("Bridge.InitialNotify should be false")
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(`{"tracing": {"enabled": true, "tracer_name": "demo"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.TracerName != "demo" {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); code(err) != "C001" {
		t.Errorf("expected C001, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"log": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); code(err) != "C002" {
		t.Errorf("expected C002, got %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("log:\n  level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(invalid)
	if code(err) != "C003" {
		t.Fatalf("expected C003, got %v", err)
	}
	if !strings.Contains(err.(*errors.Error).Detail, "loud") {
		t.Errorf("detail should name the bad value: %q", err.(*errors.Error).Detail)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("STOREBRIDGE_LOG_LEVEL", "warn")
	t.Setenv("STOREBRIDGE_METRICS_ENABLED", "false")

	cfg, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be overridden to false")
	}
}

func TestResolve_FallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("expected defaults, got config from %q", cfg.Path())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"upper-case level", func(c *Config) { c.Log.Level = "DEBUG" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"empty namespace", func(c *Config) { c.Metrics.Namespace = "" }, false},
		{"empty namespace, metrics off", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Namespace = ""
		}, true},
		{"empty tracer name", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.TracerName = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && code(err) != "C003" {
				t.Errorf("expected C003, got %v", err)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("expected JSON record, got %q", out)
	}
}

func TestBridgeOptions(t *testing.T) {
	cfg := New()
	reg := prometheus.NewRegistry()

	opts := cfg.BridgeOptions(LogConfig{Level: "info"}.Logger(&bytes.Buffer{}), reg)
	// logger, metrics, tracer
	if len(opts) != 3 {
		t.Errorf("expected 3 options, got %d", len(opts))
	}

	cfg.Metrics.Enabled = false
	cfg.Bridge.InitialNotify = false
	opts = cfg.BridgeOptions(LogConfig{Level: "info"}.Logger(&bytes.Buffer{}), reg)
	// logger, tracer, without-initial-notify
	if len(opts) != 3 {
		t.Errorf("expected 3 options, got %d", len(opts))
	}
}

func TestEntries(t *testing.T) {
	entries := New().Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			t.Errorf("entries not sorted: %q before %q", entries[i-1].Key, entries[i].Key)
		}
	}
}
