package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/storebridge/internal/errors"
	"github.com/vango-dev/storebridge/pkg/bridge"
)

const (
	// ConfigName is the configuration file name without extension.
	ConfigName = "storebridge"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "STOREBRIDGE"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "storebridge"
)

// Config is the complete CLI configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Bridge  BridgeConfig  `mapstructure:"bridge"`

	// path is where the config was loaded from; empty for defaults.
	path string
}

// LogConfig controls the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is text or json.
	Format string `mapstructure:"format"`
}

// MetricsConfig controls binding metrics.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// TracingConfig controls bind spans.
type TracingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	TracerName string `mapstructure:"tracer_name"`
}

// BridgeConfig holds binding defaults.
type BridgeConfig struct {
	// InitialNotify requires Subscribe to deliver the current value.
	InitialNotify bool `mapstructure:"initial_notify"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			Enabled:    false,
			TracerName: DefaultNamespace,
		},
		Bridge: BridgeConfig{
			InitialNotify: true,
		},
	}
}

// newViper returns a viper instance with defaults and environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	defaults := New()

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.namespace", defaults.Metrics.Namespace)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.tracer_name", defaults.Tracing.TracerName)
	v.SetDefault("bridge.initial_notify", defaults.Bridge.InitialNotify)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper, path string) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to decode configuration: " + err.Error())
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the default configuration with environment overrides.
func Defaults() (*Config, error) {
	return decode(newViper(), "")
}

// Load loads storebridge.{json,yaml,yml} from dir.
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(ConfigName)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil, errors.New("C001").
				WithDetail("No storebridge.json or storebridge.yaml found in " + dir)
		}
		return nil, parseError(err)
	}
	return decode(v, v.ConfigFileUsed())
}

// LoadFile loads configuration from path. The format follows the extension.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("C001").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("C002").Wrap(err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, parseError(err)
	}
	return decode(v, path)
}

// Resolve loads path when it is set. Otherwise it loads the working
// directory's config file, falling back to defaults when there is none.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	dir, err := os.Getwd()
	if err != nil {
		return Defaults()
	}
	cfg, err := Load(dir)
	var e *errors.Error
	if stderrors.As(err, &e) && e.Code == "C001" {
		return Defaults()
	}
	return cfg, err
}

func parseError(err error) error {
	return errors.New("C002").
		WithDetail("Failed to parse configuration: " + err.Error())
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory containing the configuration file.
func (c *Config) Dir() string {
	if c.path == "" {
		return ""
	}
	return filepath.Dir(c.path)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := c.Log.level(); err != nil {
		return errors.New("C003").
			WithDetail(fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("C003").
			WithDetail(fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New("C003").
			WithDetail("metrics.namespace must not be empty when metrics are enabled")
	}
	if c.Tracing.Enabled && c.Tracing.TracerName == "" {
		return errors.New("C003").
			WithDetail("tracing.tracer_name must not be empty when tracing is enabled")
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// Logger builds a slog logger writing to w.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(l.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// BridgeOptions maps the configuration to binding options. Metrics, when
// enabled, are registered with reg.
func (c *Config) BridgeOptions(logger *slog.Logger, reg prometheus.Registerer) []bridge.Option {
	opts := []bridge.Option{bridge.WithLogger(logger)}

	if c.Metrics.Enabled && reg != nil {
		opts = append(opts, bridge.WithMetrics(bridge.NewMetrics(
			bridge.WithNamespace(c.Metrics.Namespace),
			bridge.WithRegistry(reg),
		)))
	}

	if c.Tracing.Enabled {
		opts = append(opts, bridge.WithTracer(otel.Tracer(c.Tracing.TracerName)))
	} else {
		opts = append(opts, bridge.WithTracer(noop.NewTracerProvider().Tracer("")))
	}

	if !c.Bridge.InitialNotify {
		opts = append(opts, bridge.WithoutInitialNotify())
	}
	return opts
}

// Entry is one effective configuration value.
type Entry struct {
	Key   string
	Value string
}

// Entries lists the effective configuration in key order.
func (c *Config) Entries() []Entry {
	return []Entry{
		{"bridge.initial_notify", fmt.Sprint(c.Bridge.InitialNotify)},
		{"log.format", c.Log.Format},
		{"log.level", c.Log.Level},
		{"metrics.enabled", fmt.Sprint(c.Metrics.Enabled)},
		{"metrics.namespace", c.Metrics.Namespace},
		{"tracing.enabled", fmt.Sprint(c.Tracing.Enabled)},
		{"tracing.tracer_name", c.Tracing.TracerName},
	}
}
