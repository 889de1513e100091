package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/minifw/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "minifw.json"

	// DefaultAddr is the default server listen address.
	DefaultAddr = "localhost:3000"

	// DefaultName is the default app name.
	DefaultName = "minifw"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "minifw"
)

// configFileNames are tried in order by Load.
var configFileNames = []string{ConfigFileName, "minifw.yaml", "minifw.yml"}

// Router modes.
const (
	RouterHash    = "hash"
	RouterHistory = "history"
)

// Config represents the complete minifw configuration.
type Config struct {
	// Name is the app name, shown in the page title.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Addr is the address the server listens on.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// RouterMode selects the navigation adapter: "hash" or "history".
	RouterMode string `json:"routerMode,omitempty" yaml:"routerMode,omitempty"`

	// DataFile is the bbolt file state snapshots are kept in.
	// Empty disables persistence.
	DataFile string `json:"dataFile,omitempty" yaml:"dataFile,omitempty"`

	// Log configures the logger.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Metrics configures the Prometheus collectors.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Enabled exposes /metrics and instruments the framework.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory. It looks for
// minifw.json, then minifw.yaml, then minifw.yml.
func Load(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E400").
		WithDetail("No minifw.json or minifw.yaml found in " + dir)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E400").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E400").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to path, as YAML or JSON by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E400").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E400").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// DataPath resolves DataFile against the config directory.
func (c *Config) DataPath() string {
	if c.DataFile == "" || filepath.IsAbs(c.DataFile) || c.Dir() == "" {
		return c.DataFile
	}
	return filepath.Join(c.Dir(), c.DataFile)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RouterMode == "" {
		c.RouterMode = RouterHash
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.RouterMode {
	case RouterHash, RouterHistory:
	default:
		return errors.New("E401").
			WithDetailf("routerMode %q", c.RouterMode).
			WithSuggestion(`Use "hash" or "history"`)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E401").
			WithDetailf("log.level %q", c.Log.Level).
			WithSuggestion("Use debug, info, warn or error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E401").
			WithDetailf("log.format %q", c.Log.Format).
			WithSuggestion(`Use "text" or "json"`)
	}
	if c.Addr == "" {
		return errors.New("E401").WithDetail("addr is empty")
	}
	return nil
}

// Logger builds the slog logger described by the Log section.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range configFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
