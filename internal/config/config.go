// Package config assembles StudyGenie settings from, in increasing
// priority: built-in defaults, a YAML file, a .env file, STUDYGENIE_*
// environment variables and command-line flags (applied by cmd).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/notice"
	"github.com/abhisek/studygenie/internal/store"
	"github.com/abhisek/studygenie/internal/transport"
)

// Config holds all application configuration.
type Config struct {
	Backend transport.Config `yaml:"-"`

	PollInterval   time.Duration `yaml:"poll_interval"`
	NoticeDuration time.Duration `yaml:"notice_duration"`
	DemoRefresh    time.Duration `yaml:"demo_refresh"`

	// DBPath is the event log location. Empty means the default data
	// directory; ":memory:" keeps the log in memory.
	DBPath string `yaml:"db_path"`

	// Demo answers every request from built-in fixtures.
	Demo bool `yaml:"demo"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives log output. The TUI always logs to a file so the
	// screen stays clean; empty selects the default log path there.
	File string `yaml:"file"`
}

// fileConfig is the YAML shape. Backend settings live under "backend".
type fileConfig struct {
	Backend struct {
		BaseURL       string        `yaml:"base_url"`
		AuthToken     string        `yaml:"auth_token"`
		Timeout       time.Duration `yaml:"timeout"`
		RateLimit     *float64      `yaml:"rate_limit"`
		RetryAttempts int           `yaml:"retry_attempts"`
	} `yaml:"backend"`
	Config `yaml:",inline"`
}

// Options tells Load where to look.
type Options struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// EnvFile is a dotenv file; missing is fine. Defaults to ".env".
	EnvFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:        transport.DefaultConfig(),
		PollInterval:   controller.DefaultPollInterval,
		NoticeDuration: notice.DefaultDuration,
		DemoRefresh:    controller.DefaultDemoRefresh,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from every source except flags.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path := opts.Path
	required := path != ""
	if !required {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/studygenie/config.yaml, or "" when
// no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "studygenie", "config.yaml")
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fc := fileConfig{Config: *c}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	backend := c.Backend
	*c = fc.Config
	c.Backend = backend
	if fc.Backend.BaseURL != "" {
		c.Backend.BaseURL = fc.Backend.BaseURL
	}
	if fc.Backend.AuthToken != "" {
		c.Backend.AuthToken = fc.Backend.AuthToken
	}
	if fc.Backend.Timeout != 0 {
		c.Backend.Timeout = fc.Backend.Timeout
	}
	if fc.Backend.RateLimit != nil {
		c.Backend.RateLimit = *fc.Backend.RateLimit
	}
	if fc.Backend.RetryAttempts != 0 {
		c.Backend.Retry.MaxAttempts = fc.Backend.RetryAttempts
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Backend.ApplyEnv()
	c.PollInterval = getEnvDuration("STUDYGENIE_POLL_INTERVAL", c.PollInterval)
	c.NoticeDuration = getEnvDuration("STUDYGENIE_NOTICE_DURATION", c.NoticeDuration)
	c.DemoRefresh = getEnvDuration("STUDYGENIE_DEMO_REFRESH", c.DemoRefresh)
	c.DBPath = getEnv("STUDYGENIE_DB", c.DBPath)
	c.Demo = getEnvBool("STUDYGENIE_DEMO", c.Demo)
	c.Log.Level = getEnv("STUDYGENIE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("STUDYGENIE_LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnv("STUDYGENIE_LOG_FILE", c.Log.File)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !c.Demo {
		if err := c.Backend.Validate(); err != nil {
			return err
		}
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.NoticeDuration <= 0 {
		return fmt.Errorf("notice duration must be positive, got %s", c.NoticeDuration)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// DSN resolves DBPath to a SQLite data source name.
func (c *Config) DSN() (string, error) {
	switch c.DBPath {
	case "":
		return store.DefaultDBPath()
	case ":memory:":
		return store.MemoryDSN, nil
	default:
		return c.DBPath, os.MkdirAll(filepath.Dir(c.DBPath), 0o755)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
		return d
	}
	// Bare numbers are seconds.
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
