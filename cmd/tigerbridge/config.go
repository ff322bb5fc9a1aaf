// =============================================================================
// config.go - CLI Configuration File
// =============================================================================
//
// Loads ~/.tigerbridge.yaml. Every key is optional; command-line flags win
// over the file, and the file wins over the built-in defaults.
//
//   address: 192.168.1.50
//   port: 7071
//   dial_timeout: 5s
//   read_timeout: 0s
//   write_timeout: 2s
//   history_file: ~/.tigerbridge_history
//   history_size: 500
//
// =============================================================================

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/TigerStop/TigerBridge/tspro"
)

const (
	// configFileName is the name of the config file in the home directory.
	configFileName = ".tigerbridge.yaml"

	// defaultDialTimeout bounds each connection attempt from the CLI. The
	// library itself waits as long as the OS does.
	defaultDialTimeout = 5 * time.Second
)

// GO CONCEPT: Struct Tags
// -----------------------
// The backquoted text after a field is a struct tag. yaml.v3 reads the
// yaml key to map "dial_timeout" in the file onto DialTimeout. Keys the
// file leaves out keep whatever the struct already held, which is how
// LoadConfig layers the file over DefaultConfig.
//
// time.Duration fields accept strings such as "5s" or "250ms"; yaml.v3
// parses them with time.ParseDuration.

// Config holds the CLI settings.
type Config struct {
	// Address is the controller's IP address or host name, with or without
	// a port. Empty means ask on startup.
	Address string `yaml:"address"`

	Port         int           `yaml:"port"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	HistoryFile string `yaml:"history_file"`
	HistorySize int    `yaml:"history_size"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		Port:        tspro.Port,
		DialTimeout: defaultDialTimeout,
		HistoryFile: filepath.Join(homeDir(), historyFileName),
		HistorySize: historySize,
	}
}

// defaultConfigPath returns ~/.tigerbridge.yaml, or "" when there is no
// home directory.
func defaultConfigPath() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, configFileName)
}

// LoadConfig reads the YAML file at path on top of DefaultConfig. A missing
// file is not an error unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	// GO CONCEPT: Wrapping Errors with Context
	// -----------------------------------------
	// errors.Wrap and errors.Wrapf from github.com/pkg/errors add a message
	// in front of an error and keep the original as its cause, so the
	// final text reads "config /path: port 0 out of range". errors.Is and
	// errors.As still see through the wrapping.
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate rejects values the client cannot use.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port %d out of range", c.Port)
	}
	// GO CONCEPT: Ranging over a Map Literal
	// --------------------------------------
	// A composite literal can be used in place, here as the thing to
	// range over. Map iteration order is random, which is fine because
	// any negative value fails validation.
	for name, d := range map[string]time.Duration{
		"dial_timeout":  c.DialTimeout,
		"read_timeout":  c.ReadTimeout,
		"write_timeout": c.WriteTimeout,
	} {
		if d < 0 {
			return errors.Errorf("%s must not be negative", name)
		}
	}
	if c.HistorySize < 0 {
		return errors.New("history_size must not be negative")
	}
	return nil
}

// GO CONCEPT: Functional Options
// ------------------------------
// tspro.NewClient takes a variadic list of Option values, each a function
// that edits the client's settings. The CLI builds the list from its
// config and spreads it into the call:
//
//   client := tspro.NewClient(cfg.clientOptions(logger)...)

// clientOptions turns the settings into tspro client options.
func (c Config) clientOptions(logger *slog.Logger) []tspro.Option {
	return []tspro.Option{
		tspro.WithPort(c.Port),
		tspro.WithDialTimeout(c.DialTimeout),
		tspro.WithReadTimeout(c.ReadTimeout),
		tspro.WithWriteTimeout(c.WriteTimeout),
		tspro.WithLogger(logger),
	}
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// homeDir returns the current user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
