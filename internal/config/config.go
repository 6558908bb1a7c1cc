// Package config resolves CLI settings from defaults, a config file and
// the environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the configuration directory name.
	AppName = "todo"

	// DefaultDBPath is the store file used when nothing else is configured.
	DefaultDBPath = "db.json"
)

// Environment variables read by Load.
const (
	EnvConfig    = "TODO_CONFIG"
	EnvDB        = "TODO_DB"
	EnvLogLevel  = "TODO_LOG_LEVEL"
	EnvLogFormat = "TODO_LOG_FORMAT"
	EnvNoColor   = "NO_COLOR"
)

// candidateNames are tried in order inside the default config directory.
var candidateNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config holds resolved settings.
type Config struct {
	DBPath    string `toml:"db_path" yaml:"db_path"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	NoColor   bool   `toml:"no_color" yaml:"no_color"`

	// File is the config file that was read, empty if none.
	File string `toml:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBPath:    DefaultDBPath,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load resolves settings in priority order:
//  1. Defaults
//  2. Config file: path if non-empty, else $TODO_CONFIG, else the first
//     existing config.{toml,yaml,yml} in DefaultDir
//  3. Environment variables
//
// An explicitly named config file must exist; a discovered one is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile(DefaultDir())
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.File = path
	}

	loadFromEnv(cfg)
	return cfg, nil
}

// DefaultDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

func findConfigFile(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range candidateNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// loadFile decodes path into cfg, choosing the decoder by extension.
// Keys the Config does not know are rejected.
func loadFile(cfg *Config, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and leaves the defaults.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if os.Getenv(EnvNoColor) != "" {
		cfg.NoColor = true
	}
}
