// Package config loads casepdf settings from defaults, an optional YAML
// file, CASEPDF_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the XDG config directory and the env prefix.
	AppName = "casepdf"

	// EnvPrefix is prepended to environment variable names, e.g.
	// CASEPDF_SEARCH_TIMEOUT.
	EnvPrefix = "CASEPDF"

	// DefaultTimeout bounds loading and printing a decision. LawPhil pages
	// for long decisions are large single HTML files.
	DefaultTimeout = 30 * time.Second

	// DefaultSearchTimeout bounds the wait for result links.
	DefaultSearchTimeout = 10 * time.Second

	DefaultEngine = "google"
	DefaultSite   = "lawphil.net"
	DefaultPaper  = "letter"
	DefaultMargin = 0.4
)

// Sentinel errors for configuration loading.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("config file is invalid")
	ErrInvalid        = errors.New("invalid configuration")
)

// Config holds every setting the command understands. Keys are the same
// in the YAML file, in viper and, upper-cased, in the environment.
type Config struct {
	Engine        string        `mapstructure:"engine" yaml:"engine"`
	Site          string        `mapstructure:"site" yaml:"site"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	SearchTimeout time.Duration `mapstructure:"search_timeout" yaml:"search_timeout"`
	Headless      bool          `mapstructure:"headless" yaml:"headless"`
	ChromePath    string        `mapstructure:"chrome_path" yaml:"chrome_path"`
	AutoDownload  bool          `mapstructure:"auto_download" yaml:"auto_download"`
	NoSandbox     bool          `mapstructure:"no_sandbox" yaml:"no_sandbox"`
	CheckRobots   bool          `mapstructure:"check_robots" yaml:"check_robots"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	OutputDir     string        `mapstructure:"output_dir" yaml:"output_dir"`
	Paper         string        `mapstructure:"paper" yaml:"paper"`
	Margin        float64       `mapstructure:"margin" yaml:"margin"`
	Footer        bool          `mapstructure:"footer" yaml:"footer"`
	Verbose       bool          `mapstructure:"verbose" yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine:        DefaultEngine,
		Site:          DefaultSite,
		Timeout:       DefaultTimeout,
		SearchTimeout: DefaultSearchTimeout,
		Headless:      true,
		Paper:         DefaultPaper,
		Margin:        DefaultMargin,
	}
}

// Dir returns the per-user config directory, e.g. ~/.config/casepdf.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultPath returns the config file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load fills v with defaults and environment bindings, reads the config
// file, and decodes the merged result. An explicit path must exist; the
// default path is optional. It returns the file actually read, or "".
func Load(v *viper.Viper, path string) (Config, string, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	used := ""
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
		used = path
	} else if explicit {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("engine", d.Engine)
	v.SetDefault("site", d.Site)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("search_timeout", d.SearchTimeout)
	v.SetDefault("headless", d.Headless)
	v.SetDefault("chrome_path", d.ChromePath)
	v.SetDefault("auto_download", d.AutoDownload)
	v.SetDefault("no_sandbox", d.NoSandbox)
	v.SetDefault("check_robots", d.CheckRobots)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("paper", d.Paper)
	v.SetDefault("margin", d.Margin)
	v.SetDefault("footer", d.Footer)
	v.SetDefault("verbose", d.Verbose)
}

// Validate rejects values the session cannot use.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalid)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("%w: search_timeout must be positive", ErrInvalid)
	}
	if c.Margin <= 0 || c.Margin > 2 {
		return fmt.Errorf("%w: margin must be greater than 0 and at most 2 inches", ErrInvalid)
	}
	if strings.TrimSpace(c.Engine) == "" {
		return fmt.Errorf("%w: engine must be set", ErrInvalid)
	}
	return nil
}

// YAML renders c as a config file body.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	body, err := Default().YAML()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	header := "# casepdf configuration\n" +
		"#\n" +
		"# Precedence (highest first): flags, CASEPDF_* environment variables,\n" +
		"# this file, built-in defaults.\n\n"
	return os.WriteFile(path, append([]byte(header), body...), 0o644)
}
