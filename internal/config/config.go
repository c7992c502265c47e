// Package config loads acsite configuration from defaults, an optional YAML
// file and ACSITE_ environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/anotherclibrary/acsite/pkg/logging"
)

// EnvPrefix prefixes every environment override, e.g. ACSITE_SERVER_ADDR.
const EnvPrefix = "ACSITE"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete acsite configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Site   SiteConfig   `mapstructure:"site"`
	Log    LogConfig    `mapstructure:"log"`
	Build  BuildConfig  `mapstructure:"build"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// AllowedOrigins are host patterns accepted for live connections.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// MaxLiveConnections caps concurrent live connections; 0 is unlimited.
	MaxLiveConnections int `mapstructure:"max_live_connections"`
}

// SiteConfig configures page metadata and links.
type SiteConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`
	BaseURL     string `mapstructure:"base_url"`
	PathPrefix  string `mapstructure:"path_prefix"`
	Language    string `mapstructure:"language"`
	Copyright   string `mapstructure:"copyright"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// BuildConfig configures the static export.
type BuildConfig struct {
	OutDir string `mapstructure:"out_dir"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.max_live_connections", 1000)

	v.SetDefault("site.title", "Another C Library")
	v.SetDefault("site.description", "ac_ library for building scalable, complex applications.")
	v.SetDefault("site.author", "")
	v.SetDefault("site.base_url", "")
	v.SetDefault("site.path_prefix", "")
	v.SetDefault("site.language", "en")
	v.SetDefault("site.copyright", "© Another C Library")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("build.out_dir", "public")
}

// New returns a viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration. An empty file uses defaults and the environment
// only.
func Load(file string) (*Config, error) {
	v := New()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes, sanitizes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Site.sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the server cannot use.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.MaxLiveConnections < 0 {
		errs = append(errs, errors.New("server.max_live_connections is negative"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, fmt.Errorf("site.base_url %q is not an absolute URL", c.Site.BaseURL))
		}
	}
	if c.Site.PathPrefix != "" && !strings.HasPrefix(c.Site.PathPrefix, "/") {
		errs = append(errs, fmt.Errorf("site.path_prefix %q must start with /", c.Site.PathPrefix))
	}
	if c.Build.OutDir == "" {
		errs = append(errs, errors.New("build.out_dir is empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
