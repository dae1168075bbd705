// Package config loads palette-extractor settings from defaults, an optional
// YAML config file, a .env file, PALETTES_* environment variables and CLI
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hellenic-development/palette-extractor/pkg/coolors"
)

// EnvPrefix prefixes every environment override, e.g. PALETTES_HTTP_USER_AGENT.
const EnvPrefix = "PALETTES"

// Config holds every runtime setting.
type Config struct {
	Count   int      `mapstructure:"count"`
	Format  string   `mapstructure:"format"`
	Method  string   `mapstructure:"method"`
	Output  string   `mapstructure:"output"`
	Themes  []string `mapstructure:"themes"`
	Preview bool     `mapstructure:"preview"`
	Quiet   bool     `mapstructure:"quiet"`

	Source  SourceConfig  `mapstructure:"source"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Browser BrowserConfig `mapstructure:"browser"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Metrics MetricsConfig `mapstructure:"metrics"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// SourceConfig locates the palette site.
type SourceConfig struct {
	BaseURL  string   `mapstructure:"base_url"`
	PagePath string   `mapstructure:"page_path"`
	APIPaths []string `mapstructure:"api_paths"`
}

// HTTPConfig holds request settings.
type HTTPConfig struct {
	UserAgent   string        `mapstructure:"user_agent"`
	APITimeout  time.Duration `mapstructure:"api_timeout"`
	PageTimeout time.Duration `mapstructure:"page_timeout"`
}

// BrowserConfig holds headless browser settings.
type BrowserConfig struct {
	Path       string        `mapstructure:"path"`
	Settle     time.Duration `mapstructure:"settle"`
	ScrollWait time.Duration `mapstructure:"scroll_wait"`
	MaxScrolls int           `mapstructure:"max_scrolls"`
}

// CatalogConfig points at a replacement fallback catalog.
type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// MetricsConfig controls the run metrics export.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"count":        "count",
	"format":       "format",
	"method":       "method",
	"output":       "output",
	"themes":       "themes",
	"preview":      "preview",
	"quiet":        "quiet",
	"catalog":      "catalog.file",
	"metrics-file": "metrics.file",
	"browser-path": "browser.path",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("count", 10)
	v.SetDefault("format", "hex")
	v.SetDefault("method", "auto")
	v.SetDefault("output", "")
	v.SetDefault("themes", []string{})
	v.SetDefault("preview", false)
	v.SetDefault("quiet", false)

	v.SetDefault("source.base_url", coolors.DefaultBaseURL)
	v.SetDefault("source.page_path", coolors.DefaultPagePath)
	v.SetDefault("source.api_paths", coolors.DefaultAPIPaths)

	v.SetDefault("http.user_agent", coolors.DefaultUserAgent)
	v.SetDefault("http.api_timeout", 10*time.Second)
	v.SetDefault("http.page_timeout", 15*time.Second)

	v.SetDefault("browser.path", "")
	v.SetDefault("browser.settle", 3*time.Second)
	v.SetDefault("browser.scroll_wait", time.Second)
	v.SetDefault("browser.max_scrolls", 5)

	v.SetDefault("catalog.file", "")
	v.SetDefault("metrics.file", "")
}

// Load builds the configuration. configFile may be empty, in which case
// $PALETTES_CONFIG or $XDG_CONFIG_HOME/palette-extractor/config.yaml is
// used when present. flags may be nil; changed flags override everything else.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "palette-extractor"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly named file must exist; the default location is optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = v.ConfigFileUsed()
	c.Themes = splitList(c.Themes)

	return &c, nil
}

// splitList trims entries and expands comma-separated ones, so themes can
// come from a YAML list, a flag, or a single env string alike.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Count <= 0 {
		errs = append(errs, "count must be positive")
	}

	switch strings.ToLower(c.Format) {
	case "android", "json", "hex":
	default:
		errs = append(errs, fmt.Sprintf("format %q must be android, json, or hex", c.Format))
	}

	switch strings.ToLower(c.Method) {
	case "selenium", "api", "auto":
	default:
		errs = append(errs, fmt.Sprintf("method %q must be selenium, api, or auto", c.Method))
	}

	if u, err := url.Parse(c.Source.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("source.base_url %q is not an absolute URL", c.Source.BaseURL))
	}
	if len(c.Source.APIPaths) == 0 {
		errs = append(errs, "source.api_paths needs at least one endpoint")
	}

	if c.HTTP.APITimeout <= 0 {
		errs = append(errs, "http.api_timeout must be positive")
	}
	if c.HTTP.PageTimeout <= 0 {
		errs = append(errs, "http.page_timeout must be positive")
	}
	if c.Browser.MaxScrolls < 0 {
		errs = append(errs, "browser.max_scrolls must not be negative")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// ClientSettings converts the source and HTTP sections for coolors.NewClient.
func (c *Config) ClientSettings() coolors.Settings {
	return coolors.Settings{
		BaseURL:     c.Source.BaseURL,
		PagePath:    c.Source.PagePath,
		APIPaths:    c.Source.APIPaths,
		UserAgent:   c.HTTP.UserAgent,
		APITimeout:  c.HTTP.APITimeout,
		PageTimeout: c.HTTP.PageTimeout,
	}
}
