package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/hellenic-development/palette-extractor/pkg/coolors"
)

// isolate points every config lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvPrefix+"_CONFIG", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() on defaults error = %v", err)
	}

	if c.Count != 10 || c.Format != "hex" || c.Method != "auto" {
		t.Errorf("Load() = count %d format %q method %q, want 10 hex auto", c.Count, c.Format, c.Method)
	}
	if c.Source.BaseURL != coolors.DefaultBaseURL {
		t.Errorf("Source.BaseURL = %q, want %q", c.Source.BaseURL, coolors.DefaultBaseURL)
	}
	if len(c.Source.APIPaths) != 2 {
		t.Errorf("Source.APIPaths = %v, want 2 endpoints", c.Source.APIPaths)
	}
	if c.HTTP.APITimeout != 10*time.Second || c.HTTP.PageTimeout != 15*time.Second {
		t.Errorf("timeouts = %v/%v, want 10s/15s", c.HTTP.APITimeout, c.HTTP.PageTimeout)
	}
	if c.Browser.MaxScrolls != 5 || c.Browser.Settle != 3*time.Second {
		t.Errorf("browser = %+v, want 5 scrolls and 3s settle", c.Browser)
	}
	if c.File != "" {
		t.Errorf("File = %q, want none", c.File)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)

	file := filepath.Join(dir, "palettes.yaml")
	yaml := `count: 4
format: json
themes: [Ocean Breeze, Sunset]
http:
  api_timeout: 3s
`
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PALETTES_FORMAT", "android")
	t.Setenv("PALETTES_BROWSER_MAX_SCROLLS", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("count", 10, "")
	flags.String("method", "auto", "")
	if err := flags.Parse([]string{"--count", "7"}); err != nil {
		t.Fatal(err)
	}

	c, err := Load(file, flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "flag beats file", got: c.Count, want: 7},
		{name: "env beats file", got: c.Format, want: "android"},
		{name: "unset flag keeps default", got: c.Method, want: "auto"},
		{name: "env nested key", got: c.Browser.MaxScrolls, want: 2},
		{name: "file duration", got: c.HTTP.APITimeout, want: 3 * time.Second},
		{name: "file list", got: strings.Join(c.Themes, "|"), want: "Ocean Breeze|Sunset"},
		{name: "file used", got: c.File, want: file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PALETTES_COUNT=3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets the variable for the process; restore it afterwards.
	t.Setenv("PALETTES_COUNT", "")
	os.Unsetenv("PALETTES_COUNT")

	c, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Count != 3 {
		t.Errorf("Count = %d, want 3 from .env", c.Count)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "nope.yaml"), nil); err == nil {
		t.Error("Load() with a missing explicit file should fail")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{" Ocean Breeze , Sunset", "", "Forest"})
	if strings.Join(got, "|") != "Ocean Breeze|Sunset|Forest" {
		t.Errorf("splitList() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Count:  10,
			Format: "hex",
			Method: "auto",
			Source: SourceConfig{BaseURL: "https://coolors.co", APIPaths: []string{"/api"}},
			HTTP:   HTTPConfig{APITimeout: time.Second, PageTimeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero count", mutate: func(c *Config) { c.Count = 0 }, wantErr: "count must be positive"},
		{name: "bad format", mutate: func(c *Config) { c.Format = "csv" }, wantErr: `format "csv"`},
		{name: "bad method", mutate: func(c *Config) { c.Method = "scrape" }, wantErr: `method "scrape"`},
		{name: "relative base url", mutate: func(c *Config) { c.Source.BaseURL = "/x" }, wantErr: "source.base_url"},
		{name: "no api paths", mutate: func(c *Config) { c.Source.APIPaths = nil }, wantErr: "source.api_paths"},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTP.PageTimeout = 0 }, wantErr: "http.page_timeout"},
		{name: "negative scrolls", mutate: func(c *Config) { c.Browser.MaxScrolls = -1 }, wantErr: "browser.max_scrolls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAggregates(t *testing.T) {
	c := &Config{Format: "x", Method: "y"}
	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() on empty config should fail")
	}
	if n := strings.Count(err.Error(), "\n  - "); n < 4 {
		t.Errorf("Validate() reported %d problems, want several:\n%v", n, err)
	}
}
