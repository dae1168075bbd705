package paletteextractor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hellenic-development/palette-extractor/pkg/browser"
	"github.com/hellenic-development/palette-extractor/pkg/catalog"
	"github.com/hellenic-development/palette-extractor/pkg/coolors"
	"github.com/hellenic-development/palette-extractor/pkg/extractor"
	"github.com/hellenic-development/palette-extractor/pkg/formatter"
	"github.com/hellenic-development/palette-extractor/pkg/metrics"
	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// DefaultCount is the number of palettes emitted when Options.Count is unset.
const DefaultCount = 10

// Method selects which extraction strategies run.
type Method string

const (
	// MethodAuto tries the API, then the embedded page data, then the browser.
	MethodAuto Method = "auto"
	// MethodAPI tries the API, then the browser.
	MethodAPI Method = "api"
	// MethodSelenium goes straight to the browser.
	MethodSelenium Method = "selenium"
)

// ParseMethod validates a --method value.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodAuto, MethodAPI, MethodSelenium:
		return m, nil
	}
	return "", fmt.Errorf("invalid method %q (must be selenium, api, or auto)", s)
}

// Source names where a run's palettes came from.
type Source string

const (
	SourceAPI      Source = "api"
	SourcePageData Source = "page-data"
	SourceBrowser  Source = "browser"
	SourceFallback Source = "fallback"
)

// Options configures a run.
type Options struct {
	Count  int              // palettes to emit, 0 = DefaultCount
	Method Method           // empty = MethodAuto
	Format formatter.Format // empty = hex
	Themes []string         // Android theme names, positional

	Client coolors.Settings // site location and HTTP settings
	// Browser configures headless Chrome. A non-empty ExecPath must exist,
	// otherwise Run fails before any network activity.
	Browser    browser.Options
	MaxScrolls int

	Catalog *catalog.Catalog  // nil = embedded catalog
	Metrics *metrics.Recorder // nil = not recorded
	Logger  Logger            // nil = no logging

	// Strategy overrides; nil entries are built from the settings above.
	APIStrategy      extractor.Strategy
	PageDataStrategy extractor.Strategy
	BrowserStrategy  extractor.Strategy
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the run output.
type Result struct {
	Palettes palette.List
	Source   Source
	Output   string // formatted output
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// Preflight checks required dependencies before any network activity.
// Only an explicitly configured browser is required; an absent
// auto-detected one just makes the browser strategy decline.
func Preflight(opts Options) error {
	if opts.Browser.ExecPath == "" || opts.BrowserStrategy != nil {
		return nil
	}
	if _, err := browser.FindExecutable(opts.Browser.ExecPath); err != nil {
		return fmt.Errorf("%w\n%s", err, browser.InstallHint)
	}
	return nil
}

// Run fetches the trending palettes and formats them. Extraction failures
// never fail the run: when every strategy declines, the fallback catalog is
// used. Errors are returned only for invalid options, missing required
// dependencies, cancellation of ctx and formatting failures.
func Run(ctx context.Context, opts Options) (*Result, error) {
	// Apply defaults.
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Method == "" {
		opts.Method = MethodAuto
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatHex
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}

	if _, err := ParseMethod(string(opts.Method)); err != nil {
		return nil, err
	}
	if _, err := formatter.ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if err := Preflight(opts); err != nil {
		return nil, err
	}

	client := coolors.NewClient(opts.Client)
	if opts.APIStrategy == nil {
		opts.APIStrategy = extractor.NewAPIStrategy(client)
	}
	if opts.PageDataStrategy == nil {
		opts.PageDataStrategy = extractor.NewPageDataStrategy(client)
	}
	if opts.BrowserStrategy == nil {
		opts.BrowserStrategy = newBrowserStrategy(&opts, client)
	}

	var (
		palettes palette.List
		source   Source
	)

	if opts.Method == MethodAPI || opts.Method == MethodAuto {
		opts.logInfo("Trying API method...")
		if palettes = attempt(ctx, &opts, opts.APIStrategy); len(palettes) > 0 {
			source = SourceAPI
		}
	} else {
		opts.Metrics.Skip(opts.APIStrategy.Name())
	}

	if len(palettes) == 0 && opts.Method == MethodAuto {
		opts.logInfo("Trying to parse page data...")
		if palettes = attempt(ctx, &opts, opts.PageDataStrategy); len(palettes) > 0 {
			source = SourcePageData
		}
	} else {
		opts.Metrics.Skip(opts.PageDataStrategy.Name())
	}

	if len(palettes) == 0 || opts.Method == MethodSelenium {
		opts.logInfo("Using headless browser for full page rendering...")
		if found := attempt(ctx, &opts, opts.BrowserStrategy); len(found) > 0 {
			palettes, source = found, SourceBrowser
		}
	} else {
		opts.Metrics.Skip(opts.BrowserStrategy.Name())
	}

	// An interrupted run must not overwrite the output with the fallback.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("interrupted: %w", err)
	}

	if len(palettes) == 0 {
		opts.logWarn("No palettes found, using %d popular palettes as fallback", len(opts.Catalog.Palettes))
		palettes, source = opts.Catalog.Palettes, SourceFallback
	}

	palettes = palettes.Truncate(opts.Count)
	opts.Metrics.Extracted(string(source), len(palettes))

	out, err := formatter.Render(opts.Format, palettes, formatter.Options{
		Count:   opts.Count,
		Themes:  opts.Themes,
		Catalog: opts.Catalog,
	})
	if err != nil {
		return nil, fmt.Errorf("format palettes: %w", err)
	}

	return &Result{
		Palettes: palettes,
		Source:   source,
		Output:   out,
	}, nil
}

// attempt runs one strategy, converting a declined attempt into an empty
// result.
func attempt(ctx context.Context, opts *Options, s extractor.Strategy) palette.List {
	start := time.Now()
	palettes, err := s.Extract(ctx, opts.Count)
	took := time.Since(start)

	if err != nil || len(palettes) == 0 {
		opts.Metrics.Attempt(s.Name(), metrics.OutcomeDeclined, took)
		switch {
		case err == nil:
			opts.logWarn("%s: no palettes found", s.Name())
		case ctx.Err() != nil:
			opts.logError("%s: %v", s.Name(), ctx.Err())
		default:
			opts.logWarn("%s: %v", s.Name(), err)
		}
		return nil
	}

	opts.Metrics.Attempt(s.Name(), metrics.OutcomeSuccess, took)
	opts.logInfo("Extracted %d palettes via %s", len(palettes), s.Name())
	return palettes
}

func newBrowserStrategy(opts *Options, client *coolors.Client) *extractor.BrowserStrategy {
	bopts := opts.Browser
	if bopts.UserAgent == "" {
		bopts.UserAgent = client.UserAgent()
	}
	// Preflight already rejected a configured path that does not exist; an
	// unresolved one is left to chromedp and fails as a launch error.
	if path, err := browser.FindExecutable(bopts.ExecPath); err == nil {
		bopts.ExecPath = path
	}

	return &extractor.BrowserStrategy{
		Renderer:   browser.New(bopts),
		PageURL:    client.PageURL(),
		MaxScrolls: opts.MaxScrolls,
		OnElementError: func(err error) {
			opts.logWarn("Error extracting palette: %v", err)
		},
		OnMatch: func(selector string, matched int, linkScan bool) {
			if linkScan {
				opts.logInfo("Trying alternative extraction method...")
				return
			}
			opts.logInfo("Found %d elements with selector: %s", matched, selector)
		},
	}
}

// WriteOutput writes content to the file at path, or, when path is empty,
// to stdout followed by a newline.
func WriteOutput(path string, stdout io.Writer, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
