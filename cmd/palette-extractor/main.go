package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	paletteextractor "github.com/hellenic-development/palette-extractor"
	"github.com/hellenic-development/palette-extractor/pkg/browser"
	"github.com/hellenic-development/palette-extractor/pkg/catalog"
	"github.com/hellenic-development/palette-extractor/pkg/config"
	"github.com/hellenic-development/palette-extractor/pkg/coolors"
	"github.com/hellenic-development/palette-extractor/pkg/formatter"
	"github.com/hellenic-development/palette-extractor/pkg/metrics"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = coolors.Version

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(color.Error, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "palette-extractor",
		Short:         "Fetch trending color palettes from coolors.co",
		Long:          "A tool to fetch the currently trending palettes from coolors.co and export them as Android color resources, JSON, or hex lines",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().Int("count", 10, "Number of palettes to fetch")
	rootCmd.Flags().String("format", "hex", "Output format: android, json, hex")
	rootCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().String("method", "auto", "Extraction method: selenium, api, auto")
	rootCmd.Flags().String("themes", "", "Comma-separated theme names for the android format (e.g. \"Ocean Breeze,Sunset\")")
	rootCmd.Flags().String("catalog", "", "YAML file replacing the built-in fallback palettes")
	rootCmd.Flags().String("browser-path", "", "Chrome/Chromium executable (default: auto-detect)")
	rootCmd.Flags().String("config", "", "Config file (default: $XDG_CONFIG_HOME/palette-extractor/config.yaml)")
	rootCmd.Flags().Bool("preview", false, "Render color swatches to stderr")
	rootCmd.Flags().String("metrics-file", "", "Write Prometheus metrics of the run to this file")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "palette-extractor version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	method, err := paletteextractor.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return err
	}

	// Progress goes to stderr so stdout carries only the palettes.
	status := io.Writer(color.Error)
	var logger paletteextractor.Logger = &cliLogger{}
	if cfg.Quiet {
		status, logger = io.Discard, nil
	}

	cyan.Fprintln(status, "\n🎨 Coolors Palette Extractor")
	cyan.Fprintln(status, "============================")
	cyan.Fprintln(status)
	if cfg.File != "" {
		fmt.Fprintf(status, "  • Config: %s\n", cfg.File)
	}

	var rec *metrics.Recorder
	if cfg.Metrics.File != "" {
		rec = metrics.New()
	}

	result, err := paletteextractor.Run(cmd.Context(), paletteextractor.Options{
		Count:  cfg.Count,
		Method: method,
		Format: format,
		Themes: cfg.Themes,
		Client: cfg.ClientSettings(),
		Browser: browser.Options{
			ExecPath:   cfg.Browser.Path,
			UserAgent:  cfg.HTTP.UserAgent,
			Settle:     cfg.Browser.Settle,
			ScrollWait: cfg.Browser.ScrollWait,
		},
		MaxScrolls: cfg.Browser.MaxScrolls,
		Catalog:    cat,
		Metrics:    rec,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	cyan.Fprintln(status, "\n📊 Extraction Summary:")
	fmt.Fprintf(status, "  • Palettes: %d\n", len(result.Palettes))
	fmt.Fprintf(status, "  • Source: %s\n", result.Source)

	if cfg.Preview {
		fmt.Fprintln(color.Error)
		fmt.Fprintln(color.Error, formatter.Preview(result.Palettes))
	}

	if cfg.Output == "" {
		cyan.Fprintln(status, "\n"+"PALETTES")
		cyan.Fprintln(status)
	}
	if err := paletteextractor.WriteOutput(cfg.Output, cmd.OutOrStdout(), result.Output); err != nil {
		return err
	}
	if cfg.Output != "" {
		green.Fprintf(status, "\n✨ Output written to %s\n\n", cfg.Output)
	}

	if rec != nil {
		if err := rec.WriteTextfile(cfg.Metrics.File); err != nil && logger != nil {
			logger.Warnf("Could not write metrics: %v", err)
		}
	}

	return nil
}

// cliLogger implements paletteextractor.Logger with colored output on stderr.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(color.Error, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(color.Error, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(color.Error, "✗ "+format+"\n", args...)
}
