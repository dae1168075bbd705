// Package paletteextractor fetches the currently trending color palettes
// from coolors.co and renders them as Android color resources, JSON, or
// plain hex lines.
//
// The CLI lives in cmd/palette-extractor; this root package exposes the same
// pipeline as a Go API so that callers can embed it in their own tools.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named paletteextractor:
//
//	import "github.com/hellenic-development/palette-extractor" // package paletteextractor
//
// # Quick start
//
//	result, err := paletteextractor.Run(ctx, paletteextractor.Options{
//	    Count:  5,
//	    Format: formatter.FormatAndroid,
//	    Themes: []string{"Ocean Breeze", "Sunset"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("colors.xml", []byte(result.Output), 0644)
//
// # Strategies
//
// Palettes are extracted by up to three strategies, tried in order until one
// yields a result: the site's JSON endpoints, the base64 page data embedded
// in the trending page, and a headless Chrome render of that page.
// [Options.Method] narrows the order: "api" skips the page data and
// "selenium" goes straight to the browser. When everything declines, the
// fallback catalog is emitted, so a run always produces output.
// [Result.Source] tells which of these produced the palettes.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
package paletteextractor
