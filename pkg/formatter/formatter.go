// Package formatter renders a palette.List as text: Android color resources,
// JSON, a plain hex listing, or a terminal swatch preview.
package formatter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/palette-extractor/pkg/catalog"
	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// Format names an output format.
type Format string

const (
	FormatAndroid Format = "android"
	FormatJSON    Format = "json"
	FormatHex     Format = "hex"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatAndroid, FormatJSON, FormatHex}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q (must be android, json, or hex)", s)
}

// Options controls rendering.
type Options struct {
	Count   int              // max palettes to render; <= 0 renders all
	Themes  []string         // theme names, used positionally by the Android format
	Catalog *catalog.Catalog // supplies default theme names; nil = embedded catalog
}

func (o Options) catalog() *catalog.Catalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return catalog.Default()
}

// Render dispatches to the formatter for f.
func Render(f Format, palettes palette.List, opts Options) (string, error) {
	if opts.Count > 0 {
		palettes = palettes.Truncate(opts.Count)
	}

	switch f {
	case FormatAndroid:
		return ToAndroidXML(palettes, opts), nil
	case FormatJSON:
		return ToJSON(palettes)
	case FormatHex:
		return ToHex(palettes), nil
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}
}
