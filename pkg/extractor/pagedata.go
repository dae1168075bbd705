package extractor

import (
	"context"
	"fmt"

	"github.com/hellenic-development/palette-extractor/pkg/coolors"
	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// PageDataStrategy fetches the trending page HTML and mines it for palettes
// without rendering it.
type PageDataStrategy struct {
	Client *coolors.Client
}

// NewPageDataStrategy returns a PageDataStrategy backed by client.
func NewPageDataStrategy(client *coolors.Client) *PageDataStrategy {
	return &PageDataStrategy{Client: client}
}

// Name implements Strategy.
func (s *PageDataStrategy) Name() string { return "page-data" }

// Extract implements Strategy.
func (s *PageDataStrategy) Extract(ctx context.Context, _ int) (palette.List, error) {
	html, err := s.Client.GetTrendingPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPalettes, err)
	}

	palettes := ParsePageData(html)
	if len(palettes) == 0 {
		return nil, ErrNoPalettes
	}
	return palettes, nil
}

// ParsePageData extracts palettes from raw page HTML. Palettes found in the
// base64 page_data_encoded blob come first, followed by every distinct
// "/palette/<hex>-<hex>..." link in the document. A blob that is missing or
// fails to decode contributes nothing; the link scan still runs.
func ParsePageData(html string) palette.List {
	var decoded palette.List
	if data, err := coolors.DecodePageData(html); err == nil {
		decoded = parseContainers(data)
	}

	// Blob entries are kept as-is; only link runs are checked for repeats.
	seen := palette.NewSet(decoded...)
	out := decoded

	for _, m := range coolors.PalettePathPattern.FindAllStringSubmatch(html, -1) {
		p, err := palette.ParseHexRun(m[1])
		if err != nil {
			continue
		}
		if seen.Add(p) {
			out = append(out, p)
		}
	}

	return out
}
