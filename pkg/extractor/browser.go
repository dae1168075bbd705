package extractor

import (
	"context"
	"fmt"

	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// DefaultMaxScrolls bounds the number of scroll-and-wait cycles.
const DefaultMaxScrolls = 5

// Renderer loads a page in a real browser, scrolls it the given number of
// times to trigger lazy loading, and returns the rendered document. The
// browser session must be torn down before Render returns.
type Renderer interface {
	Render(ctx context.Context, pageURL string, scrolls int) (string, error)
}

// BrowserStrategy scrapes the browser-rendered trending page.
type BrowserStrategy struct {
	Renderer   Renderer
	PageURL    string
	MaxScrolls int

	// OnElementError, when set, receives each per-element extraction
	// failure. Failing elements are skipped either way.
	OnElementError func(error)
	// OnMatch, when set, is told which selector located palette elements.
	OnMatch func(selector string, matched int, linkScan bool)
}

// Name implements Strategy.
func (s *BrowserStrategy) Name() string { return "browser" }

// ScrollCycles returns how many scroll cycles are needed for count
// palettes: count/10 + 1, capped at limit.
func ScrollCycles(count, limit int) int {
	if limit <= 0 {
		limit = DefaultMaxScrolls
	}
	return min(count/10+1, limit)
}

// Extract implements Strategy.
func (s *BrowserStrategy) Extract(ctx context.Context, count int) (palette.List, error) {
	html, err := s.Renderer.Render(ctx, s.PageURL, ScrollCycles(count, s.MaxScrolls))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPalettes, err)
	}

	res, err := ExtractFromDOM(html, s.PageURL, count)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPalettes, err)
	}

	if s.OnMatch != nil {
		s.OnMatch(res.Selector, res.Matched, res.LinkScan)
	}
	if s.OnElementError != nil {
		for _, e := range res.Errors {
			s.OnElementError(e)
		}
	}

	if len(res.Palettes) == 0 {
		return nil, ErrNoPalettes
	}
	return res.Palettes.Truncate(count), nil
}
