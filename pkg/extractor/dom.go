package extractor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hellenic-development/palette-extractor/pkg/coolors"
	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// DOMSelectors are the structural patterns tried, in order, to locate
// palette elements in the rendered page. The first pattern with any match wins.
var DOMSelectors = []string{
	"div[class*='palette']",
	"a[href*='/palette/']",
	"[data-palette]",
	".explore-palette",
	".palette-card",
}

const swatchSelector = "[style*='background']"

// DOMResult holds the outcome of scraping a rendered document.
type DOMResult struct {
	Palettes palette.List
	Selector string  // selector that matched, empty when none did
	Matched  int     // number of elements the selector matched
	LinkScan bool    // true when palettes came from the hyperlink fallback
	Errors   []error // non-fatal per-element failures
}

// ExtractFromDOM scrapes palettes out of rendered HTML. pageURL resolves
// relative links and identifies the site for the hyperlink fallback. At most
// count elements are inspected; an element yields a palette only when at
// least palette.MinColors colors were recovered from it.
func ExtractFromDOM(html, pageURL string, count int) (*DOMResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	result := &DOMResult{}

	var elements *goquery.Selection
	for _, selector := range DOMSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			elements = found
			result.Selector = selector
			result.Matched = found.Length()
			break
		}
	}

	if elements != nil {
		elements.EachWithBreak(func(i int, el *goquery.Selection) bool {
			if i >= count {
				return false
			}
			p, err := elementPalette(el)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("element %d: %w", i+1, err))
				return true
			}
			if p != nil {
				result.Palettes = append(result.Palettes, p)
			}
			return true
		})
	}

	if len(result.Palettes) == 0 {
		result.LinkScan = true
		result.Palettes = scanPaletteLinks(doc, base, count)
	}

	return result, nil
}

// elementPalette recovers a palette from a single element, trying its link,
// then its data-palette attribute, then its inline-styled swatches. It
// returns (nil, nil) when the element simply holds no palette.
func elementPalette(el *goquery.Selection) (palette.Palette, error) {
	var errs []error

	if href, ok := el.Attr("href"); ok && strings.Contains(href, "/palette/") {
		if m := coolors.LoosePalettePathPattern.FindStringSubmatch(href); m != nil {
			p, err := palette.ParseHexRun(m[1])
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("href %q: %w", href, err))
			case len(p) >= palette.MinColors:
				return p, nil
			}
		}
	}

	if data, ok := el.Attr("data-palette"); ok && data != "" {
		p, err := palette.ParseHexRun(data)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("data-palette %q: %w", data, err))
		case len(p) >= palette.MinColors:
			return p, nil
		}
	}

	var swatches palette.Palette
	el.Find(swatchSelector).Each(func(_ int, sw *goquery.Selection) {
		style, _ := sw.Attr("style")
		if c, err := palette.ParseCSSColor(style); err == nil {
			swatches = append(swatches, c)
		}
	})
	if len(swatches) >= palette.MinColors {
		return swatches, nil
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, nil
}

// scanPaletteLinks is the fallback used when no element yielded a palette:
// every hyperlink pointing at a palette page on the site contributes its
// hex run, without repeats, up to count palettes.
func scanPaletteLinks(doc *goquery.Document, base *url.URL, count int) palette.List {
	host := base.Hostname()
	set := palette.NewSet()

	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if !sameSite(abs.Hostname(), host) || !strings.Contains(abs.Path, "/palette/") {
			return true
		}

		m := coolors.PalettePathPattern.FindStringSubmatch(abs.Path)
		if m == nil {
			return true
		}
		p, err := palette.ParseHexRun(m[1])
		if err != nil {
			return true
		}
		set.Add(p)
		return set.Len() < count
	})

	return set.List()
}

// sameSite reports whether h is host or one of its subdomains.
func sameSite(h, host string) bool {
	return h == host || strings.HasSuffix(h, "."+host)
}
