// Package extractor implements the strategies that turn the remote palette
// site into a palette.List: a structured API call, a decode of the data
// embedded in the trending page, and a scrape of the browser-rendered DOM.
//
// Every strategy honors the same contract: it returns zero or more
// normalized palettes, and any failure (transport, status, parse, browser
// launch) comes back as an error meaning "declined". Callers move on to
// the next strategy; nothing here is fatal to a run.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/hellenic-development/palette-extractor/pkg/coolors"
	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// ErrNoPalettes is returned by a strategy that ran but found nothing usable.
var ErrNoPalettes = errors.New("no palettes found")

// Strategy is one way of obtaining palettes from the remote site.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string
	// Extract returns at least one palette, or an error when the strategy
	// declined. count is the number of palettes requested; strategies may
	// return more or fewer.
	Extract(ctx context.Context, count int) (palette.List, error)
}

// ParseItems decodes a JSON value holding palettes. It accepts a list whose
// entries are hex-string lists, {"colors": ...} objects or hyphen-joined hex
// strings, and an object whose container keys hold such lists. Entries that
// do not normalize into a valid palette are skipped.
func ParseItems(raw json.RawMessage) palette.List {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil
		}
		var out palette.List
		for _, e := range entries {
			if p, ok := parseItem(e); ok {
				out = append(out, p)
			}
		}
		return out

	case '{':
		var data coolors.PageData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil
		}
		return parseContainers(data)
	}

	return nil
}

// parseContainers collects palettes from every known container key, in
// key order.
func parseContainers(data coolors.PageData) palette.List {
	var out palette.List
	for _, key := range coolors.ContainerKeys {
		value, ok := data[key]
		if !ok {
			continue
		}
		var entries []json.RawMessage
		if err := json.Unmarshal(value, &entries); err != nil {
			continue
		}
		for _, e := range entries {
			if p, ok := parseItem(e); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseItem(raw json.RawMessage) (palette.Palette, bool) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return nil, false
	}

	var (
		p   palette.Palette
		err error
	)

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || !strings.Contains(s, "-") {
			return nil, false
		}
		p, err = palette.ParseHexRun(s)

	case '[':
		var colors []string
		if err := json.Unmarshal(raw, &colors); err != nil {
			return nil, false
		}
		p, err = palette.New(colors)

	case '{':
		var item coolors.Item
		if json.Unmarshal(raw, &item) == nil {
			p, err = palette.New(item.Colors)
			break
		}
		// "colors" may itself be a hyphen-joined string.
		var alt struct {
			Colors string `json:"colors"`
		}
		if json.Unmarshal(raw, &alt) != nil || alt.Colors == "" {
			return nil, false
		}
		p, err = palette.ParseHexRun(alt.Colors)

	default:
		return nil, false
	}

	if err != nil || len(p) == 0 {
		return nil, false
	}
	return p, true
}
