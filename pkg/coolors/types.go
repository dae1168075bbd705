package coolors

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ContainerKeys are the top-level keys of a decoded data blob that may hold
// palette lists, inspected in this order.
var ContainerKeys = []string{"palettes", "items", "data", "results"}

// PalettePathPattern matches palette links such as
// "/palette/264653-2a9d8f-e9c46a" and captures the hex run.
var PalettePathPattern = regexp.MustCompile(`/palette/([a-fA-F0-9]{6}(?:-[a-fA-F0-9]{6})+)`)

// LoosePalettePathPattern captures whatever follows "/palette/" in a link,
// for elements whose hex run is validated separately.
var LoosePalettePathPattern = regexp.MustCompile(`/palette/([a-fA-F0-9-]+)`)

var encodedPageDataPattern = regexp.MustCompile(`var\s+page_data_encoded\s*=\s*["']([^"']+)["']`)

// ErrNoPageData is returned when the page carries no encoded data blob.
var ErrNoPageData = errors.New("no encoded page data found")

// PageData is the decoded page_data_encoded object, keyed by container name.
type PageData map[string]json.RawMessage

// Item is a single palette-shaped entry inside an API response or a page
// data container: either {"colors": [...]}, a list of hex strings, or a
// hyphen-joined hex string.
type Item struct {
	Colors []string `json:"colors"`
}

// DecodePageData finds the base64 page_data_encoded assignment in html and
// decodes it as a JSON object.
func DecodePageData(html string) (PageData, error) {
	m := encodedPageDataPattern.FindStringSubmatch(html)
	if m == nil {
		return nil, ErrNoPageData
	}

	raw, err := decodeBase64(strings.TrimSpace(m[1]))
	if err != nil {
		return nil, fmt.Errorf("failed to decode page data: %w", err)
	}

	var data PageData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse page data: %w", err)
	}

	return data, nil
}

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
