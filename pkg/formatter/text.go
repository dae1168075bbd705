package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// ToJSON renders palettes as a 2-space indented JSON array of color arrays.
func ToJSON(palettes palette.List) (string, error) {
	b, err := json.MarshalIndent(palettes.Strings(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode palettes: %w", err)
	}
	return string(b), nil
}

// ToHex renders one line per palette: "Palette <n>: <colors...>".
func ToHex(palettes palette.List) string {
	lines := make([]string, len(palettes))
	for i, p := range palettes {
		lines[i] = fmt.Sprintf("Palette %d: %s", i+1, strings.Join(p.Strings(), " "))
	}
	return strings.Join(lines, "\n")
}
