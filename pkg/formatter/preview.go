package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

var previewLabel = lipgloss.NewStyle().Faint(true).Width(12)

// Preview renders each palette as a row of colored swatches labelled with
// their hex codes, for display in a terminal. It is not an output format.
func Preview(palettes palette.List) string {
	rows := make([]string, 0, len(palettes))

	for i, p := range palettes {
		cells := make([]string, 0, len(p)+1)
		cells = append(cells, previewLabel.Render(fmt.Sprintf("Palette %d", i+1)))
		for _, c := range p {
			cells = append(cells, swatch(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, cells...))
	}

	return strings.Join(rows, "\n")
}

func swatch(c palette.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(string(c))).
		Foreground(lipgloss.Color(contrastText(c))).
		Padding(0, 1).
		Render(string(c))
}

// contrastText picks black or white text for legibility on c.
func contrastText(c palette.Color) string {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return "#FFFFFF"
	}
	if l, _, _ := col.Lab(); l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
