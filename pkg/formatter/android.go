package formatter

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// maxAndroidColors is how many colors of each palette become resources.
const maxAndroidColors = 5

// colorRoles name the first colors of a palette; later ones become color_N.
var colorRoles = []string{"primary", "secondary", "tertiary", "accent", "highlight"}

// ToAndroidXML renders palettes as an Android values resource file. Each
// palette gets a comment header and one <color> per color (at most five),
// named "<theme>_<role>" with a fully opaque #AARRGGBB value.
func ToAndroidXML(palettes palette.List, opts Options) string {
	var sb strings.Builder
	cat := opts.catalog()

	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	sb.WriteString("<resources>\n")
	sb.WriteString("\n")

	for i, p := range palettes {
		name := cat.ThemeName(opts.Themes, i)
		resName := resourceName(name)

		sb.WriteString(fmt.Sprintf("    <!-- Palette: %s -->\n", commentText(name)))

		for j, c := range p.Truncate(maxAndroidColors) {
			role := fmt.Sprintf("color_%d", j+1)
			if j < len(colorRoles) {
				role = colorRoles[j]
			}
			sb.WriteString(fmt.Sprintf("    <color name=\"%s_%s\">%s</color>\n",
				escapeAttr(resName), role, AndroidColor(string(c))))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("</resources>")
	return sb.String()
}

// AndroidColor converts a color to Android's #AARRGGBB notation. Six-digit
// values get an opaque FF alpha; eight-digit values pass through.
func AndroidColor(c string) string {
	hex := strings.ToUpper(strings.ReplaceAll(c, "#", ""))
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	return "#" + hex
}

// resourceName lower-cases a theme name and replaces spaces with underscores.
func resourceName(theme string) string {
	return strings.ReplaceAll(strings.ToLower(theme), " ", "_")
}

func escapeAttr(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// commentText keeps a theme name from terminating the XML comment early.
func commentText(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.TrimSuffix(s, "-")
}
