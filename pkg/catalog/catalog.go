// Package catalog holds the static data the pipeline falls back on: a fixed
// set of well-known palettes and the default Android theme names. The data
// lives in an embedded YAML file and can be replaced by pointing Load at a
// file with the same shape.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

//go:embed catalog.yaml
var embedded []byte

// Catalog is the fallback palette table plus the default theme names.
type Catalog struct {
	Themes   []string
	Palettes palette.List
}

type catalogFile struct {
	Themes   []string   `yaml:"themes"`
	Palettes [][]string `yaml:"palettes"`
}

// Default returns the embedded catalog. The embedded file is validated by
// tests, so a parse failure here is a build defect.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path. An empty path returns the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML and normalizes every palette color.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if len(f.Palettes) == 0 {
		return nil, errors.New("catalog has no palettes")
	}
	if len(f.Themes) == 0 {
		return nil, errors.New("catalog has no theme names")
	}

	c := &Catalog{
		Themes:   f.Themes,
		Palettes: make(palette.List, 0, len(f.Palettes)),
	}
	for i, raw := range f.Palettes {
		p, err := palette.New(raw)
		if err != nil {
			return nil, fmt.Errorf("palette %d: %w", i+1, err)
		}
		c.Palettes = append(c.Palettes, p)
	}

	return c, nil
}

// ThemeName returns the theme name for the palette at index i. Supplied names
// are used positionally; past their end the default names repeat cyclically.
func (c *Catalog) ThemeName(supplied []string, i int) string {
	if i < len(supplied) && supplied[i] != "" {
		return supplied[i]
	}
	return c.Themes[i%len(c.Themes)]
}
