// Package palette defines the in-memory shape every extraction strategy
// normalizes into: a Color is an uppercase "#RRGGBB" string, a Palette is an
// ordered run of colors and a List is an ordered run of palettes.
package palette

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a normalized "#RRGGBB" value (uppercase, no alpha).
type Color string

// Palette is an ordered sequence of colors.
type Palette []Color

// List is an ordered sequence of palettes in discovery order.
type List []Palette

// MinColors is the smallest run of colors a scraped element must yield
// to be accepted as a palette.
const MinColors = 3

// ErrInvalidColor is returned when a value cannot be normalized to "#RRGGBB".
var ErrInvalidColor = errors.New("invalid color")

var (
	hex6Pattern    = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	cssHexPattern  = regexp.MustCompile(`#([0-9A-Fa-f]{6})`)
	cssRGBPattern  = regexp.MustCompile(`rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
	canonicalColor = regexp.MustCompile(`^#[0-9A-F]{6}$`)
)

// NormalizeHex converts "264653", "#264653" or " #2a9d8f " into the canonical
// "#RRGGBB" form.
func NormalizeHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !hex6Pattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color("#" + strings.ToUpper(s)), nil
}

// FromRGB converts decimal channel values (0-255) to a Color.
// FromRGB(38, 70, 83) returns "#264653".
func FromRGB(r, g, b int) (Color, error) {
	for _, ch := range []int{r, g, b} {
		if ch < 0 || ch > 255 {
			return "", fmt.Errorf("%w: channel %d out of range", ErrInvalidColor, ch)
		}
	}

	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return Color(strings.ToUpper(c.Hex())), nil
}

// ParseCSSColor finds the first color in an inline style declaration such as
// "background-color: rgb(38, 70, 83)" or "background: #264653". A 6-digit hex
// value takes precedence over rgb() syntax.
func ParseCSSColor(style string) (Color, error) {
	if m := cssHexPattern.FindStringSubmatch(style); m != nil {
		return NormalizeHex(m[1])
	}

	m := cssRGBPattern.FindStringSubmatch(style)
	if m == nil {
		return "", fmt.Errorf("%w: no color in %q", ErrInvalidColor, style)
	}

	var ch [3]int
	for i := range ch {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidColor, err)
		}
		ch[i] = v
	}

	return FromRGB(ch[0], ch[1], ch[2])
}

// New normalizes every raw value into a Palette. It fails on the first value
// that is not a 6-digit hex color, so a palette is either fully valid or rejected.
func New(raw []string) (Palette, error) {
	p := make(Palette, 0, len(raw))
	for _, s := range raw {
		c, err := NormalizeHex(s)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// ParseHexRun parses a hyphen-joined run such as "264653-2a9d8f-e9c46a".
func ParseHexRun(run string) (Palette, error) {
	run = strings.Trim(strings.TrimSpace(run), "-")
	if run == "" {
		return nil, fmt.Errorf("%w: empty hex run", ErrInvalidColor)
	}
	return New(strings.Split(run, "-"))
}

// Valid reports whether c is in canonical "#RRGGBB" form.
func (c Color) Valid() bool {
	return canonicalColor.MatchString(string(c))
}

// Strings returns the palette as plain strings.
func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = string(c)
	}
	return out
}

// Truncate returns at most n colors.
func (p Palette) Truncate(n int) Palette {
	if n < 0 || len(p) <= n {
		return p
	}
	return p[:n]
}

// Equal reports whether both palettes hold the same colors in the same order.
func (p Palette) Equal(other Palette) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a fingerprint of the color sequence. Palettes with the same
// colors in the same order share a key.
func (p Palette) Key() uint64 {
	d := xxhash.New()
	for _, c := range p {
		d.WriteString(string(c))
		d.WriteString("-")
	}
	return d.Sum64()
}

// Truncate returns at most n palettes, preserving order.
func (l List) Truncate(n int) List {
	if n < 0 || len(l) <= n {
		return l
	}
	return l[:n]
}

// Strings returns the list as nested plain strings, the shape used for JSON output.
func (l List) Strings() [][]string {
	out := make([][]string, len(l))
	for i, p := range l {
		out[i] = p.Strings()
	}
	return out
}

// Set accumulates palettes in insertion order, dropping exact repeats.
type Set struct {
	seen map[uint64]struct{}
	list List
}

// NewSet returns a Set seeded with the given palettes.
func NewSet(initial ...Palette) *Set {
	s := &Set{seen: make(map[uint64]struct{})}
	for _, p := range initial {
		s.Add(p)
	}
	return s
}

// Add appends p unless an identical palette was already added.
// It reports whether p was new.
func (s *Set) Add(p Palette) bool {
	if len(p) == 0 {
		return false
	}
	k := p.Key()
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.list = append(s.list, p)
	return true
}

// Len returns the number of distinct palettes.
func (s *Set) Len() int {
	return len(s.list)
}

// List returns the accumulated palettes.
func (s *Set) List() List {
	return s.list
}
