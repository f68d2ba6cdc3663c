package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	rgbColor  = regexp.MustCompile(`^(rgb|hsl)\(\s*[-+0-9.%]+\s*(,\s*[-+0-9.%]+\s*){2}\)$`)
	rgbaColor = regexp.MustCompile(`^(rgba|hsla)\(\s*[-+0-9.%]+\s*(,\s*[-+0-9.%]+\s*){2,3}\)$`)
)

// ColorType accepts hex, functional rgb/hsl and the SVG 1.1 named colors.
// rgb and hsl take three components; rgba and hsla take three or four.
type ColorType struct{}

func (t *ColorType) Name() string { return "color" }

func (t *ColorType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *ColorType) Coerce(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected color string, got %T", value)
	}
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case lower == "transparent":
		return lower, nil
	case strings.HasPrefix(s, "#"):
		if _, err := ParseHex(s); err != nil {
			return nil, err
		}
		return s, nil
	case rgbColor.MatchString(lower), rgbaColor.MatchString(lower):
		return s, nil
	}
	if _, ok := colornames.Map[lower]; ok {
		return lower, nil
	}
	return nil, fmt.Errorf("invalid color %q", s)
}

// Color creates a color type validator.
func Color() Type { return &ColorType{} }

// ParseHex parses #rgb, #rrggbb and #rrggbbaa colors; the alpha channel is
// ignored. Named CSS colors are resolved as well.
func ParseHex(s string) (colorful.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}, nil
	}
	switch len(s) {
	case 4, 7:
		return colorful.Hex(s)
	case 9:
		return colorful.Hex(s[:7])
	}
	return colorful.Color{}, fmt.Errorf("invalid hex color %q", s)
}

// Mix blends fg toward bg by fraction (0 keeps fg, 1 yields bg).
// When either color is not hex or named, fallback is returned.
func Mix(fg, bg string, fraction float64, fallback string) string {
	a, err := ParseHex(fg)
	if err != nil {
		return fallback
	}
	b, err := ParseHex(bg)
	if err != nil {
		return fallback
	}
	return a.BlendRgb(b, fraction).Clamped().Hex()
}
