package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseHex reads "#rrggbb" or "#rgb". The leading '#' is optional.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// ValidHex reports whether s parses as a colour.
func ValidHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// Hex formats c as lowercase "#rrggbb", ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// shift is round(2.55*percent), rounding halves up.
func shift(percent float64) int {
	return int(math.Floor(2.55*percent + 0.5))
}

// Lighten adds round(2.55*percent) to every channel, clamped at 255.
func Lighten(c color.RGBA, percent float64) color.RGBA {
	amt := shift(percent)
	return color.RGBA{R: clamp(int(c.R) + amt), G: clamp(int(c.G) + amt), B: clamp(int(c.B) + amt), A: c.A}
}

// Darken subtracts round(2.55*percent) from every channel, clamped at 0.
func Darken(c color.RGBA, percent float64) color.RGBA {
	amt := shift(percent)
	return color.RGBA{R: clamp(int(c.R) - amt), G: clamp(int(c.G) - amt), B: clamp(int(c.B) - amt), A: c.A}
}

// AdjustBrightness lightens for positive percent and darkens otherwise.
func AdjustBrightness(c color.RGBA, percent float64) color.RGBA {
	if percent > 0 {
		return Lighten(c, percent)
	}
	return Darken(c, -percent)
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// withAlpha returns c at opacity a in [0,1].
func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

func colorOr(hex string, fallback color.RGBA) color.RGBA {
	if c, err := ParseHex(hex); err == nil {
		return c
	}
	return fallback
}
