package highlight

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
)

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex creates a color from a "#RRGGBB" or "#RGB" string.
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// String returns the hex representation of the color.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Lightness returns the CIE L* lightness of the color, from 0 to 1.
func (c Color) Lightness() float64 {
	l, _, _ := c.colorful().Lab()
	return l
}

// Contrast returns black or white, whichever reads better on c.
func (c Color) Contrast() Color {
	if c.Lightness() > 0.6 {
		return ColorBlack
	}
	return ColorWhite
}

// Blend mixes c with other in Lab space. Amount 0 is c, 1 is other.
func (c Color) Blend(other Color, amount float64) Color {
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}
