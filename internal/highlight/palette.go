package highlight

import colorful "github.com/lucasb-eyer/go-colorful"

// Palette is a cyclic list of annotation colors.
type Palette []Color

// NewPalette returns n colors with evenly spaced hues in HCL space.
func NewPalette(n int) Palette {
	if n <= 0 {
		return nil
	}
	p := make(Palette, n)
	step := 360.0 / float64(n)
	for i := range p {
		p[i] = fromColorful(colorful.Hcl(float64(i)*step, 0.45, 0.8))
	}
	return p
}

// PaletteFromHex builds a palette from hex strings.
func PaletteFromHex(hexes ...string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ColorFromHex(h)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// At returns the color for the i-th annotation, wrapping around.
// An empty palette yields white.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return ColorWhite
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}
