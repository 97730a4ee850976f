// Package figure renders the analysis figures as PNG files.
package figure

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colormap maps [0, 1] to colors by blending evenly spaced stops.
type Colormap struct {
	stops []colorful.Color
}

// NewColormap parses hex stops, e.g. "#ff0000".
func NewColormap(hex ...string) (Colormap, error) {
	if len(hex) < 2 {
		return Colormap{}, fmt.Errorf("a colormap needs at least 2 stops, got %d", len(hex))
	}

	out := Colormap{stops: make([]colorful.Color, 0, len(hex))}
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return Colormap{}, fmt.Errorf("colormap stop %q: %w", h, err)
		}
		out.stops = append(out.stops, c)
	}

	return out, nil
}

func mustColormap(hex ...string) Colormap {
	c, err := NewColormap(hex...)
	if err != nil {
		panic(err)
	}
	return c
}

// At returns the color at t. Values outside [0, 1] are clamped, and NaN maps
// to the first stop.
func (c Colormap) At(t float64) color.Color {
	if math.IsNaN(t) || t <= 0 {
		return c.stops[0].Clamped()
	}
	if t >= 1 {
		return c.stops[len(c.stops)-1].Clamped()
	}

	pos := t * float64(len(c.stops)-1)
	i := int(pos)

	return c.stops[i].BlendRgb(c.stops[i+1], pos-float64(i)).Clamped()
}

// Scaled maps v from [min, max] onto the colormap.
func (c Colormap) Scaled(v, min, max float64) color.Color {
	if max <= min {
		return c.At(0)
	}
	return c.At((v - min) / (max - min))
}

var (
	// Spectral runs black, purple, blue, green, yellow, red to grey. It is
	// used for thermal images and region maps.
	Spectral = mustColormap(
		"#000000", "#770088", "#880099", "#0000aa", "#0000dd", "#0077dd", "#0099dd",
		"#00aaaa", "#00aa88", "#009900", "#00bb00", "#00dd00", "#00ff00", "#bbff00",
		"#eeee00", "#ffcc00", "#ff9900", "#ff0000", "#dd0000", "#cc0000", "#cccccc",
	)

	// Diverging is blue for negative and red for positive values.
	Diverging = mustColormap(
		"#053061", "#2166ac", "#4393c3", "#92c5de", "#d1e5f0", "#f7f7f7",
		"#fddbc7", "#f4a582", "#d6604d", "#b2182b", "#67001f",
	)

	// Sequential runs from pale yellow to dark green, for counts.
	Sequential = mustColormap(
		"#ffffe5", "#f7fcb9", "#d9f0a3", "#addd8e", "#78c679",
		"#41ab5d", "#238443", "#006837", "#004529",
	)
)

// hexColor parses a "#rrggbb" color for use with any renderer.
func hexColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", hex, err)
	}
	return c, nil
}

// withAlpha returns c with the given opacity.
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(alpha * 255))
	return n
}

// lighten blends c towards white.
func lighten(c color.Color, amount float64) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	return cf.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, amount).Clamped()
}
