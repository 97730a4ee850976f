package overlay

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorFromCode parses the #rrggbb color of a region. An empty code is the
// background and paints as fully transparent.
func ColorFromCode(colorCode string) (color.Color, error) {
	colorCode = strings.TrimSpace(colorCode)
	if colorCode == "" {
		return color.NRGBA{}, nil
	}
	if !strings.HasPrefix(colorCode, "#") {
		colorCode = "#" + colorCode
	}

	c, err := colorful.Hex(colorCode)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", colorCode, err)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
