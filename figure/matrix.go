package figure

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/carbocation/hdthermal/pattern"
	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"
)

// Cell of an annotated matrix. A nil Fill leaves the cell blank.
type Cell struct {
	Fill color.Color
	Text string

	// Emphasis frames the cell, marking significant comparisons.
	Emphasis bool
}

type LegendEntry struct {
	Color color.Color
	Label string
}

// Grid is a square matrix of annotated cells with the same labels on both
// axes.
type Grid struct {
	Labels []string
	Cells  [][]Cell
	Legend []LegendEntry
}

const (
	cellSize     = 48
	labelMargin  = 64
	legendMargin = 90
)

// Render draws the grid with row labels on the left, column labels below and
// the legend, if any, on the right.
func (g Grid) Render() (image.Image, error) {
	n := len(g.Labels)
	if n == 0 || len(g.Cells) != n {
		return nil, fmt.Errorf("%d labels for %d rows", n, len(g.Cells))
	}
	for r, row := range g.Cells {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", r, len(row), n)
		}
	}

	width := labelMargin + n*cellSize + 8
	if len(g.Legend) > 0 {
		width += legendMargin
	}
	height := n*cellSize + labelMargin

	ctx := gg.NewContext(width, height)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()
	ctx.SetFontFace(basicfont.Face7x13)

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cell := g.Cells[r][c]
			x := float64(labelMargin + c*cellSize)
			y := float64(r * cellSize)

			if cell.Fill != nil {
				ctx.SetColor(cell.Fill)
				ctx.DrawRectangle(x, y, cellSize, cellSize)
				ctx.Fill()
			}

			// Grid lines
			ctx.SetRGB(1, 1, 1)
			ctx.SetLineWidth(1)
			ctx.DrawRectangle(x, y, cellSize, cellSize)
			ctx.Stroke()

			if cell.Emphasis {
				ctx.SetRGB(0, 0, 0)
				ctx.SetLineWidth(2)
				ctx.DrawRectangle(x+2, y+2, cellSize-4, cellSize-4)
				ctx.Stroke()
			}

			if cell.Text != "" {
				ctx.SetColor(textColorOn(cell.Fill))
				ctx.DrawStringAnchored(cell.Text, x+cellSize/2, y+cellSize/2, 0.5, 0.5)
			}
		}
	}

	// Outer frame
	ctx.SetRGB(0, 0, 0)
	ctx.SetLineWidth(1)
	ctx.DrawRectangle(labelMargin, 0, float64(n*cellSize), float64(n*cellSize))
	ctx.Stroke()

	for i, label := range g.Labels {
		mid := float64(i*cellSize) + cellSize/2
		ctx.DrawStringAnchored(label, labelMargin-6, mid, 1, 0.5)

		x := float64(labelMargin) + mid
		y := float64(n*cellSize) + 8
		ctx.Push()
		ctx.RotateAbout(gg.Radians(-45), x, y)
		ctx.DrawStringAnchored(label, x, y, 1, 0.5)
		ctx.Pop()
	}

	legendX := float64(labelMargin + n*cellSize + 16)
	for i, e := range g.Legend {
		y := float64(8 + i*20)
		ctx.SetColor(e.Color)
		ctx.DrawRectangle(legendX, y, 14, 14)
		ctx.Fill()
		ctx.SetRGB(0, 0, 0)
		ctx.DrawStringAnchored(e.Label, legendX+20, y+7, 0, 0.5)
	}

	return ctx.Image(), nil
}

func textColorOn(fill color.Color) color.Color {
	if fill == nil {
		return color.Black
	}
	c, ok := colorful.MakeColor(fill)
	if !ok {
		return color.Black
	}
	if l, _, _ := c.Lab(); l < 0.5 {
		return color.White
	}
	return color.Black
}

// DeltaGrid shows the differences of mean temperature. Significant pairs
// are drawn in full color with a frame, the others faded. Pairs with no
// difference and no significance are left blank.
func DeltaGrid(m *pattern.Matrices, labels []string) (Grid, error) {
	if err := m.Validate(); err != nil {
		return Grid{}, err
	}
	if len(labels) != m.N() {
		return Grid{}, fmt.Errorf("%d labels for %d groups", len(labels), m.N())
	}

	limit := 0.0
	for _, row := range m.Deltas {
		for _, d := range row {
			limit = math.Max(limit, math.Abs(d))
		}
	}

	g := Grid{Labels: labels, Cells: make([][]Cell, m.N())}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, m.N())
		for c := range g.Cells[r] {
			d, sig := m.Deltas[r][c], m.Global[r][c] != 0
			if d == 0 && !sig {
				continue
			}

			fill := Diverging.Scaled(d, -limit, limit)
			if !sig {
				fill = lighten(fill, 0.6)
			}
			g.Cells[r][c] = Cell{Fill: fill, Text: fmt.Sprintf("%.2f", d), Emphasis: sig}
		}
	}

	return g, nil
}

// CountGrid shows how many animals replicate each comparison. The diagonal
// and, with hideZero, zero counts are left blank.
func CountGrid(counts [][]int32, labels []string, vmax int, hideZero bool) (Grid, error) {
	if len(counts) != len(labels) {
		return Grid{}, fmt.Errorf("%d labels for %d rows", len(labels), len(counts))
	}
	if vmax < 1 {
		vmax = 1
	}

	g := Grid{Labels: labels, Cells: make([][]Cell, len(counts))}
	for r := range counts {
		g.Cells[r] = make([]Cell, len(counts[r]))
		for c, v := range counts[r] {
			if r == c || (hideZero && v == 0) {
				continue
			}
			g.Cells[r][c] = Cell{
				Fill: Sequential.Scaled(float64(v), 0, float64(vmax)),
				Text: fmt.Sprintf("%d", v),
			}
		}
	}

	return g, nil
}

var categoryColors = [pattern.NumCategories]string{
	"#ffffff", "#117733", "#44aa99", "#882255", "#cc6677", "#0072b2", "#56b4e9",
}

// CategoryLegend names the combined categories after the tag of the first
// species, e.g. HWS for "H warmer, significant".
func CategoryLegend(a string) []string {
	return []string{"SPS", "SP", a + "WS", a + "W", a + "CS", a + "C"}
}

// CategoryGrid shows the classification of each pair of groups across two
// species. a is the tag of the first species.
func CategoryGrid(combined [][]pattern.Category, labels []string, a string) (Grid, error) {
	if len(combined) != len(labels) {
		return Grid{}, fmt.Errorf("%d labels for %d rows", len(labels), len(combined))
	}

	colors := make([]color.Color, 0, len(categoryColors))
	for _, h := range categoryColors {
		c, err := hexColor(h)
		if err != nil {
			return Grid{}, err
		}
		colors = append(colors, c)
	}

	g := Grid{Labels: labels, Cells: make([][]Cell, len(combined))}
	for r := range combined {
		g.Cells[r] = make([]Cell, len(combined[r]))
		for c, cat := range combined[r] {
			if cat == pattern.NotApplicable {
				continue
			}
			if cat < 0 || int(cat) >= pattern.NumCategories {
				return Grid{}, fmt.Errorf("unknown category %d at (%d,%d)", cat, r, c)
			}
			g.Cells[r][c] = Cell{Fill: colors[cat], Emphasis: cat.JointlySignificant()}
		}
	}

	for i, name := range CategoryLegend(a) {
		g.Legend = append(g.Legend, LegendEntry{Color: colors[i+1], Label: name})
	}

	return g, nil
}

// AgreementGrid shows where one animal agrees with its species' pattern.
func AgreementGrid(agreement [][]pattern.Agreement, labels []string) (Grid, error) {
	if len(agreement) != len(labels) {
		return Grid{}, fmt.Errorf("%d labels for %d rows", len(labels), len(agreement))
	}

	agrees, err := hexColor("#117733")
	if err != nil {
		return Grid{}, err
	}
	differs, err := hexColor("#882255")
	if err != nil {
		return Grid{}, err
	}

	g := Grid{Labels: labels, Cells: make([][]Cell, len(agreement))}
	for r := range agreement {
		g.Cells[r] = make([]Cell, len(agreement[r]))
		for c, a := range agreement[r] {
			switch a {
			case pattern.Agrees:
				g.Cells[r][c] = Cell{Fill: agrees}
			case pattern.Differs:
				g.Cells[r][c] = Cell{Fill: differs}
			}
		}
	}
	g.Legend = []LegendEntry{
		{Color: agrees, Label: pattern.Agrees.String()},
		{Color: differs, Label: pattern.Differs.String()},
	}

	return g, nil
}
