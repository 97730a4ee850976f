package figure

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/overlay"
	"github.com/carbocation/hdthermal/study"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// RegionMap paints each region of a frame in its label color on a black
// background and writes the region ID at its center of mass.
func RegionMap(f *dataset.Frame, labels overlay.LabelMap, cut *Box, scale int) (image.Image, error) {
	if !labels.Valid() {
		return nil, fmt.Errorf("label map is not bijective")
	}

	names := make(map[uint8]string)
	for id := 1; id < dataset.NumLabels; id++ {
		names[uint8(id)] = strconv.Itoa(id)
	}

	return labelledMap(f.Labels, f.Rows, f.Cols, labels, names, cut, scale)
}

// GroupMap paints a selection of region groups, numbering groups by their
// position in groups (1-based) and writing that number at each group's center
// of mass. Groups in the selection must not share regions.
func GroupMap(f *dataset.Frame, groups []study.Group, selection []int, cut *Box, scale int) (image.Image, error) {
	if len(selection) == 0 {
		return nil, fmt.Errorf("no groups selected")
	}

	regions := make([][]int, 0, len(selection))
	for _, i := range selection {
		if i < 0 || i >= len(groups) {
			return nil, fmt.Errorf("group %d does not exist (have %d)", i, len(groups))
		}
		if err := groups[i].Validate(); err != nil {
			return nil, err
		}
		regions = append(regions, groups[i].Regions)
	}

	mask, err := overlay.GroupMask(f.Labels, regions...)
	if err != nil {
		return nil, err
	}

	// GroupMask numbers the selection 1..k; relabel to the group's position
	// in the full list so that colors and numbers are stable across maps.
	for i, m := range mask {
		if m != 0 {
			mask[i] = uint8(selection[m-1] + 1)
		}
	}

	palette := make(overlay.LabelMap)
	names := make(map[uint8]string)
	palette["Background"] = overlay.Label{ID: 0}
	for _, i := range selection {
		id := uint(i + 1)
		c := withAlpha(Spectral.At(float64(id)/float64(len(groups))), 1)
		palette[groups[i].Name] = overlay.Label{ID: id, Color: fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)}
		names[uint8(id)] = strconv.Itoa(int(id))
	}

	return labelledMap(mask, f.Rows, f.Cols, palette, names, cut, scale)
}

func labelledMap(labels []uint8, rows, cols int, palette overlay.LabelMap, names map[uint8]string, cut *Box, scale int) (image.Image, error) {
	if scale < 1 {
		scale = 1
	}

	colored, err := palette.Colorize(labels, rows, cols)
	if err != nil {
		return nil, err
	}

	base := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	draw.Draw(base, base.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(base, base.Bounds(), colored, image.Point{}, draw.Over)

	box := Box{Row0: 0, Row1: rows, Col0: 0, Col1: cols}
	if cut != nil {
		box = *cut
	}

	img, err := overlay.SubsetAndRescaleImage(base, box.Col0, box.Row0, box.Col1, box.Row1, scale)
	if err != nil {
		return nil, err
	}

	ctx := gg.NewContextForImage(img)
	ctx.SetFontFace(basicfont.Face7x13)
	ctx.SetRGB(1, 1, 1)

	for id, m := range overlay.LabelMoments(labels, rows, cols, dataset.Background) {
		name, ok := names[id]
		if !ok {
			continue
		}

		// Centroids are in grid coordinates; shift them into the cut box
		// and scale to the center of the enlarged pixel.
		x := (m.Centroid.X - float64(box.Col0) + 0.5) * float64(scale)
		y := (m.Centroid.Y - float64(box.Row0) + 0.5) * float64(scale)
		if x < 0 || y < 0 || x > float64(ctx.Width()) || y > float64(ctx.Height()) || math.IsNaN(x) {
			continue
		}
		ctx.DrawStringAnchored(name, x, y, 0.5, 0.5)
	}

	return ctx.Image(), nil
}
