package figure

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/overlay"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Box is a cut box over a frame: rows [Row0, Row1) and columns [Col0, Col1).
type Box struct {
	Row0, Row1, Col0, Col1 int
}

// TemperatureRange fixes the color scale of a heatmap. A nil range scales
// each image to its own labelled pixels.
type TemperatureRange struct {
	Min, Max float64
}

// Validate requires 0 < Min < Max.
func (r *TemperatureRange) Validate() error {
	if r == nil {
		return nil
	}
	if !(r.Min > 0 && r.Max > r.Min) {
		return fmt.Errorf("temperature range [%v, %v] must satisfy 0 < min < max", r.Min, r.Max)
	}
	return nil
}

type HeatmapOptions struct {
	Range *TemperatureRange
	Cut   *Box

	// KeepBackground shows the temperature of unlabelled pixels. Otherwise
	// they are painted as the coldest color.
	KeepBackground bool

	// Scale enlarges each pixel into a Scale x Scale block.
	Scale int

	// Title is drawn in the lower left corner of uncut images.
	Title string
}

const colorbarWidth = 70

// Heatmap renders the thermal image of a frame with a color bar.
func Heatmap(f *dataset.Frame, opts HeatmapOptions) (image.Image, error) {
	if err := opts.Range.Validate(); err != nil {
		return nil, err
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	var err error
	if opts.Cut != nil {
		if f, err = f.Crop(opts.Cut.Row0, opts.Cut.Row1, opts.Cut.Col0, opts.Cut.Col1); err != nil {
			return nil, err
		}
	}

	values := make([]float64, len(f.Values))
	copy(values, f.Values)
	if !opts.KeepBackground {
		for i, l := range f.Labels {
			if l == dataset.Background {
				values[i] = 0
			}
		}
	}

	vmin, vmax := math.Inf(1), math.Inf(-1)
	if opts.Range != nil {
		vmin, vmax = opts.Range.Min, opts.Range.Max
	} else {
		for i, l := range f.Labels {
			if l == dataset.Background {
				continue
			}
			vmin = math.Min(vmin, f.Values[i])
			vmax = math.Max(vmax, f.Values[i])
		}
		if math.IsInf(vmin, 0) {
			return nil, fmt.Errorf("%s: no labelled pixels to scale the colors to", f.Name)
		}
	}

	raster := image.NewNRGBA(image.Rect(0, 0, f.Cols, f.Rows))
	for i, v := range values {
		raster.Set(i%f.Cols, i/f.Cols, Spectral.Scaled(v, vmin, vmax))
	}

	img, err := overlay.SubsetAndRescaleImage(raster, 0, 0, 0, 0, opts.Scale)
	if err != nil {
		return nil, err
	}

	title := ""
	if opts.Cut == nil {
		title = opts.Title
	}

	return withColorbar(img, vmin, vmax, title), nil
}

// withColorbar places img on a white canvas with a vertical color bar and
// its tick labels on the right.
func withColorbar(img image.Image, vmin, vmax float64, title string) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	canvas := image.NewNRGBA(image.Rect(0, 0, w+colorbarWidth, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, w, h), img, b.Min, draw.Src)

	ctx := gg.NewContextForImage(canvas)
	ctx.SetFontFace(basicfont.Face7x13)

	barX := float64(w + 8)
	const barW = 14.0
	for y := 0; y < h; y++ {
		ctx.SetColor(Spectral.At(1 - float64(y)/float64(h-1)))
		ctx.DrawRectangle(barX, float64(y), barW, 1)
		ctx.Fill()
	}

	ctx.SetRGB(0, 0, 0)
	for i := 0; i <= 4; i++ {
		frac := float64(i) / 4
		y := float64(h-1) * (1 - frac)
		ctx.DrawStringAnchored(fmt.Sprintf("%.1f", vmin+frac*(vmax-vmin)), barX+barW+4, y, 0, 0.5)
	}

	if title != "" {
		ctx.SetRGB(1, 1, 1)
		ctx.DrawStringAnchored(title, 10, float64(h-10), 0, 0)
	}

	return ctx.Image()
}
