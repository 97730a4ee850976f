package figure

import (
	"fmt"
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	hist2 "github.com/grd/histogram"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Series is one species' sample in a comparative figure.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

// SqrtBins is the number of bins used for ROI histograms: the square root of
// the size of the largest sample.
func SqrtBins(series ...Series) int {
	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	if b := int(math.Sqrt(float64(n))); b > 0 {
		return b
	}
	return 1
}

// densityBins counts values into nBins equal bins spanning [min, max] and
// normalizes the counts so that the histogram integrates to one.
func densityBins(values []float64, min, width float64, nBins int) ([]plotter.HistogramBin, error) {
	hg, err := hist2.NewHistogram(hist2.Range(min, uint(nBins), width))
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		hg.Add(v)
	}

	out := make([]plotter.HistogramBin, nBins)
	for i := range out {
		out[i] = plotter.HistogramBin{
			Min:    min + float64(i)*width,
			Max:    min + float64(i+1)*width,
			Weight: float64(hg.Get(i)) / (float64(len(values)) * width),
		}
	}

	return out, nil
}

// SpeciesHistogram overlays density histograms of each series on shared
// bins.
func SpeciesHistogram(series []Series, nBins int, xLabel string, legend bool) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}
	if nBins < 1 {
		return nil, fmt.Errorf("need at least one bin, got %d", nBins)
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if len(s.Values) == 0 {
			return nil, fmt.Errorf("%s: no values to plot", s.Name)
		}
		for _, v := range s.Values {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}

	// Widen the last bin a hair so that the maximum itself is counted
	width := (max - min) / float64(nBins)
	if width == 0 {
		width = 1
	}
	width *= 1 + 1e-9

	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Density"

	for _, s := range series {
		bins, err := densityBins(s.Values, min, width, nBins)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}

		c, err := hexColor(s.Color)
		if err != nil {
			return nil, err
		}

		h := &plotter.Histogram{
			Bins:      bins,
			Width:     width,
			FillColor: withAlpha(c, 0.7),
		}
		p.Add(h)
		if legend {
			p.Legend.Add(s.Name, h)
		}
	}

	p.Legend.Top = true

	return p, nil
}

// SavePlot writes a gonum plot to a PNG of the given size in inches.
func SavePlot(p *plot.Plot, width, height float64, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path)
}

// TerminalHistogram prints a quick text histogram, for a first look at a
// sample without opening any figure.
func TerminalHistogram(w io.Writer, values []float64, nBins int) error {
	if len(values) == 0 {
		return fmt.Errorf("no values to plot")
	}

	hist := histogram.Hist(nBins, values)
	return histogram.Fprint(w, hist, histogram.Linear(5))
}
