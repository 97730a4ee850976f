package figure

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/carbocation/hdthermal/roi"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// MedianOrder returns region IDs sorted by decreasing median temperature.
func MedianOrder(rois *roi.Regions) ([]int, error) {
	medians := make(map[int]float64, roi.NumRegions)
	order := make([]int, 0, roi.NumRegions)
	for id := 1; id <= roi.NumRegions; id++ {
		m, err := stats.Median(rois.Region(id))
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", id, err)
		}
		medians[id] = m
		order = append(order, id)
	}

	sort.SliceStable(order, func(i, j int) bool { return medians[order[i]] > medians[order[j]] })

	return order, nil
}

// RegionBoxplot draws one box per region, warmest median first. Outliers are
// drawn in fliers (a hex color). yMin and yMax fix the temperature axis when
// yMax > yMin.
func RegionBoxplot(rois *roi.Regions, fliers string, yMin, yMax float64) (*plot.Plot, error) {
	order, err := MedianOrder(rois)
	if err != nil {
		return nil, err
	}

	c, err := hexColor(fliers)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = "ROI"
	p.Y.Label.Text = "Temperature"

	names := make([]string, 0, len(order))
	for i, id := range order {
		b, err := plotter.NewBoxPlot(vg.Points(12), float64(i), plotter.Values(rois.Region(id)))
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", id, err)
		}
		b.GlyphStyle.Color = withAlpha(c, 0.7)
		b.GlyphStyle.Radius = vg.Points(1)

		p.Add(b)
		names = append(names, strconv.Itoa(id))
	}
	p.NominalX(names...)

	if yMax > yMin {
		p.Y.Min, p.Y.Max = yMin, yMax
	}

	return p, nil
}
