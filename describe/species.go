package describe

import (
	"fmt"
	"math"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/roi"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GlobalTemperatures summarizes every labelled pixel of every configured
// animal of each species.
func GlobalTemperatures(agg *roi.Aggregator, species ...dataset.Species) ([]Summary, error) {
	out := make([]Summary, 0, len(species))
	for _, sp := range species {
		fg, err := agg.AllForeground(sp)
		if err != nil {
			return nil, err
		}

		s, err := Summarize(string(sp), fg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// RegionSummaries summarizes each region of a species, pooled over the
// configured animals. out[0] is region 1.
func RegionSummaries(agg *roi.Aggregator, species dataset.Species) ([]Summary, error) {
	rois, err := agg.AllRegions(species)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, roi.NumRegions)
	for id := 1; id <= roi.NumRegions; id++ {
		s, err := Summarize(fmt.Sprintf("%s ROI %d", species, id), rois.Region(id))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// RegionDifference compares one region between species A and B.
type RegionDifference struct {
	Region int     `csv:"roi"`
	A      Summary `csv:"-"`
	B      Summary `csv:"-"`
	AMean  float64 `csv:"mean_a"`
	BMean  float64 `csv:"mean_b"`

	// Diff is the absolute difference of the means.
	Diff float64 `csv:"diff"`
}

// RegionDifferences compares every region between two species.
func RegionDifferences(agg *roi.Aggregator, a, b dataset.Species) ([]RegionDifference, error) {
	sa, err := RegionSummaries(agg, a)
	if err != nil {
		return nil, err
	}
	sb, err := RegionSummaries(agg, b)
	if err != nil {
		return nil, err
	}

	out := make([]RegionDifference, 0, roi.NumRegions)
	for i := range sa {
		out = append(out, RegionDifference{
			Region: i + 1,
			A:      sa[i],
			B:      sb[i],
			AMean:  sa[i].Mean,
			BMean:  sb[i].Mean,
			Diff:   math.Abs(sa[i].Mean - sb[i].Mean),
		})
	}

	return out, nil
}

// Extremes returns the regions with the smallest and the largest difference.
func Extremes(diffs []RegionDifference) (smallest, largest int, err error) {
	if len(diffs) == 0 {
		return 0, 0, ErrEmpty
	}

	d := make([]float64, 0, len(diffs))
	for _, v := range diffs {
		d = append(d, v.Diff)
	}

	return diffs[floats.MinIdx(d)].Region, diffs[floats.MaxIdx(d)].Region, nil
}

// PixelCountDifference is the relative difference between species in the
// number of pixels per region, in percent.
type PixelCountDifference struct {
	Median float64 `csv:"median_pct"`
	Mean   float64 `csv:"mean_pct"`
	StdDev float64 `csv:"std_pct"`
}

// PixelCountDifferences sums pixel counts per region over the animals of
// each species, then relates |a-b| to each species' count. Each statistic
// is the average of the two relative views.
func PixelCountDifferences(agg *roi.Aggregator, a, b dataset.Species) (PixelCountDifference, error) {
	var out PixelCountDifference

	total := func(sp dataset.Species) ([roi.NumRegions]float64, error) {
		var sum [roi.NumRegions]float64
		counts, err := agg.PixelCounts(sp)
		if err != nil {
			return sum, err
		}
		for _, c := range counts {
			for i, n := range c {
				sum[i] += float64(n)
			}
		}
		return sum, nil
	}

	ta, err := total(a)
	if err != nil {
		return out, err
	}
	tb, err := total(b)
	if err != nil {
		return out, err
	}

	relA := make([]float64, 0, roi.NumRegions)
	relB := make([]float64, 0, roi.NumRegions)
	for i := range ta {
		if ta[i] == 0 || tb[i] == 0 {
			return out, fmt.Errorf("region %d has no pixels in one species (%v vs %v)", i+1, ta[i], tb[i])
		}
		diff := math.Abs(ta[i] - tb[i])
		relA = append(relA, diff/ta[i])
		relB = append(relB, diff/tb[i])
	}

	medA, err := stats.Median(relA)
	if err != nil {
		return out, err
	}
	medB, err := stats.Median(relB)
	if err != nil {
		return out, err
	}

	meanA, stdA := stat.PopMeanStdDev(relA, nil)
	meanB, stdB := stat.PopMeanStdDev(relB, nil)

	out.Median = 100 * (medA + medB) / 2
	out.Mean = 100 * (meanA + meanB) / 2
	out.StdDev = 100 * (stdA + stdB) / 2

	return out, nil
}
