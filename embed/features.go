// Package embed turns each animal into a vector of per-region statistics and
// projects those vectors to two dimensions for plotting.
package embed

import (
	"fmt"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/roi"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Statistic reduces the values of one region to a single feature.
type Statistic string

const (
	Mean     Statistic = "mean"
	Std      Statistic = "std"
	Skew     Statistic = "skew"
	Kurtosis Statistic = "kurtosis"
)

// Statistics lists the supported statistics.
var Statistics = []Statistic{Mean, Std, Skew, Kurtosis}

func (s Statistic) apply(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("%s of an empty region", s)
	}

	switch s {
	case Mean:
		return stat.Mean(x, nil), nil
	case Std:
		_, std := stat.PopMeanStdDev(x, nil)
		return std, nil
	case Skew:
		return stat.Skew(x, nil), nil
	case Kurtosis:
		return stat.ExKurtosis(x, nil), nil
	}

	return 0, fmt.Errorf("unknown statistic %q", string(s))
}

// ParseStatistic validates a statistic name.
func ParseStatistic(name string) (Statistic, error) {
	for _, s := range Statistics {
		if string(s) == name {
			return s, nil
		}
	}

	return "", fmt.Errorf("unknown statistic %q (want one of %v)", name, Statistics)
}

// Features holds one row per animal and one column per region.
type Features struct {
	Statistic  Statistic
	Normalised bool
	Subjects   []dataset.Subject
	X          *mat.Dense
}

// Extract computes the feature matrix for every configured animal of each
// species, in species order. With normalise, each animal's mean temperature
// over all its regions is subtracted before the statistic is taken.
func Extract(agg *roi.Aggregator, species []dataset.Species, s Statistic, normalise bool) (*Features, error) {
	if _, err := ParseStatistic(string(s)); err != nil {
		return nil, err
	}

	out := &Features{Statistic: s, Normalised: normalise}
	var rows []float64

	for _, sp := range species {
		for _, idx := range agg.Indices {
			rois, err := agg.Regions(sp, idx)
			if err != nil {
				return nil, err
			}

			offset := 0.0
			if normalise {
				var all []float64
				for _, r := range rois {
					all = append(all, r...)
				}
				offset = stat.Mean(all, nil)
			}

			for id := 1; id <= roi.NumRegions; id++ {
				values := rois.Region(id)
				if offset != 0 {
					shifted := make([]float64, len(values))
					for i, v := range values {
						shifted[i] = v - offset
					}
					values = shifted
				}

				f, err := s.apply(values)
				if err != nil {
					return nil, fmt.Errorf("%s region %d: %w", dataset.SubjectName(sp, idx), id, err)
				}
				rows = append(rows, f)
			}

			out.Subjects = append(out.Subjects, dataset.Subject{Species: sp, Index: idx})
		}
	}

	if len(out.Subjects) == 0 {
		return nil, fmt.Errorf("no animals to describe")
	}

	out.X = mat.NewDense(len(out.Subjects), roi.NumRegions, rows)

	return out, nil
}
