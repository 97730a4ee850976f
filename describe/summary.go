// Package describe computes descriptive statistics of thermal samples and
// the species-level summaries reported alongside the figures.
package describe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned when summarizing a sample without observations.
var ErrEmpty = errors.New("no observations")

// Summary of a thermal sample. StdDev is the population standard deviation.
// Skewness and ExcessKurtosis are the sample-corrected estimates.
type Summary struct {
	Label          string  `csv:"label"`
	N              int     `csv:"n"`
	Min            float64 `csv:"min"`
	Q1             float64 `csv:"q1"`
	Mean           float64 `csv:"mean"`
	Median         float64 `csv:"median"`
	Q3             float64 `csv:"q3"`
	Max            float64 `csv:"max"`
	StdDev         float64 `csv:"std"`
	Skewness       float64 `csv:"skew"`
	ExcessKurtosis float64 `csv:"kurtosis"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: min: %0.2f, mean: %0.2f(%0.2f), median: %0.2f, max: %0.2f, skew: %0.2f, kurtosis: %0.2f",
		s.Label, s.Min, s.Mean, s.StdDev, s.Median, s.Max, s.Skewness, s.ExcessKurtosis)
}

// Summarize describes values. The input is not modified.
func Summarize(label string, values []float64) (Summary, error) {
	out := Summary{Label: label, N: len(values)}
	if len(values) == 0 {
		return out, fmt.Errorf("%s: %w", label, ErrEmpty)
	}

	var err error
	data := stats.Float64Data(values)

	if out.Min, err = stats.Min(data); err != nil {
		return out, err
	}
	if out.Max, err = stats.Max(data); err != nil {
		return out, err
	}
	if out.Median, err = stats.Median(data); err != nil {
		return out, err
	}

	if len(values) > 1 {
		q, err := stats.Quartile(data)
		if err != nil {
			return out, err
		}
		out.Q1, out.Q3 = q.Q1, q.Q3
	} else {
		out.Q1, out.Q3 = values[0], values[0]
	}

	out.Mean, out.StdDev = stat.PopMeanStdDev(values, nil)

	// Both are undefined for fewer than four observations or no spread
	if len(values) > 3 && out.StdDev > 0 {
		out.Skewness = stat.Skew(values, nil)
		out.ExcessKurtosis = stat.ExKurtosis(values, nil)
	}

	return out, nil
}

// WriteTSV writes rows (a slice of structs with csv tags) as tab separated
// values with a header line.
func WriteTSV(w io.Writer, rows interface{}) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw))
}
