package describe

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/internal/testutil"
	"github.com/carbocation/hdthermal/roi"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize("x", []float64{4, 1, 3, 2, 5})
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []struct {
		Name      string
		Got, Want float64
	}{
		{"min", s.Min, 1},
		{"max", s.Max, 5},
		{"mean", s.Mean, 3},
		{"median", s.Median, 3},
		{"q1", s.Q1, 1.5},
		{"q3", s.Q3, 4.5},
		{"std", s.StdDev, math.Sqrt2},
		{"skew", s.Skewness, 0},
	} {
		if math.Abs(v.Got-v.Want) > 1e-12 {
			t.Errorf("%s: got %v, want %v", v.Name, v.Got, v.Want)
		}
	}

	if s.N != 5 || s.Label != "x" {
		t.Errorf("Unexpected summary %+v", s)
	}
	if s.ExcessKurtosis >= 0 {
		t.Errorf("A uniform sample should be platykurtic, got %v", s.ExcessKurtosis)
	}
}

func TestSummarizeSkewed(t *testing.T) {
	s, err := Summarize("right tail", []float64{1, 1, 1, 1, 1, 1, 2, 2, 3, 10})
	if err != nil {
		t.Fatal(err)
	}
	if s.Skewness <= 0 {
		t.Errorf("Expected a positive skew, got %v", s.Skewness)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize("nothing", nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}

	s, err := Summarize("one", []float64{7})
	if err != nil {
		t.Fatal(err)
	}
	if s.Q1 != 7 || s.Q3 != 7 || s.StdDev != 0 {
		t.Errorf("Unexpected single-value summary %+v", s)
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []PixelCountDifference{{Median: 1.5, Mean: 2, StdDev: 0.25}}
	if err := WriteTSV(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected a header and one row, got %q", buf.String())
	}
	if lines[0] != "median_pct\tmean_pct\tstd_pct" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if lines[1] != "1.5\t2\t0.25" {
		t.Errorf("Unexpected row %q", lines[1])
	}
}

// Donkey region r sits at 20+r degrees. Horses are 1+r/10 degrees warmer,
// and region 7 is another 2 degrees warmer still.
func speciesTemp(s dataset.Subject, label uint8, pixel int) float64 {
	v := 20 + float64(label) + float64(pixel%2)*0.5
	if s.Species == "H" {
		v += 1 + float64(label)/10
	}
	if label == 7 && s.Species == "H" {
		v += 2
	}
	return v
}

func newAggregator(t *testing.T) *roi.Aggregator {
	indices := []int{1, 2}
	dir := testutil.WriteDataset(t, testutil.Subjects([]dataset.Species{"H", "D"}, indices), speciesTemp)
	return roi.NewAggregator(dataset.Dataset{Path: dir}, indices)
}

func TestRegionDifferences(t *testing.T) {
	agg := newAggregator(t)

	diffs, err := RegionDifferences(agg, "H", "D")
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != roi.NumRegions {
		t.Fatalf("Expected %d regions, got %d", roi.NumRegions, len(diffs))
	}
	if math.Abs(diffs[0].Diff-1.1) > 1e-9 || diffs[0].Region != 1 {
		t.Errorf("Unexpected difference for region 1: %+v", diffs[0])
	}

	smallest, largest, err := Extremes(diffs)
	if err != nil {
		t.Fatal(err)
	}
	if smallest != 1 || largest != 7 {
		t.Errorf("Expected the extremes to be regions 1 and 7, got %d and %d", smallest, largest)
	}
}

func TestGlobalTemperatures(t *testing.T) {
	agg := newAggregator(t)

	got, err := GlobalTemperatures(agg, "H", "D")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Label != "H" || got[1].Label != "D" {
		t.Fatalf("Unexpected summaries %+v", got)
	}
	if want := 2 * roi.NumRegions * testutil.PixelsPerLabel; got[0].N != want {
		t.Errorf("Expected %d foreground pixels, got %d", want, got[0].N)
	}
	if got[1].Min != 21 || got[1].Max != 35.5 {
		t.Errorf("Unexpected donkey range %v..%v", got[1].Min, got[1].Max)
	}
}

func TestPixelCountDifferences(t *testing.T) {
	agg := newAggregator(t)

	got, err := PixelCountDifferences(agg, "H", "D")
	if err != nil {
		t.Fatal(err)
	}
	if got != (PixelCountDifference{}) {
		t.Errorf("Identical layouts should not differ, got %+v", got)
	}
}
