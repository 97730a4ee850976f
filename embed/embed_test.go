package embed

import (
	"math"
	"testing"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/internal/testutil"
	"github.com/carbocation/hdthermal/roi"
	"gonum.org/v1/gonum/mat"
)

func TestPCASeparatesClusters(t *testing.T) {
	x := mat.NewDense(6, 3, []float64{
		10, 0.1, 5,
		10.2, 0, 5.1,
		9.9, 0.2, 4.9,
		0, 0.1, 5,
		0.1, 0.2, 5.2,
		-0.2, 0, 4.8,
	})

	p, err := PCA(x, 2)
	if err != nil {
		t.Fatal(err)
	}

	if r, c := p.Scores.Dims(); r != 6 || c != 2 {
		t.Fatalf("Expected 6x2 scores, got %dx%d", r, c)
	}

	// The sign of a component is arbitrary, but the two clusters must fall on
	// opposite sides of zero along the first one.
	first := p.Scores.At(0, 0)
	for i := 0; i < 6; i++ {
		same := (p.Scores.At(i, 0) > 0) == (first > 0)
		if (i < 3) != same {
			t.Errorf("Observation %d is on the wrong side: %v", i, mat.Col(nil, 0, p.Scores))
		}
	}

	if p.Explained[0] < 0.95 {
		t.Errorf("Expected the first component to dominate, got %v", p.Explained)
	}
}

func TestPCARejects(t *testing.T) {
	if _, err := PCA(mat.NewDense(1, 3, nil), 1); err == nil {
		t.Errorf("Expected an error for a single observation")
	}
	if _, err := PCA(mat.NewDense(4, 3, nil), 4); err == nil {
		t.Errorf("Expected an error when keeping more components than columns")
	}
}

func warmHorses(s dataset.Subject, label uint8, pixel int) float64 {
	v := 20 + float64(label)*0.2 + float64(pixel%3)*0.1 + float64(s.Index)*0.05
	if s.Species == "H" {
		v += 3
	}
	return v
}

func TestExtract(t *testing.T) {
	indices := []int{1, 2, 3}
	dir := testutil.WriteDataset(t, testutil.Subjects([]dataset.Species{"H", "D"}, indices), warmHorses)
	agg := roi.NewAggregator(dataset.Dataset{Path: dir}, indices)

	f, err := Extract(agg, []dataset.Species{"H", "D"}, Mean, false)
	if err != nil {
		t.Fatal(err)
	}

	if r, c := f.X.Dims(); r != 6 || c != roi.NumRegions {
		t.Fatalf("Expected 6x%d features, got %dx%d", roi.NumRegions, r, c)
	}
	if f.Subjects[0] != (dataset.Subject{Species: "H", Index: 1}) || f.Subjects[3] != (dataset.Subject{Species: "D", Index: 1}) {
		t.Errorf("Unexpected subject order %v", f.Subjects)
	}
	if diff := f.X.At(0, 0) - f.X.At(3, 0); math.Abs(diff-3) > 1e-9 {
		t.Errorf("Expected horses to be 3 degrees warmer, got %v", diff)
	}

	// Normalising removes the species offset entirely
	n, err := Extract(agg, []dataset.Species{"H", "D"}, Mean, true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := n.X.At(0, 4) - n.X.At(3, 4); math.Abs(diff) > 1e-9 {
		t.Errorf("Expected normalised features to agree, got a difference of %v", diff)
	}

	// Spread does not depend on the offset
	s, err := Extract(agg, []dataset.Species{"H"}, Std, false)
	if err != nil {
		t.Fatal(err)
	}
	if v := s.X.At(0, 0); v <= 0 {
		t.Errorf("Expected a positive spread, got %v", v)
	}
}

func TestParseStatistic(t *testing.T) {
	for _, s := range Statistics {
		got, err := ParseStatistic(string(s))
		if err != nil || got != s {
			t.Errorf("%s: got %v, %v", s, got, err)
		}
	}
	if _, err := ParseStatistic("median"); err == nil {
		t.Errorf("Expected an error for an unsupported statistic")
	}
}
