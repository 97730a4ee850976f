package roi

import (
	"errors"
	"testing"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

// The temperature encodes the animal, the region and the pixel so that
// concatenation order can be checked.
func encoded(s dataset.Subject, label uint8, pixel int) float64 {
	return float64(s.Index)*1000 + float64(label)*10 + float64(pixel)/100
}

func TestExtractReturnsFifteenRegions(t *testing.T) {
	f := testutil.Frame(dataset.Subject{Species: "H", Index: 1}, encoded)
	rois := Extract(f)

	if len(rois) != NumRegions {
		t.Fatalf("Expected %d regions, got %d", NumRegions, len(rois))
	}

	for id := 1; id <= NumRegions; id++ {
		r := rois.Region(id)
		if len(r) != testutil.PixelsPerLabel {
			t.Errorf("Region %d: expected %d pixels, got %d", id, testutil.PixelsPerLabel, len(r))
		}
		for pixel, v := range r {
			if want := encoded(dataset.Subject{Index: 1}, uint8(id), pixel); v != want {
				t.Errorf("Region %d pixel %d: got %v, want %v", id, pixel, v, want)
			}
		}
	}
}

func TestExtractDegenerateRegion(t *testing.T) {
	f := &dataset.Frame{Name: "x", Rows: 1, Cols: 3, Values: []float64{1, 2, 3}, Labels: []uint8{0, 4, 4}}
	rois := Extract(f)

	if diff := cmp.Diff([]float64{2, 3}, rois.Region(4)); diff != "" {
		t.Errorf("Region 4 (-want +got):\n%s", diff)
	}
	if r := rois.Region(1); r == nil || len(r) != 0 {
		t.Errorf("Absent regions should be empty, got %v", r)
	}
}

func TestValidateGroup(t *testing.T) {
	for _, v := range []struct {
		IDs []int
		OK  bool
	}{
		{[]int{8, 9}, true},
		{[]int{1, 15}, true},
		{nil, false},
		{[]int{0}, false},
		{[]int{3, 16}, false},
	} {
		err := ValidateGroup(v.IDs)
		if (err == nil) != v.OK {
			t.Errorf("%v: expected ok=%v, got %v", v.IDs, v.OK, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("%v: expected ErrInvalidRegion, got %v", v.IDs, err)
		}
	}
}

func TestPerSubjectOrder(t *testing.T) {
	subjects := testutil.Subjects([]dataset.Species{"H"}, []int{1, 2})
	dir := testutil.WriteDataset(t, subjects, encoded)
	agg := NewAggregator(dataset.Dataset{Path: dir}, []int{1, 2})

	g, err := agg.PerSubject("H", []int{9, 8}, []int{2, 1})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{2, 1}, g.Indices); diff != "" {
		t.Errorf("Indices (-want +got):\n%s", diff)
	}

	two, err := g.Subject(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(two) != 2*testutil.PixelsPerLabel {
		t.Fatalf("Expected %d values, got %d", 2*testutil.PixelsPerLabel, len(two))
	}
	// Region 9 first, then region 8
	if two[0] != 2090 || two[testutil.PixelsPerLabel] != 2080 {
		t.Errorf("Unexpected region order: %v", two)
	}

	// Animal 2 first, then animal 1
	if len(g.Pooled) != 4*testutil.PixelsPerLabel || g.Pooled[0] != 2090 || g.Pooled[2*testutil.PixelsPerLabel] != 1090 {
		t.Errorf("Unexpected pooled order: %v", g.Pooled)
	}

	if _, err := g.Subject(3); err == nil {
		t.Errorf("Expected an error for an animal outside the sample")
	}
}

func TestPooledAndRegions(t *testing.T) {
	subjects := testutil.Subjects([]dataset.Species{"D"}, []int{1, 2, 3})
	dir := testutil.WriteDataset(t, subjects, encoded)
	agg := NewAggregator(dataset.Dataset{Path: dir}, []int{1, 2, 3})

	pooled, err := agg.Pooled("D", []int{8, 9})
	if err != nil {
		t.Fatal(err)
	}
	if len(pooled) != 3*2*testutil.PixelsPerLabel {
		t.Errorf("Expected %d pooled values, got %d", 3*2*testutil.PixelsPerLabel, len(pooled))
	}

	all, err := agg.AllRegions("D")
	if err != nil {
		t.Fatal(err)
	}
	single, err := agg.Region("D", 5)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(single, all.Region(5)); diff != "" {
		t.Errorf("Region and AllRegions disagree (-Region +AllRegions):\n%s", diff)
	}

	fg, err := agg.Region("D", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(fg) != 3*NumRegions*testutil.PixelsPerLabel {
		t.Errorf("Expected the whole foreground, got %d values", len(fg))
	}

	counts, err := agg.PixelCounts("D")
	if err != nil {
		t.Fatal(err)
	}
	if counts[2][14] != testutil.PixelsPerLabel {
		t.Errorf("Unexpected pixel counts %v", counts[2])
	}
}

func TestAggregatorErrors(t *testing.T) {
	dir := testutil.WriteDataset(t, testutil.Subjects([]dataset.Species{"H"}, []int{1}), encoded)
	agg := NewAggregator(dataset.Dataset{Path: dir}, []int{1, 2})

	if _, err := agg.Pooled("H", []int{8}); !errors.Is(err, dataset.ErrSubjectNotFound) {
		t.Errorf("Expected ErrSubjectNotFound for the missing animal, got %v", err)
	}

	if _, err := agg.PerSubject("H", []int{}, []int{1}); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("Expected ErrInvalidRegion for an empty group, got %v", err)
	}

	if _, err := agg.PerSubject("H", []int{1}, []int{1, 1}); err == nil {
		t.Errorf("Expected an error for a repeated animal")
	}
}
