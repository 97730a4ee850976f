package testutil

import (
	"testing"

	"github.com/carbocation/hdthermal/dataset"
)

func TestFrameHasEveryLabel(t *testing.T) {
	f := Frame(dataset.Subject{Species: "H", Index: 1}, func(s dataset.Subject, l uint8, p int) float64 {
		return float64(l)
	})

	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}

	counts := make(map[uint8]int)
	for i, l := range f.Labels {
		counts[l]++
		if f.Values[i] != float64(l) {
			t.Errorf("pixel %d: value %v does not match label %d", i, f.Values[i], l)
		}
	}
	for l, n := range counts {
		if n != PixelsPerLabel {
			t.Errorf("label %d owns %d pixels, want %d", l, n, PixelsPerLabel)
		}
	}
}

func TestWriteDataset(t *testing.T) {
	subjects := Subjects([]dataset.Species{"H", "D"}, []int{1, 2})
	if len(subjects) != 4 {
		t.Fatalf("expected 4 subjects, got %d", len(subjects))
	}

	dir := WriteDataset(t, subjects, func(s dataset.Subject, l uint8, p int) float64 { return 20 })

	ds := dataset.Dataset{Path: dir}
	for _, s := range subjects {
		f, err := ds.Load(s.Species, s.Index)
		AssertNoError(t, err)
		if f.Name != s.String() {
			t.Errorf("loaded %s, want %s", f.Name, s)
		}
	}
}
