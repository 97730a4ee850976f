// Package testutil builds small synthetic thermal datasets on disk so that
// packages can be tested end to end without the real archives.
package testutil

import (
	"testing"

	"github.com/carbocation/hdthermal/dataset"
)

// Rows and Cols are the shape of every synthetic frame. Each of the sixteen
// labels owns a block of two columns, so every label is present.
const (
	Rows = 6
	Cols = 2 * dataset.NumLabels
)

// TempFunc gives the temperature of the pixel-th pixel (counted within its
// label, row-major) of a label for a subject.
type TempFunc func(s dataset.Subject, label uint8, pixel int) float64

// Frame builds a synthetic frame for one subject.
func Frame(s dataset.Subject, temp TempFunc) *dataset.Frame {
	values := make([]float64, Rows*Cols)
	labels := make([]uint8, Rows*Cols)
	seen := make(map[uint8]int)

	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			i := r*Cols + c
			l := uint8(c / 2)
			labels[i] = l
			values[i] = temp(s, l, seen[l])
			seen[l]++
		}
	}

	return &dataset.Frame{Name: s.String(), Rows: Rows, Cols: Cols, Values: values, Labels: labels}
}

// PixelsPerLabel is how many pixels each label owns in a synthetic frame.
const PixelsPerLabel = 2 * Rows

// WriteDataset saves one synthetic frame per subject into a fresh temporary
// directory and returns that directory.
func WriteDataset(t testing.TB, subjects []dataset.Subject, temp TempFunc) string {
	t.Helper()

	dir := t.TempDir()
	ds := dataset.Dataset{Path: dir}
	for _, s := range subjects {
		if err := ds.Save(Frame(s, temp)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	return dir
}

// Subjects enumerates species x indices.
func Subjects(species []dataset.Species, indices []int) []dataset.Subject {
	out := make([]dataset.Subject, 0, len(species)*len(indices))
	for _, sp := range species {
		for _, i := range indices {
			out = append(out, dataset.Subject{Species: sp, Index: i})
		}
	}

	return out
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
