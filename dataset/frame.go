package dataset

import (
	"fmt"
)

// Frame is one subject's thermal image: a grid of temperatures and a
// same-shaped grid of region labels, both stored row-major.
type Frame struct {
	Name   string
	Rows   int
	Cols   int
	Values []float64
	Labels []uint8
}

// NewFrame checks that values and labels agree with the declared shape.
func NewFrame(name string, rows, cols int, values []float64, labels []uint8) (*Frame, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: invalid shape %dx%d", name, rows, cols)
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%s: %d thermal values for a %dx%d grid", name, len(values), rows, cols)
	}
	if len(labels) != rows*cols {
		return nil, fmt.Errorf("%s: %d labels for a %dx%d grid", name, len(labels), rows, cols)
	}
	for i, l := range labels {
		if l >= NumLabels {
			return nil, fmt.Errorf("%s: label %d at pixel %d is outside 0..%d", name, l, i, NumLabels-1)
		}
	}

	return &Frame{Name: name, Rows: rows, Cols: cols, Values: values, Labels: labels}, nil
}

func (f *Frame) At(row, col int) (value float64, label uint8) {
	i := row*f.Cols + col
	return f.Values[i], f.Labels[i]
}

// Validate checks that the label grid uses every label 0..15 and nothing
// else.
func (f *Frame) Validate() error {
	var seen [NumLabels]bool
	for _, l := range f.Labels {
		if int(l) >= NumLabels {
			return fmt.Errorf("%s: label %d is outside 0..%d", f.Name, l, NumLabels-1)
		}
		seen[l] = true
	}

	missing := make([]int, 0)
	for l, ok := range seen {
		if !ok {
			missing = append(missing, l)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: labels %v never appear", f.Name, missing)
	}

	return nil
}

// Crop returns the rectangle [row0,row1) x [col0,col1) as a new frame.
func (f *Frame) Crop(row0, row1, col0, col1 int) (*Frame, error) {
	if row0 < 0 || col0 < 0 || row1 > f.Rows || col1 > f.Cols || row0 >= row1 || col0 >= col1 {
		return nil, fmt.Errorf("%s: cut box [%d:%d,%d:%d] does not fit a %dx%d frame", f.Name, row0, row1, col0, col1, f.Rows, f.Cols)
	}

	rows, cols := row1-row0, col1-col0
	out := &Frame{
		Name:   f.Name,
		Rows:   rows,
		Cols:   cols,
		Values: make([]float64, 0, rows*cols),
		Labels: make([]uint8, 0, rows*cols),
	}
	for r := row0; r < row1; r++ {
		out.Values = append(out.Values, f.Values[r*f.Cols+col0:r*f.Cols+col1]...)
		out.Labels = append(out.Labels, f.Labels[r*f.Cols+col0:r*f.Cols+col1]...)
	}

	return out, nil
}

// Foreground returns the thermal values of every labelled (non-background)
// pixel, in row-major order.
func (f *Frame) Foreground() []float64 {
	out := make([]float64, 0, len(f.Values))
	for i, l := range f.Labels {
		if l != Background {
			out = append(out, f.Values[i])
		}
	}

	return out
}
