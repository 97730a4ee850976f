// Package pattern builds thermal pattern matrices: for every ordered pair of
// region groups, the difference of mean temperature and whether that
// difference is significant for the species as a whole and for each animal.
package pattern

import (
	"fmt"
)

// Matrices is the thermal pattern of one species (or one animal). Rows and
// columns follow the order of the region groups.
type Matrices struct {
	Species string
	Labels  []string

	// Subjects lists the animal indices in the order of the third axis of
	// Local.
	Subjects []int

	// Deltas[r][c] is mean(group r) - mean(group c).
	Deltas [][]float64

	// Global[r][c] is 1 when the pooled samples of groups r and c differ
	// significantly in the direction of Deltas[r][c].
	Global [][]int32

	// Local[r][c][k] is 1 when the same test is significant using only
	// animal Subjects[k]. Nil for single-animal matrices.
	Local [][][]int32
}

// N is the number of region groups.
func (m *Matrices) N() int {
	return len(m.Deltas)
}

func newMatrices(n, subjects int) *Matrices {
	m := &Matrices{
		Deltas: make([][]float64, n),
		Global: make([][]int32, n),
	}
	for r := 0; r < n; r++ {
		m.Deltas[r] = make([]float64, n)
		m.Global[r] = make([]int32, n)
	}

	if subjects > 0 {
		m.Local = make([][][]int32, n)
		for r := 0; r < n; r++ {
			m.Local[r] = make([][]int32, n)
			for c := 0; c < n; c++ {
				m.Local[r][c] = make([]int32, subjects)
			}
		}
	}

	return m
}

// Validate checks that every matrix is square and that the three agree on
// their size.
func (m *Matrices) Validate() error {
	n := len(m.Deltas)
	if n == 0 {
		return fmt.Errorf("empty pattern matrix")
	}
	if len(m.Global) != n {
		return fmt.Errorf("deltas are %dx%d but global flags have %d rows", n, n, len(m.Global))
	}
	if m.Labels != nil && len(m.Labels) != n {
		return fmt.Errorf("%d labels for %d groups", len(m.Labels), n)
	}

	for r := 0; r < n; r++ {
		if len(m.Deltas[r]) != n || len(m.Global[r]) != n {
			return fmt.Errorf("row %d is not of length %d", r, n)
		}
	}

	if m.Local == nil {
		return nil
	}

	if len(m.Local) != n {
		return fmt.Errorf("local flags have %d rows, expected %d", len(m.Local), n)
	}
	for r := 0; r < n; r++ {
		if len(m.Local[r]) != n {
			return fmt.Errorf("local flags row %d is not of length %d", r, n)
		}
		for c := 0; c < n; c++ {
			if len(m.Local[r][c]) != len(m.Subjects) {
				return fmt.Errorf("local flags at (%d,%d) cover %d animals, expected %d", r, c, len(m.Local[r][c]), len(m.Subjects))
			}
		}
	}

	return nil
}

// LocalCounts sums the local flags over animals: how many animals replicate
// each pairwise comparison on their own.
func LocalCounts(m *Matrices) [][]int32 {
	out := make([][]int32, m.N())
	for r := range out {
		out[r] = make([]int32, m.N())
		if m.Local == nil {
			continue
		}
		for c := range out[r] {
			for _, v := range m.Local[r][c] {
				out[r][c] += v
			}
		}
	}

	return out
}
