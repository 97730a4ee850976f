package pattern

import (
	"fmt"

	"github.com/carbocation/hdthermal/archive"
	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/pfx"
)

// Array names inside a pattern archive.
const (
	DeltasArray = "deltas"
	GlobalArray = "s_global"
	LocalArray  = "s_local"
)

// FileName is the archive name of a species' pattern matrices.
func FileName(species dataset.Species) string {
	return fmt.Sprintf("pattern_matrices_%s.npz", species)
}

// SubjectFileName is the archive name of a single animal's pattern matrices.
func SubjectFileName(species dataset.Species, index int) string {
	return fmt.Sprintf("pattern_matrices_%s_spec_%d.npz", species, index)
}

// Save writes deltas as float64, and the flags as int32, to a compressed
// archive. s_local is omitted when m has no local flags.
func Save(path string, m *Matrices) error {
	if err := m.Validate(); err != nil {
		return err
	}

	n := m.N()
	deltas := make([]float64, 0, n*n)
	global := make([]int32, 0, n*n)
	for r := 0; r < n; r++ {
		deltas = append(deltas, m.Deltas[r]...)
		global = append(global, m.Global[r]...)
	}

	w, err := archive.Create(path)
	if err != nil {
		return err
	}

	if err := w.Write(DeltasArray, []int{n, n}, deltas); err != nil {
		w.Close()
		return err
	}
	if err := w.Write(GlobalArray, []int{n, n}, global); err != nil {
		w.Close()
		return err
	}

	if m.Local != nil {
		s := len(m.Subjects)
		local := make([]int32, 0, n*n*s)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				local = append(local, m.Local[r][c]...)
			}
		}
		if err := w.Write(LocalArray, []int{n, n, s}, local); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

// Load reads an archive written by Save (or by numpy with the same array
// names). The archive does not record group labels or animal indices: Labels
// is left nil and Subjects is numbered 1..S.
func Load(path string) (*Matrices, error) {
	r, err := archive.Open(path, nil)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	deltas, shape, err := r.Float64(DeltasArray)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(shape) != 2 || shape[0] != shape[1] {
		return nil, fmt.Errorf("%s: %s has shape %v, expected a square matrix", path, DeltasArray, shape)
	}
	n := shape[0]

	global, gShape, err := r.Int32(GlobalArray)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(gShape) != 2 || gShape[0] != n || gShape[1] != n {
		return nil, fmt.Errorf("%s: %s has shape %v, expected %dx%d", path, GlobalArray, gShape, n, n)
	}

	subjects := 0
	var local []int32
	if r.Has(LocalArray) {
		var lShape []int
		local, lShape, err = r.Int32(LocalArray)
		if err != nil {
			return nil, pfx.Err(err)
		}
		if len(lShape) != 3 || lShape[0] != n || lShape[1] != n || lShape[2] < 1 {
			return nil, fmt.Errorf("%s: %s has shape %v, expected %dx%dxS", path, LocalArray, lShape, n, n)
		}
		subjects = lShape[2]
	}

	m := newMatrices(n, subjects)
	for row := 0; row < n; row++ {
		copy(m.Deltas[row], deltas[row*n:(row+1)*n])
		copy(m.Global[row], global[row*n:(row+1)*n])
		for c := 0; c < n && subjects > 0; c++ {
			off := (row*n + c) * subjects
			copy(m.Local[row][c], local[off:off+subjects])
		}
	}

	for k := 1; k <= subjects; k++ {
		m.Subjects = append(m.Subjects, k)
	}

	return m, nil
}
