// Package dataset loads the per-animal thermal archives. Each archive holds a
// 2-D temperature grid ("data") and a same-shaped region label grid ("gt").
// Nothing is cached: every Load reads the archive afresh.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/hdthermal"
	"github.com/carbocation/hdthermal/archive"
	"github.com/carbocation/pfx"
)

const (
	ValuesArray = "data"
	LabelsArray = "gt"
)

// Dataset is a directory (local, or gs://bucket/prefix) laid out as
// <Path>/data/da_<name>.npz.
type Dataset struct {
	Path string

	// Storage is only needed when Path is a gs:// path.
	Storage *storage.Client
}

// ArchivePath is where the archive for the named subject is expected.
func (d Dataset) ArchivePath(name string) string {
	file := fmt.Sprintf("da_%s.npz", name)
	if hdthermal.IsGoogleStoragePath(d.Path) {
		return d.Path + "/" + path.Join("data", file)
	}

	return filepath.Join(d.Path, "data", file)
}

// Load reads one subject. A subject without an archive yields an error
// wrapping ErrSubjectNotFound.
func (d Dataset) Load(species Species, index int) (*Frame, error) {
	return d.LoadName(SubjectName(species, index))
}

func (d Dataset) LoadName(name string) (*Frame, error) {
	r, err := archive.Open(d.ArchivePath(name), d.Storage)
	if errors.Is(err, hdthermal.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrSubjectNotFound)
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	values, vShape, err := r.Float64(ValuesArray)
	if err != nil {
		return nil, pfx.Err(err)
	}

	labels, lShape, err := r.Int64(LabelsArray)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(vShape) != 2 {
		return nil, fmt.Errorf("%s: thermal grid has shape %v, expected 2 dimensions", name, vShape)
	}
	if len(lShape) != 2 || lShape[0] != vShape[0] || lShape[1] != vShape[1] {
		return nil, fmt.Errorf("%s: label grid shape %v does not match thermal grid shape %v", name, lShape, vShape)
	}

	small := make([]uint8, len(labels))
	for i, l := range labels {
		if l < 0 || l >= NumLabels {
			return nil, fmt.Errorf("%s: label %d at pixel %d is outside 0..%d", name, l, i, NumLabels-1)
		}
		small[i] = uint8(l)
	}

	return NewFrame(name, vShape[0], vShape[1], values, small)
}

// Save writes a frame in the same layout Load expects. It is used to build
// derived or synthetic datasets.
func (d Dataset) Save(f *Frame) error {
	if hdthermal.IsGoogleStoragePath(d.Path) {
		return fmt.Errorf("%s: saving to Google Storage is not supported", d.Path)
	}

	if err := os.MkdirAll(filepath.Join(d.Path, "data"), 0755); err != nil {
		return pfx.Err(err)
	}

	w, err := archive.Create(d.ArchivePath(f.Name))
	if err != nil {
		return err
	}

	if err := w.Write(ValuesArray, []int{f.Rows, f.Cols}, f.Values); err != nil {
		w.Close()
		return err
	}
	if err := w.Write(LabelsArray, []int{f.Rows, f.Cols}, f.Labels); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}
