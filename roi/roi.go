// Package roi splits thermal frames into their fifteen anatomical regions and
// pools regions across animals.
package roi

import (
	"errors"
	"fmt"

	"github.com/carbocation/hdthermal/dataset"
)

// NumRegions is the number of anatomical regions. Region IDs are 1-based.
const NumRegions = dataset.NumLabels - 1

// ErrInvalidRegion is returned when a region ID is outside 1..NumRegions or a
// group of regions is empty.
var ErrInvalidRegion = errors.New("invalid region")

// Regions holds the thermal values of each region of one frame, in row-major
// order. Regions[0] is region 1.
type Regions [NumRegions][]float64

// Region returns the values of one region by its 1-based ID. It panics on an
// invalid ID; use ValidRegion first when the ID comes from a user.
func (r *Regions) Region(id int) []float64 {
	return r[id-1]
}

// Gather concatenates the requested regions, in the order given.
func (r *Regions) Gather(ids []int) ([]float64, error) {
	if err := ValidateGroup(ids); err != nil {
		return nil, err
	}

	n := 0
	for _, id := range ids {
		n += len(r.Region(id))
	}

	out := make([]float64, 0, n)
	for _, id := range ids {
		out = append(out, r.Region(id)...)
	}

	return out, nil
}

// Extract assigns every labelled pixel to its region. Background pixels are
// dropped. A region that is absent from the frame yields an empty, non-nil
// slice.
func Extract(f *dataset.Frame) *Regions {
	var counts [NumRegions]int
	for _, l := range f.Labels {
		if l != dataset.Background && int(l) <= NumRegions {
			counts[l-1]++
		}
	}

	out := new(Regions)
	for i := range out {
		out[i] = make([]float64, 0, counts[i])
	}

	for i, l := range f.Labels {
		if l == dataset.Background || int(l) > NumRegions {
			continue
		}
		out[l-1] = append(out[l-1], f.Values[i])
	}

	return out
}

// ValidRegion checks that id names one of the fifteen regions.
func ValidRegion(id int) error {
	if id < 1 || id > NumRegions {
		return fmt.Errorf("region %d is outside 1..%d: %w", id, NumRegions, ErrInvalidRegion)
	}

	return nil
}

// ValidateGroup checks that a group of regions is non-empty and only names
// valid regions.
func ValidateGroup(ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("empty group of regions: %w", ErrInvalidRegion)
	}

	for _, id := range ids {
		if err := ValidRegion(id); err != nil {
			return err
		}
	}

	return nil
}
