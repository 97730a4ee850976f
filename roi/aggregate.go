package roi

import (
	"fmt"

	"github.com/carbocation/hdthermal/dataset"
)

// Loader is the part of dataset.Dataset that the aggregator needs.
type Loader interface {
	Load(species dataset.Species, index int) (*dataset.Frame, error)
}

// Aggregator pools regions across the animals of a species. Every call reads
// the frames again; nothing is cached.
type Aggregator struct {
	Data Loader

	// Indices are the animals pooled by Pooled, Region, AllRegions and
	// AllForeground.
	Indices []int
}

func NewAggregator(data Loader, indices []int) *Aggregator {
	return &Aggregator{Data: data, Indices: append([]int(nil), indices...)}
}

// GroupSample is a group of regions aggregated per animal, plus the
// concatenation over all animals.
type GroupSample struct {
	// Indices preserves the animal order used to build Pooled.
	Indices    []int
	PerSubject map[int][]float64
	Pooled     []float64
}

// Subject returns one animal's aggregate.
func (g GroupSample) Subject(index int) ([]float64, error) {
	v, ok := g.PerSubject[index]
	if !ok {
		return nil, fmt.Errorf("animal %d is not part of this sample (have %v)", index, g.Indices)
	}

	return v, nil
}

// Regions extracts the regions of one animal.
func (a *Aggregator) Regions(species dataset.Species, index int) (*Regions, error) {
	f, err := a.Data.Load(species, index)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dataset.SubjectName(species, index), err)
	}

	return Extract(f), nil
}

// PerSubject aggregates the requested regions for each listed animal: first
// all regions of one animal in the order given, then the next animal.
func (a *Aggregator) PerSubject(species dataset.Species, ids []int, indices []int) (GroupSample, error) {
	out := GroupSample{
		Indices:    append([]int(nil), indices...),
		PerSubject: make(map[int][]float64, len(indices)),
	}

	if err := ValidateGroup(ids); err != nil {
		return out, err
	}
	if len(indices) == 0 {
		return out, fmt.Errorf("no animals requested for species %s", species)
	}

	for _, idx := range indices {
		if _, dup := out.PerSubject[idx]; dup {
			return out, fmt.Errorf("animal %d is listed twice", idx)
		}

		rois, err := a.Regions(species, idx)
		if err != nil {
			return out, err
		}

		v, err := rois.Gather(ids)
		if err != nil {
			return out, err
		}

		out.PerSubject[idx] = v
		out.Pooled = append(out.Pooled, v...)
	}

	return out, nil
}

// Pooled concatenates the requested regions over every configured animal of
// a species.
func (a *Aggregator) Pooled(species dataset.Species, ids []int) ([]float64, error) {
	g, err := a.PerSubject(species, ids, a.Indices)
	if err != nil {
		return nil, err
	}

	return g.Pooled, nil
}

// Region pools a single region over every configured animal. ID 0 selects
// the whole foreground.
func (a *Aggregator) Region(species dataset.Species, id int) ([]float64, error) {
	if id == 0 {
		return a.AllForeground(species)
	}

	return a.Pooled(species, []int{id})
}

// AllRegions pools each region separately over every configured animal.
// out[0] is region 1. Each frame is read only once.
func (a *Aggregator) AllRegions(species dataset.Species) (*Regions, error) {
	if len(a.Indices) == 0 {
		return nil, fmt.Errorf("no animals configured for species %s", species)
	}

	out := new(Regions)
	for _, idx := range a.Indices {
		rois, err := a.Regions(species, idx)
		if err != nil {
			return nil, err
		}

		for i := range out {
			out[i] = append(out[i], rois[i]...)
		}
	}

	return out, nil
}

// AllForeground pools every labelled pixel over every configured animal.
func (a *Aggregator) AllForeground(species dataset.Species) ([]float64, error) {
	if len(a.Indices) == 0 {
		return nil, fmt.Errorf("no animals configured for species %s", species)
	}

	var out []float64
	for _, idx := range a.Indices {
		f, err := a.Data.Load(species, idx)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", dataset.SubjectName(species, idx), err)
		}
		out = append(out, f.Foreground()...)
	}

	return out, nil
}

// PixelCounts returns, for each configured animal, the number of pixels in
// each region.
func (a *Aggregator) PixelCounts(species dataset.Species) (map[int][NumRegions]int, error) {
	out := make(map[int][NumRegions]int, len(a.Indices))
	for _, idx := range a.Indices {
		rois, err := a.Regions(species, idx)
		if err != nil {
			return nil, err
		}

		var counts [NumRegions]int
		for i, r := range rois {
			counts[i] = len(r)
		}
		out[idx] = counts
	}

	return out, nil
}
