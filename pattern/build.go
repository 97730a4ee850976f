package pattern

import (
	"fmt"
	"time"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/ranksum"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func groupSamples(agg *roi.Aggregator, species dataset.Species, groups []study.Group, indices []int) ([]roi.GroupSample, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no region groups to compare")
	}

	out := make([]roi.GroupSample, 0, len(groups))
	for _, g := range groups {
		s, err := agg.PerSubject(species, g.Regions, indices)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", g.Name, err)
		}
		out = append(out, s)
	}

	return out, nil
}

func shortLabels(groups []study.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Short)
	}
	return out
}

// Build computes the pattern matrices of a species. For each ordered pair of
// groups (r, c) the direction of the test follows the sign of the difference
// of pooled means. The same direction is then tested within each animal.
func Build(agg *roi.Aggregator, tester *ranksum.Tester, species dataset.Species, groups []study.Group, indices []int) (*Matrices, error) {
	started := time.Now()

	samples, err := groupSamples(agg, species, groups, indices)
	if err != nil {
		return nil, err
	}

	n := len(groups)
	m := newMatrices(n, len(indices))
	m.Species = string(species)
	m.Labels = shortLabels(groups)
	m.Subjects = append([]int(nil), indices...)

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			delta := stat.Mean(samples[r].Pooled, nil) - stat.Mean(samples[c].Pooled, nil)
			alt := ranksum.Direction(delta)
			m.Deltas[r][c] = delta

			sig, err := tester.Significant(samples[r].Pooled, samples[c].Pooled, alt)
			if err != nil {
				return nil, fmt.Errorf("%s vs %s: %w", groups[r].Name, groups[c].Name, err)
			}
			m.Global[r][c] = boolToInt32(sig)

			for k, idx := range indices {
				sig, err := tester.Significant(samples[r].PerSubject[idx], samples[c].PerSubject[idx], alt)
				if err != nil {
					return nil, fmt.Errorf("%s vs %s for %s: %w", groups[r].Name, groups[c].Name, dataset.SubjectName(species, idx), err)
				}
				m.Local[r][c][k] = boolToInt32(sig)
			}
		}

		log.WithFields(log.Fields{
			"species": species,
			"group":   groups[r].Name,
		}).Debugln("Compared group against all others")
	}

	log.WithFields(log.Fields{
		"species": species,
		"groups":  n,
		"animals": len(indices),
	}).Infof("Built pattern matrices in %.2f seconds", time.Since(started).Seconds())

	return m, nil
}

// BuildSubject computes the pattern of a single animal, for animals that are
// analysed apart from their species. Only deltas and global flags are
// produced.
func BuildSubject(agg *roi.Aggregator, tester *ranksum.Tester, species dataset.Species, groups []study.Group, index int) (*Matrices, error) {
	samples, err := groupSamples(agg, species, groups, []int{index})
	if err != nil {
		return nil, err
	}

	n := len(groups)
	m := newMatrices(n, 0)
	m.Species = string(species)
	m.Labels = shortLabels(groups)
	m.Subjects = []int{index}

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			delta := stat.Mean(samples[r].Pooled, nil) - stat.Mean(samples[c].Pooled, nil)
			m.Deltas[r][c] = delta

			sig, err := tester.Significant(samples[r].Pooled, samples[c].Pooled, ranksum.Direction(delta))
			if err != nil {
				return nil, fmt.Errorf("%s vs %s for %s: %w", groups[r].Name, groups[c].Name, dataset.SubjectName(species, index), err)
			}
			m.Global[r][c] = boolToInt32(sig)
		}
	}

	log.WithFields(log.Fields{
		"animal": dataset.SubjectName(species, index),
		"groups": n,
	}).Infoln("Built single-animal pattern matrices")

	return m, nil
}
