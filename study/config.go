// Package study holds the configuration shared by every analysis: which
// species and animals to load, how the fifteen regions are grouped, and the
// significance threshold. Nothing here is global; commands build a Config and
// hand it down.
package study

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/storage"
	"github.com/carbocation/hdthermal"
	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/overlay"
	"github.com/carbocation/hdthermal/ranksum"
)

// NumRegions is the number of annotated anatomical regions (ROIs).
const NumRegions = 15

// Group is a group of regions (GOR): a named union of ROIs analysed as one
// unit.
type Group struct {
	Name    string `json:"name"`
	Short   string `json:"short"`
	Regions []int  `json:"regions"`
}

// Validate fails if the group is empty or references a region outside
// 1..15.
func (g Group) Validate() error {
	if len(g.Regions) == 0 {
		return fmt.Errorf("group %q has no regions", g.Name)
	}
	for _, r := range g.Regions {
		if r < 1 || r > NumRegions {
			return fmt.Errorf("group %q: region %d is outside 1..%d", g.Name, r, NumRegions)
		}
	}

	return nil
}

// SpeciesInfo describes one of the compared categories.
type SpeciesInfo struct {
	Tag   dataset.Species `json:"tag"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
}

type Config struct {
	ConfigPath string `json:"-"`

	// DatasetPath is the dataset root (local or gs://), which contains
	// data/da_<name>.npz.
	DatasetPath string `json:"dataset_path"`

	// PatternPath is the folder pattern matrix archives are written to and
	// read from.
	PatternPath string `json:"pattern_path"`

	// OutputPath is the folder figures are written to.
	OutputPath string `json:"output_path"`

	// Species are compared in order: the first is "A", the second "B".
	Species []SpeciesInfo `json:"species"`

	// Indices are the animals of every species included in the analyses.
	Indices []int `json:"indices"`

	// AnomalousIndices are additional animals, per species, that are only
	// analysed individually as outliers.
	AnomalousIndices map[dataset.Species][]int `json:"anomalous_indices"`

	// Groups is the ordered list of GORs. The order defines matrix rows and
	// columns.
	Groups []Group `json:"groups"`

	Labels overlay.LabelMap `json:"labels"`

	// P is the significance threshold for the rank-sum tests.
	P float64 `json:"p"`

	// Seed fixes the random subsampling of the rank-sum tests. Zero means
	// seed from the clock.
	Seed int64 `json:"seed"`

	// TemperatureBand is the plausible range for the mean of any region.
	TemperatureBand [2]float64 `json:"temperature_band"`

	// HeatmapRange is the fixed color scale for subject heatmaps.
	HeatmapRange [2]float64 `json:"heatmap_range"`

	// CutBox frames the animal in heatmaps and region maps as
	// [row0, row1, col0, col1], end exclusive.
	CutBox [4]int `json:"cut_box"`

	// SubsampleMode is "random" or "positional". See ranksum.ParseMode.
	SubsampleMode string `json:"subsample_mode"`
}

// Default reproduces the setup of the horse/donkey study.
func Default() Config {
	return Config{
		DatasetPath: "hdthermal_dataset",
		PatternPath: ".",
		OutputPath:  "fig",
		Species: []SpeciesInfo{
			{Tag: "H", Name: "Horses", Color: "#DC3220"},
			{Tag: "D", Name: "Donkeys", Color: "#005AB5"},
		},
		Indices: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		AnomalousIndices: map[dataset.Species][]int{
			"D": {17, 18},
		},
		Groups: []Group{
			{Name: "Neck", Short: "Neck", Regions: []int{1, 2, 3}},
			{Name: "Frontquarter", Short: "Front.", Regions: []int{1, 2, 3, 4, 14, 15}},
			{Name: "Trunk", Short: "Trunk", Regions: []int{5, 11}},
			{Name: "Hindquarter", Short: "Hind.", Regions: []int{6, 7, 8, 9, 10}},
			{Name: "Rump", Short: "Rump", Regions: []int{8, 9}},
			{Name: "Dorsal aspect", Short: "Dors.", Regions: []int{3, 4, 5, 6}},
			{Name: "Ventral aspect", Short: "Vent.", Regions: []int{9, 10, 11, 12, 13}},
			{Name: "Abdomen", Short: "Abdom.", Regions: []int{11}},
			{Name: "Groins", Short: "Groins", Regions: []int{10, 12}},
			{Name: "Legs", Short: "Legs", Regions: []int{9, 13}},
		},
		Labels:          overlay.DefaultRegions(),
		P:               0.001,
		TemperatureBand: [2]float64{10, 35},
		HeatmapRange:    [2]float64{8.80, 30.65},
		CutBox:          [4]int{20, 201, 52, 300},
		SubsampleMode:   ranksum.RandomSubsample.String(),
	}
}

// Validate checks the configuration before any data is touched.
func (c Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("dataset_path is required")
	}
	if len(c.Species) != 2 {
		return fmt.Errorf("exactly two species are compared, got %d", len(c.Species))
	}
	if c.Species[0].Tag == "" || c.Species[1].Tag == "" || c.Species[0].Tag == c.Species[1].Tag {
		return fmt.Errorf("species tags must be distinct and non-empty: %+v", c.Species)
	}
	if len(c.Indices) == 0 {
		return fmt.Errorf("no animal indices configured")
	}
	seen := make(map[int]struct{}, len(c.Indices))
	for _, i := range c.Indices {
		if i < 1 {
			return fmt.Errorf("animal index %d must be positive", i)
		}
		if _, dup := seen[i]; dup {
			return fmt.Errorf("animal index %d is listed twice", i)
		}
		seen[i] = struct{}{}
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("no region groups configured")
	}
	for _, g := range c.Groups {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	if !(c.P > 0 && c.P < 1) {
		return fmt.Errorf("significance threshold p=%v must be in (0, 1)", c.P)
	}
	if b := c.CutBox; b[0] < 0 || b[2] < 0 || b[1] <= b[0] || b[3] <= b[2] {
		return fmt.Errorf("cut_box %v must be [row0, row1, col0, col1] with row0 < row1 and col0 < col1", b)
	}
	if _, err := ranksum.ParseMode(c.SubsampleMode); err != nil {
		return err
	}
	if c.Labels != nil && !c.Labels.Valid() {
		return fmt.Errorf("label map is not bijective")
	}

	return nil
}

// HasSpecies reports whether tag is one of the configured species.
func (c Config) HasSpecies(tag dataset.Species) bool {
	for _, s := range c.Species {
		if s.Tag == tag {
			return true
		}
	}
	return false
}

// SpeciesByTag returns the description of a configured species.
func (c Config) SpeciesByTag(tag dataset.Species) (SpeciesInfo, error) {
	for _, s := range c.Species {
		if s.Tag == tag {
			return s, nil
		}
	}

	return SpeciesInfo{}, fmt.Errorf("species %q is not configured (have %v)", tag, c.Tags())
}

// Tags lists the species tags in comparison order.
func (c Config) Tags() []dataset.Species {
	out := make([]dataset.Species, 0, len(c.Species))
	for _, s := range c.Species {
		out = append(out, s.Tag)
	}
	return out
}

// GroupLabels returns the short group names in matrix order.
func (c Config) GroupLabels() []string {
	out := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		out = append(out, g.Short)
	}
	return out
}

// Anomalous returns the sorted outlier indices configured for a species.
func (c Config) Anomalous(tag dataset.Species) []int {
	out := append([]int(nil), c.AnomalousIndices[tag]...)
	sort.Ints(out)
	return out
}

// Dataset is the accessor for the configured dataset. client may be nil for
// local datasets.
func (c Config) Dataset(client *storage.Client) dataset.Dataset {
	return dataset.Dataset{Path: c.DatasetPath, Storage: client}
}

// Tester builds the rank-sum tester for the configured threshold, seed and
// subsampling mode.
func (c Config) Tester() (*ranksum.Tester, error) {
	mode, err := ranksum.ParseMode(c.SubsampleMode)
	if err != nil {
		return nil, err
	}

	t := ranksum.NewTester(c.P, c.Seed)
	t.Mode = mode
	return t, nil
}

// OpenDataset returns the dataset accessor, creating a Google Storage client
// when the dataset lives in a bucket.
func (c Config) OpenDataset(ctx context.Context) (dataset.Dataset, error) {
	var client *storage.Client
	if hdthermal.IsGoogleStoragePath(c.DatasetPath) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return dataset.Dataset{}, err
		}
	}

	return c.Dataset(client), nil
}

// Subjects lists every configured animal of a species, the anomalous ones
// last.
func (c Config) Subjects(tag dataset.Species) []int {
	out := append([]int(nil), c.Indices...)
	return append(out, c.Anomalous(tag)...)
}
