package overlay

import (
	"fmt"
	"image"
	"image/color"
	"sort"
)

// A Label tracks the region ID with the human-identifiable Label and
// human-interpretable color (in RGB hex, e.g., #FF0000 for red).
type Label struct {
	Label     string `json:"-"`
	ID        uint   `json:"id"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// LabelMap ([string label name]Label) keeps track of the relationship between
// human-visible colors and the integer region ID stored in the label grid.
type LabelMap map[string]Label

// DefaultRegions names the fifteen annotated regions of the thermal dataset
// by their ID, with a nipy_spectral-like color ramp so that neighbouring IDs
// remain distinguishable.
func DefaultRegions() LabelMap {
	colors := []string{
		"#000000",
		"#7d008d", "#8500a4", "#0000bb", "#0000dd", "#0077dd",
		"#0099dd", "#00aaa4", "#00aa88", "#00a300", "#00cc00",
		"#00f000", "#ccf900", "#ffcc00", "#ff3800", "#dd0000",
	}

	out := make(LabelMap, len(colors))
	out["Background"] = Label{ID: 0, Color: colors[0]}
	for id := 1; id < len(colors); id++ {
		out[fmt.Sprintf("ROI %d", id)] = Label{ID: uint(id), Color: colors[id]}
	}

	return out
}

// ByID inverts the map. Labels carry their name in the Label field.
func (l LabelMap) ByID() map[uint]Label {
	out := make(map[uint]Label, len(l))
	for k, v := range l {
		v.Label = k
		out[v.ID] = v
	}

	return out
}

// Colorize paints a row-major label grid with the colors from the label map.
// The background (ID 0) is transparent.
func (l LabelMap) Colorize(labels []uint8, rows, cols int) (image.Image, error) {
	if len(labels) != rows*cols {
		return nil, fmt.Errorf("%d labels for a %dx%d grid", len(labels), rows, cols)
	}

	byID := l.ByID()
	palette := make(map[uint8]color.Color)
	for id, lab := range byID {
		if id > 255 {
			return nil, fmt.Errorf("Label ID %d (%s) cannot be stored in a label grid", id, lab.Label)
		}
		c, err := ColorFromCode(lab.Color)
		if err != nil {
			return nil, fmt.Errorf("Label ID %d (%s): %w", id, lab.Label, err)
		}
		palette[uint8(id)] = c
	}

	outputImage := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for i, id := range labels {
		if id == 0 {
			continue
		}

		c, exists := palette[id]
		if !exists {
			return nil, fmt.Errorf("Saw label %d but could not find this ID in the label map", id)
		}
		outputImage.Set(i%cols, i/cols, c)
	}

	return outputImage, nil
}

// Valid ensures that the LabelMap is valid by testing that it is bijective and
// that every ID fits in a label grid.
func (l LabelMap) Valid() bool {
	inverse := make(map[uint]string)
	for k, v := range l {
		if v.ID > 255 {
			return false
		}
		inverse[v.ID] = k
	}

	// Bijective?
	return len(l) == len(inverse)
}

func (l LabelMap) Sorted() []Label {
	out := make([]Label, 0, len(l))

	for k, v := range l {
		v.Label = k
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		// If SortOrder is defined and different, use it:
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}

		// If SortOrder is not defined, or is the same for two values, drop down
		// to the ID field for sorting
		return out[i].ID < out[j].ID
	})

	return out
}
