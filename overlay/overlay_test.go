package overlay

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegionsValid(t *testing.T) {
	l := DefaultRegions()
	if !l.Valid() {
		t.Fatalf("Default label map is not bijective")
	}
	if len(l) != 16 {
		t.Fatalf("Expected 16 labels (background + 15 regions), got %d", len(l))
	}

	sorted := l.Sorted()
	for i, v := range sorted {
		if v.ID != uint(i) {
			t.Errorf("Position %d holds ID %d", i, v.ID)
		}
	}
}

func TestColorize(t *testing.T) {
	l := LabelMap{
		"Background": {ID: 0, Color: ""},
		"Neck":       {ID: 1, Color: "#FF0000"},
		"Rump":       {ID: 2, Color: "#00ff00"},
	}

	img, err := l.Colorize([]uint8{0, 1, 2, 1}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("Background should be transparent")
	}
	if got := color.RGBAModel.Convert(img.At(1, 0)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Pixel (1,0): got %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(0, 1)); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("Pixel (0,1): got %v", got)
	}

	if _, err := l.Colorize([]uint8{0, 3}, 1, 2); err == nil {
		t.Errorf("Expected an error for an unknown label")
	}
}

func TestLabelMoments(t *testing.T) {
	// 0 1 1
	// 0 1 1
	// 2 0 0
	labels := []uint8{0, 1, 1, 0, 1, 1, 2, 0, 0}
	m := LabelMoments(labels, 3, 3, 0)

	if _, exists := m[0]; exists {
		t.Errorf("Background should have been skipped")
	}

	one := m[1]
	if one.Area != 4 || one.Centroid.X != 1.5 || one.Centroid.Y != 0.5 {
		t.Errorf("Unexpected moments for label 1: %+v", one)
	}
	if one.Bounds.TopLeft != (Coord{1, 0}) || one.Bounds.BottomRight != (Coord{2, 1}) {
		t.Errorf("Unexpected bounds for label 1: %+v", one.Bounds)
	}

	if two := m[2]; two.Area != 1 || two.Centroid.X != 0 || two.Centroid.Y != 2 {
		t.Errorf("Unexpected moments for label 2: %+v", two)
	}
}

func TestGroupMask(t *testing.T) {
	labels := []uint8{0, 8, 9, 11, 5}

	got, err := GroupMask(labels, []int{8, 9}, []int{5, 11})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint8{0, 1, 1, 2, 2}, got); diff != "" {
		t.Errorf("Mask mismatch (-want +got):\n%s", diff)
	}

	if _, err := GroupMask(labels, []int{8, 9}, []int{9, 13}); err == nil {
		t.Errorf("Expected an error for overlapping groups")
	}
	if _, err := GroupMask(labels, []int{}); err == nil {
		t.Errorf("Expected an error for an empty group")
	}
}

func TestDefaultRegionColorsParse(t *testing.T) {
	for name, v := range DefaultRegions() {
		if _, err := ColorFromCode(v.Color); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestColorFromCode(t *testing.T) {
	for _, v := range []struct {
		Code string
		Want color.NRGBA
		OK   bool
	}{
		{"#DC3220", color.NRGBA{0xdc, 0x32, 0x20, 255}, true},
		{"005ab5", color.NRGBA{0x00, 0x5a, 0xb5, 255}, true},
		{"", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, false},
	} {
		c, err := ColorFromCode(v.Code)
		if (err == nil) != v.OK {
			t.Errorf("%q: expected ok=%v, got %v", v.Code, v.OK, err)
			continue
		}
		if v.OK && c != v.Want {
			t.Errorf("%q: expected %v, got %v", v.Code, v.Want, c)
		}
	}
}
