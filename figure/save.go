package figure

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/disintegration/imaging"
)

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// SavePNG writes an image, creating the folder if needed.
func SavePNG(path string, img image.Image) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return imaging.Save(img, path)
}

// SaveBytes writes an already encoded figure.
func SaveBytes(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// File names of every figure, relative to the output folder.

func HeatmapName(subject string, relative bool) string {
	if relative {
		return fmt.Sprintf("heat_%s_relative.png", subject)
	}
	return fmt.Sprintf("heat_%s.png", subject)
}

// HistogramName is for ROI histograms; region 0 is the whole foreground.
func HistogramName(region int, small bool) string {
	if small {
		return fmt.Sprintf("histo_%d_small.png", region)
	}
	return fmt.Sprintf("histo_%d.png", region)
}

// GroupHistogramName uses the first four letters of the group name.
func GroupHistogramName(group string) string {
	if len(group) > 4 {
		group = group[:4]
	}
	return fmt.Sprintf("rgc_%s.png", group)
}

func BoxplotName(species dataset.Species) string {
	return fmt.Sprintf("box_%s.png", species)
}

func DeltaMatrixName(species dataset.Species) string {
	return fmt.Sprintf("m_deltas_%s.png", species)
}

func LocalMatrixName(species dataset.Species) string {
	return fmt.Sprintf("m_ss_%s.png", species)
}

const (
	CombinedMatrixName      = "m_comp.png"
	CombinedLocalMatrixName = "m_comp_local.png"
	RegionMapName           = "rois.png"
)

func SubjectDeltaMatrixName(species dataset.Species, index int) string {
	return fmt.Sprintf("m_deltas_%s_spec_%d.png", species, index)
}

func SubjectAgreementName(index int) string {
	return fmt.Sprintf("m_comp_spec_%d.png", index)
}

func ScatterName(statistic string, normalised bool) string {
	if normalised {
		return fmt.Sprintf("pca_%s_norm.png", statistic)
	}
	return fmt.Sprintf("pca_%s.png", statistic)
}

func GroupMapName(i int) string {
	return fmt.Sprintf("gors_%d.png", i)
}
