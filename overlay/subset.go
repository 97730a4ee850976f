package overlay

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// SubsetAndRescaleImage crops baseImg to the rectangle spanned by the top left
// and bottom right points and then enlarges it by an integer scale factor with
// nearest-neighbour sampling, so that each source pixel stays a crisp block.
// A zero bottom right coordinate means "to the edge of the image".
func SubsetAndRescaleImage(baseImg image.Image, topLeftX, topLeftY, bottomRightX, bottomRightY, scale int) (image.Image, error) {
	if scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", scale)
	}

	// Correct max bounds if left unset (i.e., 0)
	imgBounds := baseImg.Bounds()
	if bottomRightX == 0 {
		bottomRightX = imgBounds.Max.X
	}
	if bottomRightY == 0 {
		bottomRightY = imgBounds.Max.Y
	}

	rect := image.Rect(topLeftX, topLeftY, bottomRightX, bottomRightY)
	if !rect.In(imgBounds) || rect.Empty() {
		return nil, fmt.Errorf("Subset %v is not within the image bounds %v", rect, imgBounds)
	}

	// First extract the bounded region of interest
	cutImg := imaging.Crop(baseImg, rect)

	// Now apply the scale
	width := rect.Dx() * scale
	return imaging.Resize(cutImg, width, 0, imaging.NearestNeighbor), nil
}
