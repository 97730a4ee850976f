package overlay

type Coord struct {
	X, Y int
}

// Moments summarises where one label sits in a grid.
type Moments struct {
	LabelID uint8
	Area    int
	Bounds  struct {
		TopLeft     Coord
		BottomRight Coord
	}
	Centroid struct {
		X, Y float64
	}
}

// LabelMoments computes the area, bounding box and center of mass of every
// label present in a row-major grid. Labels listed in skip are ignored.
func LabelMoments(labels []uint8, rows, cols int, skip ...uint8) map[uint8]Moments {
	skipped := make(map[uint8]struct{}, len(skip))
	for _, s := range skip {
		skipped[s] = struct{}{}
	}

	// Raw moments: M00 (area), M10 (sum of x), M01 (sum of y)
	sumX := make(map[uint8]int)
	sumY := make(map[uint8]int)
	out := make(map[uint8]Moments)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			id := labels[y*cols+x]
			if _, ok := skipped[id]; ok {
				continue
			}

			m, seen := out[id]
			if !seen {
				m.LabelID = id
				m.Bounds.TopLeft = Coord{X: x, Y: y}
				m.Bounds.BottomRight = Coord{X: x, Y: y}
			}

			m.Area++
			if x < m.Bounds.TopLeft.X {
				m.Bounds.TopLeft.X = x
			}
			if y < m.Bounds.TopLeft.Y {
				m.Bounds.TopLeft.Y = y
			}
			if x > m.Bounds.BottomRight.X {
				m.Bounds.BottomRight.X = x
			}
			if y > m.Bounds.BottomRight.Y {
				m.Bounds.BottomRight.Y = y
			}

			sumX[id] += x
			sumY[id] += y
			out[id] = m
		}
	}

	for id, m := range out {
		m.Centroid.X = float64(sumX[id]) / float64(m.Area)
		m.Centroid.Y = float64(sumY[id]) / float64(m.Area)
		out[id] = m
	}

	return out
}
