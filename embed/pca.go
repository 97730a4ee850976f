package embed

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection is the position of each animal along the leading principal
// components.
type Projection struct {
	Scores *mat.Dense

	// Explained is the fraction of the total variance carried by each kept
	// component.
	Explained []float64
}

// PCA centers the feature matrix and projects it onto its first k principal
// components.
func PCA(x mat.Matrix, k int) (*Projection, error) {
	n, d := x.Dims()
	if n < 2 {
		return nil, fmt.Errorf("PCA needs at least 2 observations, got %d", n)
	}
	if k < 1 || k > d || k > n {
		return nil, fmt.Errorf("cannot keep %d components of a %dx%d matrix", k, n, d)
	}

	centered := mat.DenseCopyOf(x)
	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, centered)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, col[i]-mean)
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(centered, nil); !ok {
		return nil, fmt.Errorf("principal component decomposition failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	total := 0.0
	for _, v := range vars {
		total += v
	}

	out := &Projection{Scores: mat.NewDense(n, k, nil), Explained: make([]float64, k)}
	out.Scores.Mul(centered, vecs.Slice(0, d, 0, k))
	for i := 0; i < k; i++ {
		if total > 0 {
			out.Explained[i] = vars[i] / total
		}
	}

	return out, nil
}
