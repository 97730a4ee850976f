package ranksum

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// asymptoticP uses the normal approximation to the null distribution of U.
func asymptoticP(n1, n2, u1, u2, tieTerm float64, alt Alternative) float64 {
	n := n1 + n2
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1))))
	if sigma == 0 || math.IsNaN(sigma) {
		// Every observation is tied
		return 1
	}

	upper := func(u float64) float64 {
		return distuv.UnitNormal.Survival((u - mu - 0.5) / sigma)
	}

	switch alt {
	case Greater:
		return upper(u1)
	case Less:
		return upper(u2)
	}

	return math.Min(1, 2*upper(math.Max(u1, u2)))
}
