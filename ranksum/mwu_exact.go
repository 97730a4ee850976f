package ranksum

import "math"

// exactP sums the null distribution of U for samples of size n1 and n2.
func exactP(n1, n2 int, u1, u2 float64, alt Alternative) float64 {
	counts := uDistribution(n1, n2)

	total := 0.0
	for _, c := range counts {
		total += c
	}

	// P(U >= u)
	upper := func(u float64) float64 {
		k := int(math.Ceil(u))
		if k < 0 {
			k = 0
		}
		s := 0.0
		for ; k < len(counts); k++ {
			s += counts[k]
		}
		return s / total
	}

	switch alt {
	case Greater:
		return upper(u1)
	case Less:
		return upper(u2)
	}

	return math.Min(1, 2*math.Min(upper(u1), upper(u2)))
}

// uDistribution returns, for each possible U in 0..n1*n2, the number of
// orderings of n1 and n2 distinct observations producing that U. These are
// the coefficients of the Gaussian binomial coefficient [n1+n2 choose m]_q,
// with m the smaller size, built one factor at a time so that every
// intermediate polynomial is itself a Gaussian binomial with integer
// coefficients.
func uDistribution(n1, n2 int) []float64 {
	m, n := n1, n2
	if m > n {
		m, n = n, m
	}

	c := make([]float64, m*n+1)
	c[0] = 1
	for i := 1; i <= m; i++ {
		// The product has degree i*n+i. Terms past the end of c cannot
		// reach the final coefficients.
		top := i*n + i
		if top >= len(c) {
			top = len(c) - 1
		}

		// Multiply by (1 - q^(n+i))
		step := n + i
		for k := top; k >= step; k-- {
			c[k] -= c[k-step]
		}

		// Divide by (1 - q^i). The division is exact, so coefficients above
		// degree i*n come out as zero.
		for k := i; k <= top; k++ {
			c[k] += c[k-i]
		}
	}

	return c
}
