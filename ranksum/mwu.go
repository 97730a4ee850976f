// Package ranksum implements the Mann-Whitney U (Wilcoxon rank-sum) test and
// the equal-size subsampling wrapper used to compare thermal samples.
package ranksum

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptySample is returned when either sample has no observations.
var ErrEmptySample = errors.New("empty sample")

// Alternative is the hypothesis tested against the null of equal
// distributions.
type Alternative int

const (
	// Greater: values of x tend to be larger than values of y.
	Greater Alternative = iota
	// Less: values of x tend to be smaller than values of y.
	Less
	TwoSided
)

func (a Alternative) String() string {
	switch a {
	case Greater:
		return "greater"
	case Less:
		return "less"
	case TwoSided:
		return "two-sided"
	}

	return fmt.Sprintf("Alternative(%d)", int(a))
}

// Direction picks the one-sided alternative that matches the sign of a
// difference of means. Zero maps to Less.
func Direction(delta float64) Alternative {
	if delta > 0 {
		return Greater
	}

	return Less
}

// Method records how the P value was obtained.
type Method string

const (
	Exact      Method = "exact"
	Asymptotic Method = "asymptotic"
)

// Result of a Mann-Whitney U test. U is the statistic of the first sample.
type Result struct {
	U      float64
	P      float64
	Method Method
}

// MannWhitneyU tests x against y. The exact null distribution is used when
// the smaller sample has fewer than 8 observations and there are no ties.
// Otherwise the normal approximation is used, with a tie correction of the
// variance and a continuity correction of 0.5.
func MannWhitneyU(x, y []float64, alt Alternative) (Result, error) {
	if len(x) == 0 || len(y) == 0 {
		return Result{}, fmt.Errorf("mann-whitney U with %d and %d observations: %w", len(x), len(y), ErrEmptySample)
	}
	if alt != Greater && alt != Less && alt != TwoSided {
		return Result{}, fmt.Errorf("unknown alternative %v", alt)
	}

	ranks, tieTerm := rank(x, y)

	n1, n2 := float64(len(x)), float64(len(y))
	r1 := 0.0
	for _, r := range ranks[:len(x)] {
		r1 += r
	}
	u1 := r1 - n1*(n1+1)/2
	u2 := n1*n2 - u1

	out := Result{U: u1}
	if (len(x) < 8 || len(y) < 8) && tieTerm == 0 {
		out.Method = Exact
		out.P = exactP(len(x), len(y), u1, u2, alt)
	} else {
		out.Method = Asymptotic
		out.P = asymptoticP(n1, n2, u1, u2, tieTerm, alt)
	}

	return out, nil
}

// rank assigns 1-based ranks to the concatenation of x and y, giving tied
// values the average of the ranks they span. It also returns the sum of
// t^3-t over groups of t ties.
func rank(x, y []float64) (ranks []float64, tieTerm float64) {
	n := len(x) + len(y)
	values := make([]float64, 0, n)
	values = append(values, x...)
	values = append(values, y...)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]] < values[order[j]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}

		// Positions i..j-1 hold ranks i+1..j
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}

		if t := float64(j - i); t > 1 {
			tieTerm += t*t*t - t
		}
		i = j
	}

	return ranks, tieTerm
}
