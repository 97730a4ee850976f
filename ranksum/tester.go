package ranksum

import (
	"fmt"
	"math/rand"
	"time"
)

// Mode selects how two samples of different sizes are cut down to the same
// size before testing.
type Mode int

const (
	// RandomSubsample shuffles each sample before truncating it, so every
	// call draws a fresh random subsample.
	RandomSubsample Mode = iota

	// Positional keeps the first observations of each sample in their
	// original order.
	Positional
)

func (m Mode) String() string {
	switch m {
	case RandomSubsample:
		return "random"
	case Positional:
		return "positional"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "random":
		return RandomSubsample, nil
	case "positional":
		return Positional, nil
	}

	return 0, fmt.Errorf("unknown subsample mode %q (want random or positional)", s)
}

// Tester makes one-sided significance decisions at a fixed threshold. A
// Tester is not safe for concurrent use since it owns its random source.
type Tester struct {
	P    float64
	Mode Mode

	rng *rand.Rand
}

// NewTester returns a Tester that subsamples randomly. A seed of 0 seeds
// from the clock, so repeated runs may disagree near the threshold.
func NewTester(p float64, seed int64) *Tester {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return NewTesterWithSource(p, rand.NewSource(seed))
}

// NewTesterWithSource injects the random source used for subsampling.
func NewTesterWithSource(p float64, src rand.Source) *Tester {
	return &Tester{P: p, Mode: RandomSubsample, rng: rand.New(src)}
}

// Subsample copies x and y and cuts both down to the size of the smaller
// one. The inputs are never modified.
func (t *Tester) Subsample(x, y []float64) ([]float64, []float64) {
	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)

	if t.Mode == RandomSubsample && t.rng != nil {
		t.rng.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
		t.rng.Shuffle(len(ys), func(i, j int) { ys[i], ys[j] = ys[j], ys[i] })
	}

	m := len(xs)
	if len(ys) < m {
		m = len(ys)
	}

	return xs[:m], ys[:m]
}

// Test subsamples x and y to equal size and runs the Mann-Whitney U test.
func (t *Tester) Test(x, y []float64, alt Alternative) (Result, error) {
	if len(x) == 0 || len(y) == 0 {
		return Result{}, fmt.Errorf("significance test with %d and %d observations: %w", len(x), len(y), ErrEmptySample)
	}

	xs, ys := t.Subsample(x, y)

	return MannWhitneyU(xs, ys, alt)
}

// Significant reports whether x differs from y in the direction alt with a
// P value below t.P.
func (t *Tester) Significant(x, y []float64, alt Alternative) (bool, error) {
	res, err := t.Test(x, y, alt)
	if err != nil {
		return false, err
	}

	return res.P < t.P, nil
}
