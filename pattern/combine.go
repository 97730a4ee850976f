package pattern

import (
	"fmt"
)

// Category classifies one pair of region groups across two species, A and
// B. Values match the integer codes used in the combined figures.
type Category int32

const (
	NotApplicable Category = iota

	// Same sign of delta in both species, significant in both.
	SameSignificant

	// Same sign of delta, but not significant in both.
	Same

	// Group r is relatively warmer in A than in B, significant in both.
	AWarmerSignificant
	AWarmer

	// Group r is relatively warmer in B than in A, significant in both.
	BWarmerSignificant
	BWarmer
)

// NumCategories counts the categories including NotApplicable.
const NumCategories = 7

var categoryShort = [NumCategories]string{"NA", "SPS", "SP", "HWS", "HW", "HCS", "HC"}

// String returns the short label used in legends.
func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return fmt.Sprintf("Category(%d)", int32(c))
	}
	return categoryShort[c]
}

// JointlySignificant reports whether the category requires both species to
// flag the pair as significant.
func (c Category) JointlySignificant() bool {
	return c == SameSignificant || c == AWarmerSignificant || c == BWarmerSignificant
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Classify maps the deltas and global flags of one pair in species A and B
// to a category. A zero delta in either species is NotApplicable.
func Classify(deltaA, deltaB float64, globalA, globalB int32) Category {
	sa, sb := sign(deltaA), sign(deltaB)
	if sa == 0 || sb == 0 {
		return NotApplicable
	}

	joint := globalA == 1 && globalB == 1
	pick := func(significant, not Category) Category {
		if joint {
			return significant
		}
		return not
	}

	switch {
	case sa == sb:
		return pick(SameSignificant, Same)
	case sa > sb:
		return pick(AWarmerSignificant, AWarmer)
	}

	return pick(BWarmerSignificant, BWarmer)
}

func sameSize(a, b *Matrices) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if a.N() != b.N() {
		return fmt.Errorf("cannot compare a %dx%d pattern with a %dx%d pattern", a.N(), a.N(), b.N(), b.N())
	}

	return nil
}

// Combine classifies every ordered pair of groups across species a and b.
// The diagonal is always NotApplicable.
func Combine(a, b *Matrices) ([][]Category, error) {
	if err := sameSize(a, b); err != nil {
		return nil, err
	}

	n := a.N()
	out := make([][]Category, n)
	for r := 0; r < n; r++ {
		out[r] = make([]Category, n)
		for c := 0; c < n; c++ {
			if r == c {
				continue
			}
			out[r][c] = Classify(a.Deltas[r][c], b.Deltas[r][c], a.Global[r][c], b.Global[r][c])
		}
	}

	return out, nil
}

// CombineLocal reports, for jointly significant pairs, the smaller of the
// two species' counts of animals that replicate the comparison. Other pairs
// are 0.
func CombineLocal(a, b *Matrices, combined [][]Category) ([][]int32, error) {
	if err := sameSize(a, b); err != nil {
		return nil, err
	}
	if len(combined) != a.N() {
		return nil, fmt.Errorf("%d combined rows for %d groups", len(combined), a.N())
	}

	la, lb := LocalCounts(a), LocalCounts(b)
	out := make([][]int32, a.N())
	for r := range out {
		out[r] = make([]int32, a.N())
		for c := range out[r] {
			if !combined[r][c].JointlySignificant() {
				continue
			}
			out[r][c] = la[r][c]
			if lb[r][c] < out[r][c] {
				out[r][c] = lb[r][c]
			}
		}
	}

	return out, nil
}

// Agreement of one animal's pattern with its species' pattern.
type Agreement int32

const (
	// NotCompared: diagonal, or the species itself shows no significant
	// difference.
	NotCompared Agreement = iota
	Agrees
	Differs
)

func (a Agreement) String() string {
	switch a {
	case NotCompared:
		return "NA"
	case Agrees:
		return "S"
	case Differs:
		return "NS"
	}
	return fmt.Sprintf("Agreement(%d)", int32(a))
}

// CompareSubject checks, pair by pair, whether one animal shows the same
// sign of delta and the same significance flag as its species.
func CompareSubject(subject, species *Matrices) ([][]Agreement, error) {
	if err := sameSize(subject, species); err != nil {
		return nil, err
	}

	n := subject.N()
	out := make([][]Agreement, n)
	for r := 0; r < n; r++ {
		out[r] = make([]Agreement, n)
		for c := 0; c < n; c++ {
			if r == c || species.Global[r][c] == 0 {
				continue
			}

			if sign(subject.Deltas[r][c]) == sign(species.Deltas[r][c]) && subject.Global[r][c] == species.Global[r][c] {
				out[r][c] = Agrees
			} else {
				out[r][c] = Differs
			}
		}
	}

	return out, nil
}
