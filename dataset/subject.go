package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NumLabels is the number of distinct label values in a label grid: 0 for
// background and 1..15 for the anatomical regions.
const NumLabels = 16

// Background is the label of unannotated pixels.
const Background = 0

// ErrSubjectNotFound is returned when no archive exists for a subject.
var ErrSubjectNotFound = errors.New("subject not found")

// Species is the short tag for a subject category, e.g. "H" for horses and
// "D" for donkeys.
type Species string

// Subject identifies one animal.
type Subject struct {
	Species Species
	Index   int
}

// SubjectName returns the canonical name of an animal, e.g. "H.3".
func SubjectName(species Species, index int) string {
	return fmt.Sprintf("%s.%d", species, index)
}

func (s Subject) String() string {
	return SubjectName(s.Species, s.Index)
}

// ParseSubject is the inverse of SubjectName.
func ParseSubject(name string) (Subject, error) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) != 2 || parts[0] == "" {
		return Subject{}, fmt.Errorf("subject name %q is not of the form <species>.<index>", name)
	}

	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 1 {
		return Subject{}, fmt.Errorf("subject name %q has an invalid index", name)
	}

	return Subject{Species: Species(parts[0]), Index: idx}, nil
}
