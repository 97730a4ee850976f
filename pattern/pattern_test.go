package pattern

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/internal/testutil"
	"github.com/carbocation/hdthermal/ranksum"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	"github.com/google/go-cmp/cmp"
)

func twoByTwo(d01, d10 float64, g01, g10 int32) *Matrices {
	m := newMatrices(2, 0)
	m.Deltas[0][1], m.Deltas[1][0] = d01, d10
	m.Global[0][1], m.Global[1][0] = g01, g10
	return m
}

func TestCombineTwoByTwo(t *testing.T) {
	a := twoByTwo(1.5, -1.5, 1, 1)
	b := twoByTwo(0.7, -0.7, 1, 1)

	got, err := Combine(a, b)
	if err != nil {
		t.Fatal(err)
	}

	want := [][]Category{
		{NotApplicable, SameSignificant},
		{SameSignificant, NotApplicable},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combined categories (-want +got):\n%s", diff)
	}
}

func TestCombineDiagonalIsAlwaysNotApplicable(t *testing.T) {
	a := twoByTwo(1, -1, 1, 1)
	b := twoByTwo(1, -1, 1, 1)
	a.Deltas[0][0], b.Deltas[0][0] = 3, 3
	a.Global[0][0], b.Global[0][0] = 1, 1

	got, err := Combine(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got[0][0] != NotApplicable || got[1][1] != NotApplicable {
		t.Errorf("Expected a not-applicable diagonal, got %v", got)
	}
}

func TestClassify(t *testing.T) {
	for _, v := range []struct {
		DA, DB float64
		GA, GB int32
		Want   Category
	}{
		{1, 2, 1, 1, SameSignificant},
		{-1, -2, 1, 1, SameSignificant},
		{1, 2, 1, 0, Same},
		{-1, -2, 0, 0, Same},
		{1, -2, 1, 1, AWarmerSignificant},
		{1, -2, 0, 1, AWarmer},
		{-1, 2, 1, 1, BWarmerSignificant},
		{-1, 2, 1, 0, BWarmer},
		{0, 2, 1, 1, NotApplicable},
		{1, 0, 1, 1, NotApplicable},
	} {
		if got := Classify(v.DA, v.DB, v.GA, v.GB); got != v.Want {
			t.Errorf("Classify(%v, %v, %d, %d): got %s, want %s", v.DA, v.DB, v.GA, v.GB, got, v.Want)
		}
	}
}

func TestCombineLocal(t *testing.T) {
	a := twoByTwo(1, -1, 1, 0)
	a.Subjects = []int{1, 2, 3}
	a.Local = [][][]int32{
		{{0, 0, 0}, {1, 1, 1}},
		{{0, 1, 1}, {0, 0, 0}},
	}

	b := twoByTwo(2, -2, 1, 1)
	b.Subjects = []int{1, 2}
	b.Local = [][][]int32{
		{{0, 0}, {1, 1}},
		{{1, 1}, {0, 0}},
	}

	combined, err := Combine(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if combined[1][0] != Same {
		t.Fatalf("Expected (1,0) not to be jointly significant, got %s", combined[1][0])
	}

	got, err := CombineLocal(a, b, combined)
	if err != nil {
		t.Fatal(err)
	}

	want := [][]int32{
		{0, 2},
		{0, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combined local counts (-want +got):\n%s", diff)
	}
}

func TestCompareSubject(t *testing.T) {
	species := newMatrices(3, 0)
	subject := newMatrices(3, 0)

	// (0,1): same sign and flag; (0,2): flag differs; (1,2): sign differs;
	// (1,0): species not significant
	species.Deltas[0][1], subject.Deltas[0][1] = 1, 2
	species.Global[0][1], subject.Global[0][1] = 1, 1
	species.Deltas[0][2], subject.Deltas[0][2] = 1, 2
	species.Global[0][2], subject.Global[0][2] = 1, 0
	species.Deltas[1][2], subject.Deltas[1][2] = 1, -2
	species.Global[1][2], subject.Global[1][2] = 1, 1
	species.Deltas[1][0], subject.Deltas[1][0] = -1, -2
	species.Global[1][0], subject.Global[1][0] = 0, 1

	got, err := CompareSubject(subject, species)
	if err != nil {
		t.Fatal(err)
	}

	want := [][]Agreement{
		{NotCompared, Agrees, Differs},
		{NotCompared, NotCompared, Differs},
		{NotCompared, NotCompared, NotCompared},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Agreement (-want +got):\n%s", diff)
	}
}

func TestCombineRejectsMismatchedSizes(t *testing.T) {
	if _, err := Combine(newMatrices(2, 0), newMatrices(3, 0)); err == nil {
		t.Errorf("Expected an error for patterns of different sizes")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newMatrices(3, 4)
	m.Subjects = []int{1, 2, 3, 4}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.Deltas[r][c] = math.Pi*float64(r) - math.E*float64(c) + 1e-13
			m.Global[r][c] = int32((r + c) % 2)
			for k := 0; k < 4; k++ {
				m.Local[r][c][k] = int32((r*c + k) % 2)
			}
		}
	}

	path := filepath.Join(t.TempDir(), FileName("H"))
	if err := Save(path, m); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(m.Deltas, got.Deltas); diff != "" {
		t.Errorf("deltas (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m.Global, got.Global); diff != "" {
		t.Errorf("s_global (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m.Local, got.Local); diff != "" {
		t.Errorf("s_local (-want +got):\n%s", diff)
	}
}

func TestSaveLoadWithoutLocal(t *testing.T) {
	m := twoByTwo(0.25, -0.25, 1, 0)
	path := filepath.Join(t.TempDir(), SubjectFileName("D", 17))
	if err := Save(path, m); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Local != nil {
		t.Errorf("Expected no local flags, got %v", got.Local)
	}
	if diff := cmp.Diff(m.Deltas, got.Deltas); diff != "" {
		t.Errorf("deltas (-want +got):\n%s", diff)
	}
}

func TestFileNames(t *testing.T) {
	if got := FileName("D"); got != "pattern_matrices_D.npz" {
		t.Errorf("Unexpected file name %s", got)
	}
	if got := SubjectFileName("D", 18); got != "pattern_matrices_D_spec_18.npz" {
		t.Errorf("Unexpected file name %s", got)
	}
}

// Region 1 is 10 degrees warmer than regions 2 and 3, which are
// indistinguishable from each other.
func syntheticTemp(s dataset.Subject, label uint8, pixel int) float64 {
	base := 25.0
	switch label {
	case 1:
		base = 30
	case 2:
		base = 20
	case 3:
		base = 20.00005
	}
	return base + float64(s.Index)*0.01 + float64(pixel)*0.0001
}

func TestBuild(t *testing.T) {
	indices := []int{1, 2, 3}
	dir := testutil.WriteDataset(t, testutil.Subjects([]dataset.Species{"H"}, indices), syntheticTemp)
	agg := roi.NewAggregator(dataset.Dataset{Path: dir}, indices)

	tester := ranksum.NewTester(0.001, 1)
	tester.Mode = ranksum.Positional

	groups := []study.Group{
		{Name: "Warm", Short: "W", Regions: []int{1}},
		{Name: "Cold", Short: "C", Regions: []int{2}},
		{Name: "Cold too", Short: "C2", Regions: []int{3}},
	}

	m, err := Build(agg, tester, "H", groups, indices)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"W", "C", "C2"}, m.Labels); diff != "" {
		t.Errorf("Labels (-want +got):\n%s", diff)
	}
	if math.Abs(m.Deltas[0][1]-10) > 1e-9 || math.Abs(m.Deltas[1][0]+10) > 1e-9 {
		t.Errorf("Unexpected deltas %v", m.Deltas)
	}
	if m.Deltas[0][0] != 0 {
		t.Errorf("Expected a zero diagonal, got %v", m.Deltas[0][0])
	}

	wantGlobal := [][]int32{
		{0, 1, 1},
		{1, 0, 0},
		{1, 0, 0},
	}
	if diff := cmp.Diff(wantGlobal, m.Global); diff != "" {
		t.Errorf("Global flags (-want +got):\n%s", diff)
	}

	wantCounts := [][]int32{
		{0, 3, 3},
		{3, 0, 0},
		{3, 0, 0},
	}
	if diff := cmp.Diff(wantCounts, LocalCounts(m)); diff != "" {
		t.Errorf("Local counts (-want +got):\n%s", diff)
	}

	single, err := BuildSubject(agg, tester, "H", groups, 2)
	if err != nil {
		t.Fatal(err)
	}
	if single.Local != nil || single.Global[0][1] != 1 {
		t.Errorf("Unexpected single-animal pattern %+v", single)
	}

	agreement, err := CompareSubject(single, m)
	if err != nil {
		t.Fatal(err)
	}
	if agreement[0][1] != Agrees || agreement[1][2] != NotCompared {
		t.Errorf("Unexpected agreement %v", agreement)
	}
}
