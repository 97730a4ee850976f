package ranksum

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const tolerance = 1e-9

func TestMannWhitneyUExact(t *testing.T) {
	x := []float64{1.5, 2.5, 9, 7, 3.3}
	y := []float64{0.1, 0.2, 4, 5, 6, 8, 10, 11}

	for _, v := range []struct {
		X, Y []float64
		Alt  Alternative
		U    float64
		P    float64
	}{
		{[]float64{1, 2, 3}, []float64{4, 5, 6}, Less, 0, 0.05},
		{[]float64{1, 2, 3}, []float64{4, 5, 6}, Greater, 0, 1},
		{[]float64{1, 2, 3}, []float64{4, 5, 6}, TwoSided, 0, 0.1},
		{x, y, Greater, 17, 887.0 / 1287},
		{x, y, Less, 17, 466.0 / 1287},
		{x, y, TwoSided, 17, 932.0 / 1287},
	} {
		res, err := MannWhitneyU(v.X, v.Y, v.Alt)
		if err != nil {
			t.Fatal(err)
		}
		if res.Method != Exact {
			t.Errorf("%v vs %v: expected the exact method, got %s", v.X, v.Y, res.Method)
		}
		if res.U != v.U {
			t.Errorf("%v vs %v: expected U=%v, got %v", v.X, v.Y, v.U, res.U)
		}
		if math.Abs(res.P-v.P) > tolerance {
			t.Errorf("%v vs %v (%s): expected P=%v, got %v", v.X, v.Y, v.Alt, v.P, res.P)
		}
	}
}

func TestMannWhitneyUAsymptotic(t *testing.T) {
	// Ties force the normal approximation
	tiedX := []float64{1, 2, 2, 3, 4, 5, 5, 5, 6, 7}
	tiedY := []float64{3, 3, 4, 4, 5, 6, 7, 8, 8, 9}

	// Both samples have at least 8 observations
	var bigX, bigY []float64
	for i := 0; i < 20; i++ {
		bigX = append(bigX, float64(i))
		bigY = append(bigY, float64(i+5)+0.5)
	}

	for _, v := range []struct {
		Name string
		X, Y []float64
		Alt  Alternative
		U    float64
		P    float64
	}{
		{"ties greater", tiedX, tiedY, Greater, 29.5, 0.9452833215934493},
		{"ties less", tiedX, tiedY, Less, 29.5, 0.0636895227501496},
		{"ties two-sided", tiedX, tiedY, TwoSided, 29.5, 0.1273790455002992},
		{"large greater", bigX, bigY, Greater, 105, 0.9951067566364615},
		{"large less", bigX, bigY, Less, 105, 0.0052906057215828285},
	} {
		res, err := MannWhitneyU(v.X, v.Y, v.Alt)
		if err != nil {
			t.Fatal(err)
		}
		if res.Method != Asymptotic {
			t.Errorf("%s: expected the asymptotic method, got %s", v.Name, res.Method)
		}
		if res.U != v.U {
			t.Errorf("%s: expected U=%v, got %v", v.Name, v.U, res.U)
		}
		if math.Abs(res.P-v.P) > 1e-7 {
			t.Errorf("%s: expected P=%v, got %v", v.Name, v.P, res.P)
		}
	}
}

func TestMannWhitneyUAllTied(t *testing.T) {
	x := make([]float64, 10)
	res, err := MannWhitneyU(x, x, Greater)
	if err != nil {
		t.Fatal(err)
	}
	if res.P != 1 {
		t.Errorf("Expected P=1 when every value is tied, got %v", res.P)
	}
}

func TestMannWhitneyUEmpty(t *testing.T) {
	if _, err := MannWhitneyU(nil, []float64{1}, Greater); !errors.Is(err, ErrEmptySample) {
		t.Errorf("Expected ErrEmptySample, got %v", err)
	}
	if _, err := MannWhitneyU([]float64{1}, []float64{}, Less); !errors.Is(err, ErrEmptySample) {
		t.Errorf("Expected ErrEmptySample, got %v", err)
	}
}

func TestRankAveragesTies(t *testing.T) {
	ranks, tieTerm := rank([]float64{10, 20}, []float64{20, 5, 20})

	if diff := cmp.Diff([]float64{2, 4, 4, 1, 4}, ranks); diff != "" {
		t.Errorf("Ranks (-want +got):\n%s", diff)
	}
	if tieTerm != 24 {
		t.Errorf("Expected a tie term of 3^3-3=24, got %v", tieTerm)
	}
}

func TestUDistributionSumsToBinomial(t *testing.T) {
	for _, v := range []struct {
		N1, N2 int
		Total  float64
	}{
		{1, 1, 2},
		{3, 3, 20},
		{5, 8, 1287},
		{7, 30, 10295472},
	} {
		total := 0.0
		for _, c := range uDistribution(v.N1, v.N2) {
			if c < 0 {
				t.Fatalf("%dx%d: negative count %v", v.N1, v.N2, c)
			}
			total += c
		}
		if total != v.Total {
			t.Errorf("%dx%d: expected %v orderings, got %v", v.N1, v.N2, v.Total, total)
		}
	}
}

func uniform(rng *rand.Rand, n int, scale float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64() * scale
	}
	return out
}

func TestSignificantDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	o := uniform(rng, 100, 1)
	z := uniform(rng, 100, 0.01)

	tester := NewTester(0.001, 42)

	for _, v := range []struct {
		Name string
		X, Y []float64
		Want bool
	}{
		{"hot greater than cold", o, z, true},
		{"identical samples", o, o, false},
		{"cold greater than hot", z, o, false},
	} {
		got, err := tester.Significant(v.X, v.Y, Greater)
		if err != nil {
			t.Fatal(err)
		}
		if got != v.Want {
			t.Errorf("%s: expected %v, got %v", v.Name, v.Want, got)
		}
	}

	less, err := tester.Significant(z, o, Less)
	if err != nil {
		t.Fatal(err)
	}
	if !less {
		t.Errorf("Expected the cold sample to be significantly less")
	}
}

func TestSignificantShiftedMean(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	base := uniform(rng, 100, 1)
	shifted := uniform(rng, 100, 1)
	for i := range shifted {
		shifted[i] += 5
	}

	tester := NewTester(0.001, 7)
	got, err := tester.Significant(shifted, base, Greater)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Errorf("Expected a shift of the mean by 5 to be significant")
	}
}

func TestSignificantEmpty(t *testing.T) {
	tester := NewTester(0.001, 1)
	if _, err := tester.Significant([]float64{}, []float64{1, 2}, Greater); !errors.Is(err, ErrEmptySample) {
		t.Errorf("Expected ErrEmptySample, got %v", err)
	}
}

func TestSubsample(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{10, 20, 30}

	tester := NewTester(0.05, 3)
	tester.Mode = Positional
	xs, ys := tester.Subsample(x, y)
	if diff := cmp.Diff([]float64{1, 2, 3}, xs); diff != "" {
		t.Errorf("Positional x (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(y, ys); diff != "" {
		t.Errorf("Positional y (-want +got):\n%s", diff)
	}

	// Same seed, same draws
	a := NewTesterWithSource(0.05, rand.NewSource(99))
	b := NewTesterWithSource(0.05, rand.NewSource(99))
	ax, ay := a.Subsample(x, y)
	bx, by := b.Subsample(x, y)
	if diff := cmp.Diff(ax, bx); diff != "" {
		t.Errorf("Seeded subsamples differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(ay, by); diff != "" {
		t.Errorf("Seeded subsamples differ (-a +b):\n%s", diff)
	}
	if len(ax) != 3 || len(ay) != 3 {
		t.Errorf("Expected both subsamples to have 3 values, got %d and %d", len(ax), len(ay))
	}

	// Inputs are never modified
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 5, 6, 7, 8}, x); diff != "" {
		t.Errorf("Input was modified (-want +got):\n%s", diff)
	}
}

func TestDirection(t *testing.T) {
	if Direction(0.3) != Greater || Direction(-0.3) != Less || Direction(0) != Less {
		t.Errorf("Unexpected directions")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{RandomSubsample, Positional} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("%s: got %v, %v", m, got, err)
		}
	}
	if _, err := ParseMode("shuffle"); err == nil {
		t.Errorf("Expected an error for an unknown mode")
	}
}
