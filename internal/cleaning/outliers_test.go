package cleaning

import (
	"errors"
	"math"
	"testing"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	// Positions are q*(n-1) with floor/ceil interpolation, matching the
	// "linear" method of pandas/numpy.
	sorted := []float64{9, 10, 11, 11, 12, 13, 90}
	cases := []struct {
		q    float64
		want float64
	}{
		{0.25, 10.5},
		{0.5, 11},
		{0.75, 12.5},
		{0, 9},
		{1, 90},
	}
	for _, c := range cases {
		if got := quantile(sorted, c.q); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("quantile(%v) = %v, want %v", c.q, got, c.want)
		}
	}
	// Even-length median is the midpoint of the two middle elements.
	even := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := quantile(even, 0.5); math.Abs(got-4.5) > 1e-9 {
		t.Fatalf("even-length median = %v, want 4.5", got)
	}
}

func TestDetectOutliersAgeScenario(t *testing.T) {
	// Q1=10.5, Q3=12.5, IQR=2 -> bounds [7.5, 15.5], one outlier (90).
	tb := mustTable(t, numCol("Age", []float64{10, 12, 11, 13, 90, 9, 11}, nil))
	rep, err := DetectOutliers(tb, 1.5)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	b, ok := rep["Age"]
	if !ok {
		t.Fatal("Age missing from report")
	}
	if math.Abs(b.Lower-7.5) > 1e-9 || math.Abs(b.Upper-15.5) > 1e-9 {
		t.Fatalf("bounds [%v, %v], want [7.5, 15.5]", b.Lower, b.Upper)
	}
	if b.Count != 1 {
		t.Fatalf("count = %d, want 1", b.Count)
	}
	// Detection never mutates the table.
	c, _ := tb.Column("Age")
	if c.Floats[4] != 90 {
		t.Fatal("DetectOutliers mutated the table")
	}
}

func TestCapOutliersAgeScenario(t *testing.T) {
	tb := mustTable(t, numCol("Age", []float64{10, 12, 11, 13, 90, 9, 11}, nil))
	out, err := CapOutliers(tb, 1.5)
	if err != nil {
		t.Fatalf("cap: %v", err)
	}
	c, _ := out.Column("Age")
	want := []float64{10, 12, 11, 13, 15.5, 9, 11}
	for i, w := range want {
		if math.Abs(c.Floats[i]-w) > 1e-9 {
			t.Fatalf("Age[%d] = %v, want %v", i, c.Floats[i], w)
		}
	}
	if out.NumRows() != tb.NumRows() {
		t.Fatal("capping changed the row count")
	}
	// Input untouched.
	orig, _ := tb.Column("Age")
	if orig.Floats[4] != 90 {
		t.Fatal("CapOutliers mutated its input")
	}
}

func TestCapOutliersIsIdempotent(t *testing.T) {
	tb := mustTable(t,
		numCol("a", []float64{10, 12, 11, 13, 90, 9, 11}, nil),
		numCol("b", []float64{-50, 1, 2, 3, 4, 5, 200}, nil),
	)
	once, err := CapOutliers(tb, 1.5)
	if err != nil {
		t.Fatalf("first cap: %v", err)
	}
	twice, err := CapOutliers(once, 1.5)
	if err != nil {
		t.Fatalf("second cap: %v", err)
	}
	for _, name := range tb.Names() {
		c1, _ := once.Column(name)
		c2, _ := twice.Column(name)
		for i := range c1.Floats {
			if c1.Floats[i] != c2.Floats[i] {
				t.Fatalf("column %s row %d: %v != %v after recap", name, i, c1.Floats[i], c2.Floats[i])
			}
		}
	}
}

func TestCapOutliersSkipsMissingAndNonNumeric(t *testing.T) {
	tb := mustTable(t,
		numCol("v", []float64{1, 2, 3, 4, 0}, []bool{false, false, false, false, true}),
		strCol("s", []string{"a", "b", "a", "b", "a"}, nil),
	)
	out, err := CapOutliers(tb, 1.5)
	if err != nil {
		t.Fatalf("cap: %v", err)
	}
	v, _ := out.Column("v")
	if !v.Missing[4] {
		t.Fatal("missing entry should stay missing after capping")
	}
	s, _ := out.Column("s")
	if s.Strings[0] != "a" {
		t.Fatal("categorical column changed")
	}
}

func TestDetectOutliersCustomK(t *testing.T) {
	tb := mustTable(t, numCol("Age", []float64{10, 12, 11, 13, 90, 9, 11}, nil))
	rep, err := DetectOutliers(tb, 3)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	b := rep["Age"]
	if math.Abs(b.Lower-4.5) > 1e-9 || math.Abs(b.Upper-18.5) > 1e-9 {
		t.Fatalf("bounds [%v, %v], want [4.5, 18.5]", b.Lower, b.Upper)
	}
	if b.Count != 1 {
		t.Fatalf("count = %d, want 1", b.Count)
	}
}

func TestDetectOutliersEmptyNumericColumn(t *testing.T) {
	tb := mustTable(t, numCol("v", []float64{0, 0}, []bool{true, true}))
	_, err := DetectOutliers(tb, 1.5)
	var ece *table.EmptyColumnError
	if !errors.As(err, &ece) {
		t.Fatalf("expected EmptyColumnError, got %v", err)
	}
}
