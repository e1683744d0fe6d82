package cleaning

import (
	"math"
	"sort"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
)

// DefaultIQRMultiplier is the conventional Tukey fence multiplier.
const DefaultIQRMultiplier = 1.5

// Bounds holds the IQR fences for one numeric column and how many values fall
// strictly outside them.
type Bounds struct {
	Lower float64
	Upper float64
	Count int
}

// OutlierReport maps numeric column name to its bounds and outlier count.
type OutlierReport map[string]Bounds

// quantile interpolates linearly between the order statistics at
// q*(n-1): the same method pandas and numpy call "linear". The input
// must be sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// quartiles computes Q1 and Q3 with linear-interpolation quantiles over the
// non-missing values of a numeric column.
func quartiles(c *table.Column, op string) (q1, q3 float64, err error) {
	vals := c.ValidFloats()
	if len(vals) == 0 {
		return 0, 0, &table.EmptyColumnError{Column: c.Name, Op: op}
	}
	sort.Float64s(vals)
	return quantile(vals, 0.25), quantile(vals, 0.75), nil
}

// DetectOutliers computes, for every numeric column, the Tukey fences
// [Q1-k*IQR, Q3+k*IQR] and the count of values strictly outside them. The
// table is not mutated. k <= 0 falls back to DefaultIQRMultiplier.
func DetectOutliers(t *table.Table, k float64) (OutlierReport, error) {
	if k <= 0 {
		k = DefaultIQRMultiplier
	}
	rep := make(OutlierReport)
	for _, c := range t.Columns() {
		if c.Kind != table.Numeric {
			continue
		}
		q1, q3, err := quartiles(c, "detect outliers")
		if err != nil {
			return nil, err
		}
		iqr := q3 - q1
		b := Bounds{Lower: q1 - k*iqr, Upper: q3 + k*iqr}
		for i, v := range c.Floats {
			if c.Missing[i] {
				continue
			}
			if v < b.Lower || v > b.Upper {
				b.Count++
			}
		}
		rep[c.Name] = b
	}
	return rep, nil
}

// CapOutliers clamps every numeric value into its column's Tukey fences
// (winsorizing): row count is preserved and missing entries are untouched.
// Reapplying to the result is a no-op, since clamped values lie inside the
// recomputed fences. k <= 0 falls back to DefaultIQRMultiplier.
func CapOutliers(t *table.Table, k float64) (*table.Table, error) {
	if k <= 0 {
		k = DefaultIQRMultiplier
	}
	out := t.Clone()
	for _, c := range out.Columns() {
		if c.Kind != table.Numeric {
			continue
		}
		q1, q3, err := quartiles(c, "cap outliers")
		if err != nil {
			return nil, err
		}
		iqr := q3 - q1
		lower, upper := q1-k*iqr, q3+k*iqr
		for i, v := range c.Floats {
			if c.Missing[i] {
				continue
			}
			if v < lower {
				c.Floats[i] = lower
			} else if v > upper {
				c.Floats[i] = upper
			}
		}
	}
	return out, nil
}
