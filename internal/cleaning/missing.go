// Package cleaning implements the missing-value and outlier policies applied
// to a loaded table: sparse-column removal, kind-keyed imputation and
// IQR-based winsorizing. Every function leaves its input table untouched and
// returns a new one.
package cleaning

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
)

// skewThreshold separates mean- from median-imputation: beyond this absolute
// skewness, mean imputation would be pulled into the tail.
const skewThreshold = 1.0

// MissingStat summarizes missingness for one column.
type MissingStat struct {
	Count   int
	Percent float64
}

// MissingReport maps column name to missing count and percentage, for columns
// with at least one missing entry.
type MissingReport map[string]MissingStat

// DetectMissing reports missing counts and percentages per column. Columns
// with no missing entries are omitted.
func DetectMissing(t *table.Table) MissingReport {
	rep := make(MissingReport)
	nrows := t.NumRows()
	for _, c := range t.Columns() {
		n := c.NumMissing()
		if n == 0 {
			continue
		}
		pct := 0.0
		if nrows > 0 {
			pct = float64(n) * 100 / float64(nrows)
		}
		rep[c.Name] = MissingStat{Count: n, Percent: pct}
	}
	return rep
}

// DropSparse removes every column whose missing fraction strictly exceeds
// threshold, and every 100%-missing column regardless of threshold. It
// returns the reduced table and the dropped names in table order.
func DropSparse(t *table.Table, threshold float64) (*table.Table, []string) {
	var dropped []string
	nrows := t.NumRows()
	for _, c := range t.Columns() {
		miss := c.NumMissing()
		if nrows == 0 {
			continue
		}
		frac := float64(miss) / float64(nrows)
		if frac > threshold || frac == 1.0 {
			dropped = append(dropped, c.Name)
		}
	}
	return t.Drop(dropped...), dropped
}

// Impute fills every missing entry in place of a policy keyed on column kind:
// categorical columns take the mode (ties broken by earliest first occurrence
// in the column), numeric columns take the median when |skewness| exceeds 1
// and the mean otherwise, and datetime columns are forward-filled with a
// backward-fill pass for leading gaps. A column with no non-missing values
// yields an EmptyColumnError.
func Impute(t *table.Table) (*table.Table, error) {
	out := t.Clone()
	for _, c := range out.Columns() {
		miss := c.NumMissing()
		if miss == 0 {
			continue
		}
		if miss == c.Len() {
			return nil, &table.EmptyColumnError{Column: c.Name, Op: "impute"}
		}
		switch c.Kind {
		case table.Categorical:
			fill := modeFirstSeen(c)
			for i := range c.Strings {
				if c.Missing[i] {
					c.Strings[i] = fill
					c.Missing[i] = false
				}
			}
		case table.Numeric:
			fill := numericFill(c.ValidFloats())
			for i := range c.Floats {
				if c.Missing[i] {
					c.Floats[i] = fill
					c.Missing[i] = false
				}
			}
		case table.Datetime:
			fillTimes(c)
		}
	}
	return out, nil
}

// modeFirstSeen returns the most frequent non-missing value; among equally
// frequent values the one occurring first in the column wins.
func modeFirstSeen(c *table.Column) string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, v := range c.Strings {
		if c.Missing[i] {
			continue
		}
		counts[v]++
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
	}
	best := ""
	bestCount := -1
	for v, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[v] < firstSeen[best]) {
			best, bestCount = v, n
		}
	}
	return best
}

// numericFill picks mean or median based on sample skewness. Skewness needs
// at least three observations; below that the mean is used.
func numericFill(vals []float64) float64 {
	if len(vals) >= 3 {
		if sk := stat.Skew(vals, nil); !math.IsNaN(sk) && math.Abs(sk) > skewThreshold {
			return median(vals)
		}
	}
	return stat.Mean(vals, nil)
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return quantile(sorted, 0.5)
}

// fillTimes forward-fills missing datetimes from the previous observation,
// then backward-fills any leading gap.
func fillTimes(c *table.Column) {
	last := -1
	for i := range c.Times {
		if c.Missing[i] {
			if last >= 0 {
				c.Times[i] = c.Times[last]
				c.Missing[i] = false
			}
			continue
		}
		// Backward-fill the leading gap once the first observation appears.
		if last < 0 {
			for j := 0; j < i; j++ {
				c.Times[j] = c.Times[i]
				c.Missing[j] = false
			}
		}
		last = i
	}
}
