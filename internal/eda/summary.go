// Package eda computes the descriptive side of the toolkit: per-column
// summary statistics, structure reports, correlation matrices, group means
// and monthly trend aggregates. Nothing here renders; charts live in viz.
package eda

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
)

// ColumnStats is the describe() row for one numeric column: spread and
// location over the non-missing values, with sample (n-1) variance and std.
type ColumnStats struct {
	Name     string
	Count    int
	Mean     float64
	Std      float64
	Variance float64
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
}

// Describe computes summary statistics for every numeric column, in table
// order. A numeric column with no non-missing values yields an
// EmptyColumnError.
func Describe(t *table.Table) ([]ColumnStats, error) {
	var out []ColumnStats
	for _, c := range t.Columns() {
		if c.Kind != table.Numeric {
			continue
		}
		vals := c.ValidFloats()
		if len(vals) == 0 {
			return nil, &table.EmptyColumnError{Column: c.Name, Op: "describe"}
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		s := ColumnStats{
			Name:   c.Name,
			Count:  len(vals),
			Mean:   stat.Mean(vals, nil),
			Min:    floats.Min(sorted),
			Max:    floats.Max(sorted),
			Q1:     quantile(sorted, 0.25),
			Median: quantile(sorted, 0.5),
			Q3:     quantile(sorted, 0.75),
		}
		if len(vals) > 1 {
			s.Variance = stat.Variance(vals, nil)
			s.Std = math.Sqrt(s.Variance)
		}
		out = append(out, s)
	}
	return out, nil
}

// quantile interpolates linearly between the order statistics at q*(n-1),
// the "linear" method of pandas/numpy. The input must be sorted.
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

// StructureReport lists every column's kind plus the categorical and datetime
// column names, mirroring a dtype check before analysis.
type StructureReport struct {
	Kinds       map[string]table.Kind
	Categorical []string
	Datetime    []string
}

// Structure reports the kind of every column in the table.
func Structure(t *table.Table) StructureReport {
	rep := StructureReport{Kinds: make(map[string]table.Kind, t.NumCols())}
	for _, c := range t.Columns() {
		rep.Kinds[c.Name] = c.Kind
		switch c.Kind {
		case table.Categorical:
			rep.Categorical = append(rep.Categorical, c.Name)
		case table.Datetime:
			rep.Datetime = append(rep.Datetime, c.Name)
		}
	}
	return rep
}

// CorrMatrix is a symmetric Pearson correlation matrix over numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Correlations computes pairwise Pearson correlations among the named numeric
// columns (all numeric columns when none are named), using rows where both
// values are present. Pairs with fewer than two complete rows or zero
// variance correlate as 0. Naming an absent column is a SchemaError; naming a
// non-numeric one is an error.
func Correlations(t *table.Table, names ...string) (*CorrMatrix, error) {
	var cols []*table.Column
	if len(names) == 0 {
		for _, c := range t.Columns() {
			if c.Kind == table.Numeric {
				cols = append(cols, c)
			}
		}
	} else {
		for _, n := range names {
			c, err := t.Column(n)
			if err != nil {
				return nil, err
			}
			if c.Kind != table.Numeric {
				return nil, fmt.Errorf("correlations: column %s is %s, want numeric", n, c.Kind)
			}
			cols = append(cols, c)
		}
	}

	m := &CorrMatrix{Columns: make([]string, len(cols)), Values: make([][]float64, len(cols))}
	for i, c := range cols {
		m.Columns[i] = c.Name
		m.Values[i] = make([]float64, len(cols))
		m.Values[i][i] = 1
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := pairwiseCorr(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func pairwiseCorr(a, b *table.Column) float64 {
	var xs, ys []float64
	for i := range a.Floats {
		if a.Missing[i] || b.Missing[i] {
			continue
		}
		xs = append(xs, a.Floats[i])
		ys = append(ys, b.Floats[i])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// GroupMean holds per-group means of selected numeric columns.
type GroupMean struct {
	Key   string
	N     int
	Means map[string]float64
}

// GroupMeans groups rows by a categorical column and averages the given
// numeric columns per group, sorted by group key. Rows where the group value
// is missing are skipped; missing numeric cells are excluded from the mean.
func GroupMeans(t *table.Table, groupCol string, valueCols ...string) ([]GroupMean, error) {
	g, err := t.Column(groupCol)
	if err != nil {
		return nil, err
	}
	if g.Kind != table.Categorical {
		return nil, fmt.Errorf("group means: column %s is %s, want categorical", groupCol, g.Kind)
	}
	vals := make([]*table.Column, len(valueCols))
	for i, n := range valueCols {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		if c.Kind != table.Numeric {
			return nil, fmt.Errorf("group means: column %s is %s, want numeric", n, c.Kind)
		}
		vals[i] = c
	}

	type acc struct {
		n   int
		sum map[string]float64
		cnt map[string]int
	}
	groups := make(map[string]*acc)
	for i := range g.Strings {
		if g.Missing[i] {
			continue
		}
		key := g.Strings[i]
		a := groups[key]
		if a == nil {
			a = &acc{sum: make(map[string]float64), cnt: make(map[string]int)}
			groups[key] = a
		}
		a.n++
		for _, c := range vals {
			if c.Missing[i] {
				continue
			}
			a.sum[c.Name] += c.Floats[i]
			a.cnt[c.Name]++
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]GroupMean, 0, len(keys))
	for _, k := range keys {
		a := groups[k]
		gm := GroupMean{Key: k, N: a.n, Means: make(map[string]float64, len(vals))}
		for _, c := range vals {
			if a.cnt[c.Name] > 0 {
				gm.Means[c.Name] = a.sum[c.Name] / float64(a.cnt[c.Name])
			}
		}
		out = append(out, gm)
	}
	return out, nil
}

// MonthRow is one calendar month of aggregated totals. Change holds the
// month-over-month fractional change per column; it is NaN for the first
// month and whenever the previous total is zero.
type MonthRow struct {
	Month  time.Time
	Totals map[string]float64
	Change map[string]float64
}

// MonthlyTotals sums the given numeric columns per calendar month of the
// datetime column, from the earliest to the latest observed month. Months
// with no rows carry the previous month's totals forward.
func MonthlyTotals(t *table.Table, dateCol string, valueCols ...string) ([]MonthRow, error) {
	d, err := t.Column(dateCol)
	if err != nil {
		return nil, err
	}
	if d.Kind != table.Datetime {
		return nil, fmt.Errorf("monthly totals: column %s is %s, want datetime", dateCol, d.Kind)
	}
	if len(valueCols) == 0 {
		return nil, fmt.Errorf("monthly totals: no value columns given")
	}
	vals := make([]*table.Column, len(valueCols))
	for i, n := range valueCols {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		if c.Kind != table.Numeric {
			return nil, fmt.Errorf("monthly totals: column %s is %s, want numeric", n, c.Kind)
		}
		vals[i] = c
	}

	sums := make(map[time.Time]map[string]float64)
	var minM, maxM time.Time
	for i := range d.Times {
		if d.Missing[i] {
			continue
		}
		m := monthStart(d.Times[i])
		if minM.IsZero() || m.Before(minM) {
			minM = m
		}
		if maxM.IsZero() || m.After(maxM) {
			maxM = m
		}
		row := sums[m]
		if row == nil {
			row = make(map[string]float64, len(vals))
			sums[m] = row
		}
		for _, c := range vals {
			if !c.Missing[i] {
				row[c.Name] += c.Floats[i]
			}
		}
	}
	if minM.IsZero() {
		return nil, &table.EmptyColumnError{Column: dateCol, Op: "monthly totals"}
	}

	var out []MonthRow
	var prev map[string]float64
	for m := minM; !m.After(maxM); m = m.AddDate(0, 1, 0) {
		totals := sums[m]
		if totals == nil {
			// Gap month: carry the previous totals forward.
			totals = make(map[string]float64, len(prev))
			for k, v := range prev {
				totals[k] = v
			}
		}
		row := MonthRow{Month: m, Totals: totals, Change: make(map[string]float64, len(vals))}
		for _, c := range vals {
			row.Change[c.Name] = math.NaN()
			if prev != nil {
				if pv := prev[c.Name]; pv != 0 {
					row.Change[c.Name] = (totals[c.Name] - pv) / pv
				}
			}
		}
		out = append(out, row)
		prev = totals
	}
	return out, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// GroupSeries is one group's monthly totals of a single numeric column,
// feeding the per-group trend chart.
type GroupSeries struct {
	Key    string
	Months []time.Time
	Totals []float64
}

// MonthlyTotalsByGroup sums one numeric column per calendar month within each
// group of a categorical column, sorted by group key. Months inside a group
// with no rows are carried forward, so every series is contiguous.
func MonthlyTotalsByGroup(t *table.Table, groupCol, dateCol, valueCol string) ([]GroupSeries, error) {
	g, err := t.Column(groupCol)
	if err != nil {
		return nil, err
	}
	if g.Kind != table.Categorical {
		return nil, fmt.Errorf("monthly totals: column %s is %s, want categorical", groupCol, g.Kind)
	}
	d, err := t.Column(dateCol)
	if err != nil {
		return nil, err
	}
	if d.Kind != table.Datetime {
		return nil, fmt.Errorf("monthly totals: column %s is %s, want datetime", dateCol, d.Kind)
	}
	v, err := t.Column(valueCol)
	if err != nil {
		return nil, err
	}
	if v.Kind != table.Numeric {
		return nil, fmt.Errorf("monthly totals: column %s is %s, want numeric", valueCol, v.Kind)
	}

	type span struct {
		sums       map[time.Time]float64
		minM, maxM time.Time
	}
	groups := make(map[string]*span)
	for i := range g.Strings {
		if g.Missing[i] || d.Missing[i] || v.Missing[i] {
			continue
		}
		key := g.Strings[i]
		s := groups[key]
		if s == nil {
			s = &span{sums: make(map[time.Time]float64)}
			groups[key] = s
		}
		m := monthStart(d.Times[i])
		if s.minM.IsZero() || m.Before(s.minM) {
			s.minM = m
		}
		if s.maxM.IsZero() || m.After(s.maxM) {
			s.maxM = m
		}
		s.sums[m] += v.Floats[i]
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]GroupSeries, 0, len(keys))
	for _, k := range keys {
		s := groups[k]
		gs := GroupSeries{Key: k}
		last := 0.0
		for m := s.minM; !m.After(s.maxM); m = m.AddDate(0, 1, 0) {
			if tot, ok := s.sums[m]; ok {
				last = tot
			}
			gs.Months = append(gs.Months, m)
			gs.Totals = append(gs.Totals, last)
		}
		out = append(out, gs)
	}
	return out, nil
}
