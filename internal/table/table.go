// Package table holds the in-memory tabular model shared by the loading,
// cleaning and analysis layers: named, equal-length, kind-typed columns with
// an explicit missing-value mask.
package table

import (
	"fmt"
	"time"
)

// Kind classifies a column's value type and drives which cleaning policy
// applies to it.
type Kind int

const (
	Numeric Kind = iota
	Categorical
	Datetime
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Datetime:
		return "datetime"
	}
	return "unknown"
}

// Column is a single named column. Exactly one of Floats, Strings or Times is
// populated, chosen by Kind; Missing is a parallel mask and is authoritative
// for missingness (the backing slot of a missing entry holds a zero value).
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Times   []time.Time
	Missing []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.Missing) }

// NumMissing counts missing entries.
func (c *Column) NumMissing() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// ValidFloats returns the non-missing values of a numeric column in row order.
func (c *Column) ValidFloats() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

func (c *Column) clone() *Column {
	cp := &Column{Name: c.Name, Kind: c.Kind}
	cp.Missing = append([]bool(nil), c.Missing...)
	cp.Floats = append([]float64(nil), c.Floats...)
	cp.Strings = append([]string(nil), c.Strings...)
	cp.Times = append([]time.Time(nil), c.Times...)
	return cp
}

// Table is an ordered set of uniquely named, equal-length columns. Rows are
// aligned by position.
type Table struct {
	cols   []*Column
	byName map[string]int
}

// New builds a Table and validates the column invariants: equal lengths and
// unique names.
func New(cols ...*Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name: %s", c.Name)
		}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %s has %d rows, want %d", c.Name, c.Len(), cols[0].Len())
		}
		t.byName[c.Name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// NumRows returns the row count (zero for a table with no columns).
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Columns returns the columns in table order. The slice is fresh but the
// columns are shared; callers that mutate should Clone first.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.cols...)
}

// Column looks a column up by name, returning a SchemaError when absent.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, &SchemaError{Column: name}
	}
	return t.cols[i], nil
}

// Drop returns a new Table without the named columns. Unknown names are
// ignored. The surviving columns are shared with the receiver, not copied.
func (t *Table) Drop(names ...string) *Table {
	gone := make(map[string]bool, len(names))
	for _, n := range names {
		gone[n] = true
	}
	out := &Table{byName: make(map[string]int)}
	for _, c := range t.cols {
		if gone[c.Name] {
			continue
		}
		out.byName[c.Name] = len(out.cols)
		out.cols = append(out.cols, c)
	}
	return out
}

// Clone deep-copies the table. Cleaning steps clone before mutating so the
// caller's table is never aliased.
func (t *Table) Clone() *Table {
	out := &Table{byName: make(map[string]int, len(t.cols))}
	for _, c := range t.cols {
		out.byName[c.Name] = len(out.cols)
		out.cols = append(out.cols, c.clone())
	}
	return out
}
