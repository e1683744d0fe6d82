package table

import (
	"errors"
	"testing"
)

func numCol(name string, vals []float64, miss []bool) *Column {
	if miss == nil {
		miss = make([]bool, len(vals))
	}
	return &Column{Name: name, Kind: Numeric, Floats: vals, Missing: miss}
}

func strCol(name string, vals []string, miss []bool) *Column {
	if miss == nil {
		miss = make([]bool, len(vals))
	}
	return &Column{Name: name, Kind: Categorical, Strings: vals, Missing: miss}
}

func TestNewRejectsUnequalLengths(t *testing.T) {
	_, err := New(
		numCol("a", []float64{1, 2, 3}, nil),
		numCol("b", []float64{1, 2}, nil),
	)
	if err == nil {
		t.Fatal("expected error for unequal column lengths")
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(
		numCol("a", []float64{1}, nil),
		numCol("a", []float64{2}, nil),
	)
	if err == nil {
		t.Fatal("expected error for duplicate column names")
	}
}

func TestColumnLookup(t *testing.T) {
	tb, err := New(numCol("Age", []float64{1, 2}, nil))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := tb.Column("Age"); err != nil {
		t.Fatalf("lookup Age: %v", err)
	}
	_, err = tb.Column("Province")
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Column != "Province" {
		t.Fatalf("SchemaError names %q, want Province", se.Column)
	}
}

func TestDropKeepsOrderAndIgnoresUnknown(t *testing.T) {
	tb, _ := New(
		numCol("a", []float64{1}, nil),
		strCol("b", []string{"x"}, nil),
		numCol("c", []float64{2}, nil),
	)
	out := tb.Drop("b", "nope")
	names := out.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("unexpected names after drop: %v", names)
	}
	if tb.NumCols() != 3 {
		t.Fatalf("drop mutated receiver: %d columns", tb.NumCols())
	}
}

func TestCloneIsDeep(t *testing.T) {
	tb, _ := New(numCol("a", []float64{1, 2}, []bool{false, true}))
	cp := tb.Clone()
	c, _ := cp.Column("a")
	c.Floats[0] = 99
	c.Missing[1] = false

	orig, _ := tb.Column("a")
	if orig.Floats[0] != 1 {
		t.Fatalf("clone shares float storage: %v", orig.Floats)
	}
	if !orig.Missing[1] {
		t.Fatal("clone shares missing mask")
	}
}

func TestNumMissingAndValidFloats(t *testing.T) {
	c := numCol("a", []float64{1, 0, 3}, []bool{false, true, false})
	if got := c.NumMissing(); got != 1 {
		t.Fatalf("NumMissing = %d, want 1", got)
	}
	vals := c.ValidFloats()
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 3 {
		t.Fatalf("ValidFloats = %v", vals)
	}
}
