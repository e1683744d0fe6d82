package table

import "fmt"

// ParseError indicates a source file could not be decoded as delimited text.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// WriteError indicates a destination path could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// SchemaError indicates a required column is absent from the table.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string { return fmt.Sprintf("column not found: %s", e.Column) }

// EmptyColumnError indicates a statistic was requested over a column with no
// non-missing values (all-missing or zero rows).
type EmptyColumnError struct {
	Column string
	Op     string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("%s: column %s has no non-missing values", e.Op, e.Column)
}
