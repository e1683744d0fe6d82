package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadOptions controls delimited-text loading.
type LoadOptions struct {
	// Delimiter is the field separator and is honored as given. The default
	// is the pipe character the insurance extract ships with.
	Delimiter rune
	// MissingTokens are cell values treated as missing (matched after
	// trimming surrounding whitespace).
	MissingTokens []string
}

// DefaultLoadOptions returns the loader defaults for the insurance extract.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Delimiter:     '|',
		MissingTokens: []string{"", "NA", "NaN", "null", "None"},
	}
}

const saveTimeLayout = "2006-01-02 15:04:05"

var timeLayouts = []string{
	time.RFC3339, saveTimeLayout, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

func parseTimeMaybe(s string) (time.Time, bool) {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Load reads a delimited UTF-8 text file with a header row into a Table.
// Column kinds are inferred from the non-missing values: a column whose
// values all parse as numbers is Numeric, all as datetimes is Datetime,
// anything else is Categorical. Failures surface as *ParseError.
func Load(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	if opt.Delimiter == 0 {
		opt.Delimiter = '|'
	}
	r := csv.NewReader(f)
	r.Comma = opt.Delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("empty file: no header row")}
	}

	header := records[0]
	ncol := len(header)
	missing := make(map[string]bool, len(opt.MissingTokens))
	for _, tok := range opt.MissingTokens {
		missing[tok] = true
	}

	// Collect raw cells per column; short rows are padded with missing.
	raw := make([][]string, ncol)
	mask := make([][]bool, ncol)
	for _, rec := range records[1:] {
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			raw[j] = append(raw[j], v)
			mask[j] = append(mask[j], missing[v])
		}
	}

	cols := make([]*Column, ncol)
	for j := 0; j < ncol; j++ {
		cols[j] = buildColumn(strings.TrimSpace(header[j]), raw[j], mask[j])
	}
	t, err := New(cols...)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return t, nil
}

// buildColumn infers the column kind and materializes the typed backing slice.
func buildColumn(name string, raw []string, miss []bool) *Column {
	numeric := true
	datetime := true
	seen := false
	for i, v := range raw {
		if miss[i] {
			continue
		}
		seen = true
		if numeric {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
			}
		}
		if datetime {
			if _, ok := parseTimeMaybe(v); !ok {
				datetime = false
			}
		}
		if !numeric && !datetime {
			break
		}
	}
	c := &Column{Name: name, Missing: miss}
	switch {
	case seen && numeric:
		c.Kind = Numeric
		c.Floats = make([]float64, len(raw))
		for i, v := range raw {
			if miss[i] {
				continue
			}
			c.Floats[i], _ = strconv.ParseFloat(v, 64)
		}
	case seen && datetime:
		c.Kind = Datetime
		c.Times = make([]time.Time, len(raw))
		for i, v := range raw {
			if miss[i] {
				continue
			}
			c.Times[i], _ = parseTimeMaybe(v)
		}
	default:
		// All-missing columns land here too; categorical is the safe kind
		// for a column we know nothing about.
		c.Kind = Categorical
		c.Strings = make([]string, len(raw))
		for i, v := range raw {
			if miss[i] {
				continue
			}
			c.Strings[i] = v
		}
	}
	return c
}

// Save serializes the table as comma-separated UTF-8 text with a header row
// and no index column. Missing entries are written as empty cells; floats use
// the shortest round-trippable form. The write is atomic (temp file + rename)
// and failures surface as *WriteError.
func Save(t *Table, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	cols := t.Columns()

	if err := w.Write(t.Names()); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	nrows := t.NumRows()
	rec := make([]string, len(cols))
	for i := 0; i < nrows; i++ {
		for j, c := range cols {
			rec[j] = cellString(c, i)
		}
		if err := w.Write(rec); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func cellString(c *Column, i int) string {
	if c.Missing[i] {
		return ""
	}
	switch c.Kind {
	case Numeric:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case Datetime:
		return c.Times[i].Format(saveTimeLayout)
	default:
		return c.Strings[i]
	}
}
