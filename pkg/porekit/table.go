package porekit

import (
	"fmt"
	"path/filepath"
)

type missing struct{}

func (missing) String() string { return "NA" }

// Missing marks a column a file did not produce.
// It is distinct from zero values and the empty string.
var Missing any = missing{}

// IsMissing reports whether v is the Missing marker.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}

// Record is one file's flat, namespaced metadata. Keys are table columns.
type Record map[string]any

// NewRecord returns a record holding only the identity fields for path.
func NewRecord(path string) Record {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Record{
		FieldFilename:         filepath.Base(path),
		FieldAbsoluteFilename: abs,
	}
}

// Schema is the ordered, fixed column set of an aggregation run.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds the schema for the given descriptors: the identity fields
// followed by BaseName_key for every declared key, in descriptor order.
// Duplicate base names or colliding columns are configuration errors.
func NewSchema(descriptors ...ExtractorDescriptor) (Schema, error) {
	s := Schema{index: make(map[string]int)}
	for _, col := range IdentityFields() {
		s.add(col)
	}

	bases := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return Schema{}, err
		}
		if bases[d.BaseName] {
			return Schema{}, fmt.Errorf("duplicate extractor base name %q: %w", d.BaseName, ErrInvalidConfig)
		}
		bases[d.BaseName] = true

		for _, col := range d.Columns() {
			if _, dup := s.index[col]; dup {
				return Schema{}, fmt.Errorf("column %q declared twice: %w", col, ErrInvalidConfig)
			}
			s.add(col)
		}
	}
	return s, nil
}

// SchemaFor builds the schema for a configured extractor set.
func SchemaFor(extractors []Extractor) (Schema, error) {
	descriptors := make([]ExtractorDescriptor, len(extractors))
	for i, e := range extractors {
		descriptors[i] = e.Descriptor()
	}
	return NewSchema(descriptors...)
}

func (s *Schema) add(col string) {
	s.index[col] = len(s.columns)
	s.columns = append(s.columns, col)
}

// Columns returns a copy of the column names in order.
func (s Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.columns) }

// Index returns the position of col.
func (s Schema) Index(col string) (int, bool) {
	i, ok := s.index[col]
	return i, ok
}

// Conform projects rec onto the schema. Columns rec lacks hold Missing;
// keys outside the schema are dropped.
func (s Schema) Conform(rec Record) []any {
	row := make([]any, len(s.columns))
	for i, col := range s.columns {
		v, ok := rec[col]
		if !ok || v == nil {
			row[i] = Missing
			continue
		}
		row[i] = v
	}
	return row
}

// Table is an ordered sequence of rows conforming to one Schema.
type Table struct {
	Schema Schema
	Rows   [][]any
}

// NewTable returns an empty table for s.
func NewTable(s Schema) *Table {
	return &Table{Schema: s}
}

// Append conforms rec to the table's schema and adds it as the last row.
func (t *Table) Append(rec Record) {
	t.Rows = append(t.Rows, t.Schema.Conform(rec))
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return t.Schema.Columns() }

// Column returns every row's value for col, Missing included.
func (t *Table) Column(col string) ([]any, error) {
	i, ok := t.Schema.Index(col)
	if !ok {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// Value returns the value at (row, col). The boolean is false when the
// column is unknown, the row is out of range, or the value is Missing.
func (t *Table) Value(row int, col string) (any, bool) {
	i, ok := t.Schema.Index(col)
	if !ok || row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	v := t.Rows[row][i]
	if IsMissing(v) {
		return nil, false
	}
	return v, true
}

// Present counts the rows holding a non-missing value for col.
func (t *Table) Present(col string) int {
	i, ok := t.Schema.Index(col)
	if !ok {
		return 0
	}
	n := 0
	for _, row := range t.Rows {
		if !IsMissing(row[i]) {
			n++
		}
	}
	return n
}
