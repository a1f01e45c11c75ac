// Package schema implements Column and Schema, grounded on the teacher's
// pkg/tuple/tuple_description.go (TupleDescription's ordered field list with
// name-to-index lookup), narrowed to the three-variant DataType of
// pkg/types and sealed at construction rather than built up incrementally.
package schema

import (
	"storeql/pkg/dberrors"
	"storeql/pkg/types"
)

// Column is a single (name, type) pair. Names are unique within a Schema.
type Column struct {
	Name string
	Type types.DataType
}

// Schema is an ordered, immutable sequence of Columns, sealed at
// construction. A Tuple holds a non-owning reference to one Schema; the
// Table that owns the Schema is the sole authority over its lifetime.
type Schema struct {
	columns []Column
	byName  map[string]int
}

// New builds a sealed Schema from an ordered column list. Fails with
// AlreadyExists if two columns share a name.
func New(columns []Column) (*Schema, error) {
	byName := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := byName[c.Name]; dup {
			return nil, dberrors.Newf(dberrors.AlreadyExists, "schema", "New",
				"duplicate column name %q", c.Name)
		}
		byName[c.Name] = i
	}
	cp := make([]Column, len(columns))
	copy(cp, columns)
	return &Schema{columns: cp, byName: byName}, nil
}

// Count returns the number of columns.
func (s *Schema) Count() int { return len(s.columns) }

// ColumnAt returns the column at position i, failing with OutOfRange if
// i is not a valid column index.
func (s *Schema) ColumnAt(i int) (Column, error) {
	if i < 0 || i >= len(s.columns) {
		return Column{}, dberrors.Newf(dberrors.OutOfRange, "schema", "ColumnAt",
			"column index %d out of range [0,%d)", i, len(s.columns))
	}
	return s.columns[i], nil
}

// IndexOf returns the position of the named column, failing with NotFound
// if no column by that name exists.
func (s *Schema) IndexOf(name string) (int, error) {
	idx, ok := s.byName[name]
	if !ok {
		return 0, dberrors.Newf(dberrors.NotFound, "schema", "IndexOf",
			"no column named %q", name)
	}
	return idx, nil
}

// HasColumn reports whether name is a column of this schema.
func (s *Schema) HasColumn(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Columns returns the ordered column list. Callers must not mutate it.
func (s *Schema) Columns() []Column { return s.columns }

// Combine concatenates the given schemas, in order, into a new sealed
// schema. Fails with AlreadyExists if a column name appears twice.
func Combine(schemas ...*Schema) (*Schema, error) {
	var cols []Column
	for _, s := range schemas {
		cols = append(cols, s.columns...)
	}
	return New(cols)
}
