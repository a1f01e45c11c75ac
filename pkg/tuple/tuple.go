// Package tuple implements the immutable row type and the row-identifier
// type, grounded on the teacher's pkg/tuple/tuple.go (the map-backed,
// strictly-validating lineage — the teacher also carries a laxly-validating
// lineage under src/pkg/fields, which is not used here: validating on
// construction is what preserves the rid-stability and tuple-type-invariant
// properties).
package tuple

import (
	"storeql/pkg/dberrors"
	"storeql/pkg/schema"
	"storeql/pkg/types"
)

// RID is an opaque row identifier, monotonically allocated per table
// starting at 0, never reused after deletion.
type RID int64

// Tuple is an immutable row: a non-owning reference to the schema that
// describes it, plus a field vector validated against that schema at
// construction time.
type Tuple struct {
	schema *schema.Schema
	fields []types.Value
}

// New validates len(fields) == schema.Count() and per-field conformance,
// returning a TypeMismatch error on the first non-conformant field.
func New(s *schema.Schema, fields []types.Value) (*Tuple, error) {
	if len(fields) != s.Count() {
		return nil, dberrors.Newf(dberrors.TypeMismatch, "tuple", "New",
			"expected %d fields, got %d", s.Count(), len(fields))
	}
	for i, f := range fields {
		col, err := s.ColumnAt(i)
		if err != nil {
			return nil, err
		}
		if !f.Conformant(col.Type) {
			return nil, dberrors.Newf(dberrors.TypeMismatch, "tuple", "New",
				"column %q expects %v, got %v", col.Name, col.Type, f.DataType())
		}
	}
	cp := make([]types.Value, len(fields))
	copy(cp, fields)
	return &Tuple{schema: s, fields: cp}, nil
}

// Schema returns the tuple's schema reference.
func (t *Tuple) Schema() *schema.Schema { return t.schema }

// Field returns the value at position i.
func (t *Tuple) Field(i int) (types.Value, error) {
	if i < 0 || i >= len(t.fields) {
		return types.Value{}, dberrors.Newf(dberrors.OutOfRange, "tuple", "Field",
			"field index %d out of range [0,%d)", i, len(t.fields))
	}
	return t.fields[i], nil
}

// Fields returns the full field vector. Callers must not mutate it.
func (t *Tuple) Fields() []types.Value { return t.fields }

// WithUpdatedFields returns a new Tuple sharing this tuple's schema, with
// fields replaced wholesale, re-validated. Used by UpdateTuple.
func (t *Tuple) WithUpdatedFields(fields []types.Value) (*Tuple, error) {
	return New(t.schema, fields)
}
