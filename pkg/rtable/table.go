// Package rtable implements Table: a row store indexed by row-id that owns
// its secondary indices and keeps them consistent under insert/update/
// delete, grounded on the teacher's pkg/table package shape (schema +
// tuple map + index registry) but map-backed for rids rather than
// page/slot-backed, matching the spec's map-backed lineage decision.
package rtable

import (
	"sort"

	"storeql/pkg/dberrors"
	"storeql/pkg/index"
	"storeql/pkg/schema"
	"storeql/pkg/tuple"
	"storeql/pkg/types"
)

// IndexInfo describes one secondary index registered on a table.
type IndexInfo struct {
	ColumnIndex int
	DataType    types.DataType
	Index       *index.Index
}

// Table owns a sealed schema, a rid -> Tuple mapping, the next-rid
// counter, and the named secondary indices defined on it.
type Table struct {
	name    string
	schema  *schema.Schema
	rows    map[tuple.RID]*tuple.Tuple
	nextRid tuple.RID
	indexes map[string]*IndexInfo
}

// New constructs an empty table over the given sealed schema.
func New(name string, s *schema.Schema) *Table {
	return &Table{
		name:    name,
		schema:  s,
		rows:    make(map[tuple.RID]*tuple.Tuple),
		indexes: make(map[string]*IndexInfo),
	}
}

func (t *Table) Name() string          { return t.name }
func (t *Table) Schema() *schema.Schema { return t.schema }

// InsertTuple validates the field vector against the schema, allocates a
// fresh rid, stores the tuple, and adds it to every registered index.
// Returns the new rid, or TypeMismatch if validation fails.
func (t *Table) InsertTuple(fields []types.Value) (tuple.RID, error) {
	tup, err := tuple.New(t.schema, fields)
	if err != nil {
		return 0, err
	}

	rid := t.nextRid
	t.nextRid++
	t.rows[rid] = tup

	for _, info := range t.indexes {
		v := fields[info.ColumnIndex]
		if err := info.Index.Insert(v, rid); err != nil {
			return 0, err
		}
	}
	return rid, nil
}

// RemoveTuple removes the tuple at rid from every index before erasing it.
// Returns false if rid is absent. Rids are never reused.
func (t *Table) RemoveTuple(rid tuple.RID) (bool, error) {
	tup, ok := t.rows[rid]
	if !ok {
		return false, nil
	}
	for _, info := range t.indexes {
		v, err := tup.Field(info.ColumnIndex)
		if err != nil {
			return false, err
		}
		if err := info.Index.Remove(v, rid); err != nil {
			return false, err
		}
	}
	delete(t.rows, rid)
	return true, nil
}

// UpdateTuple replaces the stored tuple at rid, removing the old
// (key, rid) pair and inserting the new one for every index — even when
// the key is unchanged, so the operation is net-zero on the index
// bookkeeping. Returns false if rid is absent.
func (t *Table) UpdateTuple(rid tuple.RID, fields []types.Value) (bool, error) {
	old, ok := t.rows[rid]
	if !ok {
		return false, nil
	}
	newTup, err := old.WithUpdatedFields(fields)
	if err != nil {
		return false, err
	}

	for _, info := range t.indexes {
		oldVal, err := old.Field(info.ColumnIndex)
		if err != nil {
			return false, err
		}
		if err := info.Index.Remove(oldVal, rid); err != nil {
			return false, err
		}
	}

	t.rows[rid] = newTup

	for _, info := range t.indexes {
		newVal := fields[info.ColumnIndex]
		if err := info.Index.Insert(newVal, rid); err != nil {
			return false, err
		}
	}
	return true, nil
}

// GetTuple returns the tuple stored at rid, failing with NotFound if
// absent.
func (t *Table) GetTuple(rid tuple.RID) (*tuple.Tuple, error) {
	tup, ok := t.rows[rid]
	if !ok {
		return nil, dberrors.Newf(dberrors.NotFound, "rtable", "GetTuple", "rid %d not found in table %q", rid, t.name)
	}
	return tup, nil
}

// AllRids returns the live rids. Order is not part of the contract, but
// this implementation returns them in ascending rid order — since rids are
// allocated monotonically, that also happens to be insertion order, which
// is a convenient and still-valid instance of "unspecified".
func (t *Table) AllRids() []tuple.RID {
	out := make([]tuple.RID, 0, len(t.rows))
	for rid := range t.rows {
		out = append(out, rid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CreateIndex builds a fresh index over columnIndex, populates it from
// every live tuple, then registers it under name. Fails with AlreadyExists
// if the name is taken, OutOfRange if the column index is invalid,
// TypeMismatch if keyType doesn't match the column's declared type.
func (t *Table) CreateIndex(name string, columnIndex int, keyType types.DataType, degree int) error {
	if _, exists := t.indexes[name]; exists {
		return dberrors.Newf(dberrors.AlreadyExists, "rtable", "CreateIndex", "index %q already exists", name)
	}
	col, err := t.schema.ColumnAt(columnIndex)
	if err != nil {
		return err
	}
	if col.Type != keyType {
		return dberrors.Newf(dberrors.TypeMismatch, "rtable", "CreateIndex",
			"column %q has type %v, requested key type %v", col.Name, col.Type, keyType)
	}

	ix := index.New(keyType, degree)
	for rid, tup := range t.rows {
		v, err := tup.Field(columnIndex)
		if err != nil {
			return err
		}
		if err := ix.Insert(v, rid); err != nil {
			return err
		}
	}

	t.indexes[name] = &IndexInfo{ColumnIndex: columnIndex, DataType: keyType, Index: ix}
	return nil
}

// DropIndex removes a registered index by name. A no-op if absent, since
// callers (Catalog.DropIndex / DropTable cleanup) may call it defensively.
func (t *Table) DropIndex(name string) {
	delete(t.indexes, name)
}

// GetIndex returns the named index, failing with NotFound if absent.
func (t *Table) GetIndex(name string) (*IndexInfo, error) {
	info, ok := t.indexes[name]
	if !ok {
		return nil, dberrors.Newf(dberrors.NotFound, "rtable", "GetIndex", "index %q not found", name)
	}
	return info, nil
}

// IndexNames returns the registered index names in unspecified order.
func (t *Table) IndexNames() []string {
	names := make([]string, 0, len(t.indexes))
	for n := range t.indexes {
		names = append(names, n)
	}
	return names
}
