// Package index implements the key -> rid-set wrapper around a B+-tree,
// grounded on the teacher's pkg/storage/index/btree.BTree (Insert/Delete/
// Search/RangeSearch contract) but restructured per the spec: the B+-tree
// stores distinct keys only, and this package owns the auxiliary ordered
// multimap from key to the set of rids currently associated with it.
package index

import (
	"storeql/pkg/btree"
	"storeql/pkg/dberrors"
	"storeql/pkg/tuple"
	"storeql/pkg/types"
)

// Index is a per-table, per-name ordered multimap keyed by one column's
// value, each key mapping to a set of rids.
type Index struct {
	keyType types.DataType
	tree    *btree.Tree
	byKey   map[string][]tuple.RID
}

// New constructs an empty index over keys of the given data type with the
// given B+-tree minimum degree.
func New(keyType types.DataType, degree int) *Index {
	return &Index{
		keyType: keyType,
		tree:    btree.New(degree),
		byKey:   make(map[string][]tuple.RID),
	}
}

func (ix *Index) KeyType() types.DataType { return ix.keyType }

func keyOf(v types.Value) string {
	// The byKey map is keyed by the value's canonical string form; the
	// B+-tree remains the source of truth for ordering, this map only
	// tracks the rid set per distinct key.
	return v.DataType().String() + ":" + v.String()
}

// Insert adds rid to the multimap under key, inserting key into the
// B+-tree the first time it appears.
func (ix *Index) Insert(key types.Value, rid tuple.RID) error {
	if !key.Conformant(ix.keyType) {
		return dberrors.Newf(dberrors.TypeMismatch, "index", "Insert",
			"key type %v does not match index key type %v", key.DataType(), ix.keyType)
	}
	k := keyOf(key)
	if _, exists := ix.byKey[k]; !exists {
		if err := ix.tree.Insert(key); err != nil {
			return err
		}
	}
	ix.byKey[k] = append(ix.byKey[k], rid)
	return nil
}

// Remove removes one occurrence of (key, rid), a silent no-op if the pair
// is not present. If no rids remain for key, key is removed from the tree.
func (ix *Index) Remove(key types.Value, rid tuple.RID) error {
	k := keyOf(key)
	rids, ok := ix.byKey[k]
	if !ok {
		return nil
	}
	for i, r := range rids {
		if r == rid {
			rids = append(rids[:i], rids[i+1:]...)
			break
		}
	}
	if len(rids) == 0 {
		delete(ix.byKey, k)
		return ix.tree.Remove(key)
	}
	ix.byKey[k] = rids
	return nil
}

// Search returns all rids currently associated with key, in unspecified
// but stable order.
func (ix *Index) Search(key types.Value) []tuple.RID {
	rids := ix.byKey[keyOf(key)]
	out := make([]tuple.RID, len(rids))
	copy(out, rids)
	return out
}

// RangeQuery returns the concatenation of Search(k) for every k the tree
// reports within [lo, hi], in ascending key order.
func (ix *Index) RangeQuery(lo, hi types.Value) []tuple.RID {
	keys := ix.tree.RangeQuery(lo, hi)
	var out []tuple.RID
	for _, k := range keys {
		out = append(out, ix.byKey[keyOf(k)]...)
	}
	return out
}
