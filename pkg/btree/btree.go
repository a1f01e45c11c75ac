// Package btree implements an ordered, in-memory B+-tree of keys,
// parameterized by a minimum-degree t >= 2. Leaves hold the real keys and
// are linked in ascending order for sequential range scans; internal nodes
// hold only separator keys.
//
// Grounded on the teacher's pkg/storage/index/btree/{btree,btree_split,
// btree_delete}.go for split/borrow/merge naming and control flow, adapted
// from a page/transaction-backed store to plain node pointers (no
// persistence or transactions), and on original_source/src/storage/index/
// bplus_tree.{h,cpp} for the SplitChild/InsertNonFull top-down preemptive
// split algorithm — though the original is a classic B-tree that stores
// data in every node, while this implementation keeps data in leaves only,
// as the contract requires.
package btree

import (
	"storeql/pkg/dberrors"
	"storeql/pkg/types"
)

// node is either an internal routing node or a leaf. Internal nodes carry
// len(keys)+1 children and no data; leaves carry the real keys and a next
// pointer chaining leaves in ascending order.
type node struct {
	leaf     bool
	keys     []types.Value
	children []*node
	next     *node
}

func newLeaf() *node     { return &node{leaf: true} }
func newInternal() *node { return &node{leaf: false} }

// Tree is an in-memory B+-tree of types.Value keys.
type Tree struct {
	t    int
	root *node
}

// New constructs an empty tree with the given minimum degree. t must be
// >= 2; New panics otherwise, since a degree below 2 cannot satisfy the
// node-occupancy invariant.
func New(t int) *Tree {
	if t < 2 {
		panic("btree: minimum degree t must be >= 2")
	}
	return &Tree{t: t}
}

func (bt *Tree) maxKeys() int { return 2*bt.t - 1 }
func (bt *Tree) minKeys() int { return bt.t - 1 }

func (n *node) full(max int) bool { return len(n.keys) >= max }

// firstLeaf walks down the leftmost path from the root and returns the leaf
// holding the smallest keys (nil for an empty tree).
func (bt *Tree) firstLeaf() *node {
	n := bt.root
	for n != nil && !n.leaf {
		n = n.children[0]
	}
	return n
}

// childIndex returns the index of the child that should contain key, using
// the convention children[i] holds keys <= keys[i] and children[i+1] holds
// keys > keys[i]. This single comparator is used consistently for
// insertion, deletion, and search navigation.
func childIndex(n *node, key types.Value) int {
	i := 0
	for i < len(n.keys) {
		c, err := key.Compare(n.keys[i])
		if err != nil || c > 0 {
			i++
			continue
		}
		break
	}
	return i
}

// Insert adds key to the tree, splitting full nodes on the way down
// (preemptive split, CLRS-style): if the root is full a new root is
// allocated and the old root split beneath it before descending; a full
// child is split before the walk continues into the correct half.
func (bt *Tree) Insert(key types.Value) error {
	if bt.root == nil {
		bt.root = newLeaf()
	}
	if bt.root.full(bt.maxKeys()) {
		oldRoot := bt.root
		newRoot := newInternal()
		newRoot.children = []*node{oldRoot}
		bt.splitChild(newRoot, 0)
		bt.root = newRoot
	}
	bt.insertNonFull(bt.root, key)
	return nil
}

func (bt *Tree) insertNonFull(n *node, key types.Value) {
	if n.leaf {
		pos := 0
		for pos < len(n.keys) {
			c, _ := key.Compare(n.keys[pos])
			if c >= 0 {
				pos++
				continue
			}
			break
		}
		n.keys = insertValueAt(n.keys, pos, key)
		return
	}

	i := childIndex(n, key)
	if n.children[i].full(bt.maxKeys()) {
		bt.splitChild(n, i)
		i = childIndex(n, key)
	}
	bt.insertNonFull(n.children[i], key)
}

// Search reports whether key is currently present in the tree.
func (bt *Tree) Search(key types.Value) bool {
	leaf := bt.findLeaf(key)
	for leaf != nil {
		for _, k := range leaf.keys {
			c, err := k.Compare(key)
			if err != nil {
				continue
			}
			if c == 0 {
				return true
			}
			if c > 0 {
				return false
			}
		}
		leaf = leaf.next
	}
	return false
}

// findLeaf descends from the root to the leaf that would contain key.
func (bt *Tree) findLeaf(key types.Value) *node {
	n := bt.root
	for n != nil && !n.leaf {
		n = n.children[childIndex(n, key)]
	}
	return n
}

// RangeQuery returns all keys k with lo <= k <= hi, in ascending order.
// Duplicate keys, if present, appear once per occurrence.
func (bt *Tree) RangeQuery(lo, hi types.Value) []types.Value {
	var out []types.Value
	leaf := bt.findLeaf(lo)
	if leaf == nil {
		return out
	}
	for leaf != nil {
		for _, k := range leaf.keys {
			if cl, err := k.Compare(lo); err == nil && cl < 0 {
				continue
			}
			if ch, err := k.Compare(hi); err == nil && ch > 0 {
				return out
			}
			out = append(out, k)
		}
		leaf = leaf.next
	}
	return out
}

// Remove deletes one occurrence of key, rebalancing underflowing nodes by
// borrowing from a sibling or merging. Fails with NotFound if key is not
// present.
func (bt *Tree) Remove(key types.Value) error {
	if bt.root == nil {
		return dberrors.Newf(dberrors.NotFound, "btree", "Remove", "key not found")
	}
	removed := bt.deleteFrom(bt.root, key)
	if !removed {
		return dberrors.Newf(dberrors.NotFound, "btree", "Remove", "key not found")
	}
	if !bt.root.leaf && len(bt.root.keys) == 0 {
		bt.root = bt.root.children[0]
	}
	if bt.root.leaf && len(bt.root.keys) == 0 {
		bt.root = nil
	}
	return nil
}

func insertValueAt(s []types.Value, pos int, v types.Value) []types.Value {
	s = append(s, types.Value{})
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}

func removeValueAt(s []types.Value, pos int) []types.Value {
	return append(s[:pos], s[pos+1:]...)
}
