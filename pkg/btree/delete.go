package btree

import "storeql/pkg/types"

// deleteFrom removes one occurrence of key from the subtree rooted at n,
// preemptively rebalancing the child it is about to descend into — the
// delete-side mirror of insertNonFull's preemptive split. Because this is a
// true B+-tree, the key being removed always lives in a leaf; internal
// nodes never hold live data, so there is no predecessor/successor swap —
// only leaf erase plus borrow-or-merge rebalancing on the way back up.
func (bt *Tree) deleteFrom(n *node, key types.Value) bool {
	if n.leaf {
		for idx, k := range n.keys {
			if c, err := k.Compare(key); err == nil && c == 0 {
				n.keys = removeValueAt(n.keys, idx)
				return true
			}
		}
		return false
	}

	i := childIndex(n, key)
	if len(n.children[i].keys) == bt.minKeys() {
		i = bt.fixChild(n, i)
	}
	return bt.deleteFrom(n.children[i], key)
}

// fixChild ensures parent.children[i] holds more than the minimum number
// of keys before the caller descends into it, by borrowing from a sibling
// with keys to spare or, failing that, merging with a sibling. Returns the
// index of the (possibly shifted) child to descend into.
func (bt *Tree) fixChild(parent *node, i int) int {
	if i > 0 && len(parent.children[i-1].keys) > bt.minKeys() {
		borrowFromLeft(parent, i)
		return i
	}
	if i < len(parent.children)-1 && len(parent.children[i+1].keys) > bt.minKeys() {
		borrowFromRight(parent, i)
		return i
	}
	if i > 0 {
		mergeChildren(parent, i-1)
		return i - 1
	}
	mergeChildren(parent, i)
	return i
}

func borrowFromLeft(parent *node, i int) {
	left := parent.children[i-1]
	cur := parent.children[i]

	if cur.leaf {
		moved := left.keys[len(left.keys)-1]
		left.keys = left.keys[:len(left.keys)-1]
		cur.keys = insertValueAt(cur.keys, 0, moved)
		parent.keys[i-1] = left.keys[len(left.keys)-1]
		return
	}

	movedKey := left.keys[len(left.keys)-1]
	movedChild := left.children[len(left.children)-1]
	left.keys = left.keys[:len(left.keys)-1]
	left.children = left.children[:len(left.children)-1]

	cur.keys = insertValueAt(cur.keys, 0, parent.keys[i-1])
	cur.children = append([]*node{movedChild}, cur.children...)
	parent.keys[i-1] = movedKey
}

func borrowFromRight(parent *node, i int) {
	cur := parent.children[i]
	right := parent.children[i+1]

	if cur.leaf {
		moved := right.keys[0]
		right.keys = removeValueAt(right.keys, 0)
		cur.keys = append(cur.keys, moved)
		parent.keys[i] = moved
		return
	}

	movedKey := right.keys[0]
	movedChild := right.children[0]
	right.keys = removeValueAt(right.keys, 0)
	right.children = right.children[1:]

	cur.keys = append(cur.keys, parent.keys[i])
	cur.children = append(cur.children, movedChild)
	parent.keys[i] = movedKey
}

// mergeChildren merges parent.children[i+1] into parent.children[i],
// removing the separator key at parent.keys[i] and the now-absorbed
// sibling from parent.children.
func mergeChildren(parent *node, i int) {
	left := parent.children[i]
	right := parent.children[i+1]

	if left.leaf {
		left.keys = append(left.keys, right.keys...)
		left.next = right.next
	} else {
		left.keys = append(left.keys, parent.keys[i])
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
	}

	parent.keys = removeValueAt(parent.keys, i)
	parent.children = append(parent.children[:i+1], parent.children[i+2:]...)
}
