package amtrie

import (
	"github.com/pkg/errors"
)

// Insert returns a new root with the values stored under a key, replacing any
// values the key had. The old root is left intact and every subtree off the
// key's path is shared between both.
//
// ErrKeyConflict is returned if the key passes through a leaf or ends on a
// non-empty branch.
func Insert[V any](root Node[V], key Key, values ...V) (Node[V], error) {
	if err := key.Check(); err != nil {
		return nil, err
	}

	return insert(root, key, 0, NewLeaf(values...))
}

func insert[V any](cur Node[V], key Key, depth int, leaf *Leaf[V]) (Node[V], error) {
	if isNil(cur) {
		cur = nil
	}

	if depth == len(key) {
		switch node := cur.(type) {
		case *Branch[V]:
			if node.bitmap != 0 {
				return nil, errors.Wrapf(ErrKeyConflict, "key %v ends on a branch", key)
			}
		}

		return leaf, nil
	}

	sym := key[depth]

	switch node := cur.(type) {
	case *Leaf[V]:
		return nil, errors.Wrapf(ErrKeyConflict, "key %v passes a leaf at depth %d", key, depth)

	case *Branch[V]:
		child, _, err := node.EntryFor(sym)
		if err != nil {
			return nil, err
		}

		next, err := insert(child, key, depth+1, leaf)
		if err != nil {
			return nil, err
		}

		return node.withChild(sym, next), nil
	}

	// an empty spot - grow a chain of single-child branches
	next, err := insert(nil, key, depth+1, leaf)
	if err != nil {
		return nil, err
	}

	return (&Branch[V]{}).withChild(sym, next), nil
}

// Delete returns a new root without a key and reports whether the key was
// present. Branches left without children are pruned; a trie that loses its
// last key becomes an empty branch.
func Delete[V any](root Node[V], key Key) (Node[V], bool, error) {
	if err := key.Check(); err != nil {
		return nil, false, err
	}

	next, removed, err := remove(root, key, 0)

	switch {
	case err != nil:
		return nil, false, err
	case !removed:
		return root, false, nil
	case next == nil:
		return &Branch[V]{}, true, nil
	}

	return next, true, nil
}

// remove returns nil in place of a node that became empty.
func remove[V any](cur Node[V], key Key, depth int) (Node[V], bool, error) {
	switch node := cur.(type) {
	case *Leaf[V]:
		if node == nil || depth != len(key) {
			return cur, false, nil
		}

		return nil, true, nil

	case *Branch[V]:
		if node == nil || depth == len(key) {
			return cur, false, nil
		}

		sym := key[depth]

		child, ok, err := node.EntryFor(sym)
		if err != nil || !ok {
			return cur, false, err
		}

		next, removed, err := remove(child, key, depth+1)
		if err != nil || !removed {
			return cur, false, err
		}

		if next == nil {
			if node.Len() == 1 {
				return nil, true, nil
			}

			return node.withoutChild(sym), true, nil
		}

		return node.withChild(sym, next), true, nil
	}

	return cur, false, nil
}
