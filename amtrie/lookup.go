package amtrie

import (
	"github.com/pkg/errors"

	"github.com/aglyzov/go-egg/bitindex"
)

// Lookup returns the values stored under a key.
//
// Absent keys are reported with ok == false and a nil error. A key that reaches
// a leaf before it is consumed, or is consumed on a branch, is absent as well:
// there is no prefix matching.
func Lookup[V any](root Node[V], key Key) (values []V, ok bool, err error) {
	return lookup(root, key, NopTracer{})
}

func lookup[V any](root Node[V], key Key, tracer Tracer) ([]V, bool, error) {
	cur := root

	for depth := 0; ; depth++ {
		switch node := cur.(type) {
		case *Leaf[V]:
			if node == nil {
				tracer.Miss(depth, MissEmpty)
				return nil, false, nil
			}

			if depth != len(key) {
				tracer.Miss(depth, MissLeaf)
				return nil, false, nil
			}

			tracer.Hit(depth, len(node.values))

			return node.Values(), true, nil

		case *Branch[V]:
			if node == nil {
				tracer.Miss(depth, MissEmpty)
				return nil, false, nil
			}

			if depth == len(key) {
				tracer.Miss(depth, MissBranch)
				return nil, false, nil
			}

			sym := key[depth]

			child, ok, err := node.EntryFor(sym)
			if err != nil {
				return nil, false, errors.WithMessagef(err, "lookup at depth %d", depth)
			}

			if !ok {
				tracer.Miss(depth, MissSymbol)
				return nil, false, nil
			}

			tracer.Descend(depth, sym, bitindex.CompactOffset(node.bitmap, sym))

			cur = child

		default: // nil
			tracer.Miss(depth, MissEmpty)
			return nil, false, nil
		}
	}
}

// Walk calls fn for every leaf in ascending key order until fn returns false.
//
// The key passed to fn is a fresh copy.
func Walk[V any](root Node[V], fn func(key Key, values []V) bool) {
	walk(root, nil, fn)
}

func walk[V any](node Node[V], prefix Key, fn func(Key, []V) bool) bool {
	switch n := node.(type) {
	case *Leaf[V]:
		if n == nil {
			return true
		}

		return fn(prefix.clone(), n.Values())

	case *Branch[V]:
		if n == nil {
			return true
		}

		for i, sym := range n.Symbols() {
			if !walk(n.children[i], append(prefix, sym), fn) {
				return false
			}
		}
	}

	return true
}

// Count returns the number of leaves.
func Count[V any](root Node[V]) int {
	switch n := root.(type) {
	case *Leaf[V]:
		if n != nil {
			return 1
		}
	case *Branch[V]:
		if n != nil {
			total := 0
			for _, child := range n.children {
				total += Count(child)
			}
			return total
		}
	}

	return 0
}
