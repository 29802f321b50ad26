package amtrie

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/aglyzov/go-egg/bitindex"
)

// Entry is a key with its values, the unit of bulk construction.
type Entry[V any] struct {
	Key    Key
	Values []V
}

// Build returns a branch from a bitmap and its children.
//
// Children must be ordered by ascending symbol and there must be exactly one per
// set bit, otherwise ErrStructuralMismatch is returned and nothing is built.
// The children slice is copied.
func Build[V any](bitmap Bitmap, children []Node[V]) (*Branch[V], error) {
	if total := bitindex.Popcount(bitmap); total != len(children) {
		return nil, errors.Wrapf(ErrStructuralMismatch,
			"bitmap has %d bits but %d children were given", total, len(children))
	}

	for i, child := range children {
		if isNil(child) {
			return nil, errors.Wrapf(ErrStructuralMismatch, "child #%d is nil", i)
		}
	}

	return &Branch[V]{
		bitmap:   bitmap,
		children: slices.Clone(children),
	}, nil
}

// BuildFromMapping returns a branch from a sparse symbol -> node mapping,
// deriving both the bitmap and the order of children.
func BuildFromMapping[V any](entries map[Symbol]Node[V]) (*Branch[V], error) {
	var (
		syms     = maps.Keys(entries)
		bitmap   Bitmap
		children = make([]Node[V], 0, len(entries))
	)

	slices.Sort(syms)

	for _, sym := range syms {
		if err := bitindex.Check(sym); err != nil {
			return nil, err
		}

		bitmap = bitindex.With(bitmap, sym)
		children = append(children, entries[sym])
	}

	return Build(bitmap, children)
}

// FromEntries builds a trie bottom-up from a list of entries.
//
// Values of duplicate keys are concatenated in input order. A key that is a
// proper prefix of another key yields ErrKeyConflict. No entries yield an empty
// branch.
func FromEntries[V any](entries []Entry[V]) (Node[V], error) {
	for _, e := range entries {
		if err := e.Key.Check(); err != nil {
			return nil, err
		}
	}

	return fromEntries(entries, 0)
}

// fromEntries builds a node for entries sharing the first `depth` symbols.
func fromEntries[V any](entries []Entry[V], depth int) (Node[V], error) {
	var (
		values   []V
		terminal bool
		groups   = make(map[Symbol][]Entry[V])
	)

	for _, e := range entries {
		if len(e.Key) == depth {
			terminal = true
			values = append(values, e.Values...)

			continue
		}

		sym := e.Key[depth]
		groups[sym] = append(groups[sym], e)
	}

	if terminal {
		if len(groups) != 0 {
			return nil, errors.Wrapf(ErrKeyConflict,
				"key of length %d is a prefix of %d other keys", depth, len(groups))
		}

		return &Leaf[V]{values: values}, nil
	}

	children := make(map[Symbol]Node[V], len(groups))

	for sym, group := range groups {
		child, err := fromEntries(group, depth+1)
		if err != nil {
			return nil, err
		}

		children[sym] = child
	}

	return BuildFromMapping(children)
}
