package amtrie

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/aglyzov/go-egg/bitindex"
)

type (
	Symbol = bitindex.Symbol
	Bitmap = bitindex.Bitmap
)

// Node is either a *Leaf or a *Branch.
type Node[V any] interface {
	IsLeaf() bool
	String() string

	sealed(V)
}

// Leaf is a terminal node holding the values of a completed key.
type Leaf[V any] struct {
	values []V
}

// Branch is an internal node: a presence bitmap plus one child per set bit.
type Branch[V any] struct {
	bitmap   Bitmap
	children []Node[V] // len(children) == Popcount(bitmap), ascending symbols
}

// NewLeaf returns a leaf holding a copy of the given values.
func NewLeaf[V any](values ...V) *Leaf[V] {
	return &Leaf[V]{values: slices.Clone(values)}
}

func (*Leaf[V]) IsLeaf() bool { return true }
func (*Leaf[V]) sealed(V)     {}

// Values returns the leaf payload. The slice is shared: callers must not modify it.
func (leaf *Leaf[V]) Values() []V {
	return leaf.values[:len(leaf.values):len(leaf.values)]
}

func (leaf *Leaf[V]) Len() int {
	return len(leaf.values)
}

func (leaf *Leaf[V]) String() string {
	return "<amtrie|Leaf|n:" + strconv.Itoa(len(leaf.values)) + ">"
}

func (*Branch[V]) IsLeaf() bool { return false }
func (*Branch[V]) sealed(V)     {}

func (br *Branch[V]) Bitmap() Bitmap {
	return br.bitmap
}

// Len returns the number of children.
func (br *Branch[V]) Len() int {
	return len(br.children)
}

// Symbols returns the symbols having a child in ascending order.
func (br *Branch[V]) Symbols() []Symbol {
	return bitindex.Symbols(br.bitmap)
}

// EntryFor returns the child stored under a symbol.
//
// A missing child is not an error: it yields (nil, false, nil).
func (br *Branch[V]) EntryFor(sym Symbol) (Node[V], bool, error) {
	ok, err := bitindex.IsSet(br.bitmap, sym)
	if err != nil || !ok {
		return nil, false, err
	}

	var (
		total  = bitindex.Popcount(br.bitmap)
		offset = bitindex.CompactOffset(br.bitmap, sym)
	)

	if total != len(br.children) || offset >= len(br.children) {
		return nil, false, errors.Wrapf(ErrCorruptIndex,
			"symbol %d: offset %d, bitmap has %d bits, branch has %d children",
			sym, offset, total, len(br.children))
	}

	return br.children[offset], true, nil
}

func (br *Branch[V]) String() string {
	var b strings.Builder

	b.WriteString("<amtrie|Branch|syms:")

	for i, sym := range br.Symbols() {
		if i != 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(sym)))
	}

	b.WriteByte('>')

	return b.String()
}

// withChild returns a copy of the branch with a child set under a symbol.
func (br *Branch[V]) withChild(sym Symbol, child Node[V]) *Branch[V] {
	offset := bitindex.CompactOffset(br.bitmap, sym)

	if ok, _ := bitindex.IsSet(br.bitmap, sym); ok {
		children := slices.Clone(br.children)
		children[offset] = child

		return &Branch[V]{bitmap: br.bitmap, children: children}
	}

	children := make([]Node[V], len(br.children)+1)

	copy(children[:offset], br.children[:offset])
	children[offset] = child
	copy(children[offset+1:], br.children[offset:])

	return &Branch[V]{
		bitmap:   bitindex.With(br.bitmap, sym),
		children: children,
	}
}

// withoutChild returns a copy of the branch without a symbol's child.
func (br *Branch[V]) withoutChild(sym Symbol) *Branch[V] {
	if ok, _ := bitindex.IsSet(br.bitmap, sym); !ok {
		return br
	}

	var (
		offset   = bitindex.CompactOffset(br.bitmap, sym)
		children = make([]Node[V], 0, len(br.children)-1)
	)

	children = append(children, br.children[:offset]...)
	children = append(children, br.children[offset+1:]...)

	return &Branch[V]{
		bitmap:   bitindex.Without(br.bitmap, sym),
		children: children,
	}
}

func isNil[V any](node Node[V]) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *Leaf[V]:
		return n == nil
	case *Branch[V]:
		return n == nil
	}

	return false
}

func isEmptyBranch[V any](node Node[V]) bool {
	br, ok := node.(*Branch[V])

	return ok && br != nil && br.bitmap == 0
}
