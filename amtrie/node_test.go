package amtrie

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-egg/bitindex"
)

func TestNewLeaf(t *testing.T) {
	t.Parallel()

	values := []string{"foo", "bar"}
	leaf := NewLeaf(values...)

	values[0] = "changed"

	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, []string{"foo", "bar"}, leaf.Values())
	assert.Equal(t, 2, leaf.Len())
	assert.Equal(t, "<amtrie|Leaf|n:2>", leaf.String())
}

func TestLeaf_ValuesAppendDoesNotLeak(t *testing.T) {
	t.Parallel()

	leaf := NewLeaf(1, 2, 3)
	view := leaf.Values()

	_ = append(view, 4)

	assert.Equal(t, []int{1, 2, 3}, leaf.Values())
}

func TestEntryFor_RoundTrip(t *testing.T) {
	t.Parallel()

	br, err := BuildFromMapping(map[Symbol]Node[string]{
		0: NewLeaf("foo", "bar"),
		2: NewLeaf("baz"),
	})
	require.NoError(t, err)

	assert.False(t, br.IsLeaf())
	assert.Equal(t, "<amtrie|Branch|syms:0,2>", br.String())

	for _, tcase := range []*struct {
		Sym   Symbol
		ExpOK bool
		Exp   []string
	}{
		{0, true, []string{"foo", "bar"}},
		{1, false, nil},
		{2, true, []string{"baz"}},
		{3, false, nil},
		{63, false, nil},
	} {
		tcase := tcase

		t.Run(fmt.Sprint(tcase.Sym), func(t *testing.T) {
			t.Parallel()

			node, ok, err := br.EntryFor(tcase.Sym)

			require.NoError(t, err)
			require.Equal(t, tcase.ExpOK, ok)

			if !tcase.ExpOK {
				assert.Nil(t, node)
				return
			}

			assert.Equal(t, tcase.Exp, leafValues(t, node))
		})
	}
}

func TestEntryFor_AllBytePatterns(t *testing.T) {
	t.Parallel()

	for pattern := 0; pattern < 256; pattern++ {
		var (
			bitmap   = Bitmap(pattern) << 56 // symbols 0..7
			children []Node[int]
		)

		for _, sym := range bitindex.Symbols(bitmap) {
			children = append(children, NewLeaf(int(sym)))
		}

		br, err := Build(bitmap, children)
		require.NoError(t, err, "pattern %08b", pattern)

		for sym := Symbol(0); sym <= bitindex.MaxSymbol; sym++ {
			node, ok, err := br.EntryFor(sym)
			require.NoError(t, err)

			set, _ := bitindex.IsSet(bitmap, sym)
			require.Equal(t, set, ok, "pattern %08b symbol %d", pattern, sym)

			if !set {
				require.Nil(t, node)
				continue
			}

			require.Same(t, children[bitindex.CompactOffset(bitmap, sym)], node)
			require.Equal(t, []int{int(sym)}, node.(*Leaf[int]).Values())
		}
	}
}

func TestEntryFor_InvalidSymbol(t *testing.T) {
	t.Parallel()

	br, err := Build[int](^Bitmap(0), make64Leaves())
	require.NoError(t, err)

	node, ok, err := br.EntryFor(64)

	assert.Nil(t, node)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrInvalidSymbol))
}

func TestEntryFor_CorruptIndex(t *testing.T) {
	t.Parallel()

	// bypass Build to get a branch with a missing child
	br := &Branch[string]{
		bitmap:   bitindex.Mask(0) | bitindex.Mask(2),
		children: []Node[string]{NewLeaf("foo")},
	}

	node, ok, err := br.EntryFor(2)

	assert.Nil(t, node)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrCorruptIndex), "%v", err)

	// even the offset that is in range must not be served
	_, _, err = br.EntryFor(0)

	assert.True(t, errors.Is(err, ErrCorruptIndex), "%v", err)

	// absent symbols are still plain misses
	_, ok, err = br.EntryFor(1)

	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestBranch_WithChild(t *testing.T) {
	t.Parallel()

	var (
		foo = NewLeaf("foo")
		bar = NewLeaf("bar")
		baz = NewLeaf("baz")
	)

	br0 := &Branch[string]{}
	br1 := br0.withChild(5, foo)
	br2 := br1.withChild(1, bar)
	br3 := br2.withChild(5, baz) // replace

	assert.Equal(t, 0, br0.Len())
	assert.Equal(t, []Symbol{5}, br1.Symbols())
	assert.Equal(t, []Symbol{1, 5}, br2.Symbols())
	assert.Equal(t, []Node[string]{bar, foo}, br2.children)
	assert.Equal(t, []Node[string]{bar, baz}, br3.children)

	br4 := br3.withoutChild(1)
	br5 := br4.withoutChild(7) // absent

	assert.Equal(t, []Symbol{5}, br4.Symbols())
	assert.Same(t, br4, br5)
	assert.Equal(t, []Node[string]{bar, baz}, br3.children) // untouched
}

func make64Leaves() []Node[int] {
	leaves := make([]Node[int], bitindex.Fanout)

	for i := range leaves {
		leaves[i] = NewLeaf(i)
	}

	return leaves
}
