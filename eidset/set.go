// Package eidset implements a set of uint64 identifiers as a fixed-depth
// 64-ary bitmap trie.
//
// An identifier is split into 11 symbols of 6 bits (the leading one only uses
// 4 bits), most significant first. Every level but the last keeps a bitmap and
// a gapless array of children; the last level keeps just the bitmap.
package eidset

import (
	"github.com/aglyzov/go-egg/bitindex"
)

const (
	levels    = (64 + bitindex.Width - 1) / bitindex.Width // 11
	topShift  = (levels - 1) * bitindex.Width              // 60
	levelMask = bitindex.Fanout - 1
)

// Set is a sorted set of identifiers. The zero value is not usable, see New.
//
// Set is not safe for concurrent mutation; it may be read concurrently once
// no more identifiers are being added.
type Set struct {
	root *node
	size uint64
}

type node struct {
	bitmap   bitindex.Bitmap
	children []*node // nil at the last level
}

// New returns a set holding the given identifiers.
func New(ids ...uint64) *Set {
	s := &Set{root: &node{}}

	for _, id := range ids {
		s.Add(id)
	}

	return s
}

func symbolAt(id uint64, shift uint) bitindex.Symbol {
	return bitindex.Symbol((id >> shift) & levelMask)
}

// Len returns the number of identifiers.
func (s *Set) Len() uint64 {
	if s == nil {
		return 0
	}

	return s.size
}

// Has reports whether the set contains an identifier.
func (s *Set) Has(id uint64) bool {
	if s == nil {
		return false
	}

	cur := s.root

	for shift := uint(topShift); ; shift -= bitindex.Width {
		sym := symbolAt(id, shift)

		if cur.bitmap&bitindex.Mask(sym) == 0 {
			return false // underlying nodes don't have it
		}

		if shift == 0 {
			return true // the last level
		}

		cur = cur.children[bitindex.CompactOffset(cur.bitmap, sym)]
	}
}

// Add inserts an identifier and reports whether it was not there before.
func (s *Set) Add(id uint64) bool {
	cur := s.root

	for shift := uint(topShift); ; shift -= bitindex.Width {
		var (
			sym    = symbolAt(id, shift)
			mask   = bitindex.Mask(sym)
			offset = bitindex.CompactOffset(cur.bitmap, sym)
			absent = cur.bitmap&mask == 0
		)

		if shift == 0 {
			if absent {
				cur.bitmap |= mask
				s.size++
			}

			return absent
		}

		if absent {
			next := &node{}

			cur.children = append(cur.children, nil)
			copy(cur.children[offset+1:], cur.children[offset:])
			cur.children[offset] = next
			cur.bitmap |= mask
		}

		cur = cur.children[offset]
	}
}

// Each calls fn for every identifier in ascending order until fn returns false.
func (s *Set) Each(fn func(id uint64) bool) {
	if s == nil {
		return
	}

	each(s.root, 0, topShift, fn)
}

func each(cur *node, prefix uint64, shift uint, fn func(uint64) bool) bool {
	for i, sym := range bitindex.Symbols(cur.bitmap) {
		id := prefix | uint64(sym)<<shift

		if shift == 0 {
			if !fn(id) {
				return false
			}

			continue
		}

		if !each(cur.children[i], id, shift-bitindex.Width, fn) {
			return false
		}
	}

	return true
}

// Min returns the smallest identifier.
func (s *Set) Min() (uint64, bool) {
	var (
		least uint64
		found bool
	)

	s.Each(func(id uint64) bool {
		least, found = id, true
		return false
	})

	return least, found
}

// Slice returns all identifiers in ascending order.
func (s *Set) Slice() []uint64 {
	ids := make([]uint64, 0, s.Len())

	s.Each(func(id uint64) bool {
		ids = append(ids, id)
		return true
	})

	return ids
}
