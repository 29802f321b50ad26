package amtrie

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aglyzov/go-egg/bitindex"
)

const (
	// MaxUint64Width is the number of symbols needed to cover all 64 bits.
	MaxUint64Width = (64 + bitindex.Width - 1) / bitindex.Width // 11

	symbolMask = bitindex.Fanout - 1 // 0b_111111
)

// Key is an ordered sequence of symbols, consumed one per trie level.
type Key []Symbol

// KeyFromUint64 splits the lowest width*6 bits of v into 6-bit symbols, the
// most significant group first. Width must be in [1, MaxUint64Width].
func KeyFromUint64(v uint64, width int) Key {
	if width < 1 || width > MaxUint64Width {
		panic(fmt.Sprintf("amtrie: key width %d is outside [1, %d]", width, MaxUint64Width))
	}

	key := make(Key, width)

	for i := width - 1; i >= 0; i-- {
		key[i] = Symbol(v & symbolMask)
		v >>= bitindex.Width
	}

	return key
}

// KeyFromBytes splits a byte string, read as a big-endian bit stream, into
// 6-bit symbols. The last symbol is padded with zero bits on the right.
//
// Keys of different byte lengths may be prefixes of each other ("ab" and
// "ab\x00" for instance), such keys cannot live in the same trie.
func KeyFromBytes(data []byte) Key {
	var (
		key   = make(Key, 0, (len(data)*8+bitindex.Width-1)/bitindex.Width)
		acc   uint32 // pending bits
		nbits uint   // number of pending bits [0..13]
	)

	for _, b := range data {
		acc = acc<<8 | uint32(b)
		nbits += 8

		for nbits >= bitindex.Width {
			nbits -= bitindex.Width
			key = append(key, Symbol(acc>>nbits&symbolMask))
		}

		acc &= 1<<nbits - 1
	}

	if nbits > 0 {
		key = append(key, Symbol(acc<<(bitindex.Width-nbits)&symbolMask))
	}

	return key
}

// Check returns ErrInvalidSymbol if any of the symbols is out of range.
func (key Key) Check() error {
	for i, sym := range key {
		if err := bitindex.Check(sym); err != nil {
			return errors.WithMessagef(err, "key position %d", i)
		}
	}

	return nil
}

// Uint64 folds a key back into an integer, the inverse of KeyFromUint64.
func (key Key) Uint64() (uint64, error) {
	if err := key.Check(); err != nil {
		return 0, err
	}

	if len(key) > MaxUint64Width {
		return 0, errors.Wrapf(ErrKeyOverflow, "%d symbols", len(key))
	}

	var v uint64

	for i, sym := range key {
		if i == 0 && len(key) == MaxUint64Width && sym > 0b_1111 {
			// only 4 bits of the leading symbol fit
			return 0, errors.Wrapf(ErrKeyOverflow, "leading symbol %d", sym)
		}

		v = v<<bitindex.Width | uint64(sym)
	}

	return v, nil
}

// String renders a key as dot separated symbols, e.g. "0.2.63".
func (key Key) String() string {
	var b strings.Builder

	for i, sym := range key {
		if i != 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(sym)))
	}

	return b.String()
}

func (key Key) clone() Key {
	return append(make(Key, 0, len(key)), key...)
}
