package bitindex

import (
	"fmt"
	"math/bits"
	"runtime"
	"strconv"

	"github.com/hideo55/go-popcount"
	"github.com/pkg/errors"
	"golang.org/x/sys/cpu"
)

const (
	Width     = 6                  // bits per symbol
	Fanout    = 1 << Width         // number of distinct symbols
	MaxSymbol = Symbol(Fanout - 1) // 0b_111111

	bitmapWidth = 64
)

// ErrInvalidSymbol is returned when a symbol is outside [0, 63].
var ErrInvalidSymbol = errors.New("invalid symbol")

// Symbol is one 6-bit unit of a key.
type Symbol uint8

// Bitmap is a 64-bit presence vector: bit 63-s is set when symbol s is present.
type Bitmap uint64

func (s Symbol) Valid() bool {
	return s <= MaxSymbol
}

func (s Symbol) String() string {
	return strconv.Itoa(int(s))
}

// Check returns ErrInvalidSymbol (annotated with the value) for symbols out of range.
func Check(s Symbol) error {
	if s > MaxSymbol {
		return errors.Wrapf(ErrInvalidSymbol, "symbol %d is outside [0, %d]", s, MaxSymbol)
	}

	return nil
}

// Popcount returns the number of set bits in a bitmap [0..64].
func Popcount(b Bitmap) int {
	return int(popcount.Count(uint64(b)))
}

// HasHardwarePopcount reports whether the CPU provides a population count
// instruction. On amd64 this is the POPCNT feature flag, on arm64 the vector CNT
// instruction which is part of the mandatory ASIMD set.
func HasHardwarePopcount() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasPOPCNT
	case "arm64":
		return cpu.ARM64.HasASIMD
	case "ppc64", "ppc64le":
		return cpu.PPC64.IsPOWER8
	case "s390x":
		return true
	}

	return false
}

// Mask returns a bitmap with only the bit of the given symbol set.
//
// The symbol is not validated: out of range symbols yield an empty mask.
func Mask(s Symbol) Bitmap {
	if s > MaxSymbol {
		return 0
	}

	return Bitmap(1) << (MaxSymbol - s)
}

// IsSet reports whether the bit of a symbol is set.
func IsSet(b Bitmap, s Symbol) (bool, error) {
	if err := Check(s); err != nil {
		return false, err
	}

	return b&Mask(s) != 0, nil
}

// CompactOffset returns the index a present symbol occupies in a gapless
// children array: the number of set bits strictly more significant than the
// symbol's bit.
//
// The result is only meaningful when the symbol's bit is set.
func CompactOffset(b Bitmap, s Symbol) int {
	// b >> 64 == 0 for s == 0
	return Popcount(b >> (bitmapWidth - uint(s)))
}

// With returns a copy of the bitmap with the symbol's bit set.
func With(b Bitmap, s Symbol) Bitmap {
	return b | Mask(s)
}

// Without returns a copy of the bitmap with the symbol's bit cleared.
func Without(b Bitmap, s Symbol) Bitmap {
	return b &^ Mask(s)
}

// Symbols returns present symbols in ascending order.
func Symbols(b Bitmap) []Symbol {
	syms := make([]Symbol, 0, Popcount(b))

	for b != 0 {
		sym := Symbol(bits.LeadingZeros64(uint64(b))) // the most significant set bit
		syms = append(syms, sym)
		b = Without(b, sym)
	}

	return syms
}

// String renders the bitmap as 64 binary digits, symbol 0 first.
func (b Bitmap) String() string {
	return fmt.Sprintf("%064b", uint64(b))
}
