package amtrie

import (
	"github.com/pkg/errors"

	"github.com/aglyzov/go-egg/bitindex"
)

var (
	// ErrInvalidSymbol is returned for symbols outside [0, 63].
	ErrInvalidSymbol = bitindex.ErrInvalidSymbol

	// ErrStructuralMismatch is returned when children disagree with a bitmap.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrCorruptIndex signals a branch whose children no longer match its
	// bitmap. Construction prevents it, so seeing it means a defect.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrKeyConflict is returned when a key would end on a branch or pass
	// through a leaf.
	ErrKeyConflict = errors.New("key conflict")

	// ErrKeyOverflow is returned when a key does not fit into an uint64.
	ErrKeyOverflow = errors.New("key overflow")
)
