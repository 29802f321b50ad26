// Package bitindex defines the bit-level primitives of a 64-ary bitmap index.
//
// A Bitmap is a 64-bit presence vector with one bit per Symbol. Symbol 0 maps to
// the most significant bit, symbol 63 to the least significant one:
//
//	symbol:  0   1   2        61  62  63
//	bit:    [63][62][61] ... [02][01][00]
//
// Children of a bitmap-indexed node are stored in a gapless array ordered by
// ascending symbol. The array index of a present symbol (its compact offset) is
// the number of set bits that are more significant than the symbol's own bit:
//
//	bitmap:  1 0 1 1 0 ... 0
//	symbol:  0 1 2 3 4 ... 63
//	offset:  0 - 1 2 - ... -
package bitindex
