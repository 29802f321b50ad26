// Package amtrie implements an immutable bitmap-indexed sparse trie (an array
// mapped trie) over the 64-symbol alphabet of package bitindex.
//
// A trie consists of two kinds of nodes:
//
//   - Leaf   - holds the payload values reached once a key is fully consumed;
//   - Branch - holds a 64-bit presence bitmap and a gapless array of children,
//     one per set bit, ordered by ascending symbol.
//
// Example trie:
//
//	[branch:0] --- [branch:0,2] --+-- 0 -- [leaf:"foo","bar"]
//	                              |
//	                              `-- 2 -- [leaf:"baz"]
//
// The trie above contains two keys:
//
//   - 0.0 -> "foo", "bar"
//   - 0.2 -> "baz"
//
// Nodes are never modified once built. Insert and Delete return a new root that
// shares every untouched subtree with the old one, so any number of goroutines
// may read a published trie without synchronization.
package amtrie
