package amtrie

import (
	"fmt"
	"log/slog"
	"strings"
)

type options struct {
	tracer Tracer
}

// Option configures a Trie.
type Option func(*options)

// WithTracer sets a tracer observing lookups. A nil tracer disables tracing.
func WithTracer(tracer Tracer) Option {
	return func(o *options) {
		if tracer == nil {
			tracer = NopTracer{}
		}
		o.tracer = tracer
	}
}

// WithLogger traces lookups into a structured logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return WithTracer(NewSlogTracer(logger))
}

// Trie is an immutable handle to a fully built root node.
//
// A Trie may be shared between goroutines: none of its methods modify it,
// With and Without return new handles.
type Trie[V any] struct {
	root Node[V]
	opts options
}

// New returns a trie handle for a root. A nil root is an empty trie.
func New[V any](root Node[V], opts ...Option) *Trie[V] {
	o := options{tracer: NopTracer{}}

	for _, opt := range opts {
		opt(&o)
	}

	if isNil(root) {
		root = &Branch[V]{}
	}

	return &Trie[V]{root: root, opts: o}
}

// FromMap builds a trie from a key -> values mapping.
func FromMap[V any](entries map[string][]V, keyFunc func(string) Key, opts ...Option) (*Trie[V], error) {
	list := make([]Entry[V], 0, len(entries))

	for k, values := range entries {
		list = append(list, Entry[V]{Key: keyFunc(k), Values: values})
	}

	root, err := FromEntries(list)
	if err != nil {
		return nil, err
	}

	return New(root, opts...), nil
}

func (t *Trie[V]) Root() Node[V] {
	return t.root
}

// Len returns the number of keys.
func (t *Trie[V]) Len() int {
	return Count(t.root)
}

// Lookup returns the values stored under a key.
func (t *Trie[V]) Lookup(key Key) ([]V, bool, error) {
	return lookup(t.root, key, t.opts.tracer)
}

// LookupUint64 looks up an integer key split into width symbols.
func (t *Trie[V]) LookupUint64(v uint64, width int) ([]V, bool, error) {
	return t.Lookup(KeyFromUint64(v, width))
}

// LookupBytes looks up a byte string key.
func (t *Trie[V]) LookupBytes(data []byte) ([]V, bool, error) {
	return t.Lookup(KeyFromBytes(data))
}

// Walk calls fn for every key in ascending order until fn returns false.
func (t *Trie[V]) Walk(fn func(key Key, values []V) bool) {
	Walk(t.root, fn)
}

// With returns a new trie having the values stored under a key.
func (t *Trie[V]) With(key Key, values ...V) (*Trie[V], error) {
	root, err := Insert(t.root, key, values...)
	if err != nil {
		return nil, err
	}

	return &Trie[V]{root: root, opts: t.opts}, nil
}

// Without returns a new trie lacking a key.
func (t *Trie[V]) Without(key Key) (*Trie[V], bool, error) {
	root, removed, err := Delete(t.root, key)
	if err != nil {
		return nil, false, err
	}

	if !removed {
		return t, false, nil
	}

	return &Trie[V]{root: root, opts: t.opts}, true, nil
}

// String dumps the whole trie, one node per line.
func (t *Trie[V]) String() string {
	var b strings.Builder

	dump(&b, t.root, "", "")

	return b.String()
}

func dump[V any](b *strings.Builder, node Node[V], label, indent string) {
	b.WriteString(indent)
	b.WriteString(label)
	b.WriteString(node.String())

	if leaf, ok := node.(*Leaf[V]); ok {
		fmt.Fprintf(b, " %v", leaf.values)
	}

	b.WriteByte('\n')

	if br, ok := node.(*Branch[V]); ok {
		for i, sym := range br.Symbols() {
			dump(b, br.children[i], fmt.Sprintf("%d -> ", sym), indent+"  ")
		}
	}
}
