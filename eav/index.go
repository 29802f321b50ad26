// Package eav provides entity-attribute-value (EAV) and attribute-value-entity
// (AVE) indices over a list of facts, both backed by an immutable amtrie.
//
//   - EAV: entity id -> facts of the entity, answers "what is X's address?";
//   - AVE: hash(attribute, value) -> ids of entities, answers "who is named Ruth?".
//
// Indices are built once from the whole dataset and are safe for concurrent reads.
package eav

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/aglyzov/go-egg/amtrie"
	"github.com/aglyzov/go-egg/eidset"
)

func eidKey(eid EID) amtrie.Key {
	return amtrie.KeyFromUint64(uint64(eid), amtrie.MaxUint64Width)
}

func attrValKey(attr Attr, val Val) amtrie.Key {
	var (
		d   = xxhash.New()
		buf [9]byte
	)

	_, _ = d.WriteString(attr)

	buf[0] = byte(val.kind)
	binary.BigEndian.PutUint64(buf[1:], uint64(val.num))

	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(val.str)

	return amtrie.KeyFromUint64(d.Sum64(), amtrie.MaxUint64Width)
}

// EAVIndex maps entities to their facts.
type EAVIndex struct {
	trie *amtrie.Trie[Datum]
}

// NewEAVIndex indexes facts by entity. Facts of an entity keep their order.
func NewEAVIndex(data []Datum, opts ...amtrie.Option) (*EAVIndex, error) {
	entries := make([]amtrie.Entry[Datum], len(data))

	for i, d := range data {
		entries[i] = amtrie.Entry[Datum]{Key: eidKey(d.EID), Values: []Datum{d}}
	}

	root, err := amtrie.FromEntries(entries)
	if err != nil {
		return nil, errors.WithMessage(err, "eav index")
	}

	return &EAVIndex{trie: amtrie.New(root, opts...)}, nil
}

// Facts returns all facts of an entity.
func (idx *EAVIndex) Facts(eid EID) ([]Datum, error) {
	facts, _, err := idx.trie.Lookup(eidKey(eid))

	return facts, err
}

// Find returns the distinct values of an entity's attribute in insertion order.
// A nil slice means the entity has no such attribute.
func (idx *EAVIndex) Find(eid EID, attr Attr) ([]Val, error) {
	facts, err := idx.Facts(eid)
	if err != nil {
		return nil, err
	}

	var vals []Val

	for _, d := range facts {
		if d.Attr == attr && !slices.Contains(vals, d.Val) {
			vals = append(vals, d.Val)
		}
	}

	return vals, nil
}

// FindOne returns the first value of an entity's attribute.
func (idx *EAVIndex) FindOne(eid EID, attr Attr) (Val, bool, error) {
	vals, err := idx.Find(eid, attr)
	if err != nil || len(vals) == 0 {
		return Val{}, false, err
	}

	return vals[0], true, nil
}

// Len returns the number of indexed entities.
func (idx *EAVIndex) Len() int {
	return idx.trie.Len()
}

// Walk calls fn for every entity in ascending id order until fn returns false.
func (idx *EAVIndex) Walk(fn func(eid EID, facts []Datum) bool) {
	idx.trie.Walk(func(key amtrie.Key, facts []Datum) bool {
		id, err := key.Uint64()
		if err != nil {
			return false // every key comes from eidKey
		}

		return fn(EID(id), facts)
	})
}

func (idx *EAVIndex) String() string {
	var b strings.Builder

	b.WriteString("EAVIndex{")

	idx.Walk(func(eid EID, facts []Datum) bool {
		b.WriteString("\n  ")
		b.WriteString(Ref(eid).String())
		b.WriteString(":")

		for _, d := range facts {
			b.WriteString(" " + d.Attr + "=" + d.Val.String())
		}

		return true
	})

	b.WriteString("\n}")

	return b.String()
}

// posting lists entities having an attribute value.
type posting struct {
	attr Attr
	val  Val
	eids *eidset.Set
}

type attrVal struct {
	attr Attr
	val  Val
}

// AVEIndex maps attribute values to entities.
type AVEIndex struct {
	trie *amtrie.Trie[*posting]
}

// NewAVEIndex indexes facts by attribute and value.
func NewAVEIndex(data []Datum, opts ...amtrie.Option) (*AVEIndex, error) {
	var (
		postings = make(map[attrVal]*posting)
		entries  []amtrie.Entry[*posting]
	)

	for _, d := range data {
		av := attrVal{d.Attr, d.Val}

		p, ok := postings[av]
		if !ok {
			p = &posting{attr: d.Attr, val: d.Val, eids: eidset.New()}
			postings[av] = p

			// colliding hashes share a leaf
			entries = append(entries, amtrie.Entry[*posting]{
				Key:    attrValKey(d.Attr, d.Val),
				Values: []*posting{p},
			})
		}

		p.eids.Add(uint64(d.EID))
	}

	root, err := amtrie.FromEntries(entries)
	if err != nil {
		return nil, errors.WithMessage(err, "ave index")
	}

	return &AVEIndex{trie: amtrie.New(root, opts...)}, nil
}

// Find returns the set of entities having an attribute value. The set is nil
// (and empty) when there are none. It must not be modified.
func (idx *AVEIndex) Find(attr Attr, val Val) (*eidset.Set, error) {
	postings, _, err := idx.trie.Lookup(attrValKey(attr, val))
	if err != nil {
		return nil, err
	}

	for _, p := range postings {
		if p.attr == attr && p.val == val {
			return p.eids, nil
		}
	}

	return nil, nil
}

// FindOne returns the lowest id of an entity having an attribute value.
func (idx *AVEIndex) FindOne(attr Attr, val Val) (EID, bool, error) {
	eids, err := idx.Find(attr, val)
	if err != nil {
		return 0, false, err
	}

	id, ok := eids.Min()

	return EID(id), ok, nil
}

// Len returns the number of distinct attribute values.
func (idx *AVEIndex) Len() int {
	var total int

	idx.trie.Walk(func(_ amtrie.Key, postings []*posting) bool {
		total += len(postings)
		return true
	})

	return total
}

func (idx *AVEIndex) String() string {
	var (
		b    strings.Builder
		rows []string
	)

	idx.trie.Walk(func(_ amtrie.Key, postings []*posting) bool {
		for _, p := range postings {
			var ids []string

			p.eids.Each(func(id uint64) bool {
				ids = append(ids, Ref(EID(id)).String())
				return true
			})

			rows = append(rows, p.attr+"="+p.val.String()+": "+strings.Join(ids, " "))
		}

		return true
	})

	// hash order is meaningless to a reader
	slices.Sort(rows)

	b.WriteString("AVEIndex{")

	for _, row := range rows {
		b.WriteString("\n  " + row)
	}

	b.WriteString("\n}")

	return b.String()
}
