package eav

import (
	"strconv"
)

// EID identifies an entity.
type EID uint64

// Attr names an attribute, e.g. "person/name".
type Attr = string

// Kind tells which variant a Val holds.
type Kind uint8

const (
	KindStr Kind = iota + 1
	KindInt
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindStr:
		return "str"
	case KindInt:
		return "int"
	case KindRef:
		return "ref"
	}

	return "invalid"
}

// Val is an attribute value: a string, an integer or a reference to another
// entity. Vals are comparable with ==.
type Val struct {
	kind Kind
	str  string
	num  int64
}

func Str(s string) Val { return Val{kind: KindStr, str: s} }
func Int(n int64) Val  { return Val{kind: KindInt, num: n} }
func Ref(e EID) Val    { return Val{kind: KindRef, num: int64(e)} }

func (v Val) Kind() Kind {
	return v.kind
}

func (v Val) AsStr() (string, bool) {
	return v.str, v.kind == KindStr
}

func (v Val) AsInt() (int64, bool) {
	return v.num, v.kind == KindInt
}

func (v Val) AsRef() (EID, bool) {
	return EID(v.num), v.kind == KindRef
}

func (v Val) String() string {
	switch v.kind {
	case KindStr:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindRef:
		return "#" + strconv.FormatUint(uint64(v.num), 10)
	}

	return "<invalid>"
}

// Datum is a single entity-attribute-value fact.
type Datum struct {
	EID  EID
	Attr Attr
	Val  Val
}

func NewDatum(eid EID, attr Attr, val Val) Datum {
	return Datum{EID: eid, Attr: attr, Val: val}
}

func (d Datum) String() string {
	return "[" + strconv.FormatUint(uint64(d.EID), 10) + " " + d.Attr + " " + d.Val.String() + "]"
}
