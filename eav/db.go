package eav

import (
	"github.com/pkg/errors"

	"github.com/aglyzov/go-egg/amtrie"
)

// ErrNotRef is returned when following an attribute that is not a reference.
var ErrNotRef = errors.New("value is not a reference")

// DB bundles both indices over the same facts.
type DB struct {
	EAV *EAVIndex
	AVE *AVEIndex
}

// NewDB indexes facts both ways.
func NewDB(data []Datum, opts ...amtrie.Option) (*DB, error) {
	eav, err := NewEAVIndex(data, opts...)
	if err != nil {
		return nil, err
	}

	ave, err := NewAVEIndex(data, opts...)
	if err != nil {
		return nil, err
	}

	return &DB{EAV: eav, AVE: ave}, nil
}

// Follow resolves a reference attribute of an entity into the referenced id.
func (db *DB) Follow(eid EID, attr Attr) (EID, bool, error) {
	val, ok, err := db.EAV.FindOne(eid, attr)
	if err != nil || !ok {
		return 0, false, err
	}

	ref, ok := val.AsRef()
	if !ok {
		return 0, false, errors.Wrapf(ErrNotRef, "%d %s is %s", eid, attr, val)
	}

	return ref, true, nil
}

// Str returns the first string value of an entity's attribute, or "".
func (db *DB) Str(eid EID, attr Attr) (string, error) {
	val, _, err := db.EAV.FindOne(eid, attr)
	if err != nil {
		return "", err
	}

	s, _ := val.AsStr()

	return s, nil
}
