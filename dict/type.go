// Package dict implements the dictionary type: a logical column type
// whose values are stored once in a deduplicated dictionary and referenced
// from each row by an unsigned integer code.
//
// A dictionary column occupies two physical streams.  The elements stream
// holds the element count as a little-endian uint64 followed by the
// dictionary values in the element codec's bulk form, and is written once
// per pass.  The indexes stream holds one code per row in the index
// codec's bulk form and may be written in any number of chunks.
package dict

import (
	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/zqe"
)

// TypeDict is the dictionary type with element type Elem and index type
// Index.  It is immutable once constructed.
type TypeDict struct {
	Elem  zcol.Type
	Index zcol.Type
}

var _ zcol.StreamEnumerator = (*TypeDict)(nil)

// New returns the dictionary type of elem values with index codes.  The
// index type must be an unsigned integer and the element type, after
// removing one Optional layer, must be a number, a string, a fixed
// string, a date or a datetime.
func New(elem, index zcol.Type) (*TypeDict, error) {
	if elem == nil || index == nil {
		return nil, zqe.ErrLogical("dictionary type requires element and index types")
	}
	if !zcol.IsUnsigned(index.ID()) {
		return nil, zqe.E(zqe.IllegalType, "dictionary index type must be an unsigned integer, got %s", index)
	}
	if !supportedElem(zcol.UnwrapOptional(elem)) {
		return nil, zqe.E(zqe.IllegalType, "dictionary element type must be a number, string, fixed string, date or datetime, got %s", elem)
	}
	return &TypeDict{Elem: elem, Index: index}, nil
}

func supportedElem(typ zcol.Type) bool {
	id := typ.ID()
	return zcol.IsNumber(id) || zcol.IsStringy(id) || zcol.IsDateOrDateTime(id)
}

func (t *TypeDict) ID() int {
	return zcol.IDTypeDict
}

func (t *TypeDict) String() string {
	return FamilyName + "(" + t.Elem.String() + ", " + t.Index.String() + ")"
}

// Equal reports whether u is a dictionary type with equal element and
// index types.
func (t *TypeDict) Equal(u zcol.Type) bool {
	other, ok := u.(*TypeDict)
	if !ok || other == nil {
		return false
	}
	return zcol.Equal(t.Elem, other.Elem) && zcol.Equal(t.Index, other.Index)
}

// EnumerateStreams visits the element streams and then the index streams.
func (t *TypeDict) EnumerateStreams(visit zcol.StreamVisitor, path zcol.Path) {
	zcol.EnumerateStreams(t.Elem, visit, path.Append(zcol.SubstreamDictionaryElements))
	zcol.EnumerateStreams(t.Index, visit, path.Append(zcol.SubstreamDictionaryIndexes))
}
