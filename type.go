// Package zcol implements the logical type system for dictionary-encoded
// columns.  All types are defined here and implement the Type interface.
// Types are immutable and may be shared freely.  Two types are equal
// when they have the same kind and, for parameterized types, the same
// parameters; pointer identity is never required.
package zcol

import (
	"errors"
)

var ErrBadTypeName = errors.New("bad type name")

// A Type is an interface presented by a zcol type.
type Type interface {
	// ID returns the identifier for the kind of this type.  Parameterized
	// types share an ID across all of their instances (e.g., every
	// FixedString has IDFixedString regardless of width).
	ID() int
	String() string
	// Equal reports whether the receiver and the argument are
	// structurally equal.
	Equal(Type) bool
}

var (
	TypeUint8    = &TypeOfUint8{}
	TypeUint16   = &TypeOfUint16{}
	TypeUint32   = &TypeOfUint32{}
	TypeUint64   = &TypeOfUint64{}
	TypeInt8     = &TypeOfInt8{}
	TypeInt16    = &TypeOfInt16{}
	TypeInt32    = &TypeOfInt32{}
	TypeInt64    = &TypeOfInt64{}
	TypeFloat32  = &TypeOfFloat32{}
	TypeFloat64  = &TypeOfFloat64{}
	TypeDate     = &TypeOfDate{}
	TypeDateTime = &TypeOfDateTime{}
	TypeBool     = &TypeOfBool{}
	TypeBytes    = &TypeOfBytes{}
	TypeString   = &TypeOfString{}
	TypeIP       = &TypeOfIP{}
)

const (
	IDUint8    = 0
	IDUint16   = 1
	IDUint32   = 2
	IDUint64   = 3
	IDInt8     = 4
	IDInt16    = 5
	IDInt32    = 6
	IDInt64    = 7
	IDFloat32  = 8
	IDFloat64  = 9
	IDDate     = 10
	IDDateTime = 11
	IDBool     = 12
	IDBytes    = 13
	IDString   = 14
	IDIP       = 15

	IDFixedString = 16

	IDTypeOptional = 17
	IDTypeArray    = 18
	IDTypeDict     = 19
)

// True iff the type id is an unsigned integer.
func IsUnsigned(id int) bool {
	return id <= IDUint64
}

// True iff the type id is a signed or unsigned integer.
func IsInteger(id int) bool {
	return id <= IDInt64
}

// True iff the type id is an integer or a float.
func IsNumber(id int) bool {
	return id <= IDFloat64
}

func IsFloat(id int) bool {
	return id == IDFloat32 || id == IDFloat64
}

// True iff the type id is an integer and is signed.
func IsSigned(id int) bool {
	return id >= IDInt8 && id <= IDInt64
}

// True iff the type id is a variable-length or fixed-width string.
func IsStringy(id int) bool {
	return id == IDString || id == IDFixedString
}

func IsDateOrDateTime(id int) bool {
	return id == IDDate || id == IDDateTime
}

func LookupPrimitive(name string) Type {
	switch name {
	case "uint8":
		return TypeUint8
	case "uint16":
		return TypeUint16
	case "uint32":
		return TypeUint32
	case "uint64":
		return TypeUint64
	case "int8":
		return TypeInt8
	case "int16":
		return TypeInt16
	case "int32":
		return TypeInt32
	case "int64":
		return TypeInt64
	case "float32":
		return TypeFloat32
	case "float64":
		return TypeFloat64
	case "date":
		return TypeDate
	case "datetime":
		return TypeDateTime
	case "bool":
		return TypeBool
	case "bytes":
		return TypeBytes
	case "string":
		return TypeString
	case "ip":
		return TypeIP
	}
	return nil
}

func LookupPrimitiveByID(id int) Type {
	switch id {
	case IDUint8:
		return TypeUint8
	case IDUint16:
		return TypeUint16
	case IDUint32:
		return TypeUint32
	case IDUint64:
		return TypeUint64
	case IDInt8:
		return TypeInt8
	case IDInt16:
		return TypeInt16
	case IDInt32:
		return TypeInt32
	case IDInt64:
		return TypeInt64
	case IDFloat32:
		return TypeFloat32
	case IDFloat64:
		return TypeFloat64
	case IDDate:
		return TypeDate
	case IDDateTime:
		return TypeDateTime
	case IDBool:
		return TypeBool
	case IDBytes:
		return TypeBytes
	case IDString:
		return TypeString
	case IDIP:
		return TypeIP
	}
	return nil
}

// IsPrimitiveType reports whether typ is one of the unparameterized
// primitive types.
func IsPrimitiveType(typ Type) bool {
	return typ.ID() <= IDIP
}

// UnwrapOptional returns the type wrapped by typ if typ is an Optional
// type and typ itself otherwise.  Only one level is removed.
func UnwrapOptional(typ Type) Type {
	if opt, ok := typ.(*TypeOptional); ok {
		return opt.Type
	}
	return typ
}

// IsOptional reports whether typ is an Optional type.
func IsOptional(typ Type) bool {
	_, ok := typ.(*TypeOptional)
	return ok
}

// Equal reports whether a and b are structurally equal.  A nil type is
// equal only to another nil type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func equalPrimitive(t Type, u Type) bool {
	return u != nil && IsPrimitiveType(u) && t.ID() == u.ID()
}
