package dict

import (
	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/codec"
	"github.com/brimdata/zcol/column"
	"github.com/brimdata/zcol/zqe"
)

// A maker builds an empty column for an element type, given the index
// type and whether the element type was wrapped in Optional.
type maker func(elem, index zcol.Type, optional bool) (column.Dictionary, error)

// makers maps each supported element type ID to its representation.
var makers = map[int]maker{
	zcol.IDUint8:    fixed[uint8](codec.Uint8),
	zcol.IDUint16:   fixed[uint16](codec.Uint16),
	zcol.IDUint32:   fixed[uint32](codec.Uint32),
	zcol.IDUint64:   fixed[uint64](codec.Uint64),
	zcol.IDInt8:     fixed[int8](codec.Int8),
	zcol.IDInt16:    fixed[int16](codec.Int16),
	zcol.IDInt32:    fixed[int32](codec.Int32),
	zcol.IDInt64:    fixed[int64](codec.Int64),
	zcol.IDFloat32:  fixed[float32](codec.Float32),
	zcol.IDFloat64:  fixed[float64](codec.Float64),
	zcol.IDDate:     fixed[uint16](codec.Date),
	zcol.IDDateTime: fixed[uint32](codec.DateTime),
	zcol.IDString:   fixed[string](codec.Strings),
	zcol.IDFixedString: func(elem, index zcol.Type, optional bool) (column.Dictionary, error) {
		typ, ok := elem.(*zcol.TypeFixedString)
		if !ok {
			return nil, zqe.ErrLogical("unexpected fixed string type %T", elem)
		}
		return build[string](codec.NewFixedString(typ.Width), index, optional)
	},
}

func fixed[T comparable](values codec.Codec[T]) maker {
	return func(_, index zcol.Type, optional bool) (column.Dictionary, error) {
		return build(values, index, optional)
	}
}

func build[T comparable](values codec.Codec[T], index zcol.Type, optional bool) (column.Dictionary, error) {
	if optional {
		return withIndex[codec.Opt[T]](codec.NewOptional(values), index)
	}
	return withIndex(values, index)
}

func withIndex[T comparable](values codec.Codec[T], index zcol.Type) (column.Dictionary, error) {
	switch index.ID() {
	case zcol.IDUint8:
		return column.NewDict[T, uint8](values, codec.Uint8), nil
	case zcol.IDUint16:
		return column.NewDict[T, uint16](values, codec.Uint16), nil
	case zcol.IDUint32:
		return column.NewDict[T, uint32](values, codec.Uint32), nil
	case zcol.IDUint64:
		return column.NewDict[T, uint64](values, codec.Uint64), nil
	}
	return nil, zqe.ErrLogical("unexpected index type %s", index)
}

// NewColumn returns an empty column whose representation matches t.
func (t *TypeDict) NewColumn() (column.Dictionary, error) {
	elem := zcol.UnwrapOptional(t.Elem)
	mk, ok := makers[elem.ID()]
	if !ok {
		return nil, zqe.ErrLogical("unexpected dictionary element type %s", elem)
	}
	return mk(elem, t.Index, zcol.IsOptional(t.Elem))
}
