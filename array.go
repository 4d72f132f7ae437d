package zcol

type TypeArray struct {
	Type Type
}

func NewTypeArray(typ Type) *TypeArray {
	return &TypeArray{Type: typ}
}

func (t *TypeArray) ID() int {
	return IDTypeArray
}

func (t *TypeArray) String() string {
	return "Array(" + t.Type.String() + ")"
}

func (t *TypeArray) Equal(u Type) bool {
	other, ok := u.(*TypeArray)
	return ok && Equal(t.Type, other.Type)
}

func (t *TypeArray) EnumerateStreams(visit StreamVisitor, path Path) {
	visit(path.Append(SubstreamArraySizes))
	EnumerateStreams(t.Type, visit, path.Append(SubstreamArrayElements))
}

// InnerType returns the element type for an array type or nil if typ is
// not an array.
func InnerType(typ Type) Type {
	if typ, ok := typ.(*TypeArray); ok {
		return typ.Type
	}
	return nil
}
