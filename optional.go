package zcol

// TypeOptional wraps a type so that its values may also be null.
type TypeOptional struct {
	Type Type
}

func NewTypeOptional(typ Type) *TypeOptional {
	return &TypeOptional{Type: typ}
}

func (t *TypeOptional) ID() int {
	return IDTypeOptional
}

func (t *TypeOptional) String() string {
	return "Optional(" + t.Type.String() + ")"
}

func (t *TypeOptional) Equal(u Type) bool {
	other, ok := u.(*TypeOptional)
	return ok && Equal(t.Type, other.Type)
}

// EnumerateStreams visits the null map of an optional column followed by
// the streams of the wrapped type.
func (t *TypeOptional) EnumerateStreams(visit StreamVisitor, path Path) {
	visit(path.Append(SubstreamNullMap))
	EnumerateStreams(t.Type, visit, path.Append(SubstreamNullableElements))
}
