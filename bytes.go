package zcol

type TypeOfBytes struct{}

func (t *TypeOfBytes) ID() int {
	return IDBytes
}

func (t *TypeOfBytes) String() string {
	return "bytes"
}

func (t *TypeOfBytes) Equal(u Type) bool {
	return equalPrimitive(t, u)
}

type TypeOfString struct{}

func (t *TypeOfString) ID() int {
	return IDString
}

func (t *TypeOfString) String() string {
	return "string"
}

func (t *TypeOfString) Equal(u Type) bool {
	return equalPrimitive(t, u)
}
