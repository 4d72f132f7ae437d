package zcol

type TypeOfBool struct{}

func (t *TypeOfBool) ID() int {
	return IDBool
}

func (t *TypeOfBool) String() string {
	return "bool"
}

func (t *TypeOfBool) Equal(u Type) bool {
	return equalPrimitive(t, u)
}
