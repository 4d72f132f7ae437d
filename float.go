package zcol

type TypeOfFloat32 struct{}

func (t *TypeOfFloat32) ID() int {
	return IDFloat32
}

func (t *TypeOfFloat32) String() string {
	return "float32"
}

func (t *TypeOfFloat32) Equal(u Type) bool {
	return equalPrimitive(t, u)
}

type TypeOfFloat64 struct{}

func (t *TypeOfFloat64) ID() int {
	return IDFloat64
}

func (t *TypeOfFloat64) String() string {
	return "float64"
}

func (t *TypeOfFloat64) Equal(u Type) bool {
	return equalPrimitive(t, u)
}
