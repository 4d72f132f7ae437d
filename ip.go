package zcol

type TypeOfIP struct{}

func (t *TypeOfIP) ID() int {
	return IDIP
}

func (t *TypeOfIP) String() string {
	return "ip"
}

func (t *TypeOfIP) Equal(u Type) bool {
	return equalPrimitive(t, u)
}
