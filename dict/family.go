package dict

import (
	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/ztype"
)

// FamilyName is the name of the dictionary type in type expressions.
const FamilyName = "Dictionary"

// Register adds the Dictionary(elem, index) family to zctx.
func Register(zctx *ztype.Context) error {
	return zctx.Register(FamilyName, family)
}

// NewContext returns a type context with the Dictionary family
// registered.
func NewContext() *ztype.Context {
	zctx := ztype.NewContext()
	if err := Register(zctx); err != nil {
		panic(err)
	}
	return zctx
}

func family(_ *ztype.Context, args []ztype.Arg) (zcol.Type, error) {
	if err := ztype.CheckArgs(FamilyName, args, 2); err != nil {
		return nil, err
	}
	elem, err := ztype.TypeArg(FamilyName, args, 0)
	if err != nil {
		return nil, err
	}
	index, err := ztype.TypeArg(FamilyName, args, 1)
	if err != nil {
		return nil, err
	}
	return New(elem, index)
}
