package types

import (
	"flag"
	"fmt"

	"github.com/brimdata/zcol/cmd/zcol/root"
	"github.com/brimdata/zcol/pkg/charm"
)

var Types = &charm.Spec{
	Name:  "types",
	Usage: "types [type ...]",
	Short: "normalize type expressions or list type families",
	Long: `
The types command parses each argument as a type expression and prints its
canonical name.  With no arguments, it lists the registered type families.`,
	New: newCommand,
}

func init() {
	root.Zcol.Add(Types)
}

type Command struct {
	*root.Command
}

func newCommand(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	if err := c.Init(); err != nil {
		return err
	}
	defer c.Cleanup()
	zctx := c.TypeContext()
	if len(args) == 0 {
		for _, name := range zctx.Families() {
			fmt.Println(name)
		}
		return nil
	}
	for _, arg := range args {
		typ, err := zctx.LookupByName(arg)
		if err != nil {
			return err
		}
		fmt.Println(typ)
	}
	return nil
}
