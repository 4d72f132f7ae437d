package streams

import (
	"errors"
	"flag"
	"fmt"

	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/cmd/zcol/root"
	"github.com/brimdata/zcol/pkg/charm"
)

var Streams = &charm.Spec{
	Name:  "streams",
	Usage: "streams type",
	Short: "list the substream paths of a type",
	Long: `
The streams command prints the substream paths a column of the given type
is serialized into, one per line, in serialization order.`,
	New: newCommand,
}

func init() {
	root.Zcol.Add(Streams)
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
	if len(args) != 1 {
		return errors.New("zcol streams: must be run with a single type")
	}
	typ, err := c.TypeContext().LookupByName(args[0])
	if err != nil {
		return err
	}
	for _, path := range zcol.Streams(typ) {
		fmt.Println(path)
	}
	return nil
}
