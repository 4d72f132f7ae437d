package cat

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/cmd/zcol/root"
	"github.com/brimdata/zcol/pkg/charm"
	"github.com/brimdata/zcol/pkg/storage"
	"github.com/brimdata/zcol/stream"
	"gopkg.in/yaml.v3"
)

var Cat = &charm.Spec{
	Name:  "cat",
	Usage: "cat [-dict] [-meta] uri",
	Short: "print the rows of a dictionary column object",
	Long: `
The cat command reads the dictionary column stored in the object at uri and
prints the text form of each row, one per line.

With -dict, only the DictionaryElements stream is read and the distinct
values are printed in code order.  With -meta, the object's metadata is
printed as YAML instead.`,
	New: newCommand,
}

func init() {
	root.Zcol.Add(Cat)
}

type Command struct {
	*root.Command
	dict      bool
	meta      bool
	chunkRows int
}

func newCommand(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.BoolVar(&c.dict, "dict", false, "print the dictionary values instead of the rows")
	f.BoolVar(&c.meta, "meta", false, "print the object metadata")
	f.IntVar(&c.chunkRows, "chunk", stream.DefaultChunkRows, "rows deserialized per pass")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if err := c.Init(); err != nil {
		return err
	}
	defer c.Cleanup()
	if len(args) != 1 {
		return errors.New("zcol cat: must be run with a single object")
	}
	uri, err := storage.ParseURI(args[0])
	if err != nil {
		return err
	}
	in, err := c.Engine.Get(c.Context(), uri)
	if err != nil {
		return err
	}
	defer in.Close()
	size, err := storage.Size(in)
	if err != nil {
		return err
	}
	opts := stream.ReaderOpts{Logger: c.Logger}
	if c.dict {
		opts.Skip = []zcol.Path{{zcol.SubstreamDictionaryIndexes}}
	}
	r, err := stream.NewReader(in, size, opts)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(os.Stdout)
	if c.meta {
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(r.Metadata()); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		return out.Flush()
	}
	_, col, err := stream.ReadColumn(r, c.TypeContext(), c.chunkRows)
	if err != nil {
		return err
	}
	if c.dict {
		for code := 0; code < col.DictLen(); code++ {
			fmt.Fprintln(out, col.FormatCode(uint64(code)))
		}
	} else {
		for row := 0; row < col.Len(); row++ {
			fmt.Fprintln(out, col.FormatRow(row))
		}
	}
	return out.Flush()
}
