package create

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/units"
	"github.com/brimdata/zcol/cmd/zcol/root"
	"github.com/brimdata/zcol/codec"
	"github.com/brimdata/zcol/dict"
	"github.com/brimdata/zcol/pkg/charm"
	"github.com/brimdata/zcol/pkg/storage"
	"github.com/brimdata/zcol/stream"
	"go.uber.org/zap"
)

var Create = &charm.Spec{
	Name:  "create",
	Usage: "create -type type -o uri [options] [file]",
	Short: "create a dictionary column object from text values",
	Long: `
The create command reads one value per line from file, or from stdin when
no file is given, appends each to a dictionary column of the given type,
and writes the column as a stream object to the -o location, which may be
a local path or an s3 URI.

The -segthresh flag sets the number of bytes buffered per stream before a
segment is written, as '256KiB' or '5MiB', etc.  Segments are lz4 compressed unless
-nocompress is given.  The -chunk flag sets the number of rows serialized
per pass over the column.`,
	New: newCommand,
}

func init() {
	root.Zcol.Add(Create)
}

type Command struct {
	*root.Command
	typeName   string
	output     string
	segThresh  string
	noCompress bool
	chunkRows  int
}

func newCommand(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.typeName, "type", "", "dictionary column type, e.g., Dictionary(string, uint16)")
	f.StringVar(&c.output, "o", "", "location of the output object")
	f.StringVar(&c.segThresh, "segthresh", units.Base2Bytes(stream.DefaultSegmentThresh).String(), "segment size at which stream data is written, as '256KiB' or '5MiB', etc.")
	f.BoolVar(&c.noCompress, "nocompress", false, "do not compress segments")
	f.IntVar(&c.chunkRows, "chunk", stream.DefaultChunkRows, "rows serialized per pass")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if err := c.Init(); err != nil {
		return err
	}
	defer c.Cleanup()
	if len(args) > 1 {
		return errors.New("zcol create: at most one input file")
	}
	if c.typeName == "" {
		return errors.New("zcol create: must specify a type with -type")
	}
	if c.output == "" {
		return errors.New("zcol create: must specify an output with -o")
	}
	segThresh, err := units.ParseStrictBytes(c.segThresh)
	if err != nil {
		return fmt.Errorf("zcol create: invalid segment threshold: %w", err)
	}
	typ, err := c.TypeContext().LookupByName(c.typeName)
	if err != nil {
		return err
	}
	dtyp, ok := typ.(*dict.TypeDict)
	if !ok {
		return fmt.Errorf("zcol create: %s is not a dictionary type", typ)
	}
	col, err := dtyp.NewColumn()
	if err != nil {
		return err
	}
	in := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	scanner := newScanner(in)
	for line := 1; scanner.Scan(); line++ {
		if err := col.AppendText(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	uri, err := storage.ParseURI(c.output)
	if err != nil {
		return err
	}
	out, err := c.Engine.Put(c.Context(), uri)
	if err != nil {
		return err
	}
	opts := stream.DefaultWriterOpts()
	opts.SegmentThresh = int(segThresh)
	opts.Compress = !c.noCompress
	opts.Logger = c.Logger
	w, err := stream.NewWriter(out, dtyp, opts)
	if err != nil {
		out.Close()
		return err
	}
	if err := stream.WriteColumn(w, dtyp, col, c.chunkRows); err != nil {
		w.Abort()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	c.Logger.Info("created column object",
		zap.Stringer("uri", uri),
		zap.Int("rows", col.Len()),
		zap.Int("distinct", col.DictLen()))
	return nil
}

// newScanner returns a line scanner that accepts lines as long as the
// longest string a column can decode.
func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), codec.MaxStringLen+1)
	return scanner
}
