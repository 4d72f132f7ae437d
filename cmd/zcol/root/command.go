package root

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/brimdata/zcol/cli/logflags"
	"github.com/brimdata/zcol/dict"
	"github.com/brimdata/zcol/pkg/charm"
	"github.com/brimdata/zcol/pkg/storage"
	"github.com/brimdata/zcol/ztype"
	"go.uber.org/zap"
)

var Zcol = &charm.Spec{
	Name:  "zcol",
	Usage: "zcol <command> [options] [arguments...]",
	Short: "create and inspect dictionary column objects",
	Long: `
zcol is a command-line utility for building stream objects that hold a
dictionary-encoded column and for reading them back.  A dictionary column
stores each distinct value once in the DictionaryElements stream and the
per-row codes referencing those values in the DictionaryIndexes stream.

Objects may be read from and written to local files or s3 URIs.  Type
names use the form Dictionary(elem, index), e.g., Dictionary(string, uint16).`,
	New: New,
}

type Command struct {
	logFlags logflags.Flags
	Logger   *zap.Logger
	Engine   storage.Engine
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.logFlags.SetFlags(f)
	return c, nil
}

// Init opens the logger and storage engine.  Each subcommand calls Init
// at the start of Run and defers Cleanup.
func (c *Command) Init() error {
	logger, err := c.logFlags.Open()
	if err != nil {
		return err
	}
	c.Logger = logger
	c.Engine = storage.NewLocalEngine()
	c.ctx, c.cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	return nil
}

func (c *Command) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// TypeContext returns a type registry holding the builtin types and the
// Dictionary family.
func (c *Command) TypeContext() *ztype.Context {
	return dict.NewContext()
}

func (c *Command) Cleanup() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}

func (c *Command) Run(args []string) error {
	if len(args) == 0 {
		return charm.NeedHelp
	}
	return charm.ErrNoRun
}
