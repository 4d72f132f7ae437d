package charm

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rootCommand struct {
	verbose bool
	ran     []string
}

func (c *rootCommand) Run(args []string) error {
	if len(args) == 0 {
		return NeedHelp
	}
	return ErrNoRun
}

type leafCommand struct {
	root  *rootCommand
	count int
}

func (c *leafCommand) Run(args []string) error {
	c.root.ran = append(c.root.ran, args...)
	return nil
}

func newTree(root *rootCommand, leaf **leafCommand) *Spec {
	rootSpec := &Spec{
		Name:  "tool",
		Usage: "tool [options] command",
		Short: "test tool",
		New: func(_ Command, f *flag.FlagSet) (Command, error) {
			f.BoolVar(&root.verbose, "v", false, "verbose")
			return root, nil
		},
	}
	rootSpec.Add(&Spec{
		Name:        "leaf",
		Usage:       "leaf [-n count] args",
		Short:       "leaf command",
		Long:        "The leaf command records its arguments.",
		HiddenFlags: "secret",
		New: func(parent Command, f *flag.FlagSet) (Command, error) {
			c := &leafCommand{root: parent.(*rootCommand)}
			f.IntVar(&c.count, "n", 1, "count")
			f.Bool("secret", false, "hidden flag")
			*leaf = c
			return c, nil
		},
	})
	return rootSpec
}

func TestExecRoot(t *testing.T) {
	root := &rootCommand{}
	var leaf *leafCommand
	spec := newTree(root, &leaf)
	require.NoError(t, spec.ExecRoot([]string{"-v", "leaf", "-n", "3", "a", "b"}))
	assert.True(t, root.verbose)
	require.NotNil(t, leaf)
	assert.Equal(t, 3, leaf.count)
	assert.Equal(t, []string{"a", "b"}, root.ran)
}

func TestNoSuchCommand(t *testing.T) {
	var leaf *leafCommand
	spec := newTree(&rootCommand{}, &leaf)
	err := spec.ExecRoot([]string{"bogus"})
	assert.EqualError(t, err, `tool: unknown sub-command "bogus": options are: leaf`)
	err = spec.ExecRoot([]string{"lef"})
	assert.EqualError(t, err, `tool: unknown sub-command "lef" (did you mean "leaf"?): options are: leaf`)
	_, err = parseHelp(spec, []string{"bogus"})
	assert.EqualError(t, err, "no such command: tool bogus")
	assert.Error(t, spec.ExecRoot([]string{"-badflag"}))
}

func TestHelp(t *testing.T) {
	var leaf *leafCommand
	spec := newTree(&rootCommand{}, &leaf)
	p, err := parseHelp(spec, []string{"leaf"})
	require.NoError(t, err)
	var buf bytes.Buffer
	writeHelp(&buf, p, false)
	out := buf.String()
	assert.Contains(t, out, "leaf - leaf command")
	assert.Contains(t, out, `-n count (default "1")`)
	assert.Contains(t, out, "[tool flags]")
	assert.Contains(t, out, "The leaf command records its arguments.")
	assert.NotContains(t, out, "-secret")

	buf.Reset()
	writeHelp(&buf, p, true)
	assert.Contains(t, buf.String(), "[-secret]")
}

func TestFlagMap(t *testing.T) {
	assert.Equal(t, map[string]bool{"a": true, "b": true}, flagMap("a, b"))
}
