// Package charm is a minimal CLI framework inspired by cobra and urfave/cli.
package charm

import (
	"errors"
	"flag"
)

var (
	NeedHelp = errors.New("help")
	ErrNoRun = errors.New("no run method")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden hides this command from help.
	Hidden bool
	// Hidden flags (comma-separated) marks these flags as hidden.
	HiddenFlags string
	// Redacted flags (comma-separated) marks these flags as redacted,
	// where a flag is shown (if not hidden) but its default value is hidden,
	// e.g., as is useful for a password flag.
	RedactedFlags string
	children      []*Spec
	parent        *Spec
}

func (c *Spec) Add(child *Spec) {
	c.children = append(c.children, child)
	child.parent = c
}

func (c *Spec) lookupSub(name string) *Spec {
	for _, child := range c.children {
		if name == child.Name {
			return child
		}
	}
	return nil
}

// Exec runs the command described by s, or one of its descendants, with
// parent as the parent command.
func (s *Spec) Exec(parent Command, args []string) error {
	path, rest, _, err := parse(s, args, parent)
	if err != nil {
		return err
	}
	return path.run(rest)
}

// ExecRoot parses args against the command tree rooted at s and runs the
// selected command.  A "help" argument or a command returning NeedHelp
// displays help for the selected command.
func (s *Spec) ExecRoot(args []string) error {
	path, rest, showHidden, err := parse(s, args, nil)
	if err == nil {
		if len(rest) > 0 && rest[0] == "help" {
			return runHelp(s, path, rest[1:])
		}
		err = path.run(rest)
	}
	if err == NeedHelp {
		path, err := parseHelp(s, args)
		if err != nil {
			return err
		}
		displayHelp(path, showHidden)
		return nil
	}
	return err
}

func runHelp(root *Spec, p path, args []string) error {
	flags := flag.NewFlagSet("help", flag.ContinueOnError)
	vflag := flags.Bool("v", false, "show hidden commands and flags")
	if err := flags.Parse(args); err != nil {
		return err
	}
	names := make([]string, 0, len(p)-1+flags.NArg())
	for _, inst := range p[1:] {
		names = append(names, inst.spec.Name)
	}
	hp, err := parseHelp(root, append(names, flags.Args()...))
	if err != nil {
		return err
	}
	displayHelp(hp, *vflag)
	return nil
}
