package charm

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/exp/slices"
)

// path is the chain of command instances from the root to the selected
// command.
type path []*instance

// run runs the selected command.  A command returning ErrNoRun does
// nothing itself, so args must begin with one of its sub-commands.
func (p path) run(args []string) error {
	err := p.last().command.Run(args)
	if err != ErrNoRun {
		return err
	}
	names := p.children()
	if len(args) == 0 {
		return fmt.Errorf("%s: a sub-command is required: options are: %s", p.name(), strings.Join(names, ", "))
	}
	msg := fmt.Sprintf("%s: unknown sub-command %q", p.name(), args[0])
	if guess := closest(args[0], names); guess != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", guess)
	}
	return fmt.Errorf("%s: options are: %s", msg, strings.Join(names, ", "))
}

func (p path) last() *instance {
	return p[len(p)-1]
}

// name returns the command line naming the selected command, followed by
// extra.
func (p path) name(extra ...string) string {
	var b strings.Builder
	for k, inst := range p {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(inst.spec.Name)
	}
	for _, s := range extra {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	return b.String()
}

// children returns the sorted names of the selected command's visible
// sub-commands.
func (p path) children() []string {
	var names []string
	for _, child := range p.last().spec.children {
		if !child.Hidden {
			names = append(names, child.Name)
		}
	}
	slices.Sort(names)
	return names
}

// closest returns the name within edit distance 2 of s, or "".
func closest(s string, names []string) string {
	best, dist := "", 3
	for _, name := range names {
		if d := levenshtein.ComputeDistance(s, name); d < dist {
			best, dist = name, d
		}
	}
	return best
}
