package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// parse instantiates the commands named by args, starting at spec, and
// parses each command's flags.  It returns the command path and the
// arguments remaining after the last command's flags.
func parse(spec *Spec, args []string, parent Command) (path, []string, bool, error) {
	var p path
	var showHidden bool
	for {
		inst, err := newInstance(parent, spec)
		if err != nil {
			return nil, nil, false, err
		}
		p = append(p, inst)
		if err := inst.flags.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return p, nil, showHidden, NeedHelp
			}
			return nil, nil, false, fmt.Errorf("%s: %w", p.name(), err)
		}
		args = inst.flags.Args()
		if len(args) == 0 {
			return p, args, showHidden, nil
		}
		child := spec.lookupSub(args[0])
		if child == nil {
			return p, args, showHidden, nil
		}
		spec, parent, args = child, inst.command, args[1:]
	}
}

// parseHelp instantiates the commands named by args, ignoring flags, so
// that their options may be displayed.
func parseHelp(spec *Spec, args []string) (path, error) {
	inst, err := newInstance(nil, spec)
	if err != nil {
		return nil, err
	}
	p := path{inst}
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") || arg == "help" {
			continue
		}
		child := p.last().spec.lookupSub(arg)
		if child == nil {
			return nil, fmt.Errorf("no such command: %s", p.name(arg))
		}
		inst, err := newInstance(p.last().command, child)
		if err != nil {
			return nil, err
		}
		p = append(p, inst)
	}
	return p, nil
}

func newFlagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	return flags
}
