package interp

import (
	"fmt"
	"strings"

	"github.com/dshills/excmd/internal/ex"
	"github.com/dshills/excmd/internal/notation"
)

// execSet applies each :set argument token in order. With no arguments
// it prints the options that differ from their defaults.
func (i *Interp) execSet(cmd ex.SetCommand) error {
	tokens := strings.Fields(cmd.Args)
	if len(tokens) == 0 {
		for _, line := range i.session.Options.ListModified() {
			i.report(line)
		}
		return nil
	}
	for _, tok := range tokens {
		out, err := i.session.Options.Eval(tok)
		if err != nil {
			return err
		}
		if out != "" {
			i.report(out)
		}
	}
	return nil
}

// execMap defines or prints mappings. "lhs rhs" defines; "lhs" alone
// prints the matching mappings; no arguments prints everything in the
// command's modes.
func (i *Interp) execMap(cmd ex.MapCommand) error {
	lhs, rhs := splitMapArgs(cmd.Args)

	if lhs == "" {
		for _, mode := range cmd.Modes {
			for _, line := range i.session.Keymap.Print(mode) {
				i.report(line)
			}
		}
		return nil
	}

	if rhs == "" {
		lhs = notation.CanonicalizeSequence(lhs)
		found := false
		for _, mode := range cmd.Modes {
			b, ok := i.session.Keymap.Lookup(mode, lhs)
			if !ok {
				continue
			}
			found = true
			i.report(fmt.Sprintf("%s    %s %s", mode.Letter(), b.LHS, b.RHS))
		}
		if !found {
			i.report("No mapping found")
		}
		return nil
	}

	if !i.session.Keymap.Define(lhs, rhs, cmd.Recursive, cmd.Modes...) {
		return fmt.Errorf("mapping for %s exists as a recursive map; unmap it first", lhs)
	}
	return nil
}

func (i *Interp) execUnmap(cmd ex.UnmapCommand) error {
	lhs, extra := splitMapArgs(cmd.Args)
	if extra != "" {
		return fmt.Errorf("trailing characters: %s", extra)
	}
	if !i.session.Keymap.Remove(lhs, cmd.Modes...) {
		return fmt.Errorf("no such mapping: %s", lhs)
	}
	return nil
}

// splitMapArgs splits "lhs rhs..." at the first run of whitespace.
// The rhs keeps its internal spacing.
func splitMapArgs(args string) (lhs, rhs string) {
	args = strings.TrimSpace(args)
	idx := strings.IndexAny(args, " \t")
	if idx < 0 {
		return args, ""
	}
	return args[:idx], strings.TrimSpace(args[idx:])
}
