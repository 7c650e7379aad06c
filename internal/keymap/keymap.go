// Package keymap stores per-mode key-sequence remappings.
//
// Left- and right-hand sides are canonicalized on the way in, so two
// spellings of the same key sequence address the same table slot. One
// table serves an editor session; the interpreter mutates it through
// the map-family ex commands.
package keymap

import (
	"fmt"

	"github.com/dshills/excmd/internal/notation"
)

// Binding is a single key remapping.
type Binding struct {
	// LHS is the canonicalized key sequence being remapped.
	LHS string

	// RHS is the canonicalized replacement sequence.
	RHS string

	// Recursive reports whether the RHS is itself subject to
	// remapping (map) or taken literally (noremap).
	Recursive bool
}

// Table holds the key mappings for every mode.
type Table struct {
	bindings map[RemapMode]map[string]*Binding
	order    map[RemapMode][]string
}

// NewTable creates an empty mapping table.
func NewTable() *Table {
	t := &Table{
		bindings: make(map[RemapMode]map[string]*Binding),
		order:    make(map[RemapMode][]string),
	}
	for _, m := range AllModes {
		t.bindings[m] = make(map[string]*Binding)
	}
	return t
}

// Define records lhs -> rhs in every given mode. Both sides are
// canonicalized. Within a mode the policy is last write wins, with one
// exception: a non-recursive define does not overwrite an existing
// recursive mapping for the same lhs, since silently downgrading a
// user's recursive mapping is worse than refusing. Define returns true
// only when the mapping was recorded in every requested mode.
func (t *Table) Define(lhs, rhs string, recursive bool, modes ...RemapMode) bool {
	lhs = notation.CanonicalizeSequence(lhs)
	rhs = notation.CanonicalizeSequence(rhs)

	ok := true
	for _, mode := range modes {
		existing := t.bindings[mode][lhs]
		if existing != nil && existing.Recursive && !recursive {
			ok = false
			continue
		}
		if existing == nil {
			t.order[mode] = append(t.order[mode], lhs)
		}
		t.bindings[mode][lhs] = &Binding{LHS: lhs, RHS: rhs, Recursive: recursive}
	}
	return ok
}

// Remove deletes the mapping for lhs in every given mode. Returns true
// if at least one mapping was removed.
func (t *Table) Remove(lhs string, modes ...RemapMode) bool {
	lhs = notation.CanonicalizeSequence(lhs)

	removed := false
	for _, mode := range modes {
		if _, ok := t.bindings[mode][lhs]; !ok {
			continue
		}
		delete(t.bindings[mode], lhs)
		order := t.order[mode]
		for i, k := range order {
			if k == lhs {
				t.order[mode] = append(order[:i], order[i+1:]...)
				break
			}
		}
		removed = true
	}
	return removed
}

// Lookup returns the binding for lhs in the given mode.
func (t *Table) Lookup(mode RemapMode, lhs string) (Binding, bool) {
	lhs = notation.CanonicalizeSequence(lhs)
	b := t.bindings[mode][lhs]
	if b == nil {
		return Binding{}, false
	}
	return *b, true
}

// Clear removes every mapping in the given modes.
func (t *Table) Clear(modes ...RemapMode) {
	for _, mode := range modes {
		t.bindings[mode] = make(map[string]*Binding)
		t.order[mode] = nil
	}
}

// ClearAll removes every mapping in every mode.
func (t *Table) ClearAll() {
	t.Clear(AllModes...)
}

// Bindings returns the bindings for a mode in definition order.
func (t *Table) Bindings(mode RemapMode) []Binding {
	result := make([]Binding, 0, len(t.order[mode]))
	for _, lhs := range t.order[mode] {
		if b := t.bindings[mode][lhs]; b != nil {
			result = append(result, *b)
		}
	}
	return result
}

// Len returns the number of mappings in a mode.
func (t *Table) Len(mode RemapMode) int {
	return len(t.bindings[mode])
}

// Print renders the mode's mappings the way :map prints them, one line
// per binding: the mode letter, four spaces, lhs, space, rhs.
func (t *Table) Print(mode RemapMode) []string {
	bindings := t.Bindings(mode)
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("%s    %s %s", mode.Letter(), b.LHS, b.RHS))
	}
	return lines
}
