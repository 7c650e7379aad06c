package ex

import "github.com/dshills/excmd/internal/keymap"

// Direction is a tab-navigation direction.
type Direction uint8

const (
	// Forward moves to the next tab.
	Forward Direction = iota

	// Backward moves to the previous tab.
	Backward
)

// String returns the direction's name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// LineCommand is a parsed ex command. The variant set is closed: every
// implementation lives in this package, and the interpreter's dispatch
// covers each one explicitly.
type LineCommand interface {
	lineCommand()
}

// SetCommand is :set. Args is the verbatim argument text; empty prints
// the modified options.
type SetCommand struct {
	Args string
}

// MapCommand is the map/noremap family. Args holds "lhs rhs"; empty
// prints the modes' mappings.
type MapCommand struct {
	Modes     []keymap.RemapMode
	Recursive bool
	Args      string
}

// MapClearCommand is the mapc family.
type MapClearCommand struct {
	Modes []keymap.RemapMode
}

// UnmapCommand is the unmap family. Args is the lhs to remove.
type UnmapCommand struct {
	Modes []keymap.RemapMode
	Args  string
}

// PutCommand is :put. Register 0 means the unnamed register. Bang
// inserts before the target line instead of after.
type PutCommand struct {
	Range    *Range
	Register rune
	Bang     bool
}

// RetabCommand is :retab. TabStop 0 keeps the current 'tabstop'.
type RetabCommand struct {
	Range   *Range
	Bang    bool
	TabStop int
}

// SubstituteCommand is :s. Raw is the argument text after the command
// name, parsed by ParseSubstitution at execution time.
type SubstituteCommand struct {
	Range *Range
	Raw   string
}

// GoToTabCommand is :tabnext / :tabprevious.
type GoToTabCommand struct {
	Direction Direction
	Count     int
}

// DeleteCommand is :delete.
type DeleteCommand struct {
	Range    *Range
	Register rune
	Count    int
}

// YankCommand is :yank.
type YankCommand struct {
	Range    *Range
	Register rune
	Count    int
}

// CopyCommand is :copy / :t. Address is the destination specifier.
type CopyCommand struct {
	Range   *Range
	Address Specifier

	// AddressZero marks the ":copy 0" form, which inserts above the
	// first line.
	AddressZero bool
}

// MoveCommand is :move.
type MoveCommand struct {
	Range       *Range
	Address     Specifier
	AddressZero bool
}

// WriteCommand is :write.
type WriteCommand struct {
	Range *Range
	Bang  bool
	File  string
}

// ReadCommand is :read.
type ReadCommand struct {
	Range *Range
	File  string
}

// FoldCommand is :fold / :foldopen.
type FoldCommand struct {
	Range *Range
	Open  bool
}

// GotoCommand is a bare range, which moves the cursor: ":5".
type GotoCommand struct {
	Range *Range
}

func (SetCommand) lineCommand()        {}
func (MapCommand) lineCommand()        {}
func (MapClearCommand) lineCommand()   {}
func (UnmapCommand) lineCommand()      {}
func (PutCommand) lineCommand()        {}
func (RetabCommand) lineCommand()      {}
func (SubstituteCommand) lineCommand() {}
func (GoToTabCommand) lineCommand()    {}
func (DeleteCommand) lineCommand()     {}
func (YankCommand) lineCommand()       {}
func (CopyCommand) lineCommand()       {}
func (MoveCommand) lineCommand()       {}
func (WriteCommand) lineCommand()      {}
func (ReadCommand) lineCommand()       {}
func (FoldCommand) lineCommand()       {}
func (GotoCommand) lineCommand()       {}
