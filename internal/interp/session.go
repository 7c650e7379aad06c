package interp

import (
	"github.com/google/uuid"

	"github.com/dshills/excmd/internal/keymap"
	"github.com/dshills/excmd/internal/option"
	"github.com/dshills/excmd/internal/register"
)

// SubstituteMemo remembers the last substitution. A :s with an empty
// pattern reuses the pattern (and the flags, when none are written); a
// bare :s repeats the replacement too.
type SubstituteMemo struct {
	Pattern     string
	Replacement string
	Flags       string
}

// UserCommand is a host-registered command handler, invoked when a
// command word matches no built-in. Plugins register these.
type UserCommand func(i *Interp, arg string, bang bool) error

// Session is the per-editor-session state the interpreter mutates:
// key mappings, options, registers, and the search and substitution
// memories.
type Session struct {
	// ID identifies the session in logs and plugin callbacks.
	ID string

	Keymap    *keymap.Table
	Options   *option.Store
	Registers *register.Store

	// LastSearch is the most recent search pattern, shared by range
	// specifiers and :s.
	LastSearch string

	// LastSubstitute is nil until the first successful :s.
	LastSubstitute *SubstituteMemo

	userCommands map[string]UserCommand
}

// NewSession creates a session with default options and empty mappings
// and registers.
func NewSession() *Session {
	return &Session{
		ID:           uuid.NewString(),
		Keymap:       keymap.NewTable(),
		Options:      option.NewStore(),
		Registers:    register.NewStore(),
		userCommands: make(map[string]UserCommand),
	}
}

// RegisterCommand adds a user command. A later registration under the
// same name replaces the earlier one.
func (s *Session) RegisterCommand(name string, fn UserCommand) {
	s.userCommands[name] = fn
}

// UserCommand returns the handler registered under name.
func (s *Session) UserCommand(name string) (UserCommand, bool) {
	fn, ok := s.userCommands[name]
	return fn, ok
}
