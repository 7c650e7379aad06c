// Package register implements the session's text registers.
//
// A register records text together with the shape the producing
// operation had: character-wise, line-wise, or block-wise. The shape is
// metadata about the source; consuming commands decide how much of it
// to honor (:put, for one, always inserts line-wise).
package register

import (
	"sync"
	"unicode"
)

// OperationKind is the recorded shape of register content.
type OperationKind uint8

const (
	// CharacterWise content is a fragment within a line.
	CharacterWise OperationKind = iota

	// LineWise content is whole lines.
	LineWise

	// BlockWise content is a rectangular block.
	BlockWise
)

// String returns the kind's name.
func (k OperationKind) String() string {
	switch k {
	case CharacterWise:
		return "characterwise"
	case LineWise:
		return "linewise"
	case BlockWise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Unnamed is the default register name.
const Unnamed = '"'

// Register holds one register's content and recorded shape.
type Register struct {
	Content string
	Kind    OperationKind
}

// Store manages all registers for a session.
type Store struct {
	mu        sync.RWMutex
	registers map[rune]*Register

	// numbered are registers 1-9, the rotating delete history.
	numbered [9]*Register
}

// NewStore creates a register store with the standard registers.
func NewStore() *Store {
	s := &Store{registers: make(map[rune]*Register)}

	s.registers[Unnamed] = &Register{}
	for r := 'a'; r <= 'z'; r++ {
		s.registers[r] = &Register{}
	}
	for i := 0; i <= 9; i++ {
		r := rune('0' + i)
		s.registers[r] = &Register{}
		if i >= 1 {
			s.numbered[i-1] = s.registers[r]
		}
	}
	s.registers['-'] = &Register{}
	s.registers['_'] = &Register{}

	return s
}

// Valid reports whether name is a register this store manages.
func Valid(name rune) bool {
	switch {
	case name == Unnamed:
		return true
	case name >= 'a' && name <= 'z':
		return true
	case name >= 'A' && name <= 'Z':
		return true
	case name >= '0' && name <= '9':
		return true
	case name == '-', name == '_':
		return true
	default:
		return false
	}
}

// Get returns a register's content and recorded shape. Uppercase names
// read the same register as their lowercase form. The second return is
// false for unknown register names.
func (s *Store) Get(name rune) (Register, bool) {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.registers[name]
	if !ok {
		return Register{}, false
	}
	return *reg, true
}

// Set stores content in a register. Uppercase named registers append
// to their lowercase register instead of replacing it. The black hole
// register discards everything.
func (s *Store) Set(name rune, content string, kind OperationKind) {
	if name == '_' {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appendMode := false
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		appendMode = true
	}

	reg, ok := s.registers[name]
	if !ok {
		return
	}

	if appendMode {
		if reg.Content == "" {
			reg.Content = content
			reg.Kind = kind
			return
		}
		// A line-wise side makes the whole register line-wise.
		if reg.Kind == LineWise || kind == LineWise {
			reg.Content += "\n" + content
			reg.Kind = LineWise
		} else {
			reg.Content += content
		}
		return
	}
	reg.Content = content
	reg.Kind = kind
}

// SetYank records a yank in register 0 and the unnamed register.
func (s *Store) SetYank(content string, kind OperationKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registers['0'].Content = content
	s.registers['0'].Kind = kind
	s.registers[Unnamed].Content = content
	s.registers[Unnamed].Kind = kind
}

// SetDelete records a delete, rotating the numbered history 1-9 for
// multi-line deletes and using the small-delete register otherwise.
// The unnamed register always receives the text.
func (s *Store) SetDelete(content string, kind OperationKind, small bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if small {
		s.registers['-'].Content = content
		s.registers['-'].Kind = kind
	} else {
		for i := 8; i > 0; i-- {
			*s.numbered[i] = *s.numbered[i-1]
		}
		s.numbered[0].Content = content
		s.numbered[0].Kind = kind
	}

	s.registers[Unnamed].Content = content
	s.registers[Unnamed].Kind = kind
}
