package option

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Store errors.
var (
	ErrUnknownOption = errors.New("unknown option")
	ErrNotToggle     = errors.New("not a toggle option")
	ErrInvalidValue  = errors.New("invalid value")
	ErrNeedsValue    = errors.New("option requires a value")
)

// Store holds option values for one session: a global scope plus the
// current buffer's local scope.
type Store struct {
	options []*Option
	lookup  map[string]*Option

	globals map[string]any
	locals  map[string]any

	// spelled remembers the spelling the user last assigned each
	// option with, so :set prints it back the same way.
	spelled map[string]string
}

// NewStore creates a store with the built-in options registered.
func NewStore() *Store {
	s := &Store{
		lookup:  make(map[string]*Option),
		globals: make(map[string]any),
		locals:  make(map[string]any),
		spelled: make(map[string]string),
	}
	for _, opt := range defaults() {
		s.MustRegister(opt)
	}
	return s
}

// Register adds an option definition. Fails on duplicate names.
func (s *Store) Register(opt Option) error {
	names := append([]string{opt.Name}, opt.Abbrev...)
	for _, n := range names {
		if _, exists := s.lookup[n]; exists {
			return fmt.Errorf("option already registered: %s", n)
		}
	}
	o := &opt
	s.options = append(s.options, o)
	for _, n := range names {
		s.lookup[n] = o
	}
	return nil
}

// MustRegister registers an option and panics on error. For built-in
// declarations.
func (s *Store) MustRegister(opt Option) {
	if err := s.Register(opt); err != nil {
		panic(err)
	}
}

// Options returns the registered option definitions in declaration
// order.
func (s *Store) Options() []*Option {
	result := make([]*Option, len(s.options))
	copy(result, s.options)
	return result
}

// Lookup resolves a canonical or abbreviated option name.
func (s *Store) Lookup(name string) (*Option, error) {
	if o, ok := s.lookup[name]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
}

// Get returns the effective value of an option: the buffer-local value
// if one is set, else the global value, else the default.
func (s *Store) Get(name string) (any, error) {
	o, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.value(o), nil
}

func (s *Store) value(o *Option) any {
	if o.Scope == ScopeBuffer {
		if v, ok := s.locals[o.Name]; ok {
			return v
		}
	}
	if v, ok := s.globals[o.Name]; ok {
		return v
	}
	return o.Default
}

func (s *Store) set(o *Option, spelling string, v any) {
	if o.Scope == ScopeBuffer {
		s.locals[o.Name] = v
	} else {
		s.globals[o.Name] = v
	}
	s.spelled[o.Name] = spelling
}

// Set assigns an option from its textual right-hand side, parsed per
// the option's kind. Toggles cannot be assigned with "=".
func (s *Store) Set(name, raw string) error {
	o, err := s.Lookup(name)
	if err != nil {
		return err
	}
	switch o.Kind {
	case KindString:
		s.set(o, name, raw)
	case KindNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%s", ErrInvalidValue, name, raw)
		}
		s.set(o, name, n)
	case KindToggle:
		return fmt.Errorf("%w: %s", ErrInvalidValue, name)
	}
	return nil
}

// SetNumber assigns a number option directly.
func (s *Store) SetNumber(name string, v int) error {
	o, err := s.Lookup(name)
	if err != nil {
		return err
	}
	if o.Kind != KindNumber {
		return fmt.Errorf("%w: %s", ErrInvalidValue, name)
	}
	s.set(o, name, v)
	return nil
}

// ToggleOn sets a toggle option true.
func (s *Store) ToggleOn(name string) error {
	return s.setToggle(name, name, true)
}

// ToggleOff sets a toggle option false.
func (s *Store) ToggleOff(name string) error {
	return s.setToggle(name, name, false)
}

func (s *Store) setToggle(name, spelling string, v bool) error {
	o, err := s.Lookup(name)
	if err != nil {
		return err
	}
	if o.Kind != KindToggle {
		return fmt.Errorf("%w: %s", ErrNotToggle, name)
	}
	s.set(o, spelling, v)
	return nil
}

// Invert flips a toggle option's current effective value.
func (s *Store) Invert(name string) error {
	o, err := s.Lookup(name)
	if err != nil {
		return err
	}
	if o.Kind != KindToggle {
		return fmt.Errorf("%w: %s", ErrNotToggle, name)
	}
	cur, _ := s.value(o).(bool)
	s.set(o, name, !cur)
	return nil
}

// Toggle returns a toggle option's effective value. Unknown names
// report false; use Get when the name is not known-good.
func (s *Store) Toggle(name string) bool {
	o, err := s.Lookup(name)
	if err != nil || o.Kind != KindToggle {
		return false
	}
	v, _ := s.value(o).(bool)
	return v
}

// Number returns a number option's effective value, or 0 for unknown
// names.
func (s *Store) Number(name string) int {
	o, err := s.Lookup(name)
	if err != nil || o.Kind != KindNumber {
		return 0
	}
	v, _ := s.value(o).(int)
	return v
}

// Str returns a string option's effective value, or "" for unknown
// names.
func (s *Store) Str(name string) string {
	o, err := s.Lookup(name)
	if err != nil || o.Kind != KindString {
		return ""
	}
	v, _ := s.value(o).(string)
	return v
}

// Eval applies one :set argument token and returns any text it should
// print.
//
// Forms: name (toggle on), noname (toggle off), name! (invert),
// name? (query), name=value (assign). A bare non-toggle name queries
// its value, as :set does.
func (s *Store) Eval(token string) (string, error) {
	switch {
	case strings.Contains(token, "="):
		parts := strings.SplitN(token, "=", 2)
		return "", s.Set(parts[0], parts[1])

	case strings.HasSuffix(token, "!"):
		return "", s.Invert(strings.TrimSuffix(token, "!"))

	case strings.HasSuffix(token, "?"):
		name := strings.TrimSuffix(token, "?")
		o, err := s.Lookup(name)
		if err != nil {
			return "", err
		}
		return s.render(o, name), nil

	case strings.HasPrefix(token, "no"):
		// "no" may be a prefix ("nonumber") or part of a name
		// ("nrformats" is not, but be careful with future options).
		if _, err := s.Lookup(token); err == nil {
			return s.evalBare(token)
		}
		return "", s.setToggle(strings.TrimPrefix(token, "no"), token, false)

	default:
		return s.evalBare(token)
	}
}

// evalBare handles a bare option name: toggles turn on, the rest print
// their current value.
func (s *Store) evalBare(name string) (string, error) {
	o, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	if o.Kind == KindToggle {
		return "", s.setToggle(name, name, true)
	}
	return s.render(o, name), nil
}

// render formats one option as :set prints it, using the given
// spelling.
func (s *Store) render(o *Option, spelling string) string {
	v := s.value(o)
	if o.Kind == KindToggle {
		if b, _ := v.(bool); b {
			return spelling
		}
		return "no" + strings.TrimPrefix(spelling, "no")
	}
	return fmt.Sprintf("%s=%v", spelling, v)
}

// ListModified returns every option whose effective value differs from
// its default, rendered in registration order with the spelling the
// user last assigned.
func (s *Store) ListModified() []string {
	var out []string
	for _, o := range s.options {
		if s.value(o) == o.Default {
			continue
		}
		spelling := s.spelled[o.Name]
		if spelling == "" {
			spelling = o.Name
		}
		// A "noname" assignment spelling reduces to the name.
		if o.Kind == KindToggle {
			spelling = strings.TrimPrefix(spelling, "no")
		}
		out = append(out, s.render(o, spelling))
	}
	return out
}
