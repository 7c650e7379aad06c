package config

import (
	"fmt"

	"github.com/dshills/excmd/internal/interp"
	"github.com/dshills/excmd/internal/keymap"
)

// Apply replays the config onto a session: options first, then
// mappings. The first bad entry stops the replay.
func (c *Config) Apply(s *interp.Session) error {
	for _, tok := range c.Options {
		if _, err := s.Options.Eval(tok); err != nil {
			return fmt.Errorf("option %q: %w", tok, err)
		}
	}
	for _, m := range c.Mappings {
		mode, ok := keymap.ModeFromName(m.Mode)
		if !ok {
			return fmt.Errorf("mapping %q: unknown mode %q", m.LHS, m.Mode)
		}
		if m.LHS == "" || m.RHS == "" {
			return fmt.Errorf("mapping %q: lhs and rhs are required", m.LHS)
		}
		s.Keymap.Define(m.LHS, m.RHS, m.Recursive, mode)
	}
	return nil
}
