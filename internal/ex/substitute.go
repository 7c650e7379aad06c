package ex

import (
	"fmt"
	"strconv"
	"strings"
)

// Substitution is the parsed argument of :s. An empty Pattern means
// the previous substitution's pattern and flags should be reused.
type Substitution struct {
	Pattern     string
	Replacement string

	// Flags is the trailing flag text, verbatim.
	Flags string

	// Count is an optional trailing count after the flags; 0 means
	// none was written.
	Count int
}

// Global reports whether the "g" flag is set.
func (s Substitution) Global() bool { return strings.ContainsRune(s.Flags, 'g') }

// IgnoreCase reports whether the "i" flag is set.
func (s Substitution) IgnoreCase() bool { return strings.ContainsRune(s.Flags, 'i') }

// ParseSubstitution parses the text after :s. The first character
// picks the separator; any punctuation other than backslash, '"' or
// '|' works. A backslash escapes the separator inside the pattern and
// replacement. Missing trailing parts are allowed: "s/pat" and
// "s/pat/rep" are both complete. Empty raw text means repeat the
// previous substitution.
func ParseSubstitution(raw string) (Substitution, error) {
	raw = strings.TrimLeft(raw, " \t")
	if raw == "" {
		return Substitution{}, nil
	}

	sep := raw[0]
	if isAlnum(sep) || sep == '\\' || sep == '"' || sep == '|' || sep == ' ' {
		return Substitution{}, fmt.Errorf("invalid separator %q", string(sep))
	}

	p := &parser{in: raw, pos: 1}
	var sub Substitution
	sub.Pattern = p.readPattern(sep)
	sub.Replacement = p.readPattern(sep)

	rest := strings.TrimSpace(p.in[p.pos:])
	flags := rest
	if i := strings.IndexFunc(rest, func(r rune) bool { return r >= '0' && r <= '9' }); i >= 0 {
		flags = strings.TrimSpace(rest[:i])
		n, err := strconv.Atoi(strings.TrimSpace(rest[i:]))
		if err != nil || n < 1 {
			return Substitution{}, fmt.Errorf("%w: %s", ErrBadCount, rest[i:])
		}
		sub.Count = n
	}
	for _, r := range flags {
		switch r {
		case 'g', 'i', 'I', 'n', 'e', '&', 'c':
		default:
			return Substitution{}, fmt.Errorf("invalid substitute flag %q", string(r))
		}
	}
	sub.Flags = flags
	return sub, nil
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
