// Package notation canonicalizes textual key notation.
//
// Mapping commands accept many spellings for the same key: <c-a>, <C-a>,
// and <C-A> all name Ctrl-A, while <Return> and <Enter> both name <CR>.
// The mapping table stores and prints exactly one spelling per key, so
// every left- and right-hand side passes through Canonicalize first.
package notation

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// controlAliases maps control-letter notation to the named key it has
// historically produced on a terminal. <C-[> is Escape, <C-i> is Tab,
// and so on. The keys are the lowercased character after "c-".
var controlAliases = map[string]string{
	"[": "<Esc>",
	"@": "<Nul>",
	"i": "<Tab>",
	"j": "<NL>",
	"m": "<CR>",
}

// namedKeys maps lowercased key names to their canonical spelling
// (without brackets).
var namedKeys = map[string]string{
	"esc":       "Esc",
	"escape":    "Esc",
	"cr":        "CR",
	"return":    "CR",
	"enter":     "CR",
	"nl":        "NL",
	"newline":   "NL",
	"linefeed":  "NL",
	"nul":       "Nul",
	"null":      "Nul",
	"tab":       "Tab",
	"space":     "Space",
	"bs":        "BS",
	"backspace": "BS",
	"del":       "Del",
	"delete":    "Del",
	"ins":       "Ins",
	"insert":    "Ins",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"pagedown":  "PageDown",
	"pgdn":      "PageDown",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"leader":    "Leader",
	"lt":        "lt",
	"bar":       "Bar",
	"bslash":    "Bslash",
	"f1":        "F1",
	"f2":        "F2",
	"f3":        "F3",
	"f4":        "F4",
	"f5":        "F5",
	"f6":        "F6",
	"f7":        "F7",
	"f8":        "F8",
	"f9":        "F9",
	"f10":       "F10",
	"f11":       "F11",
	"f12":       "F12",
}

// Canonicalize returns the canonical spelling for a single key token.
//
// Plain characters are returned unchanged. Bracketed notation is
// normalized: <S-a> collapses to A, <c-a> becomes <C-A> (or a named
// alias such as <Esc> for <c-[>), and named keys take their canonical
// capitalization. Canonicalize is idempotent: feeding its output back
// in returns the same string.
func Canonicalize(token string) string {
	if len(token) < 3 || !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return token
	}
	inner := token[1 : len(token)-1]

	mods, keyPart := splitModifiers(inner)
	if len(mods) == 0 {
		if name, ok := namedKeys[strings.ToLower(keyPart)]; ok {
			return "<" + name + ">"
		}
		// Unrecognized name, keep the spelling as written.
		return token
	}

	// Letter-shift notation collapses to the bare uppercase letter.
	if len(mods) == 1 && mods[0] == 'S' && isSingleLetter(keyPart) {
		return strings.ToUpper(keyPart)
	}

	// Control-letter aliases only apply to a lone Ctrl modifier.
	if len(mods) == 1 && mods[0] == 'C' && isSingleRune(keyPart) {
		if alias, ok := controlAliases[strings.ToLower(keyPart)]; ok {
			return alias
		}
	}

	var sb strings.Builder
	sb.WriteByte('<')
	for _, m := range mods {
		sb.WriteRune(m)
		sb.WriteByte('-')
	}
	sb.WriteString(canonicalKeyPart(keyPart))
	sb.WriteByte('>')
	return sb.String()
}

// CanonicalizeSequence canonicalizes every token of a key sequence.
func CanonicalizeSequence(seq string) string {
	tokens := Split(seq)
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(Canonicalize(tok))
	}
	return sb.String()
}

// Split breaks a key sequence into tokens. A bracketed group <...> is
// one token; everything else is split per grapheme cluster so a
// multi-rune glyph stays a single key.
func Split(seq string) []string {
	var tokens []string
	for len(seq) > 0 {
		if seq[0] == '<' {
			if end := strings.IndexByte(seq, '>'); end > 0 {
				tokens = append(tokens, seq[:end+1])
				seq = seq[end+1:]
				continue
			}
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(seq, -1)
		tokens = append(tokens, cluster)
		seq = rest
	}
	return tokens
}

// modifier canonical order. D is the command/meta modifier.
var modifierOrder = []rune{'C', 'S', 'A', 'D'}

// splitModifiers separates "c-s-x" into normalized modifier letters and
// the key part. Returns no modifiers when the token has none.
func splitModifiers(inner string) ([]rune, string) {
	parts := strings.Split(inner, "-")
	if len(parts) == 1 {
		return nil, inner
	}

	// A trailing empty part means the key itself is "-", as in <C-->.
	keyPart := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]
	if keyPart == "" && len(modParts) > 0 {
		keyPart = "-"
		modParts = modParts[:len(modParts)-1]
	}

	seen := map[rune]bool{}
	for _, p := range modParts {
		var m rune
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			m = 'C'
		case "s":
			m = 'S'
		case "a":
			m = 'A'
		case "m", "d":
			m = 'D'
		default:
			// Not modifier notation after all ("<c-" in a search
			// pattern, say). Treat the whole inner text as a name.
			return nil, inner
		}
		seen[m] = true
	}

	var mods []rune
	for _, m := range modifierOrder {
		if seen[m] {
			mods = append(mods, m)
		}
	}
	return mods, keyPart
}

// canonicalKeyPart normalizes the key part of a modified token:
// letters go uppercase, named keys take canonical capitalization.
func canonicalKeyPart(keyPart string) string {
	if isSingleLetter(keyPart) {
		return strings.ToUpper(keyPart)
	}
	if name, ok := namedKeys[strings.ToLower(keyPart)]; ok {
		return name
	}
	return keyPart
}

func isSingleLetter(s string) bool {
	r := []rune(s)
	return len(r) == 1 && unicode.IsLetter(r[0])
}

func isSingleRune(s string) bool {
	return len([]rune(s)) == 1
}
