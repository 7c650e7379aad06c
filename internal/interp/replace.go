package interp

import (
	"fmt"
	"regexp"
	"strings"
)

func compilePattern(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

// toTemplate rewrites a substitution replacement into the template
// syntax regexp.Expand understands: "&" and "\0" become the whole
// match, "\1".."\9" become group references, and literal "$" is
// doubled. "\&" stays a literal ampersand.
func toTemplate(repl string) string {
	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '\\' && i+1 < len(repl):
			next := repl[i+1]
			i++
			switch {
			case next >= '0' && next <= '9':
				fmt.Fprintf(&sb, "${%c}", next)
			case next == '&':
				sb.WriteByte('&')
			case next == 'n':
				sb.WriteByte('\n')
			case next == 't':
				sb.WriteByte('\t')
			case next == '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(next)
			}
		case c == '&':
			sb.WriteString("${0}")
		case c == '$':
			sb.WriteString("$$")
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
