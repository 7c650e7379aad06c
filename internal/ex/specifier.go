// Package ex parses colon command-line input into structured commands.
//
// Parsing is pure: a command line either yields one LineCommand value
// or an error with a diagnostic, never a partial command and never a
// side effect. Per-command argument syntax (the :set token grammar, the
// :s mini-grammar) is parsed later, by the command's execution step.
package ex

import (
	"errors"
	"fmt"
	"regexp"
)

// Resolution errors.
var (
	ErrMarkNotSet      = errors.New("mark not set")
	ErrPatternNotFound = errors.New("pattern not found")
	ErrNoPrevPattern   = errors.New("no previous regular expression")
	ErrInvalidLine     = errors.New("invalid line number")
	ErrBackwardsRange  = errors.New("backwards range")
)

// SpecifierKind discriminates the line specifier variants.
type SpecifierKind uint8

const (
	// KindCurrent is the cursor line (".").
	KindCurrent SpecifierKind = iota

	// KindNumber is an absolute line number.
	KindNumber

	// KindLast is the last buffer line ("$").
	KindLast

	// KindMark is a mark reference ("'a").
	KindMark

	// KindOffset is a bare adjustment on the cursor line ("+2").
	KindOffset

	// KindSearchForward is a forward pattern search ("/pat/").
	KindSearchForward

	// KindSearchBackward is a backward pattern search ("?pat?").
	KindSearchBackward

	// KindLastSearch repeats the previous search pattern ("\/").
	KindLastSearch
)

// Specifier describes one line address. It is immutable and built
// fresh per parse.
type Specifier struct {
	// Kind selects the variant.
	Kind SpecifierKind

	// Number is the absolute line for KindNumber.
	Number int

	// Mark is the mark name for KindMark.
	Mark rune

	// Pattern is the search text for the search kinds. Empty means
	// reuse the previous search pattern.
	Pattern string

	// Offset is a trailing relative adjustment, applied after the
	// base resolves.
	Offset int
}

// BufferView is the read-only buffer access resolution needs. Lines
// are numbered from 1.
type BufferView interface {
	// LineCount returns the number of lines.
	LineCount() int

	// Line returns the text of line n.
	Line(n int) (string, error)

	// Mark returns the line a mark points at.
	Mark(name rune) (int, bool)
}

// Resolve maps the specifier to a concrete line number against a
// buffer snapshot, the cursor line, and the previous search pattern.
// Resolution never mutates anything; it fails only when a referenced
// mark or pattern cannot be found, or an absolute line is out of
// range. Relative adjustments clamp to buffer bounds.
func (s Specifier) Resolve(buf BufferView, current int, lastSearch string) (int, error) {
	count := buf.LineCount()

	var base int
	switch s.Kind {
	case KindCurrent, KindOffset:
		base = current

	case KindNumber:
		n := s.Number + s.Offset
		if n < 1 || n > count {
			return 0, fmt.Errorf("%w: %d", ErrInvalidLine, n)
		}
		return n, nil

	case KindLast:
		base = count

	case KindMark:
		line, ok := buf.Mark(s.Mark)
		if !ok {
			return 0, fmt.Errorf("%w: '%c", ErrMarkNotSet, s.Mark)
		}
		base = line

	case KindSearchForward, KindSearchBackward, KindLastSearch:
		line, err := s.search(buf, current, lastSearch)
		if err != nil {
			return 0, err
		}
		base = line

	default:
		return 0, fmt.Errorf("%w: unknown specifier", ErrInvalidLine)
	}

	return clampLine(base+s.Offset, count), nil
}

// search scans the buffer for the specifier's pattern. Forward
// searches start below the cursor and wrap; backward searches start
// above and wrap.
func (s Specifier) search(buf BufferView, current int, lastSearch string) (int, error) {
	pattern := s.Pattern
	if pattern == "" || s.Kind == KindLastSearch {
		pattern = lastSearch
	}
	if pattern == "" {
		return 0, ErrNoPrevPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	count := buf.LineCount()
	backward := s.Kind == KindSearchBackward

	for i := 1; i <= count; i++ {
		var n int
		if backward {
			n = current - i
		} else {
			n = current + i
		}
		// Wrap around the buffer ends.
		n = ((n-1)%count+count)%count + 1

		text, err := buf.Line(n)
		if err != nil {
			return 0, err
		}
		if re.MatchString(text) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrPatternNotFound, pattern)
}

func clampLine(n, count int) int {
	if n < 1 {
		return 1
	}
	if n > count {
		return count
	}
	return n
}
