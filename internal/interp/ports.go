// Package interp executes parsed colon commands against an editor
// session. The interpreter owns no editor state beyond the session; it
// reaches the host through a small set of ports, so the buffer, tab
// strip, and filesystem stay swappable in tests.
package interp

import "github.com/dshills/excmd/internal/ex"

// Buffer is the mutable line store a session edits. Lines are numbered
// from 1, matching range resolution.
type Buffer interface {
	ex.BufferView

	// SetLine replaces the text of line n.
	SetLine(n int, text string) error

	// InsertLines inserts lines before line at. at == LineCount()+1
	// appends.
	InsertLines(at int, lines []string) error

	// DeleteLines removes the inclusive line range.
	DeleteLines(start, end int) error

	// CursorLine returns the cursor's line.
	CursorLine() int

	// SetCursorLine moves the cursor, clamping to buffer bounds.
	SetCursorLine(n int)
}

// Status receives messages for the host to display: query output,
// substitution reports, errors.
type Status interface {
	Report(msg string)
}

// Tabs navigates the host's tab strip.
type Tabs interface {
	// GoTo moves count tabs in the given direction, wrapping at the
	// ends.
	GoTo(dir ex.Direction, count int) error
}

// FS reads and writes files for :read and :write.
type FS interface {
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to name. Unless overwrite is set it must
	// refuse to clobber an existing file.
	WriteFile(name string, data []byte, overwrite bool) error
}

// Folds manipulates the host's fold state.
type Folds interface {
	Fold(start, end int) error
	Unfold(start, end int) error
}

// Ports bundles the host collaborators. Buffer is required; the others
// may be nil, which turns the commands needing them into errors (or
// no-ops, for Status).
type Ports struct {
	Buffer Buffer
	Status Status
	Tabs   Tabs
	FS     FS
	Folds  Folds
}
