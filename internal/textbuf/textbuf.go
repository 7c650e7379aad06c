// Package textbuf is a line-addressed text buffer suitable as the
// interpreter's buffer port. It exists for hosts and tests that do not
// bring their own buffer implementation.
package textbuf

import (
	"fmt"
	"strings"
	"sync"
)

// Buffer stores lines numbered from 1 plus a cursor and named marks.
// All methods are safe for concurrent use.
type Buffer struct {
	mu     sync.RWMutex
	lines  []string
	marks  map[rune]int
	cursor int
}

// New creates a buffer with the given lines. An empty buffer still has
// one empty line, the way an empty file does.
func New(lines ...string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Buffer{
		lines:  append([]string{}, lines...),
		marks:  make(map[rune]int),
		cursor: 1,
	}
}

// FromText creates a buffer from newline-joined text. A trailing
// newline does not add an empty final line.
func FromText(text string) *Buffer {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return New(lines...)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of line n.
func (b *Buffer) Line(n int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 1 || n > len(b.lines) {
		return "", fmt.Errorf("line %d out of range [1,%d]", n, len(b.lines))
	}
	return b.lines[n-1], nil
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string{}, b.lines...)
}

// Text returns the buffer joined with newlines, with a final newline.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n") + "\n"
}

// SetLine replaces the text of line n.
func (b *Buffer) SetLine(n int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 || n > len(b.lines) {
		return fmt.Errorf("line %d out of range [1,%d]", n, len(b.lines))
	}
	b.lines[n-1] = text
	return nil
}

// InsertLines inserts lines before line at; at == LineCount()+1
// appends. Marks at or below the insertion point shift down.
func (b *Buffer) InsertLines(at int, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if at < 1 || at > len(b.lines)+1 {
		return fmt.Errorf("line %d out of range [1,%d]", at, len(b.lines)+1)
	}
	if len(lines) == 0 {
		return nil
	}

	b.lines = append(b.lines[:at-1], append(append([]string{}, lines...), b.lines[at-1:]...)...)
	for name, n := range b.marks {
		if n >= at {
			b.marks[name] = n + len(lines)
		}
	}
	return nil
}

// DeleteLines removes the inclusive range. Marks inside the range are
// dropped; marks below it shift up. Deleting every line leaves one
// empty line.
func (b *Buffer) DeleteLines(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if start < 1 || end > len(b.lines) || start > end {
		return fmt.Errorf("range %d,%d out of range [1,%d]", start, end, len(b.lines))
	}

	removed := end - start + 1
	b.lines = append(b.lines[:start-1], b.lines[end:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}

	for name, n := range b.marks {
		switch {
		case n > end:
			b.marks[name] = n - removed
		case n >= start:
			delete(b.marks, name)
		}
	}
	if b.cursor > len(b.lines) {
		b.cursor = len(b.lines)
	}
	return nil
}

// CursorLine returns the cursor's line.
func (b *Buffer) CursorLine() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// SetCursorLine moves the cursor, clamped to buffer bounds.
func (b *Buffer) SetCursorLine(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if n > len(b.lines) {
		n = len(b.lines)
	}
	b.cursor = n
}

// Mark returns the line a mark points at.
func (b *Buffer) Mark(name rune) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n, ok := b.marks[name]
	return n, ok
}

// SetMark points a mark at a line.
func (b *Buffer) SetMark(name rune, n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 || n > len(b.lines) {
		return fmt.Errorf("line %d out of range [1,%d]", n, len(b.lines))
	}
	b.marks[name] = n
	return nil
}
