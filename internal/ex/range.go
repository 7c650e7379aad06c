package ex

// Range is a parsed line range: a pair of specifiers, a single
// specifier, or the whole buffer ("%").
type Range struct {
	// Start and End are the range's specifiers. HasStart/HasEnd
	// report whether each side was written; a missing side defaults
	// to the current line at resolution time.
	Start Specifier
	End   Specifier

	HasStart bool
	HasEnd   bool

	// Pair is true when a "," or ";" separator was written, even if
	// one side was left implicit.
	Pair bool

	// Whole is true for the "%" form.
	Whole bool

	// Seat is true when the separator was ";", which re-seats the
	// current line at the resolved start before resolving the end.
	Seat bool
}

// Resolved is a concrete, inclusive line range.
type Resolved struct {
	Start int
	End   int
}

// Lines returns the number of lines the range covers.
func (r Resolved) Lines() int {
	return r.End - r.Start + 1
}

// Resolve maps the range to concrete line numbers. A nil or empty
// range resolves to the current line. Resolution is pure; it fails
// when a side fails to resolve or the range runs backwards.
func (r *Range) Resolve(buf BufferView, current int, lastSearch string) (Resolved, error) {
	count := buf.LineCount()
	if count < 1 {
		count = 1
	}

	if r == nil {
		return Resolved{Start: current, End: current}, nil
	}
	if r.Whole {
		return Resolved{Start: 1, End: count}, nil
	}

	start := current
	if r.HasStart {
		n, err := r.Start.Resolve(buf, current, lastSearch)
		if err != nil {
			return Resolved{}, err
		}
		start = n
	}

	endCurrent := current
	if r.Seat {
		endCurrent = start
	}

	end := endCurrent
	if r.HasEnd {
		n, err := r.End.Resolve(buf, endCurrent, lastSearch)
		if err != nil {
			return Resolved{}, err
		}
		end = n
	}

	// A single specifier collapses the range to one line.
	if r.HasStart && !r.Pair {
		end = start
	}

	if start > end {
		return Resolved{}, ErrBackwardsRange
	}
	return Resolved{Start: start, End: end}, nil
}
