package interp

import (
	"fmt"
	"strings"

	"github.com/dshills/excmd/internal/ex"
	"github.com/dshills/excmd/internal/register"
)

// execPut inserts a register's content as whole lines after the
// addressed line, or before it with bang. Address 0 puts above the
// first line. Character-wise register content still goes in
// line-wise; that asymmetry is the point of :put.
func (i *Interp) execPut(cmd ex.PutCommand) error {
	buf, err := i.buffer()
	if err != nil {
		return err
	}

	var at int
	if zeroAddress(cmd.Range) {
		at = 1
	} else {
		_, res, err := i.resolveRange(cmd.Range)
		if err != nil {
			return err
		}
		at = res.End + 1
		if cmd.Bang {
			at = res.End
		}
	}

	name := cmd.Register
	if name == 0 {
		name = register.Unnamed
	}
	reg, ok := i.session.Registers.Get(name)
	if !ok || reg.Content == "" {
		return fmt.Errorf("%w: %c", ErrEmptyReg, name)
	}

	lines := splitLines(reg.Content)
	if err := buf.InsertLines(at, lines); err != nil {
		return err
	}
	buf.SetCursorLine(at + len(lines) - 1)
	return nil
}

// execRetab rewrites leading indentation for the range (default the
// whole buffer) against the effective tab stop. Without bang only
// runs that already contain a tab are touched; with bang space-only
// indentation is rewritten too. A :retab N also assigns 'tabstop'.
func (i *Interp) execRetab(cmd ex.RetabCommand) error {
	buf, err := i.buffer()
	if err != nil {
		return err
	}

	res := ex.Resolved{Start: 1, End: buf.LineCount()}
	if cmd.Range != nil {
		if res, err = cmd.Range.Resolve(buf, buf.CursorLine(), i.session.LastSearch); err != nil {
			return err
		}
	}

	// Widths are measured under the current 'tabstop' and re-rendered
	// under the new one.
	oldTS := i.session.Options.Number("tabstop")
	if oldTS < 1 {
		oldTS = 8
	}
	newTS := cmd.TabStop
	if newTS == 0 {
		newTS = oldTS
	}
	expand := i.session.Options.Toggle("expandtab")

	for n := res.Start; n <= res.End; n++ {
		text, err := buf.Line(n)
		if err != nil {
			return err
		}

		run := leadingRun(text)
		if run == "" {
			continue
		}
		if !cmd.Bang && !strings.ContainsRune(run, '\t') {
			continue
		}

		width := 0
		for _, r := range run {
			if r == '\t' {
				width += oldTS - width%oldTS
			} else {
				width++
			}
		}

		var indent string
		if expand {
			indent = strings.Repeat(" ", width)
		} else {
			indent = strings.Repeat("\t", width/newTS) + strings.Repeat(" ", width%newTS)
		}
		if indent == run {
			continue
		}
		if err := buf.SetLine(n, indent+text[len(run):]); err != nil {
			return err
		}
	}

	if cmd.TabStop > 0 {
		return i.session.Options.SetNumber("tabstop", cmd.TabStop)
	}
	return nil
}

// execSubstitute applies :s over the resolved range. An empty written
// pattern reuses the memoized pattern, and memoized flags when none
// were written. A successful run updates both the memo and the shared
// search pattern.
func (i *Interp) execSubstitute(cmd ex.SubstituteCommand) error {
	buf, res, err := i.resolveRange(cmd.Range)
	if err != nil {
		return err
	}

	sub, err := ex.ParseSubstitution(cmd.Raw)
	if err != nil {
		return err
	}
	bare := strings.TrimSpace(cmd.Raw) == ""

	pattern := sub.Pattern
	flags := sub.Flags
	if pattern == "" {
		memo := i.session.LastSubstitute
		if memo == nil {
			return ex.ErrNoPrevPattern
		}
		pattern = memo.Pattern
		if flags == "" {
			flags = memo.Flags
		}
		sub.Flags = flags
		// A bare :s repeats the whole substitution; with a written
		// replacement field the command's own replacement wins.
		if bare {
			sub.Replacement = memo.Replacement
		}
	}

	if sub.Count > 0 {
		res.Start = res.End
		res.End = clamp(res.Start+sub.Count-1, 1, buf.LineCount())
	}

	re, err := compilePattern(pattern, sub.IgnoreCase() || i.looseCase(pattern))
	if err != nil {
		return err
	}
	template := toTemplate(sub.Replacement)
	countOnly := strings.ContainsRune(flags, 'n')

	subs, lines := 0, 0
	last := 0
	for n := res.Start; n <= res.End; n++ {
		text, err := buf.Line(n)
		if err != nil {
			return err
		}

		matches := re.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		if !sub.Global() {
			matches = matches[:1]
		}
		subs += len(matches)
		lines++
		last = n

		if countOnly {
			continue
		}

		var sb strings.Builder
		prev := 0
		for _, m := range matches {
			sb.WriteString(text[prev:m[0]])
			sb.Write(re.ExpandString(nil, template, text, m))
			prev = m[1]
		}
		sb.WriteString(text[prev:])
		if err := buf.SetLine(n, sb.String()); err != nil {
			return err
		}
	}

	if subs == 0 {
		if strings.ContainsRune(flags, 'e') {
			return nil
		}
		return fmt.Errorf("%w: %s", ex.ErrPatternNotFound, pattern)
	}

	i.session.LastSubstitute = &SubstituteMemo{
		Pattern:     pattern,
		Replacement: sub.Replacement,
		Flags:       flags,
	}
	i.session.LastSearch = pattern

	if countOnly {
		i.report(fmt.Sprintf("%d matches on %d lines", subs, lines))
		return nil
	}
	buf.SetCursorLine(last)
	if subs > 1 || lines > 1 {
		i.report(fmt.Sprintf("%d substitutions on %d lines", subs, lines))
	}
	return nil
}

// looseCase reports whether the session options ask for
// case-insensitive matching of this pattern: 'ignorecase', unless
// 'smartcase' is on and the pattern carries an uppercase letter.
func (i *Interp) looseCase(pattern string) bool {
	if !i.session.Options.Toggle("ignorecase") {
		return false
	}
	if i.session.Options.Toggle("smartcase") && pattern != strings.ToLower(pattern) {
		return false
	}
	return true
}

func (i *Interp) execDelete(cmd ex.DeleteCommand) error {
	buf, res, err := i.resolveRange(cmd.Range)
	if err != nil {
		return err
	}
	res = applyCount(res, cmd.Count, buf.LineCount())

	content, err := collectLines(buf, res)
	if err != nil {
		return err
	}
	i.session.Registers.SetDelete(content, register.LineWise, false)
	if cmd.Register != 0 {
		i.session.Registers.Set(cmd.Register, content, register.LineWise)
	}

	if err := buf.DeleteLines(res.Start, res.End); err != nil {
		return err
	}
	buf.SetCursorLine(clamp(res.Start, 1, buf.LineCount()))
	return nil
}

func (i *Interp) execYank(cmd ex.YankCommand) error {
	buf, res, err := i.resolveRange(cmd.Range)
	if err != nil {
		return err
	}
	res = applyCount(res, cmd.Count, buf.LineCount())

	content, err := collectLines(buf, res)
	if err != nil {
		return err
	}
	i.session.Registers.SetYank(content, register.LineWise)
	if cmd.Register != 0 {
		i.session.Registers.Set(cmd.Register, content, register.LineWise)
	}
	return nil
}

func (i *Interp) execCopy(cmd ex.CopyCommand) error {
	buf, res, err := i.resolveRange(cmd.Range)
	if err != nil {
		return err
	}
	dest, err := i.resolveDest(buf, cmd.Address, cmd.AddressZero)
	if err != nil {
		return err
	}

	content, err := collectLines(buf, res)
	if err != nil {
		return err
	}
	lines := splitLines(content)
	if err := buf.InsertLines(dest+1, lines); err != nil {
		return err
	}
	buf.SetCursorLine(dest + len(lines))
	return nil
}

func (i *Interp) execMove(cmd ex.MoveCommand) error {
	buf, res, err := i.resolveRange(cmd.Range)
	if err != nil {
		return err
	}
	dest, err := i.resolveDest(buf, cmd.Address, cmd.AddressZero)
	if err != nil {
		return err
	}
	if dest >= res.Start && dest < res.End {
		return ErrMoveIntoSelf
	}

	content, err := collectLines(buf, res)
	if err != nil {
		return err
	}
	lines := splitLines(content)
	if err := buf.DeleteLines(res.Start, res.End); err != nil {
		return err
	}
	// Destinations at or past the range's end shift down by the lines
	// just deleted; moving to the range's own end is then a no-op.
	if dest >= res.End {
		dest -= res.Lines()
	}
	if err := buf.InsertLines(dest+1, lines); err != nil {
		return err
	}
	buf.SetCursorLine(dest + len(lines))
	return nil
}

func (i *Interp) execFold(cmd ex.FoldCommand) error {
	if i.ports.Folds == nil {
		return ErrNoFolds
	}
	_, res, err := i.resolveRange(cmd.Range)
	if err != nil {
		return err
	}
	if cmd.Open {
		return i.ports.Folds.Unfold(res.Start, res.End)
	}
	return i.ports.Folds.Fold(res.Start, res.End)
}

func (i *Interp) execGoto(cmd ex.GotoCommand) error {
	buf, res, err := i.resolveRange(cmd.Range)
	if err != nil {
		return err
	}
	buf.SetCursorLine(res.End)
	return nil
}

// resolveDest resolves a :copy/:move destination. Zero addresses the
// slot above the first line.
func (i *Interp) resolveDest(buf Buffer, addr ex.Specifier, zero bool) (int, error) {
	if zero {
		return 0, nil
	}
	return addr.Resolve(buf, buf.CursorLine(), i.session.LastSearch)
}

// applyCount turns "[range] cmd count" into the count lines starting
// at the range's end, the way :d and :y take a trailing count.
func applyCount(res ex.Resolved, count, max int) ex.Resolved {
	if count < 1 {
		return res
	}
	res.Start = res.End
	res.End = clamp(res.Start+count-1, 1, max)
	return res
}

// collectLines joins the range's lines with newlines.
func collectLines(buf Buffer, res ex.Resolved) (string, error) {
	var sb strings.Builder
	for n := res.Start; n <= res.End; n++ {
		text, err := buf.Line(n)
		if err != nil {
			return "", err
		}
		if n > res.Start {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// splitLines splits register or file content into lines, dropping the
// trailing empty piece a final newline leaves behind.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func leadingRun(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return text[:i]
		}
	}
	return text
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
