package interp

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/excmd/internal/ex"
	"github.com/dshills/excmd/internal/register"
)

func linesEqual(t *testing.T, got []string, want ...string) {
	t.Helper()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("buffer = %v, want %v", got, want)
	}
}

func TestInterp_Put(t *testing.T) {
	h := newHarness("one", "two", "three")
	h.interp.Session().Registers.Set('a', "X\nY", register.LineWise)

	h.buf.cursor = 2
	h.run(t, "put a")
	linesEqual(t, h.buf.lines, "one", "two", "X", "Y", "three")
	if h.buf.cursor != 4 {
		t.Errorf("cursor = %d, want 4", h.buf.cursor)
	}
}

func TestInterp_PutBang(t *testing.T) {
	h := newHarness("one", "two")
	h.interp.Session().Registers.Set('a', "X", register.LineWise)

	h.buf.cursor = 2
	h.run(t, "put! a")
	linesEqual(t, h.buf.lines, "one", "X", "two")
	if h.buf.cursor != 2 {
		t.Errorf("cursor = %d, want 2", h.buf.cursor)
	}
}

func TestInterp_PutCharacterwiseStillLines(t *testing.T) {
	h := newHarness("one")
	h.interp.Session().Registers.Set('a', "frag", register.CharacterWise)

	h.run(t, "put a")
	linesEqual(t, h.buf.lines, "one", "frag")
}

func TestInterp_PutRanged(t *testing.T) {
	h := newHarness("one", "two", "three")
	h.interp.Session().Registers.Set('a', "X", register.LineWise)

	h.run(t, "1put a")
	linesEqual(t, h.buf.lines, "one", "X", "two", "three")
}

func TestInterp_PutLineZero(t *testing.T) {
	h := newHarness("one", "two")
	h.interp.Session().Registers.Set('a', "X", register.LineWise)

	// Address 0 inserts above the first line.
	h.run(t, "0put a")
	linesEqual(t, h.buf.lines, "X", "one", "two")
	if h.buf.cursor != 1 {
		t.Errorf("cursor = %d, want 1", h.buf.cursor)
	}
}

func TestInterp_PutEmptyRegister(t *testing.T) {
	h := newHarness("one")
	if err := h.runErr(t, "put z"); !errors.Is(err, ErrEmptyReg) {
		t.Errorf("error = %v, want ErrEmptyReg", err)
	}
}

func TestInterp_Retab(t *testing.T) {
	h := newHarness(
		"\tone",
		"    two",
		"no indent",
		"\t  mixed",
	)
	h.run(t, "set ts=4")

	// Default form: only leading runs containing a tab are touched.
	h.run(t, "%ret")
	linesEqual(t, h.buf.lines,
		"\tone",
		"    two",
		"no indent",
		"\t  mixed",
	)

	// Bang rewrites space-only indentation too.
	h.run(t, "set et")
	h.run(t, "%ret!")
	linesEqual(t, h.buf.lines,
		"    one",
		"    two",
		"no indent",
		"      mixed",
	)
}

func TestInterp_RetabBangToTabs(t *testing.T) {
	h := newHarness("  cat", "  dog")
	h.run(t, "set ts=2")

	// noexpandtab and bang: space-only indentation becomes tabs.
	h.run(t, "%ret!")
	linesEqual(t, h.buf.lines, "\tcat", "\tdog")
}

func TestInterp_RetabExpand(t *testing.T) {
	h := newHarness("\tone", "\t\ttwo")
	h.run(t, "set ts=4 et")

	h.run(t, "ret")
	// No range: the whole buffer.
	linesEqual(t, h.buf.lines, "    one", "        two")
}

func TestInterp_RetabToTabs(t *testing.T) {
	h := newHarness("\t  one")
	h.run(t, "set ts=8")

	// Tab plus two spaces is ten columns under ts=8; re-rendered with
	// tabs it stays one tab and two spaces, so retab to ts=4 first.
	h.run(t, "ret 4")
	linesEqual(t, h.buf.lines, "\t\t  one")
	if got := h.interp.Session().Options.Number("tabstop"); got != 4 {
		t.Errorf("tabstop = %d, want 4", got)
	}
}

func TestInterp_Substitute(t *testing.T) {
	h := newHarness("foo bar foo", "foo", "none")

	h.run(t, "%s/foo/baz/")
	linesEqual(t, h.buf.lines, "baz bar foo", "baz", "none")

	h = newHarness("foo bar foo", "foo")
	h.run(t, "%s/foo/baz/g")
	linesEqual(t, h.buf.lines, "baz bar baz", "baz")
}

func TestInterp_SubstituteBackrefs(t *testing.T) {
	h := newHarness("john smith")
	h.run(t, `s/(\w+) (\w+)/\2, \1/`)
	linesEqual(t, h.buf.lines, "smith, john")

	h = newHarness("value")
	h.run(t, `s/value/[&]/`)
	linesEqual(t, h.buf.lines, "[value]")

	h = newHarness("cost")
	h.run(t, `s/cost/\&-free/`)
	linesEqual(t, h.buf.lines, "&-free")
}

func TestInterp_SubstituteEmptyPatternMemo(t *testing.T) {
	h := newHarness("aaa", "aaa", "aaa")

	h.buf.cursor = 1
	h.run(t, "s/aaa/bbb/")

	// Empty pattern reuses the memoized pattern on another line.
	h.buf.cursor = 2
	h.run(t, "s//ccc/")
	linesEqual(t, h.buf.lines, "bbb", "ccc", "aaa")

	// The memo survives with its flags.
	h.buf.cursor = 3
	h.run(t, "s/aaa/x aaa x/")
	memo := h.interp.Session().LastSubstitute
	if memo == nil || memo.Pattern != "aaa" {
		t.Fatalf("memo = %+v", memo)
	}
	if h.interp.Session().LastSearch != "aaa" {
		t.Errorf("LastSearch = %q, want aaa", h.interp.Session().LastSearch)
	}
}

func TestInterp_SubstituteBareRepeats(t *testing.T) {
	h := newHarness("cat one", "cat two")

	h.buf.cursor = 1
	h.run(t, "s/cat/dog/")

	// A bare :s repeats pattern and replacement on another line.
	h.buf.cursor = 2
	h.run(t, "s")
	linesEqual(t, h.buf.lines, "dog one", "dog two")
}

func TestInterp_SubstituteNoMemo(t *testing.T) {
	h := newHarness("aaa")
	if err := h.runErr(t, "s//x/"); !errors.Is(err, ex.ErrNoPrevPattern) {
		t.Errorf("error = %v, want ErrNoPrevPattern", err)
	}
}

func TestInterp_SubstituteNotFound(t *testing.T) {
	h := newHarness("aaa")
	if err := h.runErr(t, "s/zzz/x/"); !errors.Is(err, ex.ErrPatternNotFound) {
		t.Errorf("error = %v, want ErrPatternNotFound", err)
	}
	// The e flag suppresses the error.
	if err := h.runErr(t, "s/zzz/x/e"); err != nil {
		t.Errorf("e flag error = %v, want nil", err)
	}
}

func TestInterp_SubstituteIgnoreCase(t *testing.T) {
	h := newHarness("FOO")
	h.run(t, "s/foo/bar/i")
	linesEqual(t, h.buf.lines, "bar")

	h = newHarness("FOO")
	h.run(t, "set ic")
	h.run(t, "s/foo/bar/")
	linesEqual(t, h.buf.lines, "bar")

	// smartcase: an uppercase pattern is exact again.
	h = newHarness("foo")
	h.run(t, "set ic scs")
	if err := h.runErr(t, "s/FOO/bar/"); !errors.Is(err, ex.ErrPatternNotFound) {
		t.Errorf("smartcase error = %v, want ErrPatternNotFound", err)
	}
}

func TestInterp_SubstituteCountFlag(t *testing.T) {
	h := newHarness("a a", "a")

	h.run(t, "%s/a//gn")
	linesEqual(t, h.buf.lines, "a a", "a")
	if len(h.status.msgs) != 1 || h.status.msgs[0] != "3 matches on 2 lines" {
		t.Errorf("report = %q", h.status.msgs)
	}
}

func TestInterp_SubstituteReport(t *testing.T) {
	h := newHarness("a", "a", "a")
	h.run(t, "%s/a/b/")
	if len(h.status.msgs) != 1 || h.status.msgs[0] != "3 substitutions on 3 lines" {
		t.Errorf("report = %q", h.status.msgs)
	}
}

func TestInterp_Delete(t *testing.T) {
	h := newHarness("one", "two", "three", "four")

	h.run(t, "2,3d")
	linesEqual(t, h.buf.lines, "one", "four")
	if h.buf.cursor != 2 {
		t.Errorf("cursor = %d, want 2", h.buf.cursor)
	}

	reg, _ := h.interp.Session().Registers.Get('1')
	if reg.Content != "two\nthree" || reg.Kind != register.LineWise {
		t.Errorf("register 1 = %+v", reg)
	}
	unnamed, _ := h.interp.Session().Registers.Get(register.Unnamed)
	if unnamed.Content != "two\nthree" {
		t.Errorf("unnamed = %q", unnamed.Content)
	}
}

func TestInterp_DeleteNamedAndCount(t *testing.T) {
	h := newHarness("one", "two", "three", "four")

	// "2d a 2" deletes two lines starting at line 2 into register a.
	h.run(t, "2d a 2")
	linesEqual(t, h.buf.lines, "one", "four")
	reg, _ := h.interp.Session().Registers.Get('a')
	if reg.Content != "two\nthree" {
		t.Errorf("register a = %q", reg.Content)
	}
}

func TestInterp_Yank(t *testing.T) {
	h := newHarness("one", "two", "three")

	h.run(t, "1,2y b")
	linesEqual(t, h.buf.lines, "one", "two", "three")

	reg, _ := h.interp.Session().Registers.Get('b')
	if reg.Content != "one\ntwo" || reg.Kind != register.LineWise {
		t.Errorf("register b = %+v", reg)
	}
	r0, _ := h.interp.Session().Registers.Get('0')
	if r0.Content != "one\ntwo" {
		t.Errorf("register 0 = %q", r0.Content)
	}
}

func TestInterp_Copy(t *testing.T) {
	h := newHarness("one", "two", "three")

	h.run(t, "1,2t $")
	linesEqual(t, h.buf.lines, "one", "two", "three", "one", "two")
	if h.buf.cursor != 5 {
		t.Errorf("cursor = %d, want 5", h.buf.cursor)
	}

	h = newHarness("one", "two")
	h.run(t, "2t 0")
	linesEqual(t, h.buf.lines, "two", "one", "two")
}

func TestInterp_Move(t *testing.T) {
	h := newHarness("one", "two", "three")

	h.run(t, "1m $")
	linesEqual(t, h.buf.lines, "two", "three", "one")

	h = newHarness("one", "two", "three")
	h.run(t, "3m 0")
	linesEqual(t, h.buf.lines, "three", "one", "two")
}

func TestInterp_MoveToOwnEnd(t *testing.T) {
	h := newHarness("one", "two", "three")

	// Moving a line to its own address leaves the buffer unchanged.
	h.run(t, "2m2")
	linesEqual(t, h.buf.lines, "one", "two", "three")

	// Same for a range moved to its last line.
	h.run(t, "1,2m2")
	linesEqual(t, h.buf.lines, "one", "two", "three")
}

func TestInterp_MoveIntoSelf(t *testing.T) {
	h := newHarness("one", "two", "three")
	if err := h.runErr(t, "1,3m 2"); !errors.Is(err, ErrMoveIntoSelf) {
		t.Errorf("error = %v, want ErrMoveIntoSelf", err)
	}
}

func TestInterp_SearchRangeUpdatesMemory(t *testing.T) {
	h := newHarness("alpha", "beta", "gamma")

	h.run(t, "/beta/y")
	if h.interp.Session().LastSearch != "beta" {
		t.Errorf("LastSearch = %q, want beta", h.interp.Session().LastSearch)
	}

	// "\/" reuses it.
	h.buf.cursor = 3
	h.run(t, `\/y`)
	reg, _ := h.interp.Session().Registers.Get('0')
	if reg.Content != "beta" {
		t.Errorf("yanked = %q, want beta", reg.Content)
	}
}
