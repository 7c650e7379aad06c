package interp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/excmd/internal/ex"
)

// Execution errors.
var (
	ErrNoBuffer     = errors.New("no buffer attached")
	ErrNoTabs       = errors.New("no tab control attached")
	ErrNoFS         = errors.New("no filesystem attached")
	ErrNoFolds      = errors.New("no fold control attached")
	ErrEmptyReg     = errors.New("nothing in register")
	ErrMoveIntoSelf = errors.New("move lines into themselves")
	ErrFileExists   = errors.New("file exists (add ! to override)")
)

// Interp executes commands against one session through the host ports.
type Interp struct {
	session *Session
	ports   Ports
}

// New creates an interpreter for the session and ports.
func New(session *Session, ports Ports) *Interp {
	return &Interp{session: session, ports: ports}
}

// Session returns the interpreter's session.
func (i *Interp) Session() *Session { return i.session }

// Ports returns the interpreter's host ports.
func (i *Interp) Ports() Ports { return i.ports }

// Run parses and executes one command line. Failures are reported on
// the status port, not returned; an interactive host needs exactly
// that. Empty input is a no-op.
func (i *Interp) Run(input string) {
	cmd, err := ex.Parse(input)
	if err != nil {
		if errors.Is(err, ex.ErrEmptyCommand) {
			return
		}
		if errors.Is(err, ex.ErrUnknownCommand) && i.runUserCommand(input) {
			return
		}
		i.report(err.Error())
		return
	}
	if err := i.Execute(cmd); err != nil {
		i.report(err.Error())
	}
}

// Execute runs one parsed command.
func (i *Interp) Execute(cmd ex.LineCommand) error {
	switch c := cmd.(type) {
	case ex.SetCommand:
		return i.execSet(c)
	case ex.MapCommand:
		return i.execMap(c)
	case ex.MapClearCommand:
		i.session.Keymap.Clear(c.Modes...)
		return nil
	case ex.UnmapCommand:
		return i.execUnmap(c)
	case ex.PutCommand:
		return i.execPut(c)
	case ex.RetabCommand:
		return i.execRetab(c)
	case ex.SubstituteCommand:
		return i.execSubstitute(c)
	case ex.GoToTabCommand:
		return i.execGoToTab(c)
	case ex.DeleteCommand:
		return i.execDelete(c)
	case ex.YankCommand:
		return i.execYank(c)
	case ex.CopyCommand:
		return i.execCopy(c)
	case ex.MoveCommand:
		return i.execMove(c)
	case ex.WriteCommand:
		return i.execWrite(c)
	case ex.ReadCommand:
		return i.execRead(c)
	case ex.FoldCommand:
		return i.execFold(c)
	case ex.GotoCommand:
		return i.execGoto(c)
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
}

// runUserCommand tries the input as a host-registered command. The
// word before the first space is the name; a trailing "!" on the word
// sets bang.
func (i *Interp) runUserCommand(input string) bool {
	s := strings.TrimSpace(input)
	for strings.HasPrefix(s, ":") {
		s = strings.TrimSpace(strings.TrimPrefix(s, ":"))
	}

	name := s
	arg := ""
	if idx := strings.IndexAny(s, " \t"); idx >= 0 {
		name = s[:idx]
		arg = strings.TrimSpace(s[idx:])
	}
	bang := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")

	fn, ok := i.session.UserCommand(name)
	if !ok {
		return false
	}
	if err := fn(i, arg, bang); err != nil {
		i.report(err.Error())
	}
	return true
}

func (i *Interp) report(msg string) {
	if i.ports.Status != nil {
		i.ports.Status.Report(msg)
	}
}

// buffer returns the buffer port or fails.
func (i *Interp) buffer() (Buffer, error) {
	if i.ports.Buffer == nil {
		return nil, ErrNoBuffer
	}
	return i.ports.Buffer, nil
}

// resolveRange resolves a command range against the attached buffer
// and the session's search memory.
func (i *Interp) resolveRange(rng *ex.Range) (Buffer, ex.Resolved, error) {
	buf, err := i.buffer()
	if err != nil {
		return nil, ex.Resolved{}, err
	}
	res, err := rng.Resolve(buf, buf.CursorLine(), i.session.LastSearch)
	if err != nil {
		return nil, ex.Resolved{}, err
	}
	i.rememberSearch(rng)
	return buf, res, nil
}

// zeroAddress reports whether the range is the single address 0.
// Commands that insert lines accept it as the slot above line one;
// everywhere else line 0 stays an invalid line.
func zeroAddress(rng *ex.Range) bool {
	if rng == nil || rng.Whole || rng.Pair || !rng.HasStart {
		return false
	}
	s := rng.Start
	return s.Kind == ex.KindNumber && s.Number == 0 && s.Offset == 0
}

// rememberSearch updates the session's last search pattern from any
// explicit pattern the range carried.
func (i *Interp) rememberSearch(rng *ex.Range) {
	if rng == nil {
		return
	}
	for _, s := range []ex.Specifier{rng.Start, rng.End} {
		if s.Pattern != "" {
			i.session.LastSearch = s.Pattern
		}
	}
}
