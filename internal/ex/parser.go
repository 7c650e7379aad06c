package ex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/excmd/internal/keymap"
	"github.com/dshills/excmd/internal/register"
)

// Parse errors.
var (
	ErrEmptyCommand   = errors.New("empty command line")
	ErrUnknownCommand = errors.New("not an editor command")
	ErrArgRequired    = errors.New("argument required")
	ErrBadCount       = errors.New("invalid count")
	ErrBadRegister    = errors.New("invalid register name")
	ErrBadAddress     = errors.New("invalid address")
	ErrNoBang         = errors.New("no ! allowed")
	ErrBadSpecifier   = errors.New("invalid range specifier")
)

// Parse parses one command line into a LineCommand. Leading colons are
// accepted and ignored. Parse has no side effects; on error the
// returned command is nil.
func Parse(input string) (LineCommand, error) {
	p := &parser{in: input}
	p.skipSpaces()
	for p.peek() == ':' {
		p.pos++
		p.skipSpaces()
	}

	rng, err := p.parseRange()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()
	word := p.takeWord()
	if word == "" {
		if rng != nil {
			return GotoCommand{Range: rng}, nil
		}
		return nil, ErrEmptyCommand
	}

	entry := matchCommand(word)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, word)
	}

	bang := false
	if p.peek() == '!' {
		p.pos++
		bang = true
	}

	// The remainder is the command's argument text, verbatim except
	// for surrounding whitespace. Each command parses its own syntax.
	arg := strings.TrimSpace(p.in[p.pos:])

	return entry.build(&buildCtx{name: entry.name, rng: rng, bang: bang, arg: arg})
}

// buildCtx carries the shared parse products into a command builder.
type buildCtx struct {
	name string
	rng  *Range
	bang bool
	arg  string
}

func (c *buildCtx) noBang() error {
	if c.bang {
		return fmt.Errorf("%w: %s!", ErrNoBang, c.name)
	}
	return nil
}

// cmdEntry declares one command spelling: the full name and the
// minimum abbreviation length. Lookup is exact match first, then
// prefix match in declaration order, which keeps the ambiguity rules
// in one auditable place.
type cmdEntry struct {
	name  string
	min   int
	build func(*buildCtx) (LineCommand, error)
}

var commands = []cmdEntry{
	{"substitute", 1, buildSubstitute},
	{"set", 2, buildSet},
	{"put", 2, buildPut},
	{"delete", 1, buildDelete},
	{"yank", 1, buildYank},
	{"move", 1, buildMove},
	{"copy", 2, buildCopy},
	{"t", 1, buildCopy},
	{"read", 1, buildRead},
	{"retab", 3, buildRetab},
	{"write", 1, buildWrite},
	{"tabnext", 4, buildTabNext},
	{"tabprevious", 4, buildTabPrevious},
	{"tabN", 4, buildTabPrevious},
	{"fold", 2, buildFold},
	{"foldopen", 5, buildFoldOpen},

	{"map", 3, buildMap},
	{"nmap", 4, buildMap},
	{"vmap", 4, buildMap},
	{"xmap", 4, buildMap},
	{"smap", 4, buildMap},
	{"omap", 4, buildMap},
	{"imap", 4, buildMap},
	{"cmap", 4, buildMap},
	{"noremap", 7, buildMap},
	{"nnoremap", 8, buildMap},
	{"vnoremap", 8, buildMap},
	{"xnoremap", 8, buildMap},
	{"snoremap", 8, buildMap},
	{"onoremap", 8, buildMap},
	{"inoremap", 8, buildMap},
	{"cnoremap", 8, buildMap},

	{"mapclear", 4, buildMapClear},
	{"nmapclear", 5, buildMapClear},
	{"vmapclear", 5, buildMapClear},
	{"xmapclear", 5, buildMapClear},
	{"smapclear", 5, buildMapClear},
	{"omapclear", 5, buildMapClear},
	{"imapclear", 5, buildMapClear},
	{"cmapclear", 5, buildMapClear},

	{"unmap", 5, buildUnmap},
	{"nunmap", 6, buildUnmap},
	{"vunmap", 6, buildUnmap},
	{"xunmap", 6, buildUnmap},
	{"sunmap", 6, buildUnmap},
	{"ounmap", 6, buildUnmap},
	{"iunmap", 6, buildUnmap},
	{"cunmap", 6, buildUnmap},
}

// matchCommand resolves an abbreviated command word. Exact spellings
// win over prefix matches so "t" never resolves to "tabnext".
func matchCommand(word string) *cmdEntry {
	for i := range commands {
		if commands[i].name == word {
			return &commands[i]
		}
	}
	for i := range commands {
		e := &commands[i]
		if len(word) >= e.min && strings.HasPrefix(e.name, word) {
			return e
		}
	}
	return nil
}

// Command builders.

func buildSet(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	return SetCommand{Args: c.arg}, nil
}

func buildSubstitute(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	return SubstituteCommand{Range: c.rng, Raw: c.arg}, nil
}

func buildPut(c *buildCtx) (LineCommand, error) {
	reg := rune(0)
	if c.arg != "" {
		name := strings.TrimPrefix(c.arg, `"`)
		r := []rune(name)
		if len(r) != 1 || !register.Valid(r[0]) {
			return nil, fmt.Errorf("%w: %s", ErrBadRegister, c.arg)
		}
		reg = r[0]
	}
	return PutCommand{Range: c.rng, Register: reg, Bang: c.bang}, nil
}

func buildRetab(c *buildCtx) (LineCommand, error) {
	ts := 0
	if c.arg != "" {
		n, err := strconv.Atoi(c.arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s", ErrBadCount, c.arg)
		}
		ts = n
	}
	return RetabCommand{Range: c.rng, Bang: c.bang, TabStop: ts}, nil
}

func buildDelete(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	reg, count, err := parseRegisterCount(c.arg)
	if err != nil {
		return nil, err
	}
	return DeleteCommand{Range: c.rng, Register: reg, Count: count}, nil
}

func buildYank(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	reg, count, err := parseRegisterCount(c.arg)
	if err != nil {
		return nil, err
	}
	return YankCommand{Range: c.rng, Register: reg, Count: count}, nil
}

func buildCopy(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	addr, zero, err := parseAddress(c.arg)
	if err != nil {
		return nil, err
	}
	return CopyCommand{Range: c.rng, Address: addr, AddressZero: zero}, nil
}

func buildMove(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	addr, zero, err := parseAddress(c.arg)
	if err != nil {
		return nil, err
	}
	return MoveCommand{Range: c.rng, Address: addr, AddressZero: zero}, nil
}

func buildWrite(c *buildCtx) (LineCommand, error) {
	return WriteCommand{Range: c.rng, Bang: c.bang, File: c.arg}, nil
}

func buildRead(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	if c.arg == "" {
		return nil, fmt.Errorf("%w: %s", ErrArgRequired, c.name)
	}
	return ReadCommand{Range: c.rng, File: c.arg}, nil
}

func buildTabNext(c *buildCtx) (LineCommand, error) {
	return buildGoToTab(c, Forward)
}

func buildTabPrevious(c *buildCtx) (LineCommand, error) {
	return buildGoToTab(c, Backward)
}

func buildGoToTab(c *buildCtx, dir Direction) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	count := 1
	if c.arg != "" {
		n, err := strconv.Atoi(c.arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s", ErrBadCount, c.arg)
		}
		count = n
	}
	return GoToTabCommand{Direction: dir, Count: count}, nil
}

func buildFold(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	return FoldCommand{Range: c.rng, Open: false}, nil
}

func buildFoldOpen(c *buildCtx) (LineCommand, error) {
	if err := c.noBang(); err != nil {
		return nil, err
	}
	return FoldCommand{Range: c.rng, Open: true}, nil
}

func buildMap(c *buildCtx) (LineCommand, error) {
	base := c.name
	recursive := true
	if strings.Contains(base, "noremap") {
		recursive = false
		base = strings.Replace(base, "noremap", "map", 1)
	}
	if c.bang {
		base += "!"
	}
	modes, ok := keymap.ModesForDefine(base)
	if !ok {
		return nil, fmt.Errorf("%w: %s!", ErrNoBang, c.name)
	}
	return MapCommand{Modes: modes, Recursive: recursive, Args: c.arg}, nil
}

func buildMapClear(c *buildCtx) (LineCommand, error) {
	key := strings.TrimSuffix(c.name, "lear")
	if c.bang {
		key += "!"
	}
	modes, ok := keymap.ModesForClear(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s!", ErrNoBang, c.name)
	}
	return MapClearCommand{Modes: modes}, nil
}

func buildUnmap(c *buildCtx) (LineCommand, error) {
	base := strings.Replace(c.name, "unmap", "map", 1)
	if c.bang {
		base += "!"
	}
	modes, ok := keymap.ModesForDefine(base)
	if !ok {
		return nil, fmt.Errorf("%w: %s!", ErrNoBang, c.name)
	}
	if c.arg == "" {
		return nil, fmt.Errorf("%w: %s", ErrArgRequired, c.name)
	}
	return UnmapCommand{Modes: modes, Args: c.arg}, nil
}

// parseRegisterCount parses the "[register] [count]" argument form of
// :delete and :yank.
func parseRegisterCount(arg string) (rune, int, error) {
	reg := rune(0)
	count := 0

	fields := strings.Fields(arg)
	switch len(fields) {
	case 0:
	case 1:
		if isDigits(fields[0]) {
			n, _ := strconv.Atoi(fields[0])
			if n < 1 {
				return 0, 0, fmt.Errorf("%w: %s", ErrBadCount, fields[0])
			}
			count = n
			break
		}
		r := []rune(strings.TrimPrefix(fields[0], `"`))
		if len(r) != 1 || !register.Valid(r[0]) {
			return 0, 0, fmt.Errorf("%w: %s", ErrBadRegister, fields[0])
		}
		reg = r[0]
	case 2:
		r := []rune(strings.TrimPrefix(fields[0], `"`))
		if len(r) != 1 || !register.Valid(r[0]) {
			return 0, 0, fmt.Errorf("%w: %s", ErrBadRegister, fields[0])
		}
		reg = r[0]
		if !isDigits(fields[1]) {
			return 0, 0, fmt.Errorf("%w: %s", ErrBadCount, fields[1])
		}
		count, _ = strconv.Atoi(fields[1])
		if count < 1 {
			return 0, 0, fmt.Errorf("%w: %s", ErrBadCount, fields[1])
		}
	default:
		return 0, 0, fmt.Errorf("%w: %s", ErrBadCount, arg)
	}
	return reg, count, nil
}

// parseAddress parses the destination address of :copy and :move.
// "0" is a valid destination meaning above the first line.
func parseAddress(arg string) (Specifier, bool, error) {
	if arg == "" {
		return Specifier{}, false, fmt.Errorf("%w: missing destination", ErrBadAddress)
	}
	if arg == "0" {
		return Specifier{}, true, nil
	}

	p := &parser{in: arg}
	spec, ok, err := p.parseSpecifier()
	if err != nil {
		return Specifier{}, false, err
	}
	p.skipSpaces()
	if !ok || p.pos != len(p.in) {
		return Specifier{}, false, fmt.Errorf("%w: %s", ErrBadAddress, arg)
	}
	return spec, false, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parser is a cursor over one command line.
type parser struct {
	in  string
	pos int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.in) {
		return 0
	}
	return p.in[p.pos]
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.in) {
		return 0
	}
	return p.in[p.pos+off]
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.in) && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
}

// takeWord consumes a run of ASCII letters.
func (p *parser) takeWord() string {
	start := p.pos
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			p.pos++
			continue
		}
		break
	}
	return p.in[start:p.pos]
}

// takeDigits consumes a run of digits and returns their value, or -1
// when no digit is present.
func (p *parser) takeDigits() int {
	start := p.pos
	for p.pos < len(p.in) && p.in[p.pos] >= '0' && p.in[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return -1
	}
	n, _ := strconv.Atoi(p.in[start:p.pos])
	return n
}

// parseRange parses the optional leading range.
func (p *parser) parseRange() (*Range, error) {
	p.skipSpaces()
	if p.peek() == '%' {
		p.pos++
		return &Range{Whole: true}, nil
	}

	r := &Range{}
	spec, ok, err := p.parseSpecifier()
	if err != nil {
		return nil, err
	}
	if ok {
		r.Start = spec
		r.HasStart = true
	}

	p.skipSpaces()
	if c := p.peek(); c == ',' || c == ';' {
		p.pos++
		r.Pair = true
		r.Seat = c == ';'

		spec, ok, err := p.parseSpecifier()
		if err != nil {
			return nil, err
		}
		if ok {
			r.End = spec
			r.HasEnd = true
		}
	}

	if !r.HasStart && !r.Pair {
		return nil, nil
	}
	return r, nil
}

// parseSpecifier parses one line specifier, including any trailing
// relative adjustment. Returns ok=false when the input does not start
// a specifier.
func (p *parser) parseSpecifier() (Specifier, bool, error) {
	p.skipSpaces()

	var s Specifier
	switch c := p.peek(); {
	case c == '.':
		p.pos++
		s.Kind = KindCurrent

	case c == '$':
		p.pos++
		s.Kind = KindLast

	case c == '\'':
		p.pos++
		if p.pos >= len(p.in) {
			return s, false, fmt.Errorf("%w: missing mark name", ErrBadSpecifier)
		}
		s.Kind = KindMark
		s.Mark = rune(p.in[p.pos])
		p.pos++

	case c == '/':
		p.pos++
		s.Kind = KindSearchForward
		s.Pattern = p.readPattern('/')

	case c == '?':
		p.pos++
		s.Kind = KindSearchBackward
		s.Pattern = p.readPattern('?')

	case c == '\\':
		switch p.peekAt(1) {
		case '/', '?':
			p.pos += 2
			s.Kind = KindLastSearch
		default:
			return s, false, fmt.Errorf("%w: \\%c", ErrBadSpecifier, p.peekAt(1))
		}

	case c == '+' || c == '-':
		s.Kind = KindOffset

	case c >= '0' && c <= '9':
		s.Kind = KindNumber
		s.Number = p.takeDigits()

	default:
		return s, false, nil
	}

	// Trailing adjustments: "+", "-2", "+1-3", ...
	for {
		c := p.peek()
		if c != '+' && c != '-' {
			break
		}
		p.pos++
		n := p.takeDigits()
		if n < 0 {
			n = 1
		}
		if c == '-' {
			n = -n
		}
		s.Offset += n
	}

	return s, true, nil
}

// readPattern consumes pattern text up to an unescaped separator or
// end of input. An escaped separator is unescaped in the result.
func (p *parser) readPattern(sep byte) string {
	var sb strings.Builder
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		if c == '\\' && p.pos+1 < len(p.in) && p.in[p.pos+1] == sep {
			sb.WriteByte(sep)
			p.pos += 2
			continue
		}
		if c == sep {
			p.pos++
			break
		}
		sb.WriteByte(c)
		p.pos++
	}
	return sb.String()
}
