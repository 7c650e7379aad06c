package interp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/excmd/internal/ex"
)

// execWrite writes the range (default the whole buffer) to a file.
// Bang allows clobbering an existing file.
func (i *Interp) execWrite(cmd ex.WriteCommand) error {
	if i.ports.FS == nil {
		return ErrNoFS
	}
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
	if cmd.File == "" {
		return errors.New("no file name")
	}

	content, err := collectLines(buf, res)
	if err != nil {
		return err
	}
	if err := i.ports.FS.WriteFile(cmd.File, []byte(content+"\n"), cmd.Bang); err != nil {
		return err
	}
	i.report(fmt.Sprintf("%q %dL written", cmd.File, res.Lines()))
	return nil
}

// execRead inserts a file's lines after the addressed line.
func (i *Interp) execRead(cmd ex.ReadCommand) error {
	if i.ports.FS == nil {
		return ErrNoFS
	}
	buf, err := i.buffer()
	if err != nil {
		return err
	}

	var after int
	if zeroAddress(cmd.Range) {
		after = 0
	} else {
		_, res, err := i.resolveRange(cmd.Range)
		if err != nil {
			return err
		}
		after = res.End
	}

	data, err := i.ports.FS.ReadFile(cmd.File)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	lines := splitLines(strings.ReplaceAll(string(data), "\r\n", "\n"))

	if err := buf.InsertLines(after+1, lines); err != nil {
		return err
	}
	buf.SetCursorLine(after + len(lines))
	i.report(fmt.Sprintf("%q %dL read", cmd.File, len(lines)))
	return nil
}

func (i *Interp) execGoToTab(cmd ex.GoToTabCommand) error {
	if i.ports.Tabs == nil {
		return ErrNoTabs
	}
	return i.ports.Tabs.GoTo(cmd.Direction, cmd.Count)
}
