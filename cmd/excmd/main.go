// Command excmd is a minimal host for the colon-command engine: it
// opens files in tabs, draws them with tcell, and hands ":" input to
// the interpreter. It exists to exercise the engine end to end, not to
// be an editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/excmd/internal/config"
	"github.com/dshills/excmd/internal/ex"
	"github.com/dshills/excmd/internal/interp"
	"github.com/dshills/excmd/internal/plugin"
	"github.com/dshills/excmd/internal/textbuf"
)

func main() {
	rcPath := flag.String("rc", defaultRC(), "rc file (TOML or YAML)")
	watch := flag.Bool("watch", false, "reload the rc file when it changes")
	flag.Parse()

	if err := run(*rcPath, *watch, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "excmd:", err)
		os.Exit(1)
	}
}

func defaultRC() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".excmdrc.toml"
	}
	return home + "/.excmdrc.toml"
}

func run(rcPath string, watch bool, files []string) error {
	app, err := newApp(files)
	if err != nil {
		return err
	}

	cfg, err := config.Load(rcPath)
	if err != nil {
		return err
	}
	if err := cfg.Apply(app.interp.Session()); err != nil {
		return err
	}

	host := plugin.NewHost(app.interp)
	defer host.Close()
	for _, p := range cfg.Plugins {
		if err := host.LoadFile(p); err != nil {
			return err
		}
	}

	if watch {
		w, err := config.Watch(rcPath, func(cfg *config.Config, err error) {
			if err != nil {
				app.status = err.Error()
				return
			}
			if err := cfg.Apply(app.interp.Session()); err != nil {
				app.status = err.Error()
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	return app.loop()
}

// tab is one open file.
type tab struct {
	name string
	buf  *textbuf.Buffer
}

// app is the tcell host. It implements the interpreter's status, tab,
// and fold ports; the current tab's buffer is the buffer port.
type app struct {
	screen tcell.Screen
	tabs   []*tab
	cur    int
	interp *interp.Interp

	status  string
	cmdline string
	inCmd   bool
	quit    bool
}

func newApp(files []string) (*app, error) {
	a := &app{}
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		a.tabs = append(a.tabs, &tab{name: name, buf: textbuf.FromText(string(data))})
	}
	if len(a.tabs) == 0 {
		a.tabs = append(a.tabs, &tab{name: "[scratch]", buf: textbuf.New()})
	}

	a.interp = interp.New(interp.NewSession(), interp.Ports{
		Buffer: a,
		Status: a,
		Tabs:   a,
		FS:     osFS{},
		Folds:  nil,
	})
	return a, nil
}

func (a *app) current() *textbuf.Buffer { return a.tabs[a.cur].buf }

// Buffer port, forwarded to the current tab.

func (a *app) LineCount() int                       { return a.current().LineCount() }
func (a *app) Line(n int) (string, error)           { return a.current().Line(n) }
func (a *app) Mark(name rune) (int, bool)           { return a.current().Mark(name) }
func (a *app) SetLine(n int, text string) error     { return a.current().SetLine(n, text) }
func (a *app) InsertLines(at int, ls []string) error { return a.current().InsertLines(at, ls) }
func (a *app) DeleteLines(start, end int) error     { return a.current().DeleteLines(start, end) }
func (a *app) CursorLine() int                      { return a.current().CursorLine() }
func (a *app) SetCursorLine(n int)                  { a.current().SetCursorLine(n) }

// Status port.

func (a *app) Report(msg string) { a.status = msg }

// Tabs port.

func (a *app) GoTo(dir ex.Direction, count int) error {
	n := len(a.tabs)
	step := count % n
	if dir == ex.Backward {
		step = -step
	}
	a.cur = ((a.cur+step)%n + n) % n
	return nil
}

func (a *app) loop() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	a.screen = screen
	defer screen.Fini()

	for !a.quit {
		a.draw()
		a.handle(screen.PollEvent())
	}
	return nil
}

func (a *app) handle(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	if a.inCmd {
		switch key.Key() {
		case tcell.KeyEnter:
			a.inCmd = false
			a.interp.Run(a.cmdline)
			a.cmdline = ""
		case tcell.KeyEscape:
			a.inCmd = false
			a.cmdline = ""
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(a.cmdline) > 0 {
				a.cmdline = a.cmdline[:len(a.cmdline)-1]
			}
		case tcell.KeyRune:
			a.cmdline += string(key.Rune())
		}
		return
	}

	switch {
	case key.Key() == tcell.KeyRune && key.Rune() == ':':
		a.inCmd = true
		a.status = ""
	case key.Key() == tcell.KeyRune && key.Rune() == 'q':
		a.quit = true
	case key.Key() == tcell.KeyRune && key.Rune() == 'j':
		a.SetCursorLine(a.CursorLine() + 1)
	case key.Key() == tcell.KeyRune && key.Rune() == 'k':
		a.SetCursorLine(a.CursorLine() - 1)
	}
}

func (a *app) draw() {
	a.screen.Clear()
	_, height := a.screen.Size()

	plain := tcell.StyleDefault
	marked := plain.Reverse(true)

	// Tab line.
	col := 0
	for i, t := range a.tabs {
		style := plain
		if i == a.cur {
			style = marked
		}
		col = a.drawText(col, 0, " "+t.name+" ", style) + 1
	}

	// Buffer lines, cursor line highlighted.
	buf := a.current()
	top := 1
	for n := 1; n <= buf.LineCount() && top+n-1 < height-1; n++ {
		text, _ := buf.Line(n)
		style := plain
		if n == buf.CursorLine() {
			style = marked
		}
		a.drawText(0, top+n-1, text, style)
	}

	// Command or status line.
	if a.inCmd {
		a.drawText(0, height-1, ":"+a.cmdline, plain)
	} else {
		a.drawText(0, height-1, a.status, plain)
	}
	a.screen.Show()
}

func (a *app) drawText(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// osFS is the interpreter's filesystem port backed by the real
// filesystem.
type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFS) WriteFile(name string, data []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%w: %s", interp.ErrFileExists, name)
		}
	}
	return os.WriteFile(name, data, 0o644)
}
