// Package plugin hosts Lua plugins. A plugin script receives an "ex"
// module through which it can register commands, run command lines,
// and inspect the session.
package plugin

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/excmd/internal/interp"
)

// Host runs Lua plugins against one interpreter.
type Host struct {
	state  *lua.LState
	interp *interp.Interp

	// handlers pins registered Lua functions so the Lua GC cannot
	// collect them while a session still references the command.
	handlers []*lua.LFunction
}

// NewHost creates a plugin host. Close releases the Lua state.
func NewHost(ip *interp.Interp) *Host {
	h := &Host{
		state:  lua.NewState(lua.Options{SkipOpenLibs: false}),
		interp: ip,
	}
	h.state.PreloadModule("ex", h.loader)
	return h
}

// Close shuts the Lua state down.
func (h *Host) Close() {
	h.state.Close()
}

// LoadFile runs a plugin file.
func (h *Host) LoadFile(path string) error {
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("plugin %s: %w", path, err)
	}
	return nil
}

// LoadString runs plugin source directly. Tests and inline rc
// snippets use this.
func (h *Host) LoadString(src string) error {
	if err := h.state.DoString(src); err != nil {
		return fmt.Errorf("plugin: %w", err)
	}
	return nil
}

// loader builds the "ex" module table.
func (h *Host) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"command":    h.luaCommand,
		"execute":    h.luaExecute,
		"option":     h.luaOption,
		"report":     h.luaReport,
		"line":       h.luaLine,
		"set_line":   h.luaSetLine,
		"line_count": h.luaLineCount,
	})
	L.SetField(mod, "session", lua.LString(h.interp.Session().ID))
	L.Push(mod)
	return 1
}

// luaCommand registers a user command: ex.command("Name", handler).
// The handler receives (arg, bang).
func (h *Host) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	h.handlers = append(h.handlers, fn)

	h.interp.Session().RegisterCommand(name, func(_ *interp.Interp, arg string, bang bool) error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
			lua.LString(arg), lua.LBool(bang))
	})
	return 0
}

// luaExecute runs a command line: ex.execute(":set ts=4").
func (h *Host) luaExecute(L *lua.LState) int {
	h.interp.Run(L.CheckString(1))
	return 0
}

// luaOption returns an option's effective value as a Lua value.
func (h *Host) luaOption(L *lua.LState) int {
	name := L.CheckString(1)
	v, err := h.interp.Session().Options.Get(name)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	switch val := v.(type) {
	case bool:
		L.Push(lua.LBool(val))
	case int:
		L.Push(lua.LNumber(val))
	case string:
		L.Push(lua.LString(val))
	default:
		L.Push(lua.LString(fmt.Sprintf("%v", val)))
	}
	return 1
}

// luaReport sends a status message.
func (h *Host) luaReport(L *lua.LState) int {
	if ports := h.ports(); ports.Status != nil {
		ports.Status.Report(L.CheckString(1))
	}
	return 0
}

// luaLine returns the text of a buffer line.
func (h *Host) luaLine(L *lua.LState) int {
	buf := h.ports().Buffer
	if buf == nil {
		L.Push(lua.LNil)
		return 1
	}
	text, err := buf.Line(L.CheckInt(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(text))
	return 1
}

// luaSetLine replaces a buffer line.
func (h *Host) luaSetLine(L *lua.LState) int {
	buf := h.ports().Buffer
	if buf == nil {
		return 0
	}
	if err := buf.SetLine(L.CheckInt(1), L.CheckString(2)); err != nil {
		L.Push(lua.LString(err.Error()))
		return 1
	}
	return 0
}

// luaLineCount returns the buffer's line count.
func (h *Host) luaLineCount(L *lua.LState) int {
	buf := h.ports().Buffer
	if buf == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(buf.LineCount()))
	return 1
}

func (h *Host) ports() interp.Ports {
	return h.interp.Ports()
}
