package keymap

import (
	"reflect"
	"testing"
)

func TestTable_Define(t *testing.T) {
	tbl := NewTable()

	if !tbl.Define("jj", "<Esc>", true, ModeInsert) {
		t.Fatal("Define failed")
	}

	b, ok := tbl.Lookup(ModeInsert, "jj")
	if !ok {
		t.Fatal("expected mapping for jj")
	}
	if b.RHS != "<Esc>" {
		t.Errorf("RHS = %q, want %q", b.RHS, "<Esc>")
	}

	// Other modes stay empty.
	if _, ok := tbl.Lookup(ModeNormal, "jj"); ok {
		t.Error("jj should not be mapped in normal mode")
	}
}

func TestTable_Define_Canonicalizes(t *testing.T) {
	tbl := NewTable()
	tbl.Define("<c-[>", "<return>", true, ModeNormal)

	b, ok := tbl.Lookup(ModeNormal, "<Esc>")
	if !ok {
		t.Fatal("expected canonicalized lhs <Esc>")
	}
	if b.LHS != "<Esc>" || b.RHS != "<CR>" {
		t.Errorf("binding = %q -> %q, want <Esc> -> <CR>", b.LHS, b.RHS)
	}
}

func TestTable_Define_LastWriteWins(t *testing.T) {
	tbl := NewTable()
	tbl.Define("x", "dd", true, ModeNormal)
	tbl.Define("x", "yy", true, ModeNormal)

	b, _ := tbl.Lookup(ModeNormal, "x")
	if b.RHS != "yy" {
		t.Errorf("RHS = %q, want last write yy", b.RHS)
	}
	if got := tbl.Len(ModeNormal); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
}

func TestTable_Define_NoremapConflict(t *testing.T) {
	tbl := NewTable()
	tbl.Define("x", "dd", true, ModeNormal)

	if tbl.Define("x", "yy", false, ModeNormal) {
		t.Error("noremap over a recursive mapping should return false")
	}
	b, _ := tbl.Lookup(ModeNormal, "x")
	if b.RHS != "dd" {
		t.Errorf("RHS = %q, want original dd", b.RHS)
	}

	// The reverse direction is an ordinary overwrite.
	if !tbl.Define("x", "yy", true, ModeNormal) {
		t.Error("recursive define over recursive should succeed")
	}
}

func TestTable_Remove(t *testing.T) {
	tbl := NewTable()
	tbl.Define("x", "dd", true, ModeNormal, ModeVisual)

	if !tbl.Remove("x", ModeNormal) {
		t.Fatal("Remove returned false")
	}
	if _, ok := tbl.Lookup(ModeNormal, "x"); ok {
		t.Error("mapping still present after Remove")
	}
	if _, ok := tbl.Lookup(ModeVisual, "x"); !ok {
		t.Error("Remove cleared a mode it was not given")
	}
	if tbl.Remove("x", ModeNormal) {
		t.Error("removing a missing mapping should return false")
	}
}

func TestTable_Bindings_Order(t *testing.T) {
	tbl := NewTable()
	tbl.Define("c", "1", true, ModeNormal)
	tbl.Define("a", "2", true, ModeNormal)
	tbl.Define("b", "3", true, ModeNormal)
	tbl.Define("a", "4", true, ModeNormal) // overwrite keeps position

	var lhs []string
	for _, b := range tbl.Bindings(ModeNormal) {
		lhs = append(lhs, b.LHS)
	}
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(lhs, want) {
		t.Errorf("order = %v, want %v", lhs, want)
	}
}

func TestTable_Print(t *testing.T) {
	tbl := NewTable()
	tbl.Define("<s-q>", "<c-[>", true, ModeNormal)

	lines := tbl.Print(ModeNormal)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	want := "n    Q <Esc>"
	if lines[0] != want {
		t.Errorf("Print = %q, want %q", lines[0], want)
	}
}

// defineAll populates one distinct mapping per mode.
func defineAll(tbl *Table) {
	for _, m := range AllModes {
		tbl.Define("q", "x", true, m)
	}
}

func TestModesForClear_Subsets(t *testing.T) {
	tests := []struct {
		cmd     string
		cleared []RemapMode
	}{
		{"mapc", []RemapMode{ModeNormal, ModeVisual, ModeCommand, ModeOperatorPending}},
		{"mapc!", []RemapMode{ModeInsert, ModeCommand}},
		{"nmapc", []RemapMode{ModeNormal}},
		{"vmapc", []RemapMode{ModeVisual, ModeSelect}},
		{"xmapc", []RemapMode{ModeVisual}},
		{"smapc", []RemapMode{ModeSelect}},
		{"omapc", []RemapMode{ModeOperatorPending}},
		{"imapc", []RemapMode{ModeInsert}},
		{"cmapc", []RemapMode{ModeCommand}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			modes, ok := ModesForClear(tt.cmd)
			if !ok {
				t.Fatalf("ModesForClear(%q) not found", tt.cmd)
			}

			tbl := NewTable()
			defineAll(tbl)
			tbl.Clear(modes...)

			inSubset := map[RemapMode]bool{}
			for _, m := range tt.cleared {
				inSubset[m] = true
			}

			// Verify against the full mode enumeration: exactly the
			// documented subset is cleared, everything else intact.
			for _, m := range AllModes {
				_, mapped := tbl.Lookup(m, "q")
				if inSubset[m] && mapped {
					t.Errorf("%s: mode %s not cleared", tt.cmd, m)
				}
				if !inSubset[m] && !mapped {
					t.Errorf("%s: mode %s cleared but should be intact", tt.cmd, m)
				}
			}
		})
	}
}

func TestTable_ClearAll(t *testing.T) {
	tbl := NewTable()
	defineAll(tbl)
	tbl.ClearAll()
	for _, m := range AllModes {
		if tbl.Len(m) != 0 {
			t.Errorf("mode %s not empty after ClearAll", m)
		}
	}
}

func TestModesForDefine(t *testing.T) {
	modes, ok := ModesForDefine("vmap")
	if !ok {
		t.Fatal("vmap not found")
	}
	want := []RemapMode{ModeVisual, ModeSelect}
	if !reflect.DeepEqual(modes, want) {
		t.Errorf("vmap modes = %v, want %v", modes, want)
	}

	if _, ok := ModesForDefine("zmap"); ok {
		t.Error("unknown command should not resolve")
	}
}
