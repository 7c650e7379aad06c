package option

import (
	"errors"
	"reflect"
	"testing"
)

func TestStore_Abbreviations(t *testing.T) {
	s := NewStore()

	if err := s.Set("ts", "4"); err != nil {
		t.Fatalf("Set(ts) failed: %v", err)
	}
	v, err := s.Get("tabstop")
	if err != nil {
		t.Fatalf("Get(tabstop) failed: %v", err)
	}
	if v != 4 {
		t.Errorf("tabstop = %v, want 4", v)
	}
	if s.Number("ts") != 4 {
		t.Errorf("Number(ts) = %d, want 4", s.Number("ts"))
	}
}

func TestStore_UnknownOption(t *testing.T) {
	s := NewStore()
	_, err := s.Get("bogus")
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("err = %v, want ErrUnknownOption", err)
	}
	if err := s.Set("bogus", "1"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("Set err = %v, want ErrUnknownOption", err)
	}
}

func TestStore_WrongKind(t *testing.T) {
	s := NewStore()

	// Assigning a toggle with = is an error.
	if err := s.Set("expandtab", "true"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Set(expandtab) err = %v, want ErrInvalidValue", err)
	}

	// Non-numeric value for a number option.
	if err := s.Set("tabstop", "abc"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Set(tabstop, abc) err = %v, want ErrInvalidValue", err)
	}

	// Inverting a non-toggle.
	if err := s.Invert("tabstop"); !errors.Is(err, ErrNotToggle) {
		t.Errorf("Invert(tabstop) err = %v, want ErrNotToggle", err)
	}
}

func TestStore_Invert_Involution(t *testing.T) {
	s := NewStore()
	for _, o := range s.Options() {
		if o.Kind != KindToggle {
			continue
		}
		before := s.Toggle(o.Name)
		if err := s.Invert(o.Name); err != nil {
			t.Fatalf("Invert(%s): %v", o.Name, err)
		}
		if s.Toggle(o.Name) == before {
			t.Errorf("%s: Invert did not flip value", o.Name)
		}
		if err := s.Invert(o.Name); err != nil {
			t.Fatalf("Invert(%s): %v", o.Name, err)
		}
		if s.Toggle(o.Name) != before {
			t.Errorf("%s: double Invert did not restore value", o.Name)
		}
	}
}

func TestStore_Eval(t *testing.T) {
	tests := []struct {
		token string
		check func(*Store) bool
	}{
		{"expandtab", func(s *Store) bool { return s.Toggle("expandtab") }},
		{"noexpandtab", func(s *Store) bool { return !s.Toggle("expandtab") }},
		{"et", func(s *Store) bool { return s.Toggle("expandtab") }},
		{"noet", func(s *Store) bool { return !s.Toggle("expandtab") }},
		{"expandtab!", func(s *Store) bool { return s.Toggle("expandtab") }},
		{"ts=2", func(s *Store) bool { return s.Number("tabstop") == 2 }},
		{"nrformats=hex", func(s *Store) bool { return s.Str("nf") == "hex" }},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			s := NewStore()
			if _, err := s.Eval(tt.token); err != nil {
				t.Fatalf("Eval(%q): %v", tt.token, err)
			}
			if !tt.check(s) {
				t.Errorf("Eval(%q) did not take effect", tt.token)
			}
		})
	}
}

func TestStore_Eval_Query(t *testing.T) {
	s := NewStore()
	if err := s.Set("tabstop", "4"); err != nil {
		t.Fatal(err)
	}

	out, err := s.Eval("ts?")
	if err != nil {
		t.Fatalf("Eval(ts?): %v", err)
	}
	if out != "ts=4" {
		t.Errorf("query = %q, want ts=4", out)
	}

	// Bare non-toggle name also queries.
	out, err = s.Eval("tabstop")
	if err != nil {
		t.Fatalf("Eval(tabstop): %v", err)
	}
	if out != "tabstop=4" {
		t.Errorf("bare query = %q, want tabstop=4", out)
	}

	// Toggle query renders the no-form when off.
	out, err = s.Eval("et?")
	if err != nil {
		t.Fatalf("Eval(et?): %v", err)
	}
	if out != "noet" {
		t.Errorf("toggle query = %q, want noet", out)
	}
}

func TestStore_ListModified(t *testing.T) {
	s := NewStore()
	if got := s.ListModified(); len(got) != 0 {
		t.Fatalf("fresh store reports modified options: %v", got)
	}

	// Assign out of registration order; listing is registration order.
	if _, err := s.Eval("et"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Eval("ts=2"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Eval("nrformats=hex"); err != nil {
		t.Fatal(err)
	}

	got := s.ListModified()
	want := []string{"ts=2", "et", "nrformats=hex"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListModified = %v, want %v", got, want)
	}
}

func TestStore_ListModified_RevertsToDefault(t *testing.T) {
	s := NewStore()
	if _, err := s.Eval("ts=2"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Eval("ts=8"); err != nil {
		t.Fatal(err)
	}
	// Back at the default value, so nothing to list.
	if got := s.ListModified(); len(got) != 0 {
		t.Errorf("ListModified = %v, want empty", got)
	}
}

func TestStore_LocalShadowsGlobal(t *testing.T) {
	s := NewStore()
	o, err := s.Lookup("tabstop")
	if err != nil {
		t.Fatal(err)
	}
	if o.Scope != ScopeBuffer {
		t.Fatal("tabstop should be buffer-scoped")
	}
	if err := s.Set("tabstop", "2"); err != nil {
		t.Fatal(err)
	}
	if s.Number("tabstop") != 2 {
		t.Errorf("local tabstop = %d, want 2", s.Number("tabstop"))
	}
}
