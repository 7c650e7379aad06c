package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/excmd/internal/interp"
	"github.com/dshills/excmd/internal/keymap"
)

const tomlRC = `
options = ["ts=4", "expandtab"]
plugins = ["init.lua"]

[[mappings]]
mode = "normal"
lhs = "Y"
rhs = "y$"

[[mappings]]
mode = "i"
lhs = "jk"
rhs = "<Esc>"
recursive = true
`

const yamlRC = `
options:
  - ts=4
  - expandtab
mappings:
  - mode: normal
    lhs: Y
    rhs: y$
`

func TestParse_TOML(t *testing.T) {
	cfg, err := Parse("rc.toml", []byte(tomlRC))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(cfg.Options) != 2 || cfg.Options[0] != "ts=4" {
		t.Errorf("options = %v", cfg.Options)
	}
	if len(cfg.Mappings) != 2 || cfg.Mappings[1].Recursive != true {
		t.Errorf("mappings = %+v", cfg.Mappings)
	}
	if len(cfg.Plugins) != 1 || cfg.Plugins[0] != "init.lua" {
		t.Errorf("plugins = %v", cfg.Plugins)
	}
}

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse("rc.yaml", []byte(yamlRC))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(cfg.Options) != 2 || len(cfg.Mappings) != 1 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestParse_UnknownExtension(t *testing.T) {
	if _, err := Parse("rc.json", []byte("{}")); err == nil {
		t.Error("unknown extension should fail")
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Options) != 0 {
		t.Errorf("config = %+v, want empty", cfg)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		"EXCMD_SET":     "nu ic",
		"EXCMD_PLUGINS": "a.lua, b.lua",
	}
	cfg := &Config{Options: []string{"ts=4"}}
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if len(cfg.Options) != 3 || cfg.Options[2] != "ic" {
		t.Errorf("options = %v", cfg.Options)
	}
	if len(cfg.Plugins) != 2 || cfg.Plugins[1] != "b.lua" {
		t.Errorf("plugins = %v", cfg.Plugins)
	}
}

func TestConfig_Apply(t *testing.T) {
	cfg, err := Parse("rc.toml", []byte(tomlRC))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	s := interp.NewSession()
	if err := cfg.Apply(s); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	if got := s.Options.Number("tabstop"); got != 4 {
		t.Errorf("tabstop = %d, want 4", got)
	}
	if !s.Options.Toggle("expandtab") {
		t.Error("expandtab not set")
	}
	if _, ok := s.Keymap.Lookup(keymap.ModeNormal, "Y"); !ok {
		t.Error("normal-mode mapping not applied")
	}
	b, ok := s.Keymap.Lookup(keymap.ModeInsert, "jk")
	if !ok || !b.Recursive {
		t.Errorf("insert-mode mapping = %+v, %v", b, ok)
	}
}

func TestConfig_ApplyBadMode(t *testing.T) {
	cfg := &Config{Mappings: []Mapping{{Mode: "bogus", LHS: "a", RHS: "b"}}}
	if err := cfg.Apply(interp.NewSession()); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestWatch_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rc.toml")
	if err := os.WriteFile(path, []byte(`options = ["ts=4"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`options = ["ts=2"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if len(cfg.Options) != 1 || cfg.Options[0] != "ts=2" {
			t.Errorf("reloaded options = %v", cfg.Options)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within timeout")
	}
}
