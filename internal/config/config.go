// Package config loads the editor's rc file and applies it to a
// session. TOML and YAML files are both accepted, picked by extension,
// and a few environment variables override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Mapping is one key mapping declared in the rc file.
type Mapping struct {
	// Mode names the remap mode: "normal", "insert", "n", "i", ...
	Mode string `toml:"mode" yaml:"mode"`

	LHS string `toml:"lhs" yaml:"lhs"`
	RHS string `toml:"rhs" yaml:"rhs"`

	// Recursive marks a map-style (rather than noremap-style) mapping.
	Recursive bool `toml:"recursive" yaml:"recursive"`
}

// Config is the rc file's contents.
type Config struct {
	// Options holds ":set"-style tokens applied in order: "ts=4",
	// "expandtab", "noignorecase".
	Options []string `toml:"options" yaml:"options"`

	// Mappings are applied after the options.
	Mappings []Mapping `toml:"mappings" yaml:"mappings"`

	// Plugins lists Lua plugin files to load, resolved relative to
	// the rc file by the host.
	Plugins []string `toml:"plugins" yaml:"plugins"`
}

// EnvPrefix is the prefix shared by the override variables: EXCMD_SET
// adds option tokens, EXCMD_PLUGINS adds plugin paths.
const EnvPrefix = "EXCMD_"

// Load reads an rc file. The extension picks the format: .toml, or
// .yaml/.yml. A missing file yields an empty config, not an error, so
// hosts can call Load unconditionally.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.applyEnv(os.LookupEnv)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

// Parse decodes rc data. The path's extension picks the decoder.
func Parse(path string, data []byte) (*Config, error) {
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return &cfg, nil
}

// applyEnv appends overrides from the environment. They land after
// the file's entries, so they win.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPrefix + "SET"); ok {
		c.Options = append(c.Options, strings.Fields(v)...)
	}
	if v, ok := lookup(EnvPrefix + "PLUGINS"); ok {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Plugins = append(c.Plugins, p)
			}
		}
	}
}
