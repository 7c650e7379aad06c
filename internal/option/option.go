// Package option implements the typed option registry behind :set.
//
// Options have a declared kind (string, number, toggle), a canonical
// name plus accepted abbreviations, and a scope: global options apply
// session-wide, buffer options may shadow their default per buffer.
package option

// Kind is the data type of an option.
type Kind uint8

const (
	// KindString is a string-valued option.
	KindString Kind = iota

	// KindNumber is an integer-valued option.
	KindNumber

	// KindToggle is a boolean option set with name/noname/name!.
	KindToggle
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Scope defines where an option's value lives.
type Scope uint8

const (
	// ScopeGlobal options have a single session-wide value.
	ScopeGlobal Scope = iota

	// ScopeBuffer options are buffer-local and shadow the global
	// default.
	ScopeBuffer
)

// Option declares a single setting.
type Option struct {
	// Name is the canonical option name.
	Name string

	// Abbrev lists accepted short spellings.
	Abbrev []string

	// Kind is the option's data type.
	Kind Kind

	// Scope is where the value is stored.
	Scope Scope

	// Default is the option's default value: string, int, or bool
	// matching Kind.
	Default any
}

// defaults declares the built-in options. Order here is the order
// ListModified reports in.
func defaults() []Option {
	return []Option{
		{Name: "tabstop", Abbrev: []string{"ts"}, Kind: KindNumber, Scope: ScopeBuffer, Default: 8},
		{Name: "shiftwidth", Abbrev: []string{"sw"}, Kind: KindNumber, Scope: ScopeBuffer, Default: 8},
		{Name: "expandtab", Abbrev: []string{"et"}, Kind: KindToggle, Scope: ScopeBuffer, Default: false},
		{Name: "autoindent", Abbrev: []string{"ai"}, Kind: KindToggle, Scope: ScopeBuffer, Default: false},
		{Name: "number", Abbrev: []string{"nu"}, Kind: KindToggle, Scope: ScopeBuffer, Default: false},
		{Name: "relativenumber", Abbrev: []string{"rnu"}, Kind: KindToggle, Scope: ScopeBuffer, Default: false},
		{Name: "wrap", Kind: KindToggle, Scope: ScopeBuffer, Default: true},
		{Name: "ignorecase", Abbrev: []string{"ic"}, Kind: KindToggle, Scope: ScopeGlobal, Default: false},
		{Name: "smartcase", Abbrev: []string{"scs"}, Kind: KindToggle, Scope: ScopeGlobal, Default: false},
		{Name: "hlsearch", Abbrev: []string{"hls"}, Kind: KindToggle, Scope: ScopeGlobal, Default: true},
		{Name: "incsearch", Abbrev: []string{"is"}, Kind: KindToggle, Scope: ScopeGlobal, Default: true},
		{Name: "scrolloff", Abbrev: []string{"so"}, Kind: KindNumber, Scope: ScopeGlobal, Default: 0},
		{Name: "nrformats", Abbrev: []string{"nf"}, Kind: KindString, Scope: ScopeBuffer, Default: "bin,hex"},
	}
}
