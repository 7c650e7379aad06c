package keymap

// RemapMode identifies the editor mode a key mapping applies to.
type RemapMode uint8

const (
	// ModeNormal is normal mode.
	ModeNormal RemapMode = iota

	// ModeVisual is visual mode (character, line, and block).
	ModeVisual

	// ModeSelect is select mode.
	ModeSelect

	// ModeOperatorPending is operator-pending mode.
	ModeOperatorPending

	// ModeInsert is insert mode.
	ModeInsert

	// ModeCommand is command-line mode.
	ModeCommand
)

// AllModes enumerates every remap mode, in display order.
var AllModes = []RemapMode{
	ModeNormal,
	ModeVisual,
	ModeSelect,
	ModeOperatorPending,
	ModeInsert,
	ModeCommand,
}

// String returns a human-readable name for the mode.
func (m RemapMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeVisual:
		return "visual"
	case ModeSelect:
		return "select"
	case ModeOperatorPending:
		return "operator-pending"
	case ModeInsert:
		return "insert"
	case ModeCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter mode prefix used when printing
// mappings, matching the left column of :map output.
func (m RemapMode) Letter() string {
	switch m {
	case ModeNormal:
		return "n"
	case ModeVisual:
		return "v"
	case ModeSelect:
		return "s"
	case ModeOperatorPending:
		return "o"
	case ModeInsert:
		return "i"
	case ModeCommand:
		return "c"
	default:
		return "?"
	}
}

// ModeFromName returns the mode for a configuration name such as
// "normal" or "operator-pending".
func ModeFromName(name string) (RemapMode, bool) {
	switch name {
	case "normal", "n":
		return ModeNormal, true
	case "visual", "v", "x":
		return ModeVisual, true
	case "select", "s":
		return ModeSelect, true
	case "operator-pending", "operator", "o":
		return ModeOperatorPending, true
	case "insert", "i":
		return ModeInsert, true
	case "command", "c":
		return ModeCommand, true
	default:
		return 0, false
	}
}

// defineModes maps each map-family define command to the modes it
// populates.
var defineModes = map[string][]RemapMode{
	"map":  {ModeNormal, ModeVisual, ModeOperatorPending},
	"map!": {ModeInsert, ModeCommand},
	"nmap": {ModeNormal},
	"vmap": {ModeVisual, ModeSelect},
	"xmap": {ModeVisual},
	"smap": {ModeSelect},
	"omap": {ModeOperatorPending},
	"imap": {ModeInsert},
	"cmap": {ModeCommand},
}

// clearModes maps each mapc-family command to the exact mode subset it
// clears. These subsets are contract surface; do not "fix" them to
// mirror the define subsets.
var clearModes = map[string][]RemapMode{
	"mapc":  {ModeNormal, ModeVisual, ModeCommand, ModeOperatorPending},
	"mapc!": {ModeInsert, ModeCommand},
	"nmapc": {ModeNormal},
	"vmapc": {ModeVisual, ModeSelect},
	"xmapc": {ModeVisual},
	"smapc": {ModeSelect},
	"omapc": {ModeOperatorPending},
	"imapc": {ModeInsert},
	"cmapc": {ModeCommand},
}

// ModesForDefine returns the mode subset a map-family command defines
// into. The name is the base command with "!" retained ("map!") and any
// "nore" infix removed ("nnoremap" resolves as "nmap").
func ModesForDefine(name string) ([]RemapMode, bool) {
	m, ok := defineModes[name]
	return m, ok
}

// ModesForClear returns the mode subset a mapc-family command clears.
func ModesForClear(name string) ([]RemapMode, bool) {
	m, ok := clearModes[name]
	return m, ok
}
