package shortcut

import (
	"fmt"
	"strings"
)

// Key is a keyboard key code. Values match raylib's key codes, which match browser keyCodes for
// letters.
type Key int32

const (
	KeyY    Key = 89
	KeyZ    Key = 90
	KeyF11  Key = 300
	KeyHome Key = 268
)

var keyNames = map[Key]string{KeyHome: "Home", KeyF11: "F11"}

// Mod is a set of held modifier keys.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

var modNames = []struct {
	mod  Mod
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModShift, "Shift"},
	{ModAlt, "Alt"},
	{ModSuper, "Super"},
}

// KeyEvent is one key press.
type KeyEvent struct {
	Key  Key
	Mods Mod
}

// Combo is a key plus the modifiers that must be held with it.
type Combo struct {
	Mods Mod
	Key  Key
}

// Matches reports whether ev presses c. Extra held modifiers do not prevent a match.
func (c Combo) Matches(ev KeyEvent) bool {
	return ev.Key == c.Key && ev.Mods&c.Mods == c.Mods
}

// String formats c like "Ctrl+Z".
func (c Combo) String() string {
	var parts []string
	for _, m := range modNames {
		if c.Mods&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, keyName(c.Key)), "+")
}

func keyName(k Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if k >= 'A' && k <= 'Z' || k >= '0' && k <= '9' {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

// ParseCombo parses "Ctrl+Z", "home" or "Ctrl+Shift+Y". Letters and digits map to their ASCII
// codes.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.TrimSpace(s), "+")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i < len(parts)-1 {
			m, ok := parseMod(p)
			if !ok {
				return Combo{}, fmt.Errorf("shortcut %q: unknown modifier %q", s, p)
			}
			c.Mods |= m
			continue
		}
		k, ok := parseKey(p)
		if !ok {
			return Combo{}, fmt.Errorf("shortcut %q: unknown key %q", s, p)
		}
		c.Key = k
	}
	return c, nil
}

func parseMod(s string) (Mod, bool) {
	switch strings.ToLower(s) {
	case "ctrl", "control":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "alt":
		return ModAlt, true
	case "super", "cmd", "meta":
		return ModSuper, true
	}
	return 0, false
}

func parseKey(s string) (Key, bool) {
	for k, n := range keyNames {
		if strings.EqualFold(n, s) {
			return k, true
		}
	}
	if len(s) == 1 {
		r := strings.ToUpper(s)[0]
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return Key(r), true
		}
	}
	return 0, false
}

// UnmarshalText lets combos come from YAML and environment variables.
func (c *Combo) UnmarshalText(text []byte) error {
	parsed, err := ParseCombo(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText formats c for YAML.
func (c Combo) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
