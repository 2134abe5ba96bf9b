package key

import (
	"fmt"
	"strings"
)

// Key identifies a named (non-printable) platform key.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// KeyCompose is the abstract compose marker itself. It appears inside
	// sequences when a definition nests the trigger key.
	KeyCompose

	// Modifier keys
	KeyLeftAlt
	KeyRightAlt
	KeyLeftControl
	KeyRightControl
	KeyLeftShift
	KeyRightShift
	KeyLeftSuper
	KeyRightSuper
	KeyMenu

	// Lock keys
	KeyCapsLock
	KeyNumLock
	KeyScrollLock

	// Editing keys
	KeyReturn
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEscape

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Other special keys
	KeyPause
	KeyPrintScreen

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	keyMax // sentinel, keep last
)

// String returns the canonical symbolic name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyCompose:
		return "Compose"
	case KeyLeftAlt:
		return "LeftAlt"
	case KeyRightAlt:
		return "RightAlt"
	case KeyLeftControl:
		return "LeftControl"
	case KeyRightControl:
		return "RightControl"
	case KeyLeftShift:
		return "LeftShift"
	case KeyRightShift:
		return "RightShift"
	case KeyLeftSuper:
		return "LeftSuper"
	case KeyRightSuper:
		return "RightSuper"
	case KeyMenu:
		return "Menu"
	case KeyCapsLock:
		return "CapsLock"
	case KeyNumLock:
		return "NumLock"
	case KeyScrollLock:
		return "ScrollLock"
	case KeyReturn:
		return "Return"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyInsert:
		return "Insert"
	case KeyEscape:
		return "Escape"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyPause:
		return "Pause"
	case KeyPrintScreen:
		return "PrintScreen"
	case KeyF1:
		return "F1"
	case KeyF2:
		return "F2"
	case KeyF3:
		return "F3"
	case KeyF4:
		return "F4"
	case KeyF5:
		return "F5"
	case KeyF6:
		return "F6"
	case KeyF7:
		return "F7"
	case KeyF8:
		return "F8"
	case KeyF9:
		return "F9"
	case KeyF10:
		return "F10"
	case KeyF11:
		return "F11"
	case KeyF12:
		return "F12"
	default:
		return fmt.Sprintf("Key(%d)", uint16(k))
	}
}

// Recognized reports whether the key is one of the identifiers this package
// defines. Values outside the enum (e.g. raw scancodes smuggled in from a
// platform layer) are not recognized and cannot appear in sequences.
func (k Key) Recognized() bool {
	return k > KeyNone && k < keyMax
}

// IsModifier returns true for modifier keys (Alt, Control, Shift, Super, Menu).
func (k Key) IsModifier() bool {
	return k >= KeyLeftAlt && k <= KeyMenu
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// keyNameMap maps key names (lowercase) to Key values.
// Includes common aliases accepted on parse; String() emits the canonical form.
var keyNameMap = map[string]Key{
	"none":         KeyNone,
	"compose":      KeyCompose,
	"multi_key":    KeyCompose,
	"leftalt":      KeyLeftAlt,
	"lalt":         KeyLeftAlt,
	"rightalt":     KeyRightAlt,
	"ralt":         KeyRightAlt,
	"altgr":        KeyRightAlt,
	"leftcontrol":  KeyLeftControl,
	"lcontrol":     KeyLeftControl,
	"lctrl":        KeyLeftControl,
	"rightcontrol": KeyRightControl,
	"rcontrol":     KeyRightControl,
	"rctrl":        KeyRightControl,
	"leftshift":    KeyLeftShift,
	"lshift":       KeyLeftShift,
	"rightshift":   KeyRightShift,
	"rshift":       KeyRightShift,
	"leftsuper":    KeyLeftSuper,
	"lwin":         KeyLeftSuper,
	"rightsuper":   KeyRightSuper,
	"rwin":         KeyRightSuper,
	"menu":         KeyMenu,
	"apps":         KeyMenu,
	"capslock":     KeyCapsLock,
	"numlock":      KeyNumLock,
	"scrolllock":   KeyScrollLock,
	"return":       KeyReturn,
	"enter":        KeyReturn,
	"tab":          KeyTab,
	"backspace":    KeyBackspace,
	"bs":           KeyBackspace,
	"delete":       KeyDelete,
	"del":          KeyDelete,
	"insert":       KeyInsert,
	"ins":          KeyInsert,
	"escape":       KeyEscape,
	"esc":          KeyEscape,
	"home":         KeyHome,
	"end":          KeyEnd,
	"pageup":       KeyPageUp,
	"pgup":         KeyPageUp,
	"pagedown":     KeyPageDown,
	"pgdn":         KeyPageDown,
	"up":           KeyUp,
	"down":         KeyDown,
	"left":         KeyLeft,
	"right":        KeyRight,
	"pause":        KeyPause,
	"printscreen":  KeyPrintScreen,
	"f1":           KeyF1,
	"f2":           KeyF2,
	"f3":           KeyF3,
	"f4":           KeyF4,
	"f5":           KeyF5,
	"f6":           KeyF6,
	"f7":           KeyF7,
	"f8":           KeyF8,
	"f9":           KeyF9,
	"f10":          KeyF10,
	"f11":          KeyF11,
	"f12":          KeyF12,
}

// FromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func FromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}

// keyDisplayNames holds curated friendly names. Keys without an entry fall
// back to the canonical symbolic name.
var keyDisplayNames = map[Key]string{
	KeyCompose:      "Compose",
	KeyLeftAlt:      "Left Alt",
	KeyRightAlt:     "Right Alt",
	KeyLeftControl:  "Left Ctrl",
	KeyRightControl: "Right Ctrl",
	KeyLeftShift:    "Left Shift",
	KeyRightShift:   "Right Shift",
	KeyLeftSuper:    "Left Super",
	KeyRightSuper:   "Right Super",
	KeyMenu:         "Menu",
	KeyCapsLock:     "Caps Lock",
	KeyNumLock:      "Num Lock",
	KeyScrollLock:   "Scroll Lock",
	KeyPageUp:       "Page Up",
	KeyPageDown:     "Page Down",
	KeyPrintScreen:  "Print Screen",
}

// keyLabels holds curated compact key-cap labels.
var keyLabels = map[Key]string{
	KeyCompose:      "♦",
	KeyLeftAlt:      "LAlt",
	KeyRightAlt:     "RAlt",
	KeyLeftControl:  "LCtrl",
	KeyRightControl: "RCtrl",
	KeyLeftShift:    "LShift",
	KeyRightShift:   "RShift",
	KeyLeftSuper:    "LWin",
	KeyRightSuper:   "RWin",
	KeyCapsLock:     "Caps",
	KeyNumLock:      "Num",
	KeyScrollLock:   "Scroll",
	KeyReturn:       "↲",
	KeyTab:          "⇥",
	KeyBackspace:    "⌫",
	KeyDelete:       "⌦",
	KeyEscape:       "Esc",
	KeyPageUp:       "PgUp",
	KeyPageDown:     "PgDn",
	KeyUp:           "↑",
	KeyDown:         "↓",
	KeyLeft:         "←",
	KeyRight:        "→",
}

// Name returns the friendly display name for the key.
func (k Key) Name() string {
	if n, ok := keyDisplayNames[k]; ok {
		return n
	}
	return k.String()
}

// Label returns the compact key-cap label for the key.
func (k Key) Label() string {
	if l, ok := keyLabels[k]; ok {
		return l
	}
	return k.String()
}

// composeCandidates is the whitelist of keys accepted as the compose trigger.
// A configured trigger outside this set is reset to the default.
var composeCandidates = map[Key]bool{
	KeyCompose:      true,
	KeyLeftAlt:      true,
	KeyRightAlt:     true,
	KeyLeftControl:  true,
	KeyRightControl: true,
	KeyLeftSuper:    true,
	KeyRightSuper:   true,
	KeyMenu:         true,
	KeyCapsLock:     true,
	KeyNumLock:      true,
	KeyScrollLock:   true,
	KeyPause:        true,
	KeyPrintScreen:  true,
	KeyInsert:       true,
	KeyEscape:       true,
}

// IsComposeCandidate reports whether the symbol may serve as the compose
// trigger.
func IsComposeCandidate(s Symbol) bool {
	return !s.IsPrintable() && composeCandidates[s.id]
}

// ComposeCandidates returns the symbols accepted as the compose trigger,
// ordered by key value.
func ComposeCandidates() []Symbol {
	out := make([]Symbol, 0, len(composeCandidates))
	for k := KeyNone; k < keyMax; k++ {
		if composeCandidates[k] {
			out = append(out, Named(k))
		}
	}
	return out
}

// DefaultCompose returns the compose trigger used when no valid key is
// configured.
func DefaultCompose() Symbol {
	return Named(KeyRightAlt)
}
