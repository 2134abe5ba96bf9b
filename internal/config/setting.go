package config

import (
	"strconv"
	"strings"

	"github.com/dshills/keycompose/internal/input/key"
)

// Setting keys in the [global] section.
const (
	keyComposeKey            = "compose_key"
	keyResetDelay            = "reset_delay"
	keyLanguage              = "language"
	keyCaseInsensitive       = "case_insensitive"
	keyDiscardOnInvalid      = "discard_on_invalid"
	keyBeepOnInvalid         = "beep_on_invalid"
	keyKeepOriginalKey       = "keep_original_key"
	keyInsertZWSP            = "insert_zwsp"
	keyEmulateCapsLock       = "emulate_capslock"
	keyShiftDisablesCapsLock = "shift_disables_capslock"
)

// DefaultResetDelay disables the automatic sequence timeout. The value is
// in milliseconds when positive.
const DefaultResetDelay = -1

// setting is one typed configuration entry: a key, a default, and a
// parse/format pair. Reading coerces the raw text and falls back to the
// default when the key is absent or the text does not parse; there is no
// reflection and entries never observe each other.
type setting[T any] struct {
	key    string
	def    T
	parse  func(string) (T, bool)
	format func(T) string
}

// get resolves the entry against the raw key-value section.
func (e setting[T]) get(raw map[string]string) T {
	text, ok := raw[e.key]
	if !ok {
		return e.def
	}
	v, ok := e.parse(text)
	if !ok {
		return e.def
	}
	return v
}

// put writes the formatted value into the section.
func (e setting[T]) put(raw map[string]string, v T) {
	raw[e.key] = e.format(v)
}

func boolSetting(key string, def bool) setting[bool] {
	return setting[bool]{
		key: key,
		def: def,
		parse: func(text string) (bool, bool) {
			v, err := strconv.ParseBool(strings.TrimSpace(text))
			return v, err == nil
		},
		format: strconv.FormatBool,
	}
}

func intSetting(key string, def int) setting[int] {
	return setting[int]{
		key: key,
		def: def,
		parse: func(text string) (int, bool) {
			v, err := strconv.Atoi(strings.TrimSpace(text))
			return v, err == nil
		},
		format: strconv.Itoa,
	}
}

// composeSetting accepts only whitelisted compose candidates; anything
// else silently resets to the default trigger key.
func composeSetting(k string, def key.Symbol) setting[key.Symbol] {
	return setting[key.Symbol]{
		key: k,
		def: def,
		parse: func(text string) (key.Symbol, bool) {
			sym := key.Parse(strings.TrimSpace(text))
			return sym, key.IsComposeCandidate(sym)
		},
		format: key.Symbol.String,
	}
}

var (
	settingComposeKey = composeSetting(keyComposeKey, key.DefaultCompose())
	settingResetDelay = intSetting(keyResetDelay, DefaultResetDelay)

	settingCaseInsensitive       = boolSetting(keyCaseInsensitive, false)
	settingDiscardOnInvalid      = boolSetting(keyDiscardOnInvalid, false)
	settingBeepOnInvalid         = boolSetting(keyBeepOnInvalid, false)
	settingKeepOriginalKey       = boolSetting(keyKeepOriginalKey, false)
	settingInsertZWSP            = boolSetting(keyInsertZWSP, false)
	settingEmulateCapsLock       = boolSetting(keyEmulateCapsLock, false)
	settingShiftDisablesCapsLock = boolSetting(keyShiftDisablesCapsLock, false)
)

// boolSettings lists every boolean entry for save-time enumeration.
var boolSettings = []setting[bool]{
	settingCaseInsensitive,
	settingDiscardOnInvalid,
	settingBeepOnInvalid,
	settingKeepOriginalKey,
	settingInsertZWSP,
	settingEmulateCapsLock,
	settingShiftDisablesCapsLock,
}
