package definition

import "github.com/dshills/keycompose/internal/input/key"

// keysymTable maps curated symbolic key names to Symbols. ASCII punctuation
// goes by these names in definition files; keypad keys resolve to the
// printable character they produce. Names are case-sensitive.
var keysymTable = map[string]key.Symbol{
	"space":        key.Printable(" "),
	"exclam":       key.Printable("!"),
	"quotedbl":     key.Printable(`"`),
	"numbersign":   key.Printable("#"),
	"dollar":       key.Printable("$"),
	"percent":      key.Printable("%"),
	"ampersand":    key.Printable("&"),
	"apostrophe":   key.Printable("'"),
	"quoteright":   key.Printable("'"),
	"parenleft":    key.Printable("("),
	"parenright":   key.Printable(")"),
	"asterisk":     key.Printable("*"),
	"plus":         key.Printable("+"),
	"comma":        key.Printable(","),
	"minus":        key.Printable("-"),
	"period":       key.Printable("."),
	"slash":        key.Printable("/"),
	"colon":        key.Printable(":"),
	"semicolon":    key.Printable(";"),
	"less":         key.Printable("<"),
	"equal":        key.Printable("="),
	"greater":      key.Printable(">"),
	"question":     key.Printable("?"),
	"at":           key.Printable("@"),
	"bracketleft":  key.Printable("["),
	"backslash":    key.Printable(`\`),
	"bracketright": key.Printable("]"),
	"asciicircum":  key.Printable("^"),
	"underscore":   key.Printable("_"),
	"grave":        key.Printable("`"),
	"quoteleft":    key.Printable("`"),
	"braceleft":    key.Printable("{"),
	"bar":          key.Printable("|"),
	"braceright":   key.Printable("}"),
	"asciitilde":   key.Printable("~"),

	"KP_0": key.Printable("0"),
	"KP_1": key.Printable("1"),
	"KP_2": key.Printable("2"),
	"KP_3": key.Printable("3"),
	"KP_4": key.Printable("4"),
	"KP_5": key.Printable("5"),
	"KP_6": key.Printable("6"),
	"KP_7": key.Printable("7"),
	"KP_8": key.Printable("8"),
	"KP_9": key.Printable("9"),

	"KP_Add":      key.Printable("+"),
	"KP_Subtract": key.Printable("-"),
	"KP_Multiply": key.Printable("*"),
	"KP_Divide":   key.Printable("/"),
	"KP_Equal":    key.Printable("="),
	"KP_Decimal":  key.Printable("."),

	"Multi_key": key.Named(key.KeyCompose),
}

// lookupKeysym resolves a curated symbolic name.
func lookupKeysym(name string) (key.Symbol, bool) {
	sym, ok := keysymTable[name]
	return sym, ok
}
