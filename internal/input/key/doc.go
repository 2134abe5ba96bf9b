// Package key defines the atomic input unit for sequence matching.
//
// A Symbol is either a printable string (one grapheme cluster, e.g. "a",
// "½", "é") or a named platform key (e.g. RightAlt, CapsLock). Symbols are
// immutable comparable values and serve as the alphabet for sequence tries.
//
// # Serialized form
//
// Symbols round-trip through a compact string form:
//
//   - Named keys serialize as "VK.<name>": "VK.RightAlt", "VK.CapsLock"
//   - Printable symbols serialize as their literal text: "a", "½"
//
// Parse inverts String: a "VK." prefix with a recognized key name yields the
// named variant; anything else yields the printable variant with that exact
// text.
//
// The package also owns the compose-trigger whitelist: the set of named keys
// a user may configure as the compose key, and the default used when the
// configured value falls outside the set.
package key
