package sequence

import "sort"

// NoCodepoint marks a descriptor whose result is not a single codepoint.
// Its value sorts below every real codepoint.
const NoCodepoint rune = -1

// Descriptor is a flattened view of one complete sequence, used for
// enumeration and display.
type Descriptor struct {
	Sequence    Sequence
	Result      string
	Description string
	Codepoint   rune
}

// HasCodepoint reports whether the result resolved to a single codepoint.
func (d Descriptor) HasCodepoint() bool {
	return d.Codepoint != NoCodepoint
}

// Less orders descriptors for enumeration: numerically by codepoint when
// either side has one (NoCodepoint compares as -1, below all real
// codepoints), by result text otherwise. Ties fall through to result, then
// to the serialized sequence, so the order is deterministic.
func (d Descriptor) Less(other Descriptor) bool {
	if (d.HasCodepoint() || other.HasCodepoint()) && d.Codepoint != other.Codepoint {
		return d.Codepoint < other.Codepoint
	}
	if d.Result != other.Result {
		return d.Result < other.Result
	}
	return d.Sequence.String() < other.Sequence.String()
}

func sortDescriptors(ds []Descriptor) {
	sort.Slice(ds, func(i, j int) bool {
		return ds[i].Less(ds[j])
	})
}
