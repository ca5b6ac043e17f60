// Package layout models the partition layout of a flash chip as a list of
// named, offset-addressed regions. A layout is normally discovered from an
// FDTMAP embedded in the flash image, but it can also be loaded from a
// YAML layout file.
package layout

import "strings"

// MaxRegions is the most regions a single layout may carry.
const MaxRegions = 64

// EraseValue is the byte an erased flash cell reads as.
const EraseValue byte = 0xff

// Region is one named range of the flash address space.
type Region struct {
	// Name is the normalized region name, e.g. "RO_ONESTOP".
	Name string

	// Offset and Length are absolute byte positions within the chip.
	Offset uint32
	Length uint32

	// ReadOnly regions require confirmation before being written.
	ReadOnly bool

	// Type is an optional tag such as "blob boot" or "fmap".
	Type string

	// WipeValue is the byte the region is filled with on erase.
	WipeValue byte
}

// End returns the inclusive end address of the region, or the offset
// itself for a zero-length region.
func (r Region) End() uint32 {
	if r.Length == 0 {
		return r.Offset
	}
	return r.Offset + r.Length - 1
}

// FlashMap is an ordered set of regions sharing one flash address space.
type FlashMap struct {
	Regions []Region
}

// Find resolves a region by its normalized name. The first region with a
// matching name wins if the layout carries duplicates.
func (m *FlashMap) Find(label string) (Region, error) {
	for _, r := range m.Regions {
		if r.Name == label {
			return r, nil
		}
	}
	return Region{}, &LabelNotFoundError{Label: label}
}

// Overlaps reports whether any two of the named regions overlap.
func (m *FlashMap) Overlaps(labels ...string) bool {
	picked := make([]Region, 0, len(labels))
	for _, l := range labels {
		r, err := m.Find(l)
		if err != nil {
			continue
		}
		picked = append(picked, r)
	}
	for i := 0; i < len(picked); i++ {
		for j := i + 1; j < len(picked); j++ {
			a, b := picked[i], picked[j]
			if a.Length == 0 || b.Length == 0 {
				continue
			}
			if a.Offset <= b.End() && b.Offset <= a.End() {
				return true
			}
		}
	}
	return false
}

// NormalizeName converts a device-tree label into the canonical region
// name: upper case, dashes become underscores, and any unit-address
// suffix ("@...") is dropped. "ro-onestop" becomes "RO_ONESTOP".
func NormalizeName(label string) string {
	if i := strings.IndexByte(label, '@'); i >= 0 {
		label = label[:i]
	}
	return strings.ToUpper(strings.ReplaceAll(label, "-", "_"))
}
