package flash

import "fmt"

// SpecError indicates an unusable programmer specification.
type SpecError struct {
	Spec   string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("bad programmer spec %q: %s", e.Spec, e.Reason)
}

// RangeError indicates an access outside the chip's address space.
type RangeError struct {
	Op     string
	Offset int64
	Length int
	Size   uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s of %#x bytes at %#x outside chip of size %#x",
		e.Op, e.Length, e.Offset, e.Size)
}
