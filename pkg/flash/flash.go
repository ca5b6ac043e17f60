// Package flash provides access to flash chips through programmer
// backends. The only backend is the dummy programmer, which emulates a
// chip in memory and can persist its contents to an image file.
package flash

import "io"

// Device is a connected flash chip. Offsets are absolute chip addresses.
type Device interface {
	io.ReaderAt
	io.WriterAt

	// Chip describes the connected or emulated part.
	Chip() Chip

	// Size returns the chip capacity in bytes.
	Size() uint32

	// Erase fills a range with the given value.
	Erase(off, length uint32, value byte) error

	// Close releases the device, flushing any pending writes.
	Close() error
}

// Open connects to the programmer described by spec, for example
// "dummy:emulate=SST25VF032B,image=flash.bin".
func Open(spec string) (Device, error) {
	s, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	switch s.Programmer {
	case "dummy":
		return openDummy(s)
	default:
		return nil, &SpecError{Spec: spec, Reason: "unknown programmer " + s.Programmer}
	}
}
