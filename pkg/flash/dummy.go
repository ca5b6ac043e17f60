package flash

import (
	"fmt"
	"os"
	"strconv"

	"github.com/firmwared/go-fdtflash/pkg/layout"
)

// Dummy emulates a flash chip in memory. With an image= parameter the
// chip contents are loaded from that file, and writes are flushed back
// to it on Close, so contents persist across invocations.
type Dummy struct {
	chip      Chip
	buf       []byte
	imagePath string
	dirty     bool
	closed    bool
}

func openDummy(s Spec) (*Dummy, error) {
	name := s.Param("emulate")
	if name == "" {
		return nil, &SpecError{Spec: s.Programmer, Reason: "dummy programmer needs an emulate= parameter"}
	}

	var chip Chip
	if name == VariableSize {
		sizeStr := s.Param("size")
		if sizeStr == "" {
			return nil, &SpecError{Spec: s.Programmer, Reason: "emulate=VARIABLE_SIZE needs a size= parameter"}
		}
		size, err := strconv.ParseUint(sizeStr, 0, 32)
		if err != nil || size == 0 {
			return nil, &SpecError{Spec: s.Programmer, Reason: "bad size= parameter " + sizeStr}
		}
		chip = Chip{Vendor: "Generic", Name: VariableSize, Size: uint32(size), PageSize: 256}
	} else {
		var err error
		chip, err = LookupChip(name)
		if err != nil {
			return nil, err
		}
	}

	d := &Dummy{
		chip:      chip,
		buf:       make([]byte, chip.Size),
		imagePath: s.Param("image"),
	}
	for i := range d.buf {
		d.buf[i] = layout.EraseValue
	}

	if d.imagePath != "" {
		data, err := os.ReadFile(d.imagePath)
		switch {
		case os.IsNotExist(err):
			// A fresh chip. The file is created on Close.
			d.dirty = true
		case err != nil:
			return nil, err
		case len(data) != int(chip.Size):
			return nil, fmt.Errorf("image %s is %#x bytes but chip %s is %#x bytes",
				d.imagePath, len(data), chip.Name, chip.Size)
		default:
			copy(d.buf, data)
		}
	}
	return d, nil
}

// Chip returns the emulated part.
func (d *Dummy) Chip() Chip { return d.chip }

// Size returns the chip capacity in bytes.
func (d *Dummy) Size() uint32 { return d.chip.Size }

// ReadAt implements io.ReaderAt over the chip address space.
func (d *Dummy) ReadAt(p []byte, off int64) (int, error) {
	if err := d.check("read", p, off); err != nil {
		return 0, err
	}
	return copy(p, d.buf[off:]), nil
}

// WriteAt implements io.WriterAt over the chip address space.
func (d *Dummy) WriteAt(p []byte, off int64) (int, error) {
	if err := d.check("write", p, off); err != nil {
		return 0, err
	}
	d.dirty = true
	return copy(d.buf[off:], p), nil
}

// Erase fills the given range with value.
func (d *Dummy) Erase(off, length uint32, value byte) error {
	if int64(off)+int64(length) > int64(d.chip.Size) {
		return &RangeError{Op: "erase", Offset: int64(off), Length: int(length), Size: d.chip.Size}
	}
	for i := off; i < off+length; i++ {
		d.buf[i] = value
	}
	d.dirty = true
	return nil
}

// Close flushes modified contents back to the image file, if any.
func (d *Dummy) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.imagePath == "" || !d.dirty {
		return nil
	}
	return os.WriteFile(d.imagePath, d.buf, 0644)
}

func (d *Dummy) check(op string, p []byte, off int64) error {
	if off < 0 || off+int64(len(p)) > int64(d.chip.Size) {
		return &RangeError{Op: op, Offset: off, Length: len(p), Size: d.chip.Size}
	}
	return nil
}
