// Package fdtmap locates and parses FDTMAP structures: flash partition
// layouts described by a device-tree blob embedded somewhere in a raw
// flash image behind a small checksummed header.
//
// The header is 16 bytes, little-endian: an 8-byte signature "__FDTM__",
// the blob size as a 32-bit value, and the CRC-32 of the blob. The blob
// itself immediately follows the header.
package fdtmap

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/firmwared/go-fdtflash/pkg/layout"
)

// Signature marks a candidate FDTMAP header in a flash image.
var Signature = []byte("__FDTM__")

// HeaderLen is the encoded size of a Header.
const HeaderLen = 16

// minFDTSize is the size of a flattened device tree header, the smallest
// blob that could possibly parse.
const minFDTSize = 40

// Debugf, when set, receives progress messages from the locator. Decoy
// rejections are only visible through it.
var Debugf func(format string, args ...interface{})

func debugf(format string, args ...interface{}) {
	if Debugf != nil {
		Debugf(format, args...)
	}
}

// Header is the fixed preamble in front of an embedded flashmap blob.
type Header struct {
	Sig  [8]byte
	Size uint32
	CRC  uint32
}

// NewHeader builds a valid header for the given blob.
func NewHeader(blob []byte) Header {
	var h Header
	copy(h.Sig[:], Signature)
	h.Size = uint32(len(blob))
	h.CRC = crc32.ChecksumIEEE(blob)
	return h
}

// ParseHeader decodes a header from the start of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, ErrShortHeader
	}
	var h Header
	copy(h.Sig[:], b[:8])
	h.Size = binary.LittleEndian.Uint32(b[8:12])
	h.CRC = binary.LittleEndian.Uint32(b[12:16])
	return h, nil
}

// MarshalBinary encodes the header in its 16-byte wire format.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderLen)
	copy(b[:8], h.Sig[:])
	binary.LittleEndian.PutUint32(b[8:12], h.Size)
	binary.LittleEndian.PutUint32(b[12:16], h.CRC)
	return b, nil
}

// Map is a located and validated flashmap.
type Map struct {
	// Offset of the header within the image it was found in.
	Offset int

	// Size and CRC from the validated header.
	Size uint32
	CRC  uint32

	// Layout holds the regions described by the blob.
	Layout *layout.FlashMap
}

// Locate scans an entire flash image for a valid FDTMAP and parses it.
//
// Every byte offset where Signature occurs is treated as a candidate, so
// a map at an unaligned position is still found. A candidate is rejected,
// and the scan continues, when its declared size cannot fit in the image,
// when the blob's flattened-tree size field disagrees with the header, or
// when the CRC-32 over the declared size does not match. The first
// candidate in ascending offset order passing every check wins.
//
// Locate never modifies image and keeps no state between calls, so it may
// be used concurrently over distinct buffers.
func Locate(image []byte) (*Map, error) {
	candidates := 0
	for off := 0; ; {
		i := bytes.Index(image[off:], Signature)
		if i < 0 {
			break
		}
		pos := off + i
		off = pos + 1

		candidates++
		if len(image)-pos < HeaderLen {
			debugf("fdtmap: candidate at %#x truncates the header, rejecting", pos)
			break
		}
		hdr, err := ParseHeader(image[pos:])
		if err != nil {
			break
		}
		debugf("fdtmap: found possible fdtmap at offset %#x, size %#x", pos, hdr.Size)

		start := pos + HeaderLen
		remain := len(image) - start
		if hdr.Size < minFDTSize || int64(hdr.Size) > int64(remain) {
			debugf("fdtmap: implausible size %#x at %#x (%#x bytes remain), rejecting",
				hdr.Size, pos, remain)
			continue
		}
		blob := image[start : start+int(hdr.Size)]

		// The flattened tree carries its own total size at blob[4:8].
		// A mismatch means the declared size does not describe this
		// blob, so checking the CRC would be meaningless.
		if total := binary.BigEndian.Uint32(blob[4:8]); total != hdr.Size {
			debugf("fdtmap: FDT size %#x does not match header size %#x at %#x, rejecting",
				total, hdr.Size, pos)
			continue
		}

		if crc := crc32.ChecksumIEEE(blob); crc != hdr.CRC {
			debugf("fdtmap: CRC32 %#08x does not match expected %#08x at %#x, rejecting",
				crc, hdr.CRC, pos)
			continue
		}

		fm, err := scanFlashmap(blob)
		if err != nil {
			return nil, err
		}
		debugf("fdtmap: validated flashmap at %#x with %d regions", pos, len(fm.Regions))
		return &Map{Offset: pos, Size: hdr.Size, CRC: hdr.CRC, Layout: fm}, nil
	}

	if candidates == 0 {
		return nil, ErrSignatureNotFound
	}
	return nil, &NotFoundError{Candidates: candidates}
}
