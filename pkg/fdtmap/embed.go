package fdtmap

import "fmt"

// Embed splices a header and blob into an image at the given position.
// The image is modified in place.
func Embed(image []byte, pos int, blob []byte) error {
	if pos < 0 || pos+HeaderLen+len(blob) > len(image) {
		return fmt.Errorf("fdtmap: blob of %#x bytes does not fit at offset %#x in %#x-byte image",
			len(blob), pos, len(image))
	}
	hdr, err := NewHeader(blob).MarshalBinary()
	if err != nil {
		return err
	}
	copy(image[pos:], hdr)
	copy(image[pos+HeaderLen:], blob)
	return nil
}

// PlantDecoys scatters near-miss flashmap candidates through the image at
// the given stride. Each stride gets two: a block with a correct header
// but truncated blob contents, and a block whose header CRC is off by
// one. Both carry the real signature, so a locator must reject them on
// validation and keep scanning.
func PlantDecoys(image, blob []byte, stride int) {
	if stride <= 0 || len(blob) <= 4 {
		return
	}
	truncated := append([]byte{}, blob[:len(blob)-4]...)
	truncated = append(truncated, []byte("junk")...)
	hdr, _ := NewHeader(blob).MarshalBinary()

	shifted := blob
	if len(blob) > 0x100 {
		shifted = blob[0x100:]
	}
	badHdr := NewHeader(shifted)
	badHdr.CRC++
	bad, _ := badHdr.MarshalBinary()

	for pos := 0; pos < len(image); pos += stride {
		splice(image, pos, hdr, truncated)
		splice(image, pos+stride/2, bad, shifted)
	}
}

func splice(image []byte, pos int, chunks ...[]byte) {
	for _, c := range chunks {
		if pos >= len(image) {
			return
		}
		pos += copy(image[pos:], c)
	}
}
