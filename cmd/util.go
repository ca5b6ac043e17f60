package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/schollz/progressbar/v3"

	"github.com/firmwared/go-fdtflash/pkg/flash"
)

// I/O chunk size for progress reporting.
const chunkSize = 4096

func mustParseSize(str string) uint32 {
	v, err := strconv.ParseUint(str, 0, 32)
	if err != nil {
		fmt.Printf("bad size or offset %q\n", str)
		os.Exit(1)
	}
	return uint32(v)
}

// readChip reads the entire chip contents.
func readChip(dev flash.Device) ([]byte, error) {
	size := dev.Size()
	buf := make([]byte, size)
	bar := progressbar.DefaultBytes(int64(size), "reading")
	for off := uint32(0); off < size; off += chunkSize {
		n := min(chunkSize, size-off)
		if _, err := dev.ReadAt(buf[off:off+n], int64(off)); err != nil {
			return nil, err
		}
		bar.Add(int(n))
	}
	return buf, nil
}

// writeRange writes data to the chip starting at off, page by page.
func writeRange(dev flash.Device, off uint32, data []byte) error {
	page := dev.Chip().PageSize
	if page == 0 {
		page = chunkSize
	}
	bar := progressbar.DefaultBytes(int64(len(data)), "writing")
	for done := uint32(0); done < uint32(len(data)); done += page {
		n := min(page, uint32(len(data))-done)
		if _, err := dev.WriteAt(data[done:done+n], int64(off+done)); err != nil {
			return err
		}
		bar.Add(int(n))
	}
	return nil
}

func min(x, y uint32) uint32 {
	if x < y {
		return x
	}
	return y
}
