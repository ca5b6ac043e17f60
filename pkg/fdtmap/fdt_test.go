package fdtmap_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/u-root/u-root/pkg/dt"
)

// Fixture constants: a 4 MiB chip with the flashmap region at 0xc8000
// and a writable-after-confirmation boot blob at 0x10000.
const (
	flashSize = 4 * 1024 * 1024
	partStart = 0x10000
	partSize  = 0x80000
	mapPos    = 0xc8000
	mapRegion = 0x8000
)

func prop(name string, value []byte) dt.Property {
	return dt.Property{Name: name, Value: value}
}

func propString(name, s string) dt.Property {
	return prop(name, append([]byte(s), 0))
}

func propU32(name string, vs ...uint32) dt.Property {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(b[i*4:], v)
	}
	return prop(name, b)
}

func propEmpty(name string) dt.Property {
	return prop(name, nil)
}

func regionNode(name, label string, off, size uint32, extra ...dt.Property) *dt.Node {
	n := &dt.Node{Name: name, Properties: []dt.Property{
		propString("label", label),
		propU32("reg", off, size),
	}}
	n.Properties = append(n.Properties, extra...)
	return n
}

func serialize(t *testing.T, root *dt.Node) []byte {
	t.Helper()
	fdt := &dt.FDT{
		Header: dt.Header{
			Magic:           0xd00dfeed,
			Version:         17,
			LastCompVersion: 16,
		},
		RootNode: root,
	}
	var buf bytes.Buffer
	if _, err := fdt.Write(&buf); err != nil {
		t.Fatalf("serializing fixture FDT: %v", err)
	}
	return buf.Bytes()
}

// buildTestFDT compiles the fixture layout into a device-tree blob. The
// flashmap region itself is placed at the given position so fixtures can
// exercise unaligned placement.
func buildTestFDT(t *testing.T, fdtmapPos uint32) []byte {
	t.Helper()
	flash := &dt.Node{
		Name: "flash@0",
		Properties: []dt.Property{
			propU32("#address-cells", 1),
			propU32("#size-cells", 1),
			prop("compatible", []byte("winbond,W25Q32BVSSIG\x00cfi-flash\x00chromeos,flashmap\x00")),
			propU32("reg", 0, flashSize),
		},
		Children: []*dt.Node{
			regionNode("bct@0", "bct", 0, 0x10000, propEmpty("read-only")),
			regionNode("ro-onestop@10000", "ro-onestop", partStart, partSize,
				propEmpty("read-only"), propString("type", "blob boot")),
			regionNode("ro-gbb@90000", "gbb", 0x90000, 0x20000,
				propEmpty("read-only"), propString("type", "blob gbb")),
			regionNode("ro-vpd@c0000", "ro-vpd", 0xc0000, 0x8000,
				propEmpty("read-only"), propString("type", "wiped"),
				prop("wipe-value", []byte{0xff, 0xff, 0xff, 0xff})),
			regionNode("fdtmap", "ro-fdtmap", fdtmapPos, mapRegion,
				propEmpty("read-only"), propString("type", "fdtmap")),
			regionNode("readwrite@100000", "readwrite", 0x100000, 0x100000),
			regionNode("shared-dev-cfg@180000", "shared-dev-cfg", 0x180000, 0x40000,
				propString("type", "wiped"), propString("wipe-value", "")),
			regionNode("rw-a-onestop@200000", "rw-a-onestop", 0x200000, 0x80000,
				propString("type", "blob boot")),
		},
	}
	root := &dt.Node{
		Properties: []dt.Property{
			propU32("#address-cells", 1),
			propU32("#size-cells", 1),
			propString("model", "NVIDIA Seaboard"),
			prop("compatible", []byte("nvidia,seaboard\x00nvidia,tegra250\x00")),
		},
		Children: []*dt.Node{flash},
	}
	return serialize(t, root)
}
