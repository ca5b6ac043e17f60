package fdtmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/u-root/u-root/pkg/dt"

	"github.com/firmwared/go-fdtflash/pkg/layout"
)

// flashmapCompatible tags the device-tree node describing the layout.
const flashmapCompatible = "chromeos,flashmap"

// scanFlashmap parses a validated blob and collects the regions listed
// under the flashmap node. Every direct child of that node must carry a
// string "label" and a two-cell "reg" property.
func scanFlashmap(blob []byte) (*layout.FlashMap, error) {
	fdt, err := dt.ReadFDT(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("fdtmap: parsing blob: %w", err)
	}

	node := findCompatible(fdt.RootNode, flashmapCompatible)
	if node == nil {
		return nil, ErrNoFlashmapNode
	}

	m := &layout.FlashMap{}
	for _, child := range node.Children {
		if len(m.Regions) >= layout.MaxRegions {
			return nil, fmt.Errorf("fdtmap: flashmap has too many regions (max %d)", layout.MaxRegions)
		}
		r, err := readRegion(child)
		if err != nil {
			return nil, err
		}
		m.Regions = append(m.Regions, r)
	}
	return m, nil
}

func readRegion(n *dt.Node) (layout.Region, error) {
	label, ok := stringProp(n, "label")
	if !ok {
		return layout.Region{}, &RegionError{Node: n.Name, Reason: "missing 'label' property"}
	}

	reg := lookProp(n, "reg")
	if reg == nil || len(reg.Value) < 8 {
		return layout.Region{}, &RegionError{Node: n.Name, Reason: "bad or missing 'reg' property"}
	}

	r := layout.Region{
		Name:      layout.NormalizeName(label),
		Offset:    binary.BigEndian.Uint32(reg.Value[0:4]),
		Length:    binary.BigEndian.Uint32(reg.Value[4:8]),
		ReadOnly:  lookProp(n, "read-only") != nil,
		WipeValue: layout.EraseValue,
	}
	if typ, ok := stringProp(n, "type"); ok {
		r.Type = typ
	}
	if wipe := lookProp(n, "wipe-value"); wipe != nil {
		if len(wipe.Value) > 0 {
			r.WipeValue = wipe.Value[0]
		} else {
			r.WipeValue = 0
		}
	}
	return r, nil
}

// findCompatible walks the tree for the first node whose "compatible"
// string list contains want.
func findCompatible(n *dt.Node, want string) *dt.Node {
	if n == nil {
		return nil
	}
	if p := lookProp(n, "compatible"); p != nil {
		for _, s := range strings.Split(strings.TrimRight(string(p.Value), "\x00"), "\x00") {
			if s == want {
				return n
			}
		}
	}
	for _, child := range n.Children {
		if found := findCompatible(child, want); found != nil {
			return found
		}
	}
	return nil
}

func lookProp(n *dt.Node, name string) *dt.Property {
	for i := range n.Properties {
		if n.Properties[i].Name == name {
			return &n.Properties[i]
		}
	}
	return nil
}

func stringProp(n *dt.Node, name string) (string, bool) {
	p := lookProp(n, name)
	if p == nil {
		return "", false
	}
	return strings.TrimRight(string(p.Value), "\x00"), true
}
