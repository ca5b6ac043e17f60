package flash

import (
	"fmt"
	"sort"
)

// Chip describes a flash part.
type Chip struct {
	Vendor string
	Name   string

	// Size is the capacity in bytes, PageSize the write granularity.
	Size     uint32
	PageSize uint32
}

// VariableSize is the emulation name for a chip whose capacity comes
// from the size= programmer parameter.
const VariableSize = "VARIABLE_SIZE"

var chips = map[string]Chip{
	"M25P10":      {Vendor: "ST", Name: "M25P10", Size: 128 * 1024, PageSize: 256},
	"SST25VF040":  {Vendor: "SST", Name: "SST25VF040", Size: 512 * 1024, PageSize: 256},
	"SST25VF032B": {Vendor: "SST", Name: "SST25VF032B", Size: 4 * 1024 * 1024, PageSize: 256},
}

// LookupChip resolves an emulation name to a chip description.
func LookupChip(name string) (Chip, error) {
	c, ok := chips[name]
	if !ok {
		names := make([]string, 0, len(chips)+1)
		for n := range chips {
			names = append(names, n)
		}
		names = append(names, VariableSize)
		sort.Strings(names)
		return Chip{}, fmt.Errorf("unknown chip %q (supported: %v)", name, names)
	}
	return c, nil
}
