package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlRegion struct {
	Name      string `yaml:"name"`
	Offset    uint32 `yaml:"offset"`
	Length    uint32 `yaml:"length"`
	ReadOnly  bool   `yaml:"read-only"`
	Type      string `yaml:"type"`
	WipeValue *uint8 `yaml:"wipe-value"`
}

type yamlLayout struct {
	Regions []yamlRegion `yaml:"regions"`
}

// ReadFile loads a static layout from a YAML file. Region names are
// normalized the same way FDTMAP labels are, and must be unique after
// normalization.
func ReadFile(path string) (*FlashMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yamlLayout
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidLayoutError{Path: path, Reason: err.Error()}
	}
	if len(doc.Regions) == 0 {
		return nil, &InvalidLayoutError{Path: path, Reason: "no regions"}
	}
	if len(doc.Regions) > MaxRegions {
		return nil, &InvalidLayoutError{
			Path:   path,
			Reason: fmt.Sprintf("too many regions (%d, max %d)", len(doc.Regions), MaxRegions),
		}
	}

	m := &FlashMap{Regions: make([]Region, 0, len(doc.Regions))}
	seen := make(map[string]bool)
	for _, yr := range doc.Regions {
		if yr.Name == "" {
			return nil, &InvalidLayoutError{Path: path, Reason: "region with empty name"}
		}
		name := NormalizeName(yr.Name)
		if seen[name] {
			return nil, &InvalidLayoutError{
				Path:   path,
				Reason: fmt.Sprintf("duplicate region name %q", name),
			}
		}
		seen[name] = true

		r := Region{
			Name:      name,
			Offset:    yr.Offset,
			Length:    yr.Length,
			ReadOnly:  yr.ReadOnly,
			Type:      yr.Type,
			WipeValue: EraseValue,
		}
		if yr.WipeValue != nil {
			r.WipeValue = *yr.WipeValue
		}
		m.Regions = append(m.Regions, r)
	}
	return m, nil
}

// CheckBounds verifies that every region fits within a chip of the given
// size.
func (m *FlashMap) CheckBounds(chipSize uint32) error {
	for _, r := range m.Regions {
		if r.Length > chipSize || r.Offset > chipSize-r.Length {
			return fmt.Errorf("region %s (%#x+%#x) exceeds chip size %#x",
				r.Name, r.Offset, r.Length, chipSize)
		}
	}
	return nil
}
