package layout

import (
	"errors"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"ro-onestop", "RO_ONESTOP"},
		{"bct", "BCT"},
		{"shared-dev-cfg", "SHARED_DEV_CFG"},
		{"ro-onestop@10000", "RO_ONESTOP"},
		{"rw-a-onestop@200000", "RW_A_ONESTOP"},
		{"fdtmap", "FDTMAP"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := NormalizeName(tt.label); got != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.label, got, tt.expected)
			}
		})
	}
}

func testMap() *FlashMap {
	return &FlashMap{Regions: []Region{
		{Name: "BCT", Offset: 0, Length: 0x10000, ReadOnly: true},
		{Name: "RO_ONESTOP", Offset: 0x10000, Length: 0x80000, ReadOnly: true},
		{Name: "READONLY", Offset: 0, Length: 0x100000, ReadOnly: true},
		{Name: "READWRITE", Offset: 0x100000, Length: 0x100000},
		{Name: "EMPTY", Offset: 0x200000, Length: 0},
	}}
}

func TestFind(t *testing.T) {
	m := testMap()

	r, err := m.Find("RO_ONESTOP")
	if err != nil {
		t.Fatalf("Find(RO_ONESTOP) failed: %v", err)
	}
	if r.Offset != 0x10000 || r.Length != 0x80000 {
		t.Errorf("Find(RO_ONESTOP) = (%#x, %#x), want (0x10000, 0x80000)", r.Offset, r.Length)
	}

	_, err = m.Find("MISSING")
	var nf *LabelNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Find(MISSING) error = %v, want LabelNotFoundError", err)
	}
	if nf.Label != "MISSING" {
		t.Errorf("error label = %q, want MISSING", nf.Label)
	}

	// Lookup is case sensitive against normalized names.
	if _, err := m.Find("ro-onestop"); err == nil {
		t.Error("Find(ro-onestop) should fail, names are normalized")
	}
}

func TestEnd(t *testing.T) {
	r := Region{Offset: 0x10000, Length: 0x80000}
	if got := r.End(); got != 0x8ffff {
		t.Errorf("End() = %#x, want 0x8ffff", got)
	}
	empty := Region{Offset: 0x200000}
	if got := empty.End(); got != 0x200000 {
		t.Errorf("empty End() = %#x, want 0x200000", got)
	}
}

func TestOverlaps(t *testing.T) {
	m := testMap()

	tests := []struct {
		name     string
		labels   []string
		expected bool
	}{
		{"disjoint", []string{"BCT", "RO_ONESTOP"}, false},
		{"contained", []string{"READONLY", "RO_ONESTOP"}, true},
		{"adjacent", []string{"READONLY", "READWRITE"}, false},
		{"single", []string{"READONLY"}, false},
		{"zero length ignored", []string{"EMPTY", "READWRITE"}, false},
		{"unknown label ignored", []string{"BCT", "MISSING"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Overlaps(tt.labels...); got != tt.expected {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.labels, got, tt.expected)
			}
		})
	}
}
