package flash

import (
	"errors"
	"testing"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		programmer string
		params     map[string]string
		wantErr    bool
	}{
		{
			name:       "bare name",
			spec:       "dummy",
			programmer: "dummy",
			params:     map[string]string{},
		},
		{
			name:       "trailing colon",
			spec:       "dummy:",
			programmer: "dummy",
			params:     map[string]string{},
		},
		{
			name:       "single param",
			spec:       "dummy:emulate=SST25VF032B",
			programmer: "dummy",
			params:     map[string]string{"emulate": "SST25VF032B"},
		},
		{
			name:       "multiple params",
			spec:       "dummy:emulate=SST25VF032B,image=flash.bin",
			programmer: "dummy",
			params:     map[string]string{"emulate": "SST25VF032B", "image": "flash.bin"},
		},
		{
			name:       "empty value",
			spec:       "dummy:image=",
			programmer: "dummy",
			params:     map[string]string{"image": ""},
		},
		{
			name:    "empty name",
			spec:    ":emulate=X",
			wantErr: true,
		},
		{
			name:    "missing equals",
			spec:    "dummy:emulate",
			wantErr: true,
		},
		{
			name:    "duplicate key",
			spec:    "dummy:size=1,size=2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSpec(tt.spec)
			if tt.wantErr {
				var se *SpecError
				if !errors.As(err, &se) {
					t.Fatalf("ParseSpec(%q) error = %v, want SpecError", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpec(%q) failed: %v", tt.spec, err)
			}
			if s.Programmer != tt.programmer {
				t.Errorf("programmer = %q, want %q", s.Programmer, tt.programmer)
			}
			if len(s.Params) != len(tt.params) {
				t.Errorf("params = %v, want %v", s.Params, tt.params)
			}
			for k, v := range tt.params {
				if got := s.Param(k); got != v {
					t.Errorf("param %s = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestLookupChip(t *testing.T) {
	c, err := LookupChip("SST25VF032B")
	if err != nil {
		t.Fatalf("LookupChip failed: %v", err)
	}
	if c.Size != 4*1024*1024 {
		t.Errorf("SST25VF032B size = %#x, want 4 MiB", c.Size)
	}

	if _, err := LookupChip("W25Q128"); err == nil {
		t.Error("LookupChip of unsupported chip should fail")
	}
}
