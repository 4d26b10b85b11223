package validation

import (
	"strings"
	"testing"
)

type buildSection struct {
	Mode  string   `validate:"required,oneof=descendants ancestors"`
	Roots []string `validate:"required,min=1,dive,termid"`
	Depth int      `validate:"min=0"`
}

type testProfile struct {
	Name  string `validate:"required"`
	Build buildSection
}

func TestValidateStruct(t *testing.T) {
	valid := testProfile{
		Name:  "liver",
		Build: buildSection{Mode: "descendants", Roots: []string{"FF:0000001"}},
	}

	tests := []struct {
		name        string
		mutate      func(p *testProfile)
		expectError bool
		errorField  string
	}{
		{"valid profile", func(p *testProfile) {}, false, ""},
		{"missing name", func(p *testProfile) { p.Name = "" }, true, "Name"},
		{"unknown mode", func(p *testProfile) { p.Build.Mode = "sideways" }, true, "Build.Mode"},
		{"no roots", func(p *testProfile) { p.Build.Roots = nil }, true, "Build.Roots"},
		{"bad root", func(p *testProfile) { p.Build.Roots = []string{"FF:0000001", "liver"} }, true, "Build.Roots[1]"},
		{"negative depth", func(p *testProfile) { p.Build.Depth = -1 }, true, "Build.Depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p.Build.Roots = append([]string(nil), valid.Build.Roots...)
			tt.mutate(&p)

			err := ValidateStruct(&p)
			if tt.expectError && err == nil {
				t.Fatalf("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if tt.expectError && !strings.HasPrefix(err.Error(), tt.errorField+":") {
				t.Errorf("Expected error for field %s, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestValidateStruct_Nil(t *testing.T) {
	if err := ValidateStruct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestValidateTermID(t *testing.T) {
	tests := []struct {
		id          string
		expectError bool
	}{
		{"FF:0000001", false},
		{"FF:10001-101A1", false},
		{"UBERON:0002107", false},
		{"CL_ext:0000236", false},
		{"", true},
		{"0000001", true},
		{"FF:", true},
		{":0000001", true},
		{"FF:00 01", true},
		{"FF:" + strings.Repeat("0", MaxTermIDLength), true},
	}

	for _, tt := range tests {
		err := ValidateTermID(tt.id)
		if tt.expectError && err == nil {
			t.Errorf("Expected error for %q", tt.id)
		}
		if !tt.expectError && err != nil {
			t.Errorf("Unexpected error for %q: %v", tt.id, err)
		}
	}
}
