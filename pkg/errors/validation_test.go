package errors

import (
	"strings"
	"testing"
)

func TestValidateNetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "net42", false},
		{"hierarchical", "u_core/u_alu/n_17", false},
		{"bus bit", "data[3]", false},
		{"escaped", `\a$b`, false},

		{"empty", "", true},
		{"too long", strings.Repeat("n", 1100), true},
		{"null byte", "n\x00et", true},
		{"control char", "n\x01et", true},
		{"space", "my net", true},
		{"tab", "my\tnet", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRoutingLevel(t *testing.T) {
	for _, level := range []int{1, 2, 9} {
		if err := ValidateRoutingLevel(level); err != nil {
			t.Errorf("ValidateRoutingLevel(%d) = %v, want nil", level, err)
		}
	}
	for _, level := range []int{0, -1} {
		err := ValidateRoutingLevel(level)
		if !Is(err, ErrCodeInvalidLevel) {
			t.Errorf("ValidateRoutingLevel(%d) = %v, want %s", level, err, ErrCodeInvalidLevel)
		}
	}
}

func TestValidateCellName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"cell", "sky130_fd_sc_hd__diode_2", false},
		{"pin", "DIODE", false},
		{"bus pin", "D[0]", false},

		{"empty", "", true},
		{"leading digit", "2INV", true},
		{"slash", "a/b", true},
		{"space", "A B", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCellName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCellName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "reports/antenna.rpt", false},
		{"absolute", "/tmp/antenna.rpt", false},
		{"dotted", "../out/antenna.rpt", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "ant\x00.rpt", true},
		{"newline", "ant\n.rpt", true},
		{"directory", "reports/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
