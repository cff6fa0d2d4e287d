package antenna

import (
	"testing"

	"github.com/matzehuels/antcheck/pkg/design"
)

func TestPWLFactor(t *testing.T) {
	twoPoint := design.PWL{{Index: 0, Ratio: 1.0}, {Index: 100, Ratio: 2.0}}
	threePoint := design.PWL{{Index: 0, Ratio: 400}, {Index: 10, Ratio: 800}, {Index: 20, Ratio: 1000}}

	tests := []struct {
		name  string
		curve design.PWL
		ref   float64
		def   float64
		want  float64
	}{
		{"midpoint", twoPoint, 50, 0, 1.5},
		{"first breakpoint", twoPoint, 0, 0, 1.0},
		{"last breakpoint", twoPoint, 100, 0, 2.0},
		{"extrapolated", twoPoint, 150, 0, 2.5},
		{"below range uses last slope", twoPoint, -100, 0, 0.0},
		{"single breakpoint", design.PWL{{Index: 0, Ratio: 1.0}}, 12345, 0, 1.0},
		{"empty returns default", nil, 50, 7, 7},
		{"second interval", threePoint, 15, 0, 900},
		{"past three points", threePoint, 30, 0, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PWLFactor(tt.curve, tt.ref, tt.def); !approx(got, tt.want) {
				t.Errorf("PWLFactor(%v, %v, %v) = %v, want %v", tt.curve, tt.ref, tt.def, got, tt.want)
			}
		})
	}
}
