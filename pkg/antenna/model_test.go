package antenna

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/antcheck/pkg/design"
)

func discard() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func TestParseGatePlusDiff(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"ANTENNAGATEPLUSDIFF 2.0 ;", 2.0, false},
		{"A 1.25 B", 1.2, false},
		{"ANTENNAGATEPLUSDIFF 10.5 ;", 10, false},
		{"nospace", 0, true},
		{"ANTENNAGATEPLUSDIFF x ;", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseGatePlusDiff(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGatePlusDiff(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !approx(got, tt.want) {
				t.Errorf("parseGatePlusDiff(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{" 2.", 2, false},
		{"3.5x", 3.5, false},
		{"-1e2;", -100, false},
		{"1e", 1, false},
		{".5", 0.5, false},
		{"", 0, true},
		{" .", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLeadingFloat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLeadingFloat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !approx(got, tt.want) {
			t.Errorf("parseLeadingFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuildModel(t *testing.T) {
	tests := []struct {
		name string
		rule *design.AntennaRule
		want Model
	}{
		{
			name: "no rule",
			rule: nil,
			want: neutralModel,
		},
		{
			name: "plain factors",
			rule: &design.AntennaRule{AreaFactor: 2, SideAreaFactor: 3, AreaMinusDiffFactor: 0.5},
			want: Model{
				MetalFactor: 2, DiffMetalFactor: 2,
				CutFactor: 2, DiffCutFactor: 2,
				SideMetalFactor: 3, DiffSideMetalFactor: 3,
				MinusDiffFactor:       0.5,
				DiffMetalReduceFactor: 1,
			},
		},
		{
			name: "diff use only",
			rule: &design.AntennaRule{
				AreaFactor: 2, AreaFactorDiffUseOnly: true,
				SideAreaFactor: 3, SideAreaFactorDiffUseOnly: true,
			},
			want: Model{
				MetalFactor: 1, DiffMetalFactor: 2,
				CutFactor: 1, DiffCutFactor: 2,
				SideMetalFactor: 1, DiffSideMetalFactor: 3,
				DiffMetalReduceFactor: 1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &design.Layer{Name: "M1", Type: design.LayerRouting, RoutingLevel: 1, Rule: tt.rule}
			if got := buildModel(l, discard()); got != tt.want {
				t.Errorf("buildModel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildModelPlusDiff(t *testing.T) {
	l := &design.Layer{
		Name: "M1", Type: design.LayerRouting, RoutingLevel: 1, Rule: unitRule(),
		Properties: map[string]string{design.GatePlusDiffProperty: "ANTENNAGATEPLUSDIFF 2.0 ;"},
	}
	if got := buildModel(l, discard()).PlusDiffFactor; got != 2 {
		t.Errorf("PlusDiffFactor = %v, want 2", got)
	}

	var buf bytes.Buffer
	l.Properties[design.GatePlusDiffProperty] = "garbage"
	m := buildModel(l, log.New(&buf))
	if m.PlusDiffFactor != 0 {
		t.Errorf("PlusDiffFactor = %v, want 0 for a malformed value", m.PlusDiffFactor)
	}
	if !strings.Contains(buf.String(), "malformed gate-plus-diff property") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestModelTableFor(t *testing.T) {
	f := newFixture()
	f.m1.Rule = &design.AntennaRule{AreaFactor: 4, SideAreaFactor: 1}
	table := BuildModelTable(f.tech, discard())

	if got := table.For(f.m1).MetalFactor; got != 4 {
		t.Errorf("For(M1).MetalFactor = %v, want 4", got)
	}
	if got := table.For(f.m2); got != neutralModel {
		t.Errorf("For(M2) = %+v, want neutral", got)
	}
	if got := table.For(&design.Layer{Name: "other"}); got != neutralModel {
		t.Errorf("For(unknown) = %+v, want neutral", got)
	}
	if got := table.For(nil); got != neutralModel {
		t.Errorf("For(nil) = %+v, want neutral", got)
	}
}
