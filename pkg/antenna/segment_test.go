package antenna

import (
	"slices"
	"testing"

	"github.com/matzehuels/antcheck/pkg/design"
)

func TestWireroots(t *testing.T) {
	f := newFixture()
	g, n := f.twoLevelNet(t, f.gate("u1", 1))

	got := Wireroots(g)
	want := []design.NodeID{n[0], n[2]}
	if !slices.Equal(got, want) {
		t.Errorf("Wireroots() = %v, want %v", got, want)
	}
}

func TestFindSegmentRoot(t *testing.T) {
	f := newFixture()
	g, n := f.twoLevelNet(t, f.gate("u1", 1))

	tests := []struct {
		name  string
		id    design.NodeID
		level int
		want  design.NodeID
	}{
		{"root itself", n[0], 1, n[0]},
		{"segment end", n[1], 1, n[0]},
		{"via target", n[2], 2, n[2]},
		{"upper segment end", n[3], 2, n[2]},
		{"climb through lower run", n[3], 1, n[0]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindSegmentRoot(g, tt.id, tt.level); got != tt.want {
				t.Errorf("FindSegmentRoot(%d, %d) = %d, want %d", tt.id, tt.level, got, tt.want)
			}
		})
	}
}

func TestFindSegmentRootStopsAtHigherVia(t *testing.T) {
	// M2 driver dropping onto an M1 run: n0 (M2) --via--> n1 (M1) --seg--> n2 (M1)
	f := newFixture()
	b := newWire(t)
	n0 := b.node(0, 0, f.m2, nil)
	n1 := b.node(0, 0, f.m1, nil)
	n2 := b.node(1000, 0, f.m1, nil)
	b.via(n0, n1, f.via12)
	b.seg(n1, n2)

	if got := FindSegmentRoot(b.g, n2, 1); got != n1 {
		t.Errorf("FindSegmentRoot(n2, 1) = %d, want %d", got, n1)
	}
	if got := Wireroots(b.g); !slices.Equal(got, []design.NodeID{n0, n1}) {
		t.Errorf("Wireroots() = %v, want [%d %d]", got, n0, n1)
	}
}

func TestFindSegmentStart(t *testing.T) {
	f := newFixture()
	gate := f.gate("u1", 1)
	b := newWire(t)
	n0 := b.node(0, 0, f.m1, nil)
	n1 := b.node(1000, 0, f.m1, gate)
	n2 := b.node(2000, 0, f.m1, nil)
	n3 := b.node(2000, 0, f.m2, nil)
	n4 := b.node(2000, 1000, f.m2, nil)
	b.seg(n0, n1)
	b.seg(n1, n2)
	b.via(n2, n3, f.via12)
	b.seg(n3, n4)

	tests := []struct {
		id   design.NodeID
		want design.NodeID
	}{
		{n0, n0},
		{n1, n1},
		{n2, n1},
		{n3, n3},
		{n4, n3},
	}
	for _, tt := range tests {
		if got := FindSegmentStart(b.g, tt.id); got != tt.want {
			t.Errorf("FindSegmentStart(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestIsSegmentRoot(t *testing.T) {
	f := newFixture()
	g, n := f.twoLevelNet(t, f.gate("u1", 1))

	tests := []struct {
		id    design.NodeID
		level int
		want  bool
	}{
		{n[0], 1, true},
		{n[1], 1, false},
		{n[2], 2, true},
		{n[3], 2, false},
	}
	for _, tt := range tests {
		if got := IsSegmentRoot(g, tt.id, tt.level); got != tt.want {
			t.Errorf("IsSegmentRoot(%d, %d) = %v, want %v", tt.id, tt.level, got, tt.want)
		}
	}
}
