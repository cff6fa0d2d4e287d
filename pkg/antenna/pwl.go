package antenna

import "github.com/matzehuels/antcheck/pkg/design"

// PWLFactor evaluates a piecewise-linear curve at ref.
//
// An empty curve yields def and a single breakpoint yields its ratio. Inside
// an interval [index_i, index_i+1) the value is interpolated; past the last
// breakpoint (or before the first) the slope of the last interval is used.
func PWLFactor(curve design.PWL, ref, def float64) float64 {
	switch len(curve) {
	case 0:
		return def
	case 1:
		return curve[0].Ratio
	}

	prev := curve[0]
	slope := 1.0
	for _, bp := range curve[1:] {
		slope = (bp.Ratio - prev.Ratio) / (bp.Index - prev.Index)
		if ref >= prev.Index && ref < bp.Index {
			return slope*(ref-prev.Index) + prev.Ratio
		}
		prev = bp
	}
	return slope*(ref-prev.Index) + prev.Ratio
}
