// Package antenna checks process antenna rules on routed nets.
//
// # Overview
//
// While a chip is fabricated, metal that is connected to a transistor gate
// but not yet to any diffusion collects charge from the plasma and can
// break the gate oxide. Foundries bound this with antenna ratios: metal or
// cut area over the gate area it feeds.
//
// A [Checker] evaluates those ratios for every net of a [design.Design]:
//
//	c := antenna.New(d, antenna.WithLogger(logger))
//	res, err := c.CheckFile(ctx, "antenna.rpt", antenna.ReportOptions{})
//	fmt.Println(res.Summary.ViolatedNets)
//
// # Ratios
//
//   - PAR, PSR: partial (sidewall) area ratio of one same-level wire run,
//     measured from its wireroot
//   - CAR, CSR: cumulative ratios summed over every run on the path from a
//     wireroot to a gate
//   - via PAR and CAR: the same for the cut area of the vias leaving a run
//
// Each ratio also has a diffusion-adjusted form used when the rule gives a
// piecewise-linear limit over diffusion area (see [PWLFactor]).
//
// # Wireroots
//
// A wire graph is split into runs of one routing level. The topmost node of
// a run is its wireroot ([FindSegmentRoot], [Wireroots]). Area walks start
// at wireroots and never climb above the wireroot's level.
//
// # Verdicts
//
// Every ratio comparison yields a [RatioCheck] with a [Verdict]. A flat
// limit always takes precedence over a PWL limit; a PWL limit of zero means
// no constraint. When a record's PAR or PSR was checked against a PWL
// limit, its CAR and CSR limits are dropped.
//
// # Queries
//
// Besides the whole-design check the checker answers per-net questions:
// [Checker.MaxWireLength], [Checker.ViolatedWireLength],
// [Checker.NetViolations] (with a diode estimate) and [Checker.LongestWire].
package antenna
