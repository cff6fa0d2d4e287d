package antenna

import "github.com/matzehuels/antcheck/pkg/design"

// Verdict is the outcome of comparing one ratio against its rule.
type Verdict int

const (
	// NotApplicable means the rule sets neither a flat nor a PWL limit.
	NotApplicable Verdict = iota
	// WithinLimit means a flat limit was set and not exceeded.
	WithinLimit
	// Violated means a flat limit was exceeded.
	Violated
	// PwlChecked means a PWL limit was consulted and not exceeded.
	PwlChecked
	// PwlViolated means a PWL limit was consulted and exceeded.
	PwlViolated
)

// IsViolation reports whether the ratio exceeded its limit.
func (v Verdict) IsViolation() bool { return v == Violated || v == PwlViolated }

// UsedPWL reports whether a PWL limit was consulted.
func (v Verdict) UsedPWL() bool { return v == PwlChecked || v == PwlViolated }

func (v Verdict) String() string {
	switch v {
	case WithinLimit:
		return "within limit"
	case Violated:
		return "violated"
	case PwlChecked:
		return "pwl checked"
	case PwlViolated:
		return "pwl violated"
	}
	return "not applicable"
}

// Quantity names the ratio a check applies to.
type Quantity int

const (
	QuantityPAR Quantity = iota
	QuantityPSR
	QuantityCAR
	QuantityCSR
)

// Label returns the ratio family printed in reports.
func (q Quantity) Label() string {
	if q == QuantityCAR || q == QuantityCSR {
		return "CAR"
	}
	return "PAR"
}

// Area returns the area kind printed after a ratio line.
func (q Quantity) Area() string {
	switch q {
	case QuantityPSR:
		return "S.Area"
	case QuantityCAR:
		return "C.Area"
	case QuantityCSR:
		return "C.S.Area"
	}
	return "Area"
}

// RatioCheck is one evaluated ratio. Limit is 0 when the verdict is
// NotApplicable.
type RatioCheck struct {
	Quantity Quantity
	Value    float64
	Limit    float64
	Verdict  Verdict
}

// Violated reports whether the check failed.
func (c RatioCheck) Violated() bool { return c.Verdict.IsViolation() }

// compare applies a flat limit if set, otherwise the PWL limit. A zero PWL
// limit means the rule does not constrain the quantity.
func compare(q Quantity, flat, flatValue, pwl, pwlValue float64) RatioCheck {
	if flat != 0 {
		c := RatioCheck{Quantity: q, Value: flatValue, Limit: flat, Verdict: WithinLimit}
		if flatValue > flat {
			c.Verdict = Violated
		}
		return c
	}
	if pwl != 0 {
		c := RatioCheck{Quantity: q, Value: pwlValue, Limit: pwl, Verdict: PwlChecked}
		if pwlValue > pwl {
			c.Verdict = PwlViolated
		}
		return c
	}
	return RatioCheck{Quantity: q, Value: pwlValue}
}

// checkWirePar evaluates PAR and PSR of a metal record against the rule of
// its wireroot layer.
func checkWirePar(ar ARRecord) (par, psr RatioCheck) {
	rule := ar.Layer.Rule
	if rule == nil {
		return RatioCheck{Quantity: QuantityPAR, Value: ar.DiffPAR},
			RatioCheck{Quantity: QuantityPSR, Value: ar.DiffPSR}
	}
	par = compare(QuantityPAR, rule.PAR, ar.PAR, PWLFactor(rule.DiffPAR, ar.DiffArea, 0), ar.DiffPAR)
	psr = compare(QuantityPSR, rule.PSR, ar.PSR, PWLFactor(rule.DiffPSR, ar.DiffArea, 0), ar.DiffPSR)
	return par, psr
}

// checkWireCar evaluates CAR and CSR of a metal record. When the partial
// stage consulted a PWL limit both limits are forced to zero so the same
// cause is not reported twice. A PWL CAR limit is compared against the
// plain CAR.
func checkWireCar(ar ARRecord, pwlChecked bool) (car, csr RatioCheck) {
	rule := ar.Layer.Rule
	if rule == nil || pwlChecked {
		return RatioCheck{Quantity: QuantityCAR, Value: ar.CAR},
			RatioCheck{Quantity: QuantityCSR, Value: ar.DiffCSR}
	}
	car = compare(QuantityCAR, rule.CAR, ar.CAR, PWLFactor(rule.DiffCAR, ar.DiffArea, 0), ar.CAR)
	csr = compare(QuantityCSR, rule.CSR, ar.CSR, PWLFactor(rule.DiffCSR, ar.DiffArea, 0), ar.DiffCSR)
	return car, csr
}

// checkViaPar evaluates the PAR of a via record against its cut layer rule.
func checkViaPar(ar ARRecord) RatioCheck {
	rule := ar.Layer.Rule
	if rule == nil {
		return RatioCheck{Quantity: QuantityPAR, Value: ar.PAR}
	}
	c := compare(QuantityPAR, rule.PAR, ar.PAR, PWLFactor(rule.DiffPAR, ar.DiffArea, 0), ar.DiffPAR)
	if c.Verdict == NotApplicable {
		c.Value = ar.PAR
	}
	return c
}

// checkViaCar evaluates the CAR of a via record against its cut layer rule.
func checkViaCar(ar ARRecord) RatioCheck {
	rule := ar.Layer.Rule
	if rule == nil {
		return RatioCheck{Quantity: QuantityCAR, Value: ar.CAR}
	}
	return compare(QuantityCAR, rule.CAR, ar.CAR, PWLFactor(rule.DiffCAR, ar.DiffArea, 0), ar.CAR)
}

// parViolated reports whether a metal record breaks its PAR or PSR limit.
func parViolated(r *PARRecord) bool {
	ar := ARRecord{
		Layer:    r.Layer,
		PAR:      r.PAR,
		PSR:      r.PSR,
		DiffPAR:  r.DiffPAR,
		DiffPSR:  r.DiffPSR,
		DiffArea: r.DiffArea,
	}
	par, psr := checkWirePar(ar)
	return par.Violated() || psr.Violated()
}

// =============================================================================
// Per-net evaluation
// =============================================================================

// RecordResult is one evaluated record for a gate: a metal wireroot with
// PAR, PSR, CAR and CSR checks, or a via with PAR and CAR checks.
type RecordResult struct {
	// Name is the wireroot layer name or the via name.
	Name   string
	Root   design.NodeID
	IsVia  bool
	Ratio  ARRecord
	Checks []RatioCheck
}

// Violated reports whether any check of the record failed.
func (r RecordResult) Violated() bool {
	for _, c := range r.Checks {
		if c.Violated() {
			return true
		}
	}
	return false
}

// GateResult collects the records that reach one gate terminal.
type GateResult struct {
	Node     design.NodeID
	ITerm    *design.ITerm
	Wire     []RecordResult
	Via      []RecordResult
	Violated bool
}

// NetResult is the evaluation of one routed net.
type NetResult struct {
	Net      *design.Net
	Gates    []GateResult
	Violated bool
	// ViolatedPins counts distinct violated gate terminals.
	ViolatedPins int
}

// evaluate checks every cumulative record of the net and groups the
// results by gate.
func (t *netTables) evaluate(net *design.Net) NetResult {
	wire := t.wireCarTable()
	via := t.viaCarTable()

	res := NetResult{Net: net}
	g := t.walker.g
	for _, gate := range t.gates {
		gr := GateResult{Node: gate, ITerm: g.ITerm(gate)}
		for _, ar := range wire {
			if ar.Gate != gate {
				continue
			}
			par, psr := checkWirePar(ar)
			car, csr := checkWireCar(ar, par.Verdict.UsedPWL() || psr.Verdict.UsedPWL())
			rr := RecordResult{
				Name:   ar.Layer.Name,
				Root:   ar.Root,
				Ratio:  ar,
				Checks: []RatioCheck{par, psr, car, csr},
			}
			gr.Violated = gr.Violated || rr.Violated()
			gr.Wire = append(gr.Wire, rr)
		}
		for _, ar := range via {
			if ar.Gate != gate {
				continue
			}
			rr := RecordResult{
				Name:   ar.Via.Name,
				Root:   ar.Root,
				IsVia:  true,
				Ratio:  ar,
				Checks: []RatioCheck{checkViaPar(ar), checkViaCar(ar)},
			}
			gr.Violated = gr.Violated || rr.Violated()
			gr.Via = append(gr.Via, rr)
		}
		if gr.Violated {
			res.Violated = true
			res.ViolatedPins++
		}
		res.Gates = append(res.Gates, gr)
	}
	return res
}
