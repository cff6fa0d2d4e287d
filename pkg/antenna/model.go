package antenna

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/antcheck/pkg/design"
)

// Model holds the scale factors derived from one layer's antenna rule.
type Model struct {
	MetalFactor     float64
	DiffMetalFactor float64

	CutFactor     float64
	DiffCutFactor float64

	SideMetalFactor     float64
	DiffSideMetalFactor float64

	MinusDiffFactor       float64
	PlusDiffFactor        float64
	DiffMetalReduceFactor float64
}

// neutralModel is the model of a layer without a default rule.
var neutralModel = Model{
	MetalFactor:           1.0,
	DiffMetalFactor:       1.0,
	CutFactor:             1.0,
	DiffCutFactor:         1.0,
	SideMetalFactor:       1.0,
	DiffSideMetalFactor:   1.0,
	DiffMetalReduceFactor: 1.0,
}

// ModelTable maps technology layers to their antenna models.
// It is built once per [Checker] and never modified afterwards.
type ModelTable struct {
	models map[*design.Layer]Model
}

// BuildModelTable derives a model for every layer of tech.
func BuildModelTable(tech *design.Tech, logger *log.Logger) *ModelTable {
	t := &ModelTable{models: make(map[*design.Layer]Model, len(tech.Layers))}
	for _, layer := range tech.Layers {
		t.models[layer] = buildModel(layer, logger)
	}
	return t
}

// For returns the model of layer. Unknown and nil layers get neutral factors.
func (t *ModelTable) For(layer *design.Layer) Model {
	if m, ok := t.models[layer]; ok {
		return m
	}
	return neutralModel
}

func buildModel(layer *design.Layer, logger *log.Logger) Model {
	m := neutralModel
	rule := layer.Rule
	if rule == nil {
		return m
	}

	if prop, ok := layer.Property(design.GatePlusDiffProperty); ok {
		v, err := parseGatePlusDiff(prop)
		if err != nil {
			logger.Warn("malformed gate-plus-diff property",
				"layer", layer.Name, "value", prop, "err", err)
		} else {
			m.PlusDiffFactor = v
		}
	}

	if rule.AreaFactorDiffUseOnly {
		m.DiffMetalFactor = rule.AreaFactor
		m.DiffCutFactor = rule.AreaFactor
	} else {
		m.MetalFactor = rule.AreaFactor
		m.DiffMetalFactor = rule.AreaFactor
		m.CutFactor = rule.AreaFactor
		m.DiffCutFactor = rule.AreaFactor
	}

	if rule.SideAreaFactorDiffUseOnly {
		m.DiffSideMetalFactor = rule.SideAreaFactor
	} else {
		m.SideMetalFactor = rule.SideAreaFactor
		m.DiffSideMetalFactor = rule.SideAreaFactor
	}

	m.MinusDiffFactor = rule.AreaMinusDiffFactor
	return m
}

// parseGatePlusDiff extracts the plus-diffusion factor from the legacy
// property string. At every space the text between the previous space and
// the character before this one becomes the candidate; the last candidate
// wins. For "ANTENNAGATEPLUSDIFF 2.0 ;" the candidate is " 2." which parses
// as 2.
func parseGatePlusDiff(s string) (float64, error) {
	var candidate string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			continue
		}
		if n := i - start - 1; n >= 0 {
			candidate = s[start : start+n]
		} else {
			candidate = s[start:]
		}
		start = i
	}
	return parseLeadingFloat(candidate)
}

// parseLeadingFloat parses the longest numeric prefix of s after leading
// whitespace, so " 2." and "3.5x" are accepted.
func parseLeadingFloat(s string) (float64, error) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	digits := false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && isDigit(s[end]) {
		end++
		digits = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits = true
		}
	}
	if digits && end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}
	if !digits {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
