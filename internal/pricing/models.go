package pricing

import (
	_ "embed"
)

//go:embed pricing.json
var defaultPricingJSON []byte

// Rates holds fully resolved USD-per-1000-token prices for one model.
type Rates struct {
	Input       float64
	CachedInput float64
	Output      float64
	Reasoning   float64
}

// PartialRates is the stored form: a nil field means the source never set
// it, which is distinct from an explicit zero. Resolution falls back
// field-by-field to the default entry.
type PartialRates struct {
	Input       *float64
	CachedInput *float64
	Output      *float64
	Reasoning   *float64
}

// merge overlays src onto p, field by field. Set fields win; nil fields
// leave the earlier source intact.
func (p *PartialRates) merge(src PartialRates) {
	if src.Input != nil {
		p.Input = src.Input
	}
	if src.CachedInput != nil {
		p.CachedInput = src.CachedInput
	}
	if src.Output != nil {
		p.Output = src.Output
	}
	if src.Reasoning != nil {
		p.Reasoning = src.Reasoning
	}
}

func (p PartialRates) empty() bool {
	return p.Input == nil && p.CachedInput == nil && p.Output == nil && p.Reasoning == nil
}

// Table is the normalized price table built once per invocation.
// All stored rates are USD per 1k tokens; per-1M sources were divided by
// 1000 during normalization.
type Table struct {
	Default *PartialRates
	Models  map[string]PartialRates
	Aliases map[string]string
}

func NewTable() *Table {
	return &Table{
		Models:  make(map[string]PartialRates),
		Aliases: make(map[string]string),
	}
}

// LoadDefault returns the embedded fallback table.
func LoadDefault() (*Table, error) {
	return ParsePrices(defaultPricingJSON)
}

// Merge overlays other onto t: per-model and default entries merge
// field-by-field, aliases are unioned with other winning on conflict.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	if other.Default != nil {
		if t.Default == nil {
			t.Default = &PartialRates{}
		}
		t.Default.merge(*other.Default)
	}
	for name, pr := range other.Models {
		cur := t.Models[name]
		cur.merge(pr)
		t.Models[name] = cur
	}
	for alias, target := range other.Aliases {
		t.Aliases[alias] = target
	}
}

// RateField names one of the four per-1k rates for flag overrides.
type RateField int

const (
	FieldInput RateField = iota
	FieldCachedInput
	FieldOutput
	FieldReasoning
)

// Override sets a single default-entry rate, leaving the other fields from
// earlier sources intact.
func (t *Table) Override(field RateField, usdPer1k float64) {
	if t.Default == nil {
		t.Default = &PartialRates{}
	}
	v := usdPer1k
	switch field {
	case FieldInput:
		t.Default.Input = &v
	case FieldCachedInput:
		t.Default.CachedInput = &v
	case FieldOutput:
		t.Default.Output = &v
	case FieldReasoning:
		t.Default.Reasoning = &v
	}
}

// Resolve returns the effective rates for a model. Each field missing from
// the model entry falls back to the default entry's field, then to zero.
// ok is false only when neither a model entry nor a default exists; a zero
// rate is a valid price and is not conflated with absence.
func (t *Table) Resolve(model string) (Rates, bool) {
	if t == nil {
		return Rates{}, false
	}
	name := model
	if target, ok := t.Aliases[name]; ok {
		name = target
	}

	pr, found := t.Models[name]
	if !found && t.Default == nil {
		return Rates{}, false
	}

	var def PartialRates
	if t.Default != nil {
		def = *t.Default
	}

	pick := func(model, fallback *float64) float64 {
		if model != nil {
			return *model
		}
		if fallback != nil {
			return *fallback
		}
		return 0
	}

	return Rates{
		Input:       pick(pr.Input, def.Input),
		CachedInput: pick(pr.CachedInput, def.CachedInput),
		Output:      pick(pr.Output, def.Output),
		Reasoning:   pick(pr.Reasoning, def.Reasoning),
	}, true
}
