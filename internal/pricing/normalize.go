package pricing

import (
	"encoding/json"
	"fmt"
)

// Source JSON spellings for each rate, in lookup order. Per-1M keys are
// divided by 1000 at parse time so the table only ever stores per-1k.
var per1kKeys = map[RateField][]string{
	FieldInput: {
		"input_cost_per_1k_tokens", "input_per_1k", "prompt_cost_per_1k_tokens",
		"prompt_per_1k", "input_per_1k_tokens", "input", "prompt",
	},
	FieldOutput: {
		"output_cost_per_1k_tokens", "output_per_1k", "completion_cost_per_1k_tokens",
		"completion_per_1k", "output", "completion",
	},
	FieldReasoning: {
		"reasoning_cost_per_1k_tokens", "reasoning_per_1k", "reasoning",
	},
	FieldCachedInput: {
		"cached_input_cost_per_1k_tokens", "cached_input_per_1k", "cached_input", "cache",
	},
}

var per1mKeys = map[RateField][]string{
	FieldInput: {
		"input_cost_per_1m", "input_per_1m", "prompt_per_1m",
		"input_cost_per_million_tokens", "input_per_million",
	},
	FieldOutput: {
		"output_cost_per_1m", "completion_cost_per_1m", "output_per_1m",
		"completion_per_1m", "output_cost_per_million_tokens", "output_per_million",
	},
	FieldReasoning: {
		"reasoning_cost_per_1m", "reasoning_per_1m",
		"reasoning_cost_per_million_tokens", "reasoning_per_million",
	},
	FieldCachedInput: {
		"prompt_cache_read_per_1m", "cache_read_per_1m",
		"prompt_cache_read_per_million", "cached_input_per_1m",
	},
}

// ParsePrices normalizes a pricing JSON document into a Table. Two shapes
// are accepted: a flat rates object applied as the default entry, or
// {default, models, aliases}.
func ParsePrices(data []byte) (*Table, error) {
	var doc struct {
		Default json.RawMessage            `json:"default"`
		Models  map[string]json.RawMessage `json:"models"`
		Aliases map[string]string          `json:"aliases"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse prices: %w", err)
	}

	table := NewTable()

	if doc.Models == nil && doc.Default == nil {
		// Flat shape: the whole document is one rates object.
		pr, err := parseRatesObject(data)
		if err != nil {
			return nil, err
		}
		if !pr.empty() {
			table.Default = &pr
		}
		return table, nil
	}

	if doc.Default != nil {
		pr, err := parseRatesObject(doc.Default)
		if err != nil {
			return nil, err
		}
		if !pr.empty() {
			table.Default = &pr
		}
	}
	for name, raw := range doc.Models {
		pr, err := parseRatesObject(raw)
		if err != nil {
			continue // one bad model entry must not reject the table
		}
		table.Models[name] = pr
	}
	for alias, target := range doc.Aliases {
		table.Aliases[alias] = target
	}
	return table, nil
}

// parseRatesObject reads one rates object, trying per-1k spellings first
// and falling back to per-1M spellings normalized by /1000.
func parseRatesObject(raw json.RawMessage) (PartialRates, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return PartialRates{}, fmt.Errorf("parse rates object: %w", err)
	}

	var pr PartialRates
	for field, dst := range map[RateField]**float64{
		FieldInput:       &pr.Input,
		FieldCachedInput: &pr.CachedInput,
		FieldOutput:      &pr.Output,
		FieldReasoning:   &pr.Reasoning,
	} {
		if v, ok := lookupNumber(obj, per1kKeys[field]); ok {
			val := v
			*dst = &val
			continue
		}
		if v, ok := lookupNumber(obj, per1mKeys[field]); ok {
			val := v / 1000 // per-1M source -> per-1k storage
			*dst = &val
		}
	}
	return pr, nil
}

func lookupNumber(obj map[string]json.RawMessage, keys []string) (float64, bool) {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, true
		}
	}
	return 0, false
}
