package pricing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func f(v float64) *float64 { return &v }

func TestLoadDefault(t *testing.T) {
	table, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if table.Default == nil {
		t.Fatal("embedded table has no default entry")
	}

	rates, ok := table.Resolve("gpt-5")
	if !ok {
		t.Fatal("gpt-5 not resolved from embedded table")
	}
	if !almostEqual(rates.Input, 0.00125) {
		t.Errorf("gpt-5 input = %v, want 0.00125", rates.Input)
	}

	// Aliases route to the canonical entry.
	viaAlias, ok := table.Resolve("gpt-5-codex")
	if !ok || viaAlias != rates {
		t.Errorf("alias resolution = %+v, %v; want same as gpt-5", viaAlias, ok)
	}
}

func TestResolve_FieldFallback(t *testing.T) {
	table := NewTable()
	table.Default = &PartialRates{Input: f(0.005), Output: f(0.015), CachedInput: f(0.0005), Reasoning: f(0.015)}
	table.Models["sparse"] = PartialRates{Input: f(0.001)}

	rates, ok := table.Resolve("sparse")
	if !ok {
		t.Fatal("not resolved")
	}
	if !almostEqual(rates.Input, 0.001) {
		t.Errorf("Input = %v, want the model's own 0.001", rates.Input)
	}
	if !almostEqual(rates.Output, 0.015) {
		t.Errorf("Output = %v, want default 0.015", rates.Output)
	}
}

func TestResolve_UnknownFallsBackToDefault(t *testing.T) {
	table := NewTable()
	table.Default = &PartialRates{Input: f(0.002)}

	rates, ok := table.Resolve("never-heard-of-it")
	if !ok {
		t.Fatal("unknown model with a default must still resolve")
	}
	if !almostEqual(rates.Input, 0.002) || rates.Output != 0 {
		t.Errorf("rates = %+v", rates)
	}
}

func TestResolve_NoDefaultNoModel(t *testing.T) {
	table := NewTable()
	table.Models["known"] = PartialRates{Input: f(0.001)}

	if _, ok := table.Resolve("unknown"); ok {
		t.Error("unknown model without a default must not resolve")
	}
	if _, ok := table.Resolve("known"); !ok {
		t.Error("known model must resolve even without a default")
	}
}

func TestResolve_ZeroIsAPrice(t *testing.T) {
	table := NewTable()
	table.Default = &PartialRates{Input: f(0.005)}
	table.Models["free"] = PartialRates{Input: f(0)}

	rates, ok := table.Resolve("free")
	if !ok {
		t.Fatal("not resolved")
	}
	if rates.Input != 0 {
		t.Errorf("explicit zero replaced by the default: %v", rates.Input)
	}
}

func TestMerge_FieldByField(t *testing.T) {
	base := NewTable()
	base.Default = &PartialRates{Input: f(0.005), Output: f(0.015)}
	base.Models["m"] = PartialRates{Input: f(0.001), Output: f(0.002)}

	overlay := NewTable()
	overlay.Default = &PartialRates{Input: f(0.009)}
	overlay.Models["m"] = PartialRates{Output: f(0.004)}
	overlay.Aliases["m-latest"] = "m"

	base.Merge(overlay)

	if !almostEqual(*base.Default.Input, 0.009) {
		t.Errorf("default input = %v, want overlay's 0.009", *base.Default.Input)
	}
	if !almostEqual(*base.Default.Output, 0.015) {
		t.Errorf("default output = %v, want base's 0.015 kept", *base.Default.Output)
	}
	m := base.Models["m"]
	if !almostEqual(*m.Input, 0.001) || !almostEqual(*m.Output, 0.004) {
		t.Errorf("model entry = %+v", m)
	}
	if base.Aliases["m-latest"] != "m" {
		t.Error("alias not carried over")
	}

	base.Merge(nil) // no-op
}

func TestOverride(t *testing.T) {
	table := NewTable()
	table.Default = &PartialRates{Input: f(0.005), Output: f(0.015)}

	table.Override(FieldInput, 0.02)
	if !almostEqual(*table.Default.Input, 0.02) {
		t.Errorf("input = %v, want 0.02", *table.Default.Input)
	}
	if !almostEqual(*table.Default.Output, 0.015) {
		t.Errorf("output disturbed: %v", *table.Default.Output)
	}

	empty := NewTable()
	empty.Override(FieldReasoning, 0.03)
	if empty.Default == nil || !almostEqual(*empty.Default.Reasoning, 0.03) {
		t.Error("Override on an empty table must create the default entry")
	}
}

func TestParsePrices_Structured(t *testing.T) {
	data := []byte(`{
		"default": {"input_per_1k": 0.005, "output_per_1k": 0.015},
		"models": {
			"gpt-5": {"input_per_1k": 0.00125},
			"broken": "not an object"
		},
		"aliases": {"gpt-5-latest": "gpt-5"}
	}`)

	table, err := ParsePrices(data)
	if err != nil {
		t.Fatalf("ParsePrices: %v", err)
	}
	if table.Default == nil || !almostEqual(*table.Default.Input, 0.005) {
		t.Errorf("default = %+v", table.Default)
	}
	if _, ok := table.Models["gpt-5"]; !ok {
		t.Error("gpt-5 entry missing")
	}
	if _, ok := table.Models["broken"]; ok {
		t.Error("malformed model entry must be skipped, not stored")
	}
	if table.Aliases["gpt-5-latest"] != "gpt-5" {
		t.Error("alias missing")
	}
}

func TestParsePrices_FlatShape(t *testing.T) {
	table, err := ParsePrices([]byte(`{"input_per_1k": 0.004, "completion_per_1k": 0.012}`))
	if err != nil {
		t.Fatalf("ParsePrices: %v", err)
	}
	if table.Default == nil {
		t.Fatal("flat document must become the default entry")
	}
	if !almostEqual(*table.Default.Input, 0.004) || !almostEqual(*table.Default.Output, 0.012) {
		t.Errorf("default = %+v", table.Default)
	}
}

func TestParsePrices_Per1MNormalized(t *testing.T) {
	data := []byte(`{
		"models": {
			"m": {"input_cost_per_1m": 5.0, "output_cost_per_1m": 15.0, "prompt_cache_read_per_1m": 0.5}
		}
	}`)
	table, err := ParsePrices(data)
	if err != nil {
		t.Fatalf("ParsePrices: %v", err)
	}
	pr := table.Models["m"]
	if pr.Input == nil || !almostEqual(*pr.Input, 0.005) {
		t.Errorf("input = %v, want 5.0/1000", pr.Input)
	}
	if pr.CachedInput == nil || !almostEqual(*pr.CachedInput, 0.0005) {
		t.Errorf("cached = %v, want 0.5/1000", pr.CachedInput)
	}
}

func TestParsePrices_Per1KWinsOverPer1M(t *testing.T) {
	table, err := ParsePrices([]byte(`{"input_per_1k": 0.001, "input_cost_per_1m": 5.0}`))
	if err != nil {
		t.Fatalf("ParsePrices: %v", err)
	}
	if !almostEqual(*table.Default.Input, 0.001) {
		t.Errorf("input = %v, want the per-1k spelling to win", *table.Default.Input)
	}
}

func TestParsePrices_Invalid(t *testing.T) {
	if _, err := ParsePrices([]byte(`not json`)); err == nil {
		t.Error("want error for malformed document")
	}
}
