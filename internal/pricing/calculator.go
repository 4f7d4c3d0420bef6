package pricing

import "github.com/anomredux/codex-smi/internal/domain"

// BillingMode selects which of the two mutually exclusive cost formulas
// applies. Selected once per run.
type BillingMode string

const (
	// BillingInputOnly charges all input at the input rate and ignores
	// cached tokens entirely.
	BillingInputOnly BillingMode = "input-only"
	// BillingCached charges cached reads at the cached rate and only the
	// uncached remainder at the input rate.
	BillingCached BillingMode = "cached"
)

type Calculator struct {
	table       *Table
	mode        BillingMode
	forcedModel string // when set, rate lookup ignores the event's model
}

func NewCalculator(table *Table, mode BillingMode) *Calculator {
	return &Calculator{table: table, mode: mode}
}

// SetForcedModel pins rate lookup to one model name.
func (c *Calculator) SetForcedModel(model string) {
	c.forcedModel = model
}

// UpdateTable replaces the price table used for cost calculations.
func (c *Calculator) UpdateTable(table *Table) {
	c.table = table
}

// Cost returns the USD cost of one event. ok is false when no rates
// resolve for the event's model and no default entry exists; callers must
// render that as absent, never as $0.00.
func (c *Calculator) Cost(e domain.UsageEvent) (float64, bool) {
	model := e.Model
	if c.forcedModel != "" {
		model = c.forcedModel
	}
	rates, ok := c.table.Resolve(model)
	if !ok {
		return 0, false
	}
	return costWith(e, rates, c.mode), true
}

func costWith(e domain.UsageEvent, r Rates, mode BillingMode) float64 {
	input := float64(e.InputTokens)
	cached := float64(e.CachedInputTokens)
	output := float64(e.OutputTokens)
	reasoning := float64(e.ReasoningOutputTokens)

	var cost float64
	if mode == BillingCached {
		billableInput := input - cached
		if billableInput < 0 {
			// cached > input violates the data model upstream; clamp
			// rather than going negative.
			billableInput = 0
		}
		cost = billableInput/1000*r.Input + cached/1000*r.CachedInput
	} else {
		cost = input / 1000 * r.Input
	}
	cost += output / 1000 * r.Output
	cost += reasoning / 1000 * r.Reasoning
	return cost
}

// SumCost totals per-event costs. ok is false when any contributing event
// has an absent cost, so aggregates never silently treat unknown as zero.
func (c *Calculator) SumCost(events []domain.UsageEvent) (float64, bool) {
	var total float64
	for _, e := range events {
		v, ok := c.Cost(e)
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}
