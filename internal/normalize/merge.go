package normalize

import "github.com/bedwinning/enrichment-engine/internal/types"

// Merge overlays deterministic pricing facts onto a model extraction.
// Every fact present in the deterministic result overwrites the model's
// value for that field unconditionally; the pattern extractor cannot
// hallucinate, so it always wins where it found something. All other
// fields pass through from the model result unchanged.
func Merge(facts types.PricingFacts, model types.ExtractionResult) types.ExtractionResult {
	if facts.Model != "" {
		model.PricingModel = facts.Model
	}
	if facts.Amount != nil {
		amount := *facts.Amount
		model.StartingPrice = &amount
	}
	if facts.Currency != "" {
		model.PriceCurrency = facts.Currency
	}
	if facts.TrialDays != nil {
		days := *facts.TrialDays
		model.TrialDays = &days
	}
	return model
}
