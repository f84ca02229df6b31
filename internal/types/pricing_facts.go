package types

// Confidence tags a deterministic extraction with how reliable it is.
type Confidence string

// Confidence levels for pattern-extracted pricing.
const (
	// ConfidenceHigh means a literal monetary amount was found in the text.
	ConfidenceHigh Confidence = "high"
	// ConfidenceLow means only phrase-level classification succeeded.
	ConfidenceLow Confidence = "low"
)

// PricingFacts is the partial extraction produced by the pattern-based
// pricing extractor. Empty string / nil pointer means the field was
// not found in the text; the merge policy only applies present fields.
type PricingFacts struct {
	Model      string     `json:"pricing_model"`
	Amount     *float64   `json:"price_amount"`
	Currency   string     `json:"price_currency"`
	TrialDays  *int       `json:"trial_days"`
	Confidence Confidence `json:"confidence"`
}
