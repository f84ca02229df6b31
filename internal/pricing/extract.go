// Package pricing provides deterministic pattern-based extraction of
// pricing facts from acquired page text. It never calls the network
// and is idempotent over identical input, which is what lets the merge
// policy trust it over a model guess.
package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bedwinning/enrichment-engine/internal/schema"
	"github.com/bedwinning/enrichment-engine/internal/types"
)

// Phrase sets for pricing model classification, checked in priority
// order: a literal "freemium" declaration beats explicit free markers
// (a freemium page advertises its free tier too), which beat
// open-source markers, contact/quote markers, and finally the
// free-plus-upgrade co-occurrence heuristic.
var (
	freePhrases    = []string{"free forever", "completely free", "100% free"}
	openPhrases    = []string{"open source", "open-source", "github"}
	contactPhrases = []string{"contact us", "contact sales", "request a quote", "get a quote"}
	upgradePhrases = []string{"paid", "premium", "pro", "upgrade"}
)

// Ordered amount patterns. Each captures the numeric amount; all
// matches across all patterns are collected and the minimum wins,
// reflecting "starting at" semantics.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)\s*(?:/|per)\s*(?:month|mo)`),
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)\s*(?:monthly|a month)`),
	regexp.MustCompile(`(?:starting at|from|as low as)\s*\$(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)\s*(?:/|per)\s*(?:user|seat)`),
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)\s*(?:/|per)\s*(?:year|yr)`),
}

// Trial length patterns, first match wins.
var trialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)[\s-]*day(?:s)?\s+(?:free\s+)?trial`),
	regexp.MustCompile(`(?:free\s+)?trial\s+(?:for\s+)?(\d+)\s+days?`),
	regexp.MustCompile(`try\s+free\s+for\s+(\d+)\s+days?`),
}

// Extract scans raw page text and returns the pricing facts it can
// establish without a model. Fields it cannot establish are left
// empty/nil so the merge policy passes the model's values through.
func Extract(text string) types.PricingFacts {
	lowered := strings.ToLower(text)

	model := classifyModel(lowered)
	amount := lowestAmount(lowered)

	// A positive amount with no classified model means paid; an
	// explicit zero amount means free.
	if amount != nil {
		if *amount > 0 && model == "" {
			model = "paid"
		} else if *amount == 0 && model == "" {
			model = "free"
		}
	}

	facts := types.PricingFacts{
		Model:      model,
		Amount:     amount,
		Currency:   detectCurrency(text, lowered),
		TrialDays:  trialLength(lowered),
		Confidence: types.ConfidenceLow,
	}
	if amount != nil {
		facts.Confidence = types.ConfidenceHigh
	}
	return facts
}

func classifyModel(lowered string) string {
	if strings.Contains(lowered, "freemium") {
		return "freemium"
	}
	if containsAny(lowered, freePhrases) {
		return "free"
	}
	if containsAny(lowered, openPhrases) {
		return "open-source"
	}
	if containsAny(lowered, contactPhrases) {
		return "contact"
	}
	if strings.Contains(lowered, "free") && containsAny(lowered, upgradePhrases) {
		return "freemium"
	}
	return ""
}

// lowestAmount collects every monetary match across all patterns and
// returns the minimum parsed value, or nil when nothing matched.
func lowestAmount(lowered string) *float64 {
	var found []float64
	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(lowered, -1) {
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			found = append(found, value)
		}
	}
	if len(found) == 0 {
		return nil
	}
	lowest := found[0]
	for _, v := range found[1:] {
		if v < lowest {
			lowest = v
		}
	}
	return &lowest
}

func trialLength(lowered string) *int {
	for _, pattern := range trialPatterns {
		if match := pattern.FindStringSubmatch(lowered); match != nil {
			days, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			return &days
		}
	}
	return nil
}

// detectCurrency checks the raw text for currency symbols and the
// lowered text for currency codes, defaulting to the contract default.
func detectCurrency(raw, lowered string) string {
	switch {
	case strings.Contains(raw, "€") || strings.Contains(lowered, "eur"):
		return "EUR"
	case strings.Contains(raw, "£") || strings.Contains(lowered, "gbp"):
		return "GBP"
	default:
		return schema.DefaultCurrency
	}
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
