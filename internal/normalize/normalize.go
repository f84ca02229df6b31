// Package normalize post-processes raw extraction results against the
// schema contract: generic-filler removal, fallback derivation, array
// truncation, and enum coercion. Normalize is pure and idempotent:
// normalize(normalize(x)) == normalize(x).
package normalize

import (
	"strings"

	"github.com/bedwinning/enrichment-engine/internal/schema"
	"github.com/bedwinning/enrichment-engine/internal/types"
)

// Minimum lengths below which extracted text is treated as filler.
const (
	minTaglineLength   = 15
	minShortDescLength = 20
	maxTaglineLength   = 100
	minProLength       = 15
)

// ConsPlaceholder is the honest single entry synthesized when the
// model found no limitations at all.
const ConsPlaceholder = "Limited information available for detailed assessment"

// genericTaglinePhrases flag marketing-speak taglines for replacement.
var genericTaglinePhrases = []string{
	"best tool", "powerful", "leading", "industry-leading", "ultimate", "cutting-edge",
}

// uselessTags are dropped from the tag list on exact (case-insensitive) match.
var uselessTags = []string{
	"software", "tool", "platform", "app", "service", "online", "business", "solution",
}

// genericProPhrases drop a pro when it contains any of these substrings.
var genericProPhrases = []string{
	"easy to use", "user friendly", "user-friendly", "powerful", "great", "good", "useful",
}

// Normalize applies all per-field rules and returns a contract-valid
// copy of the result. The input is not modified.
func Normalize(r types.ExtractionResult) types.ExtractionResult {
	r.Tagline = normalizeTagline(r.Tagline, r.ShortDescription)
	r.Tags = truncate(dropUselessTags(r.Tags), schema.MaxTags)
	r.Pros = truncate(dropGenericPros(r.Pros), schema.MaxPros)
	r.Cons = truncate(ensureCons(r.Cons), schema.MaxCons)

	r.UseCases = truncate(r.UseCases, schema.MaxUseCases)
	r.Features = truncate(r.Features, schema.MaxFeatures)
	r.TargetAudience = truncate(r.TargetAudience, schema.MaxTargetAudience)
	r.OperatingSystem = truncate(r.OperatingSystem, schema.MaxOperatingSystems)
	r.Platforms = truncate(r.Platforms, schema.MaxPlatforms)
	r.SupportOptions = truncate(r.SupportOptions, schema.MaxSupportOptions)
	r.Integrations = truncate(r.Integrations, schema.MaxIntegrations)
	r.Alternatives = truncate(r.Alternatives, schema.MaxAlternatives)
	r.NotableCustomers = truncate(r.NotableCustomers, schema.MaxNotableCustomers)
	r.SecurityFeatures = truncate(r.SecurityFeatures, schema.MaxSecurityFeatures)

	r.PricingModel = schema.CoercePricingModel(r.PricingModel)
	r.SkillLevel = schema.CoerceSkillLevel(r.SkillLevel)
	r.LearningCurve = schema.CoerceLearningCurve(r.LearningCurve)
	r.DocumentationQuality = schema.CoerceDocumentationQuality(r.DocumentationQuality)
	r.UpdateFrequency = schema.CoerceUpdateFrequency(r.UpdateFrequency)
	r.PrimaryCategory = schema.CoerceCategory(r.PrimaryCategory)

	if r.PriceCurrency == "" {
		r.PriceCurrency = schema.DefaultCurrency
	}

	return r
}

// normalizeTagline replaces a generic or too-short tagline with the
// leading sentence of the short description, capped at the maximum
// tagline length. The original tagline survives only when it is both
// long enough and free of marketing filler.
func normalizeTagline(tagline, shortDescription string) string {
	lowered := strings.ToLower(tagline)

	generic := len(tagline) < minTaglineLength
	for _, phrase := range genericTaglinePhrases {
		if strings.Contains(lowered, phrase) {
			generic = true
			break
		}
	}
	if !generic {
		return tagline
	}

	if len(shortDescription) <= minShortDescLength {
		return tagline
	}

	first, _, _ := strings.Cut(shortDescription, ".")
	first = strings.TrimSpace(first)
	if len(first) > maxTaglineLength {
		first = first[:maxTaglineLength]
	}
	if first == "" {
		return tagline
	}
	return first
}

func dropUselessTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	kept := make([]string, 0, len(tags))
	for _, tag := range tags {
		if isUselessTag(tag) {
			continue
		}
		kept = append(kept, tag)
	}
	return kept
}

func isUselessTag(tag string) bool {
	lowered := strings.ToLower(tag)
	for _, useless := range uselessTags {
		if lowered == useless {
			return true
		}
	}
	return false
}

// dropGenericPros removes pros that contain generic praise or are too
// short to carry information. Cons are deliberately not filtered the
// same way; honest limitations are worth keeping even when vague.
func dropGenericPros(pros []string) []string {
	if len(pros) == 0 {
		return pros
	}
	kept := make([]string, 0, len(pros))
	for _, pro := range pros {
		if len(pro) <= minProLength {
			continue
		}
		lowered := strings.ToLower(pro)
		generic := false
		for _, phrase := range genericProPhrases {
			if strings.Contains(lowered, phrase) {
				generic = true
				break
			}
		}
		if !generic {
			kept = append(kept, pro)
		}
	}
	return kept
}

func ensureCons(cons []string) []string {
	if len(cons) == 0 {
		return []string{ConsPlaceholder}
	}
	return cons
}

// truncate bounds a slice at max elements, preserving original order.
func truncate(values []string, max int) []string {
	if len(values) > max {
		return values[:max]
	}
	return values
}
