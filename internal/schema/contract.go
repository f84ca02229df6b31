// Package schema declares the enrichment contract: every field an
// extraction path may produce, the closed value set for each enum
// field, the maximum cardinality of each array field, and the alias
// tables used to coerce raw model output onto the contract. All other
// pipeline stages reference this package instead of hardcoding field
// lists.
package schema

import (
	"strings"

	"github.com/bedwinning/enrichment-engine/internal/types"
)

// Array field cardinality caps. A persisted record never holds more
// elements than these in any array column.
const (
	MaxTags             = 15
	MaxUseCases         = 6
	MaxFeatures         = 10
	MaxTargetAudience   = 8
	MaxOperatingSystems = 6
	MaxPlatforms        = 5
	MaxSupportOptions   = 8
	MaxIntegrations     = 15
	MaxAlternatives     = 8
	MaxPros             = 6
	MaxCons             = 6
	MaxNotableCustomers = 10
	MaxSecurityFeatures = 10
)

// Closed enum value sets. Order matters for nothing here; coercion
// order lives in the alias tables below.
var (
	PricingModels          = []string{"free", "freemium", "paid", "contact", "open-source"}
	SkillLevels            = []string{"beginner", "intermediate", "advanced", "expert", "all"}
	LearningCurves         = []string{"easy", "moderate", "steep"}
	DocumentationQualities = []string{"excellent", "good", "fair", "poor", "none"}
	UpdateFrequencies      = []string{"daily", "weekly", "monthly", "quarterly", "yearly", "unknown"}
)

// Per-field defaults applied when no alias matches.
const (
	DefaultPricingModel         = "contact"
	DefaultSkillLevel           = "all"
	DefaultLearningCurve        = "moderate"
	DefaultDocumentationQuality = "fair"
	DefaultUpdateFrequency      = "unknown"
	DefaultCurrency             = "USD"
	DefaultCategory             = "Other"
)

// Categories is the directory taxonomy. A record's primary category is
// always one of these; unrecognized values coerce to "Other".
var Categories = []string{
	"AI Chat & Assistants", "Image & Art Generation", "Video Generation",
	"Music & Audio", "Writing & Content", "Code & Development",
	"Business & Productivity", "Marketing & SEO", "Data & Analytics",
	"Design & Graphics", "Voice & Speech", "Translation & Language",
	"Education & Learning", "Research & Summarization", "Automation & Workflows",
	"E-commerce & Sales", "Social Media", "Gaming & Entertainment",
	"Finance & Crypto", "Other",
}

// alias maps a lowercase substring to a contract enum value. Tables
// are priority-ordered: the first alias contained in the raw value
// wins, so more specific aliases ("freemium") must precede the
// shorter ones they contain ("free").
type alias struct {
	substr string
	value  string
}

var pricingModelAliases = []alias{
	{"freemium", "freemium"},
	{"free", "free"},
	{"open", "open-source"},
	{"opensource", "open-source"},
	{"paid", "paid"},
	{"subscription", "paid"},
	{"contact", "contact"},
	{"custom", "contact"},
}

var skillLevelAliases = []alias{
	{"beginner", "beginner"},
	{"intermediate", "intermediate"},
	{"advanced", "advanced"},
	{"expert", "expert"},
	{"all", "all"},
}

var learningCurveAliases = []alias{
	{"easy", "easy"},
	{"low", "easy"},
	{"simple", "easy"},
	{"steep", "steep"},
	{"high", "steep"},
	{"difficult", "steep"},
	{"moderate", "moderate"},
	{"medium", "moderate"},
}

var documentationQualityAliases = []alias{
	{"excellent", "excellent"},
	{"good", "good"},
	{"fair", "fair"},
	{"poor", "poor"},
	{"none", "none"},
}

var updateFrequencyAliases = []alias{
	{"daily", "daily"},
	{"weekly", "weekly"},
	{"monthly", "monthly"},
	{"quarterly", "quarterly"},
	{"yearly", "yearly"},
	{"annual", "yearly"},
	{"unknown", "unknown"},
}

// coerce lowercases raw and returns the first alias value whose
// substring it contains, or fallback when nothing matches.
func coerce(raw string, table []alias, fallback string) string {
	lowered := strings.ToLower(raw)
	for _, a := range table {
		if strings.Contains(lowered, a.substr) {
			return a.value
		}
	}
	return fallback
}

// CoercePricingModel maps a raw pricing model string onto the contract.
func CoercePricingModel(raw string) string {
	return coerce(raw, pricingModelAliases, DefaultPricingModel)
}

// CoerceSkillLevel maps a raw skill level string onto the contract.
func CoerceSkillLevel(raw string) string {
	return coerce(raw, skillLevelAliases, DefaultSkillLevel)
}

// CoerceLearningCurve maps a raw learning curve string onto the contract.
func CoerceLearningCurve(raw string) string {
	return coerce(raw, learningCurveAliases, DefaultLearningCurve)
}

// CoerceDocumentationQuality maps a raw documentation quality string onto the contract.
func CoerceDocumentationQuality(raw string) string {
	return coerce(raw, documentationQualityAliases, DefaultDocumentationQuality)
}

// CoerceUpdateFrequency maps a raw update frequency string onto the contract.
func CoerceUpdateFrequency(raw string) string {
	return coerce(raw, updateFrequencyAliases, DefaultUpdateFrequency)
}

// CoerceCategory returns raw if it is a taxonomy category (exact
// match), otherwise the default category.
func CoerceCategory(raw string) string {
	for _, c := range Categories {
		if raw == c {
			return c
		}
	}
	return DefaultCategory
}

// arrayCap pairs an array field name with its maximum cardinality.
// Field names match the JSON/database column names.
type arrayCap struct {
	field string
	max   int
	get   func(*types.ExtractionResult) []string
}

func arrayCaps() []arrayCap {
	return []arrayCap{
		{"tags", MaxTags, func(r *types.ExtractionResult) []string { return r.Tags }},
		{"use_cases", MaxUseCases, func(r *types.ExtractionResult) []string { return r.UseCases }},
		{"features", MaxFeatures, func(r *types.ExtractionResult) []string { return r.Features }},
		{"target_audience", MaxTargetAudience, func(r *types.ExtractionResult) []string { return r.TargetAudience }},
		{"operating_system", MaxOperatingSystems, func(r *types.ExtractionResult) []string { return r.OperatingSystem }},
		{"platforms", MaxPlatforms, func(r *types.ExtractionResult) []string { return r.Platforms }},
		{"support_options", MaxSupportOptions, func(r *types.ExtractionResult) []string { return r.SupportOptions }},
		{"integrations", MaxIntegrations, func(r *types.ExtractionResult) []string { return r.Integrations }},
		{"alternatives", MaxAlternatives, func(r *types.ExtractionResult) []string { return r.Alternatives }},
		{"pros", MaxPros, func(r *types.ExtractionResult) []string { return r.Pros }},
		{"cons", MaxCons, func(r *types.ExtractionResult) []string { return r.Cons }},
		{"notable_customers", MaxNotableCustomers, func(r *types.ExtractionResult) []string { return r.NotableCustomers }},
		{"security_features", MaxSecurityFeatures, func(r *types.ExtractionResult) []string { return r.SecurityFeatures }},
	}
}
