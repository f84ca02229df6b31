package types

// ExtractionResult is the schema-shaped output of an extraction path,
// either the language-model adapter or the deterministic pricing
// extractor (which fills only the pricing fields). Field names mirror
// the instruction payload sent to the model, so this struct decodes
// the model's JSON directly.
//
// Nullable scalars are pointers so that "the model did not report
// this" stays distinguishable from a zero value; that distinction
// feeds both the merge policy and the quality score.
type ExtractionResult struct {
	// Core identity
	Name             string  `json:"name"`
	Tagline          string  `json:"tagline"`
	ShortDescription string  `json:"short_description"`
	FullDescription  string  `json:"full_description"`
	LogoURL          *string `json:"logo_url"`

	// Categorization
	PrimaryCategory string   `json:"primary_category"`
	Tags            []string `json:"tags"`
	UseCases        []string `json:"use_cases"`
	Features        []string `json:"features"`
	TargetAudience  []string `json:"target_audience"`

	// Pricing
	PricingModel   string   `json:"pricing_model"`
	StartingPrice  *float64 `json:"starting_price"`
	PriceCurrency  string   `json:"price_currency"`
	HasFreeTier    bool     `json:"has_free_tier"`
	HasTrial       bool     `json:"has_trial"`
	TrialDays      *int     `json:"trial_days"`
	PricingSummary string   `json:"pricing_summary"`

	// Platform & compatibility
	OperatingSystem []string `json:"operating_system"`
	Platforms       []string `json:"platforms"`

	// User experience signals
	SkillLevel           string   `json:"skill_level"`
	LearningCurve        string   `json:"learning_curve"`
	DocumentationQuality string   `json:"documentation_quality"`
	SupportOptions       []string `json:"support_options"`

	// Technical details
	APIAvailable *bool    `json:"api_available"`
	Integrations []string `json:"integrations"`
	Alternatives []string `json:"alternatives"`

	// Assessment
	Pros              []string `json:"pros"`
	Cons              []string `json:"cons"`
	BestFor           string   `json:"best_for"`
	NotRecommendedFor string   `json:"not_recommended_for"`
	Verdict           string   `json:"verdict"`

	// Company / provenance
	CompanyName      *string  `json:"company_name"`
	CompanyFounded   *int     `json:"company_founded"`
	EmployeeCount    *string  `json:"employee_count"`
	FundingRaised    *string  `json:"funding_raised"`
	NotableCustomers []string `json:"notable_customers"`

	// Trust / compliance
	HasPrivacyPolicy    bool     `json:"has_privacy_policy"`
	AppearsGDPRCompliant bool     `json:"appears_gdpr_compliant"`
	SecurityFeatures    []string `json:"security_features"`

	// Maintenance signals
	UpdateFrequency      string  `json:"update_frequency"`
	LastUpdateMentioned  *string `json:"last_update_mentioned"`
}

// NormalizedRecord is an ExtractionResult after merge and
// normalization, plus the three derived scores. Scores are always
// recomputed from the embedded result, never updated in place.
type NormalizedRecord struct {
	ExtractionResult

	TransparencyScore int     `json:"transparency_score"`
	ExperienceScore   float64 `json:"experience_score"`
	QualityScore      int     `json:"quality_score"`
}
