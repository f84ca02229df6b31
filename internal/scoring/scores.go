// Package scoring computes the three derived metrics over a normalized
// record: transparency (0-100), experience (0-10), and quality (0-100).
// All three are pure weighted sums, recomputed from scratch on every
// enrichment pass.
package scoring

import (
	"math"

	"github.com/bedwinning/enrichment-engine/internal/types"
)

// minContentLength is the character threshold below which a content
// field does not count toward the quality score.
const minContentLength = 20

// Transparency scores how open the tool is about pricing, company
// facts, and trust signals. Capped at 100.
func Transparency(r *types.ExtractionResult) int {
	score := 0

	// Pricing transparency (40 points). "Contact us" pricing scores
	// lowest of the classified models.
	switch r.PricingModel {
	case "free":
		score += 40
	case "freemium", "open-source":
		score += 35
	case "paid":
		if r.StartingPrice != nil {
			score += 30
		}
	case "contact":
		score += 10
	}

	// Company information (25 points)
	if r.CompanyName != nil && *r.CompanyName != "" {
		score += 8
	}
	if r.CompanyFounded != nil {
		score += 8
	}
	if r.EmployeeCount != nil && *r.EmployeeCount != "" {
		score += 5
	}
	if r.FundingRaised != nil && *r.FundingRaised != "" {
		score += 4
	}

	// Privacy / security (20 points)
	if r.HasPrivacyPolicy {
		score += 10
	}
	if r.AppearsGDPRCompliant {
		score += 5
	}
	if len(r.SecurityFeatures) > 0 {
		score += 5
	}

	// Documentation (15 points)
	switch r.DocumentationQuality {
	case "excellent":
		score += 15
	case "good":
		score += 12
	case "fair":
		score += 8
	case "poor":
		score += 4
	}

	return min(score, 100)
}

// Experience predicts user experience quality on a 0-10 scale,
// starting neutral and adjusting for learning curve, accessibility,
// documentation, support breadth, and try-before-buy availability.
// Clamped to [0,10] and rounded to one decimal place.
func Experience(r *types.ExtractionResult) float64 {
	score := 5.0

	// Learning curve impact (max +2 / -1.5)
	switch r.LearningCurve {
	case "easy":
		score += 2.0
	case "steep":
		score -= 1.5
	}

	// Skill level accessibility (max +1.5 / -1.0)
	switch r.SkillLevel {
	case "beginner", "all":
		score += 1.5
	case "expert":
		score -= 1.0
	}

	// Documentation quality (max +1.5 / -1.5)
	switch r.DocumentationQuality {
	case "excellent":
		score += 1.5
	case "good":
		score += 1.0
	case "poor":
		score -= 0.5
	case "none":
		score -= 1.5
	}

	// Support options (max +1)
	switch n := len(r.SupportOptions); {
	case n >= 3:
		score += 1.0
	case n == 2:
		score += 0.5
	}

	// Free tier or trial availability (+0.5)
	if r.HasFreeTier || r.HasTrial {
		score += 0.5
	}

	score = math.Max(0, math.Min(score, 10))
	return math.Round(score*10) / 10
}

// Quality scores the completeness of the enrichment itself: how much
// of the contract the extraction actually filled in. Capped at 100.
func Quality(r *types.ExtractionResult) int {
	score := 0

	// Core content (40 points): each field counts only when present
	// and longer than the minimum content length.
	contentFields := []struct {
		value  string
		points int
	}{
		{r.FullDescription, 10},
		{r.Tagline, 8},
		{r.ShortDescription, 8},
		{r.Verdict, 7},
		{r.BestFor, 7},
	}
	for _, f := range contentFields {
		if len(f.value) > minContentLength {
			score += f.points
		}
	}

	// Categorization (20 points)
	if len(r.Tags) >= 5 {
		score += 8
	}
	if len(r.UseCases) >= 3 {
		score += 6
	}
	if len(r.Features) >= 5 {
		score += 6
	}

	// Pricing info (15 points)
	if r.PricingModel != "" {
		score += 8
	}
	if r.PricingSummary != "" {
		score += 7
	}

	// Technical details (15 points)
	if len(r.Integrations) >= 3 {
		score += 8
	}
	if r.APIAvailable != nil {
		score += 4
	}
	if len(r.Platforms) >= 1 {
		score += 3
	}

	// Assessment (10 points)
	if len(r.Pros) >= 3 {
		score += 5
	}
	if len(r.Cons) >= 2 {
		score += 5
	}

	return min(score, 100)
}

// Apply computes all three scores and attaches them to the record.
func Apply(rec *types.NormalizedRecord) {
	rec.TransparencyScore = Transparency(&rec.ExtractionResult)
	rec.ExperienceScore = Experience(&rec.ExtractionResult)
	rec.QualityScore = Quality(&rec.ExtractionResult)
}
