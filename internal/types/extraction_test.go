// Package types provides type definitions for structured data used throughout the enrichment engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionResult_DecodesModelJSON(t *testing.T) {
	jsonInput := `{
		"tagline": "Schedules posts across networks",
		"starting_price": 19.99,
		"trial_days": 14,
		"api_available": null,
		"tags": ["social", "scheduling"],
		"company_founded": 2019
	}`

	var result ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &result))

	assert.Equal(t, "Schedules posts across networks", result.Tagline)
	require.NotNil(t, result.StartingPrice)
	assert.Equal(t, 19.99, *result.StartingPrice)
	require.NotNil(t, result.TrialDays)
	assert.Equal(t, 14, *result.TrialDays)
	assert.Nil(t, result.APIAvailable, "null must stay distinguishable from false")
	require.NotNil(t, result.CompanyFounded)
	assert.Equal(t, 2019, *result.CompanyFounded)
}

func TestNormalizedRecord_MarshalsFlat(t *testing.T) {
	// The audit column stores a record as one flat object: embedded
	// extraction fields and scores side by side, no nesting.
	rec := NormalizedRecord{
		ExtractionResult:  ExtractionResult{Tagline: "Schedules posts"},
		TransparencyScore: 62,
		ExperienceScore:   7.5,
		QualityScore:      48,
	}

	jsonBytes, err := json.Marshal(rec)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &flat))
	assert.Equal(t, "Schedules posts", flat["tagline"])
	assert.EqualValues(t, 62, flat["transparency_score"])
	assert.EqualValues(t, 7.5, flat["experience_score"])
	assert.NotContains(t, flat, "ExtractionResult")
}
