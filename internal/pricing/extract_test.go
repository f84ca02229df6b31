package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedwinning/enrichment-engine/internal/types"
)

func TestExtract_PaidWithTrial(t *testing.T) {
	text := "Get started today. Plans cost $99/month with a 14-day free trial included."

	facts := Extract(text)

	assert.Equal(t, "paid", facts.Model)
	require.NotNil(t, facts.Amount)
	assert.Equal(t, 99.0, *facts.Amount)
	require.NotNil(t, facts.TrialDays)
	assert.Equal(t, 14, *facts.TrialDays)
	assert.Equal(t, "USD", facts.Currency)
	assert.Equal(t, types.ConfidenceHigh, facts.Confidence)
}

func TestExtract_FreemiumWithPrice(t *testing.T) {
	text := "Freemium pricing: start free, then upgrade to the Pro plan at $19.99/mo."

	facts := Extract(text)

	assert.Equal(t, "freemium", facts.Model)
	require.NotNil(t, facts.Amount)
	assert.Equal(t, 19.99, *facts.Amount)
	assert.Equal(t, types.ConfidenceHigh, facts.Confidence)
}

func TestExtract_StartingAtWithTrial(t *testing.T) {
	facts := Extract("Starting at $99/month with a 14-day free trial")

	assert.Equal(t, "paid", facts.Model)
	require.NotNil(t, facts.Amount)
	assert.Equal(t, 99.0, *facts.Amount)
	require.NotNil(t, facts.TrialDays)
	assert.Equal(t, 14, *facts.TrialDays)
}

func TestExtract_FreemiumBeatsFreeForever(t *testing.T) {
	facts := Extract("Freemium model - Free forever, Pro at $19.99/mo")

	assert.Equal(t, "freemium", facts.Model)
	require.NotNil(t, facts.Amount)
	assert.Equal(t, 19.99, *facts.Amount)
}

func TestExtract_LowestAmountWins(t *testing.T) {
	text := "Team plan is $29/month. Solo plans starting at $9. Enterprise $199 per month."

	facts := Extract(text)

	require.NotNil(t, facts.Amount)
	assert.Equal(t, 9.0, *facts.Amount)
}

func TestExtract_ModelClassification(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		model string
	}{
		{"explicit free forever", "This tool is free forever, no credit card required", "free"},
		{"open source via github", "Check out the project on GitHub and self-host it", "open-source"},
		{"contact sales", "For pricing, contact sales and request a quote", "contact"},
		{"freemium keyword", "We use a freemium model", "freemium"},
		{"free tier plus upgrade", "Free tier available, upgrade anytime for more seats", "freemium"},
		{"zero amount means free", "Just $0/month, always", "free"},
		{"nothing recognizable", "A note about our engineering blog", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Extract(tt.text)
			assert.Equal(t, tt.model, facts.Model)
		})
	}
}

func TestExtract_TrialPhrasings(t *testing.T) {
	tests := []struct {
		name string
		text string
		days int
	}{
		{"N-day trial", "Sign up for a 30-day trial", 30},
		{"trial for N days", "We offer a free trial for 7 days", 7},
		{"try free for N days", "Try free for 21 days, cancel anytime", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Extract(tt.text)
			require.NotNil(t, facts.TrialDays)
			assert.Equal(t, tt.days, *facts.TrialDays)
		})
	}
}

func TestExtract_CurrencyDetection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		currency string
	}{
		{"euro symbol", "Plans from €49 per month", "EUR"},
		{"eur code", "All prices listed in EUR", "EUR"},
		{"pound symbol", "Only £12 for the basic plan", "GBP"},
		{"gbp code", "Billed in GBP monthly", "GBP"},
		{"default dollars", "Only $12/month for everything", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Extract(tt.text)
			assert.Equal(t, tt.currency, facts.Currency)
		})
	}
}

func TestExtract_NoSignalsIsLowConfidence(t *testing.T) {
	facts := Extract("A page about nothing in particular.")

	assert.Empty(t, facts.Model)
	assert.Nil(t, facts.Amount)
	assert.Nil(t, facts.TrialDays)
	assert.Equal(t, types.ConfidenceLow, facts.Confidence)
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Freemium. Pro at $19.99/mo, or from $15 yearly. 14-day free trial."

	first := Extract(text)
	second := Extract(text)

	assert.Equal(t, first, second)
}
