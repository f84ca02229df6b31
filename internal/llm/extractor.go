// Package llm - extractor.go is the extraction adapter: it turns entry
// name + URL + acquired text into a schema-shaped ExtractionResult via
// a single provider call, or into a classified failure.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/bedwinning/enrichment-engine/internal/prompts"
	"github.com/bedwinning/enrichment-engine/internal/schema"
	"github.com/bedwinning/enrichment-engine/internal/types"
)

// ExtractRequest carries everything the prompt needs for one entry.
// Content is expected to be pre-truncated by the caller.
type ExtractRequest struct {
	Name           string
	URL            string
	Content        string
	SocialSnippets []types.SocialSnippet
}

// Extractor wraps a provider client with the fixed schema-describing
// prompt. It performs no retries; retry policy belongs to the
// orchestrator so backoff time stays visible to the rate budget.
type Extractor struct {
	client Client
}

// NewExtractor creates an extractor over the given provider client.
func NewExtractor(client Client) *Extractor {
	return &Extractor{client: client}
}

// Extract runs one provider call and decodes the response.
// Failure classification:
//   - *MalformedOutputError: response was not schema-shaped JSON
//   - *RateLimitedError: provider throttled the call
//   - *ProviderError: any other provider failure
func (e *Extractor) Extract(ctx context.Context, req ExtractRequest) (*types.ExtractionResult, error) {
	prompt := BuildExtractionPrompt(req)

	responseText, err := e.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return decodeResponse(responseText)
}

// decodeResponse strips code fences, checks the document against the
// contract's JSON Schema, and unmarshals it.
func decodeResponse(responseText string) (*types.ExtractionResult, error) {
	cleaned := CleanJSONBlock(responseText)

	if err := schema.ValidateJSON(cleaned); err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			return nil, &MalformedOutputError{Message: "response violates extraction schema", Cause: ve}
		}
		return nil, &MalformedOutputError{Message: "response is not valid JSON", Cause: err}
	}

	var result types.ExtractionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &MalformedOutputError{Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// BuildExtractionPrompt renders the embedded instruction template with
// the entry's details and the contract's enum lists. Good/bad worked
// examples for the qualitative fields live in the template itself.
func BuildExtractionPrompt(req ExtractRequest) string {
	template := prompts.MustGet("extraction.json", "extract-tool-profile")
	return prompts.Format(template, map[string]string{
		"ToolName":               req.Name,
		"WebsiteURL":             req.URL,
		"Content":                req.Content,
		"SocialFeedback":         formatSocialSnippets(req.SocialSnippets),
		"Categories":             quoteJoin(schema.Categories),
		"PricingModels":          strings.Join(schema.PricingModels, " | "),
		"SkillLevels":            strings.Join(schema.SkillLevels, " | "),
		"LearningCurves":         strings.Join(schema.LearningCurves, " | "),
		"DocumentationQualities": strings.Join(schema.DocumentationQualities, " | "),
		"UpdateFrequencies":      strings.Join(schema.UpdateFrequencies, " | "),
	})
}

// formatSocialSnippets renders prior social feedback for the prompt,
// or a placeholder line when there is none.
func formatSocialSnippets(snippets []types.SocialSnippet) string {
	if len(snippets) == 0 {
		return "No social data available"
	}

	var sb strings.Builder
	for _, s := range snippets {
		sb.WriteString("- ")
		if s.Source != "" {
			sb.WriteString("[")
			sb.WriteString(s.Source)
			sb.WriteString("] ")
		}
		sb.WriteString(s.Text)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return strings.Join(quoted, ", ")
}
