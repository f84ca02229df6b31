package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/bedwinning/enrichment-engine/internal/types"
)

//go:embed extraction_result.schema.json
var extractionResultSchema string

// ExtractionResultSchema returns the JSON Schema document describing
// the shape of an extraction result. The schema constrains field
// types only; enum membership and array caps are enforced by the
// normalizer so that near-miss model output can be coerced instead of
// rejected.
func ExtractionResultSchema() string {
	return extractionResultSchema
}

// ValidationError reports contract violations found in a record or a
// raw JSON document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a named field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("contract validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateJSON checks a raw JSON document (typically a model response,
// after fence stripping) against the extraction result schema.
// Returns a *ValidationError when the document parses but violates the
// schema, and a plain error when the document is not valid JSON at all.
func ValidateJSON(jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(extractionResultSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateRecord checks that a record honors the contract: every enum
// field holds a contract-listed value and every array field is within
// its cap. The normalizer guarantees this for its output; persistence
// refuses records that fail it.
func ValidateRecord(r *types.ExtractionResult) error {
	var errs []FieldError

	checkEnum := func(field, value string, allowed []string) {
		for _, v := range allowed {
			if value == v {
				return
			}
		}
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%q is not a contract value", value)})
	}

	checkEnum("pricing_model", r.PricingModel, PricingModels)
	checkEnum("skill_level", r.SkillLevel, SkillLevels)
	checkEnum("learning_curve", r.LearningCurve, LearningCurves)
	checkEnum("documentation_quality", r.DocumentationQuality, DocumentationQualities)
	checkEnum("update_frequency", r.UpdateFrequency, UpdateFrequencies)
	checkEnum("primary_category", r.PrimaryCategory, Categories)

	for _, c := range arrayCaps() {
		if n := len(c.get(r)); n > c.max {
			errs = append(errs, FieldError{
				Field:   c.field,
				Message: fmt.Sprintf("%d elements exceeds cap of %d", n, c.max),
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
