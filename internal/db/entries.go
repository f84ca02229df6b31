package db

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bedwinning/enrichment-engine/internal/types"
)

// psql builds queries with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// entryColumns are the columns scanned into a types.Entry.
var entryColumns = []string{
	"id", "name", "slug", "website_url", "enrichment_status",
	"tracking_metadata", "social_snippets", "quality_score",
	"created_at", "updated_at",
}

// Selection is the eligibility predicate for picking entries to
// enrich. Zero-value fields are not applied.
type Selection struct {
	// Statuses restricts to entries in any of these lifecycle states.
	Statuses []types.EnrichmentStatus
	// MissingTagline restricts to entries with no tagline yet.
	MissingTagline bool
	// Limit bounds the batch size.
	Limit uint64
}

// FetchEligible returns entries matching the selection, highest
// priority first. Priority is the stored quality score, so the weakest
// records are re-enriched last and fresh entries first.
func (db *DB) FetchEligible(ctx context.Context, sel Selection) ([]types.Entry, error) {
	query := psql.Select(entryColumns...).From("tools")

	if len(sel.Statuses) > 0 {
		statuses := make([]string, len(sel.Statuses))
		for i, s := range sel.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where(sq.Eq{"enrichment_status": statuses})
	}
	if sel.MissingTagline {
		query = query.Where(sq.Or{sq.Eq{"tagline": nil}, sq.Eq{"tagline": ""}})
	}
	if sel.Limit > 0 {
		query = query.Limit(sel.Limit)
	}
	query = query.OrderBy("quality_score DESC NULLS LAST", "created_at ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build selection query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch eligible entries: %w", err)
	}
	defer rows.Close()

	var entries []types.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetEntry retrieves a single entry by ID, or nil when absent.
func (db *DB) GetEntry(ctx context.Context, id uuid.UUID) (*types.Entry, error) {
	query := psql.Select(entryColumns...).From("tools").Where(sq.Eq{"id": id})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build entry query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanEntry(rows)
}

func scanEntry(rows pgx.Rows) (*types.Entry, error) {
	var (
		e            types.Entry
		status       string
		metadataJSON []byte
		socialJSON   []byte
	)
	if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.WebsiteURL, &status,
		&metadataJSON, &socialJSON, &e.PriorityScore,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}
	e.EnrichmentStatus = types.EnrichmentStatus(status)

	if len(metadataJSON) > 0 {
		var blob trackingMetadata
		if err := json.Unmarshal(metadataJSON, &blob); err == nil && blob.ScrapedContent != nil {
			e.StoredContent = blob.ScrapedContent
		}
	}
	if len(socialJSON) > 0 {
		_ = json.Unmarshal(socialJSON, &e.SocialSnippets)
	}

	return &e, nil
}

// trackingMetadata is the stored crawl blob's envelope.
type trackingMetadata struct {
	ScrapedContent *types.StoredContent `json:"scraped_content"`
}

// UpdateStatus moves an entry to a new lifecycle state.
func (db *DB) UpdateStatus(ctx context.Context, id uuid.UUID, status types.EnrichmentStatus) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE tools SET enrichment_status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// SaveEnriched writes a full normalized record plus its scores in one
// atomic statement, marks the entry completed, and retains the raw
// merged record as JSON for audit. Partial writes are impossible: an
// interrupted worker leaves the row either fully old or fully new.
func (db *DB) SaveEnriched(ctx context.Context, id uuid.UUID, rec *types.NormalizedRecord) error {
	rawJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE tools
		 SET
		     tagline = $1,
		     short_description = $2,
		     description = $3,
		     logo_url = $4,
		     primary_category = $5,
		     tags = $6,
		     use_cases = $7,
		     features = $8,
		     target_audience = $9,
		     pricing_model = $10,
		     price_amount = $11,
		     price_currency = $12,
		     has_free_tier = $13,
		     has_trial = $14,
		     trial_days = $15,
		     pricing_summary = $16,
		     operating_system = $17,
		     platforms = $18,
		     skill_level = $19,
		     learning_curve = $20,
		     documentation_quality = $21,
		     support_options = $22,
		     api_available = $23,
		     integrations = $24,
		     alternatives = $25,
		     pros = $26,
		     cons = $27,
		     best_for = $28,
		     not_recommended_for = $29,
		     verdict = $30,
		     company_name = $31,
		     company_founded = $32,
		     employee_count = $33,
		     funding_raised = $34,
		     notable_customers = $35,
		     has_privacy_policy = $36,
		     gdpr_compliant = $37,
		     security_features = $38,
		     update_frequency = $39,
		     transparency_score = $40,
		     experience_score = $41,
		     quality_score = $42,
		     enrichment_status = $43,
		     ai_data = $44,
		     updated_at = NOW(),
		     last_verified_at = NOW()
		 WHERE id = $45`,
		rec.Tagline,
		rec.ShortDescription,
		rec.FullDescription,
		rec.LogoURL,
		rec.PrimaryCategory,
		rec.Tags,
		rec.UseCases,
		rec.Features,
		rec.TargetAudience,
		rec.PricingModel,
		rec.StartingPrice,
		rec.PriceCurrency,
		rec.HasFreeTier,
		rec.HasTrial,
		rec.TrialDays,
		rec.PricingSummary,
		rec.OperatingSystem,
		rec.Platforms,
		rec.SkillLevel,
		rec.LearningCurve,
		rec.DocumentationQuality,
		rec.SupportOptions,
		rec.APIAvailable,
		rec.Integrations,
		rec.Alternatives,
		rec.Pros,
		rec.Cons,
		rec.BestFor,
		rec.NotRecommendedFor,
		rec.Verdict,
		rec.CompanyName,
		rec.CompanyFounded,
		rec.EmployeeCount,
		rec.FundingRaised,
		rec.NotableCustomers,
		rec.HasPrivacyPolicy,
		rec.AppearsGDPRCompliant,
		rec.SecurityFeatures,
		rec.UpdateFrequency,
		rec.TransparencyScore,
		rec.ExperienceScore,
		rec.QualityScore,
		string(types.StatusCompleted),
		rawJSON,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to save enriched entry: %w", err)
	}
	return nil
}
