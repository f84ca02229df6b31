// Package pipeline orchestrates the enrichment loop: select eligible
// entries, acquire page text, extract deterministic pricing facts and a
// model-generated profile, merge, normalize, score, and persist.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bedwinning/enrichment-engine/internal/content"
	"github.com/bedwinning/enrichment-engine/internal/db"
	"github.com/bedwinning/enrichment-engine/internal/llm"
	"github.com/bedwinning/enrichment-engine/internal/normalize"
	"github.com/bedwinning/enrichment-engine/internal/observability"
	"github.com/bedwinning/enrichment-engine/internal/pricing"
	"github.com/bedwinning/enrichment-engine/internal/schema"
	"github.com/bedwinning/enrichment-engine/internal/scoring"
	"github.com/bedwinning/enrichment-engine/internal/types"
)

// maxExtractAttempts bounds retries after a malformed model response.
// One retry: malformed output twice in a row means the page content
// confuses the model and more calls just burn quota.
const maxExtractAttempts = 2

// EntryStore is the persistence surface the worker needs.
type EntryStore interface {
	FetchEligible(ctx context.Context, sel db.Selection) ([]types.Entry, error)
	SaveEnriched(ctx context.Context, id uuid.UUID, rec *types.NormalizedRecord) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status types.EnrichmentStatus) error
	GetEntry(ctx context.Context, id uuid.UUID) (*types.Entry, error)
}

// ContentAcquirer turns an entry into enrichable page text.
type ContentAcquirer interface {
	Acquire(ctx context.Context, entry *types.Entry) (string, error)
}

// RecordExtractor runs one model call over acquired text.
type RecordExtractor interface {
	Extract(ctx context.Context, req llm.ExtractRequest) (*types.ExtractionResult, error)
}

// Options tunes the worker's pacing and selection.
type Options struct {
	// BatchSize is how many entries one selection pulls.
	BatchSize int
	// EntryDelay is the pause between entries within a batch.
	EntryDelay time.Duration
	// BatchDelay is the pause between batches.
	BatchDelay time.Duration
	// IdleSleep is the pause when a selection comes back empty.
	IdleSleep time.Duration
	// RateLimitWait is the backoff after a provider throttle. Waiting
	// out a throttle does not consume a retry attempt.
	RateLimitWait time.Duration
	// Selection overrides which entries are eligible. Zero value means
	// DefaultSelection with BatchSize as the limit.
	Selection *db.Selection
}

// DefaultSelection picks triaged entries that still lack a profile,
// plus completed entries flagged for pricing re-extraction.
func DefaultSelection(limit int) db.Selection {
	return db.Selection{
		Statuses: []types.EnrichmentStatus{
			types.StatusReachable,
			types.StatusNeedsPricing,
		},
		MissingTagline: false,
		Limit:          uint64(limit),
	}
}

// Summary counts the outcomes of a batch or run.
type Summary struct {
	Completed int
	Skipped   int
	Failed    int
}

func (s *Summary) add(other Summary) {
	s.Completed += other.Completed
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Worker drives the enrichment pipeline against a store.
type Worker struct {
	store     EntryStore
	acquirer  ContentAcquirer
	extractor RecordExtractor
	opts      Options
	printer   *observability.Printer
}

// NewWorker assembles a worker. printer may be nil to disable verbose
// output.
func NewWorker(store EntryStore, acquirer ContentAcquirer, extractor RecordExtractor, opts Options, printer *observability.Printer) *Worker {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	return &Worker{
		store:     store,
		acquirer:  acquirer,
		extractor: extractor,
		opts:      opts,
		printer:   printer,
	}
}

// Run processes batches until the context is cancelled. An empty
// selection sleeps and polls again, so the worker can run as a
// long-lived daemon over a table that fills up over time.
func (w *Worker) Run(ctx context.Context) (Summary, error) {
	var total Summary
	for {
		batch, n, err := w.RunBatch(ctx)
		total.add(batch)
		if err != nil {
			return total, err
		}

		var pause time.Duration
		if n == 0 {
			pause = w.opts.IdleSleep
		} else {
			pause = w.opts.BatchDelay
		}
		if err := sleepCtx(ctx, pause); err != nil {
			return total, err
		}
	}
}

// RunBatch selects one batch and processes it sequentially, returning
// the outcome counts and how many entries were selected. A failing
// entry never aborts the batch.
func (w *Worker) RunBatch(ctx context.Context) (Summary, int, error) {
	sel := DefaultSelection(w.opts.BatchSize)
	if w.opts.Selection != nil {
		sel = *w.opts.Selection
	}

	entries, err := w.store.FetchEligible(ctx, sel)
	if err != nil {
		return Summary{}, 0, err
	}

	var summary Summary
	for i := range entries {
		entry := &entries[i]
		outcome := w.processLogged(ctx, entry)
		switch outcome {
		case outcomeCompleted:
			summary.Completed++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
		if ctx.Err() != nil {
			return summary, len(entries), ctx.Err()
		}

		// Pace provider calls between entries, but not after the last.
		if i < len(entries)-1 {
			if err := sleepCtx(ctx, w.opts.EntryDelay); err != nil {
				return summary, len(entries), err
			}
		}
	}

	if w.printer != nil && len(entries) > 0 {
		w.printer.PrintBatchSummary(summary.Completed, summary.Skipped, summary.Failed)
	}
	return summary, len(entries), nil
}

// EnrichOne processes a single entry by ID regardless of its status.
func (w *Worker) EnrichOne(ctx context.Context, id uuid.UUID) error {
	entry, err := w.store.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return &EntryNotFoundError{ID: id}
	}
	return w.ProcessEntry(ctx, entry)
}

type outcome int

const (
	outcomeCompleted outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (w *Worker) processLogged(ctx context.Context, entry *types.Entry) outcome {
	err := w.ProcessEntry(ctx, entry)
	switch {
	case err == nil:
		return outcomeCompleted
	case content.IsAcquisitionFailure(err):
		log.Printf("[ENRICH] skipping %s: %v", entry.Name, err)
		return outcomeSkipped
	case ctx.Err() != nil:
		return outcomeFailed
	default:
		log.Printf("[ENRICH] failed %s: %v", entry.Name, err)
		return outcomeFailed
	}
}

// ProcessEntry runs the full pipeline for one entry. Acquisition
// failures and persistence failures leave the entry's status untouched
// so a later run retries it.
func (w *Worker) ProcessEntry(ctx context.Context, entry *types.Entry) error {
	if w.printer != nil {
		w.printer.PrintEntry(entry)
	}

	text, err := w.acquirer.Acquire(ctx, entry)
	if err != nil {
		return err
	}

	facts := pricing.Extract(text)
	if w.printer != nil {
		w.printer.PrintPricingFacts(&facts)
	}

	result, err := w.extract(ctx, entry, text)
	if err != nil {
		return err
	}

	merged := normalize.Merge(facts, *result)
	normalized := normalize.Normalize(merged)

	if err := schema.ValidateRecord(&normalized); err != nil {
		return err
	}

	rec := &types.NormalizedRecord{ExtractionResult: normalized}
	scoring.Apply(rec)

	if w.printer != nil {
		w.printer.PrintRecord(rec)
	}

	if err := w.store.SaveEnriched(ctx, entry.ID, rec); err != nil {
		return err
	}
	entry.EnrichmentStatus = types.StatusCompleted
	return nil
}

// extract calls the model, retrying once on malformed output and
// waiting out throttles without consuming the retry.
func (w *Worker) extract(ctx context.Context, entry *types.Entry, text string) (*types.ExtractionResult, error) {
	req := llm.ExtractRequest{
		Name:           entry.Name,
		URL:            entry.WebsiteURL,
		Content:        text,
		SocialSnippets: entry.SocialSnippets,
	}

	var lastErr error
	for attempt := 0; attempt < maxExtractAttempts; {
		result, err := w.extractor.Extract(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if llm.IsRateLimited(err) {
			log.Printf("[ENRICH] rate limited, waiting %s before retrying %s", w.opts.RateLimitWait, entry.Name)
			if serr := sleepCtx(ctx, w.opts.RateLimitWait); serr != nil {
				return nil, serr
			}
			continue
		}
		if llm.IsMalformedOutput(err) {
			attempt++
			log.Printf("[ENRICH] malformed model output for %s (attempt %d/%d)", entry.Name, attempt, maxExtractAttempts)
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
