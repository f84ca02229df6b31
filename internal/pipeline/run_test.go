package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedwinning/enrichment-engine/internal/content"
	"github.com/bedwinning/enrichment-engine/internal/db"
	"github.com/bedwinning/enrichment-engine/internal/llm"
	"github.com/bedwinning/enrichment-engine/internal/types"
)

// fakeStore is an in-memory EntryStore.
type fakeStore struct {
	entries    []types.Entry
	fetchErr   error
	saveErr    error
	saved      map[uuid.UUID]*types.NormalizedRecord
	statuses   map[uuid.UUID]types.EnrichmentStatus
	selections []db.Selection
}

func newFakeStore(entries ...types.Entry) *fakeStore {
	return &fakeStore{
		entries:  entries,
		saved:    make(map[uuid.UUID]*types.NormalizedRecord),
		statuses: make(map[uuid.UUID]types.EnrichmentStatus),
	}
}

func (s *fakeStore) FetchEligible(_ context.Context, sel db.Selection) ([]types.Entry, error) {
	s.selections = append(s.selections, sel)
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.entries, nil
}

func (s *fakeStore) SaveEnriched(_ context.Context, id uuid.UUID, rec *types.NormalizedRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[id] = rec
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, status types.EnrichmentStatus) error {
	s.statuses[id] = status
	return nil
}

func (s *fakeStore) GetEntry(_ context.Context, id uuid.UUID) (*types.Entry, error) {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return &s.entries[i], nil
		}
	}
	return nil, nil
}

// fakeAcquirer returns fixed text per entry name.
type fakeAcquirer struct {
	text    string
	failFor map[string]bool
}

func (a *fakeAcquirer) Acquire(_ context.Context, entry *types.Entry) (string, error) {
	if a.failFor[entry.Name] {
		return "", &content.AcquisitionError{URL: entry.WebsiteURL, Message: "insufficient content"}
	}
	return a.text, nil
}

// fakeExtractor replays a scripted sequence of responses.
type fakeExtractor struct {
	script []func() (*types.ExtractionResult, error)
	calls  int
}

func (e *fakeExtractor) Extract(_ context.Context, _ llm.ExtractRequest) (*types.ExtractionResult, error) {
	step := e.script[min(e.calls, len(e.script)-1)]
	e.calls++
	return step()
}

func okResult() func() (*types.ExtractionResult, error) {
	return func() (*types.ExtractionResult, error) {
		return &types.ExtractionResult{
			Tagline:          "Schedules posts across twelve social networks",
			ShortDescription: "Schedules and cross-posts content for marketing teams.",
			PricingModel:     "freemium",
		}, nil
	}
}

func malformed() func() (*types.ExtractionResult, error) {
	return func() (*types.ExtractionResult, error) {
		return nil, &llm.MalformedOutputError{Message: "not JSON"}
	}
}

func rateLimited() func() (*types.ExtractionResult, error) {
	return func() (*types.ExtractionResult, error) {
		return nil, &llm.RateLimitedError{Cause: errors.New("quota")}
	}
}

func testEntry(name string) types.Entry {
	return types.Entry{
		ID:               uuid.New(),
		Name:             name,
		WebsiteURL:       "https://" + name + ".example",
		EnrichmentStatus: types.StatusReachable,
	}
}

func testOptions() Options {
	return Options{
		BatchSize:     5,
		RateLimitWait: time.Millisecond,
	}
}

func pageText() string {
	return "Freemium pricing with a paid upgrade. Pro plan at $19.99/mo with a 14-day free trial."
}

func TestProcessEntry_HappyPath(t *testing.T) {
	entry := testEntry("postbot")
	store := newFakeStore(entry)
	worker := NewWorker(store, &fakeAcquirer{text: pageText()}, &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}, testOptions(), nil)

	err := worker.ProcessEntry(context.Background(), &entry)
	require.NoError(t, err)

	rec, ok := store.saved[entry.ID]
	require.True(t, ok, "record should be persisted")

	// Deterministic page pricing overrides and enriches the model output.
	assert.Equal(t, "freemium", rec.PricingModel)
	require.NotNil(t, rec.StartingPrice)
	assert.Equal(t, 19.99, *rec.StartingPrice)
	require.NotNil(t, rec.TrialDays)
	assert.Equal(t, 14, *rec.TrialDays)

	// Normalization and scoring ran.
	assert.Equal(t, []string{"Limited information available for detailed assessment"}, rec.Cons)
	assert.Greater(t, rec.QualityScore, 0)
	assert.Greater(t, rec.TransparencyScore, 0)

	assert.Equal(t, types.StatusCompleted, entry.EnrichmentStatus)
}

func TestProcessEntry_AcquisitionFailureSkips(t *testing.T) {
	entry := testEntry("unreachable")
	store := newFakeStore(entry)
	acquirer := &fakeAcquirer{failFor: map[string]bool{"unreachable": true}}
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}
	worker := NewWorker(store, acquirer, extractor, testOptions(), nil)

	err := worker.ProcessEntry(context.Background(), &entry)
	require.Error(t, err)
	assert.True(t, content.IsAcquisitionFailure(err))

	assert.Empty(t, store.saved, "nothing should be persisted")
	assert.Empty(t, store.statuses, "status must stay untouched for a later retry")
	assert.Zero(t, extractor.calls, "no model call without content")
}

func TestProcessEntry_RetriesMalformedOnce(t *testing.T) {
	entry := testEntry("flaky")
	store := newFakeStore(entry)
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){malformed(), okResult()}}
	worker := NewWorker(store, &fakeAcquirer{text: pageText()}, extractor, testOptions(), nil)

	err := worker.ProcessEntry(context.Background(), &entry)
	require.NoError(t, err)
	assert.Equal(t, 2, extractor.calls)
	assert.Len(t, store.saved, 1)
}

func TestProcessEntry_MalformedTwiceFails(t *testing.T) {
	entry := testEntry("hopeless")
	store := newFakeStore(entry)
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){malformed()}}
	worker := NewWorker(store, &fakeAcquirer{text: pageText()}, extractor, testOptions(), nil)

	err := worker.ProcessEntry(context.Background(), &entry)
	require.Error(t, err)
	assert.True(t, llm.IsMalformedOutput(err))
	assert.Equal(t, 2, extractor.calls, "exactly one retry")
	assert.Empty(t, store.saved)
}

func TestProcessEntry_RateLimitDoesNotConsumeRetry(t *testing.T) {
	entry := testEntry("throttled")
	store := newFakeStore(entry)
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){
		rateLimited(), rateLimited(), malformed(), okResult(),
	}}
	worker := NewWorker(store, &fakeAcquirer{text: pageText()}, extractor, testOptions(), nil)

	err := worker.ProcessEntry(context.Background(), &entry)
	require.NoError(t, err)
	assert.Equal(t, 4, extractor.calls)
	assert.Len(t, store.saved, 1)
}

func TestProcessEntry_ProviderErrorIsFatalForEntry(t *testing.T) {
	entry := testEntry("broken")
	store := newFakeStore(entry)
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){
		func() (*types.ExtractionResult, error) {
			return nil, &llm.ProviderError{Message: "backend exploded"}
		},
	}}
	worker := NewWorker(store, &fakeAcquirer{text: pageText()}, extractor, testOptions(), nil)

	err := worker.ProcessEntry(context.Background(), &entry)
	require.Error(t, err)
	assert.Equal(t, 1, extractor.calls, "no retry on provider errors")
}

func TestRunBatch_MixedOutcomes(t *testing.T) {
	good := testEntry("good")
	bad := testEntry("bad")
	store := newFakeStore(bad, good)
	acquirer := &fakeAcquirer{text: pageText(), failFor: map[string]bool{"bad": true}}
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}
	worker := NewWorker(store, acquirer, extractor, testOptions(), nil)

	summary, n, err := worker.RunBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, Summary{Completed: 1, Skipped: 1}, summary)
	assert.Len(t, store.saved, 1)
}

func TestRunBatch_PersistenceFailureDoesNotAbortBatch(t *testing.T) {
	first := testEntry("first")
	second := testEntry("second")
	store := newFakeStore(first, second)
	store.saveErr = errors.New("connection reset")
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}
	worker := NewWorker(store, &fakeAcquirer{text: pageText()}, extractor, testOptions(), nil)

	summary, n, err := worker.RunBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, Summary{Failed: 2}, summary)
}

func TestRunBatch_PropagatesSelectionError(t *testing.T) {
	store := newFakeStore()
	store.fetchErr = errors.New("relation does not exist")
	worker := NewWorker(store, &fakeAcquirer{}, &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}, testOptions(), nil)

	_, _, err := worker.RunBatch(context.Background())
	assert.Error(t, err)
}

func TestRunBatch_DefaultSelection(t *testing.T) {
	store := newFakeStore()
	worker := NewWorker(store, &fakeAcquirer{}, &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}, testOptions(), nil)

	_, _, err := worker.RunBatch(context.Background())
	require.NoError(t, err)

	require.Len(t, store.selections, 1)
	sel := store.selections[0]
	assert.Equal(t, uint64(5), sel.Limit)
	assert.Contains(t, sel.Statuses, types.StatusReachable)
	assert.Contains(t, sel.Statuses, types.StatusNeedsPricing)
}

func TestEnrichOne_NotFound(t *testing.T) {
	store := newFakeStore()
	worker := NewWorker(store, &fakeAcquirer{}, &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}, testOptions(), nil)

	err := worker.EnrichOne(context.Background(), uuid.New())
	require.Error(t, err)

	var notFound *EntryNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestEnrichOne_ByID(t *testing.T) {
	entry := testEntry("target")
	store := newFakeStore(entry)
	extractor := &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}
	worker := NewWorker(store, &fakeAcquirer{text: pageText()}, extractor, testOptions(), nil)

	require.NoError(t, worker.EnrichOne(context.Background(), entry.ID))
	assert.Len(t, store.saved, 1)
}

func TestRun_StopsOnCancellation(t *testing.T) {
	store := newFakeStore()
	worker := NewWorker(store, &fakeAcquirer{}, &fakeExtractor{script: []func() (*types.ExtractionResult, error){okResult()}}, Options{
		BatchSize: 5,
		IdleSleep: time.Millisecond,
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := worker.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
