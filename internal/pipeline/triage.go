package pipeline

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/bedwinning/enrichment-engine/internal/db"
	"github.com/bedwinning/enrichment-engine/internal/types"
)

// DefaultTriageConcurrency bounds parallel reachability probes. Probes
// are cheap HEAD/GET requests against distinct hosts, so moderate
// parallelism is safe.
const DefaultTriageConcurrency = 8

// Prober checks whether a URL answers HTTP at all.
type Prober func(ctx context.Context, url string) bool

// Triager moves pending entries to reachable or needs_triage based on
// a lightweight reachability probe.
type Triager struct {
	store       EntryStore
	probe       Prober
	concurrency int
}

// NewTriager assembles a triager. probe must not be nil.
func NewTriager(store EntryStore, probe Prober, concurrency int) *Triager {
	if concurrency <= 0 {
		concurrency = DefaultTriageConcurrency
	}
	return &Triager{store: store, probe: probe, concurrency: concurrency}
}

// Run probes up to limit pending entries concurrently and records the
// result. Returns how many entries were marked reachable and how many
// need a deeper check.
func (t *Triager) Run(ctx context.Context, limit int) (reachable, unreachable int, err error) {
	entries, err := t.store.FetchEligible(ctx, db.Selection{
		Statuses: []types.EnrichmentStatus{types.StatusPending},
		Limit:    uint64(limit),
	})
	if err != nil {
		return 0, 0, err
	}

	results := make([]bool, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)
	for i := range entries {
		i := i
		g.Go(func() error {
			results[i] = t.probe(gctx, entries[i].WebsiteURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	for i := range entries {
		status := types.StatusNeedsTriage
		if results[i] {
			status = types.StatusReachable
		}
		if err := t.store.UpdateStatus(ctx, entries[i].ID, status); err != nil {
			// Keep going; an entry left pending is retried next run.
			log.Printf("[TRIAGE] failed to update %s: %v", entries[i].Name, err)
			continue
		}
		if results[i] {
			reachable++
		} else {
			unreachable++
		}
	}
	return reachable, unreachable, nil
}
