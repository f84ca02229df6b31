// Package types provides type definitions for structured data used throughout the enrichment engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// EnrichmentStatus tracks where an entry sits in the triage/enrichment lifecycle.
type EnrichmentStatus string

// Lifecycle states for a directory entry.
const (
	// StatusPending means the entry was created but never triaged.
	StatusPending EnrichmentStatus = "pending"
	// StatusReachable means the website answered a triage probe and the entry is ready for enrichment.
	StatusReachable EnrichmentStatus = "reachable"
	// StatusNeedsTriage means a lightweight probe failed and the entry needs a full browser check.
	StatusNeedsTriage EnrichmentStatus = "needs_triage"
	// StatusCompleted means a full enrichment pass was persisted.
	StatusCompleted EnrichmentStatus = "completed"
	// StatusNeedsPricing flags a completed entry whose pricing fields were cleared for re-extraction.
	StatusNeedsPricing EnrichmentStatus = "needs_pricing"
)

// Entry is a directory tool record undergoing enrichment.
// Entries are created outside this worker; the worker only mutates
// enrichment fields and the status column, never deletes rows.
type Entry struct {
	ID               uuid.UUID
	Name             string
	Slug             string
	WebsiteURL       string
	EnrichmentStatus EnrichmentStatus
	StoredContent    *StoredContent
	SocialSnippets   []SocialSnippet
	PriorityScore    *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StoredContent is the opaque acquired-content blob produced by an
// earlier crawl and kept on the entry row as JSON.
type StoredContent struct {
	CleanText string `json:"clean_text"`
	CrawledAt string `json:"crawled_at,omitempty"`
}

// SocialSnippet is a prior piece of social feedback (forum/review
// excerpt) attached to an entry. Snippets are embedded in the
// extraction prompt when present.
type SocialSnippet struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
}
