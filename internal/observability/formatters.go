// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/bedwinning/enrichment-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEntry outputs a header for the entry about to be enriched.
func (p *Printer) PrintEntry(entry *types.Entry) {
	if entry == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:    %s\n", entry.Name))
	sb.WriteString(fmt.Sprintf("URL:     %s\n", entry.WebsiteURL))
	sb.WriteString(fmt.Sprintf("Status:  %s", entry.EnrichmentStatus))
	if entry.StoredContent != nil {
		sb.WriteString("\nContent: stored crawl available")
	}

	p.printBox("ENRICHING ENTRY", sb.String())
}

// PrintPricingFacts outputs the deterministic pricing signals found on the page.
func (p *Printer) PrintPricingFacts(facts *types.PricingFacts) {
	if facts == nil {
		return
	}

	var sb strings.Builder
	model := facts.Model
	if model == "" {
		model = "(none detected)"
	}
	sb.WriteString(fmt.Sprintf("Model:      %s\n", model))
	if facts.Amount != nil {
		sb.WriteString(fmt.Sprintf("Price:      %.2f %s\n", *facts.Amount, facts.Currency))
	} else {
		sb.WriteString("Price:      (none detected)\n")
	}
	if facts.TrialDays != nil {
		sb.WriteString(fmt.Sprintf("Trial:      %d days\n", *facts.TrialDays))
	}
	sb.WriteString(fmt.Sprintf("Confidence: %s", facts.Confidence))

	p.printBox("PAGE PRICING SIGNALS", sb.String())
}

// PrintRecord outputs a summary of the normalized record and its scores.
func (p *Printer) PrintRecord(rec *types.NormalizedRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	tagline := rec.Tagline
	if len(tagline) > 45 {
		tagline = tagline[:42] + "..."
	}
	sb.WriteString(fmt.Sprintf("Tagline:  %s\n", tagline))
	sb.WriteString(fmt.Sprintf("Category: %s\n", rec.PrimaryCategory))
	sb.WriteString(fmt.Sprintf("Pricing:  %s", rec.PricingModel))
	if rec.StartingPrice != nil {
		sb.WriteString(fmt.Sprintf(" from %.2f %s", *rec.StartingPrice, rec.PriceCurrency))
	}
	sb.WriteString("\n\n")

	if len(rec.Tags) > 0 {
		sb.WriteString("Tags:\n")
		count := min(len(rec.Tags), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.Tags[i]))
		}
		if len(rec.Tags) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Tags)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Transparency: %d/100\n", rec.TransparencyScore))
	sb.WriteString(fmt.Sprintf("Experience:   %.1f/10\n", rec.ExperienceScore))
	sb.WriteString(fmt.Sprintf("Quality:      %d/100", rec.QualityScore))

	p.printBox("ENRICHED RECORD", sb.String())
}

// PrintBatchSummary outputs the outcome counts for a completed batch.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchSummary(completed, skipped, failed int) {
	if completed == 0 && skipped == 0 && failed == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO ENTRIES PROCESSED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Completed: %d\n", completed))
	sb.WriteString(fmt.Sprintf("⏭  Skipped:   %d\n", skipped))
	sb.WriteString(fmt.Sprintf("⚠  Failed:    %d", failed))

	p.printBox("BATCH SUMMARY", sb.String())
}
