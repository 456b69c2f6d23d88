// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/smartcv/internal/store"
	"github.com/jonathan/smartcv/internal/types"
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

// PrintJobRecord outputs a human-readable summary of the extracted record.
func (p *Printer) PrintJobRecord(rec *types.JobRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", rec.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", rec.PositionTitle))
	if rec.Location.RemoteHybrid != "" {
		sb.WriteString(fmt.Sprintf("Mode:     %s\n", rec.Location.RemoteHybrid))
	}
	if rec.Salary.Max > 0 {
		sb.WriteString(fmt.Sprintf("Salary:   %.0f - %.0f %s\n", rec.Salary.Min, rec.Salary.Max, rec.Salary.Currency))
	}
	sb.WriteString("\n")

	if len(rec.Responsibilities) > 0 {
		sb.WriteString("Responsibilities:\n")
		count := min(len(rec.Responsibilities), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := rec.Responsibilities[i]
			if len(item) > 45 {
				item = item[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
		if len(rec.Responsibilities) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Responsibilities)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(rec.RequiredQualifications.CoreSkills) > 0 {
		skills := strings.Join(rec.RequiredQualifications.CoreSkills, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Core skills: %s\n", skills))
	}

	p.printBox("EXTRACTED JOB RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHeuristics outputs the heuristic fields in a stable key order.
func (p *Printer) PrintHeuristics(fields map[string]any) {
	if len(fields) == 0 {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%-18s %v\n", k+":", fields[k]))
	}

	p.printBox("HEURISTIC FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintUpsertResult outputs the terminal state of an ingestion and the
// record ids it touched.
func (p *Printer) PrintUpsertResult(res *store.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Outcome:      %s\n", res.Outcome))
	sb.WriteString(fmt.Sprintf("Fingerprint:  %s\n", res.Fingerprint))
	if res.CompanyID != "" {
		sb.WriteString(fmt.Sprintf("Company:      %s\n", res.CompanyID))
	}
	if res.RoleTemplateID != "" {
		sb.WriteString(fmt.Sprintf("Role:         %s\n", res.RoleTemplateID))
	}
	if res.JobID != "" {
		sb.WriteString(fmt.Sprintf("Job:          %s\n", res.JobID))
	}

	p.printBox("RECORD STORE UPSERT", strings.TrimSuffix(sb.String(), "\n"))
}
