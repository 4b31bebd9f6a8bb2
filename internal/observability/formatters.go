// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Lalith1612/Youtube-LLM/internal/types"
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

// PrintJobStatus outputs a human-readable summary of a playlist job.
func (p *Printer) PrintJobStatus(job *types.PlaylistJob) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Playlist: %s\n", job.PlaylistID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", job.Status))
	sb.WriteString(fmt.Sprintf("Message:  %s", job.Message))

	p.printBox("PLAYLIST JOB", sb.String())
}

// PrintStageReport outputs the outcome of a pipeline stage, including
// the first few per-item failures.
func (p *Printer) PrintStageReport(stage string, report *types.StageReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Completed: %d\n", report.Completed))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", len(report.Failures)))

	if len(report.Failures) > 0 {
		sb.WriteString("\nFailures:\n")
		count := min(len(report.Failures), maxItemsToShow)
		for i := 0; i < count; i++ {
			failure := report.Failures[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", failure.Item, failure.Reason))
		}
		if len(report.Failures) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Failures)-maxItemsToShow))
		}
	}

	p.printBox(strings.ToUpper(stage)+" REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnswer outputs an answer with its cited sources.
func (p *Printer) PrintAnswer(answer string, sources []string) {
	var sb strings.Builder
	sb.WriteString(answer)

	if len(sources) > 0 {
		sb.WriteString("\n\nSources:\n")
		for _, source := range sources {
			sb.WriteString(fmt.Sprintf("  • %s\n", source))
		}
	}

	p.printBox("ANSWER", strings.TrimSuffix(sb.String(), "\n"))
}
