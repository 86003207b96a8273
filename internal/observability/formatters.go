// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Linda-Mensah/hire-link/internal/pipeline"
	"github.com/Linda-Mensah/hire-link/internal/storage"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of candidates listed per column
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintJobs outputs the job catalog.
func (p *Printer) PrintJobs(jobs []types.Job) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", job.ID, job.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s\n", job.Department, job.Location))
		sb.WriteString(fmt.Sprintf("    %s · posted %s", job.SalaryRange, job.PostedDate))
		if i < len(jobs)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("OPEN POSITIONS", sb.String())
}

// PrintBoard outputs one box per pipeline stage with the candidates in it.
func (p *Printer) PrintBoard(candidates []types.Candidate) {
	byStage := make(map[types.Stage][]types.Candidate, len(pipeline.Stages))
	for _, c := range candidates {
		byStage[c.Stage] = append(byStage[c.Stage], c)
	}

	for _, def := range pipeline.Stages {
		column := byStage[def.ID]

		var sb strings.Builder
		if len(column) == 0 {
			sb.WriteString("(empty)")
		}

		count := min(len(column), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := column[i]
			sb.WriteString(fmt.Sprintf("• %s  %s", c.FullName, scoreLabel(c.Score)))
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
		if len(column) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more", len(column)-maxItemsToShow))
		}

		p.printBox(fmt.Sprintf("%s (%d)", strings.ToUpper(def.Title), len(column)), sb.String())
	}
}

// PrintCandidate outputs a candidate's full record.
func (p *Printer) PrintCandidate(c types.Candidate) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ID:         %s\n", c.ID))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", c.Email))
	sb.WriteString(fmt.Sprintf("Phone:      %s\n", c.Phone))
	sb.WriteString(fmt.Sprintf("Experience: %g years\n", c.YearsOfExperience))
	sb.WriteString(fmt.Sprintf("Applied:    %s\n", c.ApplicationDate.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Stage:      %s\n", pipeline.Title(c.Stage)))
	sb.WriteString(fmt.Sprintf("Score:      %s\n", scoreLabel(c.Score)))

	if len(c.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:     %s\n", strings.Join(c.Skills, ", ")))
	}
	if url, ok := c.PortfolioURL.Get(); ok {
		sb.WriteString(fmt.Sprintf("Portfolio:  %s\n", url))
	}
	if at, ok := c.InterviewDate.Get(); ok {
		sb.WriteString(fmt.Sprintf("Interview:  %s\n", at.Format("2006-01-02 15:04 MST")))
	}
	if notes, ok := c.Notes.Get(); ok && notes != "" {
		sb.WriteString(fmt.Sprintf("\nNotes:\n  %s\n", notes))
	}
	if c.OfferLetter.IsSet() {
		sb.WriteString("\nOffer letter on file\n")
	}

	p.printBox(strings.ToUpper(c.FullName), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLoadResult reports how a store was rehydrated.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLoadResult(name string, result storage.LoadResult) {
	switch result {
	case storage.LoadCorrupted:
		fmt.Fprintf(p.out, "⚠ %s: stored state was corrupted, using defaults\n", name)
	case storage.LoadFresh:
		fmt.Fprintf(p.out, "• %s: no stored state, using defaults\n", name)
	default:
		fmt.Fprintf(p.out, "✓ %s: restored\n", name)
	}
}

func scoreLabel(score types.Optional[int]) string {
	v, ok := score.Get()
	if !ok {
		return "unscored"
	}
	return fmt.Sprintf("%d/5 (%s)", v, types.BandForScore(score))
}
