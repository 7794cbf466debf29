// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/assessment-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
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
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "%s none\n", label)
		return
	}
	fmt.Fprintf(sb, "%s\n", label)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// PrintResumeRecord outputs the fields extracted from a resume.
func (p *Printer) PrintResumeRecord(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", record.DisplayName())
	fmt.Fprintf(&sb, "File:     %s\n", record.DisplayFilename())
	if record.Email != nil {
		fmt.Fprintf(&sb, "Email:    %s\n", *record.Email)
	}
	if record.Phone != nil {
		fmt.Fprintf(&sb, "Phone:    %s\n", *record.Phone)
	}
	if record.LinkedIn != nil {
		fmt.Fprintf(&sb, "LinkedIn: %s\n", *record.LinkedIn)
	}
	fmt.Fprintf(&sb, "Skills:   %s\n", orNone(record.Skills))
	writeList(&sb, "Education:", record.Education)
	writeList(&sb, "Experience:", record.Experience)

	p.printBox("EXTRACTED RESUME", sb.String())
}

// PrintJobRequirement outputs a parsed job requirement.
func (p *Printer) PrintJobRequirement(job *types.JobRequirement) {
	if job == nil {
		return
	}

	var sb strings.Builder
	title := job.Title
	if title == "" {
		title = types.UnknownLabel
	}
	fmt.Fprintf(&sb, "Title:     %s\n", title)
	fmt.Fprintf(&sb, "Required:  %s\n", orNone(job.RequiredSkills))
	fmt.Fprintf(&sb, "Preferred: %s\n", orNone(job.PreferredSkills))

	p.printBox("JOB REQUIREMENT", sb.String())
}

// PrintResumeAnalysis outputs the score breakdown of one resume.
func (p *Printer) PrintResumeAnalysis(analysis *types.ResumeAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidate:  %s (%s)\n", analysis.Name, analysis.Filename)
	fmt.Fprintf(&sb, "Overall:    %.2f\n", analysis.OverallScore)
	fmt.Fprintf(&sb, "Skills:     %.2f (required %.1f%%, preferred %.1f%%)\n",
		analysis.SkillsMatch.Score, analysis.SkillsMatch.RequiredMatchPercent, analysis.SkillsMatch.PreferredMatchPercent)
	fmt.Fprintf(&sb, "Experience: %.2f\n", analysis.ExperienceScore)
	fmt.Fprintf(&sb, "Education:  %.2f\n", analysis.EducationScore)
	fmt.Fprintf(&sb, "Missing:    %s\n", orNone(analysis.MissingRequiredSkills))

	p.printBox("RESUME ANALYSIS", sb.String())
}

// PrintRanking outputs a ranked table of analyses.
func (p *Printer) PrintRanking(analyses []types.ResumeAnalysis) {
	if len(analyses) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s %-28s %7s %7s\n", "#", "Candidate", "Overall", "Skills")
	for i, a := range analyses {
		rank := a.Rank
		if rank == 0 {
			rank = i + 1
		}
		fmt.Fprintf(&sb, "%-4d %-28s %7.2f %7.2f\n", rank, pad(a.Name, 28), a.OverallScore, a.SkillsMatch.Score)
	}

	p.printBox(fmt.Sprintf("RANKING (%d resumes)", len(analyses)), sb.String())
}

// PrintInterviewSummary outputs averages, category scores and per-question feedback.
func (p *Printer) PrintInterviewSummary(summary *types.InterviewSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	avg := summary.AverageScores
	fmt.Fprintf(&sb, "Questions:          %d\n", summary.QuestionCount)
	fmt.Fprintf(&sb, "Overall:            %.2f\n", summary.OverallScore)
	fmt.Fprintf(&sb, "Relevance:          %.2f\n", avg.Relevance)
	fmt.Fprintf(&sb, "Completeness:       %.2f\n", avg.Completeness)
	fmt.Fprintf(&sb, "Clarity:            %.2f\n", avg.Clarity)
	fmt.Fprintf(&sb, "Technical accuracy: %.2f\n", avg.TechnicalAccuracy)

	seen := make(map[string]bool)
	for _, r := range summary.DetailedResults {
		if seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		if score, ok := summary.CategoryScores[r.Category]; ok {
			fmt.Fprintf(&sb, "  %-18s %.2f\n", r.Category+":", score)
		}
	}

	p.printBox("INTERVIEW SUMMARY", sb.String())

	for i, r := range summary.DetailedResults {
		p.PrintResponseAnalysis(i+1, &r)
	}
}

// PrintResponseAnalysis outputs the scores and feedback for one answer.
func (p *Printer) PrintResponseAnalysis(n int, r *types.InterviewResponseAnalysis) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", r.Question)
	fmt.Fprintf(&sb, "Overall %.2f | relevance %.2f | completeness %.2f | clarity %.2f | technical %.2f\n",
		r.OverallScore, r.RelevanceScore, r.CompletenessScore, r.ClarityScore, r.TechnicalAccuracy)
	for _, line := range strings.Split(r.Feedback, "\n") {
		if line != "" {
			fmt.Fprintf(&sb, "%s\n", line)
		}
	}

	p.printBox(fmt.Sprintf("Q%d [%s]", n, r.Category), sb.String())
}
