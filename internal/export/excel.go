// Package export writes ranking and interview reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SheetSummary    = "Summary"
	SheetRanking    = "Ranked Candidates"
	SheetResponses  = "Responses"
	SheetCategories = "Categories"
)

const (
	headerColor = "4472C4"
	goodColor   = "C6EFCE"
	fairColor   = "FFEB9C"
	poorColor   = "FFC7CE"
)

var resumeHeaders = []string{
	"Rank", "Candidate", "File", "Overall Score", "Skills Score", "Required Match %",
	"Preferred Match %", "Experience", "Education", "Missing Required Skills",
}

var responseHeaders = []string{
	"#", "Category", "Question", "Overall", "Relevance", "Completeness", "Clarity",
	"Technical Accuracy", "Feedback",
}

// Now is the clock used for report timestamps.
var Now = time.Now

// WriteResumeRanking writes a ranking workbook to w.
func WriteResumeRanking(w io.Writer, ranking *types.ResumeRanking) error {
	f, err := buildResumeRanking(ranking)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveResumeRanking writes a ranking workbook to path, adding the .xlsx extension when missing.
func SaveResumeRanking(path string, ranking *types.ResumeRanking) error {
	f, err := buildResumeRanking(ranking)
	if err != nil {
		return err
	}
	defer f.Close()
	return save(f, path)
}

// WriteInterviewSummary writes an interview workbook to w.
func WriteInterviewSummary(w io.Writer, summary *types.InterviewSummary) error {
	f, err := buildInterviewSummary(summary)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveInterviewSummary writes an interview workbook to path, adding the .xlsx extension when missing.
func SaveInterviewSummary(path string, summary *types.InterviewSummary) error {
	f, err := buildInterviewSummary(summary)
	if err != nil {
		return err
	}
	defer f.Close()
	return save(f, path)
}

func save(f *excelize.File, path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	if err := f.SaveAs(filepath.Clean(path)); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

type styles struct {
	header int
	label  int
	good   int
	fair   int
	poor   int
	wrap   int
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	fill := func(color string) *excelize.Style {
		return &excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: border,
		}
	}

	s := &styles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		}},
		{&s.label, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&s.good, fill(goodColor)},
		{&s.fair, fill(fairColor)},
		{&s.poor, fill(poorColor)},
		{&s.wrap, &excelize.Style{
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    border,
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

// band picks the row style for a score on a 0..scale range.
func (s *styles) band(score, scale float64) int {
	switch {
	case score >= 0.7*scale:
		return s.good
	case score >= 0.5*scale:
		return s.fair
	default:
		return s.poor
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, cell(1, 1), cell(len(headers), 1), style); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if err := f.SetCellValue(sheet, cell(i+1, row), v); err != nil {
			return err
		}
	}
	return nil
}

func writeLabels(f *excelize.File, sheet string, labelStyle int, pairs [][2]any) error {
	for i, p := range pairs {
		row := i + 1
		if err := writeRow(f, sheet, row, []any{p[0], p[1]}); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), cell(1, row), labelStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "A", 28)
}

func buildResumeRanking(ranking *types.ResumeRanking) (*excelize.File, error) {
	if ranking == nil {
		return nil, fmt.Errorf("resume ranking is required")
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SheetRanking); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeResumeSummary(f, st, ranking); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeResumeRows(f, st, ranking.Analyses); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create ranking sheet: %w", err)
	}
	return f, nil
}

func writeResumeSummary(f *excelize.File, st *styles, ranking *types.ResumeRanking) error {
	pairs := [][2]any{
		{"Job Title", ranking.Job.Title},
		{"Generated", Now().Format("2006-01-02 15:04:05")},
		{"Candidates", len(ranking.Analyses)},
		{"Required Skills", strings.Join(ranking.Job.RequiredSkills, ", ")},
		{"Preferred Skills", strings.Join(ranking.Job.PreferredSkills, ", ")},
	}
	if len(ranking.Analyses) > 0 {
		best := ranking.Analyses[0]
		var total float64
		for _, a := range ranking.Analyses {
			total += a.OverallScore
			if a.OverallScore > best.OverallScore {
				best = a
			}
		}
		pairs = append(pairs,
			[2]any{"Top Candidate", best.Name},
			[2]any{"Top Score", best.OverallScore},
			[2]any{"Average Score", total / float64(len(ranking.Analyses))},
		)
	}
	if err := writeLabels(f, SheetSummary, st.label, pairs); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "B", "B", 60)
}

func writeResumeRows(f *excelize.File, st *styles, analyses []types.ResumeAnalysis) error {
	if err := writeHeader(f, SheetRanking, resumeHeaders, st.header); err != nil {
		return err
	}
	for i, a := range analyses {
		row := i + 2
		rank := a.Rank
		if rank == 0 {
			rank = i + 1
		}
		values := []any{
			rank, a.Name, a.Filename, a.OverallScore, a.SkillsMatch.Score,
			a.SkillsMatch.RequiredMatchPercent, a.SkillsMatch.PreferredMatchPercent,
			a.ExperienceScore, a.EducationScore, strings.Join(a.MissingRequiredSkills, ", "),
		}
		if err := writeRow(f, SheetRanking, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetRanking, cell(1, row), cell(len(values), row), st.band(a.OverallScore, 1)); err != nil {
			return err
		}
	}
	if len(analyses) > 0 {
		ref := fmt.Sprintf("A1:%s", cell(len(resumeHeaders), len(analyses)+1))
		if err := f.AutoFilter(SheetRanking, ref, []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetRanking, "B", "C", 25); err != nil {
		return err
	}
	return f.SetColWidth(SheetRanking, "J", "J", 40)
}

func buildInterviewSummary(summary *types.InterviewSummary) (*excelize.File, error) {
	if summary == nil {
		return nil, fmt.Errorf("interview summary is required")
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetResponses, SheetCategories} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	avg := summary.AverageScores
	pairs := [][2]any{
		{"Generated", Now().Format("2006-01-02 15:04:05")},
		{"Questions", summary.QuestionCount},
		{"Overall Score", summary.OverallScore},
		{"Relevance", avg.Relevance},
		{"Completeness", avg.Completeness},
		{"Clarity", avg.Clarity},
		{"Technical Accuracy", avg.TechnicalAccuracy},
	}
	if err := writeLabels(f, SheetSummary, st.label, pairs); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeResponseRows(f, st, summary.DetailedResults); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create responses sheet: %w", err)
	}
	if err := writeCategoryRows(f, st, summary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create categories sheet: %w", err)
	}
	return f, nil
}

func writeResponseRows(f *excelize.File, st *styles, results []types.InterviewResponseAnalysis) error {
	if err := writeHeader(f, SheetResponses, responseHeaders, st.header); err != nil {
		return err
	}
	for i, r := range results {
		row := i + 2
		values := []any{
			i + 1, r.Category, r.Question, r.OverallScore, r.RelevanceScore,
			r.CompletenessScore, r.ClarityScore, r.TechnicalAccuracy, r.Feedback,
		}
		if err := writeRow(f, SheetResponses, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetResponses, cell(1, row), cell(8, row), st.band(r.OverallScore, 100)); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetResponses, cell(9, row), cell(9, row), st.wrap); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetResponses, "C", "C", 50); err != nil {
		return err
	}
	return f.SetColWidth(SheetResponses, "I", "I", 60)
}

func writeCategoryRows(f *excelize.File, st *styles, summary *types.InterviewSummary) error {
	if err := writeHeader(f, SheetCategories, []string{"Category", "Average Score"}, st.header); err != nil {
		return err
	}
	// Categories appear in order of first occurrence in the detailed results.
	seen := make(map[string]bool)
	row := 2
	for _, r := range summary.DetailedResults {
		if seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		score, ok := summary.CategoryScores[r.Category]
		if !ok {
			continue
		}
		if err := writeRow(f, SheetCategories, row, []any{r.Category, score}); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetCategories, cell(1, row), cell(2, row), st.band(score, 100)); err != nil {
			return err
		}
		row++
	}
	return f.SetColWidth(SheetCategories, "A", "A", 25)
}
