package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRanking() *types.ResumeRanking {
	return &types.ResumeRanking{
		Job: types.JobRequirement{
			Title:          "Data Engineer",
			RequiredSkills: []string{"python", "sql"},
		},
		Analyses: []types.ResumeAnalysis{
			{Name: "Ann Lee", Filename: "ann.txt", OverallScore: 0.82, Rank: 1},
			{Name: "Bo Chen", Filename: "bo.txt", OverallScore: 0.31, Rank: 2, MissingRequiredSkills: []string{"sql"}},
		},
	}
}

func sampleSummary() *types.InterviewSummary {
	return &types.InterviewSummary{
		OverallScore:   65,
		CategoryScores: map[string]float64{"Technical": 80, "Behavioral": 50},
		QuestionCount:  2,
		DetailedResults: []types.InterviewResponseAnalysis{
			{Question: "Explain indexes.", Category: "Technical", OverallScore: 80, Feedback: "Good."},
			{Question: "Describe a conflict.", Category: "Behavioral", OverallScore: 50, Feedback: "Add detail."},
		},
	}
}

func openBuffer(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteResumeRanking(t *testing.T) {
	Now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { Now = time.Now })

	var buf bytes.Buffer
	require.NoError(t, WriteResumeRanking(&buf, sampleRanking()))

	f := openBuffer(t, &buf)
	assert.Equal(t, []string{SheetSummary, SheetRanking}, f.GetSheetList())

	title, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", title)

	generated, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 09:30:00", generated)

	top, err := f.GetCellValue(SheetSummary, "B6")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", top)

	rows, err := f.GetRows(SheetRanking)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, resumeHeaders, rows[0])
	assert.Equal(t, "Ann Lee", rows[1][1])
	assert.Equal(t, "bo.txt", rows[2][2])
	assert.Equal(t, "sql", rows[2][9])
}

func TestWriteResumeRanking_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResumeRanking(&buf, &types.ResumeRanking{Job: types.JobRequirement{Title: "X"}}))

	f := openBuffer(t, &buf)
	rows, err := f.GetRows(SheetRanking)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteResumeRanking_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteResumeRanking(&buf, nil))
	assert.Error(t, WriteInterviewSummary(&buf, nil))
}

func TestWriteInterviewSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInterviewSummary(&buf, sampleSummary()))

	f := openBuffer(t, &buf)
	assert.Equal(t, []string{SheetSummary, SheetResponses, SheetCategories}, f.GetSheetList())

	rows, err := f.GetRows(SheetResponses)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, responseHeaders, rows[0])
	assert.Equal(t, "Explain indexes.", rows[1][2])
	assert.Equal(t, "Add detail.", rows[2][8])

	categories, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Technical", categories[1][0])
	assert.Equal(t, "Behavioral", categories[2][0])
}

func TestSaveResumeRanking_AddsExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveResumeRanking(filepath.Join(dir, "report"), sampleRanking()))

	_, err := os.Stat(filepath.Join(dir, "report.xlsx"))
	assert.NoError(t, err)

	require.NoError(t, SaveInterviewSummary(filepath.Join(dir, "interview.XLSX"), sampleSummary()))
	_, err = os.Stat(filepath.Join(dir, "interview.XLSX"))
	assert.NoError(t, err)
}

func TestStyles_Band(t *testing.T) {
	s := &styles{good: 1, fair: 2, poor: 3}
	assert.Equal(t, 1, s.band(0.7, 1))
	assert.Equal(t, 2, s.band(0.55, 1))
	assert.Equal(t, 3, s.band(0.2, 1))
	assert.Equal(t, 1, s.band(85, 100))
	assert.Equal(t, 2, s.band(50, 100))
	assert.Equal(t, 3, s.band(49.9, 100))
}
