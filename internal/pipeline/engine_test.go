package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/extraction"
	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/jonathan/assessment-engine/internal/linguistic"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStore struct {
	mu        sync.Mutex
	runs      map[uuid.UUID]string
	kinds     []string
	analyses  []types.ResumeAnalysis
	summaries []types.InterviewSummary
	saveErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{runs: make(map[uuid.UUID]string)}
}

func (s *fakeStore) CreateRun(_ context.Context, kind, _ string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.runs[id] = db.StatusRunning
	s.kinds = append(s.kinds, kind)
	return id, nil
}

func (s *fakeStore) CompleteRun(_ context.Context, runID uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = status
	return nil
}

func (s *fakeStore) SaveResumeAnalysis(_ context.Context, _ uuid.UUID, a *types.ResumeAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.analyses = append(s.analyses, *a)
	return nil
}

func (s *fakeStore) SaveInterviewSummary(_ context.Context, _ uuid.UUID, summary *types.InterviewSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.summaries = append(s.summaries, *summary)
	return nil
}

func testJob() types.JobRequirement {
	return types.JobRequirement{
		Title:           "Data Engineer",
		Description:     "Build data pipelines with Python and SQL.",
		RequiredSkills:  []string{"Python", "SQL"},
		PreferredSkills: []string{"AWS"},
	}
}

func TestEngine_AnalyzeResume(t *testing.T) {
	e := New()

	analysis, runID := e.AnalyzeResume(context.Background(),
		types.ResumeDocument{Filename: "jane.txt", Text: "Skills: Python, SQL, Docker"}, testJob())
	require.NotNil(t, analysis)
	assert.Equal(t, uuid.Nil, runID)
	assert.Equal(t, "jane.txt", analysis.Filename)
	assert.Equal(t, types.UnknownLabel, analysis.Name)
	assert.Equal(t, []string{"python", "sql"}, analysis.SkillsMatch.MatchedRequired)
	assert.Empty(t, analysis.MissingRequiredSkills)
	assert.InDelta(t, 66.67, analysis.SkillsMatch.Score, 0.001)
	assert.InDelta(t, 0.4, analysis.OverallScore, 0.001)
	assert.Zero(t, analysis.ExperienceScore)
}

func TestEngine_AnalyzeResume_Blank(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := New(WithLogger(zap.New(core)))

	analysis, runID := e.AnalyzeResume(context.Background(), types.ResumeDocument{Filename: "x.txt", Text: "  "}, testJob())
	assert.Nil(t, analysis)
	assert.Equal(t, uuid.Nil, runID)
	assert.Equal(t, 1, logs.FilterMessage("no resume data provided for analysis").Len())
}

func TestEngine_RankResumes(t *testing.T) {
	store := newFakeStore()
	e := New(WithStore(store))

	docs := []types.ResumeDocument{
		{Filename: "weak.txt", Text: "Skills: Java"},
		{Filename: "empty.txt", Text: ""},
		{Filename: "strong.txt", Text: "Python, SQL and AWS every day"},
	}
	ranking, runID, err := e.RankResumes(context.Background(), docs, testJob())
	require.NoError(t, err)
	require.Len(t, ranking.Analyses, 2)
	assert.Equal(t, "strong.txt", ranking.Analyses[0].Filename)
	assert.Equal(t, 1, ranking.Analyses[0].Rank)
	assert.Equal(t, "weak.txt", ranking.Analyses[1].Filename)
	assert.Equal(t, 2, ranking.Analyses[1].Rank)
	assert.Equal(t, "Data Engineer", ranking.Job.Title)

	require.NotEqual(t, uuid.Nil, runID)
	assert.Equal(t, db.StatusCompleted, store.runs[runID])
	assert.Equal(t, []string{db.KindResumeRanking}, store.kinds)
	assert.Len(t, store.analyses, 2)
}

func TestEngine_RankResumes_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New().RankResumes(ctx, []types.ResumeDocument{{Filename: "a.txt", Text: "Python"}}, testJob())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_StoreFailureDoesNotFailAssessment(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	core, logs := observer.New(zap.WarnLevel)
	e := New(WithStore(store), WithLogger(zap.New(core)))

	analysis, runID := e.AnalyzeResume(context.Background(), types.ResumeDocument{Filename: "a.txt", Text: "Python"}, testJob())
	require.NotNil(t, analysis)
	assert.Equal(t, uuid.Nil, runID)
	assert.Equal(t, 1, logs.FilterMessage("failed to save run results").Len())
	for _, status := range store.runs {
		assert.Equal(t, db.StatusFailed, status)
	}
}

func TestEngine_AnalyzeInterview(t *testing.T) {
	store := newFakeStore()
	var events []ProgressEvent
	e := New(WithStore(store), WithProgress(func(ev ProgressEvent) { events = append(events, ev) }))

	summary, runID := e.AnalyzeInterview(context.Background(), []types.QAPair{
		{Question: "Tell me about yourself.", Answer: "I am a backend engineer. I build APIs in Go."},
		{Question: "", Answer: "skipped"},
	})
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.QuestionCount)
	assert.NotEqual(t, uuid.Nil, runID)
	require.Len(t, store.summaries, 1)

	require.Len(t, events, 1)
	assert.Equal(t, StepAnalyzeInterview, events[0].Step)
	assert.Equal(t, runID.String(), events[0].RunID)
}

func TestEngine_AnalyzeInterview_NothingScored(t *testing.T) {
	store := newFakeStore()
	e := New(WithStore(store))

	summary, runID := e.AnalyzeInterview(context.Background(), []types.QAPair{{Question: "Q?", Answer: " "}})
	assert.Nil(t, summary)
	assert.Equal(t, uuid.Nil, runID)
	assert.Empty(t, store.kinds)
}

func TestEngine_DefaultBankIsEmpty(t *testing.T) {
	e := New()
	assert.Zero(t, e.Bank().Len())

	summary, _ := e.AnalyzeInterview(context.Background(), []types.QAPair{{
		Question: "What's your experience with cloud technologies?",
		Answer:   "I enjoy learning new things every week.",
	}})
	require.NotNil(t, summary)
	result := summary.DetailedResults[0]
	assert.Equal(t, types.DefaultCategory, result.Category)
	assert.Equal(t, 50.0, result.CompletenessScore)
	assert.Equal(t, 50.0, result.TechnicalAccuracy)
}

func TestEngine_CustomComponents(t *testing.T) {
	category := "Custom"
	bank := interview.NewQuestionBank(types.QuestionSpec{Question: "Why Go?", Keywords: []string{"goroutines"}, Category: &category})
	e := New(
		WithService(linguistic.Unavailable{}),
		WithTaxonomy(extraction.NewSkillTaxonomy([]string{"elixir"})),
		WithBank(bank),
	)

	record := e.ExtractResume(context.Background(), types.ResumeDocument{Filename: "a.txt", Text: "Elixir and Python"})
	assert.Equal(t, []string{"elixir"}, record.Skills)

	summary, _ := e.AnalyzeInterview(context.Background(), []types.QAPair{{Question: "Why Go?", Answer: "Goroutines are cheap."}})
	require.NotNil(t, summary)
	assert.Contains(t, summary.CategoryScores, "Custom")
	assert.Same(t, bank, e.Bank())
}

func TestEngine_Close(t *testing.T) {
	var order []int
	e := New(
		WithCloser(func() error { order = append(order, 1); return nil }),
		WithCloser(func() error { order = append(order, 2); return errors.New("boom") }),
	)

	err := e.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, e.Close())
}
