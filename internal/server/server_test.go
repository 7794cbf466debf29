package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/config"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/jonathan/assessment-engine/internal/pipeline"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// memoryStore keeps runs in memory and reads them back for the history routes.
type memoryStore struct {
	mu        sync.Mutex
	runs      map[uuid.UUID]*db.Run
	order     []uuid.UUID
	analyses  map[uuid.UUID][]types.ResumeAnalysis
	summaries map[uuid.UUID]*types.InterviewSummary
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		runs:      make(map[uuid.UUID]*db.Run),
		analyses:  make(map[uuid.UUID][]types.ResumeAnalysis),
		summaries: make(map[uuid.UUID]*types.InterviewSummary),
	}
}

func (m *memoryStore) CreateRun(_ context.Context, kind, jobTitle string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.runs[id] = &db.Run{ID: id, Kind: kind, JobTitle: jobTitle, Status: db.StatusRunning, CreatedAt: time.Now()}
	m.order = append(m.order, id)
	return id, nil
}

func (m *memoryStore) CompleteRun(_ context.Context, runID uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.runs[runID].Status = status
	m.runs[runID].CompletedAt = &now
	return nil
}

func (m *memoryStore) SaveResumeAnalysis(_ context.Context, runID uuid.UUID, a *types.ResumeAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[runID] = append(m.analyses[runID], *a)
	return nil
}

func (m *memoryStore) SaveInterviewSummary(_ context.Context, runID uuid.UUID, s *types.InterviewSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries[runID] = s
	return nil
}

func (m *memoryStore) GetRun(_ context.Context, runID uuid.UUID) (*db.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[runID], nil
}

func (m *memoryStore) ListRuns(_ context.Context, limit int) ([]db.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := []db.Run{}
	for i := len(m.order) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, *m.runs[m.order[i]])
	}
	return runs, nil
}

func (m *memoryStore) ListResumeAnalyses(_ context.Context, runID uuid.UUID) ([]types.ResumeAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyses[runID], nil
}

func (m *memoryStore) GetInterviewSummary(_ context.Context, runID uuid.UUID) (*types.InterviewSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summaries[runID], nil
}

func testJob() types.JobRequirement {
	return types.JobRequirement{
		Title:           "Data Engineer",
		Description:     "Build data pipelines with Python and SQL.",
		RequiredSkills:  []string{"Python", "SQL"},
		PreferredSkills: []string{"AWS"},
	}
}

func testBank() *interview.QuestionBank {
	category := "Technical"
	return interview.NewQuestionBank(types.QuestionSpec{
		Question: "How do you scale a web service?",
		Keywords: []string{"caching", "load balancing"},
		Category: &category,
	})
}

func newTestServer(t *testing.T, opts ...pipeline.Option) *Server {
	t.Helper()
	opts = append([]pipeline.Option{pipeline.WithBank(testBank())}, opts...)
	return New(pipeline.New(opts...), Config{}, zap.NewNop())
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["linguistic"])
	assert.Equal(t, false, resp["store"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodOptions, "/resumes/analyze", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, RunIDHeader, w.Header().Get("Access-Control-Expose-Headers"))
}

func TestAnalyzeResume(t *testing.T) {
	store := newMemoryStore()
	s := newTestServer(t, pipeline.WithStore(store))

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes/analyze", AnalyzeResumeRequest{
		Filename: "jane.txt",
		Text:     "Skills: Python, SQL, Docker",
		Job:      testJob(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	analysis := decodeBody[types.ResumeAnalysis](t, w)
	assert.Equal(t, "jane.txt", analysis.Filename)
	assert.InDelta(t, 0.4, analysis.OverallScore, 0.001)
	assert.Equal(t, []string{"python", "sql"}, analysis.SkillsMatch.MatchedRequired)

	runID, err := uuid.Parse(w.Header().Get(RunIDHeader))
	require.NoError(t, err)
	assert.Len(t, store.analyses[runID], 1)
}

func TestAnalyzeResume_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "blank text",
			body:       AnalyzeResumeRequest{Filename: "x.txt", Text: "   ", Job: testJob()},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "no resume data",
		},
		{
			name:       "job without description",
			body:       AnalyzeResumeRequest{Text: "Python", Job: types.JobRequirement{Title: "Dev"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s.Handler(), http.MethodPost, "/resumes/analyze", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Empty(t, w.Header().Get(RunIDHeader))
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, w.Body.String())
			}
		})
	}
}

func TestRankResumes(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes/rank", RankResumesRequest{
		Job: testJob(),
		Resumes: []types.ResumeDocument{
			{Filename: "weak.txt", Text: "Skills: Java"},
			{Filename: "empty.txt", Text: ""},
			{Filename: "strong.txt", Text: "Python, SQL and AWS every day"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, w.Header().Get(RunIDHeader))

	resp := decodeBody[RankResumesResponse](t, w)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "strong.txt", resp.Analyses[0].Filename)
	assert.Equal(t, 1, resp.Analyses[0].Rank)
	assert.Equal(t, "weak.txt", resp.Analyses[1].Filename)
	assert.Equal(t, "Data Engineer", resp.Job.Title)
}

func TestRankResumes_NoResumes(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes/rank", RankResumesRequest{Job: testJob()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "resumes")
}

func TestAnalyzeInterview(t *testing.T) {
	store := newMemoryStore()
	s := newTestServer(t, pipeline.WithStore(store))

	w := doRequest(t, s.Handler(), http.MethodPost, "/interviews/analyze", map[string]any{
		"responses": []types.QAPair{
			{Question: "How do you scale a web service?", Answer: "I add caching and load balancing in front of stateless workers."},
			{Question: "", Answer: "ignored"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	summary := decodeBody[types.InterviewSummary](t, w)
	assert.Equal(t, 1, summary.QuestionCount)
	assert.Contains(t, summary.CategoryScores, "Technical")
	require.Len(t, summary.DetailedResults, 1)
	assert.Equal(t, 100.0, summary.DetailedResults[0].TechnicalAccuracy)
	assert.NotEmpty(t, w.Header().Get(RunIDHeader))
}

func TestAnalyzeInterview_Errors(t *testing.T) {
	s := newTestServer(t)

	t.Run("schema violation", func(t *testing.T) {
		w := doRequest(t, s.Handler(), http.MethodPost, "/interviews/analyze", map[string]any{"responses": []any{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing responses", func(t *testing.T) {
		w := doRequest(t, s.Handler(), http.MethodPost, "/interviews/analyze", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("nothing scored", func(t *testing.T) {
		w := doRequest(t, s.Handler(), http.MethodPost, "/interviews/analyze", map[string]any{
			"responses": []types.QAPair{{Question: "Q?", Answer: " "}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"error":"no interview responses could be scored"}`, w.Body.String())
	})
}

func TestQuestions_CRUD(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	w := doRequest(t, h, http.MethodGet, "/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[map[string]any](t, w)
	assert.EqualValues(t, 1, list["count"])

	spec := map[string]any{"question": "What is a goroutine?", "keywords": []string{"lightweight", "scheduler"}}
	w = doRequest(t, h, http.MethodPut, "/questions", spec)
	assert.Equal(t, http.StatusCreated, w.Code)
	_, ok := s.engine.Bank().Get("What is a goroutine?")
	assert.True(t, ok)

	w = doRequest(t, h, http.MethodPut, "/questions", spec)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, http.MethodGet, "/questions", nil)
	list = decodeBody[map[string]any](t, w)
	assert.EqualValues(t, 2, list["count"])
	assert.ElementsMatch(t, []any{"General", "Technical"}, list["categories"])

	w = doRequest(t, h, http.MethodDelete, "/questions?question="+url.QueryEscape("What is a goroutine?"), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, s.engine.Bank().Len())

	w = doRequest(t, h, http.MethodDelete, "/questions?question=unknown", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, s.engine.Bank().Len())

	w = doRequest(t, h, http.MethodDelete, "/questions?question="+url.QueryEscape("What is a goroutine?"), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, h, http.MethodDelete, "/questions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListQuestions_SamplesAreSeparateFromBank(t *testing.T) {
	s := New(pipeline.New(), Config{}, zap.NewNop())

	w := doRequest(t, s.Handler(), http.MethodGet, "/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Questions []types.QuestionSpec `json:"questions"`
		Count     int                  `json:"count"`
		Samples   []types.QuestionSpec `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Questions)
	assert.Zero(t, list.Count)
	require.Len(t, list.Samples, 15)
	for _, spec := range list.Samples {
		assert.Empty(t, spec.Keywords, spec.Question)
	}
	assert.Zero(t, s.engine.Bank().Len())
}

func TestPutQuestion_Invalid(t *testing.T) {
	s := newTestServer(t)

	for name, body := range map[string]any{
		"missing question": map[string]any{"keywords": []string{"x"}},
		"blank question":   map[string]any{"question": "   "},
		"empty keyword":    map[string]any{"question": "Why?", "keywords": []string{""}},
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(t, s.Handler(), http.MethodPut, "/questions", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Equal(t, 1, s.engine.Bank().Len())
}

func TestParseJob(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/jobs/parse", map[string]string{
		"text": "Backend Engineer\nRequirements: Go, PostgreSQL, Docker.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	job := decodeBody[types.JobRequirement](t, w)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Contains(t, job.RequiredSkills, "Go")
	assert.Contains(t, job.RequiredSkills, "Docker")
}

func TestParseJob_Errors(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/jobs/parse", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPost, "/jobs/parse", map[string]string{"url": "ftp://example.com/job"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not an http(s) URL")
}

func TestParseJob_FetchFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	s := newTestServer(t)
	w := doRequest(t, s.Handler(), http.MethodPost, "/jobs/parse", map[string]string{"url": upstream.URL})
	assert.Equal(t, http.StatusBadGateway, w.Code, w.Body.String())
}

func TestRuns(t *testing.T) {
	store := newMemoryStore()
	s := newTestServer(t, pipeline.WithStore(store))
	h := s.Handler()

	w := doRequest(t, h, http.MethodPost, "/resumes/analyze", AnalyzeResumeRequest{Filename: "a.txt", Text: "Python", Job: testJob()})
	require.Equal(t, http.StatusOK, w.Code)
	resumeRun := w.Header().Get(RunIDHeader)

	w = doRequest(t, h, http.MethodPost, "/interviews/analyze", map[string]any{
		"responses": []types.QAPair{{Question: "How do you scale a web service?", Answer: "Caching."}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	interviewRun := w.Header().Get(RunIDHeader)

	w = doRequest(t, h, http.MethodGet, "/runs?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[map[string]any](t, w)
	assert.EqualValues(t, 2, list["count"])

	w = doRequest(t, h, http.MethodGet, "/runs/"+resumeRun, nil)
	require.Equal(t, http.StatusOK, w.Code)
	run := decodeBody[RunResponse](t, w)
	assert.Equal(t, db.KindResumeAnalysis, run.Run.Kind)
	assert.Equal(t, db.StatusCompleted, run.Run.Status)
	assert.Len(t, run.Analyses, 1)
	assert.Nil(t, run.Interview)

	w = doRequest(t, h, http.MethodGet, "/runs/"+interviewRun, nil)
	require.Equal(t, http.StatusOK, w.Code)
	run = decodeBody[RunResponse](t, w)
	require.NotNil(t, run.Interview)
	assert.Equal(t, 1, run.Interview.QuestionCount)

	w = doRequest(t, h, http.MethodGet, "/runs/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, h, http.MethodGet, "/runs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodGet, "/runs?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRuns_WithoutStore(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodGet, "/runs", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthentication(t *testing.T) {
	jwtCfg, err := config.NewJWTConfig("server-test-secret", 1)
	require.NoError(t, err)
	s := New(pipeline.New(pipeline.WithBank(testBank())), Config{JWT: jwtCfg}, zap.NewNop())
	h := s.Handler()

	w := doRequest(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, http.MethodGet, "/questions", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := NewJWTService(jwtCfg).GenerateToken("test-client")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(pipeline.New(), Config{}, zap.New(core))

	doRequest(t, s.Handler(), http.MethodGet, "/health", nil)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "server", fields["component"])
}

func TestConcurrentBankAccess(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			doRequest(t, h, http.MethodPut, "/questions", map[string]any{
				"question": "Question " + string(rune('A'+i)) + "?",
				"keywords": []string{"answer"},
			})
		}(i)
		go func() {
			defer wg.Done()
			doRequest(t, h, http.MethodPost, "/interviews/analyze", map[string]any{
				"responses": []types.QAPair{{Question: "How do you scale a web service?", Answer: "Caching helps."}},
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, s.engine.Bank().Len())
}
