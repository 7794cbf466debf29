package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/jonathan/assessment-engine/internal/pipeline"
	"github.com/jonathan/assessment-engine/internal/schemas"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// defaultRunLimit bounds GET /runs when no limit is given.
const defaultRunLimit = 50

// AnalyzeResumeRequest represents the request body for /resumes/analyze
type AnalyzeResumeRequest struct {
	Filename string               `json:"filename"`
	Text     string               `json:"text"`
	Job      types.JobRequirement `json:"job"`
}

// RankResumesRequest represents the request body for /resumes/rank
type RankResumesRequest struct {
	Job     types.JobRequirement   `json:"job"`
	Resumes []types.ResumeDocument `json:"resumes"`
}

// RankResumesResponse represents the response for /resumes/rank
type RankResumesResponse struct {
	Job      types.JobRequirement   `json:"job"`
	Analyses []types.ResumeAnalysis `json:"analyses"`
	Count    int                    `json:"count"`
}

// RunResponse represents the response for /runs/{id}
type RunResponse struct {
	Run       *db.Run                 `json:"run"`
	Analyses  []types.ResumeAnalysis  `json:"analyses,omitempty"`
	Interview *types.InterviewSummary `json:"interview,omitempty"`
}

// readBody reads a capped request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return data, nil
}

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// setRunID exposes the persisted run id, if any.
func setRunID(w http.ResponseWriter, runID uuid.UUID) {
	if runID != uuid.Nil {
		w.Header().Set(RunIDHeader, runID.String())
	}
}

// handleAnalyzeResume scores one resume against a job
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeResumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := req.Job.Validate(); err != nil {
		s.failure(w, fmt.Errorf("invalid job: %w", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.failure(w, &ErrUnprocessable{Message: "no resume data"})
		return
	}

	doc := types.ResumeDocument{Filename: req.Filename, Text: req.Text}
	analysis, runID := s.engine.AnalyzeResume(r.Context(), doc, req.Job)
	if analysis == nil {
		s.failure(w, &ErrUnprocessable{Message: "no resume data"})
		return
	}

	setRunID(w, runID)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleRankResumes scores a batch of resumes and sorts them by overall score
func (s *Server) handleRankResumes(w http.ResponseWriter, r *http.Request) {
	var req RankResumesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := req.Job.Validate(); err != nil {
		s.failure(w, fmt.Errorf("invalid job: %w", err))
		return
	}
	if len(req.Resumes) == 0 {
		s.failure(w, &ErrValidation{Field: "resumes", Message: "at least one resume is required"})
		return
	}

	ranking, runID, err := s.engine.RankResumes(r.Context(), req.Resumes, req.Job)
	if err != nil {
		s.failure(w, err)
		return
	}

	setRunID(w, runID)
	s.jsonResponse(w, http.StatusOK, RankResumesResponse{
		Job:      ranking.Job,
		Analyses: ranking.Analyses,
		Count:    len(ranking.Analyses),
	})
}

// handleAnalyzeInterview scores a set of interview responses
func (s *Server) handleAnalyzeInterview(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := schemas.Validate(schemas.InterviewRequest, body); err != nil {
		s.failure(w, err)
		return
	}

	var req types.InterviewRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.failure(w, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, err)
		return
	}

	s.bankMu.RLock()
	summary, runID := s.engine.AnalyzeInterview(r.Context(), req.Responses)
	s.bankMu.RUnlock()

	if summary == nil {
		s.failure(w, &ErrUnprocessable{Message: "no interview responses could be scored"})
		return
	}

	setRunID(w, runID)
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleParseJob builds a job requirement from posted text or a posting URL
func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var src pipeline.JobSource
	if err := decodeJSON(w, r, &src); err != nil {
		s.failure(w, err)
		return
	}
	if strings.TrimSpace(src.Text) == "" && strings.TrimSpace(src.URL) == "" {
		s.failure(w, &ErrValidation{Field: "text", Message: "either text or url is required"})
		return
	}

	job, err := s.engine.ParseJob(r.Context(), src)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleListQuestions returns the question bank along with the practice questions
// clients can offer as prompts. Practice questions are not part of the bank.
func (s *Server) handleListQuestions(w http.ResponseWriter, _ *http.Request) {
	s.bankMu.RLock()
	bank := s.engine.Bank()
	specs := bank.Specs()
	categories := bank.Categories()
	s.bankMu.RUnlock()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"questions":  specs,
		"categories": categories,
		"count":      len(specs),
		"samples":    interview.SampleQuestions(),
	})
}

// handlePutQuestion adds or replaces a question in the bank
func (s *Server) handlePutQuestion(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := schemas.Validate(schemas.QuestionSpec, body); err != nil {
		s.failure(w, err)
		return
	}

	var spec types.QuestionSpec
	if err := json.Unmarshal(body, &spec); err != nil {
		s.failure(w, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	spec.Question = strings.TrimSpace(spec.Question)
	if err := spec.Validate(); err != nil {
		s.failure(w, err)
		return
	}

	s.bankMu.Lock()
	_, existed := s.engine.Bank().Get(spec.Question)
	s.engine.Bank().Add(spec)
	s.bankMu.Unlock()

	s.logger.Info("question stored", zap.String("question", spec.Question), zap.Bool("replaced", existed))
	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, spec)
}

// handleDeleteQuestion removes a question from the bank. Removing an unknown
// question succeeds.
func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	question := strings.TrimSpace(r.URL.Query().Get("question"))
	if question == "" {
		s.failure(w, &ErrValidation{Field: "question", Message: "query parameter is required"})
		return
	}

	s.bankMu.Lock()
	_, existed := s.engine.Bank().Get(question)
	s.engine.Bank().Remove(question)
	s.bankMu.Unlock()

	s.logger.Info("question removed", zap.String("question", question), zap.Bool("existed", existed))
	w.WriteHeader(http.StatusNoContent)
}

// handleListRuns lists recent persisted runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.failure(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

// handleGetRun returns a persisted run with its results
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.failure(w, &ErrValidation{Field: "id", Message: "invalid run ID"})
		return
	}

	ctx := r.Context()
	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		s.failure(w, err)
		return
	}
	if run == nil {
		s.failure(w, &ErrNotFound{Resource: "run", ID: idStr})
		return
	}

	resp := RunResponse{Run: run}
	switch run.Kind {
	case db.KindInterview:
		resp.Interview, err = s.runs.GetInterviewSummary(ctx, runID)
	default:
		resp.Analyses, err = s.runs.ListResumeAnalyses(ctx, runID)
	}
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
