package pipeline

// Step names reported through progress events.
const (
	StepExtractResume    = "extract_resume"
	StepAnalyzeResume    = "analyze_resume"
	StepRankResumes      = "rank_resumes"
	StepAnalyzeInterview = "analyze_interview"
	StepParseJob         = "parse_job"
)

// ProgressEvent represents a progress update during an assessment
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when assessment progress occurs
type ProgressCallback func(event ProgressEvent)

// emitProgress calls the progress callback if configured
func (e *Engine) emitProgress(step, message, runID string, content any) {
	if e.onProgress == nil {
		return
	}
	e.onProgress(ProgressEvent{
		Step:    step,
		Message: message,
		RunID:   runID,
		Content: content,
	})
}
