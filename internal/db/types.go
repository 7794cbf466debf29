package db

import (
	"time"

	"github.com/google/uuid"
)

// Run kinds.
const (
	KindResumeAnalysis = "resume_analysis"
	KindResumeRanking  = "resume_ranking"
	KindInterview      = "interview"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run represents an assessment run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	JobTitle    string     `json:"job_title"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsTerminal reports whether the run has finished.
func (r *Run) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// ValidStatus reports whether status is a known run status.
func ValidStatus(status string) bool {
	switch status {
	case StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
