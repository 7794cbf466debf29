package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/types"
)

// RunReader reads persisted runs back for the history routes.
type RunReader interface {
	GetRun(ctx context.Context, runID uuid.UUID) (*db.Run, error)
	ListRuns(ctx context.Context, limit int) ([]db.Run, error)
	ListResumeAnalyses(ctx context.Context, runID uuid.UUID) ([]types.ResumeAnalysis, error)
	GetInterviewSummary(ctx context.Context, runID uuid.UUID) (*types.InterviewSummary, error)
}

var _ RunReader = (*db.DB)(nil)
