package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/assessment-engine/internal/types"
)

// SaveResumeAnalysis stores one resume analysis under a run. Saving the same
// filename twice for a run replaces the earlier analysis.
func (db *DB) SaveResumeAnalysis(ctx context.Context, runID uuid.UUID, analysis *types.ResumeAnalysis) error {
	if analysis == nil {
		return fmt.Errorf("resume analysis is required")
	}
	content, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal resume analysis: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resume_analyses (run_id, filename, name, overall_score, rank, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (run_id, filename) DO UPDATE
		 SET name = $3, overall_score = $4, rank = $5, content = $6, created_at = NOW()`,
		runID, analysis.Filename, analysis.Name, analysis.OverallScore, analysis.Rank, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume analysis %s: %w", analysis.Filename, err)
	}
	return nil
}

// ListResumeAnalyses returns the analyses of a run ordered by overall score descending
func (db *DB) ListResumeAnalyses(ctx context.Context, runID uuid.UUID) ([]types.ResumeAnalysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT content FROM resume_analyses
		 WHERE run_id = $1
		 ORDER BY overall_score DESC, created_at ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume analyses: %w", err)
	}
	defer rows.Close()

	analyses := []types.ResumeAnalysis{}
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan resume analysis: %w", err)
		}
		var analysis types.ResumeAnalysis
		if err := json.Unmarshal(content, &analysis); err != nil {
			return nil, fmt.Errorf("failed to decode resume analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}
	return analyses, rows.Err()
}

// SaveInterviewSummary stores the summary of an interview run
func (db *DB) SaveInterviewSummary(ctx context.Context, runID uuid.UUID, summary *types.InterviewSummary) error {
	if summary == nil {
		return fmt.Errorf("interview summary is required")
	}
	content, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal interview summary: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO interview_summaries (run_id, overall_score, question_count, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id) DO UPDATE
		 SET overall_score = $2, question_count = $3, content = $4, created_at = NOW()`,
		runID, summary.OverallScore, summary.QuestionCount, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save interview summary: %w", err)
	}
	return nil
}

// GetInterviewSummary retrieves the summary of a run, returning nil when none was saved
func (db *DB) GetInterviewSummary(ctx context.Context, runID uuid.UUID) (*types.InterviewSummary, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM interview_summaries WHERE run_id = $1`,
		runID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview summary: %w", err)
	}

	var summary types.InterviewSummary
	if err := json.Unmarshal(content, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode interview summary: %w", err)
	}
	return &summary, nil
}
