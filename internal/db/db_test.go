package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchema_DefinesTables(t *testing.T) {
	schema := Schema()
	for _, table := range []string{"assessment_runs", "resume_analyses", "interview_summaries"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schema, "UNIQUE (run_id, filename)")
}

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusRunning, true},
		{StatusCompleted, true},
		{StatusFailed, true},
		{"cancelled", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStatus(tt.status))
		})
	}
}

func TestRun_IsTerminal(t *testing.T) {
	run := Run{Kind: KindInterview, Status: StatusRunning}
	assert.False(t, run.IsTerminal())
	assert.Nil(t, run.CompletedAt)

	now := time.Now()
	run.Status = StatusCompleted
	run.CompletedAt = &now
	assert.True(t, run.IsTerminal())

	run.Status = StatusFailed
	assert.True(t, run.IsTerminal())
}
