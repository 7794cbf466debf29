//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRequirement_Validation(t *testing.T) {
	tests := []struct {
		name    string
		job     JobRequirement
		wantErr bool
	}{
		{
			name:    "valid job",
			job:     JobRequirement{Description: "Backend engineer", RequiredSkills: []string{"Go"}},
			wantErr: false,
		},
		{
			name:    "missing description",
			job:     JobRequirement{RequiredSkills: []string{"Go"}},
			wantErr: true,
		},
		{
			name:    "empty skill entry",
			job:     JobRequirement{Description: "x", RequiredSkills: []string{"Go", ""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuestionSpec_CategoryOrDefault(t *testing.T) {
	var nilSpec *QuestionSpec
	assert.Equal(t, DefaultCategory, nilSpec.CategoryOrDefault())
	assert.Equal(t, DefaultCategory, (&QuestionSpec{Question: "q"}).CategoryOrDefault())
	assert.Equal(t, DefaultCategory, (&QuestionSpec{Question: "q", Category: StringPtr("")}).CategoryOrDefault())
	assert.Equal(t, "Technical", (&QuestionSpec{Question: "q", Category: StringPtr("Technical")}).CategoryOrDefault())
}

func TestQuestionSpec_Validation(t *testing.T) {
	assert.NoError(t, (&QuestionSpec{Question: "Why Go?"}).Validate())
	assert.Error(t, (&QuestionSpec{}).Validate())
}

func TestInterviewRequest_Validation(t *testing.T) {
	assert.Error(t, (&InterviewRequest{}).Validate())
	assert.NoError(t, (&InterviewRequest{Responses: []QAPair{{Question: "q", Answer: "a"}}}).Validate())
}

func TestResumeRecord_DisplayDefaults(t *testing.T) {
	record := ResumeRecord{}
	assert.Equal(t, UnknownLabel, record.DisplayName())
	assert.Equal(t, UnknownLabel, record.DisplayFilename())

	record.Name = StringPtr("Ada Lovelace")
	record.Filename = "ada.txt"
	assert.Equal(t, "Ada Lovelace", record.DisplayName())
	assert.Equal(t, "ada.txt", record.DisplayFilename())
}

func TestResumeRecord_JSONFlattensContactInfo(t *testing.T) {
	record := ResumeRecord{
		Filename:    "cv.txt",
		ContactInfo: ContactInfo{Email: StringPtr("a@b.io")},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "a@b.io", decoded["email"])
	assert.Nil(t, decoded["phone"])
	assert.NotContains(t, decoded, "ContactInfo")
}
