package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJobDescription = `

  Senior Data Engineer
We are hiring a data engineer to build pipelines.
Requirements: Python, SQL, Airflow.
Preferred: AWS, Docker.
Qualifications - Spark - Kafka.`

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Senior Data Engineer", ExtractTitle(sampleJobDescription))
	assert.Equal(t, "", ExtractTitle("  \n \n"))
}

func TestExtractSkillPhrases(t *testing.T) {
	skills := ExtractSkillPhrases(sampleJobDescription)

	assert.Equal(t, []string{"Python", "SQL", "Airflow", "Spark", "Kafka", "AWS", "Docker"}, skills)
}

func TestExtractSkillPhrases_DashSplit(t *testing.T) {
	skills := ExtractSkillPhrases("Requirements:\n- Go\n- Kubernetes, Helm\n- gRPC")
	assert.Equal(t, []string{"Go", "Kubernetes, Helm", "gRPC"}, skills)
}

func TestExtractSkillPhrases_None(t *testing.T) {
	assert.Empty(t, ExtractSkillPhrases("We build things. Join us."))
}

func TestParseJobDescription(t *testing.T) {
	job, err := ParseJobDescription(sampleJobDescription)
	require.NoError(t, err)

	assert.Equal(t, "Senior Data Engineer", job.Title)
	assert.Equal(t, sampleJobDescription, job.Description)
	assert.Contains(t, job.RequiredSkills, "Python")
	assert.NotNil(t, job.PreferredSkills)
	assert.NoError(t, job.Validate())
}

func TestParseJobDescription_Empty(t *testing.T) {
	_, err := ParseJobDescription("   ")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), "job description is empty")
}
