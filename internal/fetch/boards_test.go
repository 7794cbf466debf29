package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://job-boards.greenhouse.io/acme/jobs/7063751", "greenhouse"},
		{"https://boards.greenhouse.io/company/jobs/123", "greenhouse"},
		{"https://jobs.lever.co/company/job-id", "lever"},
		{"https://acme.wd5.myworkdayjobs.com/en-US/jobs/123", "workday"},
		{"https://jobs.ashbyhq.com/acme/123", "ashby"},
		{"https://example.com/careers/123", "generic"},
		{"https://notgreenhouse.io.example.com/jobs", "generic"},
		{"://bad", "generic"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBoard(tt.url).Name)
		})
	}
}

func TestBoard_Noise(t *testing.T) {
	noise := DetectBoard("https://jobs.lever.co/acme/1").Noise()
	assert.Contains(t, noise, "form")
	assert.Contains(t, noise, ".posting-apply")

	assert.Equal(t, commonNoise, GenericBoard.Noise())
}

func TestJobPostingSelectors(t *testing.T) {
	selectors := JobPostingSelectors()
	assert.Contains(t, selectors, ".job-description")
	assert.Contains(t, selectors, "main")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
