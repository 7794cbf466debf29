package fetch

import (
	"net/url"
	"strings"
)

// Board is a job board whose pages get dedicated selectors.
type Board struct {
	Name             string
	Hosts            []string
	ContentSelectors []string
	NoiseSelectors   []string
}

// GenericBoard is used for hosts that match no known board.
var GenericBoard = Board{Name: "generic", ContentSelectors: JobPostingSelectors()}

var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".voluntary-disclosure",
	".social-share",
	".cookie-consent",
}

var boards = []Board{
	{
		Name:             "greenhouse",
		Hosts:            []string{"greenhouse.io"},
		ContentSelectors: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		NoiseSelectors:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	{
		Name:             "lever",
		Hosts:            []string{"lever.co"},
		ContentSelectors: []string{".posting-page", ".posting-description", ".content"},
		NoiseSelectors:   []string{".apply-section", ".posting-apply"},
	},
	{
		Name:             "workday",
		Hosts:            []string{"workday.com", "myworkdayjobs.com"},
		ContentSelectors: []string{"[data-automation-id='jobDescription']", ".job-description"},
		NoiseSelectors:   []string{"[data-automation-id='applyButton']"},
	},
	{
		Name:             "ashby",
		Hosts:            []string{"ashbyhq.com"},
		ContentSelectors: []string{"[class*='_descriptionText']", "main"},
	},
}

// DetectBoard returns the board serving rawURL, or GenericBoard.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return GenericBoard
	}
	host := strings.ToLower(parsed.Hostname())
	for _, b := range boards {
		for _, h := range b.Hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return b
			}
		}
	}
	return GenericBoard
}

// Noise returns the board's noise selectors together with the common ones.
func (b Board) Noise() []string {
	out := make([]string, 0, len(commonNoise)+len(b.NoiseSelectors))
	out = append(out, commonNoise...)
	return append(out, b.NoiseSelectors...)
}
