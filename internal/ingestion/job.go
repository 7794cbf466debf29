package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/assessment-engine/internal/fetch"
)

// IsURL reports whether source looks like an http(s) URL rather than a file path.
func IsURL(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// JobText returns the cleaned text of a job description read from a file or,
// when source is a URL, downloaded with fetcher.
func JobText(ctx context.Context, source string, fetcher *fetch.PostingFetcher) (string, error) {
	if IsURL(source) {
		if fetcher == nil {
			fetcher = fetch.NewPostingFetcher()
		}
		result, err := fetcher.Fetch(ctx, strings.TrimSpace(source))
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return CleanText(result.Text), nil
	}

	doc, err := ReadDocument(source)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}
