package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/assessment-engine/internal/fetch"
	"github.com/jonathan/assessment-engine/internal/types"
)

// SupportedExtensions lists the file extensions ReadDocument accepts.
var SupportedExtensions = []string{".txt", ".md", ".html", ".htm"}

// UnsupportedFormatError is returned for files ReadDocument cannot read.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q for %s (supported: %s)",
		e.Ext, e.Path, strings.Join(SupportedExtensions, ", "))
}

// IsSupported reports whether path has a readable extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ReadDocument reads a text, markdown or HTML file and returns its cleaned text
// under the file's base name.
func ReadDocument(path string) (types.ResumeDocument, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupported(path) {
		return types.ResumeDocument{}, &UnsupportedFormatError{Path: path, Ext: ext}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.ResumeDocument{}, fmt.Errorf("file not found: %w", err)
		}
		return types.ResumeDocument{}, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	if ext == ".html" || ext == ".htm" {
		text, err = fetch.ExtractMainText(text, fetch.DefaultTextSelectors())
		if err != nil {
			return types.ResumeDocument{}, fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
	}

	return types.ResumeDocument{
		Filename: filepath.Base(path),
		Text:     CleanText(text),
	}, nil
}

// ReadDocuments reads every path in order, stopping at the first error.
func ReadDocuments(paths []string) ([]types.ResumeDocument, error) {
	docs := make([]types.ResumeDocument, 0, len(paths))
	for _, p := range paths {
		doc, err := ReadDocument(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ReadDir reads every supported document directly inside dir, sorted by name.
// Unsupported files are skipped.
func ReadDir(dir string) ([]types.ResumeDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsSupported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return ReadDocuments(paths)
}
