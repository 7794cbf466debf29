package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadDocument_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jane.txt", "Jane Doe\r\n\r\n\r\n\r\nSkills:   Python")

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "jane.txt", doc.Filename)
	assert.Equal(t, "Jane Doe\n\nSkills: Python", doc.Text)
}

func TestReadDocument_HTML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bo.HTML",
		`<html><head><style>p{}</style></head><body><nav>Menu</nav><main><h1>Bo Chen</h1><p>Go developer</p></main></body></html>`)

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "bo.HTML", doc.Filename)
	assert.Equal(t, "Bo Chen\nGo developer", doc.Text)
}

func TestReadDocument_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadDocument(writeFile(t, dir, "cv.pdf", "%PDF"))
	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".pdf", formatErr.Ext)

	_, err = ReadDocument(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# Bo")
	writeFile(t, dir, "a.txt", "Ann")
	writeFile(t, dir, "notes.pdf", "skip")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	docs, err := ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Filename)
	assert.Equal(t, "b.md", docs[1].Filename)

	_, err = ReadDir(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestJobText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="job-description"><h1>Data Engineer</h1><p>Requirements: Python, SQL.</p></div></body></html>`))
	}))
	defer server.Close()

	text, err := JobText(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer\nRequirements: Python, SQL.", text)

	path := writeFile(t, t.TempDir(), "job.md", "Backend Engineer\n\nSkills: Go")
	text, err = JobText(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer\n\nSkills: Go", text)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/job"))
	assert.True(t, IsURL("  HTTP://example.com"))
	assert.False(t, IsURL("job.txt"))
	assert.False(t, IsURL("ftp://example.com"))
}
