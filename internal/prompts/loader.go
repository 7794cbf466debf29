// Package prompts holds the model prompt templates. Each JSON file maps prompt keys
// to text/template sources and is embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// Prompt identifies a template by file and key.
type Prompt struct {
	File string
	Key  string
}

func (p Prompt) String() string {
	return p.File + "#" + p.Key
}

// Prompts used by the engine.
var (
	ExtractEntities       = Prompt{File: "linguistic.json", Key: "extract-entities"}
	EntitiesFieldHint     = Prompt{File: "linguistic.json", Key: "entities-field-hint"}
	ExtractJobRequirement = Prompt{File: "parsing.json", Key: "extract-job-requirement"}
)

var (
	loadOnce  sync.Once
	templates map[Prompt]*template.Template
	loadErr   error
)

// load parses every embedded prompt file once.
func load() (map[Prompt]*template.Template, error) {
	loadOnce.Do(func() {
		templates = make(map[Prompt]*template.Template)
		loadErr = fs.WalkDir(promptFiles, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := promptFiles.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read prompt file %s: %w", path, err)
			}
			var sources map[string]string
			if err := json.Unmarshal(data, &sources); err != nil {
				return fmt.Errorf("failed to parse prompt file %s: %w", path, err)
			}
			for key, src := range sources {
				p := Prompt{File: path, Key: key}
				tmpl, err := template.New(p.String()).Option("missingkey=error").Parse(src)
				if err != nil {
					return fmt.Errorf("invalid prompt template %s: %w", p, err)
				}
				templates[p] = tmpl
			}
			return nil
		})
	})
	return templates, loadErr
}

// Render executes the prompt template with data.
func Render(p Prompt, data any) (string, error) {
	all, err := load()
	if err != nil {
		return "", err
	}
	tmpl, ok := all[p]
	if !ok {
		return "", fmt.Errorf("prompt %s not found", p)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", p, err)
	}
	return sb.String(), nil
}

// MustRender is Render for prompts whose data is fixed at initialization time.
func MustRender(p Prompt, data any) string {
	text, err := Render(p, data)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// Keys lists the prompts defined in file.
func Keys(file string) ([]Prompt, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	var keys []Prompt
	for p := range all {
		if p.File == file {
			keys = append(keys, p)
		}
	}
	return keys, nil
}
