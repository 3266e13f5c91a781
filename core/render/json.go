// Package render — JSON renderer.
// Describes a formatting result as indented JSON, for callers that want to
// inspect what would be written without touching the filesystem.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/mfformat/core"
)

// ResultJSON is the JSON form of a core.Result. File buffers are summarised by size.
type ResultJSON struct {
	Filename string      `json:"filename"`
	URL      string      `json:"url"`
	Content  string      `json:"content"`
	Files    []FileJSON  `json:"files"`
	Raw      *core.Entry `json:"raw"`
}

// FileJSON describes one renamed attachment.
type FileJSON struct {
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}

// JSONRenderer produces structured JSON output from a result.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts a result into indented JSON.
func (r *JSONRenderer) Render(result *core.Result) ([]byte, error) {
	out := ResultJSON{
		Filename: result.Filename,
		URL:      result.URL,
		Content:  result.Content,
		Files:    make([]FileJSON, 0, len(result.Files)),
		Raw:      result.Raw,
	}
	for _, f := range result.Files {
		out.Files = append(out.Files, FileJSON{Filename: f.Filename, Size: len(f.Buffer)})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}
