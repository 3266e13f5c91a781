// Package output persists formatted entries to disk.
// The document is written to its formatted filename and every renamed
// attachment to its media path, all relative to the site directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/mfformat/core"
)

// Writer writes results below a site directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores the document and media files of result and returns the
// written paths, document first.
func (w *Writer) Write(result *core.Result) ([]string, error) {
	paths := make([]string, 0, len(result.Files)+1)

	path, err := w.writeFile(result.Filename, []byte(result.Content))
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	for _, f := range result.Files {
		path, err := w.writeFile(f.Filename, f.Buffer)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *Writer) writeFile(name string, data []byte) (string, error) {
	fullPath, err := w.resolve(name)
	if err != nil {
		return "", err
	}

	// Ensure parent directories exist.
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// resolve maps a slash-separated relative name into the output directory,
// refusing names that would escape it.
func (w *Writer) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	fullPath := filepath.Join(w.OutputDir, filepath.FromSlash(strings.TrimPrefix(name, "/")))

	rel, err := filepath.Rel(w.OutputDir, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file name %q escapes output directory", name)
	}
	return fullPath, nil
}
