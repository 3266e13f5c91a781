// Package core defines the data model and collaborator interfaces for mfformat.
// Each collaborator the formatting pipeline depends on is a small, testable interface.
package core

import (
	"context"
	"time"
)

// Result is the complete output of formatting a single entry.
type Result struct {
	Filename string
	URL      string
	Content  string
	Files    []File
	// Raw is the preformatted entry, so callers can persist files or metadata on their own.
	Raw *Entry
}

// MarkdownConverter converts an HTML fragment into Markdown.
type MarkdownConverter interface {
	Convert(ctx context.Context, html string) (string, error)
}

// TagStripper removes markup from an HTML fragment and returns its text.
type TagStripper interface {
	Strip(html string) (string, error)
}

// LanguageDetector classifies text. It returns an ISO 639-3 code, or ""
// when no confident result exists. A non-empty allow list restricts the
// candidate languages to the given ISO 639-3 codes.
type LanguageDetector interface {
	Detect(ctx context.Context, text string, allow []string) (string, error)
}

// Clock reads the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
