package core

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// TimeLayout is the ISO-8601 form used for every rendered timestamp.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// MediaKind names a class of attached files.
type MediaKind string

const (
	Photo MediaKind = "photo"
	Video MediaKind = "video"
	Audio MediaKind = "audio"
)

// MediaKinds lists every media kind in processing order.
var MediaKinds = []MediaKind{Photo, Video, Audio}

// File is a binary attachment of an entry.
type File struct {
	Filename string
	Buffer   []byte
}

// Content is a structured content value, carrying HTML, plain text or both.
type Content struct {
	HTML  string `json:"html,omitempty"`
	Value string `json:"value,omitempty"`
}

// Value is a single property value. Exactly one of Text, Time or Content is meaningful.
type Value struct {
	Text    string
	Time    time.Time
	Content *Content
}

// Text returns a plain string value.
func Text(s string) Value {
	return Value{Text: s}
}

// Timestamp returns a time value.
func Timestamp(t time.Time) Value {
	return Value{Time: t}
}

// HTML returns a content value carrying an HTML fragment.
func HTML(html string) Value {
	return Value{Content: &Content{HTML: html}}
}

// String renders the value as a scalar string.
func (v Value) String() string {
	switch {
	case v.Content != nil:
		if v.Content.HTML != "" {
			return v.Content.HTML
		}
		return v.Content.Value
	case !v.Time.IsZero():
		return v.Time.UTC().Format(TimeLayout)
	default:
		return v.Text
	}
}

// Derived holds fields computed from the properties.
type Derived struct {
	Category   string
	PersonTags []string
}

// Entry is a microformats2 h-entry with attached files.
type Entry struct {
	Type         []string
	Properties   *Properties
	Files        map[MediaKind][]File
	Derived      Derived
	PreFormatted bool
}

// NewEntry creates an h-entry with empty properties.
func NewEntry() *Entry {
	return &Entry{
		Type:       []string{"h-entry"},
		Properties: NewProperties(),
	}
}

// Validate reports ErrMalformedEntry for a nil entry or missing properties.
func (e *Entry) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil entry", ErrMalformedEntry)
	}
	if e.Properties == nil {
		return fmt.Errorf("%w: missing properties", ErrMalformedEntry)
	}
	return nil
}

// Clone returns a copy that shares no slices or maps with e.
// File buffers are shared since they are never modified.
func (e *Entry) Clone() *Entry {
	c := &Entry{
		Type:         append([]string(nil), e.Type...),
		Properties:   e.Properties.Clone(),
		PreFormatted: e.PreFormatted,
		Derived: Derived{
			Category:   e.Derived.Category,
			PersonTags: append([]string(nil), e.Derived.PersonTags...),
		},
	}
	if e.Files != nil {
		c.Files = make(map[MediaKind][]File, len(e.Files))
		for kind, files := range e.Files {
			c.Files[kind] = append([]File(nil), files...)
		}
	}
	return c
}

// PublishedTime resolves the first published value.
func (e *Entry) PublishedTime() (time.Time, error) {
	if err := e.Validate(); err != nil {
		return time.Time{}, err
	}
	v, ok := e.Properties.First("published")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: missing published date", ErrMalformedEntry)
	}
	if !v.Time.IsZero() {
		return v.Time.UTC(), nil
	}
	t, err := dateparse.ParseStrict(v.String())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parsing published date %q: %v", ErrMalformedEntry, v.String(), err)
	}
	return t.UTC(), nil
}
