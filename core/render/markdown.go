// Package render provides output renderers for formatted entries.
// This file implements the document renderer, which writes the YAML front
// matter and the Markdown (or HTML) body a static site generator reads.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/mfformat/core"
	"gopkg.in/yaml.v3"
)

const (
	frontMatterDelimiter = "---\n"
	layout               = "micropubpost"
	extraPrefix          = "mf-"
)

// consumed lists properties with a dedicated front matter field, or none at all.
var consumed = map[string]bool{
	"published": true,
	"name":      true,
	"slug":      true,
	"category":  true,
	"lang":      true,
	"content":   true,
	"url":       true,
}

// bodyEscaper escapes plain text so it is never interpreted as HTML.
var bodyEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// DocumentRenderer renders a preformatted entry into front matter plus body.
type DocumentRenderer struct {
	converter  core.MarkdownConverter
	noMarkdown bool
}

// NewDocumentRenderer creates a DocumentRenderer. When noMarkdown is set,
// HTML content is written verbatim instead of being converted.
func NewDocumentRenderer(converter core.MarkdownConverter, noMarkdown bool) *DocumentRenderer {
	return &DocumentRenderer{converter: converter, noMarkdown: noMarkdown}
}

// Render builds the document for e. Errors of the Markdown converter are
// returned unmodified.
func (r *DocumentRenderer) Render(ctx context.Context, e *core.Entry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	frontMatter, err := r.frontMatter(e)
	if err != nil {
		return "", err
	}

	body, err := r.body(ctx, e)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(frontMatterDelimiter)
	b.Write(frontMatter)
	b.WriteString(frontMatterDelimiter)
	b.WriteString(body)
	return b.String(), nil
}

// Extension returns the file extension of rendered documents.
func (r *DocumentRenderer) Extension() string {
	if r.noMarkdown {
		return ".html"
	}
	return ".md"
}

func (r *DocumentRenderer) frontMatter(e *core.Entry) ([]byte, error) {
	props := e.Properties

	published, err := e.PublishedTime()
	if err != nil {
		return nil, err
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
	}

	add("layout", scalar(layout))
	add("date", quoted(published.Format(core.TimeLayout)))
	add("title", scalar(props.FirstString("name")))

	if slug, ok := props.First("slug"); ok {
		add("slug", scalar(slug.String()))
	}
	if tags, _ := props.Get("category"); len(tags) > 0 {
		add("tags", scalar(strings.Join(stringsOf(tags), " ")))
	}
	if lang, ok := props.First("lang"); ok {
		add("lang", scalar(lang.String()))
	}
	if e.Derived.Category != "" {
		add("category", scalar(e.Derived.Category))
	}
	if len(e.Derived.PersonTags) > 0 {
		add("persontags", sequence(e.Derived.PersonTags))
	}

	for _, name := range props.Keys() {
		if consumed[name] {
			continue
		}
		values, _ := props.Get(name)
		if len(values) == 0 {
			continue
		}
		add(extraPrefix+name, sequence(stringsOf(values)))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *DocumentRenderer) body(ctx context.Context, e *core.Entry) (string, error) {
	contents, _ := e.Properties.Get("content")
	if len(contents) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(contents))
	for _, v := range contents {
		part, err := r.renderContent(ctx, v)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(part, "\n")+"\n")
	}
	return strings.Join(parts, "\n"), nil
}

func (r *DocumentRenderer) renderContent(ctx context.Context, v core.Value) (string, error) {
	if v.Content == nil || v.Content.HTML == "" {
		return bodyEscaper.Replace(v.String()), nil
	}
	if r.noMarkdown {
		return v.Content.HTML, nil
	}
	return r.converter.Convert(ctx, v.Content.HTML)
}

func stringsOf(values []core.Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

// scalar returns a string node that is only quoted when a plain scalar
// would not read back as the same string.
func scalar(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if !plainSafe(s) {
		n.Style = yaml.SingleQuotedStyle
	}
	return n
}

func quoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.SingleQuotedStyle}
}

func sequence(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		n.Content = append(n.Content, scalar(item))
	}
	return n
}

// plainSafe reports whether s parses back as the identical plain string.
// Strings holding a colon, such as URLs, are always quoted.
func plainSafe(s string) bool {
	if s == "" || strings.ContainsAny(s, ":\n\r\t") {
		return false
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return false
	}
	if len(doc.Content) != 1 {
		return false
	}
	n := doc.Content[0]
	return n.Kind == yaml.ScalarNode && n.Style == 0 && n.Tag == "!!str" && n.Value == s
}
