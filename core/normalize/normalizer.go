// Package normalize implements the core.MarkdownConverter interface.
// It converts HTML content of an entry into Markdown, which is the
// body format written for the static site generator.
package normalize

import (
	"context"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer that renders bullet lists with "*".
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithBulletListMarker("*"),
				),
			),
		),
	}
}

// Convert turns an HTML fragment into Markdown without trailing newlines.
func (n *MarkdownNormalizer) Convert(ctx context.Context, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
