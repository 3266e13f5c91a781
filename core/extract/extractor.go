// Package extract implements the core.TagStripper interface.
// It reduces an HTML fragment to its readable text by:
//  1. Removing noise elements (scripts, styles, embedded media)
//  2. Separating block elements with whitespace so words do not run together
//  3. Collapsing all whitespace runs to single spaces
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseSelectors are HTML elements removed before extraction.
// These contribute no meaningful text to a slug or a language guess.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"iframe", "video", "audio", "picture",
	"svg", "canvas", "object",
}

// blockSelector matches elements whose boundaries separate words.
const blockSelector = "p, div, br, li, dt, dd, tr, td, th, blockquote, pre, hr, " +
	"h1, h2, h3, h4, h5, h6, section, article, header, footer, figcaption"

// HTMLStripper strips markup from HTML fragments.
type HTMLStripper struct{}

// New creates an HTMLStripper.
func New() *HTMLStripper {
	return &HTMLStripper{}
}

// Strip returns the text content of an HTML fragment on a single line.
func (s *HTMLStripper) Strip(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			if n.Parent != nil {
				n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, n.NextSibling)
			}
		}
	})

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
