// Package pattern expands filename and permalink templates such as
// "_posts/:year-:month-:day-:slug.md" for a single entry.
//
// Recognised tokens are :year, :month, :day, :title, :slug and :categories.
// A token only matches when it is not followed by a letter or digit, and
// unrecognised tokens are copied verbatim.
package pattern

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultFilepath is the filepath template without its extension, which
	// depends on the rendered document format.
	DefaultFilepath = "_posts/:year-:month-:day-:slug"
	// DefaultPermalink is used when no permalink style is configured.
	DefaultPermalink = ":year/:month/:day/:slug.html"
)

// Fields are the resolved per-entry values the tokens expand to.
type Fields struct {
	Published time.Time
	Slug      string
	Category  string
}

// tokens is ordered longest first so that prefixes never shadow longer names.
var tokens = []string{"categories", "month", "title", "year", "slug", "day"}

// Expand substitutes every recognised token in tpl with its value from f.
func Expand(tpl string, f Fields) string {
	published := f.Published.UTC()

	var b strings.Builder
	b.Grow(len(tpl) + len(f.Slug))
	for i := 0; i < len(tpl); i++ {
		if tpl[i] != ':' {
			b.WriteByte(tpl[i])
			continue
		}

		name := matchToken(tpl[i+1:])
		if name == "" {
			b.WriteByte(':')
			continue
		}
		end := i + 1 + len(name)

		switch name {
		case "year":
			b.WriteString(fmt.Sprintf("%04d", published.Year()))
		case "month":
			b.WriteString(fmt.Sprintf("%02d", int(published.Month())))
		case "day":
			b.WriteString(fmt.Sprintf("%02d", published.Day()))
		case "title", "slug":
			b.WriteString(f.Slug)
		case "categories":
			if f.Category != "" {
				b.WriteString(f.Category)
			} else if end < len(tpl) && tpl[end] == '/' && (i == 0 || tpl[i-1] == '/') {
				// Drop the separator that would otherwise be doubled.
				end++
			}
		}
		i = end - 1
	}
	return b.String()
}

// matchToken returns the token name at the start of s, or "".
func matchToken(s string) string {
	for _, name := range tokens {
		if !strings.HasPrefix(s, name) {
			continue
		}
		if len(s) > len(name) && isAlnum(s[len(name)]) {
			continue
		}
		return name
	}
	return ""
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
