// Package slug turns free text into URL-safe slugs.
//
// Slugify runs a fixed pipeline:
//  1. Strips HTML markup through a core.TagStripper when the text looks like markup.
//  2. Transliterates letters to ASCII using a fixed substitution table, then
//     decomposes to NFD and drops combining marks (Ö → O, å → a).
//  3. Drops apostrophes and the dots of abbreviations so they stay whole (e.g. → eg).
//  4. Splits CamelCase and acronym boundaries (FooBar → foo bar, HTMLParser → html parser).
//  5. Lower-cases, turns every run of other characters into a single dash and trims dashes.
//  6. Keeps at most maxWords words.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/mfformat/core"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxWords bounds the number of words when the caller passes maxWords <= 0.
const DefaultMaxWords = 5

// substitutions covers letters that do not decompose into ASCII plus a mark.
var substitutions = map[rune]string{
	'Æ': "AE", 'æ': "ae",
	'Ø': "O", 'ø': "o",
	'Œ': "OE", 'œ': "oe",
	'ß': "ss", 'ẞ': "SS",
	'Þ': "TH", 'þ': "th",
	'Ð': "D", 'ð': "d",
	'Đ': "D", 'đ': "d",
	'Ł': "L", 'ł': "l",
	'Ħ': "H", 'ħ': "h",
	'ı': "i",
	'Ŋ': "NG", 'ŋ': "ng",
	'ĸ': "k",
	'ſ': "s",
	'‘': "'", '’': "'",
}

var (
	// looksLikeMarkup detects an opening, closing or comment tag.
	looksLikeMarkup = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)
	// abbreviation matches dotted single letters such as "e.g." or "U.S.A".
	abbreviation = regexp.MustCompile(`\b\p{L}(?:\.\p{L}\b)+\.?`)
	lowerUpper   = regexp.MustCompile(`([a-z])([A-Z])`)
	acronymEnd   = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	separators   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Engine slugifies text. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	stripper core.TagStripper
}

// New creates an Engine that strips markup with stripper.
func New(stripper core.TagStripper) *Engine {
	return &Engine{stripper: stripper}
}

// Slugify converts text into a dash-separated slug of at most maxWords words.
// It returns "" when the text has no usable characters.
func (e *Engine) Slugify(text string, maxWords int) (string, error) {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	if e.stripper != nil && looksLikeMarkup.MatchString(text) {
		stripped, err := e.stripper.Strip(text)
		if err != nil {
			return "", err
		}
		text = stripped
	}

	text = Transliterate(text)
	text = strings.ReplaceAll(text, "'", "")
	text = abbreviation.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, ".", "")
	})
	text = SplitCase(text)

	text = separators.ReplaceAllString(strings.ToLower(text), "-")
	text = strings.Trim(text, "-")
	if text == "" {
		return "", nil
	}

	words := strings.Split(text, "-")
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, "-"), nil
}

// SplitCase separates camel-case words and trailing acronyms with a space,
// e.g. FooBar → Foo Bar and HTMLParser → HTML Parser.
func SplitCase(text string) string {
	text = acronymEnd.ReplaceAllString(text, "$1 $2")
	return lowerUpper.ReplaceAllString(text, "$1 $2")
}

// Transliterate maps text onto its closest ASCII form. Characters without an
// ASCII equivalent are kept and later treated as separators by Slugify.
func Transliterate(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if sub, ok := substitutions[r]; ok {
			b.WriteString(sub)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return result
}

// isMn reports whether r is a non-spacing mark such as a combining accent.
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
