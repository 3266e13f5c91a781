// Package detect implements the core.LanguageDetector interface on top of
// whatlanggo, which classifies text into ISO 639-3 languages.
package detect

import (
	"context"

	"github.com/abadojack/whatlanggo"
)

// Detector classifies text with whatlanggo.
type Detector struct{}

// New creates a Detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the ISO 639-3 code of the language of text, or "" when
// the guess is not reliable. Unknown codes in allow are ignored; an allow
// list without any known code leaves detection unrestricted.
func (d *Detector) Detect(ctx context.Context, text string, allow []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var opts whatlanggo.Options
	for _, code := range allow {
		lang := whatlanggo.CodeToLang(code)
		if lang < 0 {
			continue
		}
		if opts.Whitelist == nil {
			opts.Whitelist = make(map[whatlanggo.Lang]bool, len(allow))
		}
		opts.Whitelist[lang] = true
	}

	info := whatlanggo.DetectWithOptions(text, opts)
	if info.Lang < 0 || !info.IsReliable() {
		return "", nil
	}
	return info.Lang.Iso6393(), nil
}
