package format

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gaurav-prasanna/mfformat/core"
	"github.com/gaurav-prasanna/mfformat/core/links"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	CategorySocial = "social"
	CategoryLinks  = "links"
)

// PreFormat fills in the derived fields of e and returns the result as a new
// entry. An entry that is already preformatted is returned as is.
//
// The steps run in order: publish date, media files, category, person tags,
// slug, language and configured defaults.
func (f *Formatter) PreFormat(ctx context.Context, e *core.Entry) (*core.Entry, error) {
	return f.preFormat(ctx, e, f.opts.RelativeTo)
}

func (f *Formatter) preFormat(ctx context.Context, e *core.Entry, base string) (*core.Entry, error) {
	if e != nil && e.PreFormatted {
		return e, nil
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e = e.Clone()
	props := e.Properties

	if !props.Has("published") {
		props.Set("published", core.Timestamp(f.clock.Now()))
	}
	if _, err := e.PublishedTime(); err != nil {
		return nil, err
	}

	if err := f.preFormatFiles(e, base); err != nil {
		return nil, err
	}

	f.deriveCategory(e)
	extractPersonTags(e)

	if !props.Present("slug") {
		if props.Has("like-of") && props.FirstString("name") == "" {
			props.Set("slug")
		} else {
			s, err := f.formatSlug(e)
			if err != nil {
				return nil, err
			}
			props.Set("slug", core.Text(s))
		}
	}

	if err := f.deriveLanguage(ctx, e); err != nil {
		return nil, err
	}

	f.mergeDefaults(e)
	e.PreFormatted = true

	f.logger.Debug("Preformatted entry",
		zap.String("slug", props.FirstString("slug")),
		zap.String("category", e.Derived.Category),
		zap.Strings("personTags", e.Derived.PersonTags),
		zap.String("lang", props.FirstString("lang")))
	return e, nil
}

func (f *Formatter) deriveCategory(e *core.Entry) {
	if f.opts.SkipCategory || e.Derived.Category != "" {
		return
	}
	if f.opts.CategoryFunc != nil {
		e.Derived.Category = f.opts.CategoryFunc(e)
		return
	}
	e.Derived.Category = DeriveCategory(e)
}

// DeriveCategory applies the built-in category rules: replies and likes are
// social, bookmarks and reposts are links whether titled or not, and any other
// post with neither name nor slug is social.
func DeriveCategory(e *core.Entry) string {
	props := e.Properties
	switch {
	case props.Has("in-reply-to"), props.Has("like-of"):
		return CategorySocial
	case props.Has("bookmark"),
		props.Has("bookmark-of"),
		props.Has("repost-of"):
		return CategoryLinks
	case props.FirstString("name") == "" && props.FirstString("slug") == "":
		return CategorySocial
	default:
		return ""
	}
}

// extractPersonTags moves category values that are URLs into the derived person tags.
func extractPersonTags(e *core.Entry) {
	values, ok := e.Properties.Get("category")
	if !ok {
		return
	}

	var remaining []core.Value
	for _, v := range values {
		if v.Content == nil && links.IsAbsoluteURL(v.Text) {
			e.Derived.PersonTags = append(e.Derived.PersonTags, v.Text)
			continue
		}
		remaining = append(remaining, v)
	}

	if len(remaining) == 0 {
		e.Properties.Delete("category")
		return
	}
	e.Properties.Set("category", remaining...)
}

// formatSlug resolves a slug from the name, then optionally the content, and
// finally from the publish time, which always yields a non-empty token.
func (f *Formatter) formatSlug(e *core.Entry) (string, error) {
	props := e.Properties

	if name := props.FirstString("name"); name != "" {
		s, err := f.slugs.Slugify(name, 0)
		if err != nil || s != "" {
			return s, err
		}
	}

	if f.opts.ContentSlug {
		if content := props.FirstString("content"); content != "" {
			s, err := f.slugs.Slugify(content, 0)
			if err != nil || s != "" {
				return s, err
			}
		}
	}

	published, err := e.PublishedTime()
	if err != nil {
		return "", err
	}
	return timeSlug(published), nil
}

// timeSlug is the number of seconds between midnight UTC and t.
func timeSlug(t time.Time) string {
	t = t.UTC()
	return strconv.Itoa(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (f *Formatter) deriveLanguage(ctx context.Context, e *core.Entry) error {
	if !f.opts.DeriveLanguages && len(f.opts.Languages) == 0 {
		return nil
	}
	props := e.Properties

	if values, _ := props.Get("lang"); len(values) > 0 {
		normalized := make([]core.Value, 0, len(values))
		for _, v := range values {
			normalized = append(normalized, core.Text(twoLetterCode(v.String())))
		}
		props.Set("lang", normalized...)
		return nil
	}

	text, err := f.languageText(e)
	if err != nil || text == "" {
		return err
	}

	code, err := f.detector.Detect(ctx, text, f.opts.Languages)
	if err != nil {
		return err
	}
	if code == "" {
		return nil
	}
	props.Set("lang", core.Text(twoLetterCode(code)))
	return nil
}

// languageText is the plain text of all content values, or the name when
// there is no content.
func (f *Formatter) languageText(e *core.Entry) (string, error) {
	contents, _ := e.Properties.Get("content")

	parts := make([]string, 0, len(contents))
	for _, v := range contents {
		if v.Content != nil && v.Content.HTML != "" {
			text, err := f.stripper.Strip(v.Content.HTML)
			if err != nil {
				return "", err
			}
			parts = append(parts, text)
			continue
		}
		parts = append(parts, v.String())
	}

	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		text = strings.TrimSpace(e.Properties.FirstString("name"))
	}
	return text, nil
}

// twoLetterCode maps a known ISO 639-3 code onto its ISO 639-1 form.
// Anything else is returned unchanged.
func twoLetterCode(code string) string {
	if len(code) != 3 {
		return code
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return code
	}
	return base.String()
}

func (f *Formatter) mergeDefaults(e *core.Entry) {
	if f.opts.Defaults == nil {
		return
	}
	for _, name := range f.opts.Defaults.Keys() {
		if e.Properties.Has(name) {
			continue
		}
		values, _ := f.opts.Defaults.Get(name)
		e.Properties.Set(name, append([]core.Value(nil), values...)...)
	}
}
