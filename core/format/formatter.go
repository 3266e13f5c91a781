// Package format turns micropub h-entries into the files a static site
// generator publishes: a front matter document, its path, its URL and the
// renamed media attachments.
//
// A Formatter is read-only after construction and safe for concurrent use.
// Every operation works on a copy of the given entry.
package format

import (
	"context"
	"strings"

	"github.com/gaurav-prasanna/mfformat/core"
	"github.com/gaurav-prasanna/mfformat/core/detect"
	"github.com/gaurav-prasanna/mfformat/core/extract"
	"github.com/gaurav-prasanna/mfformat/core/links"
	"github.com/gaurav-prasanna/mfformat/core/normalize"
	"github.com/gaurav-prasanna/mfformat/core/pattern"
	"github.com/gaurav-prasanna/mfformat/core/render"
	"github.com/gaurav-prasanna/mfformat/core/slug"
	"go.uber.org/zap"
)

// Options configures a Formatter.
type Options struct {
	// PermalinkStyle is the URL template; pattern.DefaultPermalink when empty.
	PermalinkStyle string
	// Filepath is the file path template; pattern.DefaultFilepath plus the
	// document extension when empty.
	Filepath string
	// NoMarkdown keeps HTML content as HTML instead of converting it.
	NoMarkdown bool
	// ContentSlug lets the content provide the slug when there is no name.
	ContentSlug bool
	// SkipCategory disables category derivation.
	SkipCategory bool
	// CategoryFunc replaces the built-in category rules. An empty result derives nothing.
	CategoryFunc func(*core.Entry) string
	// DeriveLanguages enables language derivation for any language.
	DeriveLanguages bool
	// Languages enables language derivation restricted to these ISO 639-3 codes.
	Languages []string
	// Defaults are merged into entries lacking the property.
	Defaults *core.Properties
	// RelativeTo is the base URL that permalinks and media URLs are joined onto.
	RelativeTo string
}

// Option sets a collaborator of a Formatter.
type Option func(*Formatter)

// WithConverter sets the HTML to Markdown converter.
func WithConverter(c core.MarkdownConverter) Option {
	return func(f *Formatter) { f.converter = c }
}

// WithStripper sets the HTML tag stripper.
func WithStripper(s core.TagStripper) Option {
	return func(f *Formatter) { f.stripper = s }
}

// WithDetector sets the language detector.
func WithDetector(d core.LanguageDetector) Option {
	return func(f *Formatter) { f.detector = d }
}

// WithClock sets the clock used for missing publish dates.
func WithClock(c core.Clock) Option {
	return func(f *Formatter) { f.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Formatter) { f.logger = l }
}

// Formatter formats entries according to its Options.
type Formatter struct {
	opts Options

	converter core.MarkdownConverter
	stripper  core.TagStripper
	detector  core.LanguageDetector
	clock     core.Clock
	logger    *zap.Logger

	slugs    *slug.Engine
	document *render.DocumentRenderer
}

// New creates a Formatter. Collaborators default to the implementations in
// core/normalize, core/extract and core/detect, the system clock and a no-op logger.
func New(opts Options, fns ...Option) *Formatter {
	f := &Formatter{
		opts:      opts,
		converter: normalize.New(),
		stripper:  extract.New(),
		detector:  detect.New(),
		clock:     core.SystemClock{},
		logger:    zap.NewNop(),
	}
	for _, fn := range fns {
		fn(f)
	}
	if f.opts.PermalinkStyle == "" {
		f.opts.PermalinkStyle = pattern.DefaultPermalink
	}
	f.slugs = slug.New(f.stripper)
	f.document = render.NewDocumentRenderer(f.converter, f.opts.NoMarkdown)
	if f.opts.Filepath == "" {
		f.opts.Filepath = pattern.DefaultFilepath + f.document.Extension()
	}
	return f
}

// NewRelativeTo creates a Formatter with default options producing URLs
// relative to base.
func NewRelativeTo(base string, fns ...Option) *Formatter {
	return New(Options{RelativeTo: base}, fns...)
}

// Format renders the front matter document of e.
func (f *Formatter) Format(ctx context.Context, e *core.Entry) (string, error) {
	e, err := f.PreFormat(ctx, e)
	if err != nil {
		return "", err
	}
	return f.document.Render(ctx, e)
}

// FormatFilename returns the path the document of e is written to.
func (f *Formatter) FormatFilename(ctx context.Context, e *core.Entry) (string, error) {
	e, err := f.PreFormat(ctx, e)
	if err != nil {
		return "", err
	}
	fields, err := f.fields(e)
	if err != nil {
		return "", err
	}
	return pattern.Expand(f.opts.Filepath, fields), nil
}

// FormatURL returns the permalink of e. It is relative, without a leading
// slash, unless RelativeTo is set.
func (f *Formatter) FormatURL(ctx context.Context, e *core.Entry) (string, error) {
	return f.formatURL(ctx, e, f.opts.RelativeTo)
}

func (f *Formatter) formatURL(ctx context.Context, e *core.Entry, base string) (string, error) {
	e, err := f.PreFormat(ctx, e)
	if err != nil {
		return "", err
	}
	fields, err := f.fields(e)
	if err != nil {
		return "", err
	}
	permalink := strings.TrimLeft(pattern.Expand(f.opts.PermalinkStyle, fields), "/")
	return links.Join(base, permalink), nil
}

// FormatAll runs every formatting step and returns the complete result.
// It never returns a partial result.
func (f *Formatter) FormatAll(ctx context.Context, e *core.Entry) (*core.Result, error) {
	return f.formatAll(ctx, e, f.opts.RelativeTo)
}

// FormatAllRelativeTo is FormatAll with the base URL of this call overridden.
func (f *Formatter) FormatAllRelativeTo(ctx context.Context, e *core.Entry, base string) (*core.Result, error) {
	return f.formatAll(ctx, e, base)
}

func (f *Formatter) formatAll(ctx context.Context, e *core.Entry, base string) (*core.Result, error) {
	e, err := f.preFormat(ctx, e, base)
	if err != nil {
		return nil, err
	}

	content, err := f.Format(ctx, e)
	if err != nil {
		return nil, err
	}
	filename, err := f.FormatFilename(ctx, e)
	if err != nil {
		return nil, err
	}
	url, err := f.formatURL(ctx, e, base)
	if err != nil {
		return nil, err
	}

	var files []core.File
	for _, kind := range core.MediaKinds {
		files = append(files, e.Files[kind]...)
	}

	f.logger.Debug("Formatted entry",
		zap.String("filename", filename),
		zap.String("url", url),
		zap.Int("files", len(files)))

	return &core.Result{
		Filename: filename,
		URL:      url,
		Content:  content,
		Files:    files,
		Raw:      e,
	}, nil
}

// fields resolves the template values of a preformatted entry.
func (f *Formatter) fields(e *core.Entry) (pattern.Fields, error) {
	published, err := e.PublishedTime()
	if err != nil {
		return pattern.Fields{}, err
	}
	s, err := f.resolvedSlug(e)
	if err != nil {
		return pattern.Fields{}, err
	}
	return pattern.Fields{
		Published: published,
		Slug:      s,
		Category:  e.Derived.Category,
	}, nil
}

// resolvedSlug is the explicit slug, or the fallback chain when there is none.
func (f *Formatter) resolvedSlug(e *core.Entry) (string, error) {
	if s := e.Properties.FirstString("slug"); s != "" {
		return s, nil
	}
	return f.formatSlug(e)
}
