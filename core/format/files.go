package format

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/mfformat/core"
	"github.com/gaurav-prasanna/mfformat/core/links"
	"github.com/gaurav-prasanna/mfformat/core/pattern"
	"github.com/gaurav-prasanna/mfformat/core/slug"
)

// mediaDir is the per-entry directory attachments are moved into.
const mediaDir = "media/:year-:month-:slug/"

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9.-]+`)

// preFormatFiles moves attachments into the media directory of e and appends
// their URLs to the property of their media kind.
func (f *Formatter) preFormatFiles(e *core.Entry, base string) error {
	if len(e.Files) == 0 {
		return nil
	}

	fields, err := f.fields(e)
	if err != nil {
		return err
	}
	dir := pattern.Expand(mediaDir, fields)

	for _, kind := range core.MediaKinds {
		files := e.Files[kind]
		if len(files) == 0 {
			continue
		}

		renamed := make([]core.File, 0, len(files))
		urls := make([]core.Value, 0, len(files))
		for i, file := range files {
			name := dir + mediaBasename(file.Filename, kind, i)
			renamed = append(renamed, core.File{Filename: name, Buffer: file.Buffer})
			urls = append(urls, core.Text(links.Join(base, name)))
		}

		e.Files[kind] = renamed
		e.Properties.Append(string(kind), urls...)
	}
	return nil
}

// mediaBasename splits camel case in the base name of filename, lower-cases it
// and replaces unsafe characters with dashes, keeping the extension.
func mediaBasename(filename string, kind core.MediaKind, index int) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}
	ext := path.Ext(name)
	stem := strings.ToLower(slug.SplitCase(strings.TrimSuffix(name, ext)))

	stem = strings.Trim(unsafeFileChars.ReplaceAllString(stem, "-"), "-.")
	ext = unsafeFileChars.ReplaceAllString(strings.ToLower(ext), "-")
	if stem == "" {
		stem = fmt.Sprintf("%s-%d", kind, index)
	}
	return stem + ext
}
