// Package links provides URL and file-name rules shared by the formatter:
// recognising absolute URLs, joining paths onto a base URL and classifying
// attachments by extension.
package links

import (
	"net/url"
	"path"
	"strings"

	"github.com/gaurav-prasanna/mfformat/core"
)

// mediaExtensions maps attachment extensions to their media kind.
var mediaExtensions = map[string]core.MediaKind{
	".png": core.Photo, ".jpg": core.Photo, ".jpeg": core.Photo, ".gif": core.Photo,
	".svg": core.Photo, ".webp": core.Photo, ".avif": core.Photo, ".heic": core.Photo,
	".mp4": core.Video, ".webm": core.Video, ".mov": core.Video, ".m4v": core.Video,
	".mp3": core.Audio, ".wav": core.Audio, ".ogg": core.Audio, ".m4a": core.Audio,
	".flac": core.Audio, ".opus": core.Audio,
}

// IsAbsoluteURL reports whether s is an absolute http(s) URL with a host.
func IsAbsoluteURL(s string) bool {
	parsed, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// Join appends a relative path onto base with exactly one slash between them.
// An empty base returns the path unchanged.
func Join(base, rel string) string {
	if base == "" {
		return rel
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rel, "/")
}

// MediaKindOf classifies a file name by its extension.
func MediaKindOf(name string) (core.MediaKind, bool) {
	kind, ok := mediaExtensions[strings.ToLower(path.Ext(name))]
	return kind, ok
}
