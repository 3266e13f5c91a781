package links

import (
	"testing"

	"github.com/gaurav-prasanna/mfformat/core"
	"github.com/stretchr/testify/require"
)

func TestIsAbsoluteURL(t *testing.T) {
	require.True(t, IsAbsoluteURL("http://example.com/"))
	require.True(t, IsAbsoluteURL("https://example.com/people/jane"))
	require.False(t, IsAbsoluteURL("foo"))
	require.False(t, IsAbsoluteURL("/relative/path"))
	require.False(t, IsAbsoluteURL("mailto:jane@example.com"))
	require.False(t, IsAbsoluteURL("http://"))
}

func TestJoin(t *testing.T) {
	require.Equal(t, "2015/06/slug/", Join("", "2015/06/slug/"))
	require.Equal(t, "http://example.com/foo/2015/06/", Join("http://example.com/foo/", "/2015/06/"))
	require.Equal(t, "http://example.com/foo/2015/06/", Join("http://example.com/foo", "2015/06/"))
}

func TestMediaKindOf(t *testing.T) {
	kind, ok := MediaKindOf("Holiday.JPG")
	require.True(t, ok)
	require.Equal(t, core.Photo, kind)

	kind, ok = MediaKindOf("clip.webm")
	require.True(t, ok)
	require.Equal(t, core.Video, kind)

	kind, ok = MediaKindOf("song.mp3")
	require.True(t, ok)
	require.Equal(t, core.Audio, kind)

	_, ok = MediaKindOf("notes.txt")
	require.False(t, ok)
}
