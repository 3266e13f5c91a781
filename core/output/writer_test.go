package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/mfformat/core"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "site"))
	require.NoError(t, err)

	paths, err := w.Write(&core.Result{
		Filename: "_posts/2015-06-30-hello.md",
		Content:  "---\nlayout: micropubpost\n---\n",
		Files: []core.File{
			{Filename: "media/2015-06-hello/foo.jpg", Buffer: []byte("jpg")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "site", "_posts", "2015-06-30-hello.md"),
		filepath.Join(dir, "site", "media", "2015-06-hello", "foo.jpg"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Equal(t, "---\nlayout: micropubpost\n---\n", string(data))

	data, err = os.ReadFile(paths[1])
	require.NoError(t, err)
	require.Equal(t, "jpg", string(data))
}

func TestWrite_RejectsEscapingNames(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = w.Write(&core.Result{Filename: "../outside.md"})
	require.Error(t, err)

	_, err = w.Write(&core.Result{Filename: ""})
	require.Error(t, err)
}
