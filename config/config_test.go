package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.True(t, cfg.DeriveCategory)
	require.False(t, cfg.NoMarkdown)
	require.Empty(t, cfg.Source)

	opts := cfg.FormatOptions()
	require.False(t, opts.SkipCategory)
	require.Nil(t, opts.Defaults)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
permalinkStyle: /:categories/:year/:month/:title/
filepath: _posts/:year-:month-:day-:slug.md
noMarkdown: true
contentSlug: true
deriveCategory: false
deriveLanguages: true
languages: [eng, swe]
relativeTo: https://example.com/
defaults:
  lang: [en]
  syndication: [https://example.com/feed]
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Source)

	opts := cfg.FormatOptions()
	require.Equal(t, "/:categories/:year/:month/:title/", opts.PermalinkStyle)
	require.Equal(t, "_posts/:year-:month-:day-:slug.md", opts.Filepath)
	require.True(t, opts.NoMarkdown)
	require.True(t, opts.ContentSlug)
	require.True(t, opts.SkipCategory)
	require.True(t, opts.DeriveLanguages)
	require.Equal(t, []string{"eng", "swe"}, opts.Languages)
	require.Equal(t, "https://example.com/", opts.RelativeTo)
	require.Equal(t, []string{"lang", "syndication"}, opts.Defaults.Keys())
	require.Equal(t, "en", opts.Defaults.FirstString("lang"))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MFFORMAT_RELATIVETO", "https://env.example/")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://env.example/", cfg.RelativeTo)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
