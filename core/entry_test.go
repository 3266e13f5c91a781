package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProperties_KeepInsertionOrder(t *testing.T) {
	p := NewProperties()
	p.Set("b", Text("1"))
	p.Set("a", Text("2"))
	p.Set("c", Text("3"))
	p.Set("b", Text("4"))
	require.Equal(t, []string{"b", "a", "c"}, p.Keys())

	p.Delete("a")
	require.Equal(t, []string{"b", "c"}, p.Keys())
	require.Equal(t, 2, p.Len())

	p.Append("c", Text("5"))
	values, _ := p.Get("c")
	require.Equal(t, []Value{Text("3"), Text("5")}, values)
}

func TestProperties_HasAndPresent(t *testing.T) {
	p := NewProperties()
	p.Set("slug")
	require.True(t, p.Present("slug"))
	require.False(t, p.Has("slug"))
	require.Equal(t, "", p.FirstString("slug"))
	require.False(t, p.Present("name"))
}

func TestEntry_CloneIsIndependent(t *testing.T) {
	e := NewEntry()
	e.Properties.Set("category", Text("foo"))
	e.Files = map[MediaKind][]File{Photo: {{Filename: "a.jpg"}}}
	e.Derived.PersonTags = []string{"http://example.com/"}

	c := e.Clone()
	c.Properties.Append("category", Text("bar"))
	c.Files[Photo][0].Filename = "b.jpg"
	c.Derived.PersonTags[0] = "changed"

	values, _ := e.Properties.Get("category")
	require.Len(t, values, 1)
	require.Equal(t, "a.jpg", e.Files[Photo][0].Filename)
	require.Equal(t, "http://example.com/", e.Derived.PersonTags[0])
}

func TestEntry_Validate(t *testing.T) {
	var nilEntry *Entry
	require.ErrorIs(t, nilEntry.Validate(), ErrMalformedEntry)
	require.ErrorIs(t, (&Entry{}).Validate(), ErrMalformedEntry)
	require.NoError(t, NewEntry().Validate())
}

func TestEntry_PublishedTime(t *testing.T) {
	_, err := (&Entry{PreFormatted: true}).PublishedTime()
	require.ErrorIs(t, err, ErrMalformedEntry)

	e := NewEntry()
	_, err = e.PublishedTime()
	require.ErrorIs(t, err, ErrMalformedEntry)

	e.Properties.Set("published", Text("2015-06-30T16:34:01+02:00"))
	got, err := e.PublishedTime()
	require.NoError(t, err)
	require.Equal(t, time.Date(2015, time.June, 30, 14, 34, 1, 0, time.UTC), got)
}

func TestValue_String(t *testing.T) {
	require.Equal(t, "plain", Text("plain").String())
	require.Equal(t, "2015-06-30T14:34:01.000Z", Timestamp(time.Date(2015, time.June, 30, 14, 34, 1, 0, time.UTC)).String())
	require.Equal(t, "<p>x</p>", HTML("<p>x</p>").String())
	require.Equal(t, "text", Value{Content: &Content{Value: "text"}}.String())
}

func TestEntry_UnmarshalJSON(t *testing.T) {
	input := `{
		"type": ["h-entry"],
		"properties": {
			"name": ["awesomeness is awesome"],
			"content": [{"html": "<p>Hi</p>"}, "plain", {"value": "text"}],
			"published": ["2015-06-30T14:34:01.000Z"],
			"author": [{"type": ["h-card"], "properties": {"name": ["Jane"]}}],
			"slug": "single"
		}
	}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(input), &e))
	require.Equal(t, []string{"h-entry"}, e.Type)
	require.Equal(t, []string{"name", "content", "published", "author", "slug"}, e.Properties.Keys())

	content, _ := e.Properties.Get("content")
	require.Equal(t, []Value{HTML("<p>Hi</p>"), Text("plain"), {Content: &Content{Value: "text"}}}, content)
	require.Equal(t, "single", e.Properties.FirstString("slug"))
	require.Contains(t, e.Properties.FirstString("author"), `"h-card"`)
}

func TestEntry_UnmarshalJSON_MissingProperties(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"type":["h-entry"]}`), &e))
	require.ErrorIs(t, e.Validate(), ErrMalformedEntry)
}

func TestEntry_MarshalJSON(t *testing.T) {
	e := NewEntry()
	e.Properties.Set("name", Text("x"))
	e.Properties.Set("content", HTML("<p>y</p>"))
	e.Derived.Category = "social"

	data, err := json.Marshal(e)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"type":["h-entry"],"properties":{"name":["x"],"content":[{"html":"<p>y</p>"}]},"derived":{"category":"social"}}`,
		string(data))
	require.Less(t, strings.Index(string(data), `"name"`), strings.Index(string(data), `"content"`))
}
