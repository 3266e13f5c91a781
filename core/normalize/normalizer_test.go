package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	n := New()

	got, err := n.Convert(context.Background(), "<p>Abc</p><p>123</p><ul><li>Foo</li><li>Bar</li></ul>")
	require.NoError(t, err)
	require.Equal(t, "Abc\n\n123\n\n* Foo\n* Bar", got)
}

func TestConvert_Emphasis(t *testing.T) {
	got, err := New().Convert(context.Background(), "<p>Hello <strong>World</strong></p>")
	require.NoError(t, err)
	require.Equal(t, "Hello **World**", got)
}

func TestConvert_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Convert(ctx, "<p>x</p>")
	require.ErrorIs(t, err, context.Canceled)
}
