package detect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const englishText = "The quick brown fox jumps over the lazy dog. " +
	"This is a fairly long English sentence that should be easy to classify, " +
	"because it is written in plain language with many common words."

func TestDetect_English(t *testing.T) {
	code, err := New().Detect(context.Background(), englishText, []string{"eng", "swe"})
	require.NoError(t, err)
	require.Equal(t, "eng", code)
}

const swedishText = "Det var en gång en liten utter som hette Skog. Något ironiskt så för skog var allt " +
	"annat än det som fanns kvar efter att Skog haft sin framfart i sitt grannskap. Varenda liten " +
	"plätt var kal som åker. Men Skog var inte ledsen för det. Han hade ju trots allt sig själv."

func TestDetect_SwedishWithAllowList(t *testing.T) {
	code, err := New().Detect(context.Background(), swedishText, []string{"eng", "swe"})
	require.NoError(t, err)
	require.Equal(t, "swe", code)
}

func TestDetect_GermanUnrestricted(t *testing.T) {
	code, err := New().Detect(context.Background(), "Du hast mich einen käse mit orangen saft gekaufen.", nil)
	require.NoError(t, err)
	require.Equal(t, "deu", code)
}

func TestDetect_Undetectable(t *testing.T) {
	code, err := New().Detect(context.Background(), "Nope", nil)
	require.NoError(t, err)
	require.Empty(t, code)
}

func TestDetect_EmptyText(t *testing.T) {
	code, err := New().Detect(context.Background(), "", nil)
	require.NoError(t, err)
	require.Empty(t, code)
}

func TestDetect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Detect(ctx, englishText, nil)
	require.ErrorIs(t, err, context.Canceled)
}
