package utils

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"  padded  ", "padded"},
		{"<b>bold</b>", "bold"},
		{"a < b", "a &lt; b"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, Escape(tc.in), "input %q", tc.in)
	}

	require.NotContains(t, Escape(`<script>alert("x")</script>`), "<script>")
}

func TestEscapeAll(t *testing.T) {
	a, b := "<i>one</i>", "two"
	EscapeAll(&a, &b, nil)
	require.Equal(t, "one", a)
	require.Equal(t, "two", b)
}

func TestWriteCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf,
		[]string{"id", "title"},
		[][]string{
			{"1", "no quoting needed"},
			{"2", "comma, inside"},
			{"3", `has "quotes"`},
		},
	)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "id,title\n")
	require.Contains(t, out, `"comma, inside"`)
	require.Contains(t, out, `"has ""quotes"""`)
}

func TestAppErrorKinds(t *testing.T) {
	err := DuplicateEmailError("a@x.com")
	require.True(t, IsKind(err, KindDuplicateEmail))
	require.False(t, IsKind(err, KindNotFound))
	require.Equal(t, 409, err.Code)
	require.Equal(t, "a@x.com", err.Context["email"])

	require.False(t, IsKind(errors.New("plain"), KindStorage))
	require.False(t, IsKind(nil, KindStorage))
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := StorageError("failed to write Users", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "disk full")

	wrapped := fmt.Errorf("saving: %w", err)
	require.True(t, IsKind(wrapped, KindStorage))
}

func TestFileErrors(t *testing.T) {
	tooLarge := FileTooLargeError(60<<20, 50<<20)
	require.Equal(t, int64(60<<20), tooLarge.Context["size"])
	require.Equal(t, int64(50<<20), tooLarge.Context["limit"])

	badType := UnsupportedTypeError("text/plain")
	require.Equal(t, "text/plain", badType.Context["contentType"])
}
