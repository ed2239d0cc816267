package fixer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Movie.2020.iT.WEB.en.srt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFixRepairsCRLFAndBOM(t *testing.T) {
	path := writeTemp(t, "\uFEFF1\r\n00:00:01,000 --> 00:00:02,000\r\nHello.\r\n\r\n")

	changed, err := New().Fix(path)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "\r")
	assert.False(t, strings.HasPrefix(text, "\uFEFF"))
	assert.Contains(t, text, "Hello.")
}

func TestFixRepairsPeriodTimestamps(t *testing.T) {
	path := writeTemp(t, "1\n00:00:01.000 --> 00:00:02.000\nHello.\n\n")

	changed, err := New().Fix(path)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "00:00:01,000 --> 00:00:02,000")
}

func TestFixReindexesCues(t *testing.T) {
	path := writeTemp(t,
		"3\n00:00:01,000 --> 00:00:02,000\nFirst.\n\n"+
			"7\n00:00:03,000 --> 00:00:04,000\nSecond.\n\n")

	changed, err := New().Fix(path)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "1\n"))
	assert.Contains(t, string(data), "\n2\n00:00:03,000")
}

func TestFixIdempotent(t *testing.T) {
	path := writeTemp(t, "1\n00:00:01.000 --> 00:00:02.000\nHello.\n\n")

	changed, err := New().Fix(path)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = New().Fix(path)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFixRejectsEmptyDocument(t *testing.T) {
	path := writeTemp(t, "not a subtitle at all\n")

	_, err := New().Fix(path)
	assert.Error(t, err)

	// original left untouched on failure
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "not a subtitle at all\n", string(data))
}
