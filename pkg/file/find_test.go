package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSubtitles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.srt", "a.srt", "c.vtt", "movie.mkv", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	got, err := ListSubtitles(dir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.srt"),
		filepath.Join(dir, "b.srt"),
		filepath.Join(dir, "c.vtt"),
	}
	assert.Equal(t, want, got)
}

func TestListByExtIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "x.srt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.srt"), []byte("x"), 0o644))

	got, err := ListByExt(dir, ".srt")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "top.srt")}, got)
}
