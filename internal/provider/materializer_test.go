package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vttSegment(cue string) []byte {
	return []byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n" + cue + "\n")
}

func TestMaterializeWritesMergedSegments(t *testing.T) {
	dir := t.TempDir()

	downloads := []Download{
		{
			DesiredName: "Movie.2020.iT.WEB.en.vtt",
			Segments: [][]byte{
				vttSegment("First cue."),
				vttSegment("Second cue."),
			},
		},
	}

	paths, err := Materializer{}.Materialize(dir, downloads)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en.vtt"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "First cue.")
	assert.Contains(t, string(data), "Second cue.")
}

func TestMaterializeDisambiguatesCollidingNames(t *testing.T) {
	dir := t.TempDir()

	downloads := []Download{
		{DesiredName: "Movie.2020.iT.WEB.en.vtt", Segments: [][]byte{vttSegment("Variant one.")}},
		{DesiredName: "Movie.2020.iT.WEB.en.vtt", Segments: [][]byte{vttSegment("Variant two.")}},
		{DesiredName: "Movie.2020.iT.WEB.en.vtt", Segments: [][]byte{vttSegment("Variant three.")}},
	}

	paths, err := Materializer{Concurrency: 2}.Materialize(dir, downloads)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en.vtt"), paths[0])
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en-1.vtt"), paths[1])
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en-2.vtt"), paths[2])

	// each file carries its own variant
	for i, want := range []string{"Variant one.", "Variant two.", "Variant three."} {
		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Contains(t, string(data), want)
	}
}

func TestMaterializeSkipsEmptyDownload(t *testing.T) {
	dir := t.TempDir()

	downloads := []Download{
		{DesiredName: "Movie.2020.iT.WEB.en.vtt", Segments: nil},
		{DesiredName: "Movie.2020.iT.WEB.fr.vtt", Segments: [][]byte{vttSegment("Bonjour.")}},
	}

	paths, err := Materializer{}.Materialize(dir, downloads)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	assert.Equal(t, "", paths[0])
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.fr.vtt"), paths[1])
}

func TestMaterializeRejectsUnnamedDownload(t *testing.T) {
	_, err := Materializer{}.Materialize(t.TempDir(), []Download{{Segments: [][]byte{vttSegment("x")}}})
	assert.Error(t, err)
}
