package dedupe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squash/subtidy/pkg/file"
)

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	paths, err := file.ListSubtitles(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func TestPipelineForcedFilter(t *testing.T) {
	dir := t.TempDir()
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.en[forced].srt"),
		"The cat sat on the mat.")
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.fr[forced].srt"),
		"Le chat dort sur le tapis.")
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.de.srt"),
		"Die Katze schläft auf dem Teppich.")

	p := New(DefaultOptions(), nil)
	outcome, err := p.Run(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "Movie.2020.iT.WEB.fr[forced].srt")},
		outcome.ForcedRemoved)
	assert.Empty(t, outcome.ExactRemoved)
	assert.Empty(t, outcome.NearRemoved)

	names := listNames(t, dir)
	assert.Contains(t, names, "Movie.2020.iT.WEB.en[forced].srt")
	assert.Contains(t, names, "Movie.2020.iT.WEB.de.srt")
	assert.NotContains(t, names, "Movie.2020.iT.WEB.fr[forced].srt")
}

func TestPipelineExactDuplicateAcrossTags(t *testing.T) {
	dir := t.TempDir()
	en := filepath.Join(dir, "Movie.2020.iT.WEB.en.srt")
	enUS := filepath.Join(dir, "Movie.2020.iT.WEB.en-US.srt")
	fr := filepath.Join(dir, "Movie.2020.iT.WEB.fr.srt")

	dialogue := []string{
		"The cat sat on the mat.",
		"It would not move for anyone.",
		"We watched it for an hour.",
	}
	writeSRT(t, en, dialogue...)
	writeSRT(t, enUS, dialogue...)
	writeSRT(t, fr,
		"Le chat dort sur le tapis.",
		"Il ne bouge pour personne.",
		"Nous avons attendu une heure.")

	p := New(DefaultOptions(), nil)
	outcome, err := p.Run(dir)
	require.NoError(t, err)

	// exactly one of the two identical English files was removed
	require.Len(t, outcome.ExactRemoved, 1)
	assert.Empty(t, outcome.ForcedRemoved)
	assert.Empty(t, outcome.NearRemoved)

	names := listNames(t, dir)
	require.Len(t, names, 2)
	assert.Contains(t, names, "Movie.2020.iT.WEB.fr.srt")

	// the survivor carries the neutral tag: its content shows no dialect
	assert.Contains(t, names, "Movie.2020.iT.WEB.en.srt")
}

func TestPipelineConvertsVTT(t *testing.T) {
	dir := t.TempDir()
	vtt := filepath.Join(dir, "Movie.2020.iT.WEB.fr.vtt")
	require.NoError(t, os.WriteFile(vtt, []byte(
		"WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nLe chat dort sur le tapis.\n"), 0o644))

	p := New(DefaultOptions(), nil)
	_, err := p.Run(dir)
	require.NoError(t, err)

	names := listNames(t, dir)
	assert.Equal(t, []string{"Movie.2020.iT.WEB.fr.srt"}, names)
}

func TestPipelineRelabelsUKEnglish(t *testing.T) {
	dir := t.TempDir()
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.en.srt"),
		"What a lovely colour that is.",
		"The theatre opens at eight.",
		"My favourite part comes later.")

	p := New(DefaultOptions(), nil)
	_, err := p.Run(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Movie.2020.iT.WEB.en-GB.srt"}, listNames(t, dir))
}

func TestPipelineCleansLocaleNames(t *testing.T) {
	dir := t.TempDir()
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.de-DE.srt"),
		"Die Katze schläft auf dem Teppich.")

	p := New(DefaultOptions(), nil)
	_, err := p.Run(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Movie.2020.iT.WEB.de.srt"}, listNames(t, dir))
}

func TestPipelineEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	p := New(DefaultOptions(), nil)
	outcome, err := p.Run(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Total())
}

func TestPipelineMissingDirectory(t *testing.T) {
	p := New(DefaultOptions(), nil)
	_, err := p.Run(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
