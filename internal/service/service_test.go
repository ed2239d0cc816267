package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squash/subtidy/internal/config"
	"github.com/squash/subtidy/internal/dedupe"
	"github.com/squash/subtidy/internal/persistence"
)

type fakeRecorder struct {
	runs     []persistence.Run
	outcomes []dedupe.Outcome
}

func (r *fakeRecorder) RecordRun(_ context.Context, run persistence.Run, outcome dedupe.Outcome) (string, error) {
	r.runs = append(r.runs, run)
	r.outcomes = append(r.outcomes, outcome)
	return "test-run-id", nil
}

func writeSRT(t *testing.T, path string, texts ...string) {
	t.Helper()
	var b strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&b, "%d\n00:00:%02d,000 --> 00:00:%02d,500\n%s\n\n", i+1, i, i, text)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func testConfig(movieDir string) config.Config {
	cfg, err := config.Load("", func(c *config.Config) {
		c.Media = config.MediaConfig{MovieDir: movieDir}
	})
	if err != nil {
		panic(err)
	}
	return *cfg
}

func TestRunDirRecordsOutcome(t *testing.T) {
	dir := t.TempDir()
	dialogue := []string{"The cat sat on the mat.", "It would not move."}
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.en.srt"), dialogue...)
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.en-US.srt"), dialogue...)

	recorder := &fakeRecorder{}
	svc := NewSweepService(testConfig(dir), nil, recorder)

	outcome, err := svc.RunDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, outcome.ExactRemoved, 1)
	require.Len(t, recorder.runs, 1)
	assert.Equal(t, dir, recorder.runs[0].Directory)
	assert.False(t, recorder.runs[0].FinishedAt.Before(recorder.runs[0].StartedAt))
	assert.Equal(t, outcome, recorder.outcomes[0])
}

func TestRunDirNilRecorder(t *testing.T) {
	dir := t.TempDir()
	writeSRT(t, filepath.Join(dir, "Movie.2020.iT.WEB.fr.srt"), "Le chat dort.")

	svc := NewSweepService(testConfig(dir), nil, nil)
	_, err := svc.RunDir(context.Background(), dir)
	assert.NoError(t, err)
}

func TestSweepAllSkipsMissingDirs(t *testing.T) {
	existing := t.TempDir()
	writeSRT(t, filepath.Join(existing, "Movie.2020.iT.WEB.de.srt"), "Die Katze schläft.")

	cfg, err := config.Load("", func(c *config.Config) {
		c.Media = config.MediaConfig{
			MovieDir: existing,
			ShowDir:  filepath.Join(existing, "does-not-exist"),
		}
	})
	require.NoError(t, err)

	recorder := &fakeRecorder{}
	svc := NewSweepService(*cfg, nil, recorder)
	svc.SweepAll(context.Background())

	// only the existing directory produced a run
	require.Len(t, recorder.runs, 1)
	assert.Equal(t, existing, recorder.runs[0].Directory)
}
