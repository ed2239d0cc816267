package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNumberedSuffix(t *testing.T) {
	tests := []struct {
		stem     string
		wantMain string
		wantN    int
	}{
		{"Movie.2020.iT.WEB.en", "Movie.2020.iT.WEB.en", 0},
		{"Movie.2020.iT.WEB.en-1", "Movie.2020.iT.WEB.en", 1},
		{"Movie.2020.iT.WEB.en-US-10", "Movie.2020.iT.WEB.en-US", 10},
		// the region subtag of es-419 must never be mistaken for a suffix
		{"Movie.2020.iT.WEB.es-419", "Movie.2020.iT.WEB.es-419", 0},
		{"Movie.2020.iT.WEB.en[sdh]-2", "Movie.2020.iT.WEB.en[sdh]", 2},
	}

	for _, tt := range tests {
		main, n := SplitNumberedSuffix(tt.stem)
		assert.Equal(t, tt.wantMain, main, "stem %q", tt.stem)
		assert.Equal(t, tt.wantN, n, "stem %q", tt.stem)
	}
}

func TestAllocatorReservesDesiredWhenFree(t *testing.T) {
	dir := t.TempDir()
	alloc := NewAllocator()

	desired := filepath.Join(dir, "Movie.2020.iT.WEB.en.srt")
	got := alloc.Reserve(desired)
	assert.Equal(t, desired, got)
}

func TestAllocatorMonotonicSuffixes(t *testing.T) {
	dir := t.TempDir()
	alloc := NewAllocator()

	desired := filepath.Join(dir, "Movie.2020.iT.WEB.en.srt")

	first := alloc.Reserve(desired)
	second := alloc.Reserve(desired)
	third := alloc.Reserve(desired)

	assert.Equal(t, desired, first)
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en-1.srt"), second)
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en-2.srt"), third)
}

func TestAllocatorAvoidsOnDiskFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "Movie.2020.iT.WEB.en.srt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	alloc := NewAllocator()
	got := alloc.Reserve(existing)
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en-1.srt"), got)
}

func TestAllocatorContinuesFromExistingSuffix(t *testing.T) {
	dir := t.TempDir()
	suffixed := filepath.Join(dir, "Movie.2020.iT.WEB.en-3.srt")
	require.NoError(t, os.WriteFile(suffixed, []byte("x"), 0o644))

	alloc := NewAllocator()
	got := alloc.Reserve(suffixed)
	assert.Equal(t, filepath.Join(dir, "Movie.2020.iT.WEB.en-4.srt"), got)
}

func TestAllocatorRelease(t *testing.T) {
	dir := t.TempDir()
	alloc := NewAllocator()

	desired := filepath.Join(dir, "Movie.2020.iT.WEB.fr.srt")
	got := alloc.Reserve(desired)
	require.Equal(t, desired, got)

	alloc.Release(desired)
	assert.Equal(t, desired, alloc.Reserve(desired))
}
