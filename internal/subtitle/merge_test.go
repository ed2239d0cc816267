package subtitle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeSegments(t *testing.T) {
	segments := [][]byte{
		[]byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nFirst cue.\n"),
		[]byte("WEBVTT\nX-TIMESTAMP-MAP=MPEGTS:900000,LOCAL:00:00:00.000\n\n00:00:03.000 --> 00:00:04.000\nSecond cue.\n"),
	}

	merged := string(MergeSegments(segments))

	// exactly one header survives
	assert.Equal(t, 1, strings.Count(merged, "WEBVTT"))
	assert.NotContains(t, merged, "X-TIMESTAMP-MAP")

	// both cues present, first before second
	firstIdx := strings.Index(merged, "First cue.")
	secondIdx := strings.Index(merged, "Second cue.")
	assert.GreaterOrEqual(t, firstIdx, 0)
	assert.Greater(t, secondIdx, firstIdx)

	// no run of blank lines
	assert.NotContains(t, merged, "\n\n\n")
}

func TestMergeSegmentsSkipsInvalidUTF8(t *testing.T) {
	segments := [][]byte{
		[]byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nGood cue.\n"),
		{0xff, 0xfe, 0x00},
		[]byte("WEBVTT\n\n00:00:03.000 --> 00:00:04.000\nLater cue.\n"),
	}

	merged := string(MergeSegments(segments))
	assert.Contains(t, merged, "Good cue.")
	assert.Contains(t, merged, "Later cue.")
}

func TestMergeSegmentsEmpty(t *testing.T) {
	assert.Nil(t, MergeSegments(nil))
}
