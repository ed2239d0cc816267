package subtitle

import (
	"strings"
	"unicode/utf8"

	"github.com/squash/subtidy/pkg/log"
)

// MergeSegments stitches sequential WebVTT segments, as produced by a
// chunked playlist download, into one document. The first segment is kept
// verbatim, header included. Every later segment contributes only from its
// first genuine content line onward: WEBVTT header lines, X-TIMESTAMP-MAP
// metadata, and leading blanks are stripped. Runs of blank lines in the
// concatenation collapse to a single blank line.
//
// A segment that does not decode as text is skipped with a diagnostic; it
// never aborts the merge.
func MergeSegments(segments [][]byte) []byte {
	if len(segments) == 0 {
		return nil
	}

	var merged []string
	first := true

	for i, segment := range segments {
		if !utf8.Valid(segment) {
			log.Warn("Skipping segment %d: not valid UTF-8", i)
			continue
		}
		lines := strings.Split(string(segment), "\n")

		if first {
			merged = append(merged, lines...)
			first = false
			continue
		}

		contentStarted := false
		for _, line := range lines {
			stripped := strings.TrimSpace(line)

			if !contentStarted {
				switch {
				case strings.HasPrefix(stripped, "WEBVTT"):
					continue
				case strings.HasPrefix(stripped, "X-TIMESTAMP-MAP"):
					continue
				case stripped == "":
					continue
				default:
					contentStarted = true
				}
			}

			merged = append(merged, line)
		}
	}

	cleaned := make([]string, 0, len(merged))
	previousBlank := false
	for _, line := range merged {
		if strings.TrimSpace(line) == "" {
			if !previousBlank {
				cleaned = append(cleaned, line)
			}
			previousBlank = true
		} else {
			cleaned = append(cleaned, line)
			previousBlank = false
		}
	}

	return []byte(strings.Join(cleaned, "\n"))
}
