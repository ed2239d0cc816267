// Package fixer is the generic caption-content collaborator invoked at the
// end of the canonicalization pipeline: a pure transform over one file that
// repairs encoding glitches and malformed cue syntax without changing what
// the captions say.
package fixer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/squash/subtidy/internal/subtitle"
)

// periodTimestamp matches SRT cue timings that use a period instead of the
// comma the format requires.
var periodTimestamp = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})\.(\d{3})(\s*-->\s*)(\d{2}:\d{2}:\d{2})[.,](\d{3})`)

// CommonFixer repairs the defects that survive conversion and deduping:
// byte-order marks, Windows line endings, period-separated cue timings, and
// out-of-sequence cue indices. It satisfies dedupe.Fixer.
type CommonFixer struct{}

func New() CommonFixer {
	return CommonFixer{}
}

// Fix rewrites the file in place when anything needed repair. The corrected
// document is written to a sibling temp file and renamed over the original,
// so a failure mid-write never truncates the input.
func (CommonFixer) Fix(path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text := string(bytes.TrimPrefix(raw, []byte("\uFEFF")))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = periodTimestamp.ReplaceAllString(text, "$1,$2$3$4,$5")

	parsed, err := subtitle.Parse(strings.NewReader(text))
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(parsed.Lines) == 0 {
		return false, fmt.Errorf("no cues survived parsing %s", path)
	}

	// Reindex sequentially; sources frequently carry gaps after editing.
	for i := range parsed.Lines {
		parsed.Lines[i].Index = i + 1
	}

	var out strings.Builder
	if err := subtitle.Write(&out, parsed); err != nil {
		return false, err
	}
	fixed := []byte(out.String())

	if bytes.Equal(fixed, raw) {
		return false, nil
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".fix")
	if err := os.WriteFile(tmp, fixed, 0o644); err != nil {
		return false, fmt.Errorf("failed to write fixed copy: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return true, nil
}
