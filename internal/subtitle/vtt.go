package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/squash/subtidy/pkg/file"
	"github.com/squash/subtidy/pkg/log"
)

// vttTimePattern accepts both HH:MM:SS.mmm and MM:SS.mmm cue timings, with
// optional cue settings after the arrow.
var vttTimePattern = regexp.MustCompile(`(?:(\d{1,2}):)?(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(?:(\d{1,2}):)?(\d{2}):(\d{2})\.(\d{3})`)

// ParseVTT reads a WebVTT document from r. Cue identifiers, settings, NOTE
// and STYLE blocks are discarded; cues are renumbered sequentially so the
// result can be written straight out as SRT.
func ParseVTT(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []Line
	var current *Line
	var textLines []string
	inNote := false

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Index = len(lines) + 1
			current.Text = strings.Join(textLines, "\n")
			lines = append(lines, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			flush()
			inNote = false
		case inNote:
			// swallow the rest of a NOTE/STYLE/REGION block
		case strings.HasPrefix(line, "WEBVTT"),
			strings.HasPrefix(line, "X-TIMESTAMP-MAP"):
			// header metadata
		case strings.HasPrefix(line, "NOTE"),
			strings.HasPrefix(line, "STYLE"),
			strings.HasPrefix(line, "REGION"):
			inNote = true
		case vttTimePattern.MatchString(line):
			flush()
			start, end := parseVTTTime(line)
			current = &Line{StartTime: start, EndTime: end}
		case current != nil:
			textLines = append(textLines, line)
		default:
			// cue identifier line, dropped
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vtt document: %w", err)
	}

	return &File{
		Lines:    lines,
		Language: DetectLanguage(lines),
		Format:   FormatVTT,
	}, nil
}

func parseVTTTime(line string) (time.Duration, time.Duration) {
	m := vttTimePattern.FindStringSubmatch(line)

	field := func(hours, minutes, seconds, milliseconds string) time.Duration {
		h, _ := strconv.Atoi(hours)
		mi, _ := strconv.Atoi(minutes)
		s, _ := strconv.Atoi(seconds)
		ms, _ := strconv.Atoi(milliseconds)
		return time.Duration(h)*time.Hour +
			time.Duration(mi)*time.Minute +
			time.Duration(s)*time.Second +
			time.Duration(ms)*time.Millisecond
	}

	return field(m[1], m[2], m[3], m[4]), field(m[5], m[6], m[7], m[8])
}

// ConvertVTTFile rewrites one .vtt file as a same-stem .srt and deletes the
// original after a successful write. Returns the new path. If the target
// .srt already exists, nothing is written and the .vtt is left alone.
func ConvertVTTFile(path string) (string, error) {
	target := file.ReplaceExt(path, "srt")
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open vtt file: %w", err)
	}
	parsed, err := ParseVTT(f)
	f.Close()
	if err != nil {
		return "", err
	}
	parsed.Format = FormatSRT

	if err := WriteFile(target, parsed); err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove converted vtt: %w", err)
	}
	return target, nil
}

// ConvertVTTFiles converts every .vtt file directly inside dir to SRT. A
// file that fails to convert is logged and skipped, never fatal.
func ConvertVTTFiles(dir string) error {
	vttFiles, err := file.ListByExt(dir, "vtt")
	if err != nil {
		return err
	}

	for _, path := range vttFiles {
		if _, err := ConvertVTTFile(path); err != nil {
			log.Warn("Failed to convert %s: %v", path, err)
		}
	}
	return nil
}
