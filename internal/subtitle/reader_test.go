package subtitle

import (
	"strings"
	"testing"
	"time"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Hello there.

2
00:00:04,000 --> 00:00:06,000
Two lines
of dialogue.

3
00:00:07,250 --> 00:00:09,000
<i>Whispered.</i>
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(f.Lines) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(f.Lines))
	}
	if f.Format != FormatSRT {
		t.Errorf("expected SRT format, got %v", f.Format)
	}

	first := f.Lines[0]
	if first.Index != 1 {
		t.Errorf("expected index 1, got %d", first.Index)
	}
	if first.StartTime != time.Second {
		t.Errorf("expected start 1s, got %v", first.StartTime)
	}
	if first.EndTime != 3500*time.Millisecond {
		t.Errorf("expected end 3.5s, got %v", first.EndTime)
	}
	if first.Text != "Hello there." {
		t.Errorf("unexpected text: %q", first.Text)
	}

	if f.Lines[1].Text != "Two lines\nof dialogue." {
		t.Errorf("multi-line cue mangled: %q", f.Lines[1].Text)
	}
}

func TestParseWithBOM(t *testing.T) {
	f, err := Parse(strings.NewReader("\uFEFF" + sampleSRT))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(f.Lines) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(f.Lines))
	}
}

func TestParseSkipsGarbageBetweenCues(t *testing.T) {
	input := "garbage line\n\n" + sampleSRT
	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(f.Lines) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(f.Lines))
	}
}

func TestReadFileRejectsNonSRT(t *testing.T) {
	if _, err := ReadFile("subs.vtt"); err == nil {
		t.Fatal("expected error for non-SRT path")
	}
}

func TestDetectLanguageEnglish(t *testing.T) {
	lines := []Line{
		{Text: "The quick brown fox jumps over the lazy dog."},
		{Text: "This is clearly written in the English language."},
		{Text: "Another perfectly ordinary English sentence follows here."},
	}
	tag := DetectLanguage(lines)
	if tag.String() != "en" {
		t.Errorf("expected en, got %s", tag)
	}
}

func TestDetectLanguageEmpty(t *testing.T) {
	tag := DetectLanguage(nil)
	if !tag.IsRoot() {
		t.Errorf("expected und for empty input, got %s", tag)
	}
}
