package subtitle

import (
	"regexp"
	"strings"
)

var nonWordPattern = regexp.MustCompile(`[^a-zà-ÿ ]`)

var ellipsisReplacer = strings.NewReplacer("…", "...", "․", ".")

// Content flattens a subtitle document into one continuous string: cue
// indices and timestamps are excluded and typographic ellipses normalized,
// so that byte-level differences in punctuation encoding never defeat the
// similarity comparison. When stripTags is set, inline formatting markup is
// removed as well.
func Content(f *File, stripTags bool) string {
	if f == nil {
		return ""
	}

	var b strings.Builder
	for _, line := range f.Lines {
		text := line.Text
		if stripTags {
			text = StripFormattingTags(text)
		}
		text = ellipsisReplacer.Replace(strings.TrimSpace(text))
		b.WriteString(text)
		b.WriteByte(' ')
	}

	return strings.ReplaceAll(strings.TrimSpace(b.String()), "\n", " ")
}

// Words returns the document's cue text as a list of lowercase words with
// punctuation and digits removed. Formatting markup is always stripped.
func Words(f *File) []string {
	if f == nil {
		return nil
	}

	var words []string
	for _, line := range f.Lines {
		text := strings.ToLower(StripFormattingTags(line.Text))
		text = nonWordPattern.ReplaceAllString(text, "")
		words = append(words, strings.Fields(text)...)
	}
	return words
}
