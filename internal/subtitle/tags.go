package subtitle

import "regexp"

var (
	// tagStrip removes inline formatting markup before content is scored
	// or compared.
	tagStrip = regexp.MustCompile(`(?i)</?i>|</?u>|</?b>|\{\s*\\an[1-9]\s*\}|<font[^>]*>|</font>`)

	// tagCount matches only the markup treated as a fidelity signal:
	// italics and the top-center positioning tag.
	tagCount = regexp.MustCompile(`(?i)</?i>|\{\s*\\an8\s*\}`)
)

// StripFormattingTags removes inline formatting markup from cue text.
func StripFormattingTags(text string) string {
	return tagStrip.ReplaceAllString(text, "")
}

// CountFormattingTags counts italic and {\an8} tags. A higher count is taken
// as a sign of a higher-fidelity transcription when two near-duplicate
// subtitles compete.
func CountFormattingTags(text string) int {
	return len(tagCount.FindAllString(text, -1))
}
