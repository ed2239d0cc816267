package classify

import (
	"regexp"
	"strings"

	"github.com/squash/subtidy/internal/subtitle"
)

// DefaultSDHThreshold is the empirically calibrated score at which content
// is treated as captioned for deaf/hard-of-hearing viewers. Tunable, not a
// law of nature.
const DefaultSDHThreshold = 45.0

var (
	sdhMusicNotes  = regexp.MustCompile(`[♪♫]`)
	sdhBrackets    = regexp.MustCompile(`\[.*?\]`)
	sdhParenthesis = regexp.MustCompile(`\(.*?\)`)
	sdhSpeaker     = regexp.MustCompile(`^[A-Za-z0-9_]+:\s`) // e.g. JOHN: Hello
)

// noParenLanguages lists base tags of scripts where parentheses are common
// punctuation rather than a captioning convention; parenthetical scoring is
// suppressed for them.
var noParenLanguages = makeSet(
	"ar", "ja", "ko", "th", "yue-hant", "zh", "zh-hans", "zh-hant",
)

// SDHScorer detects hearing-impaired captioning by weighted pattern scoring.
type SDHScorer struct {
	Threshold float64
}

// NewSDHScorer returns a scorer with the default threshold.
func NewSDHScorer() SDHScorer {
	return SDHScorer{Threshold: DefaultSDHThreshold}
}

// Score accumulates the weighted SDH evidence in a subtitle document.
// Musical-note markers and bracketed sound descriptions weigh 2 each;
// parenthetical spans and speaker-label lines weigh 0.4 each. langTag is the
// filename's language tag, used to suppress parenthetical scoring for
// scripts where parentheses are not a captioning signal.
func (s SDHScorer) Score(f *subtitle.File, langTag string) float64 {
	content := subtitle.Content(f, true)

	score := 0.0
	score += float64(len(sdhMusicNotes.FindAllString(content, -1))) * 2
	score += float64(len(sdhBrackets.FindAllString(content, -1))) * 2

	if _, suppressed := noParenLanguages[strings.ToLower(langTag)]; !suppressed {
		score += float64(len(sdhParenthesis.FindAllString(content, -1))) * 0.4
	}

	for _, line := range f.Lines {
		for _, text := range strings.Split(line.Text, "\n") {
			if sdhSpeaker.MatchString(text) {
				score += 0.4
			}
		}
	}

	return score
}

// IsSDH reports whether the document scores at or above the threshold.
func (s SDHScorer) IsSDH(f *subtitle.File, langTag string) bool {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultSDHThreshold
	}
	return s.Score(f, langTag) >= threshold
}
