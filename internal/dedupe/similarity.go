package dedupe

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// TokenSortRatio scores the fuzzy similarity of two texts on a 0-100 scale.
// Both texts are split on whitespace, the tokens sorted and rejoined, and
// the normalized edit similarity of the two sorted strings taken. Sorting
// first makes the score insensitive to cue-ordering differences between
// sources carrying the same dialogue.
func TokenSortRatio(a, b string) float64 {
	return 100 * levenshtein.Similarity(sortTokens(a), sortTokens(b), nil)
}

func sortTokens(text string) string {
	tokens := strings.Fields(text)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
