// Package classify scores subtitle content against linguistic and
// captioning heuristics. Both scorers are read-only: callers apply the
// resulting classification as a filename modifier.
package classify

// DefaultDialectRatio is the asymmetric-majority factor: a dialect wins only
// when its weighted count exceeds the other's by this ratio, so a single
// stray loanword never flips the classification.
const DefaultDialectRatio = 1.5

// DialectScorer decides between two dialects of the same language by
// counting vocabulary hits.
type DialectScorer struct {
	Ratio float64
}

// NewDialectScorer returns a scorer with the default majority ratio.
func NewDialectScorer() DialectScorer {
	return DialectScorer{Ratio: DefaultDialectRatio}
}

// Classify returns tagA if the document's weighted count of setA words
// exceeds Ratio times the setB count, tagB in the inverse case, and neutral
// otherwise.
func (d DialectScorer) Classify(words []string, setA, setB map[string]struct{}, tagA, tagB, neutral string) string {
	ratio := d.Ratio
	if ratio <= 0 {
		ratio = DefaultDialectRatio
	}

	counts := make(map[string]int)
	for _, w := range words {
		counts[w]++
	}

	var countA, countB int
	for w := range setA {
		countA += counts[w]
	}
	for w := range setB {
		countB += counts[w]
	}

	switch {
	case float64(countA) > float64(countB)*ratio:
		return tagA
	case float64(countB) > float64(countA)*ratio:
		return tagB
	default:
		return neutral
	}
}

// EnglishDialect resolves generic English content to en-US, en-GB, or "en"
// when neither dialect dominates.
func (d DialectScorer) EnglishDialect(words []string) string {
	return d.Classify(words, USEnglish, UKEnglish, "en-US", "en-GB", "en")
}

// SpanishDialect resolves generic Spanish content to es-ES (Castilian),
// es-419 (Latin American), or "es" when neutral.
func (d DialectScorer) SpanishDialect(words []string) string {
	return d.Classify(words, CastilianSpanish, LatinAmericanSpanish, "es-ES", "es-419", "es")
}
