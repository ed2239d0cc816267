package dedupe

import "github.com/squash/subtidy/internal/subname"

// Defaults for the tunable heuristics. Exposed as configuration so the
// boundary behavior can be probed directly.
const (
	// DefaultSimilarityThreshold is the token-sort ratio at or above which
	// two same-group subtitles count as near-duplicates.
	DefaultSimilarityThreshold = 96.0
)

// Options carries the pipeline's tunable constants.
type Options struct {
	// SimilarityThreshold gates the near-duplicate pass (0-100 scale).
	SimilarityThreshold float64
	// SDHThreshold gates the SDH relabeling pass.
	SDHThreshold float64
	// DialectRatio is the asymmetric-majority factor for dialect scoring.
	DialectRatio float64
	// AllowedForced lists language tags whose forced subtitles survive the
	// forced filter.
	AllowedForced []string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: DefaultSimilarityThreshold,
		SDHThreshold:        45,
		DialectRatio:        1.5,
		AllowedForced:       subname.DefaultAllowedForced,
	}
}

// Outcome reports what the pipeline removed, in deletion order. Files not
// listed survived.
type Outcome struct {
	ForcedRemoved []string
	ExactRemoved  []string
	NearRemoved   []string
}

// Total returns the number of files removed across all passes.
func (o Outcome) Total() int {
	return len(o.ForcedRemoved) + len(o.ExactRemoved) + len(o.NearRemoved)
}

// Fixer is the external collaborator invoked once at the end of the
// pipeline on each surviving SRT file: a pure transform (file in) ->
// (corrected file, changed out). It must not introduce new duplicate
// content.
type Fixer interface {
	Fix(path string) (changed bool, err error)
}
