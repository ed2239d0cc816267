package subtitle

import (
	"time"

	"golang.org/x/text/language"
)

// Format identifies a caption container.
type Format string

const (
	// FormatSRT is the line-based container: numbered, timestamped cue blocks.
	FormatSRT Format = "SRT"
	// FormatVTT is the segmented container: WebVTT documents, possibly
	// delivered as sequential chunks each carrying its own header.
	FormatVTT Format = "VTT"
)

// Line represents a single subtitle cue
type Line struct {
	Index     int           // subtitle index
	StartTime time.Duration // start time
	EndTime   time.Duration // end time
	Text      string        // subtitle text
}

// File represents a parsed subtitle document
type File struct {
	Lines    []Line
	Language language.Tag
	Format   Format
}
