package dedupe

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/squash/subtidy/internal/classify"
	"github.com/squash/subtidy/internal/subname"
	"github.com/squash/subtidy/internal/subtitle"
	"github.com/squash/subtidy/pkg/file"
	"github.com/squash/subtidy/pkg/log"
)

var (
	stemBracket    = regexp.MustCompile(`^(.*?)((?:\[[^\]]*\])*)$`)
	englishTagTail = regexp.MustCompile(`(?i)\.en(-US|-GB)?$`)
	spanishTagTail = regexp.MustCompile(`(?i)\.es$`)
)

// englishRelabel resolves generic or ambiguous English tags to the dialect
// the content actually uses. Files whose stem does not end in an English tag
// (including numerically-suffixed names) are left alone.
func englishRelabel(s *Snapshot, scorer classify.DialectScorer, alloc *file.Allocator) {
	for _, id := range s.IDs() {
		path := s.Path(id)
		if !strings.EqualFold(filepath.Ext(path), ".srt") {
			continue
		}
		stem := file.Stem(path)
		if !subname.IsEnglishTagged(stem) {
			continue
		}

		relabelDialect(s, id, alloc, englishTagTail, func(words []string) string {
			return scorer.EnglishDialect(words)
		})
	}
}

// spanishRelabel applies es-ES or es-419 to generic "es" tags when a dialect
// is detected. Region-tagged Spanish files are never touched.
func spanishRelabel(s *Snapshot, scorer classify.DialectScorer, alloc *file.Allocator) {
	for _, id := range s.IDs() {
		path := s.Path(id)
		if !strings.EqualFold(filepath.Ext(path), ".srt") {
			continue
		}
		stem := file.Stem(path)
		if !subname.IsGenericSpanishTagged(stem) {
			continue
		}

		relabelDialect(s, id, alloc, spanishTagTail, func(words []string) string {
			return scorer.SpanishDialect(words)
		})
	}
}

// relabelDialect rewrites one file's language tag according to the scorer's
// verdict. The current tag sits at the end of the stem's base, before any
// bracket modifier; the numeric disambiguator is absent by construction
// since suffixed stems never match the tag patterns.
func relabelDialect(s *Snapshot, id int, alloc *file.Allocator, tagTail *regexp.Regexp, resolve func([]string) string) {
	path := s.Path(id)

	f, err := subtitle.ReadFile(path)
	if err != nil {
		log.Warn("Failed to read %s for dialect detection: %v", path, err)
		return
	}
	words := subtitle.Words(f)
	if len(words) == 0 {
		return
	}
	tag := resolve(words)

	stem := file.Stem(path)
	m := stemBracket.FindStringSubmatch(stem)
	base, bracket := m[1], m[2]

	currentTag := ""
	if tail := tagTail.FindString(base); tail != "" {
		currentTag = tail[1:] // drop the leading dot
	}
	if currentTag == tag {
		return
	}

	base = tagTail.ReplaceAllString(base, "")
	newName := fmt.Sprintf("%s.%s%s%s", base, tag, bracket, filepath.Ext(path))
	target := alloc.Reserve(filepath.Join(filepath.Dir(path), newName))

	if err := s.Rename(id, target); err != nil {
		log.Warn("Failed to relabel %s: %v", path, err)
		alloc.Release(target)
	}
}

// sdhRelabel inserts the [sdh] modifier, before any numeric suffix, into
// files the scorer classifies as hearing-impaired captioning. Already-tagged
// files are skipped. A neutral or negative score is not an error; the
// original name is preserved.
func sdhRelabel(s *Snapshot, scorer classify.SDHScorer, alloc *file.Allocator) {
	for _, id := range s.IDs() {
		path := s.Path(id)
		if !strings.EqualFold(filepath.Ext(path), ".srt") {
			continue
		}
		stem := file.Stem(path)
		if strings.Contains(stem, "[sdh]") {
			continue
		}

		langTag := ""
		if parsed, err := subname.Parse(filepath.Base(path)); err == nil {
			langTag = parsed.LanguageTag
		}

		f, err := subtitle.ReadFile(path)
		if err != nil {
			log.Warn("Failed to read %s for SDH detection: %v", path, err)
			continue
		}
		classify.VerifyLanguage(f, langTag)

		if !scorer.IsSDH(f, langTag) {
			continue
		}

		main, n := file.SplitNumberedSuffix(stem)
		newStem := main + "[sdh]"
		if n > 0 {
			newStem = fmt.Sprintf("%s-%d", newStem, n)
		}
		target := alloc.Reserve(filepath.Join(filepath.Dir(path), newStem+filepath.Ext(path)))

		if err := s.Rename(id, target); err != nil {
			log.Warn("Failed to add sdh tag to %s: %v", path, err)
			alloc.Release(target)
		}
	}
}

// cleanupPass applies the ordered cleanup rule table and strips superfluous
// numeric suffixes, routing every final name through the allocator so a
// rename never clobbers another file.
func cleanupPass(s *Snapshot, alloc *file.Allocator) {
	for _, id := range s.IDs() {
		alloc.MarkUsed(s.Path(id))
	}

	for _, id := range s.IDs() {
		path := s.Path(id)
		name := filepath.Base(path)

		cleaned, err := subname.CleanName(name)
		if err != nil {
			log.Warn("Failed to clean name %s: %v", name, err)
			continue
		}
		if cleaned == name {
			continue
		}

		target := alloc.Reserve(filepath.Join(filepath.Dir(path), cleaned))
		if target == path {
			continue
		}
		if err := s.Rename(id, target); err != nil {
			log.Warn("Failed to rename %s -> %s: %v", path, target, err)
			alloc.Release(target)
			continue
		}
		alloc.Release(path)
	}
}
