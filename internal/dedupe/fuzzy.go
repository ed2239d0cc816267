package dedupe

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/squash/subtidy/internal/subname"
	"github.com/squash/subtidy/internal/subtitle"
	"github.com/squash/subtidy/pkg/log"
)

// fuzzyRecord is one group member during the near-duplicate scan. The
// snapshot ID is the stable identity; the path is re-read from the snapshot
// whenever the entry is acted on, so renames made mid-scan are observed.
type fuzzyRecord struct {
	id       int
	stripped string // tag-stripped flattened content, compared for similarity
	tagCount int    // formatting tags in the raw content, fidelity signal
}

// fuzzyPass removes near-duplicate SRT files. Comparison is scoped to
// language groups: files are grouped by base language tag and never compared
// across groups. Within a group every pair is scored with the token-sort
// ratio; at or above the threshold the fr-FR rule, then the higher
// formatting-tag count, decide the survivor. After a deletion the survivor
// sheds its numeric disambiguator when the unsuffixed name is free, and the
// scan continues from the point of mutation.
func fuzzyPass(s *Snapshot, threshold float64) []string {
	groups := make(map[string][]fuzzyRecord)

	for _, id := range s.IDs() {
		path := s.Path(id)
		if !strings.EqualFold(filepath.Ext(path), ".srt") {
			continue
		}

		f, err := subtitle.ReadFile(path)
		if err != nil {
			log.Warn("Failed to read %s for near-duplicate comparison: %v", path, err)
			continue
		}
		content := subtitle.Content(f, false)
		if content == "" {
			continue
		}

		lang := subname.BaseLanguageTag(path)
		groups[lang] = append(groups[lang], fuzzyRecord{
			id:       id,
			stripped: subtitle.Content(f, true),
			tagCount: subtitle.CountFormattingTags(content),
		})
	}

	langs := make([]string, 0, len(groups))
	for lang := range groups {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var deleted []string

	for _, lang := range langs {
		group := groups[lang]
		i := 0
		for i < len(group) {
			j := i + 1
			for j < len(group) {
				ri, rj := group[i], group[j]
				if !s.requireLive(ri.id) {
					break
				}
				if !s.requireLive(rj.id) {
					group = append(group[:j], group[j+1:]...)
					continue
				}

				similarity := TokenSortRatio(ri.stripped, rj.stripped)
				if similarity < threshold {
					j++
					continue
				}

				pathI, pathJ := s.Path(ri.id), s.Path(rj.id)

				var keepID, delID int
				if _, del, ok := preferFrFr(pathI, pathJ); ok {
					keepID, delID = ri.id, rj.id
					if del == pathI {
						keepID, delID = rj.id, ri.id
					}
				} else if ri.tagCount >= rj.tagCount {
					keepID, delID = ri.id, rj.id
				} else {
					keepID, delID = rj.id, ri.id
				}

				delPath := s.Path(delID)
				if err := s.Delete(delID); err != nil {
					log.Warn("Failed to delete near-duplicate %s: %v", delPath, err)
					j++
					continue
				}
				deleted = append(deleted, delPath)
				stripSurvivorSuffix(s, keepID)

				// Resume from the mutation point: the removed entry
				// invalidates everything at or after its position.
				if delID == rj.id {
					group = append(group[:j], group[j+1:]...)
					continue // j stays
				}
				group = append(group[:i], group[i+1:]...)
				i--
				break
			}
			i++
		}
	}

	return deleted
}

// stripSurvivorSuffix drops a no-longer-needed numeric disambiguator from a
// surviving file's name, when the unsuffixed name is free.
func stripSurvivorSuffix(s *Snapshot, id int) {
	path := s.Path(id)
	if path == "" {
		return
	}

	name := filepath.Base(path)
	strippedName := subname.StripNumberedSuffix(name)
	if strippedName == name {
		return
	}

	target := filepath.Join(filepath.Dir(path), strippedName)
	if _, err := os.Stat(target); err == nil {
		return
	}
	if err := s.Rename(id, target); err != nil {
		log.Warn("Failed to strip suffix from %s: %v", path, err)
	}
}
