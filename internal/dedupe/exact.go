package dedupe

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/squash/subtidy/pkg/file"
	"github.com/squash/subtidy/pkg/log"
)

// preferFrFr implements the special-case tie-break: when one of a colliding
// pair is tagged fr-FR and the other fr-CA, the fr-FR copy wins. Returns
// (keep, del, true) or ok=false when the rule does not apply.
func preferFrFr(pathA, pathB string) (keep, del string, ok bool) {
	nameA := filepath.Base(pathA)
	nameB := filepath.Base(pathB)

	switch {
	case strings.Contains(nameA, "fr-CA") && strings.Contains(nameB, "fr-FR"):
		return pathB, pathA, true
	case strings.Contains(nameA, "fr-FR") && strings.Contains(nameB, "fr-CA"):
		return pathA, pathB, true
	}
	return "", "", false
}

func hasNumberedSuffix(path string) bool {
	_, n := file.SplitNumberedSuffix(file.Stem(path))
	return n > 0
}

// exactPass removes byte-identical files directory-wide. Identical bytes
// under different language tags are still true duplicates, so no grouping
// applies. Files are processed with undisambiguated names first so that the
// first-seen copy is the better-named one; on collision the fr-FR rule, then
// the unsuffixed-name preference, then first-seen order decide the survivor.
func exactPass(s *Snapshot) []string {
	ids := s.IDs()
	sort.SliceStable(ids, func(i, j int) bool {
		pi, pj := s.Path(ids[i]), s.Path(ids[j])
		si, sj := hasNumberedSuffix(pi), hasNumberedSuffix(pj)
		if si != sj {
			return !si
		}
		return filepath.Base(pi) < filepath.Base(pj)
	})

	keptByHash := make(map[string]int)
	var deleted []string

	for _, id := range ids {
		if !s.requireLive(id) {
			continue
		}
		path := s.Path(id)

		hash, err := HashFile(path)
		if err != nil {
			log.Warn("Failed to hash %s, keeping it: %v", path, err)
			continue
		}

		existingID, collision := keptByHash[hash]
		if !collision {
			keptByHash[hash] = id
			continue
		}
		existingPath := s.Path(existingID)

		if _, del, ok := preferFrFr(existingPath, path); ok {
			delID, keepID := id, existingID
			if del == existingPath {
				delID, keepID = existingID, id
			}
			if err := s.Delete(delID); err != nil {
				log.Warn("Failed to delete duplicate %s: %v", del, err)
				continue
			}
			deleted = append(deleted, del)
			keptByHash[hash] = keepID
			continue
		}

		keepExisting := !(hasNumberedSuffix(existingPath) && !hasNumberedSuffix(path))
		if keepExisting {
			if err := s.Delete(id); err != nil {
				log.Warn("Failed to delete duplicate %s: %v", path, err)
				continue
			}
			deleted = append(deleted, path)
		} else {
			if err := s.Delete(existingID); err != nil {
				log.Warn("Failed to delete duplicate %s: %v", existingPath, err)
				continue
			}
			deleted = append(deleted, existingPath)
			keptByHash[hash] = id
		}
	}

	return deleted
}
