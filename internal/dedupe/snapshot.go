package dedupe

import (
	"fmt"
	"os"
	"sort"

	"github.com/squash/subtidy/pkg/file"
	"github.com/squash/subtidy/pkg/log"
)

// Snapshot is the explicit view of a directory shared by the pipeline
// passes. Every subtitle file gets a stable integer ID when first seen;
// deletes and renames update a side table keyed by that ID, so a pass can
// iterate over IDs while mutating the namespace without invalidating its own
// iteration. The directory itself is the only shared mutable state; all
// filesystem mutations go through Delete and Rename.
type Snapshot struct {
	dir     string
	paths   []string       // arena: ID -> current path, "" when deleted
	deleted []bool         // arena: ID -> tombstone
	byPath  map[string]int // live path -> ID
}

// NewSnapshot scans dir for subtitle files and assigns IDs in sorted name
// order.
func NewSnapshot(dir string) (*Snapshot, error) {
	s := &Snapshot{
		dir:    dir,
		byPath: make(map[string]int),
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory this snapshot tracks.
func (s *Snapshot) Dir() string {
	return s.dir
}

// Refresh re-reads the directory: files that vanished outside the snapshot's
// control are tombstoned, new files (e.g. conversion output) get fresh IDs.
// Existing IDs never change.
func (s *Snapshot) Refresh() error {
	listed, err := file.ListSubtitles(s.dir)
	if err != nil {
		return err
	}

	onDisk := make(map[string]bool, len(listed))
	for _, p := range listed {
		onDisk[p] = true
	}

	for path, id := range s.byPath {
		if !onDisk[path] {
			s.tombstone(id)
		}
	}
	for _, p := range listed {
		if _, known := s.byPath[p]; !known {
			s.paths = append(s.paths, p)
			s.deleted = append(s.deleted, false)
			s.byPath[p] = len(s.paths) - 1
		}
	}
	return nil
}

// IDs returns the live entry IDs ordered by current path.
func (s *Snapshot) IDs() []int {
	ids := make([]int, 0, len(s.byPath))
	for _, id := range s.byPath {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.paths[ids[i]] < s.paths[ids[j]]
	})
	return ids
}

// Len returns the number of live entries.
func (s *Snapshot) Len() int {
	return len(s.byPath)
}

// Path returns the current path for a live ID, or "" if it was deleted.
func (s *Snapshot) Path(id int) string {
	if id < 0 || id >= len(s.paths) || s.deleted[id] {
		return ""
	}
	return s.paths[id]
}

// Delete removes the entry's backing file. A file that already vanished
// counts as deleted. A transient failure is retried once against the
// then-current state, then abandoned.
func (s *Snapshot) Delete(id int) error {
	path := s.Path(id)
	if path == "" {
		return nil
	}

	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		err = os.Remove(path)
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	s.tombstone(id)
	return nil
}

// Rename moves the entry's backing file to newPath and updates the side
// table. The caller is responsible for having routed newPath through the
// unique-name allocator. A transient failure is retried once.
func (s *Snapshot) Rename(id int, newPath string) error {
	oldPath := s.Path(id)
	if oldPath == "" {
		return fmt.Errorf("rename of deleted entry %d", id)
	}
	if oldPath == newPath {
		return nil
	}

	err := os.Rename(oldPath, newPath)
	if err != nil {
		err = os.Rename(oldPath, newPath)
	}
	if err != nil {
		return fmt.Errorf("failed to rename %s -> %s: %w", oldPath, newPath, err)
	}

	delete(s.byPath, oldPath)
	s.paths[id] = newPath
	s.byPath[newPath] = id
	return nil
}

func (s *Snapshot) tombstone(id int) {
	if id < 0 || id >= len(s.paths) || s.deleted[id] {
		return
	}
	delete(s.byPath, s.paths[id])
	s.deleted[id] = true
	s.paths[id] = ""
}

// requireLive logs and reports entries that vanished between decision and
// action; used by passes before acting on a stale ID.
func (s *Snapshot) requireLive(id int) bool {
	if s.Path(id) == "" {
		log.Debug("Entry %d vanished mid-pass, skipping", id)
		return false
	}
	return true
}
